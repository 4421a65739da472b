package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vitrinedev/vitrine/internal/browser"
	"github.com/vitrinedev/vitrine/pkg/client"
	"github.com/vitrinedev/vitrine/pkg/domain"
)

// RetryProgressMsg reports catalog retry progress. The program feeds these
// in from the client's retry callback so the shop view can show which
// attempt is in flight.
type RetryProgressMsg struct {
	Attempt int
	Max     int
}

type catalogLoadedMsg struct {
	products   []domain.Product
	categories []domain.Category
	err        error
}

type addedToCartMsg struct {
	name string
	err  error
}

type wishToggledMsg struct {
	name string
	err  error
}

type shopCopyMsg struct{ err error }

type shopModel struct {
	client     *client.Client
	products   []domain.Product
	categories []domain.Category
	catIndex   int // 0 = all, 1..n = categories[catIndex-1]
	cursor     int
	detail     bool
	loading    bool
	exhausted  bool // retry budget ran out; wait for manual r
	retryNote  string
	err        string
	statusMsg  string
	width      int
	height     int
}

func newShopModel(c *client.Client) shopModel {
	return shopModel{client: c, loading: true}
}

func (m shopModel) Init() tea.Cmd {
	return m.load()
}

func (m shopModel) load() tea.Cmd {
	c := m.client
	catIndex := m.catIndex
	categories := m.categories
	return func() tea.Msg {
		// Categories degrade to an empty filter bar; the product list is
		// the part worth surfacing errors for.
		cats := client.EmptyOnError(c.ListCategories(context.Background()))

		var products []domain.Product
		var err error
		if catIndex > 0 && catIndex <= len(categories) {
			products, err = c.ProductsByCategory(context.Background(), categories[catIndex-1].ID.String())
		} else {
			products, err = c.ListProducts(context.Background())
		}
		return catalogLoadedMsg{products: products, categories: cats, err: err}
	}
}

func (m shopModel) Update(msg tea.Msg) (shopModel, tea.Cmd) {
	switch msg := msg.(type) {
	case catalogLoadedMsg:
		m.loading = false
		m.retryNote = ""
		if len(msg.categories) > 0 {
			m.categories = msg.categories
		}
		if msg.err != nil {
			m.err = msg.err.Error()
			var exhausted *client.ExhaustedError
			if errors.As(msg.err, &exhausted) {
				m.exhausted = true
				m.err = fmt.Sprintf("server unavailable after %d attempts", exhausted.Attempts)
			}
			return m, nil
		}
		m.err = ""
		m.exhausted = false
		m.products = msg.products
		if m.cursor >= len(m.products) {
			m.cursor = 0
		}
		return m, nil

	case RetryProgressMsg:
		m.retryNote = fmt.Sprintf("server error, retrying... attempt %d of %d", msg.Attempt+1, msg.Max)
		return m, nil

	case addedToCartMsg:
		if msg.err != nil {
			m.statusMsg = errorStyle.Render(shortError(msg.err))
		} else {
			m.statusMsg = statusOKStyle.Render(truncStr(msg.name, 30) + " added to cart")
		}
		return m, nil

	case wishToggledMsg:
		if msg.err != nil {
			m.statusMsg = errorStyle.Render(shortError(msg.err))
		} else {
			m.statusMsg = statusOKStyle.Render("wishlist updated")
		}
		return m, nil

	case shopCopyMsg:
		if msg.err != nil {
			m.statusMsg = errorStyle.Render(fmt.Sprintf("copy failed: %v", msg.err))
		} else {
			m.statusMsg = statusOKStyle.Render("copied!")
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		m.statusMsg = ""
		if m.detail {
			return m.updateDetail(msg)
		}
		return m.updateList(msg)
	}
	return m, nil
}

func (m shopModel) updateList(msg tea.KeyMsg) (shopModel, tea.Cmd) {
	switch msg.String() {
	case "j", "down":
		if m.cursor < len(m.products)-1 {
			m.cursor++
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case "enter":
		if len(m.products) > 0 {
			m.detail = true
		}
	case "c":
		// Cycle category filter: all -> cat1 -> ... -> catN -> all
		if len(m.categories) > 0 {
			m.catIndex = (m.catIndex + 1) % (len(m.categories) + 1)
			m.cursor = 0
			m.loading = true
			return m, m.load()
		}
	case "a":
		return m.addSelectedToCart()
	case "w":
		return m.toggleSelectedWish()
	case "y":
		if m.cursor < len(m.products) {
			id := m.products[m.cursor].ID.String()
			return m, func() tea.Msg {
				return shopCopyMsg{err: clipboard.WriteAll(id)}
			}
		}
	case "o":
		return m.openSelected()
	case "r":
		m.loading = true
		m.exhausted = false
		return m, m.load()
	}
	return m, nil
}

func (m shopModel) updateDetail(msg tea.KeyMsg) (shopModel, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.detail = false
	case "a":
		return m.addSelectedToCart()
	case "w":
		return m.toggleSelectedWish()
	case "y":
		if m.cursor < len(m.products) {
			id := m.products[m.cursor].ID.String()
			return m, func() tea.Msg {
				return shopCopyMsg{err: clipboard.WriteAll(id)}
			}
		}
	case "o":
		return m.openSelected()
	}
	return m, nil
}

func (m shopModel) addSelectedToCart() (shopModel, tea.Cmd) {
	if m.cursor >= len(m.products) {
		return m, nil
	}
	p := m.products[m.cursor]
	c := m.client
	return m, func() tea.Msg {
		_, err := c.AddToCart(context.Background(), p.ID.String(), p.FinalPrice(), 1)
		return addedToCartMsg{name: p.Name, err: err}
	}
}

func (m shopModel) toggleSelectedWish() (shopModel, tea.Cmd) {
	if m.cursor >= len(m.products) {
		return m, nil
	}
	p := m.products[m.cursor]
	c := m.client
	return m, func() tea.Msg {
		err := c.ToggleWishlist(context.Background(), p.ID.String())
		return wishToggledMsg{name: p.Name, err: err}
	}
}

func (m shopModel) openSelected() (shopModel, tea.Cmd) {
	if m.cursor >= len(m.products) {
		return m, nil
	}
	url := productWebURL + "/product/" + m.products[m.cursor].ID.String()
	browser.Open(url) //nolint:errcheck // best-effort browser open
	return m, nil
}

// productWebURL is the storefront base for o (open in browser). Set once at
// startup by NewApp.
var productWebURL = "https://vitrine.shop"

// categoryName returns the display name of the active filter.
func (m shopModel) categoryName() string {
	if m.catIndex == 0 || m.catIndex > len(m.categories) {
		return "all"
	}
	return m.categories[m.catIndex-1].Name
}

func (m shopModel) View() string {
	if m.detail {
		return m.viewDetail()
	}

	var b strings.Builder

	// Filter bar: all + category names, active one highlighted
	b.WriteString(" ")
	active := m.categoryName()
	if active == "all" {
		b.WriteString(accentStyle.Bold(true).Render("all"))
	} else {
		b.WriteString(dimStyle.Render("all"))
	}
	used := 4
	for _, cat := range m.categories {
		needed := 2 + len(cat.Name)
		if used+needed+10 > m.width {
			break
		}
		b.WriteString("  ")
		if cat.Name == active {
			b.WriteString(CategoryStyle(cat.Name).Render(cat.Name))
		} else {
			b.WriteString(dimStyle.Render(cat.Name))
		}
		used += needed
	}
	b.WriteString("   " + helpKeyStyle.Render("c") + "\n")

	// Separator
	sepW := m.width - 2
	if sepW < 4 {
		sepW = 4
	}
	b.WriteString(" " + metaStyle.Render(strings.Repeat("─", sepW)) + "\n")

	if m.statusMsg != "" {
		b.WriteString(" " + m.statusMsg + "\n")
	}

	if m.loading {
		if m.retryNote != "" {
			b.WriteString(" " + dimStyle.Render(m.retryNote))
		} else {
			b.WriteString(" " + dimStyle.Render("loading catalog..."))
		}
		return b.String()
	}

	if m.err != "" {
		b.WriteString(" " + errorStyle.Render(m.err) + "\n")
		if m.exhausted {
			b.WriteString(" " + dimStyle.Render("press r to try again"))
		}
		return b.String()
	}

	if len(m.products) == 0 {
		b.WriteString(" " + dimStyle.Render("no products in "+active))
		return b.String()
	}

	return b.String() + m.viewProductList()
}

func (m shopModel) viewProductList() string {
	var b strings.Builder

	viewChrome := 6 // filter bar + separator + preview chrome
	available := m.height - viewChrome
	if available < 6 {
		available = 6
	}
	maxVisible := available * 3 / 5
	if maxVisible < 3 {
		maxVisible = 3
	}

	start := 0
	if m.cursor >= maxVisible {
		start = m.cursor - maxVisible + 1
	}

	for i := start; i < len(m.products) && i < start+maxVisible; i++ {
		p := m.products[i]

		cursor := "  "
		nameStyle := dimStyle
		if i == m.cursor {
			cursor = accentStyle.Render("▸") + " "
			nameStyle = normalStyle.Bold(true)
		}

		priceCol := renderProductPrice(p)
		stockCol := ""
		if p.Stock == 0 {
			stockCol = "  " + errorStyle.Render("out of stock")
		}
		ratingCol := ""
		if p.Rating > 0 {
			ratingCol = "  " + ratingStyle.Render(fmt.Sprintf("★%.1f", p.Rating))
		}

		nameWidth := m.width - 30
		if nameWidth < 16 {
			nameWidth = 16
		}
		name := fmt.Sprintf("%-*s", nameWidth, truncStr(p.Name, nameWidth))

		line := cursor + nameStyle.Render(name) + " " + priceCol + ratingCol + stockCol
		if i == m.cursor {
			padded := line + strings.Repeat(" ", max(m.width-lipgloss.Width(line), 0))
			b.WriteString(selectedRowBg.Render(padded) + "\n")
		} else {
			b.WriteString(line + "\n")
		}
	}

	// Preview for the selected product
	if m.cursor < len(m.products) {
		p := m.products[m.cursor]
		b.WriteString("\n")

		header := " " + selectedStyle.Render(p.Name)
		if p.Unit != "" {
			header += "  " + metaStyle.Render(p.Unit)
		}
		header += "  " + renderProductPrice(p)
		b.WriteString(header + "\n")

		if p.Description != "" {
			descWidth := m.width - 4
			if descWidth < 40 {
				descWidth = 40
			}
			maxDescLines := available - maxVisible - 2
			if maxDescLines < 1 {
				maxDescLines = 1
			}
			wrapped := lipgloss.NewStyle().Width(descWidth).Render(p.Description)
			lines := strings.Split(wrapped, "\n")
			if len(lines) > maxDescLines {
				lines = lines[:maxDescLines]
			}
			for _, line := range lines {
				b.WriteString(" " + normalStyle.Render(line) + "\n")
			}
		}
	}

	return truncateToHeight(b.String(), m.height)
}

func (m shopModel) viewDetail() string {
	if m.cursor >= len(m.products) {
		return ""
	}
	p := m.products[m.cursor]

	var b strings.Builder
	b.WriteString(" " + dimStyle.Render("<- back (esc)") + "\n")
	b.WriteString(" " + selectedStyle.Render(p.Name) + "\n")

	meta := " " + renderProductPrice(p)
	if p.Unit != "" {
		meta += metaStyle.Render(" · ") + metaStyle.Render(p.Unit)
	}
	if p.Rating > 0 {
		meta += metaStyle.Render(" · ") + ratingStyle.Render(fmt.Sprintf("★%.1f", p.Rating))
	}
	if p.Stock > 0 {
		meta += metaStyle.Render(fmt.Sprintf(" · %d in stock", p.Stock))
	} else {
		meta += metaStyle.Render(" · ") + errorStyle.Render("out of stock")
	}
	b.WriteString(meta + "\n\n")

	if p.Description != "" {
		descWidth := m.width - 4
		if descWidth < 40 {
			descWidth = 40
		}
		wrapped := lipgloss.NewStyle().Width(descWidth).Render(p.Description)
		for _, line := range strings.Split(wrapped, "\n") {
			b.WriteString(" " + normalStyle.Render(line) + "\n")
		}
	}

	if img := p.ImageURL(); img != "" {
		b.WriteString("\n " + metaStyle.Render(img) + "\n")
	}

	if m.statusMsg != "" {
		b.WriteString("\n " + m.statusMsg + "\n")
	}

	return truncateToHeight(b.String(), m.height)
}

// shortError trims the "client.Method: " prefix for status-line display.
func shortError(err error) string {
	s := err.Error()
	if i := strings.Index(s, ": "); i > 0 && strings.HasPrefix(s, "client.") {
		s = s[i+2:]
	}
	return truncStr(s, 60)
}
