package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vitrinedev/vitrine/pkg/client"
	"github.com/vitrinedev/vitrine/pkg/domain"
)

type wishlistLoadedMsg struct {
	items []domain.WishlistItem
	err   error
}

type wishlistMutatedMsg struct {
	note string
	err  error
}

type wishCopyMsg struct{ err error }

type wishlistModel struct {
	client    *client.Client
	items     []domain.WishlistItem
	cursor    int
	confirm   bool // clear confirmation pending
	loading   bool
	statusMsg string
	width     int
	height    int
}

func newWishlistModel(c *client.Client) wishlistModel {
	return wishlistModel{client: c, loading: true}
}

func (m wishlistModel) Init() tea.Cmd {
	return m.load()
}

func (m wishlistModel) load() tea.Cmd {
	c := m.client
	return func() tea.Msg {
		// Wishlist reads degrade to empty; there is nothing actionable
		// to show for a failed fetch here.
		items := client.EmptyOnError(c.Wishlist(context.Background()))
		return wishlistLoadedMsg{items: items}
	}
}

func (m wishlistModel) Update(msg tea.Msg) (wishlistModel, tea.Cmd) {
	switch msg := msg.(type) {
	case wishlistLoadedMsg:
		m.loading = false
		m.items = msg.items
		if m.cursor >= len(m.items) {
			m.cursor = 0
		}
		return m, nil

	case wishlistMutatedMsg:
		if msg.err != nil {
			m.statusMsg = errorStyle.Render(shortError(msg.err))
			return m, nil
		}
		if msg.note != "" {
			m.statusMsg = statusOKStyle.Render(msg.note)
		}
		return m, m.load()

	case wishCopyMsg:
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
		if m.confirm {
			return m.updateConfirm(msg)
		}
		return m.updateKeys(msg)
	}
	return m, nil
}

func (m wishlistModel) updateConfirm(msg tea.KeyMsg) (wishlistModel, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		m.confirm = false
		c := m.client
		return m, func() tea.Msg {
			err := c.ClearWishlist(context.Background())
			return wishlistMutatedMsg{note: "wishlist cleared", err: err}
		}
	case "n", "N", "esc":
		m.confirm = false
	}
	return m, nil
}

func (m wishlistModel) updateKeys(msg tea.KeyMsg) (wishlistModel, tea.Cmd) {
	switch msg.String() {
	case "j", "down":
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case "d", "x":
		if m.cursor < len(m.items) {
			id := m.items[m.cursor].TargetProductID().String()
			c := m.client
			return m, func() tea.Msg {
				err := c.RemoveFromWishlist(context.Background(), id)
				return wishlistMutatedMsg{note: "removed from wishlist", err: err}
			}
		}
	case "D":
		if len(m.items) > 0 {
			m.confirm = true
		}
	case "a":
		// Move to cart: add, then drop from the wishlist.
		if m.cursor < len(m.items) {
			item := m.items[m.cursor]
			id := item.TargetProductID().String()
			price := 0.0
			if item.Product != nil {
				price = item.Product.FinalPrice()
			}
			c := m.client
			return m, func() tea.Msg {
				if _, err := c.AddToCart(context.Background(), id, price, 1); err != nil {
					return wishlistMutatedMsg{err: err}
				}
				err := c.RemoveFromWishlist(context.Background(), id)
				return wishlistMutatedMsg{note: "moved to cart", err: err}
			}
		}
	case "y":
		if m.cursor < len(m.items) {
			id := m.items[m.cursor].TargetProductID().String()
			return m, func() tea.Msg {
				return wishCopyMsg{err: clipboard.WriteAll(id)}
			}
		}
	case "r":
		m.loading = true
		return m, m.load()
	}
	return m, nil
}

func (m wishlistModel) View() string {
	var b strings.Builder
	b.WriteString(" " + sectionHeaderStyle.Render(fmt.Sprintf("── WISHLIST %d ──", len(m.items))) + "\n")

	if m.statusMsg != "" {
		b.WriteString(" " + m.statusMsg + "\n")
	}

	if m.loading {
		b.WriteString(" " + dimStyle.Render("loading wishlist..."))
		return b.String()
	}
	if len(m.items) == 0 {
		b.WriteString(" " + dimStyle.Render("nothing saved yet · press w on a product in the shop tab"))
		return b.String()
	}

	for i, item := range m.items {
		cursor := "  "
		nameStyle := dimStyle
		if i == m.cursor {
			cursor = accentStyle.Render("▸") + " "
			nameStyle = normalStyle.Bold(true)
		}

		heart := wishStyle.Render("♥") + " "
		name := item.TargetProductID().String()
		priceCol := ""
		if item.Product != nil {
			name = item.Product.Name
			priceCol = "  " + renderProductPrice(*item.Product)
		}

		nameWidth := m.width - 32
		if nameWidth < 14 {
			nameWidth = 14
		}
		line := cursor + heart + nameStyle.Render(fmt.Sprintf("%-*s", nameWidth, truncStr(name, nameWidth))) + priceCol
		if m.confirm && i == m.cursor {
			line += "  " + errorStyle.Render("clear wishlist? ") + accentStyle.Render("y") + dimStyle.Render("/n")
		}
		if i == m.cursor {
			padded := line + strings.Repeat(" ", max(m.width-lipgloss.Width(line), 0))
			b.WriteString(selectedRowBg.Render(padded) + "\n")
		} else {
			b.WriteString(line + "\n")
		}
	}

	b.WriteString("\n " + dimStyle.Render("a move to cart · d remove · D clear") + "\n")

	return truncateToHeight(b.String(), m.height)
}
