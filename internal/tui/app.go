package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vitrinedev/vitrine/internal/browser"
	"github.com/vitrinedev/vitrine/pkg/client"
	"github.com/vitrinedev/vitrine/pkg/domain"
)

type view int

const (
	viewShop view = iota
	viewCart
	viewOrders
	viewWishlist
	viewYou
)

// meLoadedMsg carries the authenticated user record.
type meLoadedMsg struct {
	user *domain.User
	err  error
}

// App is the root Bubbletea model.
type App struct {
	client     *client.Client
	shop       shopModel
	cart       cartModel
	orders     ordersModel
	wishlist   wishlistModel
	you        youModel
	view       view
	helpOpen   bool
	helpCursor int
	user       *domain.User
	version    string
	width      int
	height     int
}

// NewApp creates the TUI application. webURL is the storefront base used
// when opening product pages in the browser.
func NewApp(c *client.Client, webURL, version string) App {
	if webURL != "" {
		productWebURL = strings.TrimRight(webURL, "/")
	}
	return App{
		client:   c,
		shop:     newShopModel(c),
		cart:     newCartModel(c),
		orders:   newOrdersModel(c),
		wishlist: newWishlistModel(c),
		you:      newYouModel(c),
		version:  version,
	}
}

func (a App) Init() tea.Cmd {
	return tea.Batch(a.shop.Init(), a.loadMe())
}

func (a App) loadMe() tea.Cmd {
	c := a.client
	return func() tea.Msg {
		// The cached record is good enough for the header; a fresh fetch
		// replaces it when it lands.
		if !c.IsAuthenticated() {
			return meLoadedMsg{user: c.CurrentUser()}
		}
		user, err := c.Me(context.Background())
		if err != nil {
			return meLoadedMsg{user: c.CurrentUser(), err: err}
		}
		return meLoadedMsg{user: user}
	}
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		// Chrome: header(2) + tabs(1) + help(1) = 4 lines
		bodyMsg := tea.WindowSizeMsg{Width: msg.Width, Height: msg.Height - 4}
		a.shop, _ = a.shop.Update(bodyMsg)
		a.cart, _ = a.cart.Update(bodyMsg)
		a.orders, _ = a.orders.Update(bodyMsg)
		a.wishlist, _ = a.wishlist.Update(bodyMsg)
		a.you, _ = a.you.Update(bodyMsg)

	case meLoadedMsg:
		if msg.user != nil {
			a.user = msg.user
		}
		a.you, _ = a.you.Update(msg)
		return a, nil

	case RetryProgressMsg:
		var cmd tea.Cmd
		a.shop, cmd = a.shop.Update(msg)
		return a, cmd

	case tea.KeyMsg:
		// Help overlay captures all keys when open
		if a.helpOpen {
			switch msg.String() {
			case "h", "esc":
				a.helpOpen = false
			case "q", "ctrl+c":
				return a, tea.Quit
			case "j", "down":
				if a.helpCursor < len(helpItems)-1 {
					a.helpCursor++
				}
			case "k", "up":
				if a.helpCursor > 0 {
					a.helpCursor--
				}
			case "enter":
				item := helpItems[a.helpCursor]
				if item.url != "" {
					browser.Open(item.url) //nolint:errcheck // best-effort browser open
				}
			}
			return a, nil
		}

		// Global keys (only when not editing)
		if !a.isEditing() {
			switch msg.String() {
			case "h":
				a.helpOpen = true
				a.helpCursor = 0
				return a, nil
			case "q", "ctrl+c":
				return a, tea.Quit
			case "1":
				return a.switchTo(viewShop, a.shop.Init())
			case "2":
				return a.switchTo(viewCart, a.cart.Init())
			case "3":
				return a.switchTo(viewOrders, a.orders.Init())
			case "4":
				return a.switchTo(viewWishlist, a.wishlist.Init())
			case "5":
				return a.switchTo(viewYou, a.you.Init())
			}
		}
	}

	var cmd tea.Cmd
	switch a.view {
	case viewShop:
		a.shop, cmd = a.shop.Update(msg)
	case viewCart:
		a.cart, cmd = a.cart.Update(msg)
	case viewOrders:
		a.orders, cmd = a.orders.Update(msg)
	case viewWishlist:
		a.wishlist, cmd = a.wishlist.Update(msg)
	case viewYou:
		a.you, cmd = a.you.Update(msg)
	}
	return a, cmd
}

func (a App) switchTo(v view, init tea.Cmd) (tea.Model, tea.Cmd) {
	if a.view == v {
		return a, nil
	}
	a.view = v
	return a, init
}

func (a App) isEditing() bool {
	return a.view == viewYou && a.you.editing()
}

func (a App) View() string {
	// Header: centered logo + identity line
	logo := renderLogo()
	logoWidth := lipgloss.Width(logo)
	logoPad := (a.width - logoWidth) / 2
	if logoPad < 0 {
		logoPad = 0
	}
	header := strings.Repeat(" ", logoPad) + logo

	var idLine string
	if a.user != nil {
		parts := []string{selectedStyle.Render(a.user.DisplayName())}
		if n := a.cart.cart.Count(); n > 0 {
			parts = append(parts, accentStyle.Render(fmt.Sprintf("%d in cart", n)))
		}
		idLine = strings.Join(parts, metaStyle.Render(" · "))
	} else {
		idLine = dimStyle.Render("browsing as guest")
	}
	idPad := (a.width - lipgloss.Width(idLine)) / 2
	if idPad < 0 {
		idPad = 0
	}
	header += "\n" + strings.Repeat(" ", idPad) + idLine

	// Tab bar: 5 equal-width columns spread across the terminal
	type tabEntry struct {
		key  string
		name string
		v    view
	}
	tabs := []tabEntry{
		{"1", "Shop", viewShop},
		{"2", "Cart", viewCart},
		{"3", "Orders", viewOrders},
		{"4", "Wishlist", viewWishlist},
		{"5", "You", viewYou},
	}

	colWidth := a.width / len(tabs)
	var tabBar strings.Builder
	for _, t := range tabs {
		var label string
		if t.v == a.view {
			label = accentStyle.Render(t.key) + " " + selectedStyle.Underline(true).Render(t.name)
		} else {
			label = metaStyle.Render(t.key) + " " + dimStyle.Render(t.name)
		}
		if t.v == viewCart {
			if n := a.cart.cart.Count(); n > 0 {
				label += " " + accentStyle.Render(fmt.Sprintf("%d", n))
			}
		}
		labelWidth := lipgloss.Width(label)
		leftPad := (colWidth - labelWidth) / 2
		if leftPad < 0 {
			leftPad = 0
		}
		rightPad := colWidth - labelWidth - leftPad
		if rightPad < 0 {
			rightPad = 0
		}
		tabBar.WriteString(strings.Repeat(" ", leftPad) + label + strings.Repeat(" ", rightPad))
	}
	centeredTabs := tabBar.String()

	// Body + context help
	var body string
	var help string
	switch a.view {
	case viewShop:
		body = a.shop.View()
		if a.shop.detail {
			help = " " + helpEntry("a", "add") + "  " + helpEntry("w", "wish") + "  " + helpEntry("o", "open") + "  " + helpEntry("y", "copy id") + "  " + helpEntry("esc", "back")
		} else {
			help = " " + helpEntry("1-5", "tabs") + "  " + helpEntry("j/k", "nav") + "  " + helpEntry("c", "category") + "  " + helpEntry("a", "add") + "  " + helpEntry("w", "wish") + "  " + helpEntry("h", "help") + "  " + helpEntry("q", "quit")
		}
	case viewCart:
		body = a.cart.View()
		help = " " + helpEntry("1-5", "tabs") + "  " + helpEntry("+/-", "qty") + "  " + helpEntry("d", "remove") + "  " + helpEntry("enter", "checkout") + "  " + helpEntry("h", "help") + "  " + helpEntry("q", "quit")
	case viewOrders:
		body = a.orders.View()
		if a.orders.detail {
			help = " " + helpEntry("x", "cancel order") + "  " + helpEntry("esc", "back")
		} else {
			help = " " + helpEntry("1-5", "tabs") + "  " + helpEntry("j/k", "nav") + "  " + helpEntry("enter", "detail") + "  " + helpEntry("x", "cancel") + "  " + helpEntry("h", "help") + "  " + helpEntry("q", "quit")
		}
	case viewWishlist:
		body = a.wishlist.View()
		help = " " + helpEntry("1-5", "tabs") + "  " + helpEntry("a", "to cart") + "  " + helpEntry("d", "remove") + "  " + helpEntry("h", "help") + "  " + helpEntry("q", "quit")
	case viewYou:
		body = a.you.View()
		help = " " + helpEntry("1-5", "tabs") + "  " + a.you.helpKeys()
	}

	// Help overlay
	if a.helpOpen {
		body = helpView(a.helpCursor)
		help = " " + helpEntry("j/k", "nav") + "  " + helpEntry("enter", "open") + "  " + helpEntry("esc", "close")
	}

	// Chrome takes 4 lines: header(2) + tabs(1) + help(1), the rest is body
	body = strings.TrimRight(truncateToHeight(body, a.height-4), "\n")

	return fmt.Sprintf("%s\n%s\n%s\n%s", header, centeredTabs, body, help)
}
