package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vitrinedev/vitrine/pkg/client"
	"github.com/vitrinedev/vitrine/pkg/domain"
)

type cartLoadedMsg struct {
	cart *domain.Cart
	err  error
}

type cartMutatedMsg struct {
	note string
	err  error
}

type checkoutDoneMsg struct {
	order *domain.Order
	err   error
}

type cartModel struct {
	client    *client.Client
	cart      domain.Cart
	cursor    int
	confirm   bool // clear-cart confirmation pending
	loading   bool
	err       string
	statusMsg string
	width     int
	height    int
}

func newCartModel(c *client.Client) cartModel {
	return cartModel{client: c, loading: true}
}

func (m cartModel) Init() tea.Cmd {
	return m.load()
}

func (m cartModel) load() tea.Cmd {
	c := m.client
	return func() tea.Msg {
		cart, err := c.Cart(context.Background())
		return cartLoadedMsg{cart: cart, err: err}
	}
}

func (m cartModel) Update(msg tea.Msg) (cartModel, tea.Cmd) {
	switch msg := msg.(type) {
	case cartLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = shortError(msg.err)
			return m, nil
		}
		m.err = ""
		if msg.cart != nil {
			m.cart = *msg.cart
		} else {
			m.cart = domain.Cart{}
		}
		if m.cursor >= len(m.cart.Items) {
			m.cursor = 0
		}
		return m, nil

	case cartMutatedMsg:
		if msg.err != nil {
			m.statusMsg = errorStyle.Render(shortError(msg.err))
			return m, nil
		}
		if msg.note != "" {
			m.statusMsg = statusOKStyle.Render(msg.note)
		}
		return m, m.load()

	case checkoutDoneMsg:
		if msg.err != nil {
			m.statusMsg = errorStyle.Render(shortError(msg.err))
			return m, nil
		}
		if msg.order != nil && msg.order.ID != "" {
			m.statusMsg = statusOKStyle.Render("order placed: " + msg.order.ID.String())
		} else {
			m.statusMsg = statusOKStyle.Render("order placed")
		}
		return m, m.load()

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

func (m cartModel) updateConfirm(msg tea.KeyMsg) (cartModel, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		m.confirm = false
		c := m.client
		return m, func() tea.Msg {
			err := c.ClearCart(context.Background())
			return cartMutatedMsg{note: "cart cleared", err: err}
		}
	case "n", "N", "esc":
		m.confirm = false
	}
	return m, nil
}

func (m cartModel) updateKeys(msg tea.KeyMsg) (cartModel, tea.Cmd) {
	switch msg.String() {
	case "j", "down":
		if m.cursor < len(m.cart.Items)-1 {
			m.cursor++
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case "+", "=":
		return m.bumpQuantity(1)
	case "-":
		return m.bumpQuantity(-1)
	case "d", "x":
		if m.cursor < len(m.cart.Items) {
			id := m.cart.Items[m.cursor].ID.String()
			c := m.client
			return m, func() tea.Msg {
				err := c.RemoveCartItem(context.Background(), id)
				return cartMutatedMsg{note: "item removed", err: err}
			}
		}
	case "D":
		if len(m.cart.Items) > 0 {
			m.confirm = true
		}
	case "enter":
		if len(m.cart.Items) > 0 {
			c := m.client
			return m, func() tea.Msg {
				order, err := c.CreateOrder(context.Background())
				return checkoutDoneMsg{order: order, err: err}
			}
		}
	case "r":
		m.loading = true
		return m, m.load()
	}
	return m, nil
}

// bumpQuantity adjusts the selected line by delta. Dropping below one removes
// the item instead, matching the storefront's stepper behavior.
func (m cartModel) bumpQuantity(delta int) (cartModel, tea.Cmd) {
	if m.cursor >= len(m.cart.Items) {
		return m, nil
	}
	item := m.cart.Items[m.cursor]
	next := item.Quantity + delta
	c := m.client
	if next < 1 {
		id := item.ID.String()
		return m, func() tea.Msg {
			err := c.RemoveCartItem(context.Background(), id)
			return cartMutatedMsg{note: "item removed", err: err}
		}
	}
	id := item.ID.String()
	return m, func() tea.Msg {
		err := c.UpdateCartItem(context.Background(), id, next)
		return cartMutatedMsg{err: err}
	}
}

func (m cartModel) View() string {
	var b strings.Builder

	b.WriteString(" " + sectionHeaderStyle.Render(fmt.Sprintf("── CART %d items ──", m.cart.Count())) + "\n")

	if m.statusMsg != "" {
		b.WriteString(" " + m.statusMsg + "\n")
	}

	if m.loading {
		b.WriteString(" " + dimStyle.Render("loading cart..."))
		return b.String()
	}
	if m.err != "" {
		b.WriteString(" " + errorStyle.Render(m.err) + "\n")
		b.WriteString(" " + dimStyle.Render("press r to try again"))
		return b.String()
	}
	if len(m.cart.Items) == 0 {
		b.WriteString(" " + dimStyle.Render("your cart is empty · add products from the shop tab"))
		return b.String()
	}

	for i, item := range m.cart.Items {
		cursor := "  "
		nameStyle := dimStyle
		if i == m.cursor {
			cursor = accentStyle.Render("▸") + " "
			nameStyle = normalStyle.Bold(true)
		}

		nameWidth := m.width - 34
		if nameWidth < 14 {
			nameWidth = 14
		}
		name := fmt.Sprintf("%-*s", nameWidth, truncStr(item.Name(), nameWidth))

		qty := metaStyle.Render(fmt.Sprintf("×%-3d", item.Quantity))
		lineTotal := priceStyle.Render(fmt.Sprintf("%9s", formatPrice(item.LineTotal())))

		line := cursor + nameStyle.Render(name) + "  " + qty + " " + lineTotal
		if i == m.confirmRow() {
			line += "  " + errorStyle.Render("remove all? ") + accentStyle.Render("y") + dimStyle.Render("/n")
		}
		if i == m.cursor {
			padded := line + strings.Repeat(" ", max(m.width-lipgloss.Width(line), 0))
			b.WriteString(selectedRowBg.Render(padded) + "\n")
		} else {
			b.WriteString(line + "\n")
		}
	}

	// Subtotal footer
	sepW := m.width - 2
	if sepW < 4 {
		sepW = 4
	}
	b.WriteString(" " + metaStyle.Render(strings.Repeat("─", sepW)) + "\n")
	b.WriteString(" " + normalStyle.Render("subtotal") + "  " + priceStyle.Render(formatPrice(m.cart.Subtotal())) + "\n")
	b.WriteString(" " + dimStyle.Render("enter to checkout") + "\n")

	return truncateToHeight(b.String(), m.height)
}

// confirmRow returns the row showing the clear confirmation, or -1.
func (m cartModel) confirmRow() int {
	if m.confirm {
		return m.cursor
	}
	return -1
}
