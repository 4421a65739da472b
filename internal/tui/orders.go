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

type ordersLoadedMsg struct {
	orders []domain.Order
	err    error
}

type orderCancelledMsg struct{ err error }

type ordersModel struct {
	client    *client.Client
	orders    []domain.Order
	cursor    int
	detail    bool
	confirm   bool // cancel confirmation pending
	loading   bool
	err       string
	statusMsg string
	width     int
	height    int
}

func newOrdersModel(c *client.Client) ordersModel {
	return ordersModel{client: c, loading: true}
}

func (m ordersModel) Init() tea.Cmd {
	return m.load()
}

func (m ordersModel) load() tea.Cmd {
	c := m.client
	return func() tea.Msg {
		orders, err := c.MyOrders(context.Background())
		return ordersLoadedMsg{orders: orders, err: err}
	}
}

func (m ordersModel) Update(msg tea.Msg) (ordersModel, tea.Cmd) {
	switch msg := msg.(type) {
	case ordersLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = shortError(msg.err)
			return m, nil
		}
		m.err = ""
		m.orders = msg.orders
		if m.cursor >= len(m.orders) {
			m.cursor = 0
		}
		return m, nil

	case orderCancelledMsg:
		if msg.err != nil {
			m.statusMsg = errorStyle.Render(shortError(msg.err))
			return m, nil
		}
		m.statusMsg = statusOKStyle.Render("order cancelled")
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
		if m.detail {
			return m.updateDetail(msg)
		}
		return m.updateList(msg)
	}
	return m, nil
}

func (m ordersModel) updateConfirm(msg tea.KeyMsg) (ordersModel, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		m.confirm = false
		if m.cursor < len(m.orders) {
			id := m.orders[m.cursor].ID.String()
			c := m.client
			return m, func() tea.Msg {
				err := c.CancelOrder(context.Background(), id)
				return orderCancelledMsg{err: err}
			}
		}
	case "n", "N", "esc":
		m.confirm = false
	}
	return m, nil
}

func (m ordersModel) updateList(msg tea.KeyMsg) (ordersModel, tea.Cmd) {
	switch msg.String() {
	case "j", "down":
		if m.cursor < len(m.orders)-1 {
			m.cursor++
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case "enter":
		if len(m.orders) > 0 {
			m.detail = true
		}
	case "x":
		if m.cursor < len(m.orders) && m.orders[m.cursor].CanCancel() {
			m.confirm = true
		}
	case "r":
		m.loading = true
		return m, m.load()
	}
	return m, nil
}

func (m ordersModel) updateDetail(msg tea.KeyMsg) (ordersModel, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.detail = false
	case "x":
		if m.cursor < len(m.orders) && m.orders[m.cursor].CanCancel() {
			m.confirm = true
		}
	}
	return m, nil
}

func (m ordersModel) View() string {
	if m.detail {
		return m.viewDetail()
	}

	var b strings.Builder
	b.WriteString(" " + sectionHeaderStyle.Render(fmt.Sprintf("── ORDERS %d ──", len(m.orders))) + "\n")

	if m.statusMsg != "" {
		b.WriteString(" " + m.statusMsg + "\n")
	}

	if m.loading {
		b.WriteString(" " + dimStyle.Render("loading orders..."))
		return b.String()
	}
	if m.err != "" {
		b.WriteString(" " + errorStyle.Render(m.err) + "\n")
		b.WriteString(" " + dimStyle.Render("press r to try again"))
		return b.String()
	}
	if len(m.orders) == 0 {
		b.WriteString(" " + dimStyle.Render("no orders yet"))
		return b.String()
	}

	for i, o := range m.orders {
		cursor := "  "
		idStyle := dimStyle
		if i == m.cursor {
			cursor = accentStyle.Render("▸") + " "
			idStyle = normalStyle.Bold(true)
		}

		id := truncStr(o.ID.String(), 12)
		status := StatusStyle(o.Status).Render(fmt.Sprintf("%-10s", strings.ToLower(o.Status)))
		total := priceStyle.Render(fmt.Sprintf("%9s", formatPrice(o.TotalPrice)))
		when := metaStyle.Render(formatTime(o.CreatedAt))

		line := cursor + idStyle.Render(fmt.Sprintf("%-12s", id)) + "  " + status + " " + total + "  " + when
		if m.confirm && i == m.cursor {
			line += "  " + errorStyle.Render("cancel this order? ") + accentStyle.Render("y") + dimStyle.Render("/n")
		}
		if i == m.cursor {
			padded := line + strings.Repeat(" ", max(m.width-lipgloss.Width(line), 0))
			b.WriteString(selectedRowBg.Render(padded) + "\n")
		} else {
			b.WriteString(line + "\n")
		}
	}

	return truncateToHeight(b.String(), m.height)
}

func (m ordersModel) viewDetail() string {
	if m.cursor >= len(m.orders) {
		return ""
	}
	o := m.orders[m.cursor]

	var b strings.Builder
	b.WriteString(" " + dimStyle.Render("<- back (esc)") + "\n")
	b.WriteString(" " + selectedStyle.Render("order "+o.ID.String()) + "\n")

	meta := " " + StatusStyle(o.Status).Render(strings.ToLower(o.Status))
	meta += metaStyle.Render(" · ") + priceStyle.Render(formatPrice(o.TotalPrice))
	if !o.CreatedAt.IsZero() {
		meta += metaStyle.Render(" · " + formatTime(o.CreatedAt))
	}
	b.WriteString(meta + "\n\n")

	if len(o.Items) == 0 {
		b.WriteString(" " + dimStyle.Render("no line items on this order") + "\n")
	}
	for _, item := range o.Items {
		name := item.ProductID.String()
		if item.Product != nil && item.Product.Name != "" {
			name = item.Product.Name
		}
		qty := metaStyle.Render(fmt.Sprintf("×%d", item.Quantity))
		b.WriteString(" " + normalStyle.Render(truncStr(name, 40)) + "  " + qty + "  " + priceStyle.Render(formatPrice(item.Price*float64(item.Quantity))) + "\n")
	}

	if o.CanCancel() {
		b.WriteString("\n " + dimStyle.Render("x to cancel this order") + "\n")
	}
	if m.confirm {
		b.WriteString(" " + errorStyle.Render("cancel this order? ") + accentStyle.Render("y") + dimStyle.Render("/n") + "\n")
	}
	if m.statusMsg != "" {
		b.WriteString("\n " + m.statusMsg + "\n")
	}

	return truncateToHeight(b.String(), m.height)
}
