package tui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vitrinedev/vitrine/pkg/domain"
)

func newTestCart() cartModel {
	m := newCartModel(nil)
	m.width = 80
	m.height = 24
	m, _ = m.Update(cartLoadedMsg{cart: &domain.Cart{Items: []domain.CartItem{
		{ID: "c1", ProductID: "p1", Quantity: 2, Price: 2.50, Product: &domain.Product{ID: "p1", Name: "Avocado"}},
		{ID: "c2", ProductID: "p2", Quantity: 1, Price: 4.50, Product: &domain.Product{ID: "p2", Name: "Sourdough Loaf"}},
	}}})
	return m
}

func TestCartRendersItemsAndSubtotal(t *testing.T) {
	m := newTestCart()
	view := m.View()

	if !strings.Contains(view, "Avocado") {
		t.Errorf("expected item name in cart view, got:\n%s", view)
	}
	if !strings.Contains(view, "CART 3 items") {
		t.Errorf("expected item count header, got:\n%s", view)
	}
	// 2×2.50 + 1×4.50
	if !strings.Contains(view, "$9.50") {
		t.Errorf("expected subtotal $9.50, got:\n%s", view)
	}
}

func TestCartEmptyState(t *testing.T) {
	m := newCartModel(nil)
	m.width = 80
	m.height = 24
	m, _ = m.Update(cartLoadedMsg{cart: &domain.Cart{}})

	if !strings.Contains(m.View(), "your cart is empty") {
		t.Errorf("expected empty-cart hint, got:\n%s", m.View())
	}
}

func TestCartQuantityKeysProduceCommands(t *testing.T) {
	m := newTestCart()
	if _, cmd := m.Update(keyRunes("+")); cmd == nil {
		t.Error("expected update command on '+'")
	}
	if _, cmd := m.Update(keyRunes("-")); cmd == nil {
		t.Error("expected command on '-' (update or remove)")
	}
}

func TestCartMinusOnSingleQuantityRemoves(t *testing.T) {
	m := newTestCart()
	m.cursor = 1 // quantity 1 line

	_, cmd := m.bumpQuantity(-1)
	if cmd == nil {
		t.Fatal("expected remove command when quantity would drop below 1")
	}
}

func TestCartClearNeedsConfirmation(t *testing.T) {
	m := newTestCart()

	m, cmd := m.Update(keyRunes("D"))
	if cmd != nil {
		t.Fatal("clear must not fire before confirmation")
	}
	if !m.confirm {
		t.Fatal("expected confirm=true after D")
	}

	// n cancels
	m, _ = m.Update(keyRunes("n"))
	if m.confirm {
		t.Error("expected confirm=false after n")
	}

	// y fires the clear
	m, _ = m.Update(keyRunes("D"))
	m, cmd = m.Update(keyRunes("y"))
	if cmd == nil {
		t.Error("expected clear command after y")
	}
	if m.confirm {
		t.Error("expected confirm reset after y")
	}
}

func TestCartCheckoutOnEnter(t *testing.T) {
	m := newTestCart()
	if _, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter}); cmd == nil {
		t.Fatal("expected checkout command on enter")
	}

	// Empty cart: no checkout
	empty := newCartModel(nil)
	empty, _ = empty.Update(cartLoadedMsg{cart: &domain.Cart{}})
	if _, cmd := empty.Update(tea.KeyMsg{Type: tea.KeyEnter}); cmd != nil {
		t.Error("expected no checkout command for an empty cart")
	}
}

func TestCartCheckoutResultStatus(t *testing.T) {
	m := newTestCart()
	m, _ = m.Update(checkoutDoneMsg{order: &domain.Order{ID: "o42", Status: domain.OrderPending}})
	if !strings.Contains(m.statusMsg, "order placed") || !strings.Contains(m.statusMsg, "o42") {
		t.Errorf("statusMsg = %q, want order confirmation with id", m.statusMsg)
	}

	m, _ = m.Update(checkoutDoneMsg{err: errors.New("client.CreateOrder: HTTP 401: Unauthorized - Please login")})
	if !strings.Contains(m.statusMsg, "Unauthorized") {
		t.Errorf("statusMsg = %q, want the server error surfaced", m.statusMsg)
	}
}

func TestCartLoadErrorShowsRetryHint(t *testing.T) {
	m := newCartModel(nil)
	m.width = 80
	m.height = 24
	m, _ = m.Update(cartLoadedMsg{err: errors.New("client.Cart: HTTP 500: Internal server error")})

	view := m.View()
	if !strings.Contains(view, "HTTP 500") {
		t.Errorf("expected error in view, got:\n%s", view)
	}
	if !strings.Contains(view, "press r to try again") {
		t.Errorf("expected retry hint, got:\n%s", view)
	}
}
