package tui

import (
	"strings"
	"testing"

	"github.com/vitrinedev/vitrine/pkg/domain"
)

func newTestWishlist() wishlistModel {
	m := newWishlistModel(nil)
	m.width = 80
	m.height = 24
	m, _ = m.Update(wishlistLoadedMsg{items: []domain.WishlistItem{
		{ID: "w1", ProductID: "p1", Product: &domain.Product{ID: "p1", Name: "Avocado", Price: 2.50}},
		{ID: "w2", ProductID: "p2", Product: &domain.Product{ID: "p2", Name: "Sourdough Loaf", Price: 6.00, Discount: 25}},
	}})
	return m
}

func TestWishlistRendersItems(t *testing.T) {
	m := newTestWishlist()
	view := m.View()
	if !strings.Contains(view, "Avocado") || !strings.Contains(view, "Sourdough") {
		t.Errorf("expected product names in wishlist view, got:\n%s", view)
	}
	if !strings.Contains(view, "WISHLIST 2") {
		t.Errorf("expected count header, got:\n%s", view)
	}
}

func TestWishlistEmptyState(t *testing.T) {
	m := newWishlistModel(nil)
	m.width = 80
	m.height = 24
	m, _ = m.Update(wishlistLoadedMsg{})
	if !strings.Contains(m.View(), "nothing saved yet") {
		t.Errorf("expected empty hint, got:\n%s", m.View())
	}
}

func TestWishlistMoveToCartProducesCommand(t *testing.T) {
	m := newTestWishlist()
	if _, cmd := m.Update(keyRunes("a")); cmd == nil {
		t.Fatal("expected move-to-cart command on 'a'")
	}
}

func TestWishlistRemoveProducesCommand(t *testing.T) {
	m := newTestWishlist()
	if _, cmd := m.Update(keyRunes("d")); cmd == nil {
		t.Fatal("expected remove command on 'd'")
	}
}

func TestWishlistClearNeedsConfirmation(t *testing.T) {
	m := newTestWishlist()

	m, cmd := m.Update(keyRunes("D"))
	if cmd != nil {
		t.Fatal("clear must not fire before confirmation")
	}
	if !m.confirm {
		t.Fatal("expected confirm=true after D")
	}

	m, cmd = m.Update(keyRunes("y"))
	if cmd == nil {
		t.Error("expected clear command after y")
	}
}
