package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vitrinedev/vitrine/pkg/domain"
)

func newTestApp() App {
	a := NewApp(nil, "https://vitrine.shop", "test")
	a.width = 80
	a.height = 30
	return a
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestAppTabSwitching(t *testing.T) {
	tests := []struct {
		key      string
		wantView view
	}{
		{"2", viewCart},
		{"3", viewOrders},
		{"4", viewWishlist},
		{"5", viewYou},
	}

	for _, tc := range tests {
		t.Run(tc.key, func(t *testing.T) {
			app := newTestApp()
			model, _ := app.Update(keyRunes(tc.key))
			a := model.(App)
			if a.view != tc.wantView {
				t.Errorf("after key %q: expected view=%d, got %d", tc.key, tc.wantView, a.view)
			}
		})
	}
}

func TestAppGlobalQuitOnQ(t *testing.T) {
	a := newTestApp()
	_, cmd := a.Update(keyRunes("q"))
	if cmd == nil {
		t.Fatal("expected quit command on 'q', got nil")
	}
}

func TestAppQNotFiredWhenEditingProfile(t *testing.T) {
	a := newTestApp()
	a.view = viewYou
	a.you.user = &domain.User{ID: "u1", Email: "a@b.com"}
	a.you.state = profileEditing
	a.you.values = make([]string, len(profileFields))

	model, _ := a.Update(keyRunes("q"))
	a = model.(App)
	if a.you.values[0] != "q" {
		t.Errorf("expected 'q' typed into the focused field, got %q", a.you.values[0])
	}
}

func TestAppHelpOverlayOpenAndClose(t *testing.T) {
	a := newTestApp()
	model, _ := a.Update(keyRunes("h"))
	a = model.(App)
	if !a.helpOpen {
		t.Fatal("expected helpOpen=true after 'h'")
	}

	view := a.View()
	if !strings.Contains(view, "vitrine login") {
		t.Errorf("expected command list in help overlay, got:\n%s", view)
	}

	model, _ = a.Update(tea.KeyMsg{Type: tea.KeyEsc})
	a = model.(App)
	if a.helpOpen {
		t.Error("expected helpOpen=false after Esc")
	}
}

func TestAppViewRendersTabBar(t *testing.T) {
	a := newTestApp()
	model, _ := a.Update(tea.WindowSizeMsg{Width: 80, Height: 30})
	a = model.(App)

	view := a.View()
	for _, tab := range []string{"Shop", "Cart", "Orders", "Wishlist", "You"} {
		if !strings.Contains(view, tab) {
			t.Errorf("expected %q tab in app view, got:\n%s", tab, view)
		}
	}
}

func TestAppHeaderShowsUserAndGuest(t *testing.T) {
	a := newTestApp()
	model, _ := a.Update(tea.WindowSizeMsg{Width: 80, Height: 30})
	a = model.(App)

	if view := a.View(); !strings.Contains(view, "browsing as guest") {
		t.Errorf("expected guest line before login, got:\n%s", view)
	}

	model, _ = a.Update(meLoadedMsg{user: &domain.User{ID: "u1", FirstName: "Ada", LastName: "Byron", Email: "a@b.com"}})
	a = model.(App)
	if view := a.View(); !strings.Contains(view, "Ada Byron") {
		t.Errorf("expected user name in header after meLoadedMsg, got:\n%s", view)
	}
}

func TestAppMeLoadedPropagatesToYou(t *testing.T) {
	a := newTestApp()
	model, _ := a.Update(meLoadedMsg{user: &domain.User{ID: "u1", Email: "a@b.com"}})
	a = model.(App)
	if a.you.user == nil || a.you.user.Email != "a@b.com" {
		t.Errorf("expected meLoadedMsg to propagate to you model, got %+v", a.you.user)
	}
}

func TestAppRetryProgressRoutedToShop(t *testing.T) {
	a := newTestApp()
	a.shop.loading = true

	model, _ := a.Update(RetryProgressMsg{Attempt: 1, Max: 3})
	a = model.(App)
	if !strings.Contains(a.shop.retryNote, "attempt 2 of 3") {
		t.Errorf("expected retry note 'attempt 2 of 3', got %q", a.shop.retryNote)
	}
	if view := a.shop.View(); !strings.Contains(view, "attempt 2 of 3") {
		t.Errorf("expected retry progress in shop view, got:\n%s", view)
	}
}

func TestAppHeaderShowsCartCount(t *testing.T) {
	a := newTestApp()
	model, _ := a.Update(tea.WindowSizeMsg{Width: 80, Height: 30})
	a = model.(App)
	a.user = &domain.User{ID: "u1", FirstName: "Ada", Email: "a@b.com"}
	a.cart.cart = domain.Cart{Items: []domain.CartItem{
		{ID: "c1", ProductID: "p1", Quantity: 2},
		{ID: "c2", ProductID: "p2", Quantity: 1},
	}}

	if view := a.View(); !strings.Contains(view, "3 in cart") {
		t.Errorf("expected cart count in header, got:\n%s", view)
	}
}
