package tui

import (
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/vitrinedev/vitrine/pkg/domain"
)

// formatTime renders a relative timestamp for order displays.
func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	d := time.Since(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	case d < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	default:
		return t.Format("Jan 2")
	}
}

// truncStr truncates a string to maxLen runes, appending an ellipsis if needed.
func truncStr(s string, maxLen int) string {
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	runes := []rune(s)
	return string(runes[:maxLen-1]) + "…"
}

// formatPrice renders an amount as "$12.34".
func formatPrice(amount float64) string {
	return fmt.Sprintf("$%.2f", amount)
}

// renderProductPrice renders the price column for a product, showing the
// struck-through original price next to the discounted one when a discount
// applies.
func renderProductPrice(p domain.Product) string {
	if p.Discount > 0 {
		return oldPriceStyle.Render(formatPrice(p.Price)) + " " +
			priceStyle.Render(formatPrice(p.FinalPrice())) + " " +
			discountStyle.Render(fmt.Sprintf("-%.0f%%", p.Discount))
	}
	return priceStyle.Render(formatPrice(p.Price))
}
