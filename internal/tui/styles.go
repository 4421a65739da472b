package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderLogo renders "V I T R I N E" in the storefront accent color.
func renderLogo() string {
	const text = "VITRINE"
	letters := make([]string, 0, len(text))
	for _, ch := range text {
		letters = append(letters, string(ch))
	}
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#4cc38a")).
		Render(strings.Join(letters, "  "))
}

var (
	// Base styles, neutral palette
	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#8890a0"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#e4e4ec")).
			Bold(true)

	normalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#c0c4d0"))

	metaStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#505868"))

	// Help bar
	helpKeyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#8890a0"))

	helpLabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#505868"))

	// Accent / action styles
	accentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4cc38a"))

	statusOKStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4cc38a"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#b45555"))

	// Money and discounts
	priceStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#d4a844")).
			Bold(true)

	oldPriceStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#505868")).
			Strikethrough(true)

	discountStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#f0944a")).
			Bold(true)

	ratingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#facc15"))

	wishStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#e06090"))

	sectionHeaderStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#606878"))

	inputPromptStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#4cc38a")).
				Bold(true)

	// Selected row background
	selectedRowBg = lipgloss.NewStyle().Background(lipgloss.Color("#1e1e2a"))

	// Category colors cycled through the filter bar
	categoryColors = []lipgloss.Color{
		lipgloss.Color("#4cc38a"),
		lipgloss.Color("#60a0e0"),
		lipgloss.Color("#f0944a"),
		lipgloss.Color("#c084e0"),
		lipgloss.Color("#3ecce4"),
		lipgloss.Color("#e06060"),
		lipgloss.Color("#d4a844"),
		lipgloss.Color("#b8ccdf"),
	}

	// Order status colors
	orderStatusColors = map[string]lipgloss.Color{
		"pending":    lipgloss.Color("#d4a844"),
		"confirmed":  lipgloss.Color("#60a0e0"),
		"processing": lipgloss.Color("#60a0e0"),
		"shipped":    lipgloss.Color("#3ecce4"),
		"delivered":  lipgloss.Color("#4cc38a"),
		"completed":  lipgloss.Color("#4cc38a"),
		"cancelled":  lipgloss.Color("#b45555"),
		"refunded":   lipgloss.Color("#c084e0"),
	}
)

// CategoryStyle returns a bold style with a stable color per category name.
func CategoryStyle(name string) lipgloss.Style {
	if name == "" {
		return lipgloss.NewStyle().Foreground(lipgloss.Color("#606878")).Bold(true)
	}
	var sum int
	for _, ch := range name {
		sum += int(ch)
	}
	c := categoryColors[sum%len(categoryColors)]
	return lipgloss.NewStyle().Foreground(c).Bold(true)
}

// StatusStyle returns a bold style colored for the given order status.
func StatusStyle(status string) lipgloss.Style {
	if c, ok := orderStatusColors[strings.ToLower(status)]; ok {
		return lipgloss.NewStyle().Foreground(c).Bold(true)
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color("#8890a0")).Bold(true)
}

// helpEntry renders a single "key label" pair for help bars.
func helpEntry(key, label string) string {
	return helpKeyStyle.Render(key) + " " + helpLabelStyle.Render(label)
}

// helpItem is a selectable link in the help overlay.
type helpItem struct {
	label string
	desc  string
	url   string
}

var helpItems = []helpItem{
	{"Website", "vitrine.shop", "https://vitrine.shop"},
	{"Order Support", "vitrine.shop/support", "https://vitrine.shop/support"},
	{"Terms of Service", "vitrine.shop/terms", "https://vitrine.shop/terms"},
	{"Privacy Policy", "vitrine.shop/privacy", "https://vitrine.shop/privacy"},
}

// helpView renders the interactive help overlay with a cursor.
func helpView(cursor int) string {
	title := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#4cc38a")).
		Bold(true).
		Render("V I T R I N E")

	tagline := lipgloss.NewStyle().
		Foreground(lipgloss.Color("245")).
		Italic(true).
		Render("Fresh goods, straight from the terminal.")

	cmdStyle := lipgloss.NewStyle().Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	sectionStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Bold(true)
	cursorStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#4cc38a"))
	linkDescStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Italic(true)

	commands := []struct{ cmd, desc string }{
		{"vitrine", "Open the storefront (interactive TUI)"},
		{"vitrine login", "Sign in with email and password"},
		{"vitrine register", "Create an account"},
		{"vitrine logout", "Clear your session"},
		{"vitrine --version", "Show version"},
	}

	var b strings.Builder
	fmt.Fprintf(&b, "\n  %s\n\n  %s\n\n", title, tagline)

	fmt.Fprintf(&b, "  %s\n", sectionStyle.Render("Commands"))
	for _, c := range commands {
		fmt.Fprintf(&b, "    %s  %s\n", cmdStyle.Render(fmt.Sprintf("%-20s", c.cmd)), descStyle.Render(c.desc))
	}

	fmt.Fprintf(&b, "\n  %s\n", sectionStyle.Render("Links (enter to open)"))
	for i, item := range helpItems {
		label := cmdStyle.Render(fmt.Sprintf("%-20s", item.label))
		prefix := "    "
		if i == cursor {
			label = cursorStyle.Render(fmt.Sprintf("%-20s", item.label))
			prefix = "  > "
		}
		fmt.Fprintf(&b, "%s%s  %s\n", prefix, label, linkDescStyle.Render(item.desc))
	}
	return b.String()
}
