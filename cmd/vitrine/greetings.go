package main

import (
	"fmt"
	"math/rand"

	"github.com/charmbracelet/lipgloss"
)

var greetings = [...]string{
	"The stalls are stocked. The terminal is open.",
	"Fresh produce, zero page loads.",
	"Your cart remembers you. Do you remember your cart?",
	"Somewhere, a sourdough loaf is waiting for a buyer with taste.",
	"Browsing is free. The olive oil is not.",
	"No pop-ups, no cookie banners. Just cookies you can actually eat.",
	"The best checkout flow is the one that fits in 80 columns.",
	"Market's open. Bring your appetite and your keyboard.",
}

func printHelp() {
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
	commands := []struct{ cmd, desc string }{
		{"vitrine", "Open the storefront (interactive TUI)"},
		{"vitrine login", "Sign in with email and password"},
		{"vitrine register", "Create an account"},
		{"vitrine logout", "Clear your session"},
		{"vitrine --version", "Show version"},
		{"vitrine help", "You are here"},
	}

	fmt.Printf("\n  %s\n\n  %s\n\n  Commands:\n", title, tagline)
	for _, c := range commands {
		fmt.Printf("    %s  %s\n", cmdStyle.Render(fmt.Sprintf("%-20s", c.cmd)), descStyle.Render(c.desc))
	}
	url := lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Render("https://vitrine.shop")
	fmt.Printf("\n  %s\n\n", url)
}

func printGreeting() {
	title := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#4cc38a")).
		Bold(true).
		Render("VITRINE")

	quote := lipgloss.NewStyle().
		Foreground(lipgloss.Color("245")).
		Italic(true).
		Render(greetings[rand.Intn(len(greetings))])

	fmt.Printf("\n%s\n%s\n\n", title, quote)
}
