package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vitrinedev/vitrine/pkg/client"
	"github.com/vitrinedev/vitrine/pkg/domain"
)

// profileState is the state machine for inline profile editing.
type profileState int

const (
	profileNormal profileState = iota
	profileEditing
)

// profileFields is the editable field order for tab cycling. The keys are
// the wire names /users/me expects.
var profileFields = []struct {
	key   string
	label string
}{
	{"firstName", "first name"},
	{"lastName", "last name"},
	{"phone", "phone"},
	{"address", "address"},
}

type profileSavedMsg struct {
	user *domain.User
	err  error
}

type youModel struct {
	client    *client.Client
	user      *domain.User
	state     profileState
	values    []string // edit buffer, indexed like profileFields
	focus     int
	statusMsg string
	width     int
	height    int
}

func newYouModel(c *client.Client) youModel {
	return youModel{client: c, values: make([]string, len(profileFields))}
}

func (m youModel) Init() tea.Cmd {
	return m.load()
}

func (m youModel) load() tea.Cmd {
	c := m.client
	return func() tea.Msg {
		user, err := c.Me(context.Background())
		return meLoadedMsg{user: user, err: err}
	}
}

func (m youModel) editing() bool {
	return m.state != profileNormal
}

func (m youModel) Update(msg tea.Msg) (youModel, tea.Cmd) {
	switch msg := msg.(type) {
	case meLoadedMsg:
		if msg.err == nil && msg.user != nil {
			m.user = msg.user
		}
		return m, nil

	case profileSavedMsg:
		if msg.err != nil {
			m.statusMsg = errorStyle.Render(shortError(msg.err))
			return m, nil
		}
		if msg.user != nil {
			m.user = msg.user
		}
		m.state = profileNormal
		m.statusMsg = statusOKStyle.Render("profile saved")
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		m.statusMsg = ""
		if m.state == profileEditing {
			return m.handleKeyEditing(msg)
		}
		return m.handleKey(msg)
	}
	return m, nil
}

func (m youModel) handleKey(msg tea.KeyMsg) (youModel, tea.Cmd) {
	switch msg.String() {
	case "e":
		if m.user == nil {
			return m, nil
		}
		m.state = profileEditing
		m.focus = 0
		m.values = []string{m.user.FirstName, m.user.LastName, m.user.Phone, m.user.Address}
	case "r":
		return m, m.load()
	}
	return m, nil
}

func (m youModel) handleKeyEditing(msg tea.KeyMsg) (youModel, tea.Cmd) {
	switch msg.String() {
	case "tab":
		m.focus = (m.focus + 1) % len(profileFields)
	case "shift+tab":
		m.focus = (m.focus + len(profileFields) - 1) % len(profileFields)
	case "enter":
		fields := make(map[string]string, len(profileFields))
		for i, f := range profileFields {
			fields[f.key] = strings.TrimSpace(m.values[i])
		}
		c := m.client
		return m, func() tea.Msg {
			user, err := c.UpdateMe(context.Background(), fields)
			return profileSavedMsg{user: user, err: err}
		}
	case "esc":
		m.state = profileNormal
	default:
		m.values[m.focus] = editRune(m.values[m.focus], msg.String())
	}
	return m, nil
}

// helpKeys returns context-sensitive help text based on the current state.
func (m youModel) helpKeys() string {
	if m.state == profileEditing {
		return helpEntry("tab", "next field") + "  " + helpEntry("enter", "save") + "  " + helpEntry("esc", "cancel")
	}
	return helpEntry("e", "edit profile") + "  " + helpEntry("r", "reload") + "  " + helpEntry("h", "help") + "  " + helpEntry("q", "quit")
}

func (m youModel) View() string {
	var b strings.Builder

	if m.user == nil {
		b.WriteString(" " + dimStyle.Render("not signed in") + "\n")
		b.WriteString(" " + dimStyle.Render("run: vitrine login") + "\n")
		return b.String()
	}

	b.WriteString(" " + selectedStyle.Render(m.user.DisplayName()) + "\n")
	b.WriteString("   " + metaStyle.Render(m.user.Email) + "\n")

	if m.statusMsg != "" {
		b.WriteString("\n " + m.statusMsg + "\n")
	}

	b.WriteString("\n " + sectionHeaderStyle.Render("── PROFILE ──") + "\n")

	if m.state == profileEditing {
		b.WriteString(m.renderEditForm())
		return truncateToHeight(b.String(), m.height)
	}

	display := []string{m.user.FirstName, m.user.LastName, m.user.Phone, m.user.Address}
	for i, f := range profileFields {
		value := display[i]
		if value == "" {
			value = dimStyle.Render("—")
		} else {
			value = normalStyle.Render(value)
		}
		fmt.Fprintf(&b, "   %s %s\n", inputPromptStyle.Render(fmt.Sprintf("%-11s", f.label+":")), value)
	}
	b.WriteString("\n   " + dimStyle.Render("press e to edit") + "\n")

	return truncateToHeight(b.String(), m.height)
}

func (m youModel) renderEditForm() string {
	var b strings.Builder
	for i, f := range profileFields {
		label := inputPromptStyle.Render(fmt.Sprintf("%-11s", f.label+":"))
		if i == m.focus {
			b.WriteString("  " + accentStyle.Render(">") + " " + label + " " + m.values[i] + accentStyle.Render("_") + "\n")
		} else {
			b.WriteString("    " + label + " " + dimStyle.Render(m.values[i]) + "\n")
		}
	}
	b.WriteString("   " + dimStyle.Render("tab next · enter save · esc cancel") + "\n")
	return b.String()
}
