package email

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/kigodev/kigo/auth"
	"github.com/kigodev/kigo/ui/common"
)

// DoneMsg reports the entered address and whether it belongs to an
// existing account.
type DoneMsg struct {
	Email  string
	Exists bool
}

type Model struct {
	TextInput textinput.Model
	Err       string
	svc       *auth.Service
}

func InitialModel(svc *auth.Service) Model {
	ti := textinput.New()
	ti.Placeholder = "you@example.com"
	ti.Focus()
	ti.CharLimit = 80
	ti.Width = 40

	return Model{TextInput: ti, svc: svc}
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "enter" {
		address := strings.TrimSpace(m.TextInput.Value())
		if !strings.Contains(address, "@") {
			m.Err = "that does not look like an email address"
			return m, nil
		}
		m.Err = ""
		svc := m.svc
		return m, func() tea.Msg {
			return DoneMsg{Email: address, Exists: svc.HasAccount(address)}
		}
	}

	m.TextInput, cmd = m.TextInput.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	s := fmt.Sprintf(
		"%s\n\nWhat is your email address?\n\n%s\n\n%s",
		common.Banner(),
		m.TextInput.View(),
		common.HelpStyle.Render("(enter to continue, ctrl-c to quit)"),
	)
	if m.Err != "" {
		s += "\n\n" + common.ErrorStyle.Render(m.Err)
	}
	return s
}
