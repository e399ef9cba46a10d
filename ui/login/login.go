package login

import (
	"fmt"
	"log"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/kigodev/kigo/auth"
	"github.com/kigodev/kigo/ui/common"
)

type signedInMsg struct {
	err error
}

type resetSentMsg struct {
	err error
}

type Model struct {
	Password textinput.Model
	Err      string
	Status   string
	email    string
	svc      *auth.Service
	busy     bool
}

func InitialModel(svc *auth.Service, email string) Model {
	password := textinput.New()
	password.Placeholder = "password"
	password.EchoMode = textinput.EchoPassword
	password.Focus()
	password.CharLimit = 80
	password.Width = 40

	return Model{Password: password, email: email, svc: svc}
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case signedInMsg:
		m.busy = false
		if msg.err == auth.ErrWrongPassword {
			m.Err = "wrong password"
			m.Password.SetValue("")
		} else if msg.err != nil {
			m.Err = "sign-in failed, try again"
			log.Printf("Sign-in failed: %v", msg.err)
		}
		// Success is reported through the session service.
		return m, nil

	case resetSentMsg:
		m.busy = false
		if msg.err != nil {
			m.Err = "could not start a password reset"
		} else {
			m.Status = "reset requested, check with the operator for your token"
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			if m.busy {
				return m, nil
			}
			m.Err = ""
			m.Status = ""
			m.busy = true
			svc, address, password := m.svc, m.email, m.Password.Value()
			return m, func() tea.Msg {
				_, err := svc.SignIn(address, password)
				return signedInMsg{err: err}
			}
		case "ctrl+r":
			if m.busy {
				return m, nil
			}
			m.busy = true
			svc, address := m.svc, m.email
			return m, func() tea.Msg {
				return resetSentMsg{err: svc.SendPasswordReset(address)}
			}
		}
	}

	m.Password, cmd = m.Password.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	s := fmt.Sprintf(
		"%s\n\nWelcome back, %s\n\n%s\n\n%s",
		common.Banner(),
		m.email,
		m.Password.View(),
		common.HelpStyle.Render("(enter to sign in, ctrl+r to reset password, ctrl-c to quit)"),
	)
	if m.Err != "" {
		s += "\n\n" + common.ErrorStyle.Render(m.Err)
	}
	if m.Status != "" {
		s += "\n\n" + common.StatusStyle.Render(m.Status)
	}
	return s
}
