package settings

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/kigodev/kigo/auth"
	"github.com/kigodev/kigo/domain"
	"github.com/kigodev/kigo/ui/common"
)

// Messages the root model acts on.
type (
	RenameMsg  struct{ Name string }
	ResignMsg  struct{}
	UnblockMsg struct{ TargetId uuid.UUID }
	LogoutMsg  struct{}
	DeletedMsg struct{}
)

type deleteResultMsg struct {
	err error
}

type mode int

const (
	modeMenu mode = iota
	modeRename
	modeBlocked
	modeDeleteConfirm
	modeDeletePassword
)

var menuItems = []string{
	"change pen name",
	"redo signature",
	"blocked poets",
	"sign out",
	"delete account",
}

var (
	itemStyle     = lipgloss.NewStyle().PaddingLeft(2)
	selectedStyle = lipgloss.NewStyle().
			PaddingLeft(2).
			Foreground(lipgloss.Color(common.COLOR_MAGENTA)).
			Bold(true)

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(common.COLOR_RED)).
			Bold(true)
)

type Model struct {
	Blocked []domain.BlockedUser
	Err     string
	Status  string

	mode       mode
	cursor     int
	blockedIdx int
	rename     textinput.Model
	password   textinput.Model
	svc        *auth.Service
}

func InitialModel(svc *auth.Service, username string) Model {
	rename := textinput.New()
	rename.Placeholder = username
	rename.CharLimit = 15
	rename.Width = 20

	password := textinput.New()
	password.Placeholder = "password"
	password.EchoMode = textinput.EchoPassword
	password.CharLimit = 80
	password.Width = 40

	return Model{rename: rename, password: password, svc: svc}
}

// SetBlocked refreshes the block list shown in the blocked-poets view.
func (m *Model) SetBlocked(blocked []domain.BlockedUser) {
	m.Blocked = blocked
	if m.blockedIdx >= len(blocked) {
		m.blockedIdx = 0
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case deleteResultMsg:
		if msg.err == auth.ErrWrongPassword {
			m.Err = "wrong password"
			m.password.SetValue("")
			return m, nil
		}
		if msg.err != nil {
			m.Err = "could not delete the account"
			m.mode = modeMenu
			return m, nil
		}
		return m, func() tea.Msg { return DeletedMsg{} }

	case tea.KeyMsg:
		switch m.mode {
		case modeMenu:
			return m.updateMenu(msg)
		case modeRename:
			if msg.String() == "enter" {
				name := strings.TrimSpace(m.rename.Value())
				if name == "" {
					m.Err = "a pen name is required"
					return m, nil
				}
				m.Err = ""
				m.mode = modeMenu
				m.rename.Blur()
				return m, func() tea.Msg { return RenameMsg{Name: name} }
			}
			if msg.String() == "esc" {
				m.mode = modeMenu
				m.rename.Blur()
				return m, nil
			}
		case modeBlocked:
			return m.updateBlocked(msg)
		case modeDeleteConfirm:
			switch msg.String() {
			case "y", "Y":
				m.mode = modeDeletePassword
				m.password.Focus()
				return m, textinput.Blink
			case "n", "N", "esc":
				m.mode = modeMenu
				m.Status = "deletion cancelled"
			}
			return m, nil
		case modeDeletePassword:
			if msg.String() == "enter" {
				svc, password := m.svc, m.password.Value()
				return m, func() tea.Msg {
					return deleteResultMsg{err: svc.DeleteAccount(password)}
				}
			}
			if msg.String() == "esc" {
				m.mode = modeMenu
				m.password.Blur()
				m.password.SetValue("")
				return m, nil
			}
		}
	}

	switch m.mode {
	case modeRename:
		m.rename, cmd = m.rename.Update(msg)
	case modeDeletePassword:
		m.password, cmd = m.password.Update(msg)
	}
	return m, cmd
}

func (m Model) updateMenu(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(menuItems)-1 {
			m.cursor++
		}
	case "enter":
		m.Err = ""
		m.Status = ""
		switch m.cursor {
		case 0:
			m.mode = modeRename
			m.rename.Focus()
			return m, textinput.Blink
		case 1:
			return m, func() tea.Msg { return ResignMsg{} }
		case 2:
			m.mode = modeBlocked
		case 3:
			return m, func() tea.Msg { return LogoutMsg{} }
		case 4:
			m.mode = modeDeleteConfirm
		}
	}
	return m, nil
}

func (m Model) updateBlocked(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.blockedIdx > 0 {
			m.blockedIdx--
		}
	case "down", "j":
		if m.blockedIdx < len(m.Blocked)-1 {
			m.blockedIdx++
		}
	case "enter", "u":
		if m.blockedIdx < len(m.Blocked) {
			target := m.Blocked[m.blockedIdx].TargetId
			return m, func() tea.Msg { return UnblockMsg{TargetId: target} }
		}
	case "esc":
		m.mode = modeMenu
	}
	return m, nil
}

func (m Model) View() string {
	var s strings.Builder

	s.WriteString(common.CaptionStyle.Render("settings"))
	s.WriteString("\n\n")

	switch m.mode {
	case modeMenu:
		for i, item := range menuItems {
			if i == m.cursor {
				s.WriteString(selectedStyle.Render("> " + item))
			} else {
				s.WriteString(itemStyle.Render("  " + item))
			}
			s.WriteString("\n")
		}
		s.WriteString("\n")
		s.WriteString(common.HelpStyle.Render("up/down: select • enter: choose"))

	case modeRename:
		s.WriteString("New pen name:\n\n")
		s.WriteString(m.rename.View())
		s.WriteString("\n\n")
		s.WriteString(common.HelpStyle.Render("(enter to save, esc to cancel)"))

	case modeBlocked:
		if len(m.Blocked) == 0 {
			s.WriteString(common.EmptyStyle.Render("Nobody is blocked."))
		} else {
			for i, b := range m.Blocked {
				line := "@" + b.TargetName
				if i == m.blockedIdx {
					s.WriteString(selectedStyle.Render("> " + line))
				} else {
					s.WriteString(itemStyle.Render("  " + line))
				}
				s.WriteString("\n")
			}
		}
		s.WriteString("\n")
		s.WriteString(common.HelpStyle.Render("up/down: select • enter/u: unblock • esc: back"))

	case modeDeleteConfirm:
		s.WriteString(warningStyle.Render("This permanently deletes your account and every haiku you wrote."))
		s.WriteString("\n\n")
		s.WriteString("This cannot be undone. Continue?\n\n")
		s.WriteString(common.HelpStyle.Render("press 'y' to continue or 'n'/'esc' to cancel"))

	case modeDeletePassword:
		s.WriteString(warningStyle.Render("Final step:"))
		s.WriteString(" enter your password to delete the account.\n\n")
		s.WriteString(m.password.View())
		s.WriteString("\n\n")
		s.WriteString(common.HelpStyle.Render("(enter to delete, esc to cancel)"))
	}

	if m.Err != "" {
		s.WriteString("\n\n" + common.ErrorStyle.Render(m.Err))
	}
	if m.Status != "" {
		s.WriteString("\n\n" + common.StatusStyle.Render(m.Status))
	}

	return s.String()
}
