package register

import (
	"fmt"
	"log"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/kigodev/kigo/auth"
	"github.com/kigodev/kigo/db"
	"github.com/kigodev/kigo/ui/common"
	"github.com/kigodev/kigo/util"
)

const cacheKeyDisplayName = "display_name"

// createdMsg reports the outcome of account creation.
type createdMsg struct {
	err error
}

type Model struct {
	Username    textinput.Model
	DisplayName textinput.Model
	Password    textinput.Model
	Step        int // 0=username, 1=display name, 2=password
	Err         string
	email       string
	svc         *auth.Service
	database    *db.DB
	creating    bool
}

func InitialModel(svc *auth.Service, database *db.DB, email string) Model {
	username := textinput.New()
	username.Placeholder = "basho"
	username.Focus()
	username.CharLimit = 15
	username.Width = 20

	displayName := textinput.New()
	displayName.Placeholder = "Matsuo Basho"
	displayName.CharLimit = 50
	displayName.Width = 40
	if cached, err := database.CacheGet(cacheKeyDisplayName); err == nil && cached != "" {
		displayName.SetValue(cached)
	}

	password := textinput.New()
	password.Placeholder = "password"
	password.EchoMode = textinput.EchoPassword
	password.CharLimit = 80
	password.Width = 40

	return Model{
		Username:    username,
		DisplayName: displayName,
		Password:    password,
		email:       email,
		svc:         svc,
		database:    database,
	}
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) createAccountCmd() tea.Cmd {
	svc := m.svc
	database := m.database
	username := strings.TrimSpace(m.Username.Value())
	display := strings.TrimSpace(m.DisplayName.Value())
	password := m.Password.Value()
	address := m.email

	return func() tea.Msg {
		_, err := svc.CreateAccount(address, password, username, display, nil)
		if err != nil {
			return createdMsg{err: err}
		}
		if display != "" {
			if err := database.CacheSet(cacheKeyDisplayName, display); err != nil {
				log.Printf("Could not cache display name: %v", err)
			}
		}
		return createdMsg{}
	}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case createdMsg:
		m.creating = false
		if msg.err != nil {
			switch msg.err {
			case auth.ErrUsernameTaken:
				m.Err = "that pen name is already taken"
				m.Step = 0
				m.Username.Focus()
				m.Password.Blur()
			case auth.ErrEmailInUse:
				m.Err = "this email already has an account"
			case auth.ErrRegistrationClosed:
				m.Err = "this pond is invite-only right now"
			default:
				m.Err = "could not create the account, try again"
				log.Printf("Registration failed: %v", msg.err)
			}
			return m, nil
		}
		// The session service reports the new identity on its own;
		// signature capture is the remaining step.
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "enter" && !m.creating {
			switch m.Step {
			case 0:
				if strings.TrimSpace(m.Username.Value()) == "" {
					m.Err = "a pen name is required"
					return m, nil
				}
				m.Err = ""
				m.Step = 1
				m.DisplayName.Focus()
				m.Username.Blur()
				return m, nil
			case 1:
				m.Step = 2
				m.Password.Focus()
				m.DisplayName.Blur()
				return m, nil
			case 2:
				if len(m.Password.Value()) < 8 {
					m.Err = "password needs at least 8 characters"
					return m, nil
				}
				m.Err = ""
				m.creating = true
				return m, m.createAccountCmd()
			}
		}
	}

	switch m.Step {
	case 0:
		m.Username, cmd = m.Username.Update(msg)
	case 1:
		m.DisplayName, cmd = m.DisplayName.Update(msg)
	case 2:
		m.Password, cmd = m.Password.Update(msg)
	}

	return m, cmd
}

func (m Model) View() string {
	var prompt string
	var input string
	var help string

	switch m.Step {
	case 0:
		prompt = "Choose a pen name, it signs every haiku you publish:"
		input = m.Username.View()
		help = "(enter to continue, ctrl-c to quit)"
	case 1:
		prompt = fmt.Sprintf("Pen name: %s\n\nChoose your display name (optional):", m.Username.Value())
		input = m.DisplayName.View()
		help = "(enter to continue, leave empty to skip)"
	case 2:
		prompt = fmt.Sprintf("Pen name: %s\nDisplay name: %s\n\nChoose a password:",
			m.Username.Value(),
			m.DisplayName.Value())
		input = m.Password.View()
		help = "(enter to create your account, ctrl-c to quit)"
	}

	if m.creating {
		help = "creating your account..."
	}

	s := fmt.Sprintf(
		"Joining kigo v%s\n\n%s\n\n%s\n\n%s",
		util.GetVersion(),
		prompt,
		input,
		common.HelpStyle.Render(help),
	)
	if m.Err != "" {
		s += "\n\n" + common.ErrorStyle.Render(m.Err)
	}
	return s + "\n"
}
