package onboarding

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/kigodev/kigo/app"
	"github.com/kigodev/kigo/ui/common"
	"github.com/kigodev/kigo/util"
)

var Style = lipgloss.NewStyle().
	Align(lipgloss.Center, lipgloss.Center).
	BorderStyle(lipgloss.ThickBorder()).
	Margin(0, 3).
	Padding(2, 6)

type Model struct{}

func InitialModel() Model {
	return Model{}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		if key.String() == "enter" {
			return m, func() tea.Msg {
				return common.GotoMsg{Route: app.RouteEmail}
			}
		}
	}
	return m, nil
}

func (m Model) View() string {
	return fmt.Sprintf(
		"%s\n\n%s\n\n%s\n\n%s",
		common.Banner(),
		"one haiku a day, every day",
		util.GetNameAndVersion(),
		common.HelpStyle.Render("(enter to begin, ctrl-c to quit)"),
	)
}

func (m Model) ViewWithSize(termWidth, termHeight int) string {
	bordered := Style.Render(m.View())
	return lipgloss.Place(termWidth, termHeight, lipgloss.Center, lipgloss.Center, bordered)
}
