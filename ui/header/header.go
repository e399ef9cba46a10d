package header

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/kigodev/kigo/domain"
	"github.com/kigodev/kigo/ui/common"
	"github.com/kigodev/kigo/util"
)

type Model struct {
	Width int
	Acc   *domain.Account
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(tea.Msg) (Model, tea.Cmd) {
	return m, nil
}

func (m Model) View() string {
	if m.Acc == nil {
		return ""
	}
	return renderHeader(m.Acc, m.Width)
}

func renderHeader(acc *domain.Account, width int) string {
	// Three boxes, each with padding(1) left+right and a top/bottom
	// border: 4 chars of overhead per box.
	overhead := 12
	availableWidth := width - overhead
	if availableWidth < 40 {
		availableWidth = 40
	}

	usernameWidth := availableWidth / 4
	versionWidth := availableWidth / 2
	sinceWidth := availableWidth - usernameWidth - versionWidth

	username := lipgloss.
		NewStyle().
		SetString("@"+acc.Username).
		Align(lipgloss.Left).
		Background(lipgloss.Color(common.COLOR_PURPLE)).
		Padding(1).
		Height(2).
		Width(usernameWidth).
		Border(lipgloss.NormalBorder(), true, false, true, false).
		BorderForeground(lipgloss.Color(common.COLOR_MAGENTA)).
		String()

	version := lipgloss.
		NewStyle().
		SetString(util.GetNameAndVersion()).
		Width(versionWidth).
		Height(2).
		Background(lipgloss.Color(common.COLOR_GREY)).
		Padding(1).
		Border(lipgloss.NormalBorder(), true, false, true, false).
		BorderForeground(lipgloss.Color(common.COLOR_MAGENTA)).
		String()

	since := lipgloss.
		NewStyle().
		SetString("writing since: "+acc.CreatedAt.Format(util.DateFormat())).
		Background(lipgloss.Color(common.COLOR_MAGENTA)).
		Padding(1).
		Align(lipgloss.Left).
		Height(2).
		Width(sinceWidth).
		Border(lipgloss.NormalBorder(), true, false, true, false).
		BorderForeground(lipgloss.Color(common.COLOR_MAGENTA)).
		String()

	return lipgloss.JoinHorizontal(
		lipgloss.Left,
		username,
		version,
		since,
	)
}
