package feed

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/kigodev/kigo/domain"
	"github.com/kigodev/kigo/ui/common"
	"github.com/kigodev/kigo/util"
)

// BlockMsg asks for the selected author to be blocked.
type BlockMsg struct {
	TargetId   uuid.UUID
	TargetName string
}

// ReportMsg flags the selected author.
type ReportMsg struct {
	TargetId uuid.UUID
}

var (
	dayStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(common.COLOR_PURPLE)).
			Bold(true)

	authorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(common.COLOR_LIGHTBLUE)).
			Bold(true)

	haikuStyle = lipgloss.NewStyle().
			Align(lipgloss.Left).
			PaddingLeft(2)

	selectedStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color(common.COLOR_MAGENTA)).
			PaddingLeft(1)
)

// Model pages through the day-bucketed feed, one day at a time.
type Model struct {
	Days     []domain.Day
	DayIdx   int
	PostIdx  int
	selfId   uuid.UUID
	selfName string
}

func InitialModel(selfId uuid.UUID, selfName string) Model {
	return Model{selfId: selfId, selfName: selfName}
}

// SetDays replaces the pager's data, clamping the cursor.
func (m *Model) SetDays(days []domain.Day) {
	m.Days = days
	if m.DayIdx >= len(days) {
		m.DayIdx = 0
		m.PostIdx = 0
	}
	m.clampPost()
}

func (m *Model) clampPost() {
	if m.DayIdx < len(m.Days) {
		if n := len(m.Days[m.DayIdx].Posts); m.PostIdx >= n {
			m.PostIdx = 0
		}
	}
}

func (m Model) selected() *domain.Post {
	if m.DayIdx >= len(m.Days) {
		return nil
	}
	posts := m.Days[m.DayIdx].Posts
	if m.PostIdx >= len(posts) {
		return nil
	}
	return &posts[m.PostIdx]
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "left", "h":
		if m.DayIdx > 0 {
			m.DayIdx--
			m.PostIdx = 0
		}
	case "right", "l":
		if m.DayIdx < len(m.Days)-1 {
			m.DayIdx++
			m.PostIdx = 0
		}
	case "up", "k":
		if m.PostIdx > 0 {
			m.PostIdx--
		}
	case "down", "j":
		if p := m.DayIdx; p < len(m.Days) && m.PostIdx < len(m.Days[p].Posts)-1 {
			m.PostIdx++
		}
	case "b":
		if post := m.selected(); post != nil && post.AuthorId != m.selfId {
			return m, func() tea.Msg {
				return BlockMsg{TargetId: post.AuthorId, TargetName: post.AuthorName}
			}
		}
	case "r":
		if post := m.selected(); post != nil && post.AuthorId != m.selfId {
			return m, func() tea.Msg {
				return ReportMsg{TargetId: post.AuthorId}
			}
		}
	}
	return m, nil
}

func (m Model) View() string {
	var s strings.Builder

	if m.Days == nil {
		s.WriteString(common.CaptionStyle.Render("the pond"))
		s.WriteString("\n\n")
		s.WriteString(common.EmptyStyle.Render("fetching the feed..."))
		return s.String()
	}

	if len(m.Days) == 0 {
		s.WriteString(common.CaptionStyle.Render("the pond"))
		s.WriteString("\n\n")
		s.WriteString(common.EmptyStyle.Render("No haiku yet.\nBe the first to write one!"))
		return s.String()
	}

	day := m.Days[m.DayIdx]
	s.WriteString(common.CaptionStyle.Render(fmt.Sprintf("the pond — day %d of %d", m.DayIdx+1, len(m.Days))))
	s.WriteString("\n")
	s.WriteString(dayStyle.Render(day.Date.Format(util.DateFormat())))
	s.WriteString("\n\n")

	for i, post := range day.Posts {
		author := authorStyle.Render("@" + post.AuthorName)
		if post.AuthorName == m.selfName {
			author += common.EmptyStyle.Render(" (you)")
		}
		if post.Location != "" {
			author += common.EmptyStyle.Render(" · " + post.Location)
		}
		body := haikuStyle.Render(post.Haiku.String())

		entry := lipgloss.JoinVertical(lipgloss.Left, author, body)
		if i == m.PostIdx {
			entry = selectedStyle.Render(entry)
		}
		s.WriteString(entry)
		s.WriteString("\n\n")
	}

	return s.String()
}
