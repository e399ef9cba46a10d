package compose

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/kigodev/kigo/domain"
	"github.com/kigodev/kigo/ui/common"
	"github.com/kigodev/kigo/util"
)

// DoneMsg carries a metrically valid haiku ready for publishing.
type DoneMsg struct {
	Haiku domain.Haiku
}

var wanted = [3]int{5, 7, 5}

var (
	okStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color(common.COLOR_GREEN))
	offStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(common.COLOR_GREY))
)

type Model struct {
	Lines  [3]textinput.Model
	Active int
	Err    string
}

func InitialModel() Model {
	placeholders := [3]string{"an old silent pond", "a frog jumps into the pond", "splash, silence again"}

	var lines [3]textinput.Model
	for i := range lines {
		ti := textinput.New()
		ti.Placeholder = placeholders[i]
		ti.CharLimit = 80
		ti.Width = 50
		lines[i] = ti
	}
	lines[0].Focus()

	return Model{Lines: lines}
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m *Model) focusLine(i int) {
	for j := range m.Lines {
		if j == i {
			m.Lines[j].Focus()
		} else {
			m.Lines[j].Blur()
		}
	}
	m.Active = i
}

func (m Model) haiku() domain.Haiku {
	return domain.Haiku{
		Line1: util.NormalizeInput(m.Lines[0].Value()),
		Line2: util.NormalizeInput(m.Lines[1].Value()),
		Line3: util.NormalizeInput(m.Lines[2].Value()),
	}
}

// meterOK reports whether every line hits its target syllable count.
func (m Model) meterOK() bool {
	for i, line := range m.haiku().Lines() {
		if util.SyllableCount(line) != wanted[i] {
			return false
		}
	}
	return true
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "enter", "down":
			if m.Active < 2 {
				m.focusLine(m.Active + 1)
				return m, nil
			}
			if key.String() == "enter" {
				if !m.meterOK() {
					m.Err = "the meter is off, aim for 5-7-5"
					return m, nil
				}
				m.Err = ""
				haiku := m.haiku()
				for i := range m.Lines {
					m.Lines[i].SetValue("")
				}
				m.focusLine(0)
				return m, func() tea.Msg {
					return DoneMsg{Haiku: haiku}
				}
			}
		case "up":
			if m.Active > 0 {
				m.focusLine(m.Active - 1)
				return m, nil
			}
		}
	}

	m.Lines[m.Active], cmd = m.Lines[m.Active].Update(msg)
	return m, cmd
}

func (m Model) View() string {
	var s strings.Builder

	s.WriteString(common.CaptionStyle.Render("today's haiku"))
	s.WriteString("\n\n")

	for i := range m.Lines {
		count := util.SyllableCount(m.Lines[i].Value())
		meter := fmt.Sprintf(" %d/%d", count, wanted[i])
		if count == wanted[i] {
			meter = okStyle.Render(meter)
		} else {
			meter = offStyle.Render(meter)
		}
		s.WriteString(m.Lines[i].View())
		s.WriteString(meter)
		s.WriteString("\n\n")
	}

	if m.Err != "" {
		s.WriteString(common.ErrorStyle.Render(m.Err))
		s.WriteString("\n\n")
	}

	s.WriteString(common.HelpStyle.Render("up/down: switch line • enter on last line: publish"))
	return s.String()
}
