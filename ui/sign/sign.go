package sign

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/kigodev/kigo/domain"
	"github.com/kigodev/kigo/ui/common"
)

const (
	padWidth  = 36
	padHeight = 9
)

// DoneMsg carries the captured signature to the root model.
type DoneMsg struct {
	Signature domain.Signature
}

var (
	padStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color(common.COLOR_LIGHTBLUE)).
			Padding(0, 1)

	inkStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color(common.COLOR_MAGENTA))
	cursorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(common.COLOR_GREEN)).Bold(true)
)

// Model is a terminal signature pad: the arrow keys move the pen, space
// raises and lowers it, and the stroke order is preserved.
type Model struct {
	X, Y    int
	PenDown bool
	Strokes domain.Signature
	drawn   map[[2]int]bool
}

func InitialModel(existing domain.Signature) Model {
	m := Model{
		X:       padWidth / 2,
		Y:       padHeight / 2,
		Strokes: existing,
		drawn:   make(map[[2]int]bool),
	}
	for _, p := range existing {
		if !p.PenUp {
			m.drawn[[2]int{p.X, p.Y}] = true
		}
	}
	return m
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m *Model) plot() {
	m.Strokes = append(m.Strokes, domain.StrokePoint{X: m.X, Y: m.Y})
	m.drawn[[2]int{m.X, m.Y}] = true
}

func (m *Model) move(dx, dy int) {
	x, y := m.X+dx, m.Y+dy
	if x < 0 || x >= padWidth || y < 0 || y >= padHeight {
		return
	}
	m.X, m.Y = x, y
	if m.PenDown {
		m.plot()
	}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "up", "k":
		m.move(0, -1)
	case "down", "j":
		m.move(0, 1)
	case "left", "h":
		m.move(-1, 0)
	case "right", "l":
		m.move(1, 0)
	case " ":
		if m.PenDown {
			m.Strokes = append(m.Strokes, domain.StrokePoint{X: m.X, Y: m.Y, PenUp: true})
			m.PenDown = false
		} else {
			m.PenDown = true
			m.plot()
		}
	case "c":
		m.Strokes = nil
		m.drawn = make(map[[2]int]bool)
		m.PenDown = false
	case "enter":
		if len(m.Strokes) == 0 {
			return m, nil
		}
		sig := m.Strokes
		return m, func() tea.Msg {
			return DoneMsg{Signature: sig}
		}
	}

	return m, nil
}

func (m Model) View() string {
	var rows []string
	for y := 0; y < padHeight; y++ {
		var row strings.Builder
		for x := 0; x < padWidth; x++ {
			switch {
			case x == m.X && y == m.Y:
				cursor := "+"
				if m.PenDown {
					cursor = "█"
				}
				row.WriteString(cursorStyle.Render(cursor))
			case m.drawn[[2]int{x, y}]:
				row.WriteString(inkStyle.Render("█"))
			default:
				row.WriteString(" ")
			}
		}
		rows = append(rows, row.String())
	}

	pen := "pen up"
	if m.PenDown {
		pen = "pen down"
	}

	return fmt.Sprintf(
		"%s\n%s\n\n%s",
		common.CaptionStyle.Render("sign your work"),
		padStyle.Render(strings.Join(rows, "\n")),
		common.HelpStyle.Render(fmt.Sprintf(
			"%s\t\tarrows: move • space: raise/lower pen • c: clear • enter: keep", pen)),
	)
}
