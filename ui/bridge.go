package ui

import (
	"log"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/kigodev/kigo/app"
	"github.com/kigodev/kigo/ui/common"
)

// Navigator feeds controller-driven screen changes into the tea loop.
// Sends never block: a session that stopped draining its events is
// already on the way out.
type Navigator struct {
	events chan<- tea.Msg
}

func NewNavigator(events chan<- tea.Msg) Navigator {
	return Navigator{events: events}
}

func (n Navigator) Navigate(route app.Route) {
	n.send(common.NavigateMsg{Route: route})
}

func (n Navigator) HideSplash() {
	n.send(common.HideSplashMsg{})
}

func (n Navigator) send(msg tea.Msg) {
	select {
	case n.events <- msg:
	default:
		log.Printf("Dropping UI event %T, session not draining", msg)
	}
}

// ForwardStates pumps committed controller snapshots into the tea loop
// until the subscription channel closes.
func ForwardStates(states <-chan app.State, events chan<- tea.Msg) {
	for s := range states {
		select {
		case events <- common.StateMsg{State: s}:
		default:
			log.Println("Dropping state snapshot, session not draining")
		}
	}
}
