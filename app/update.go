package app

import (
	"time"

	"github.com/google/uuid"
	"github.com/kigodev/kigo/domain"
)

// Transition is the pure state-transition function. Now is injectable so
// calendar-day decisions are deterministic under test.
type Transition struct {
	Now func() time.Time
}

func NewTransition() Transition {
	return Transition{Now: time.Now}
}

// Update maps one message onto the next state and the effects to run.
// It is total over Msg, performs no I/O and never panics; messages that
// need a signed-in account are no-ops without one.
func (t Transition) Update(s State, msg Msg) (State, []Effect) {
	switch m := msg.(type) {

	case FontsLoaded:
		s.FontsReady = true
		return t.land(s)

	case LoadedUser:
		return t.identityReported(s, m.Account)

	case SetDays:
		days := m.Days
		if days == nil {
			days = []domain.Day{}
		}
		blocked := m.Blocked
		if blocked == nil {
			blocked = []domain.BlockedUser{}
		}
		firstLoad := s.Days == nil
		s.Days = days
		s.Blocked = blocked
		if !firstLoad || s.User.Account == nil {
			// Silent refresh: replace the cache, no navigation.
			return s, nil
		}
		if HasPostedToday(s.User.Account.Id, days, t.Now()) {
			return s, []Effect{Navigate{Route: RouteFeed}}
		}
		return s, []Effect{Navigate{Route: RouteCompose}}

	case ReloadFeed:
		if s.User.Account == nil {
			return s, nil
		}
		return s, []Effect{LoadDays{Account: s.User.Account}}

	case Publish:
		if s.User.Account == nil {
			return s, nil
		}
		// Invalidate the cache so the next load counts as a first load,
		// and navigate optimistically without waiting for the post.
		s.Days = nil
		return s, []Effect{
			Post{Account: s.User.Account, Haiku: m.Haiku, Location: m.Location},
			Navigate{Route: RouteFeed},
		}

	case Logout:
		s = endSession(s)
		return s, []Effect{PerformLogout{}, Navigate{Route: RouteOnboarding}}

	case AccountDeleted:
		// The backend already removed the session; only navigate.
		s = endSession(s)
		return s, []Effect{Navigate{Route: RouteOnboarding}}

	case BlockUser:
		if s.User.Account == nil {
			return s, nil
		}
		return s, []Effect{Block{Account: s.User.Account, TargetId: m.TargetId, TargetName: m.TargetName}}

	case UnblockUser:
		if s.User.Account == nil {
			return s, nil
		}
		return s, []Effect{Unblock{Account: s.User.Account, TargetId: m.TargetId}}

	case ReportUser:
		if s.User.Account == nil {
			return s, nil
		}
		return s, []Effect{Report{ReporterId: s.User.Account.Id, TargetId: m.TargetId}}

	case UpdateSignature:
		if s.User.Account == nil {
			return s, nil
		}
		acc := *s.User.Account
		acc.Signature = m.Signature
		s.User = Identity{Resolved: true, Account: &acc}
		return s, []Effect{SaveSignature{Account: s.User.Account, Signature: m.Signature}}

	case UpdateUsername:
		if s.User.Account == nil {
			return s, nil
		}
		acc := *s.User.Account
		acc.Username = m.Name
		s.User = Identity{Resolved: true, Account: &acc}
		return s, []Effect{SaveUsername{Account: s.User.Account, Name: m.Name}}

	case AppForegrounded:
		if s.Offline != nil && *s.Offline {
			return s, []Effect{CheckConnectivity{}}
		}
		// The calendar day may have changed while the app sat open.
		if s.User.Account != nil && s.Days != nil &&
			!HasPostedToday(s.User.Account.Id, s.Days, t.Now()) {
			return s, []Effect{Navigate{Route: RouteCompose}}
		}
		return s, nil

	case ConnectivityChecked:
		offline := !m.Online
		s.Offline = &offline
		return s, nil
	}

	return s, nil
}

// identityReported handles the auth collaborator's report. A nil account
// always lands on onboarding, regardless of the fonts gate: there is
// nothing to wait for when there is no session.
func (t Transition) identityReported(s State, acc *domain.Account) (State, []Effect) {
	if acc == nil {
		if s.User.Account != nil {
			// A real session ended; fence its in-flight effects.
			s = endSession(s)
			return s, []Effect{HideSplash{}, Navigate{Route: RouteOnboarding}}
		}
		// No session to end. The boot batch is still in flight and must
		// land, so the epoch stays put.
		s.Loading = false
		s.User = Identity{Resolved: true}
		s.Days = nil
		s.Blocked = nil
		return s, []Effect{HideSplash{}, Navigate{Route: RouteOnboarding}}
	}

	prev := s.User
	s.User = Identity{Resolved: true, Account: acc}

	if prev.Resolved && prev.Account != nil {
		if prev.Account.Id == acc.Id {
			// Profile refresh within the same session.
			return s, nil
		}
		// Account switch: the old account's cache must not leak.
		s.Days = nil
		s.Blocked = nil
		s.Epoch++
		return s, []Effect{LoadDays{Account: acc}, RegisterPushToken{Account: acc}}
	}

	if prev.Resolved && prev.Account == nil {
		// Sign-in after onboarding.
		s.Loading = false
		s.Epoch++
		return s, []Effect{LoadDays{Account: acc}, RegisterPushToken{Account: acc}}
	}

	return t.land(s)
}

// land decides the landing screen once both fonts and identity have been
// reported; whichever arrives second triggers it. Order independent.
func (t Transition) land(s State) (State, []Effect) {
	if !s.FontsReady || !s.User.Resolved || !s.Loading {
		return s, nil
	}
	s.Loading = false
	if s.User.Account == nil {
		return s, []Effect{HideSplash{}, Navigate{Route: RouteOnboarding}}
	}
	return s, []Effect{
		HideSplash{},
		LoadDays{Account: s.User.Account},
		RegisterPushToken{Account: s.User.Account},
	}
}

// endSession clears everything scoped to the signed-in account and bumps
// the epoch so in-flight effects of the old session are fenced off.
func endSession(s State) State {
	s.Loading = false
	s.User = Identity{Resolved: true}
	s.Days = nil
	s.Blocked = nil
	s.Epoch++
	return s
}

// HasPostedToday reports whether days contains an entry for now's
// calendar date with a post authored by userID. Calendar-date equality,
// not a 24-hour window.
func HasPostedToday(userID uuid.UUID, days []domain.Day, now time.Time) bool {
	for _, day := range days {
		if !day.SameDate(now) {
			continue
		}
		for _, p := range day.Posts {
			if p.AuthorId == userID {
				return true
			}
		}
	}
	return false
}
