// Package app is kigo's application controller: an immutable State, a
// closed Msg/Effect vocabulary, a pure transition function and a
// dispatcher that serializes message delivery while running effects
// concurrently. The UI and the collaborators never touch State directly;
// everything flows through messages.
package app

import (
	"github.com/kigodev/kigo/domain"
)

// Identity is the tri-state of the session user: unresolved until the
// auth collaborator reports, then resolved with either no account (signed
// out) or a concrete account. Once resolved it never reverts.
type Identity struct {
	Resolved bool
	Account  *domain.Account
}

// State is the one canonical snapshot, owned by the Dispatcher and
// replaced wholesale on every message.
type State struct {
	Loading    bool
	FontsReady bool
	User       Identity

	// Days is nil until the feed has been loaded this session; a loaded
	// but empty feed is a non-nil empty slice. The distinction selects
	// first-load navigation vs silent refresh.
	Days    []domain.Day
	Blocked []domain.BlockedUser

	// Offline is nil until the connectivity probe has reported.
	Offline *bool

	// Epoch is bumped at identity boundaries; the dispatcher drops
	// effect results stamped with an older epoch.
	Epoch uint64
}

// NewState returns the boot state and the effects that start the session.
func NewState() (State, []Effect) {
	return State{Loading: true}, []Effect{LoadFonts{}, CheckConnectivity{}}
}
