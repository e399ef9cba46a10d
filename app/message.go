package app

import (
	"github.com/google/uuid"
	"github.com/kigodev/kigo/domain"
)

// Msg is a closed set of events delivered to the transition function.
// Variants come from the UI, from the auth collaborator, or from the
// effect interpreter; nothing else constructs them.
type Msg interface{ isMsg() }

// FontsLoaded reports that the render assets are ready. Sent once.
type FontsLoaded struct{}

// LoadedUser is the auth collaborator's identity report: a nil Account
// means "no session".
type LoadedUser struct {
	Account *domain.Account
}

// SetDays delivers a loaded feed together with the session's block list.
type SetDays struct {
	Days    []domain.Day
	Blocked []domain.BlockedUser
}

// ReloadFeed asks for the cached feed to be fetched again; emitted by the
// interpreter after a mutating effect succeeds.
type ReloadFeed struct{}

// Publish submits the composed haiku. Syllable validity is checked by the
// compose screen, not here.
type Publish struct {
	Haiku    domain.Haiku
	Location string
}

type Logout struct{}

// AccountDeleted arrives after the backend has already removed the
// account and ended the session.
type AccountDeleted struct{}

type BlockUser struct {
	TargetId   uuid.UUID
	TargetName string
}

type UnblockUser struct {
	TargetId uuid.UUID
}

type ReportUser struct {
	TargetId uuid.UUID
}

type UpdateSignature struct {
	Signature domain.Signature
}

type UpdateUsername struct {
	Name string
}

// AppForegrounded is sent when the terminal regains focus.
type AppForegrounded struct{}

type ConnectivityChecked struct {
	Online bool
}

func (FontsLoaded) isMsg()         {}
func (LoadedUser) isMsg()          {}
func (SetDays) isMsg()             {}
func (ReloadFeed) isMsg()          {}
func (Publish) isMsg()             {}
func (Logout) isMsg()              {}
func (AccountDeleted) isMsg()      {}
func (BlockUser) isMsg()           {}
func (UnblockUser) isMsg()         {}
func (ReportUser) isMsg()          {}
func (UpdateSignature) isMsg()     {}
func (UpdateUsername) isMsg()      {}
func (AppForegrounded) isMsg()     {}
func (ConnectivityChecked) isMsg() {}
