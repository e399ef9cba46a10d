package app

import (
	"github.com/google/uuid"
	"github.com/kigodev/kigo/domain"
)

// Route names the screens of the session state machine.
type Route string

const (
	RouteOnboarding Route = "onboarding"
	RouteEmail      Route = "email"
	RouteRegister   Route = "register"
	RouteLogin      Route = "login"
	RouteSign       Route = "sign"
	RouteCompose    Route = "compose"
	RouteFeed       Route = "feed"
	RouteSettings   Route = "settings"
)

// Effect is a closed set of declarative side-effect descriptions. Only
// the transition function creates them; each one is consumed exactly once
// by the interpreter.
type Effect interface{ isEffect() }

type LoadFonts struct{}

type CheckConnectivity struct{}

type HideSplash struct{}

type Navigate struct {
	Route Route
}

type LoadDays struct {
	Account *domain.Account
}

type PerformLogout struct{}

type Post struct {
	Account  *domain.Account
	Haiku    domain.Haiku
	Location string
}

type Block struct {
	Account    *domain.Account
	TargetId   uuid.UUID
	TargetName string
}

type Unblock struct {
	Account  *domain.Account
	TargetId uuid.UUID
}

type Report struct {
	ReporterId uuid.UUID
	TargetId   uuid.UUID
}

type SaveSignature struct {
	Account   *domain.Account
	Signature domain.Signature
}

type SaveUsername struct {
	Account *domain.Account
	Name    string
}

type RegisterPushToken struct {
	Account *domain.Account
}

func (LoadFonts) isEffect()         {}
func (CheckConnectivity) isEffect() {}
func (HideSplash) isEffect()        {}
func (Navigate) isEffect()          {}
func (LoadDays) isEffect()          {}
func (PerformLogout) isEffect()     {}
func (Post) isEffect()              {}
func (Block) isEffect()             {}
func (Unblock) isEffect()           {}
func (Report) isEffect()            {}
func (SaveSignature) isEffect()     {}
func (SaveUsername) isEffect()      {}
func (RegisterPushToken) isEffect() {}
