package common

import "github.com/kigodev/kigo/app"

// The root model receives these from the controller's collaborators and
// from its child screens; they are the only tea messages that cross
// package boundaries.

// StateMsg carries a committed controller snapshot.
type StateMsg struct {
	State app.State
}

// NavigateMsg is a controller-driven route change.
type NavigateMsg struct {
	Route app.Route
}

// HideSplashMsg removes the boot splash.
type HideSplashMsg struct{}

// GotoMsg is a screen-local route change for the pre-auth flow, where
// the controller is not involved yet.
type GotoMsg struct {
	Route app.Route
}

// SignedMsg reports a finished signature capture.
type SignedMsg struct{}
