package app

import (
	"context"

	"github.com/google/uuid"
	"github.com/kigodev/kigo/domain"
)

// The interpreter's view of the outside world. Production implementations
// live in db/, auth/ and ui/; tests substitute fakes.

// Store is the hosted data service: feed, block list and all mutations.
type Store interface {
	Feed(ctx context.Context, userID uuid.UUID) ([]domain.Day, error)
	BlockedUsers(ctx context.Context, userID uuid.UUID) ([]domain.BlockedUser, error)
	SubmitPost(ctx context.Context, account *domain.Account, haiku domain.Haiku, location string) error
	Block(ctx context.Context, account *domain.Account, targetID uuid.UUID, targetName string) error
	Unblock(ctx context.Context, account *domain.Account, targetID uuid.UUID) error
	Report(ctx context.Context, reporterID, targetID uuid.UUID) error
	UpdateSignature(ctx context.Context, account *domain.Account, sig domain.Signature) error
	UpdateUsername(ctx context.Context, account *domain.Account, name string) error
	SavePushToken(ctx context.Context, userID uuid.UUID, token string) error
}

// Sessions is the slice of the auth collaborator the interpreter needs;
// sign-in and registration are driven by the UI screens directly.
type Sessions interface {
	SignOut() error
}

// Navigator switches the visible screen. Navigate is fire-and-forget and
// idempotent when the route is already current.
type Navigator interface {
	Navigate(route Route)
	HideSplash()
}

// PushRegistrar issues the device's push token; an empty token means the
// device declined.
type PushRegistrar interface {
	RequestToken(ctx context.Context) (string, error)
}

type ConnectivityProbe interface {
	IsReachable(ctx context.Context) bool
}

// FontLoader readies the render assets. Load blocks until done.
type FontLoader interface {
	Load() error
}
