package app

import (
	"context"
	"log"

	"github.com/kigodev/kigo/domain"
)

// Interpreter executes one Effect against the collaborators and returns
// the follow-up messages. It never touches State, never panics and never
// surfaces an error to the dispatcher: failures are logged and resolve to
// zero messages.
type Interpreter struct {
	Store Store
	Auth  Sessions
	Nav   Navigator
	Push  PushRegistrar
	Probe ConnectivityProbe
	Fonts FontLoader
}

func (in *Interpreter) Run(ctx context.Context, eff Effect) []Msg {
	switch e := eff.(type) {

	case LoadFonts:
		if err := in.Fonts.Load(); err != nil {
			// Render falls back to plain styles; the gate still opens.
			log.Printf("Font loading failed: %v", err)
		}
		return []Msg{FontsLoaded{}}

	case CheckConnectivity:
		return []Msg{ConnectivityChecked{Online: in.Probe.IsReachable(ctx)}}

	case HideSplash:
		in.Nav.HideSplash()
		return nil

	case Navigate:
		in.Nav.Navigate(e.Route)
		return nil

	case LoadDays:
		days, err := in.Store.Feed(ctx, e.Account.Id)
		if err != nil {
			// Keep days unloaded; the foreground re-check retries.
			log.Printf("Could not load the feed: %v", err)
			return nil
		}
		blocked, err := in.Store.BlockedUsers(ctx, e.Account.Id)
		if err != nil {
			log.Printf("Could not load the block list: %v", err)
			blocked = []domain.BlockedUser{}
		}
		if days == nil {
			days = []domain.Day{}
		}
		if blocked == nil {
			blocked = []domain.BlockedUser{}
		}
		return []Msg{SetDays{Days: days, Blocked: blocked}}

	case PerformLogout:
		if err := in.Auth.SignOut(); err != nil {
			log.Printf("Sign-out failed: %v", err)
		}
		return nil

	case Post:
		if err := in.Store.SubmitPost(ctx, e.Account, e.Haiku, e.Location); err != nil {
			log.Printf("Haiku could not be posted: %v", err)
			return nil
		}
		return []Msg{ReloadFeed{}}

	case Block:
		if err := in.Store.Block(ctx, e.Account, e.TargetId, e.TargetName); err != nil {
			log.Printf("Block failed: %v", err)
			return nil
		}
		return []Msg{ReloadFeed{}}

	case Unblock:
		if err := in.Store.Unblock(ctx, e.Account, e.TargetId); err != nil {
			log.Printf("Unblock failed: %v", err)
			return nil
		}
		return []Msg{ReloadFeed{}}

	case Report:
		// Fire and forget.
		if err := in.Store.Report(ctx, e.ReporterId, e.TargetId); err != nil {
			log.Printf("Report failed: %v", err)
		}
		return nil

	case SaveSignature:
		if err := in.Store.UpdateSignature(ctx, e.Account, e.Signature); err != nil {
			log.Printf("Signature could not be saved: %v", err)
			return nil
		}
		return []Msg{ReloadFeed{}}

	case SaveUsername:
		if err := in.Store.UpdateUsername(ctx, e.Account, e.Name); err != nil {
			log.Printf("Username could not be saved: %v", err)
			return nil
		}
		return []Msg{ReloadFeed{}}

	case RegisterPushToken:
		token, err := in.Push.RequestToken(ctx)
		if err != nil {
			log.Printf("Push token request failed: %v", err)
			return nil
		}
		if token == "" {
			return nil
		}
		if err := in.Store.SavePushToken(ctx, e.Account.Id, token); err != nil {
			log.Printf("Push token could not be stored: %v", err)
		}
		return nil
	}

	return nil
}
