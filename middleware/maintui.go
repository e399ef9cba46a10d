package middleware

import (
	"log"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	bm "github.com/charmbracelet/wish/bubbletea"
	"github.com/kigodev/kigo/app"
	"github.com/kigodev/kigo/auth"
	"github.com/kigodev/kigo/db"
	"github.com/kigodev/kigo/domain"
	"github.com/kigodev/kigo/ui"
	"github.com/kigodev/kigo/ui/common"
	"github.com/kigodev/kigo/util"
	"github.com/muesli/termenv"
)

// MainTui wires one controller stack per SSH session: session service,
// effect interpreter, dispatcher and the root bubbletea model.
func MainTui(database *db.DB, conf *util.AppConfig) wish.Middleware {
	teaHandler := func(s ssh.Session) *tea.Program {
		pty, _, active := s.Pty()
		if !active {
			wish.Println(s, "no active terminal, skipping")
			return nil
		}

		svc := auth.NewService(database)
		svc.Closed = conf.Conf.Closed
		events := make(chan tea.Msg, 32)

		interp := &app.Interpreter{
			Store: database,
			Auth:  svc,
			Nav:   ui.NewNavigator(events),
			Push:  PushRegistrar{Database: database},
			Probe: Probe{},
			Fonts: common.Fonts{},
		}
		dispatcher := app.NewDispatcher(app.NewTransition(), interp)

		states, unsubStates := dispatcher.Subscribe()
		go ui.ForwardStates(states, events)

		// A returning SSH key signs in before the identity report, so
		// the subscriber delivers the account instead of "no session".
		pkHash := ""
		if pk := util.PublicKeyToString(s.PublicKey()); pk != "" {
			pkHash = util.PkToHash(pk)
			svc.AdoptPublicKey(pkHash)
		}

		unsubAuth := svc.Subscribe(func(acc *domain.Account) {
			if acc != nil && pkHash != "" && acc.Publickey == "" {
				if err := svc.AttachPublicKey(acc, pkHash); err != nil {
					log.Printf("Could not attach public key: %v", err)
				}
			}
			dispatcher.Dispatch(app.LoadedUser{Account: acc})
		})

		go func() {
			<-s.Context().Done()
			unsubAuth()
			unsubStates()
			dispatcher.Close()
		}()

		m := ui.NewModel(events, dispatcher, svc, database, conf.Conf.Place,
			pty.Window.Width, pty.Window.Height)
		return tea.NewProgram(m,
			tea.WithInput(s),
			tea.WithOutput(s),
			tea.WithAltScreen(),
			tea.WithReportFocus())
	}
	return bm.MiddlewareWithProgramHandler(teaHandler, termenv.ANSI256)
}
