package ui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/kigodev/kigo/app"
	"github.com/kigodev/kigo/auth"
	"github.com/kigodev/kigo/db"
	"github.com/kigodev/kigo/domain"
	"github.com/kigodev/kigo/ui/common"
	"github.com/kigodev/kigo/ui/compose"
	"github.com/kigodev/kigo/ui/email"
	"github.com/kigodev/kigo/ui/feed"
	"github.com/kigodev/kigo/ui/header"
	"github.com/kigodev/kigo/ui/login"
	"github.com/kigodev/kigo/ui/onboarding"
	"github.com/kigodev/kigo/ui/register"
	"github.com/kigodev/kigo/ui/settings"
	"github.com/kigodev/kigo/ui/sign"
)

var screenStyle = lipgloss.NewStyle().
	Align(lipgloss.Top, lipgloss.Top).
	BorderStyle(lipgloss.HiddenBorder()).
	MarginLeft(1)

// MainModel is the session's root bubbletea model. It renders whatever
// screen the controller routed to and translates screen events into
// controller messages.
type MainModel struct {
	width  int
	height int

	dispatcher *app.Dispatcher
	svc        *auth.Service
	database   *db.DB
	place      string
	events     <-chan tea.Msg

	route        app.Route
	pendingRoute app.Route
	splash       bool
	state        app.State
	email        string

	headerModel     header.Model
	onboardingModel onboarding.Model
	emailModel      email.Model
	registerModel   register.Model
	loginModel      login.Model
	signModel       sign.Model
	composeModel    compose.Model
	feedModel       feed.Model
	settingsModel   settings.Model
}

func NewModel(events <-chan tea.Msg, dispatcher *app.Dispatcher, svc *auth.Service,
	database *db.DB, place string, width, height int) MainModel {

	return MainModel{
		width:           common.DefaultWindowWidth(width),
		height:          common.DefaultWindowHeight(height),
		dispatcher:      dispatcher,
		svc:             svc,
		database:        database,
		place:           place,
		events:          events,
		route:           app.RouteOnboarding,
		splash:          true,
		onboardingModel: onboarding.InitialModel(),
		emailModel:      email.InitialModel(svc),
		loginModel:      login.InitialModel(svc, ""),
		registerModel:   register.InitialModel(svc, database, ""),
		signModel:       sign.InitialModel(nil),
		composeModel:    compose.InitialModel(),
	}
}

func waitForEvent(events <-chan tea.Msg) tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-events
		if !ok {
			return nil
		}
		return msg
	}
}

func (m MainModel) Init() tea.Cmd {
	return tea.Batch(waitForEvent(m.events), m.composeModel.Init())
}

// resetPreAuth throws away every screen that holds credentials.
func (m *MainModel) resetPreAuth() {
	m.email = ""
	m.onboardingModel = onboarding.InitialModel()
	m.emailModel = email.InitialModel(m.svc)
	m.loginModel = login.InitialModel(m.svc, "")
	m.registerModel = register.InitialModel(m.svc, m.database, "")
	m.signModel = sign.InitialModel(nil)
}

// adoptIdentity rebuilds the signed-in screens for the session account.
func (m *MainModel) adoptIdentity(acc *domain.Account) {
	m.headerModel = header.Model{Width: m.width, Acc: acc}
	m.feedModel = feed.InitialModel(acc.Id, acc.Username)
	m.feedModel.SetDays(m.state.Days)
	m.settingsModel = settings.InitialModel(m.svc, acc.Username)
	m.settingsModel.SetBlocked(m.state.Blocked)
	m.signModel = sign.InitialModel(acc.Signature)
}

func (m MainModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = common.DefaultWindowWidth(msg.Width)
		m.height = common.DefaultWindowHeight(msg.Height)
		m.headerModel.Width = m.width
		return m, nil

	case tea.FocusMsg:
		m.dispatcher.Dispatch(app.AppForegrounded{})
		return m, nil

	case common.StateMsg:
		prev := m.state
		m.state = msg.State

		acc := m.state.User.Account
		prevAcc := prev.User.Account
		if acc != nil && (prevAcc == nil || prevAcc.Id != acc.Id) {
			m.adoptIdentity(acc)
			if m.route == app.RouteRegister {
				// Freshly registered; capture the signature before
				// letting the controller's route through.
				m.route = app.RouteSign
			}
		}
		if acc != nil {
			m.headerModel.Acc = acc
			m.feedModel.SetDays(m.state.Days)
			m.settingsModel.SetBlocked(m.state.Blocked)
		}
		return m, waitForEvent(m.events)

	case common.NavigateMsg:
		if m.route == app.RouteSign {
			m.pendingRoute = msg.Route
			return m, waitForEvent(m.events)
		}
		m.route = msg.Route
		if msg.Route == app.RouteOnboarding {
			m.resetPreAuth()
		}
		return m, waitForEvent(m.events)

	case common.HideSplashMsg:
		m.splash = false
		return m, waitForEvent(m.events)

	case common.GotoMsg:
		m.route = msg.Route
		if msg.Route == app.RouteEmail {
			m.emailModel = email.InitialModel(m.svc)
			cmds = append(cmds, m.emailModel.Init())
		}
		return m, tea.Batch(cmds...)

	case email.DoneMsg:
		m.email = msg.Email
		if msg.Exists {
			m.loginModel = login.InitialModel(m.svc, msg.Email)
			m.route = app.RouteLogin
			return m, m.loginModel.Init()
		}
		m.registerModel = register.InitialModel(m.svc, m.database, msg.Email)
		m.route = app.RouteRegister
		return m, m.registerModel.Init()

	case sign.DoneMsg:
		m.dispatcher.Dispatch(app.UpdateSignature{Signature: msg.Signature})
		next := m.pendingRoute
		m.pendingRoute = ""
		if next == "" || next == app.RouteOnboarding {
			next = app.RouteFeed
			if acc := m.state.User.Account; acc != nil &&
				!app.HasPostedToday(acc.Id, m.state.Days, time.Now()) {
				next = app.RouteCompose
			}
		}
		m.route = next
		return m, nil

	case compose.DoneMsg:
		m.dispatcher.Dispatch(app.Publish{Haiku: msg.Haiku, Location: m.place})
		return m, nil

	case feed.BlockMsg:
		m.dispatcher.Dispatch(app.BlockUser{TargetId: msg.TargetId, TargetName: msg.TargetName})
		return m, nil

	case feed.ReportMsg:
		m.dispatcher.Dispatch(app.ReportUser{TargetId: msg.TargetId})
		return m, nil

	case settings.RenameMsg:
		m.dispatcher.Dispatch(app.UpdateUsername{Name: msg.Name})
		return m, nil

	case settings.ResignMsg:
		m.route = app.RouteSign
		return m, nil

	case settings.UnblockMsg:
		m.dispatcher.Dispatch(app.UnblockUser{TargetId: msg.TargetId})
		return m, nil

	case settings.LogoutMsg:
		m.dispatcher.Dispatch(app.Logout{})
		return m, nil

	case settings.DeletedMsg:
		m.dispatcher.Dispatch(app.AccountDeleted{})
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "tab":
			if next, ok := m.nextSignedInRoute(); ok {
				m.route = next
				return m, nil
			}
		}
		return m.updateActiveScreen(msg)
	}

	// Screen-internal messages (async results) go to every screen that
	// produces them.
	m.emailModel, cmd = m.emailModel.Update(msg)
	cmds = append(cmds, cmd)
	m.registerModel, cmd = m.registerModel.Update(msg)
	cmds = append(cmds, cmd)
	m.loginModel, cmd = m.loginModel.Update(msg)
	cmds = append(cmds, cmd)
	m.settingsModel, cmd = m.settingsModel.Update(msg)
	cmds = append(cmds, cmd)
	m.composeModel, cmd = m.composeModel.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

// nextSignedInRoute cycles compose, feed and settings.
func (m MainModel) nextSignedInRoute() (app.Route, bool) {
	switch m.route {
	case app.RouteCompose:
		return app.RouteFeed, true
	case app.RouteFeed:
		return app.RouteSettings, true
	case app.RouteSettings:
		return app.RouteCompose, true
	}
	return "", false
}

func (m MainModel) updateActiveScreen(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.route {
	case app.RouteOnboarding:
		m.onboardingModel, cmd = m.onboardingModel.Update(msg)
	case app.RouteEmail:
		m.emailModel, cmd = m.emailModel.Update(msg)
	case app.RouteRegister:
		m.registerModel, cmd = m.registerModel.Update(msg)
	case app.RouteLogin:
		m.loginModel, cmd = m.loginModel.Update(msg)
	case app.RouteSign:
		m.signModel, cmd = m.signModel.Update(msg)
	case app.RouteCompose:
		m.composeModel, cmd = m.composeModel.Update(msg)
	case app.RouteFeed:
		m.feedModel, cmd = m.feedModel.Update(msg)
	case app.RouteSettings:
		m.settingsModel, cmd = m.settingsModel.Update(msg)
	}
	return m, cmd
}

func (m MainModel) View() string {
	if m.splash {
		splash := fmt.Sprintf("%s\n\n%s", common.Banner(),
			common.EmptyStyle.Render("warming the ink..."))
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, splash)
	}

	switch m.route {
	case app.RouteOnboarding:
		return m.onboardingModel.ViewWithSize(m.width, m.height)
	case app.RouteEmail:
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			m.emailModel.View())
	case app.RouteRegister:
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			m.registerModel.View())
	case app.RouteLogin:
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			m.loginModel.View())
	case app.RouteSign:
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			m.signModel.View())
	}

	// Signed-in screens share the header and help bar.
	var body string
	switch m.route {
	case app.RouteCompose:
		body = m.composeModel.View()
	case app.RouteFeed:
		body = m.feedModel.View()
	case app.RouteSettings:
		body = m.settingsModel.View()
	}

	s := m.headerModel.View() + "\n"
	s += screenStyle.Render(body)
	s += "\n" + common.HelpStyle.Render(m.helpLine())
	return s
}

func (m MainModel) helpLine() string {
	var viewCommands string
	switch m.route {
	case app.RouteFeed:
		viewCommands = "←/→: day • ↑/↓: poem • b: block • r: report"
	case app.RouteCompose:
		viewCommands = "↑/↓: line • enter: publish"
	case app.RouteSettings:
		viewCommands = "↑/↓: select • enter: choose"
	default:
		viewCommands = " "
	}

	line := fmt.Sprintf("keys > tab: next screen • %s • ctrl-c: exit", viewCommands)
	if m.state.Offline != nil && *m.state.Offline {
		line = "OFFLINE\t\t" + line
	}
	return line
}
