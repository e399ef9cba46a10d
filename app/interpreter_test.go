package app

import (
	"context"
	"errors"
	"reflect"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/kigodev/kigo/domain"
)

// fakeStore records calls and serves canned results.
type fakeStore struct {
	mu sync.Mutex

	days    []domain.Day
	blocked []domain.BlockedUser
	feedErr error
	postErr error

	posted    []domain.Haiku
	blocks    []uuid.UUID
	unblocks  []uuid.UUID
	reports   []uuid.UUID
	usernames []string
	sigs      []domain.Signature
	tokens    []string
}

func (f *fakeStore) Feed(ctx context.Context, userID uuid.UUID) ([]domain.Day, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.days, f.feedErr
}

func (f *fakeStore) BlockedUsers(ctx context.Context, userID uuid.UUID) ([]domain.BlockedUser, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.blocked, nil
}

func (f *fakeStore) SubmitPost(ctx context.Context, account *domain.Account, haiku domain.Haiku, location string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.postErr != nil {
		return f.postErr
	}
	f.posted = append(f.posted, haiku)
	return nil
}

func (f *fakeStore) Block(ctx context.Context, account *domain.Account, targetID uuid.UUID, targetName string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.blocks = append(f.blocks, targetID)
	return nil
}

func (f *fakeStore) Unblock(ctx context.Context, account *domain.Account, targetID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.unblocks = append(f.unblocks, targetID)
	return nil
}

func (f *fakeStore) Report(ctx context.Context, reporterID, targetID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reports = append(f.reports, targetID)
	return nil
}

func (f *fakeStore) UpdateSignature(ctx context.Context, account *domain.Account, sig domain.Signature) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sigs = append(f.sigs, sig)
	return nil
}

func (f *fakeStore) UpdateUsername(ctx context.Context, account *domain.Account, name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.usernames = append(f.usernames, name)
	return nil
}

func (f *fakeStore) SavePushToken(ctx context.Context, userID uuid.UUID, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tokens = append(f.tokens, token)
	return nil
}

type fakeSessions struct {
	mu       sync.Mutex
	signOuts int
}

func (f *fakeSessions) SignOut() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.signOuts++
	return nil
}

type fakeNav struct {
	mu     sync.Mutex
	routes []Route
	hidden bool
}

func (f *fakeNav) Navigate(route Route) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.routes = append(f.routes, route)
}

func (f *fakeNav) HideSplash() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.hidden = true
}

type fakePush struct {
	token string
	err   error
}

func (f *fakePush) RequestToken(ctx context.Context) (string, error) {
	return f.token, f.err
}

type fakeProbe struct{ online bool }

func (f *fakeProbe) IsReachable(ctx context.Context) bool { return f.online }

type fakeFonts struct{ err error }

func (f *fakeFonts) Load() error { return f.err }

func testInterpreter() (*Interpreter, *fakeStore, *fakeSessions, *fakeNav) {
	store := &fakeStore{}
	sessions := &fakeSessions{}
	nav := &fakeNav{}
	in := &Interpreter{
		Store: store,
		Auth:  sessions,
		Nav:   nav,
		Push:  &fakePush{token: "device-token"},
		Probe: &fakeProbe{online: true},
		Fonts: &fakeFonts{},
	}
	return in, store, sessions, nav
}

func TestInterpreterLoadFonts(t *testing.T) {
	in, _, _, _ := testInterpreter()

	msgs := in.Run(context.Background(), LoadFonts{})

	want := []Msg{FontsLoaded{}}
	if !reflect.DeepEqual(msgs, want) {
		t.Errorf("msgs = %#v, want %#v", msgs, want)
	}
}

func TestInterpreterCheckConnectivity(t *testing.T) {
	in, _, _, _ := testInterpreter()
	in.Probe = &fakeProbe{online: false}

	msgs := in.Run(context.Background(), CheckConnectivity{})

	want := []Msg{ConnectivityChecked{Online: false}}
	if !reflect.DeepEqual(msgs, want) {
		t.Errorf("msgs = %#v, want %#v", msgs, want)
	}
}

func TestInterpreterLoadDays(t *testing.T) {
	in, store, _, _ := testInterpreter()
	acc := testAccount("basho")
	store.days = []domain.Day{dayWithPost(testNow, acc)}
	store.blocked = []domain.BlockedUser{{TargetId: uuid.New(), TargetName: "troll"}}

	msgs := in.Run(context.Background(), LoadDays{Account: acc})

	if len(msgs) != 1 {
		t.Fatalf("want one message, got %#v", msgs)
	}
	set, ok := msgs[0].(SetDays)
	if !ok {
		t.Fatalf("want SetDays, got %#v", msgs[0])
	}
	if len(set.Days) != 1 || len(set.Blocked) != 1 {
		t.Errorf("payload mismatch: %#v", set)
	}
}

func TestInterpreterLoadDaysNormalizesNil(t *testing.T) {
	in, _, _, _ := testInterpreter()
	acc := testAccount("basho")

	msgs := in.Run(context.Background(), LoadDays{Account: acc})

	set := msgs[0].(SetDays)
	if set.Days == nil || set.Blocked == nil {
		t.Error("a successful load must deliver non-nil slices: empty means loaded-but-empty")
	}
}

func TestInterpreterLoadDaysFailureYieldsNothing(t *testing.T) {
	in, store, _, _ := testInterpreter()
	store.feedErr = errors.New("network down")

	msgs := in.Run(context.Background(), LoadDays{Account: testAccount("basho")})

	if len(msgs) != 0 {
		t.Errorf("a failed load must yield no messages, got %#v", msgs)
	}
}

func TestInterpreterPost(t *testing.T) {
	in, store, _, _ := testInterpreter()
	acc := testAccount("basho")
	haiku := domain.Haiku{Line1: "a", Line2: "b", Line3: "c"}

	msgs := in.Run(context.Background(), Post{Account: acc, Haiku: haiku, Location: "Edo"})

	if len(store.posted) != 1 || store.posted[0] != haiku {
		t.Errorf("post not submitted: %#v", store.posted)
	}
	want := []Msg{ReloadFeed{}}
	if !reflect.DeepEqual(msgs, want) {
		t.Errorf("msgs = %#v, want %#v", msgs, want)
	}
}

func TestInterpreterPostFailureIsSilent(t *testing.T) {
	in, store, _, _ := testInterpreter()
	store.postErr = errors.New("write failed")

	msgs := in.Run(context.Background(), Post{Account: testAccount("basho"), Haiku: domain.Haiku{Line1: "a"}})

	if len(msgs) != 0 {
		t.Errorf("a failed post must yield no messages, got %#v", msgs)
	}
}

func TestInterpreterReportIsFireAndForget(t *testing.T) {
	in, store, _, _ := testInterpreter()
	target := uuid.New()

	msgs := in.Run(context.Background(), Report{ReporterId: uuid.New(), TargetId: target})

	if len(msgs) != 0 {
		t.Errorf("report resolves to zero messages, got %#v", msgs)
	}
	if len(store.reports) != 1 || store.reports[0] != target {
		t.Errorf("report not recorded: %#v", store.reports)
	}
}

func TestInterpreterLogout(t *testing.T) {
	in, _, sessions, _ := testInterpreter()

	msgs := in.Run(context.Background(), PerformLogout{})

	if sessions.signOuts != 1 {
		t.Errorf("expected one sign-out, got %d", sessions.signOuts)
	}
	if len(msgs) != 0 {
		t.Errorf("logout resolves to zero messages, got %#v", msgs)
	}
}

func TestInterpreterNavigation(t *testing.T) {
	in, _, _, nav := testInterpreter()

	in.Run(context.Background(), Navigate{Route: RouteFeed})
	in.Run(context.Background(), HideSplash{})

	if len(nav.routes) != 1 || nav.routes[0] != RouteFeed {
		t.Errorf("routes = %#v", nav.routes)
	}
	if !nav.hidden {
		t.Error("splash should be hidden")
	}
}

func TestInterpreterPushToken(t *testing.T) {
	in, store, _, _ := testInterpreter()
	acc := testAccount("basho")

	msgs := in.Run(context.Background(), RegisterPushToken{Account: acc})

	if len(msgs) != 0 {
		t.Errorf("token registration resolves to zero messages, got %#v", msgs)
	}
	if len(store.tokens) != 1 || store.tokens[0] != "device-token" {
		t.Errorf("token not stored: %#v", store.tokens)
	}
}

func TestInterpreterPushTokenDeclined(t *testing.T) {
	in, store, _, _ := testInterpreter()
	in.Push = &fakePush{token: ""}

	in.Run(context.Background(), RegisterPushToken{Account: testAccount("basho")})

	if len(store.tokens) != 0 {
		t.Errorf("declined token must not be stored: %#v", store.tokens)
	}
}
