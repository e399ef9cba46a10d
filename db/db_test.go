package db

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/kigodev/kigo/domain"
	_ "modernc.org/sqlite"
)

// setupTestDB creates an in-memory SQLite database for testing
func setupTestDB(t *testing.T) *DB {
	database, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Failed to open in-memory database: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	return database
}

func makeAccount(t *testing.T, database *DB, username string) *domain.Account {
	t.Helper()
	acc := &domain.Account{
		Id:           uuid.New(),
		Username:     username,
		DisplayName:  username,
		Email:        username + "@example.org",
		PasswordHash: "bcrypt-placeholder",
		CreatedAt:    time.Now(),
	}
	if err := database.CreateAccount(acc); err != nil {
		t.Fatalf("CreateAccount failed: %v", err)
	}
	return acc
}

func TestCreateAndReadAccount(t *testing.T) {
	database := setupTestDB(t)
	acc := makeAccount(t, database, "basho")

	got, err := database.ReadAccountById(acc.Id)
	if err != nil {
		t.Fatalf("ReadAccountById failed: %v", err)
	}
	if got.Username != "basho" || got.Email != "basho@example.org" {
		t.Errorf("Account mismatch: %+v", got)
	}

	byEmail, err := database.ReadAccountByEmail("basho@example.org")
	if err != nil {
		t.Fatalf("ReadAccountByEmail failed: %v", err)
	}
	if byEmail.Id != acc.Id {
		t.Errorf("Expected id %s, got %s", acc.Id, byEmail.Id)
	}
}

func TestDuplicateUsernameRejected(t *testing.T) {
	database := setupTestDB(t)
	makeAccount(t, database, "basho")

	dup := &domain.Account{
		Id:           uuid.New(),
		Username:     "basho",
		Email:        "other@example.org",
		PasswordHash: "x",
		CreatedAt:    time.Now(),
	}
	if err := database.CreateAccount(dup); err == nil {
		t.Error("Expected a constraint error for the duplicate username")
	}
}

func TestSubmitPostAndFeed(t *testing.T) {
	database := setupTestDB(t)
	acc := makeAccount(t, database, "basho")
	haiku := domain.Haiku{Line1: "an old silent pond", Line2: "a frog jumps into the pond", Line3: "splash! silence again"}

	if err := database.SubmitPost(context.Background(), acc, haiku, "Edo"); err != nil {
		t.Fatalf("SubmitPost failed: %v", err)
	}

	days, err := database.Feed(context.Background(), acc.Id)
	if err != nil {
		t.Fatalf("Feed failed: %v", err)
	}
	if len(days) != 1 {
		t.Fatalf("Expected 1 day, got %d", len(days))
	}
	if len(days[0].Posts) != 1 {
		t.Fatalf("Expected 1 post, got %d", len(days[0].Posts))
	}
	post := days[0].Posts[0]
	if post.AuthorId != acc.Id || post.AuthorName != "basho" {
		t.Errorf("Author mismatch: %+v", post)
	}
	if post.Haiku != haiku {
		t.Errorf("Haiku mismatch: %+v", post.Haiku)
	}
	if post.Location != "Edo" {
		t.Errorf("Location mismatch: %s", post.Location)
	}
}

func TestFeedEmptyIsNotNil(t *testing.T) {
	database := setupTestDB(t)
	acc := makeAccount(t, database, "basho")

	days, err := database.Feed(context.Background(), acc.Id)
	if err != nil {
		t.Fatalf("Feed failed: %v", err)
	}
	if days == nil {
		t.Error("Empty feed should be an empty slice, not nil")
	}
	if len(days) != 0 {
		t.Errorf("Expected no days, got %d", len(days))
	}
}

func TestFeedFiltersBlockedAuthors(t *testing.T) {
	database := setupTestDB(t)
	me := makeAccount(t, database, "basho")
	troll := makeAccount(t, database, "troll")

	database.SubmitPost(context.Background(), me, domain.Haiku{Line1: "a", Line2: "b", Line3: "c"}, "")
	database.SubmitPost(context.Background(), troll, domain.Haiku{Line1: "x", Line2: "y", Line3: "z"}, "")

	if err := database.Block(context.Background(), me, troll.Id, troll.Username); err != nil {
		t.Fatalf("Block failed: %v", err)
	}

	days, err := database.Feed(context.Background(), me.Id)
	if err != nil {
		t.Fatalf("Feed failed: %v", err)
	}
	for _, day := range days {
		for _, post := range day.Posts {
			if post.AuthorId == troll.Id {
				t.Error("Blocked author's post leaked into the feed")
			}
		}
	}

	// The troll still sees everything.
	days, _ = database.Feed(context.Background(), troll.Id)
	total := 0
	for _, day := range days {
		total += len(day.Posts)
	}
	if total != 2 {
		t.Errorf("Unblocked viewer should see 2 posts, got %d", total)
	}
}

func TestBlockUnblockRoundTrip(t *testing.T) {
	database := setupTestDB(t)
	me := makeAccount(t, database, "basho")
	troll := makeAccount(t, database, "troll")

	database.Block(context.Background(), me, troll.Id, troll.Username)
	// Blocking twice is idempotent.
	database.Block(context.Background(), me, troll.Id, troll.Username)

	blocked, err := database.BlockedUsers(context.Background(), me.Id)
	if err != nil {
		t.Fatalf("BlockedUsers failed: %v", err)
	}
	if len(blocked) != 1 || blocked[0].TargetId != troll.Id || blocked[0].TargetName != "troll" {
		t.Errorf("Block list mismatch: %+v", blocked)
	}

	if err := database.Unblock(context.Background(), me, troll.Id); err != nil {
		t.Fatalf("Unblock failed: %v", err)
	}
	blocked, _ = database.BlockedUsers(context.Background(), me.Id)
	if len(blocked) != 0 {
		t.Errorf("Block list should be empty, got %+v", blocked)
	}
}

func TestBucketByDay(t *testing.T) {
	author := uuid.New()
	day1 := time.Date(2025, 6, 20, 9, 0, 0, 0, time.UTC)
	day2 := time.Date(2025, 6, 21, 8, 0, 0, 0, time.UTC)

	posts := []domain.Post{
		{Id: uuid.New(), AuthorId: author, CreatedAt: day1},
		{Id: uuid.New(), AuthorId: author, CreatedAt: day1.Add(2 * time.Hour)},
		{Id: uuid.New(), AuthorId: author, CreatedAt: day2},
	}

	days := BucketByDay(posts)

	if len(days) != 2 {
		t.Fatalf("Expected 2 days, got %d", len(days))
	}
	// Newest date first.
	if !days[0].SameDate(day2) || !days[1].SameDate(day1) {
		t.Errorf("Day order wrong: %v then %v", days[0].Date, days[1].Date)
	}
	// Arrival order within the day.
	if len(days[1].Posts) != 2 || !days[1].Posts[0].CreatedAt.Before(days[1].Posts[1].CreatedAt) {
		t.Errorf("Posts within a day must keep arrival order")
	}
}

func TestUpdateUsernameAndSignature(t *testing.T) {
	database := setupTestDB(t)
	acc := makeAccount(t, database, "basho")

	if err := database.UpdateUsername(context.Background(), acc, "matsuo"); err != nil {
		t.Fatalf("UpdateUsername failed: %v", err)
	}
	sig := domain.Signature{{X: 1, Y: 2}, {X: 3, Y: 4, PenUp: true}}
	if err := database.UpdateSignature(context.Background(), acc, sig); err != nil {
		t.Fatalf("UpdateSignature failed: %v", err)
	}

	got, err := database.ReadAccountById(acc.Id)
	if err != nil {
		t.Fatalf("ReadAccountById failed: %v", err)
	}
	if got.Username != "matsuo" {
		t.Errorf("Expected username matsuo, got %s", got.Username)
	}
	if len(got.Signature) != 2 || got.Signature[1].PenUp != true {
		t.Errorf("Signature mismatch: %+v", got.Signature)
	}
}

func TestDeleteAccountCascades(t *testing.T) {
	database := setupTestDB(t)
	acc := makeAccount(t, database, "basho")
	other := makeAccount(t, database, "issa")

	database.SubmitPost(context.Background(), acc, domain.Haiku{Line1: "a", Line2: "b", Line3: "c"}, "")
	database.Block(context.Background(), acc, other.Id, other.Username)
	database.SavePushToken(context.Background(), acc.Id, "tok")

	if err := database.DeleteAccount(acc.Id); err != nil {
		t.Fatalf("DeleteAccount failed: %v", err)
	}

	if _, err := database.ReadAccountById(acc.Id); err == nil {
		t.Error("Account should be gone")
	}
	days, _ := database.Feed(context.Background(), other.Id)
	for _, day := range days {
		for _, post := range day.Posts {
			if post.AuthorId == acc.Id {
				t.Error("Deleted account's posts should be gone")
			}
		}
	}
	blocked, _ := database.BlockedUsers(context.Background(), acc.Id)
	if len(blocked) != 0 {
		t.Errorf("Deleted account's blocks should be gone, got %+v", blocked)
	}
}

func TestSavePushTokenUpsert(t *testing.T) {
	database := setupTestDB(t)
	acc := makeAccount(t, database, "basho")

	if err := database.SavePushToken(context.Background(), acc.Id, "tok-1"); err != nil {
		t.Fatalf("SavePushToken failed: %v", err)
	}
	if err := database.SavePushToken(context.Background(), acc.Id, "tok-2"); err != nil {
		t.Fatalf("SavePushToken upsert failed: %v", err)
	}
}

func TestCacheRoundTrip(t *testing.T) {
	database := setupTestDB(t)

	value, err := database.CacheGet("displayName")
	if err != nil {
		t.Fatalf("CacheGet failed: %v", err)
	}
	if value != "" {
		t.Errorf("Missing key should read as empty, got %q", value)
	}

	if err := database.CacheSet("displayName", "Matsuo Basho"); err != nil {
		t.Fatalf("CacheSet failed: %v", err)
	}
	if err := database.CacheSet("displayName", "Kobayashi Issa"); err != nil {
		t.Fatalf("CacheSet overwrite failed: %v", err)
	}

	value, _ = database.CacheGet("displayName")
	if value != "Kobayashi Issa" {
		t.Errorf("Expected overwritten value, got %q", value)
	}

	if err := database.CacheClear("displayName"); err != nil {
		t.Fatalf("CacheClear failed: %v", err)
	}
	value, _ = database.CacheGet("displayName")
	if value != "" {
		t.Errorf("Cleared key should read as empty, got %q", value)
	}
}
