package middleware

import (
	"context"
	"testing"

	"github.com/kigodev/kigo/db"
)

func TestPushRegistrarMintsStableToken(t *testing.T) {
	database, err := db.Open(":memory:")
	if err != nil {
		t.Fatalf("opening database: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	r := PushRegistrar{Database: database}

	first, err := r.RequestToken(context.Background())
	if err != nil {
		t.Fatalf("requesting token: %v", err)
	}
	if first == "" {
		t.Fatal("expected a non-empty token")
	}

	second, err := r.RequestToken(context.Background())
	if err != nil {
		t.Fatalf("requesting token again: %v", err)
	}
	if second != first {
		t.Errorf("expected the same token, got %q then %q", first, second)
	}
}

func TestProbeUnreachableAddress(t *testing.T) {
	// A reserved TEST-NET address never answers.
	p := Probe{Addr: "192.0.2.1:1"}
	ctx, cancel := context.WithTimeout(context.Background(), probeTimeout)
	defer cancel()

	if p.IsReachable(ctx) {
		t.Error("expected the probe to fail against TEST-NET")
	}
}
