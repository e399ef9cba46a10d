package middleware

import (
	"context"
	"net"
	"time"

	"github.com/kigodev/kigo/db"
	"github.com/kigodev/kigo/util"
)

const (
	probeAddr    = "1.1.1.1:443"
	probeTimeout = 3 * time.Second

	cacheKeyPushToken = "push_token"
)

// Probe checks whether the host has a route to the outside world.
type Probe struct {
	Addr string
}

func (p Probe) IsReachable(ctx context.Context) bool {
	addr := p.Addr
	if addr == "" {
		addr = probeAddr
	}
	d := net.Dialer{Timeout: probeTimeout}
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return false
	}
	conn.Close()
	return true
}

// PushRegistrar hands out this host's notification token, minting one on
// first use.
type PushRegistrar struct {
	Database *db.DB
}

func (r PushRegistrar) RequestToken(ctx context.Context) (string, error) {
	if token, err := r.Database.CacheGet(cacheKeyPushToken); err == nil && token != "" {
		return token, nil
	}
	token := util.RandomString(24)
	if err := r.Database.CacheSet(cacheKeyPushToken, token); err != nil {
		return "", err
	}
	return token, nil
}
