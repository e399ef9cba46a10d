package middleware

import (
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/kigodev/kigo/util"
)

// AuthMiddleware logs the connecting key; sign-in itself happens inside
// the session against the auth service.
func AuthMiddleware() wish.Middleware {
	return func(h ssh.Handler) ssh.Handler {
		return func(s ssh.Session) {
			util.LogPublicKey(s)
			h(s)
		}
	}
}
