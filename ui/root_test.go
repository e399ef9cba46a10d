package ui

import (
	"strings"
	"testing"

	"github.com/kigodev/kigo/app"
)

func TestHelpLineOfflineIndicator(t *testing.T) {
	offline := true
	online := false

	tests := []struct {
		name    string
		offline *bool
		want    bool
	}{
		{"connectivity unknown", nil, false},
		{"online", &online, false},
		{"offline", &offline, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := MainModel{route: app.RouteFeed, state: app.State{Offline: tt.offline}}
			got := strings.Contains(m.helpLine(), "OFFLINE")
			if got != tt.want {
				t.Errorf("OFFLINE marker shown = %v, want %v", got, tt.want)
			}
		})
	}
}
