package common

import (
	_ "embed"
	"errors"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

//go:embed banner.txt
var bannerRaw string

var (
	bannerOnce sync.Once
	banner     string
)

// Fonts readies the embedded render assets. Load blocks until the banner
// is parsed; it is safe to call from multiple sessions.
type Fonts struct{}

func (Fonts) Load() error {
	var err error
	bannerOnce.Do(func() {
		trimmed := strings.TrimRight(bannerRaw, "\n")
		if trimmed == "" {
			err = errors.New("empty banner asset")
			return
		}
		banner = lipgloss.NewStyle().
			Foreground(lipgloss.Color(COLOR_MAGENTA)).
			Render(trimmed)
	})
	return err
}

// Banner returns the styled logo, or an empty string when loading failed.
func Banner() string {
	return banner
}
