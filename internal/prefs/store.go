package prefs

import (
	"context"
	"errors"
	"fmt"
)

// Theme names persisted per account.
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

var ErrUnknownTheme = errors.New("unknown theme")

// ValidTheme reports whether name is a supported theme.
func ValidTheme(name string) bool {
	return name == ThemeLight || name == ThemeDark
}

// Store persists display preferences keyed by account name, not by session:
// sessions are minted fresh on every login, and the theme is the one value
// that must survive logout. Implementations are safe for concurrent use.
type Store interface {
	Theme(ctx context.Context, user string) (string, error)
	SetTheme(ctx context.Context, user, theme string) error
}

func checkTheme(theme string) error {
	if !ValidTheme(theme) {
		return fmt.Errorf("%w: %q", ErrUnknownTheme, theme)
	}
	return nil
}
