package prefs

import (
	"context"
	"errors"
	"testing"
)

func TestMemoryStoreDefaultsToLight(t *testing.T) {
	store := NewMemoryStore()

	theme, err := store.Theme(context.Background(), "testuser")
	if err != nil {
		t.Fatalf("theme: %v", err)
	}
	if theme != ThemeLight {
		t.Fatalf("default theme = %q", theme)
	}
}

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	if err := store.SetTheme(ctx, "testuser", ThemeDark); err != nil {
		t.Fatalf("set: %v", err)
	}
	theme, err := store.Theme(ctx, "testuser")
	if err != nil {
		t.Fatalf("theme: %v", err)
	}
	if theme != ThemeDark {
		t.Fatalf("theme = %q", theme)
	}

	// Accounts do not share preferences.
	theme, err = store.Theme(ctx, "someoneelse")
	if err != nil {
		t.Fatalf("theme: %v", err)
	}
	if theme != ThemeLight {
		t.Fatalf("other account theme = %q", theme)
	}
}

func TestMemoryStoreRejectsUnknownTheme(t *testing.T) {
	store := NewMemoryStore()

	err := store.SetTheme(context.Background(), "testuser", "solarized")
	if !errors.Is(err, ErrUnknownTheme) {
		t.Fatalf("expected ErrUnknownTheme, got %v", err)
	}
}
