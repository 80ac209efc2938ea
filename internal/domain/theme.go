package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Theme is the visitor's colour scheme preference.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// ErrInvalidTheme is returned by ParseTheme for anything but light or dark.
var ErrInvalidTheme = errors.New("invalid theme")

// ParseTheme parses "light" or "dark", ignoring case and surrounding spaces.
func ParseTheme(s string) (Theme, error) {
	switch Theme(strings.ToLower(strings.TrimSpace(s))) {
	case ThemeLight:
		return ThemeLight, nil
	case ThemeDark:
		return ThemeDark, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidTheme, s)
	}
}

// Toggle returns the opposite theme.
func (t Theme) Toggle() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

// DefaultTheme picks the theme for a visitor without a stored preference
// from the Sec-CH-Prefers-Color-Scheme client hint.
func DefaultTheme(prefersColorScheme string) Theme {
	if t, err := ParseTheme(strings.Trim(prefersColorScheme, `"`)); err == nil {
		return t
	}
	return ThemeLight
}
