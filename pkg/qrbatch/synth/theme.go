// Package synth builds captioned QR artifacts for single tokens.
package synth

// Theme selects the color pair used for a whole batch.
type Theme string

const (
	// ThemeLight draws black modules on white.
	ThemeLight Theme = "light"
	// ThemeDark draws white modules on black.
	ThemeDark Theme = "dark"
)

const (
	black = "#000000"
	white = "#ffffff"
)

// ParseTheme maps s to a Theme. Anything other than "dark" is light.
func ParseTheme(s string) Theme {
	if Theme(s) == ThemeDark {
		return ThemeDark
	}
	return ThemeLight
}

// Foreground returns the module and caption color.
func (t Theme) Foreground() string {
	if t == ThemeDark {
		return white
	}
	return black
}

// Background returns the canvas color.
func (t Theme) Background() string {
	if t == ThemeDark {
		return black
	}
	return white
}
