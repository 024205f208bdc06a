package domain

import "fmt"

// ColorMode controls whether the prompt is styled.
type ColorMode string

const (
	ColorAlways ColorMode = "always"
	ColorAuto   ColorMode = "auto"
	ColorNever  ColorMode = "never"
)

// ValidColorModes lists all supported color mode values.
var ValidColorModes = []ColorMode{
	ColorAlways,
	ColorAuto,
	ColorNever,
}

// ValidateColorMode checks if a string is a valid color mode.
func ValidateColorMode(s string) (ColorMode, error) {
	m := ColorMode(s)
	for _, valid := range ValidColorModes {
		if m == valid {
			return m, nil
		}
	}
	return "", fmt.Errorf("invalid color mode %q: must be one of always, auto, never", s)
}
