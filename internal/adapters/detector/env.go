// Package detector selects how run progress is presented.
package detector

import (
	"os"

	"github.com/muesli/termenv"
	"go.trai.ch/fpdgen/internal/ui/output"
	"golang.org/x/term"
)

// OutputMode represents the rendering mode for the application.
type OutputMode int

const (
	// ModeAuto automatically detects the appropriate mode.
	ModeAuto OutputMode = iota
	// ModeColor renders progress lines with ANSI styling.
	ModeColor
	// ModePlain renders progress lines without styling.
	ModePlain
	// ModeQuiet suppresses progress output.
	ModeQuiet
)

// DetectEnvironment returns the recommended output mode.
// CI runs and redirected stdout get plain output; terminals get color.
func DetectEnvironment() OutputMode {
	ci := os.Getenv("CI")
	if ci == "true" || ci == "1" {
		return ModePlain
	}
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return ModePlain
	}
	return ModeAuto
}

// ResolveMode applies the user's --output flag to the detected mode.
// userFlag is one of "auto", "color", "plain", "ci", "quiet" or empty.
func ResolveMode(autoDetected OutputMode, userFlag string) OutputMode {
	switch userFlag {
	case "color":
		return ModeColor
	case "plain", "ci":
		return ModePlain
	case "quiet":
		return ModeQuiet
	}
	if autoDetected == ModeAuto {
		return ModeColor
	}
	return autoDetected
}

// Profile returns the termenv profile a renderer should use for mode.
func (m OutputMode) Profile() termenv.Profile {
	if m == ModePlain || m == ModeQuiet {
		return termenv.Ascii
	}
	return output.Basic()
}
