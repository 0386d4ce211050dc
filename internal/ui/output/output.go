// Package output creates termenv outputs with the color profile rules used across fpdgen.
package output

import (
	"io"
	"os"

	"github.com/muesli/termenv"
)

// Interactive returns the profile for a terminal session: Ascii when NO_COLOR is set,
// whatever the terminal advertises otherwise.
func Interactive() termenv.Profile {
	if os.Getenv("NO_COLOR") != "" {
		return termenv.Ascii
	}
	return termenv.EnvColorProfile()
}

// Basic returns the 16 color ANSI profile, or Ascii when NO_COLOR is set.
// CI log viewers render ANSI but rarely anything richer.
func Basic() termenv.Profile {
	if os.Getenv("NO_COLOR") != "" {
		return termenv.Ascii
	}
	return termenv.ANSI
}

// New returns an output writing to w, or to stderr when w is nil.
// profile picks the color profile; nil means Interactive.
func New(w io.Writer, profile func() termenv.Profile) *termenv.Output {
	if w == nil {
		w = os.Stderr
	}
	if profile == nil {
		profile = Interactive
	}

	return termenv.NewOutput(w,
		termenv.WithProfile(profile()),
		termenv.WithTTY(true),
	)
}
