package output_test

import (
	"bytes"
	"testing"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"go.trai.ch/fpdgen/internal/ui/output"
)

func TestInteractive(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	assert.Equal(t, termenv.Ascii, output.Interactive(), "NO_COLOR forces Ascii")

	// The detected profile depends on the environment running the test.
	t.Setenv("NO_COLOR", "")
	p := output.Interactive()
	assert.True(t, p >= termenv.TrueColor && p <= termenv.Ascii, "should return a valid profile")
}

func TestBasic(t *testing.T) {
	t.Setenv("NO_COLOR", "")
	assert.Equal(t, termenv.ANSI, output.Basic())

	t.Setenv("NO_COLOR", "1")
	assert.Equal(t, termenv.Ascii, output.Basic())
}

func TestNew(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	var buf bytes.Buffer
	out := output.New(&buf, nil)
	_, _ = out.WriteString(out.String("FvMain").Foreground(termenv.ANSIRed).String())
	assert.Equal(t, "FvMain", buf.String(), "Ascii output carries no escape codes")
}

func TestNew_ProfileIsApplied(t *testing.T) {
	t.Setenv("NO_COLOR", "")

	var buf bytes.Buffer
	out := output.New(&buf, output.Basic)
	styled := out.String("FvMain").Foreground(termenv.ANSIRed).String()
	assert.NotEqual(t, "FvMain", styled)
	assert.Contains(t, styled, "FvMain")
}

func TestNew_Nil(t *testing.T) {
	assert.NotNil(t, output.New(nil, nil), "defaults to stderr")
}
