// Package logger implements a logging adapter using log/slog.
package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"go.trai.ch/fpdgen/internal/ui/output"
	"go.trai.ch/fpdgen/internal/ui/style"
)

// levelLook is the icon and color a console line gets for its level.
type levelLook struct {
	icon  string
	color lipgloss.Color
}

var levelLooks = map[slog.Level]levelLook{
	slog.LevelDebug: {icon: style.Dot, color: style.Muted},
	slog.LevelWarn:  {icon: style.Warning, color: style.Caution},
	slog.LevelError: {icon: style.Cross, color: style.Failure},
}

// PrettyHandler is the console slog.Handler: one colored line per record with
// attributes appended as key=value pairs.
type PrettyHandler struct {
	out   *termenv.Output
	level slog.Leveler
	attrs []string
	group string
}

// NewPrettyHandler returns a handler writing to w, or to stderr when w is nil.
// Records below opts.Level are dropped; the default level is info.
func NewPrettyHandler(w io.Writer, opts *slog.HandlerOptions) *PrettyHandler {
	if w == nil {
		w = os.Stderr
	}
	h := &PrettyHandler{out: output.New(w, nil), level: slog.LevelInfo}
	if opts != nil && opts.Level != nil {
		h.level = opts.Level
	}
	return h
}

func (h *PrettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

//nolint:gocritic // slog.Handler requires slog.Record by value
func (h *PrettyHandler) Handle(_ context.Context, r slog.Record) error {
	look, ok := levelLooks[r.Level]
	if !ok {
		look = levelLook{color: style.Muted}
	}

	var line strings.Builder
	if look.icon != "" {
		line.WriteString(look.icon + " ")
	}
	line.WriteString(r.Message)

	fields := slices.Clone(h.attrs)
	r.Attrs(func(attr slog.Attr) bool {
		fields = append(fields, formatAttr(h.group, attr))
		return true
	})
	if len(fields) > 0 {
		line.WriteString(" " + strings.Join(fields, " "))
	}

	colored := h.out.String(line.String()).Foreground(termenv.RGBColor(string(look.color)))
	_, err := h.out.WriteString(colored.String() + "\n")
	return err
}

// WithAttrs qualifies attrs by the groups open now, not by groups opened later.
func (h *PrettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	c := *h
	c.attrs = slices.Clone(h.attrs)
	for _, attr := range attrs {
		c.attrs = append(c.attrs, formatAttr(h.group, attr))
	}
	return &c
}

// WithGroup nests later attributes under name, joined with dots.
func (h *PrettyHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	c := *h
	c.group = qualify(h.group, name)
	return &c
}

// formatAttr renders attr as key=value. Group values flatten into dotted keys.
func formatAttr(group string, attr slog.Attr) string {
	key := qualify(group, attr.Key)
	if attr.Value.Kind() != slog.KindGroup {
		return key + "=" + attr.Value.String()
	}

	members := attr.Value.Group()
	parts := make([]string, 0, len(members))
	for _, member := range members {
		parts = append(parts, formatAttr(key, member))
	}
	return strings.Join(parts, " ")
}

func qualify(group, key string) string {
	if group == "" {
		return key
	}
	return group + "." + key
}
