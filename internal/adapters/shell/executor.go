// Package shell runs external image tools inside a pseudo terminal.
package shell

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/creack/pty"
	"go.trai.ch/fpdgen/internal/core/domain"
	"go.trai.ch/fpdgen/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Executor = (*Executor)(nil)

// Executor runs invocations in a PTY so tools keep their terminal formatting.
type Executor struct {
	logger ports.Logger
}

// NewExecutor returns an Executor that also logs every output line at debug level.
func NewExecutor(logger ports.Logger) *Executor {
	return &Executor{logger: logger}
}

// Execute runs inv to completion. stdout receives the merged output of the tool;
// the PTY leaves nothing to send to the second writer.
func (e *Executor) Execute(ctx context.Context, inv *domain.Invocation, stdout, _ io.Writer) error {
	if len(inv.Command) == 0 {
		return zerr.With(domain.ErrEmptyCommand, "invocation", inv.Name)
	}

	cmd := e.command(ctx, inv)
	ptmx, err := pty.Start(cmd)
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to start pty"), "command", inv.Command[0])
	}
	if span, ok := stdout.(interface{ MarkExecStart() }); ok {
		span.MarkExecStart()
	}

	lines := &logWriter{logger: e.logger, prefix: inv.Name}
	copied := make(chan struct{})
	go func() {
		defer close(copied)
		_, _ = io.Copy(io.MultiWriter(lines, stdout), ptmx)
		_ = ptmx.Close()
		_ = lines.Close()
	}()

	err = cmd.Wait()
	<-copied
	if err == nil {
		return nil
	}

	exitCode := -1
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		exitCode = exitErr.ExitCode()
	}
	return zerr.With(zerr.Wrap(err, "command failed"), "exit_code", exitCode)
}

// command builds the process for inv. A bare tool name is looked up on the PATH of
// the filtered environment, not on the caller's.
func (e *Executor) command(ctx context.Context, inv *domain.Invocation) *exec.Cmd {
	name := inv.Command[0]
	env := resolveEnvironment(os.Environ(), inv.Environment)

	executable := name
	if !filepath.IsAbs(name) {
		if found, err := lookPath(name, env); err == nil {
			executable = found
		}
	}

	cmd := exec.CommandContext(ctx, executable, inv.Command[1:]...) //nolint:gosec // tool commands come from the workspace
	cmd.Args[0] = name
	cmd.Dir = inv.WorkingDir
	cmd.Env = env
	return cmd
}

// logWriter splits tool output into lines for the debug log.
type logWriter struct {
	logger  ports.Logger
	prefix  string
	pending []byte
}

func (w *logWriter) Write(p []byte) (int, error) {
	w.pending = append(w.pending, p...)
	for {
		line, rest, found := bytes.Cut(w.pending, []byte{'\n'})
		if !found {
			break
		}
		w.emit(line)
		w.pending = rest
	}
	return len(p), nil
}

func (w *logWriter) Close() error {
	if len(w.pending) > 0 {
		w.emit(w.pending)
		w.pending = nil
	}
	return nil
}

func (w *logWriter) emit(line []byte) {
	msg := strings.TrimSuffix(string(line), "\r")
	if w.prefix != "" {
		msg = w.prefix + ": " + msg
	}
	w.logger.Debug(msg)
}
