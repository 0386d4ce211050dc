package shell_test

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/fpdgen/internal/adapters/shell"
	"go.trai.ch/fpdgen/internal/core/domain"
	"go.trai.ch/fpdgen/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func newExecutor(t *testing.T) *shell.Executor {
	t.Helper()
	ctrl := gomock.NewController(t)
	logger := mocks.NewMockLogger(ctrl)
	logger.EXPECT().Debug(gomock.Any()).AnyTimes()
	return shell.NewExecutor(logger)
}

func TestExecutor_Execute_Output(t *testing.T) {
	tests := []struct {
		name string
		inv  domain.Invocation
		want []string
	}{
		{
			name: "multi line",
			inv:  domain.Invocation{Name: "lines", Command: []string{"sh", "-c", "echo line1; echo line2"}},
			want: []string{"line1", "line2"},
		},
		{
			name: "fragmented writes",
			inv:  domain.Invocation{Name: "frag", Command: []string{"sh", "-c", "printf part1; sleep 0.1; echo part2"}},
			want: []string{"part1", "part2"},
		},
		{
			name: "environment",
			inv: domain.Invocation{
				Name:        "env",
				Command:     []string{"sh", "-c", "echo $FV_FILENAME"},
				Environment: map[string]string{"FV_FILENAME": "MAIN"},
			},
			want: []string{"MAIN"},
		},
		{
			name: "ansi sequences pass through",
			inv:  domain.Invocation{Name: "ansi", Command: []string{"sh", "-c", "printf '\033[31mred\033[0m'"}},
			want: []string{"\033[31m", "red"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv := tt.inv
			inv.WorkingDir = t.TempDir()

			var stdout bytes.Buffer
			require.NoError(t, newExecutor(t).Execute(context.Background(), &inv, &stdout, io.Discard))

			for _, w := range tt.want {
				assert.Contains(t, stdout.String(), w)
			}
		})
	}
}

func TestExecutor_Execute_WorkingDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "MAIN.inf"), []byte("[options]\n"), 0o600))

	inv := &domain.Invocation{Name: "cat", Command: []string{"cat", "MAIN.inf"}, WorkingDir: dir}

	var stdout bytes.Buffer
	require.NoError(t, newExecutor(t).Execute(context.Background(), inv, &stdout, io.Discard))
	assert.Contains(t, stdout.String(), "[options]")
}

func TestExecutor_Execute_Failures(t *testing.T) {
	tests := []struct {
		name    string
		command []string
		wantErr string
	}{
		{name: "exit code", command: []string{"sh", "-c", "exit 42"}, wantErr: "command failed"},
		{name: "unknown tool", command: []string{"nonexistent-tool-xyz123"}},
		{name: "empty command", command: nil, wantErr: domain.ErrEmptyCommand.Error()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv := &domain.Invocation{Name: tt.name, Command: tt.command, WorkingDir: t.TempDir()}

			err := newExecutor(t).Execute(context.Background(), inv, io.Discard, io.Discard)
			require.Error(t, err)
			if tt.wantErr != "" {
				assert.ErrorContains(t, err, tt.wantErr)
			}
		})
	}
}

type markingWriter struct {
	bytes.Buffer
	marked bool
}

func (m *markingWriter) MarkExecStart() { m.marked = true }

func TestExecutor_Execute_MarksExecStart(t *testing.T) {
	inv := &domain.Invocation{Name: "mark", Command: []string{"/bin/sh", "-c", "echo ok"}, WorkingDir: t.TempDir()}

	w := &markingWriter{}
	require.NoError(t, newExecutor(t).Execute(context.Background(), inv, w, io.Discard))
	assert.True(t, w.marked)
}
