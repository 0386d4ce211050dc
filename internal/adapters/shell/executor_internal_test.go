package shell

import (
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/fpdgen/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func TestResolveEnvironment(t *testing.T) {
	tests := []struct {
		name     string
		sysEnv   []string
		invEnv   map[string]string
		expected []string
	}{
		{
			name:     "allow-listed system variables",
			sysEnv:   []string{"USER=dev", "PATH=/bin", "EDK_SOURCE=/ws/Edk"},
			expected: []string{"USER=dev", "PATH=/bin", "EDK_SOURCE=/ws/Edk"},
		},
		{
			name:     "other system variables are dropped",
			sysEnv:   []string{"USER=dev", "SSH_AUTH_SOCK=/tmp/ssh", "MALFORMED"},
			expected: []string{"USER=dev"},
		},
		{
			name:     "invocation variables override",
			sysEnv:   []string{"PATH=/bin", "WORKSPACE=/old"},
			invEnv:   map[string]string{"WORKSPACE": "/ws", "FV_DIR": "/ws/Build/FV"},
			expected: []string{"PATH=/bin", "WORKSPACE=/ws", "FV_DIR=/ws/Build/FV"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := resolveEnvironment(tt.sysEnv, tt.invEnv)
			sort.Strings(got)
			sort.Strings(tt.expected)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestLookPath(t *testing.T) {
	dir := t.TempDir()
	tool := filepath.Join(dir, "GenFvImage")
	//nolint:gosec // test fixture must be executable
	require.NoError(t, os.WriteFile(tool, []byte("#!/bin/sh\n"), 0o700))

	got, err := lookPath("GenFvImage", []string{"PATH=/nonexistent:" + dir})
	require.NoError(t, err)
	assert.Equal(t, tool, got)

	_, err = lookPath("GenFvImage", []string{"USER=dev"})
	assert.Error(t, err, "no PATH")

	_, err = lookPath("missing-tool", []string{"PATH=:" + dir})
	assert.Error(t, err)
}

func TestFindExecutable(t *testing.T) {
	dir := t.TempDir()
	plain := filepath.Join(dir, "plain")
	require.NoError(t, os.WriteFile(plain, []byte("x"), 0o600))

	assert.Error(t, findExecutable(filepath.Join(dir, "nope")))
	assert.ErrorIs(t, findExecutable(dir), os.ErrPermission)
	assert.ErrorIs(t, findExecutable(plain), os.ErrPermission)
}

func TestLogWriter_SplitsLines(t *testing.T) {
	ctrl := gomock.NewController(t)
	logger := mocks.NewMockLogger(ctrl)

	gomock.InOrder(
		logger.EXPECT().Debug("DEBUG/MAIN: Generating FV"),
		logger.EXPECT().Debug("DEBUG/MAIN: done"),
		logger.EXPECT().Debug("DEBUG/MAIN: tail"),
	)

	w := &logWriter{logger: logger, prefix: "DEBUG/MAIN"}
	_, _ = w.Write([]byte("Generating"))
	_, _ = w.Write([]byte(" FV\r\ndone\ntail"))
	require.NoError(t, w.Close())
}
