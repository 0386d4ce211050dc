package commands_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/fpdgen/cmd/fpdgen/commands"
	"go.trai.ch/fpdgen/internal/app"
	"go.trai.ch/fpdgen/internal/build"
)

type mockApp struct {
	generateFunc func(ctx context.Context, platformPath string, opts app.GenerateOptions) error
	showFunc     func(ctx context.Context, platformPath string, opts app.ShowOptions) error
	watchFunc    func(ctx context.Context, platformPath string, opts app.GenerateOptions) error
}

func (m *mockApp) Generate(ctx context.Context, platformPath string, opts app.GenerateOptions) error {
	if m.generateFunc != nil {
		return m.generateFunc(ctx, platformPath, opts)
	}
	return nil
}

func (m *mockApp) Show(ctx context.Context, platformPath string, opts app.ShowOptions) error {
	if m.showFunc != nil {
		return m.showFunc(ctx, platformPath, opts)
	}
	return nil
}

func (m *mockApp) Watch(ctx context.Context, platformPath string, opts app.GenerateOptions) error {
	if m.watchFunc != nil {
		return m.watchFunc(ctx, platformPath, opts)
	}
	return nil
}

func (m *mockApp) DebugLogPath() string { return "/ws/.fpdgen/debug.log" }

type mockLogs struct {
	verbose  bool
	json     bool
	debugLog string
	err      error
}

func (m *mockLogs) SetVerbose(enable bool) { m.verbose = enable }
func (m *mockLogs) SetJSON(enable bool)    { m.json = enable }
func (m *mockLogs) EnableDebugLog(path string) error {
	m.debugLog = path
	return m.err
}

func TestCommands_Generate(t *testing.T) {
	t.Run("wires flags correctly", func(t *testing.T) {
		var (
			capturedOpts app.GenerateOptions
			capturedPath string
		)
		mock := &mockApp{
			generateFunc: func(_ context.Context, platformPath string, opts app.GenerateOptions) error {
				capturedPath = platformPath
				capturedOpts = opts
				return nil
			},
		}

		cli := commands.New(mock, nil)
		cli.SetArgs([]string{
			"generate", "EdkNt32Pkg/Nt32.fpd",
			"--target", "DEBUG", "-t", "RELEASE",
			"--tool-chain", "MYTOOLS",
			"--invoke", "--dry-run", "--output", "quiet",
		})

		require.NoError(t, cli.Execute(context.Background()))
		assert.Equal(t, "EdkNt32Pkg/Nt32.fpd", capturedPath)
		assert.Equal(t, app.GenerateOptions{
			Targets:    []string{"DEBUG", "RELEASE"},
			ToolChains: []string{"MYTOOLS"},
			Invoke:     true,
			DryRun:     true,
			OutputMode: "quiet",
		}, capturedOpts)
	})

	t.Run("ci overrides output", func(t *testing.T) {
		var mode string
		mock := &mockApp{
			generateFunc: func(_ context.Context, _ string, opts app.GenerateOptions) error {
				mode = opts.OutputMode
				return nil
			},
		}

		cli := commands.New(mock, nil)
		cli.SetArgs([]string{"generate", "Nt32.fpd", "--output", "color", "--ci"})

		require.NoError(t, cli.Execute(context.Background()))
		assert.Equal(t, "ci", mode)
	})

	t.Run("returns error on failure", func(t *testing.T) {
		mock := &mockApp{
			generateFunc: func(context.Context, string, app.GenerateOptions) error {
				return errors.New("simulated error")
			},
		}

		cli := commands.New(mock, nil)
		cli.SetArgs([]string{"generate", "Nt32.fpd"})
		cli.SetOutput(new(bytes.Buffer), new(bytes.Buffer))

		err := cli.Execute(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "simulated error")
	})

	t.Run("shows usage when no platform provided", func(t *testing.T) {
		mock := &mockApp{
			generateFunc: func(context.Context, string, app.GenerateOptions) error {
				panic("should not be called")
			},
		}

		cli := commands.New(mock, nil)
		buf := new(bytes.Buffer)
		cli.SetOutput(buf, buf)
		cli.SetArgs([]string{"generate"})

		require.NoError(t, cli.Execute(context.Background()))
		assert.Contains(t, buf.String(), "Usage:")
	})
}

func TestCommands_Show(t *testing.T) {
	var capturedOpts app.ShowOptions
	mock := &mockApp{
		showFunc: func(_ context.Context, _ string, opts app.ShowOptions) error {
			capturedOpts = opts
			return nil
		},
	}

	cli := commands.New(mock, nil)
	cli.SetArgs([]string{"show", "Nt32.fpd", "--json", "-t", "DEBUG"})

	require.NoError(t, cli.Execute(context.Background()))
	assert.True(t, capturedOpts.JSON)
	assert.Equal(t, []string{"DEBUG"}, capturedOpts.Targets)
}

func TestCommands_Show_RequiresPlatform(t *testing.T) {
	cli := commands.New(&mockApp{}, nil)
	cli.SetOutput(new(bytes.Buffer), new(bytes.Buffer))
	cli.SetArgs([]string{"show"})

	assert.Error(t, cli.Execute(context.Background()))
}

func TestCommands_Watch(t *testing.T) {
	var capturedOpts app.GenerateOptions
	mock := &mockApp{
		watchFunc: func(_ context.Context, _ string, opts app.GenerateOptions) error {
			capturedOpts = opts
			return nil
		},
	}

	cli := commands.New(mock, nil)
	cli.SetArgs([]string{"watch", "Nt32.fpd", "--invoke", "--tool-chain", "GCC48"})

	require.NoError(t, cli.Execute(context.Background()))
	assert.True(t, capturedOpts.Invoke)
	assert.Equal(t, []string{"GCC48"}, capturedOpts.ToolChains)
	assert.Equal(t, "auto", capturedOpts.OutputMode)
}

func TestCommands_LoggingFlags(t *testing.T) {
	t.Run("applied before the command runs", func(t *testing.T) {
		logs := &mockLogs{}
		cli := commands.New(&mockApp{}, logs)
		cli.SetArgs([]string{"generate", "Nt32.fpd", "--verbose", "--log-json", "--debug-log"})

		require.NoError(t, cli.Execute(context.Background()))
		assert.True(t, logs.verbose)
		assert.True(t, logs.json)
		assert.Equal(t, "/ws/.fpdgen/debug.log", logs.debugLog)
	})

	t.Run("debug log failure stops the command", func(t *testing.T) {
		logs := &mockLogs{err: errors.New("read-only file system")}
		mock := &mockApp{
			generateFunc: func(context.Context, string, app.GenerateOptions) error {
				panic("should not be called")
			},
		}
		cli := commands.New(mock, logs)
		cli.SetOutput(new(bytes.Buffer), new(bytes.Buffer))
		cli.SetArgs([]string{"generate", "Nt32.fpd", "--debug-log"})

		assert.ErrorContains(t, cli.Execute(context.Background()), "read-only file system")
	})

	t.Run("no debug log unless asked", func(t *testing.T) {
		logs := &mockLogs{}
		cli := commands.New(&mockApp{}, logs)
		cli.SetArgs([]string{"generate", "Nt32.fpd"})

		require.NoError(t, cli.Execute(context.Background()))
		assert.Empty(t, logs.debugLog)
		assert.False(t, logs.verbose)
	})
}

func TestCommands_Version(t *testing.T) {
	cli := commands.New(&mockApp{}, nil)

	buf := new(bytes.Buffer)
	cli.SetOutput(buf, buf)
	cli.SetArgs([]string{"version"})

	require.NoError(t, cli.Execute(context.Background()))
	assert.Contains(t, buf.String(), "fpdgen version "+build.Version)
}

func TestCommands_EverySubcommandRuns(t *testing.T) {
	tests := map[string][]string{
		"generate":      {"generate", "Nt32.fpd", "--verbose"},
		"show":          {"show", "Nt32.fpd", "--json"},
		"watch":         {"watch", "Nt32.fpd", "--verbose"},
		"version":       {"version"},
		"version flag":  {"--version"},
		"version short": {"-v"},
		"help":          {"--help"},
	}

	for name, args := range tests {
		t.Run(name, func(t *testing.T) {
			cli := commands.New(&mockApp{}, &mockLogs{})
			buf := new(bytes.Buffer)
			cli.SetOutput(buf, buf)
			cli.SetArgs(args)

			require.NotPanics(t, func() {
				require.NoError(t, cli.Execute(context.Background()))
			})
		})
	}
}

func TestCommands_VersionShorthand(t *testing.T) {
	cli := commands.New(&mockApp{}, nil)
	buf := new(bytes.Buffer)
	cli.SetOutput(buf, buf)
	cli.SetArgs([]string{"-v"})

	require.NoError(t, cli.Execute(context.Background()))
	assert.Contains(t, buf.String(), "fpdgen version "+build.Version)
}
