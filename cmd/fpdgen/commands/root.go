// Package commands implements the CLI commands for fpdgen.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/fpdgen/internal/app"
	"go.trai.ch/fpdgen/internal/build"
)

// CLI represents the command line interface for fpdgen.
type CLI struct {
	app     Application
	logs    LogSettings
	rootCmd *cobra.Command
}

// Application represents the application logic interface.
type Application interface {
	Generate(ctx context.Context, platformPath string, opts app.GenerateOptions) error
	Show(ctx context.Context, platformPath string, opts app.ShowOptions) error
	Watch(ctx context.Context, platformPath string, opts app.GenerateOptions) error
	DebugLogPath() string
}

// LogSettings is the part of the logger controlled by the global flags.
type LogSettings interface {
	SetVerbose(enable bool)
	SetJSON(enable bool)
	EnableDebugLog(path string) error
}

// New creates a new CLI instance with the given app. logs may be nil, in which case the
// logging flags are accepted but have no effect.
func New(a Application, logs LogSettings) *CLI {
	rootCmd := &cobra.Command{
		Use:           "fpdgen",
		Short:         "Generate firmware volume manifests and build scripts from platform descriptors",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	rootCmd.PersistentFlags().Bool("verbose", false, "Show debug messages and image tool output")
	rootCmd.PersistentFlags().Bool("log-json", false, "Write log messages as JSON")
	rootCmd.PersistentFlags().Bool("debug-log", false, "Also write every log message to .fpdgen/debug.log")

	c := &CLI{
		app:     a,
		logs:    logs,
		rootCmd: rootCmd,
	}
	rootCmd.PersistentPreRunE = c.configureLogging

	rootCmd.AddCommand(c.newGenerateCmd())
	rootCmd.AddCommand(c.newShowCmd())
	rootCmd.AddCommand(c.newWatchCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}

func (c *CLI) configureLogging(cmd *cobra.Command, _ []string) error {
	if c.logs == nil {
		return nil
	}

	verbose, _ := cmd.Flags().GetBool("verbose")
	jsonLogs, _ := cmd.Flags().GetBool("log-json")
	debugLog, _ := cmd.Flags().GetBool("debug-log")

	c.logs.SetVerbose(verbose)
	c.logs.SetJSON(jsonLogs)
	if debugLog {
		return c.logs.EnableDebugLog(c.app.DebugLogPath())
	}
	return nil
}
