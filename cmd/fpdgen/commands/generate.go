package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/fpdgen/internal/app"
)

func (c *CLI) newGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate <platform.fpd>",
		Short: "Write firmware volume manifests and the build script for a platform",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				// Display command usage help without returning an error
				_ = cmd.Help()
				return nil
			}
			return c.app.Generate(cmd.Context(), args[0], generateOptions(cmd))
		},
	}
	addGenerateFlags(cmd)
	return cmd
}

// addGenerateFlags registers the flags shared by generate and watch.
func addGenerateFlags(cmd *cobra.Command) {
	cmd.Flags().StringSliceP("target", "t", nil, "Generate only these build targets (repeatable)")
	cmd.Flags().StringSlice("tool-chain", nil, "Generate for these tool chain tags instead of the workspace ones (repeatable)")
	cmd.Flags().Bool("invoke", false, "Run the image tool for every generated manifest")
	cmd.Flags().Bool("dry-run", false, "Run the pipeline without writing any file")
	cmd.Flags().StringP("output", "o", "auto", "Progress output: auto, color, plain or quiet")
	cmd.Flags().Bool("ci", false, "Use plain progress output (shorthand for --output=plain)")
}

func generateOptions(cmd *cobra.Command) app.GenerateOptions {
	targets, _ := cmd.Flags().GetStringSlice("target")
	toolChains, _ := cmd.Flags().GetStringSlice("tool-chain")
	invoke, _ := cmd.Flags().GetBool("invoke")
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	outputMode, _ := cmd.Flags().GetString("output")
	ci, _ := cmd.Flags().GetBool("ci")

	if ci {
		outputMode = "ci"
	}

	return app.GenerateOptions{
		Targets:    targets,
		ToolChains: toolChains,
		Invoke:     invoke,
		DryRun:     dryRun,
		OutputMode: outputMode,
	}
}
