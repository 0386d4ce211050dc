package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/fpdgen/internal/app"
)

func (c *CLI) newShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <platform.fpd>",
		Short: "Print the firmware volumes and output file of every module instance",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			asJSON, _ := cmd.Flags().GetBool("json")
			targets, _ := cmd.Flags().GetStringSlice("target")
			toolChains, _ := cmd.Flags().GetStringSlice("tool-chain")

			return c.app.Show(cmd.Context(), args[0], app.ShowOptions{
				JSON:       asJSON,
				Targets:    targets,
				ToolChains: toolChains,
			})
		},
	}
	cmd.Flags().Bool("json", false, "Print the bindings as JSON")
	cmd.Flags().StringSliceP("target", "t", nil, "Consider only these build targets")
	cmd.Flags().StringSlice("tool-chain", nil, "Consider these tool chain tags instead of the workspace ones")
	return cmd
}
