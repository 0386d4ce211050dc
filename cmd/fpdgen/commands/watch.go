package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch <platform.fpd>",
		Short: "Regenerate whenever a descriptor or the workspace configuration changes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.Watch(cmd.Context(), args[0], generateOptions(cmd))
		},
	}
	addGenerateFlags(cmd)
	return cmd
}
