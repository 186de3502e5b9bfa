package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newResumeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "resume",
		Short: "Re-dispatch tasks whose checkpoints were left pending or running",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.app.Resume(cmd.Context(), configPath(cmd))
		},
	}
}
