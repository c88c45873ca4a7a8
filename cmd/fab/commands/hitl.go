package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/fab/internal/app"
)

func (c *CLI) newHITLCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hitl <target[@variant]>",
		Short: "Exercise a built artifact set on the shared hardware test rig",
		Long: `HITL acquires the target's rig lock on the remote host, flashes the given
artifact set, waits for the board to settle, runs the hardware test program,
and releases the lock. The lock is released on every exit path, including
interruption; the artifact set stays valid when the lock cannot be acquired.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			artifactDir, _ := cmd.Flags().GetString("artifact-dir")

			return c.app.HITL(cmd.Context(), args[0], app.HITLOptions{
				ArtifactDir: artifactDir,
			})
		},
	}

	cmd.Flags().StringP("artifact-dir", "d", "", "Directory holding the collected artifact set")
	_ = cmd.MarkFlagRequired("artifact-dir")

	return cmd
}
