package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newVendorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "vendor",
		Short: "Fetch and verify the locked firmware dependencies",
		Long: `Vendor materializes every entry of fab.lock.yaml into the local cache,
verifying each archive against its locked checksum. Builds then consume the
cache without touching the network. Re-running against an unchanged lock is
a no-op.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.app.Vendor(cmd.Context())
		},
	}
}
