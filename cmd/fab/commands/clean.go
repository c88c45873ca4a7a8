package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/fab/internal/app"
)

func (c *CLI) newCleanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Remove build trees, the vendor cache, or collected artifacts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			buildTrees, _ := cmd.Flags().GetBool("build")
			vendorCache, _ := cmd.Flags().GetBool("vendor")
			dist, _ := cmd.Flags().GetBool("dist")
			all, _ := cmd.Flags().GetBool("all")

			opts := app.CleanOptions{
				Build:  buildTrees,
				Vendor: vendorCache,
				Dist:   dist,
			}

			switch {
			case all:
				opts.Build = true
				opts.Vendor = true
				opts.Dist = true
			case !buildTrees && !vendorCache && !dist:
				// Default behavior: clean build trees
				opts.Build = true
			}

			return c.app.Clean(cmd.Context(), opts)
		},
	}

	cmd.Flags().BoolP("build", "b", false, "Remove per-target build trees")
	cmd.Flags().Bool("vendor", false, "Remove the firmware dependency cache")
	cmd.Flags().Bool("dist", false, "Remove collected artifact sets")
	cmd.Flags().BoolP("all", "a", false, "Remove build trees, vendor cache, and artifacts")

	return cmd
}
