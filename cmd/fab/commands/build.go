package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/fab/internal/app"
)

func (c *CLI) newBuildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build [target[@variant]...]",
		Short: "Build and validate the listed board targets",
		Long: `Build runs the full pipeline for each listed target: vendor the locked
firmware dependencies, run the synthesis toolchain, scan its log for timing
constraint violations, and collect the artifact set.

Targets build as fully independent instances; one failing target never
cancels the others.`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				// Display command usage help without returning an error
				_ = cmd.Help()
				return nil
			}

			features, _ := cmd.Flags().GetStringArray("feature")
			buildCommand, _ := cmd.Flags().GetString("build-command")
			outDir, _ := cmd.Flags().GetString("output")
			skipVendor, _ := cmd.Flags().GetBool("skip-vendor")
			jobs, _ := cmd.Flags().GetInt("jobs")
			outputMode, _ := cmd.Flags().GetString("output-mode")

			return c.app.Build(cmd.Context(), args, app.BuildOptions{
				Features:     features,
				SynthCommand: buildCommand,
				OutDir:       outDir,
				SkipVendor:   skipVendor,
				Jobs:         jobs,
				OutputMode:   outputMode,
			})
		},
	}

	cmd.Flags().StringArray("feature", nil, "Feature patch to apply, in order (single target only)")
	cmd.Flags().String("build-command", "", "Override the synthesis command template (single target only)")
	cmd.Flags().StringP("output", "o", "", "Output directory root for collected artifact sets")
	cmd.Flags().Bool("skip-vendor", false, "Skip dependency vendoring, requires a populated cache")
	cmd.Flags().IntP("jobs", "j", 1, "How many targets to build concurrently")
	cmd.Flags().String("output-mode", "auto", "Output rendering mode: auto, color, plain")

	return cmd
}
