package cli

import (
	"context"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
)

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cmd := newRootCmd()
	if err := cmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var g globalFlags
	var sf sourceFlags
	var of outputFlags

	cmd := &cobra.Command{
		Use:   "statemelt",
		Short: "Sample five states by obesity rank and melt their fast-food counts",
		Long: "statemelt loads per-state obesity and fast-food data, picks the least, second, middle, fourth\n" +
			"and most obese states, and emits one row per (state, restaurant) pair as JSON.\n\n" +
			"Running statemelt without a subcommand is the same as 'statemelt run'.",
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPipeline(cmd, &g, &sf, &of)
		},
	}

	cmd.PersistentFlags().StringVar(&g.configPath, "config", "", "Path to statemelt.yaml (optional; searched upward from the working directory)")
	cmd.PersistentFlags().BoolVar(&g.debug, "debug", false, "enable debug logging on stderr")
	cmd.PersistentFlags().BoolVar(&g.noColor, "no-color", false, "disable coloured log output")

	bindSourceFlags(cmd, &sf)
	bindOutputFlags(cmd, &of)

	cmd.AddCommand(runCmd(&g))
	cmd.AddCommand(validateCmd(&g))
	cmd.AddCommand(versionCmd())

	return cmd
}
