package cli

import (
	"github.com/spf13/cobra"

	"github.com/aalvaropc/statemelt/internal/infra/logger"
	"github.com/aalvaropc/statemelt/internal/usecase"
)

func runCmd(g *globalFlags) *cobra.Command {
	var sf sourceFlags
	var of outputFlags

	c := &cobra.Command{
		Use:   "run",
		Short: "Sample five states and emit their per-restaurant rows",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPipeline(cmd, g, &sf, &of)
		},
	}

	bindSourceFlags(c, &sf)
	bindOutputFlags(c, &of)
	return c
}

func runPipeline(cmd *cobra.Command, g *globalFlags, sf *sourceFlags, of *outputFlags) error {
	s, err := openSession(cmd, g, sf, of)
	if err != nil {
		return err
	}
	defer s.close()

	uc := usecase.NewReshapeStates(s.records, s.writer(cmd), usecase.WithLogger(s.log))

	if _, err := uc.Execute(cmd.Context(), s.cfg.Source); err != nil {
		s.log.Debug("run.failed", logger.Err(err))
		return err
	}
	return nil
}
