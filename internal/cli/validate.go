package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aalvaropc/statemelt/internal/usecase"
)

func validateCmd(g *globalFlags) *cobra.Command {
	var sf sourceFlags

	c := &cobra.Command{
		Use:   "validate",
		Short: "Load and validate the input data (no output rows)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := openSession(cmd, g, &sf, nil)
			if err != nil {
				return err
			}
			defer s.close()

			uc := usecase.NewValidateSource(s.records)
			rep, err := uc.Execute(cmd.Context(), s.cfg.Source)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "OK: %d record(s) in %s\n", rep.Records, s.cfg.Source.Path)
			if s.configFile != "" {
				fmt.Fprintf(w, "config: %s\n", s.configFile)
			}
			if rep.Degenerate {
				fmt.Fprintln(w, "note: only 1-3 records; sampled states will repeat")
			}
			return nil
		},
	}

	bindSourceFlags(c, &sf)
	return c
}
