package cli

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/aalvaropc/statemelt/internal/domain"
	"github.com/aalvaropc/statemelt/internal/infra/config"
	"github.com/aalvaropc/statemelt/internal/infra/logger"
	"github.com/aalvaropc/statemelt/internal/infra/output"
	"github.com/aalvaropc/statemelt/internal/infra/recordsource"
	"github.com/aalvaropc/statemelt/internal/ports"
)

type globalFlags struct {
	configPath string
	debug      bool
	noColor    bool
}

type sourceFlags struct {
	path        string
	format      string
	recordsPath string
	table       string
}

type outputFlags struct {
	path   string
	format string
}

// session is the resolved config plus the adapters wired from it.
type session struct {
	cfg        domain.Config
	configFile string
	log        *slog.Logger
	cleanup    func() error

	records ports.RecordLoader
}

func (s *session) close() {
	if s.cleanup != nil {
		_ = s.cleanup()
	}
}

func (s *session) writer(cmd *cobra.Command) ports.ResultWriter {
	return output.NewWriter(s.cfg.Output, output.WithStdout(cmd.OutOrStdout()))
}

func bindSourceFlags(c *cobra.Command, sf *sourceFlags) {
	c.Flags().StringVarP(&sf.path, "source", "s", "", "Input data file (json|csv|yaml|sqlite)")
	c.Flags().StringVar(&sf.format, "source-format", "", "Input format; inferred from the extension if omitted")
	c.Flags().StringVar(&sf.recordsPath, "records-path", "", `JSONPath of the record array inside a JSON document (default "$")`)
	c.Flags().StringVar(&sf.table, "table", "", `SQLite table holding the states (default "states")`)
}

func bindOutputFlags(c *cobra.Command, of *outputFlags) {
	c.Flags().StringVarP(&of.path, "output", "o", "", "Write the result to this file instead of stdout")
	c.Flags().StringVarP(&of.format, "format", "f", "", "Output format: json|pretty|table (default json)")
}

// openSession resolves config (file < env < flags), then sets up logging and adapters.
func openSession(cmd *cobra.Command, g *globalFlags, sf *sourceFlags, of *outputFlags) (*session, error) {
	wd, err := os.Getwd()
	if err != nil {
		wd = "."
	}
	wd, _ = filepath.Abs(wd)

	cfg, used, err := config.Resolve(g.configPath, wd)
	if err != nil {
		return nil, err
	}

	cfg, err = applyFlags(cmd, cfg, g, sf, of)
	if err != nil {
		return nil, err
	}

	cleanup, _ := logger.Setup(logger.Config{
		Writer:  cmd.ErrOrStderr(),
		Debug:   cfg.Log.Debug,
		NoColor: cfg.Log.NoColor,
	})

	log := logger.L()
	log.Debug("config.resolved",
		"config_file", used,
		"source", cfg.Source.Path,
		"source_format", cfg.Source.Format,
		"output_format", cfg.Output.Format,
		"output_path", cfg.Output.Path,
	)

	return &session{
		cfg:        cfg,
		configFile: used,
		log:        log,
		cleanup:    cleanup,
		records:    recordsource.NewLoader(recordsource.WithDefaultTable(cfg.Source.Table)),
	}, nil
}

func applyFlags(cmd *cobra.Command, cfg domain.Config, g *globalFlags, sf *sourceFlags, of *outputFlags) (domain.Config, error) {
	flags := cmd.Flags()

	if flags.Changed("debug") {
		cfg.Log.Debug = g.debug
	}
	if flags.Changed("no-color") {
		cfg.Log.NoColor = g.noColor
	}

	if sf != nil {
		if flags.Changed("source") {
			cfg.Source.Path = sf.path
		}
		if flags.Changed("source-format") {
			f, err := domain.ParseSourceFormat(sf.format)
			if err != nil {
				return cfg, err
			}
			cfg.Source.Format = f
		}
		if flags.Changed("records-path") {
			cfg.Source.RecordsPath = sf.recordsPath
		}
		if flags.Changed("table") {
			cfg.Source.Table = sf.table
		}
	}

	if of != nil {
		if flags.Changed("output") {
			cfg.Output.Path = of.path
		}
		if flags.Changed("format") {
			f, err := domain.ParseOutputFormat(of.format)
			if err != nil {
				return cfg, fmt.Errorf("--format: %w", err)
			}
			cfg.Output.Format = f
		}
	}

	return cfg, nil
}
