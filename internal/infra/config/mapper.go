package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/aalvaropc/statemelt/internal/domain"
)

// MapFile applies a parsed statemelt.yaml on top of cfg.
// Relative source/output paths are resolved against the directory holding the file.
func MapFile(path string, y yamlConfig, cfg domain.Config) (domain.Config, error) {
	root := filepath.Dir(path)
	s := y.Statemelt

	if v := strings.TrimSpace(s.Source.Path); v != "" {
		cfg.Source.Path = resolvePath(root, v)
	}
	if v := strings.TrimSpace(s.Source.Format); v != "" {
		f, err := domain.ParseSourceFormat(v)
		if err != nil {
			return cfg, invalidField(path, "statemelt.source.format", err.Error())
		}
		cfg.Source.Format = f
	}
	if v := strings.TrimSpace(s.Source.RecordsPath); v != "" {
		cfg.Source.RecordsPath = v
	}
	if v := strings.TrimSpace(s.Source.Table); v != "" {
		cfg.Source.Table = v
	}

	if v := strings.TrimSpace(s.Output.Format); v != "" {
		f, err := domain.ParseOutputFormat(v)
		if err != nil {
			return cfg, invalidField(path, "statemelt.output.format", err.Error())
		}
		cfg.Output.Format = f
	}
	if v := strings.TrimSpace(s.Output.Path); v != "" {
		cfg.Output.Path = resolvePath(root, v)
	}

	if s.Log.Debug != nil {
		cfg.Log.Debug = *s.Log.Debug
	}
	if s.Log.NoColor != nil {
		cfg.Log.NoColor = *s.Log.NoColor
	}

	return cfg, nil
}

// MapEnv applies STATEMELT_* overrides on top of cfg. Paths are used as given.
func MapEnv(e envConfig, cfg domain.Config) (domain.Config, error) {
	if v := strings.TrimSpace(e.Source.Path); v != "" {
		cfg.Source.Path = v
	}
	if v := strings.TrimSpace(e.Source.Format); v != "" {
		f, err := domain.ParseSourceFormat(v)
		if err != nil {
			return cfg, invalidField("", envPrefix+"SOURCE_FORMAT", err.Error())
		}
		cfg.Source.Format = f
	}
	if v := strings.TrimSpace(e.Source.RecordsPath); v != "" {
		cfg.Source.RecordsPath = v
	}
	if v := strings.TrimSpace(e.Source.Table); v != "" {
		cfg.Source.Table = v
	}

	if v := strings.TrimSpace(e.Output.Format); v != "" {
		f, err := domain.ParseOutputFormat(v)
		if err != nil {
			return cfg, invalidField("", envPrefix+"OUTPUT_FORMAT", err.Error())
		}
		cfg.Output.Format = f
	}
	if v := strings.TrimSpace(e.Output.Path); v != "" {
		cfg.Output.Path = v
	}

	if e.Log.Debug != nil {
		cfg.Log.Debug = *e.Log.Debug
	}
	if e.Log.NoColor != nil {
		cfg.Log.NoColor = *e.Log.NoColor
	}

	return cfg, nil
}

func resolvePath(root, p string) string {
	if p == "-" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(root, p)
}

func invalidField(path, field, msg string) error {
	return &domain.OpError{
		Op:   "config.map",
		Kind: domain.KindInvalidConfig,
		Path: path,
		Err:  fmt.Errorf("field %s: %s: %w", field, msg, domain.ErrInvalidConfig),
	}
}
