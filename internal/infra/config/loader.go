package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/aalvaropc/statemelt/internal/domain"
)

const (
	// FileName is the config file searched for upward from the working directory.
	FileName  = "statemelt.yaml"
	envPrefix = "STATEMELT_"
)

// Load builds the effective config: defaults < file at path < .env next to it < STATEMELT_* env.
// An empty path skips the file and reads .env from dotenvDir.
func Load(path, dotenvDir string) (domain.Config, error) {
	cfg := domain.DefaultConfig()

	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return cfg, &domain.OpError{
				Op:   "config.load",
				Kind: domain.KindNotFound,
				Path: path,
				Err:  fmt.Errorf("%w: %w", err, domain.ErrNotFound),
			}
		}

		var y yamlConfig
		if err := yaml.Unmarshal(b, &y); err != nil {
			return cfg, &domain.OpError{
				Op:   "config.load",
				Kind: domain.KindInvalidConfig,
				Path: path,
				Err:  fmt.Errorf("%v: %w", err, domain.ErrInvalidConfig),
			}
		}

		cfg, err = MapFile(path, y, cfg)
		if err != nil {
			return cfg, err
		}
		dotenvDir = filepath.Dir(path)
	}

	if err := loadDotenv(filepath.Join(dotenvDir, ".env")); err != nil {
		return cfg, err
	}

	var e envConfig
	if err := env.ParseWithOptions(&e, env.Options{Prefix: envPrefix}); err != nil {
		return cfg, &domain.OpError{
			Op:   "config.env",
			Kind: domain.KindInvalidConfig,
			Err:  fmt.Errorf("%v: %w", err, domain.ErrInvalidConfig),
		}
	}
	return MapEnv(e, cfg)
}

// Resolve loads explicitPath when set; otherwise it looks for statemelt.yaml from startDir upward
// and falls back to defaults + environment when none exists.
// It returns the config file used ("" when none).
func Resolve(explicitPath, startDir string) (domain.Config, string, error) {
	if explicitPath != "" {
		cfg, err := Load(explicitPath, "")
		return cfg, explicitPath, err
	}

	root, err := NewFinder().FindRoot(startDir)
	if err != nil {
		if domain.IsKind(err, domain.KindNotFound) {
			cfg, lerr := Load("", startDir)
			return cfg, "", lerr
		}
		return domain.DefaultConfig(), "", err
	}

	path := filepath.Join(root, FileName)
	cfg, err := Load(path, "")
	return cfg, path, err
}

// loadDotenv exports variables from an optional .env file. Variables already set win.
func loadDotenv(path string) error {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return &domain.OpError{
			Op:   "config.dotenv",
			Kind: domain.KindInvalidConfig,
			Path: path,
			Err:  fmt.Errorf("%v: %w", err, domain.ErrInvalidConfig),
		}
	}
	return nil
}
