package domain

import (
	"fmt"
	"strings"
)

// SourceFormat identifies how a record source is decoded.
type SourceFormat string

const (
	FormatAuto   SourceFormat = ""
	FormatJSON   SourceFormat = "json"
	FormatCSV    SourceFormat = "csv"
	FormatYAML   SourceFormat = "yaml"
	FormatSQLite SourceFormat = "sqlite"
)

// OutputFormat identifies how output records are rendered.
type OutputFormat string

const (
	OutputJSON   OutputFormat = "json"
	OutputPretty OutputFormat = "pretty"
	OutputTable  OutputFormat = "table"
)

// SourceSpec locates the input records.
type SourceSpec struct {
	Path   string
	Format SourceFormat

	// RecordsPath is a JSONPath expression selecting the record array in a JSON document.
	RecordsPath string
	// Table is the SQLite table holding one row per state.
	Table string
}

// Config represents the statemelt configuration loaded from statemelt.yaml, env and flags.
type Config struct {
	Source SourceSpec
	Output OutputConfig
	Log    LogConfig
}

type OutputConfig struct {
	Format OutputFormat
	// Path is the destination file; empty or "-" means stdout.
	Path string
}

type LogConfig struct {
	Debug   bool
	NoColor bool
}

// DefaultConfig provides sane defaults if statemelt.yaml is partially missing.
func DefaultConfig() Config {
	return Config{
		Source: SourceSpec{
			Path:        "state_obesity_fastfood_data.json",
			RecordsPath: "$",
			Table:       "states",
		},
		Output: OutputConfig{
			Format: OutputJSON,
		},
	}
}

// ParseSourceFormat normalizes a source format name. Empty means infer from the extension.
func ParseSourceFormat(s string) (SourceFormat, error) {
	f := SourceFormat(strings.ToLower(strings.TrimSpace(s)))
	switch f {
	case FormatAuto, FormatJSON, FormatCSV, FormatYAML, FormatSQLite:
		return f, nil
	default:
		return "", fmt.Errorf("unsupported source format %q (expected json|csv|yaml|sqlite)", s)
	}
}

// ParseOutputFormat normalizes an output format name. Empty means json.
func ParseOutputFormat(s string) (OutputFormat, error) {
	f := OutputFormat(strings.ToLower(strings.TrimSpace(s)))
	switch f {
	case "":
		return OutputJSON, nil
	case OutputJSON, OutputPretty, OutputTable:
		return f, nil
	default:
		return "", fmt.Errorf("unsupported output format %q (expected json|pretty|table)", s)
	}
}
