package recordsource

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/aalvaropc/statemelt/internal/domain"
	"github.com/aalvaropc/statemelt/internal/ports"
)

const defaultTable = "states"

// Loader reads state records from JSON, CSV, YAML or SQLite and validates them.
type Loader struct {
	defaultTable string
	validate     *validator.Validate
}

type Option func(*Loader)

// WithDefaultTable sets the SQLite table used when a SourceSpec names none. Empty keeps "states".
func WithDefaultTable(name string) Option {
	return func(l *Loader) {
		if name != "" {
			l.defaultTable = name
		}
	}
}

func NewLoader(opts ...Option) *Loader {
	l := &Loader{
		defaultTable: defaultTable,
		validate:     newValidator(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

var _ ports.RecordLoader = (*Loader)(nil)

// LoadRecords returns the records of src in source order. Any malformed record fails the whole load.
func (l *Loader) LoadRecords(ctx context.Context, src domain.SourceSpec) ([]domain.InputRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	format, err := ResolveFormat(src)
	if err != nil {
		return nil, err
	}

	var dtos []recordDTO
	switch format {
	case domain.FormatJSON:
		dtos, err = readJSON(src.Path, src.RecordsPath)
	case domain.FormatCSV:
		dtos, err = readCSV(src.Path)
	case domain.FormatYAML:
		dtos, err = readYAML(src.Path)
	case domain.FormatSQLite:
		table := strings.TrimSpace(src.Table)
		if table == "" {
			table = l.defaultTable
		}
		dtos, err = readSQLite(ctx, src.Path, table)
	}
	if err != nil {
		return nil, err
	}

	return l.mapAndValidate(src.Path, dtos)
}

// ResolveFormat returns the explicit format of src, or infers it from the file extension.
func ResolveFormat(src domain.SourceSpec) (domain.SourceFormat, error) {
	if strings.TrimSpace(src.Path) == "" {
		return "", &domain.OpError{
			Op:   "recordsource.format",
			Kind: domain.KindInvalidConfig,
			Err:  fmt.Errorf("source path is empty: %w", domain.ErrInvalidConfig),
		}
	}

	f, err := domain.ParseSourceFormat(string(src.Format))
	if err != nil {
		return "", &domain.OpError{
			Op:   "recordsource.format",
			Kind: domain.KindInvalidConfig,
			Path: src.Path,
			Err:  fmt.Errorf("%v: %w", err, domain.ErrInvalidConfig),
		}
	}
	if f != domain.FormatAuto {
		return f, nil
	}

	switch strings.ToLower(filepath.Ext(src.Path)) {
	case ".json":
		return domain.FormatJSON, nil
	case ".csv":
		return domain.FormatCSV, nil
	case ".yaml", ".yml":
		return domain.FormatYAML, nil
	case ".db", ".sqlite", ".sqlite3":
		return domain.FormatSQLite, nil
	default:
		return "", &domain.OpError{
			Op:   "recordsource.format",
			Kind: domain.KindInvalidConfig,
			Path: src.Path,
			Err:  fmt.Errorf("cannot infer format from extension %q (expected json|csv|yaml|sqlite): %w", filepath.Ext(src.Path), domain.ErrInvalidConfig),
		}
	}
}

func readFile(op, path string) ([]byte, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, &domain.OpError{
			Op:   op,
			Kind: domain.KindNotFound,
			Path: path,
			Err:  fmt.Errorf("%w: %w", err, domain.ErrNotFound),
		}
	}
	return b, nil
}

func decodeError(op, path string, err error) error {
	return &domain.OpError{
		Op:   op,
		Kind: domain.KindInvalidRecord,
		Path: path,
		Err:  fmt.Errorf("%v: %w", err, domain.ErrInvalidRecord),
	}
}

func executionError(op, path string, err error) error {
	return &domain.OpError{
		Op:   op,
		Kind: domain.KindExecution,
		Path: path,
		Err:  fmt.Errorf("%v: %w", err, domain.ErrExecution),
	}
}
