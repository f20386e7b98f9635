package output

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/aalvaropc/statemelt/internal/domain"
	"github.com/aalvaropc/statemelt/internal/ports"
)

// Writer encodes the whole result in memory, then emits it once to stdout or a file.
type Writer struct {
	format domain.OutputFormat
	path   string
	stdout io.Writer
}

type Option func(*Writer)

// WithStdout replaces os.Stdout; useful for tests.
func WithStdout(w io.Writer) Option {
	return func(wr *Writer) { wr.stdout = w }
}

func NewWriter(cfg domain.OutputConfig, opts ...Option) *Writer {
	w := &Writer{
		format: cfg.Format,
		path:   strings.TrimSpace(cfg.Path),
		stdout: os.Stdout,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

var _ ports.ResultWriter = (*Writer)(nil)

func (w *Writer) WriteResults(records []domain.OutputRecord) error {
	var buf bytes.Buffer
	if err := Encode(&buf, records, w.format); err != nil {
		return &domain.OpError{
			Op:   "output.encode",
			Kind: domain.KindInvalidConfig,
			Err:  fmt.Errorf("%v: %w", err, domain.ErrInvalidConfig),
		}
	}

	if w.path == "" || w.path == "-" {
		if _, err := w.stdout.Write(buf.Bytes()); err != nil {
			return execError("output.stdout", "", err)
		}
		return nil
	}
	return writeFileAtomic(w.path, buf.Bytes())
}

// writeFileAtomic writes to a uniquely named temp file in the same directory, then renames it
// over path. Concurrent writers never share a temp file; the last rename wins.
func writeFileAtomic(path string, b []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return execError("output.mkdir", dir, err)
	}

	f, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return execError("output.write", dir, err)
	}
	tmp := f.Name()

	if _, err := f.Write(b); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return execError("output.write", tmp, err)
	}
	if err := f.Chmod(0o644); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return execError("output.write", tmp, err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return execError("output.write", tmp, err)
	}

	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return execError("output.rename", path, err)
	}
	return nil
}

func execError(op, path string, err error) error {
	return &domain.OpError{
		Op:   op,
		Kind: domain.KindExecution,
		Path: path,
		Err:  fmt.Errorf("%v: %w", err, domain.ErrExecution),
	}
}
