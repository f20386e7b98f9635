package usecase

import (
	"context"
	"io"
	"log/slog"

	"github.com/aalvaropc/statemelt/internal/domain"
	"github.com/aalvaropc/statemelt/internal/ports"
	"github.com/aalvaropc/statemelt/internal/usecase/melt"
	"github.com/aalvaropc/statemelt/internal/usecase/sample"
)

// ReshapeStates runs load -> select -> reshape -> write.
type ReshapeStates struct {
	records ports.RecordLoader
	writer  ports.ResultWriter
	log     *slog.Logger
}

type Option func(*ReshapeStates)

// WithLogger sets the logger used for pipeline progress; defaults to a discard logger.
func WithLogger(l *slog.Logger) Option {
	return func(uc *ReshapeStates) {
		if l != nil {
			uc.log = l
		}
	}
}

// NewReshapeStates builds the pipeline. writer may be nil when the caller only needs the result.
func NewReshapeStates(rl ports.RecordLoader, w ports.ResultWriter, opts ...Option) *ReshapeStates {
	uc := &ReshapeStates{
		records: rl,
		writer:  w,
		log:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

func (uc *ReshapeStates) Execute(ctx context.Context, src domain.SourceSpec) ([]domain.OutputRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	records, err := uc.records.LoadRecords(ctx, src)
	if err != nil {
		return nil, err
	}
	uc.log.Debug("pipeline.loaded", "path", src.Path, "records", len(records))

	selected, err := sample.Select(records)
	if err != nil {
		return nil, err
	}
	if uc.log.Enabled(ctx, slog.LevelDebug) {
		for i, p := range sample.Plan(len(records)) {
			uc.log.Debug("pipeline.pick", "rank", p.Rank, "index", p.Index, "name", selected[i].Name,
				"obesity_percentage", selected[i].ObesityPercentage)
		}
	}

	out := melt.Reshape(selected)

	if uc.writer != nil {
		if err := uc.writer.WriteResults(out); err != nil {
			return nil, err
		}
	}
	uc.log.Debug("pipeline.done", "rows", len(out))

	return out, nil
}
