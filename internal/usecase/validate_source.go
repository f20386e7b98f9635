package usecase

import (
	"context"

	"github.com/aalvaropc/statemelt/internal/domain"
	"github.com/aalvaropc/statemelt/internal/ports"
)

// Inputs of 1 to degenerateMax records are degenerate: the five picks collapse onto a few records.
const degenerateMax = 3

// SourceReport summarizes a loaded source.
type SourceReport struct {
	Records int
	// Degenerate is set for inputs of 1-3 records, where picks repeat heavily.
	Degenerate bool
}

type ValidateSource struct {
	records ports.RecordLoader
}

func NewValidateSource(rl ports.RecordLoader) *ValidateSource {
	return &ValidateSource{records: rl}
}

// Execute loads src and reports its size. Load-time validation failures are returned unchanged.
func (uc *ValidateSource) Execute(ctx context.Context, src domain.SourceSpec) (SourceReport, error) {
	if err := ctx.Err(); err != nil {
		return SourceReport{}, err
	}

	records, err := uc.records.LoadRecords(ctx, src)
	if err != nil {
		return SourceReport{}, err
	}
	if len(records) == 0 {
		return SourceReport{}, &domain.OpError{
			Op:   "usecase.validate_source",
			Kind: domain.KindEmptyInput,
			Path: src.Path,
			Err:  domain.ErrEmptyInput,
		}
	}

	return SourceReport{
		Records:    len(records),
		Degenerate: len(records) <= degenerateMax,
	}, nil
}
