package ports

import (
	"context"

	"github.com/aalvaropc/statemelt/internal/domain"
)

// RecordLoader loads the wide per-state records from a source (e.g., a JSON file), in source order.
type RecordLoader interface {
	LoadRecords(ctx context.Context, src domain.SourceSpec) ([]domain.InputRecord, error)
}
