package ports

import "github.com/aalvaropc/statemelt/internal/domain"

// ResultWriter emits the reshaped records exactly once per run.
type ResultWriter interface {
	WriteResults(records []domain.OutputRecord) error
}
