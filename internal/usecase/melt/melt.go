// Package melt pivots wide per-state records into long per-chain records.
package melt

import (
	"github.com/samber/lo"

	"github.com/aalvaropc/statemelt/internal/domain"
)

// Reshape emits one record per (state, chain) pair.
//
// Policy:
// - States keep their input order; chains follow domain.Chains.
// - Name and obesity percentage are copied unchanged; count is the chain's value.
// - len(result) == len(records) * len(domain.Chains). Nothing is filtered or aggregated.
func Reshape(records []domain.InputRecord) []domain.OutputRecord {
	return lo.FlatMap(records, func(r domain.InputRecord, _ int) []domain.OutputRecord {
		return Row(r)
	})
}

// Row pivots a single state into its per-chain records.
func Row(r domain.InputRecord) []domain.OutputRecord {
	return lo.Map(domain.Chains, func(c domain.Chain, _ int) domain.OutputRecord {
		count, _ := r.Count(c)
		return domain.OutputRecord{
			Name:              r.Name,
			ObesityPercentage: r.ObesityPercentage,
			Restaurant:        c,
			Count:             count,
		}
	})
}
