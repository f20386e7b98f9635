// Package sample picks five representative states from a dataset by obesity rank.
package sample

import (
	"cmp"
	"slices"

	"github.com/aalvaropc/statemelt/internal/domain"
)

// Rank names one of the five pick positions.
type Rank string

const (
	RankLeast  Rank = "least"
	RankSecond Rank = "second"
	RankMiddle Rank = "middle"
	RankFourth Rank = "fourth"
	RankMost   Rank = "most"
)

// Ranks lists the pick positions in emission order.
var Ranks = []Rank{RankLeast, RankSecond, RankMiddle, RankFourth, RankMost}

// Pick maps a rank to an index into the sorted records.
type Pick struct {
	Rank  Rank
	Index int
}

// Plan returns the index of every rank for a sorted sequence of total records (total >= 1).
//
// With n = total/2 (integer division) the picks are 0, n/2, n, n+n/2 and total-1.
// Small inputs produce repeated indices; they are kept as-is so the selection is always five long.
func Plan(total int) []Pick {
	n := total / 2
	return []Pick{
		{Rank: RankLeast, Index: 0},
		{Rank: RankSecond, Index: n / 2},
		{Rank: RankMiddle, Index: n},
		{Rank: RankFourth, Index: n + n/2},
		{Rank: RankMost, Index: total - 1},
	}
}

// Sort returns a copy of records ordered by obesity percentage, ascending.
// Equal percentages keep their input order.
func Sort(records []domain.InputRecord) []domain.InputRecord {
	sorted := slices.Clone(records)
	slices.SortStableFunc(sorted, func(a, b domain.InputRecord) int {
		return cmp.Compare(a.ObesityPercentage, b.ObesityPercentage)
	})
	return sorted
}

// Select returns the least, second, middle, fourth and most obese records, in that order.
// The input slice is not modified.
func Select(records []domain.InputRecord) ([]domain.InputRecord, error) {
	if len(records) == 0 {
		return nil, &domain.OpError{
			Op:   "sample.select",
			Kind: domain.KindEmptyInput,
			Err:  domain.ErrEmptyInput,
		}
	}

	sorted := Sort(records)

	plan := Plan(len(sorted))
	out := make([]domain.InputRecord, 0, len(plan))
	for _, p := range plan {
		out = append(out, sorted[p.Index])
	}
	return out, nil
}
