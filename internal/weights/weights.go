// Package weights keeps the price weight and rated-criteria weights of
// a form arithmetically sensible. All functions treat their inputs as
// values and return new state.
package weights

import (
	"math"

	"rfxintake/internal/model"
)

// Metrics summarizes the current weight allocation of a form.
type Metrics struct {
	TotalRatedWeight int  `json:"totalRatedWeight"`
	TotalAllocated   int  `json:"totalAllocated"`
	Remaining        int  `json:"remaining"`
	IsBalanced       bool `json:"isBalanced"`
	IsOverAllocated  bool `json:"isOverAllocated"`
}

// OptimalWeight pre-fills the weight for a new rated criterion so it
// shares the non-price budget evenly with the existing ones.
func OptimalWeight(existingRatedCount, priceWeight int) int {
	return int(math.Round(float64(100-priceWeight) / float64(existingRatedCount+1)))
}

// Redistribute resets every rated criterion to an equal share of the
// non-price budget. Rounding means the total can land at 100±(n-1);
// that drift is accepted rather than corrected, matching how the form
// UI has always behaved.
func Redistribute(rated []model.Requirement, priceWeight int) []model.Requirement {
	if len(rated) == 0 {
		return nil
	}

	share := int(math.Round(float64(100-priceWeight) / float64(len(rated))))
	out := make([]model.Requirement, len(rated))
	for i, r := range rated {
		r.Weight = share
		out[i] = r
	}
	return out
}

// Compute reports how the rated weights and price weight add up.
func Compute(rated []model.Requirement, priceWeight int) Metrics {
	total := 0
	for _, r := range rated {
		total += r.Weight
	}

	allocated := priceWeight + total
	remaining := 100 - allocated
	return Metrics{
		TotalRatedWeight: total,
		TotalAllocated:   allocated,
		Remaining:        remaining,
		IsBalanced:       remaining == 0,
		IsOverAllocated:  remaining < 0,
	}
}
