package scoring

import (
	"math"

	"mandate-engine/internal/catalog"
	"mandate-engine/internal/model"
)

const (
	balancedBonus   = 500
	fareFreePenalty = 200
	categoryBonus   = 100
)

// ComputeScore sums the fixed score rules and floors the result at zero.
func ComputeScore(cat *catalog.Catalog, st *model.SelectionState, b model.BudgetState) int {
	score := int(math.Floor(b.TotalImpact / 1000))
	if b.Balanced() {
		score += balancedBonus
	}
	score += int(math.Floor(b.Efficiency * 10))
	if st.Levers.FareFree() {
		score -= fareFreePenalty
	}
	score += categoryBonus * len(Categories(cat, st))
	if score < 0 {
		return 0
	}
	return score
}

// Categories returns the distinct categories of the scheduled projects.
func Categories(cat *catalog.Catalog, st *model.SelectionState) map[catalog.Category]bool {
	seen := make(map[catalog.Category]bool, 4)
	for _, sel := range st.Selections {
		if !sel.Period.Active() {
			continue
		}
		if p := cat.Project(sel.ProjectID); p != nil {
			seen[p.Category] = true
		}
	}
	return seen
}
