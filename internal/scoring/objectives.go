package scoring

import (
	"mandate-engine/internal/catalog"
	"mandate-engine/internal/model"
)

type objectiveRule struct {
	id          string
	name        string
	description string
	target      float64
	reward      int
	current     func(cat *catalog.Catalog, st *model.SelectionState, b model.BudgetState) float64
}

func totalImpact(_ *catalog.Catalog, _ *model.SelectionState, b model.BudgetState) float64 {
	return b.TotalImpact
}

var objectiveRules = []objectiveRule{
	{
		id:          "ridership-50k",
		name:        "First passengers",
		description: "Win 50,000 daily riders.",
		target:      50000,
		reward:      100,
		current:     totalImpact,
	},
	{
		id:          "ridership-150k",
		name:        "Modal shift",
		description: "Win 150,000 daily riders.",
		target:      150000,
		reward:      250,
		current:     totalImpact,
	},
	{
		id:          "ridership-300k",
		name:        "Transit metropolis",
		description: "Win 300,000 daily riders.",
		target:      300000,
		reward:      500,
		current:     totalImpact,
	},
	{
		id:          "balanced-mandates",
		name:        "Sound finances",
		description: "End both mandates without a deficit.",
		target:      2,
		reward:      300,
		current: func(_ *catalog.Catalog, _ *model.SelectionState, b model.BudgetState) float64 {
			n := 0.0
			if b.M1.Balance >= 0 {
				n++
			}
			if b.M2.Balance >= 0 {
				n++
			}
			return n
		},
	},
	{
		id:          "efficiency",
		name:        "Value for money",
		description: "Reach 150 daily riders per unit invested.",
		target:      150,
		reward:      200,
		current: func(_ *catalog.Catalog, _ *model.SelectionState, b model.BudgetState) float64 {
			return b.Efficiency
		},
	},
	{
		id:          "multimodal",
		name:        "Multimodal network",
		description: "Invest in metro, tram, bus and other modes.",
		target:      4,
		reward:      200,
		current: func(cat *catalog.Catalog, st *model.SelectionState, _ model.BudgetState) float64 {
			return float64(len(Categories(cat, st)))
		},
	},
	{
		id:          "fleet-transition",
		name:        "Fleet transition",
		description: "Schedule both the fleet electrification and the maintenance programme.",
		target:      2,
		reward:      150,
		current: func(_ *catalog.Catalog, st *model.SelectionState, _ model.BudgetState) float64 {
			n := 0.0
			if st.Levers.FleetElectrification.Active() {
				n++
			}
			if st.Levers.FleetMaintenance.Active() {
				n++
			}
			return n
		},
	},
}

// ComputeObjectives evaluates every objective independently, in a fixed order.
func ComputeObjectives(cat *catalog.Catalog, st *model.SelectionState, b model.BudgetState) []model.Objective {
	out := make([]model.Objective, 0, len(objectiveRules))
	for _, r := range objectiveRules {
		cur := r.current(cat, st, b)
		out = append(out, model.Objective{
			ID:          r.id,
			Name:        r.name,
			Description: r.description,
			Target:      r.target,
			Current:     cur,
			Completed:   cur >= r.target,
			Reward:      r.reward,
		})
	}
	return out
}
