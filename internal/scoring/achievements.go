package scoring

import (
	"mandate-engine/internal/catalog"
	"mandate-engine/internal/model"
)

const prudentMargin = 500

type achievementRule struct {
	id          string
	name        string
	description string
	icon        string
	unlocked    func(cat *catalog.Catalog, st *model.SelectionState, b model.BudgetState) bool
}

var achievementRules = []achievementRule{
	{
		id:          "first-step",
		name:        "First step",
		description: "Schedule your first project.",
		icon:        "flag",
		unlocked: func(cat *catalog.Catalog, st *model.SelectionState, _ model.BudgetState) bool {
			return len(Categories(cat, st)) > 0
		},
	},
	{
		id:          "metro-builder",
		name:        "Metro builder",
		description: "Schedule a metro project.",
		icon:        "metro",
		unlocked: func(cat *catalog.Catalog, st *model.SelectionState, _ model.BudgetState) bool {
			return Categories(cat, st)[catalog.CategoryMetro]
		},
	},
	{
		id:          "free-city",
		name:        "Free city",
		description: "Make the whole network fare-free.",
		icon:        "ticket",
		unlocked: func(_ *catalog.Catalog, st *model.SelectionState, _ model.BudgetState) bool {
			return st.Levers.FareFree()
		},
	},
	{
		id:          "prudent-manager",
		name:        "Prudent manager",
		description: "Keep at least 500 in reserve on both mandates.",
		icon:        "piggy-bank",
		unlocked: func(_ *catalog.Catalog, _ *model.SelectionState, b model.BudgetState) bool {
			return b.M1.Balance >= prudentMargin && b.M2.Balance >= prudentMargin
		},
	},
	{
		id:          "long-term-vision",
		name:        "Long-term vision",
		description: "Spread a project across both mandates.",
		icon:        "calendar",
		unlocked: func(cat *catalog.Catalog, st *model.SelectionState, _ model.BudgetState) bool {
			for _, s := range st.Selections {
				if s.Period == model.PeriodBoth && cat.Project(s.ProjectID) != nil {
					return true
				}
			}
			return false
		},
	},
	{
		id:          "green-fleet",
		name:        "Green fleet",
		description: "Schedule the fleet electrification.",
		icon:        "leaf",
		unlocked: func(_ *catalog.Catalog, st *model.SelectionState, _ model.BudgetState) bool {
			return st.Levers.FleetElectrification.Active()
		},
	},
}

func ComputeAchievements(cat *catalog.Catalog, st *model.SelectionState, b model.BudgetState) []model.Achievement {
	out := make([]model.Achievement, 0, len(achievementRules))
	for _, r := range achievementRules {
		out = append(out, model.Achievement{
			ID:          r.id,
			Name:        r.name,
			Description: r.description,
			Icon:        r.icon,
			Unlocked:    r.unlocked(cat, st, b),
		})
	}
	return out
}
