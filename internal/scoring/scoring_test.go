package scoring

import (
	"testing"

	"github.com/stretchr/testify/require"

	"mandate-engine/internal/budget"
	"mandate-engine/internal/catalog"
	"mandate-engine/internal/model"
)

func evaluate(cat *catalog.Catalog, st *model.SelectionState) (model.BudgetState, int) {
	b := budget.ComputeBudget(cat, st)
	return b, ComputeScore(cat, st, b)
}

func TestComputeScore(t *testing.T) {
	cat := catalog.Default()

	_, score := evaluate(cat, model.NewSelectionState())
	require.Equal(t, 500, score, "empty state only earns the balance bonus")

	st := model.NewSelectionState()
	st.Selections = append(st.Selections, model.ProjectSelection{ProjectID: "metro-b-extension", Period: model.PeriodFirst})
	_, score = evaluate(cat, st)
	// 60 impact points + 500 balanced + floor(171.42*10) + one category
	require.Equal(t, 60+500+1714+100, score)

	st = model.NewSelectionState()
	st.Levers.TotalFareFree = model.PeriodBoth
	_, score = evaluate(cat, st)
	require.Equal(t, 300, score)
}

func TestComputeScore_CountsDistinctCategories(t *testing.T) {
	cat := catalog.Default()
	st := model.NewSelectionState()
	st.Selections = []model.ProjectSelection{
		{ProjectID: "metro-a-doubling", Period: model.PeriodFirst},
		{ProjectID: "metro-b-extension", Period: model.PeriodFirst},
		{ProjectID: "tram-river", Period: model.PeriodSecond},
		{ProjectID: "bus-night", Period: model.PeriodSecond},
		{ProjectID: "ghost", Period: model.PeriodSecond},
	}
	require.Len(t, Categories(cat, st), 3)
}

func TestComputeScore_FlooredAtZero(t *testing.T) {
	cat := &catalog.Catalog{
		BaseAllocation: 0,
		Levers: catalog.LeverRates{
			TotalFareFree:    -10,
			MobilityTaxTiers: []catalog.TierRate{{Value: 0, Amount: 0}},
		},
	}
	st := model.NewSelectionState()
	st.Levers.TotalFareFree = model.PeriodFirst

	b, score := evaluate(cat, st)
	require.Less(t, b.M1.Balance, 0.0)
	require.Equal(t, 0, score)
}

func TestComputeObjectives(t *testing.T) {
	cat := catalog.Default()
	st := model.NewSelectionState()
	st.Selections = []model.ProjectSelection{
		{ProjectID: "metro-b-extension", Period: model.PeriodFirst},
		{ProjectID: "tram-river", Period: model.PeriodSecond},
	}
	st.Levers.FleetElectrification = model.PeriodBoth

	b := budget.ComputeBudget(cat, st)
	objs := ComputeObjectives(cat, st, b)
	require.Len(t, objs, 7)

	ids := make([]string, len(objs))
	for i, o := range objs {
		ids[i] = o.ID
	}
	require.Equal(t, []string{
		"ridership-50k", "ridership-150k", "ridership-300k",
		"balanced-mandates", "efficiency", "multimodal", "fleet-transition",
	}, ids)

	for _, o := range objs[:3] {
		require.Equal(t, b.TotalImpact, o.Current, o.ID)
		require.Equal(t, o.Current >= o.Target, o.Completed, o.ID)
	}
	require.True(t, objs[0].Completed)
	require.False(t, objs[1].Completed)

	require.Equal(t, 2.0, objs[3].Current)
	require.True(t, objs[3].Completed)
	require.Equal(t, 2.0, objs[5].Current)
	require.Equal(t, 1.0, objs[6].Current)
	require.False(t, objs[6].Completed)
}

func TestComputeObjectives_RidershipThresholdIsInclusive(t *testing.T) {
	cat := catalog.Default()
	st := model.NewSelectionState()
	b := model.BudgetState{TotalImpact: 150000}

	objs := ComputeObjectives(cat, st, b)
	require.True(t, objs[1].Completed)
	require.False(t, objs[2].Completed)
}

func TestComputeAchievements(t *testing.T) {
	cat := catalog.Default()

	st := model.NewSelectionState()
	b := budget.ComputeBudget(cat, st)
	got := unlocked(ComputeAchievements(cat, st, b))
	require.Equal(t, map[string]bool{"prudent-manager": true}, got)

	st.Selections = []model.ProjectSelection{
		{ProjectID: "metro-c", Period: model.PeriodBoth},
	}
	st.Levers.TotalFareFree = model.PeriodFirst
	st.Levers.FleetElectrification = model.PeriodFirst
	b = budget.ComputeBudget(cat, st)
	got = unlocked(ComputeAchievements(cat, st, b))
	require.Equal(t, map[string]bool{
		"first-step":       true,
		"metro-builder":    true,
		"free-city":        true,
		"long-term-vision": true,
		"green-fleet":      true,
	}, got)
}

func unlocked(as []model.Achievement) map[string]bool {
	out := map[string]bool{}
	for _, a := range as {
		if a.Unlocked {
			out[a.ID] = true
		}
	}
	return out
}
