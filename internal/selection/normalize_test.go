package selection

import (
	"testing"

	"github.com/stretchr/testify/require"

	"mandate-engine/internal/budget"
	"mandate-engine/internal/catalog"
	"mandate-engine/internal/model"
)

func TestNormalize_Selections(t *testing.T) {
	cat := catalog.Default()
	st := model.NewSelectionState()
	st.Selections = []model.ProjectSelection{
		{ProjectID: "metro-b-extension", Period: model.PeriodFirst},
		{ProjectID: "metro-b-extension", Period: model.PeriodSecond},
		{ProjectID: "metro-c", Period: model.PeriodFirst},
		{ProjectID: "bus-night", Period: model.PeriodUnset},
		{ProjectID: "river-shuttle", Period: model.PeriodFirst, Upgraded: true, UpgradeOption: "express-4-lines"},
		{ProjectID: "bus-express-network", Period: model.PeriodSecond, UpgradeOption: "express-12-lines"},
	}

	require.NoError(t, Normalize(cat, st))
	require.Equal(t, []model.ProjectSelection{
		{ProjectID: "metro-b-extension", Period: model.PeriodFirst},
		{ProjectID: "metro-c", Period: model.PeriodBoth},
		{ProjectID: "river-shuttle", Period: model.PeriodFirst},
		{ProjectID: "bus-express-network", Period: model.PeriodSecond, UpgradeOption: "express-12-lines"},
	}, st.Selections)

	b := budget.ComputeBudget(cat, st)
	require.Equal(t, 350.0+900+35, b.M1.ProjectCost)
	require.Equal(t, 900.0+240, b.M2.ProjectCost)
}

func TestNormalize_Levers(t *testing.T) {
	cat := catalog.Default()
	st := model.NewSelectionState()
	st.Levers.TicketPricePct = 999
	st.Levers.SubscriptionPricePct = -80

	require.NoError(t, Normalize(cat, st))
	require.Equal(t, 50, st.Levers.TicketPricePct)
	require.Equal(t, -50, st.Levers.SubscriptionPricePct)

	st.Levers.TotalFareFree = model.PeriodFirst
	st.Levers.TicketPricePct = 20
	st.Levers.SocialTariffRemoval = true
	require.NoError(t, Normalize(cat, st))
	require.Zero(t, st.Levers.TicketPricePct)
	require.Zero(t, st.Levers.SubscriptionPricePct)
	require.False(t, st.Levers.SocialTariffRemoval)
}

func TestNormalize_RejectsUnknownTier(t *testing.T) {
	cat := catalog.Default()
	st := model.NewSelectionState()
	st.Levers.MobilityTaxTier = 33

	require.ErrorIs(t, Normalize(cat, st), ErrInvalidTier)
}

func TestNormalize_LeavesValidStateAlone(t *testing.T) {
	cat := catalog.Default()
	st := model.NewSelectionState()
	require.True(t, ApplyPreset(cat, st, "metro-first"))
	before := st.Clone()

	require.NoError(t, Normalize(cat, st))
	require.Equal(t, before, st)
}
