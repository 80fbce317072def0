package mutations

import (
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/require"

	"mandate-engine/internal/catalog"
	"mandate-engine/internal/model"
)

func run(t *testing.T, cat *catalog.Catalog, st *model.SelectionState, name, props string) (validate, apply []model.CalculationMessage) {
	t.Helper()
	h, ok := Get(name)
	require.True(t, ok, "handler %s registered", name)
	m := &model.Mutation{MutationID: "m1", MutationDefinitionName: name, MutationProperties: json.RawMessage(props)}
	validate = h.Validate(cat, st, m)
	for _, msg := range validate {
		if msg.Level == model.LevelCritical {
			return validate, nil
		}
	}
	return validate, h.Apply(cat, st, m)
}

func codes(msgs []model.CalculationMessage) []string {
	var out []string
	for _, m := range msgs {
		out = append(out, m.Code)
	}
	return out
}

func TestNames(t *testing.T) {
	require.Equal(t, []string{
		"apply_preset", "confirm_fleet_offer", "reset_all", "set_financing_lever",
		"set_project_period", "set_project_upgrade", "set_project_upgrade_option",
	}, Names())
}

func TestSetProjectPeriod(t *testing.T) {
	cat := catalog.Default()
	st := model.NewSelectionState()

	v, a := run(t, cat, st, "set_project_period", `{"project_id":"metro-b-extension","period":"first"}`)
	require.Empty(t, v)
	require.Empty(t, a)
	require.Equal(t, model.PeriodFirst, st.Selections[0].Period)

	run(t, cat, st, "set_project_period", `{"project_id":"central-interchange","period":"both"}`)
	require.Len(t, st.Selections, 2)

	_, a = run(t, cat, st, "set_project_period", `{"project_id":"metro-b-extension","period":null}`)
	require.Equal(t, []string{"DEPENDENTS_REMOVED"}, codes(a))
	require.Empty(t, st.Selections)
}

func TestSetProjectPeriod_Warnings(t *testing.T) {
	cat := catalog.Default()
	st := model.NewSelectionState()

	v, _ := run(t, cat, st, "set_project_period", `{"project_id":"hyperloop","period":"first"}`)
	require.Equal(t, []string{"UNKNOWN_PROJECT"}, codes(v))
	require.Empty(t, st.Selections)

	v, _ = run(t, cat, st, "set_project_period", `{"project_id":"metro-c","period":"second"}`)
	require.Equal(t, []string{"PERIOD_COERCED"}, codes(v))
	require.Equal(t, model.PeriodBoth, st.Selections[0].Period)

	v, _ = run(t, cat, st, "set_project_period", `{"project_id":"metro-c","period":"sometimes"}`)
	require.Equal(t, []string{"INVALID_PROPERTIES"}, codes(v))
}

func TestUpgradeHandlers(t *testing.T) {
	cat := catalog.Default()
	st := model.NewSelectionState()

	_, a := run(t, cat, st, "set_project_upgrade", `{"project_id":"tram-t1-extension","upgraded":true}`)
	require.Equal(t, []string{"UPGRADE_IGNORED"}, codes(a))

	run(t, cat, st, "set_project_period", `{"project_id":"tram-t1-extension","period":"first"}`)
	_, a = run(t, cat, st, "set_project_upgrade", `{"project_id":"tram-t1-extension","upgraded":true}`)
	require.Empty(t, a)
	require.True(t, st.Selections[0].Upgraded)

	run(t, cat, st, "set_project_period", `{"project_id":"metro-c","period":"both"}`)
	_, a = run(t, cat, st, "set_project_upgrade_option", `{"project_id":"metro-c","option_id":"metro-c-long"}`)
	require.Empty(t, a)
	require.Equal(t, "metro-c-long", st.Selections[1].UpgradeOption)

	_, a = run(t, cat, st, "set_project_upgrade_option", `{"project_id":"metro-c","option_id":null}`)
	require.Empty(t, a)
	require.Empty(t, st.Selections[1].UpgradeOption)
}

func TestSetFinancingLever(t *testing.T) {
	cat := catalog.Default()
	st := model.NewSelectionState()

	_, a := run(t, cat, st, "set_financing_lever", `{"lever":"ticket_price_pct","value":75}`)
	require.Equal(t, []string{"PERCENTAGE_CLAMPED"}, codes(a))
	require.Equal(t, 50, st.Levers.TicketPricePct)

	_, a = run(t, cat, st, "set_financing_lever", `{"lever":"total_fare_free","value":"both"}`)
	require.Equal(t, []string{"FARE_LEVERS_RESET"}, codes(a))
	require.Zero(t, st.Levers.TicketPricePct)

	_, a = run(t, cat, st, "set_financing_lever", `{"lever":"advertising_revenue","value":true}`)
	require.Empty(t, a)
	require.True(t, st.Levers.AdvertisingRevenue)

	_, a = run(t, cat, st, "set_financing_lever", `{"lever":"total_fare_free","value":null}`)
	require.Empty(t, a)
	require.False(t, st.Levers.FareFree())
}

func TestSetFinancingLever_Critical(t *testing.T) {
	cat := catalog.Default()
	st := model.NewSelectionState()

	tests := []struct {
		props string
		code  string
	}{
		{`{"lever":"mobility_tax_tier","value":10}`, "INVALID_TIER"},
		{`{"lever":"lottery","value":1}`, "UNKNOWN_LEVER"},
		{`{"lever":"ticket_price_pct","value":"high"}`, "INVALID_LEVER_VALUE"},
		{`{"lever":"total_fare_free","value":"always"}`, "INVALID_LEVER_VALUE"},
		{`[1,2]`, "INVALID_PROPERTIES"},
	}
	for _, tt := range tests {
		v, a := run(t, cat, st, "set_financing_lever", tt.props)
		require.Equal(t, []string{tt.code}, codes(v), tt.props)
		require.Nil(t, a)
	}
	require.Equal(t, model.DefaultLevers(), st.Levers)
}

func TestPresetHandlers(t *testing.T) {
	cat := catalog.Default()
	st := model.NewSelectionState()

	v, _ := run(t, cat, st, "apply_preset", `{"preset_id":"atlantis"}`)
	require.Equal(t, []string{"UNKNOWN_PRESET"}, codes(v))
	require.Empty(t, st.PresetID)

	run(t, cat, st, "apply_preset", `{"preset_id":"metro-first"}`)
	require.Equal(t, "metro-first", st.PresetID)
	require.Len(t, st.Selections, 3)

	run(t, cat, st, "confirm_fleet_offer", `{"confirmed":true}`)
	require.True(t, st.FleetOfferConfirmed)

	run(t, cat, st, "apply_preset", `{"preset_id":null}`)
	require.Equal(t, model.NewSelectionState(), st)

	run(t, cat, st, "apply_preset", `{"preset_id":"prudent"}`)
	run(t, cat, st, "reset_all", ``)
	require.Equal(t, model.NewSelectionState(), st)
}
