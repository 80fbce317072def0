package selection

import (
	"mandate-engine/internal/budget"
	"mandate-engine/internal/catalog"
	"mandate-engine/internal/model"
)

// ApplyPreset loads a named preset. The empty id clears the state. The
// preset's selections replace the current ones and its lever overrides are
// laid over the defaults, never over the previous levers. Unknown ids leave
// the state untouched and report false.
func ApplyPreset(cat *catalog.Catalog, st *model.SelectionState, id string) bool {
	if id == "" {
		*st = *model.NewSelectionState()
		return true
	}
	pr := cat.Preset(id)
	if pr == nil {
		return false
	}

	sels := make([]model.ProjectSelection, 0, len(pr.Selections))
	for _, s := range pr.Selections {
		if s.Period.Active() {
			sels = append(sels, s)
		}
	}
	st.Selections = sels
	st.Levers = pr.Levers.Overlay(model.DefaultLevers())
	budget.NormalizeLevers(&st.Levers)
	st.FleetOfferConfirmed = pr.Levers.FleetMaintenance != nil
	st.PresetID = pr.ID
	return true
}

// ResetAll returns the state to an empty session.
func ResetAll(st *model.SelectionState) {
	*st = *model.NewSelectionState()
}
