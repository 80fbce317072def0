// Package selection holds the only write path to a SelectionState.
package selection

import (
	"mandate-engine/internal/catalog"
	"mandate-engine/internal/model"
)

// SetProjectPeriod schedules a project. An unset period removes the
// selection and every selection that requires it (one level only).
// A mandate-only project is always scheduled across both mandates.
// It reports false when the project is unknown.
func SetProjectPeriod(cat *catalog.Catalog, st *model.SelectionState, id string, period model.MandatPeriod) bool {
	p := cat.Project(id)
	if p == nil {
		return false
	}

	if !period.Active() {
		remove := map[string]bool{id: true}
		for _, dep := range cat.Dependents(id) {
			remove[dep] = true
		}
		kept := st.Selections[:0]
		for _, s := range st.Selections {
			if !remove[s.ProjectID] {
				kept = append(kept, s)
			}
		}
		st.Selections = kept
		return true
	}

	if p.MandatOnly {
		period = model.PeriodBoth
	}
	if i := st.Selection(id); i >= 0 {
		st.Selections[i].Period = period
		return true
	}
	st.Selections = append(st.Selections, model.ProjectSelection{ProjectID: id, Period: period})
	return true
}

// SetProjectUpgrade toggles the additive upgrade of a selected project.
// It reports false when nothing was changed.
func SetProjectUpgrade(cat *catalog.Catalog, st *model.SelectionState, id string, upgraded bool) bool {
	i := st.Selection(id)
	if i < 0 {
		return false
	}
	p := cat.Project(id)
	if p == nil || p.Upgrade == nil {
		return false
	}
	st.Selections[i].Upgraded = upgraded
	return true
}

// SetProjectUpgradeOption picks one of the named variants of a selected
// project; an empty option id goes back to the base profile.
func SetProjectUpgradeOption(cat *catalog.Catalog, st *model.SelectionState, id, optionID string) bool {
	i := st.Selection(id)
	if i < 0 {
		return false
	}
	p := cat.Project(id)
	if p == nil {
		return false
	}
	if optionID != "" {
		if _, ok := p.Option(optionID); !ok {
			return false
		}
	}
	st.Selections[i].UpgradeOption = optionID
	return true
}

// ConfirmFleetOffer records the user's answer to the fleet maintenance offer.
func ConfirmFleetOffer(st *model.SelectionState, confirmed bool) {
	st.FleetOfferConfirmed = confirmed
}
