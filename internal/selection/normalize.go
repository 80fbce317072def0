package selection

import (
	"fmt"

	"mandate-engine/internal/budget"
	"mandate-engine/internal/catalog"
	"mandate-engine/internal/model"
)

// Normalize brings a state built outside the mutators back under the same
// rules: one selection per project, no unscheduled rows, mandate-only
// projects split, variants the catalog does not offer cleared, percentages
// clamped and the fare-free rules applied. An unknown mobility tax tier
// cannot be repaired and is returned as ErrInvalidTier.
func Normalize(cat *catalog.Catalog, st *model.SelectionState) error {
	if _, ok := cat.Levers.Tier(st.Levers.MobilityTaxTier); !ok {
		return fmt.Errorf("%w: %d", ErrInvalidTier, st.Levers.MobilityTaxTier)
	}

	seen := make(map[string]bool, len(st.Selections))
	kept := make([]model.ProjectSelection, 0, len(st.Selections))
	for _, s := range st.Selections {
		if !s.Period.Active() || seen[s.ProjectID] {
			continue
		}
		seen[s.ProjectID] = true
		if p := cat.Project(s.ProjectID); p != nil {
			if p.MandatOnly {
				s.Period = model.PeriodBoth
			}
			if p.Upgrade == nil {
				s.Upgraded = false
			}
			if _, ok := p.Option(s.UpgradeOption); !ok {
				s.UpgradeOption = ""
			}
		}
		kept = append(kept, s)
	}
	st.Selections = kept

	l := &st.Levers
	l.TicketPricePct, _ = clamp(l.TicketPricePct, cat.Levers.PercentMin, cat.Levers.PercentMax)
	l.SubscriptionPricePct, _ = clamp(l.SubscriptionPricePct, cat.Levers.PercentMin, cat.Levers.PercentMax)
	budget.NormalizeLevers(l)
	return nil
}
