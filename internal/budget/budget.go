// Package budget turns a catalog and a selection state into per-mandate
// balances, ridership impact and cost efficiency.
package budget

import (
	"github.com/shopspring/decimal"

	"mandate-engine/internal/catalog"
	"mandate-engine/internal/model"
)

var two = decimal.NewFromInt(2)

// ledger accumulates amounts per mandate.
type ledger struct {
	m1, m2 decimal.Decimal
}

// charge schedules a total like a project cost: split halves it.
func (l *ledger) charge(p model.MandatPeriod, total decimal.Decimal) {
	switch p {
	case model.PeriodFirst:
		l.m1 = l.m1.Add(total)
	case model.PeriodSecond:
		l.m2 = l.m2.Add(total)
	case model.PeriodBoth:
		half := total.Div(two)
		l.m1 = l.m1.Add(half)
		l.m2 = l.m2.Add(half)
	}
}

// apply books a per-mandate lever amount on every designated mandate.
// Split is not halved here, unlike charge.
func (l *ledger) apply(p model.MandatPeriod, perMandate decimal.Decimal) {
	if p.Covers(1) {
		l.m1 = l.m1.Add(perMandate)
	}
	if p.Covers(2) {
		l.m2 = l.m2.Add(perMandate)
	}
}

// Effective resolves the cost and impact of a selection: a named option
// replaces the base values, a simple upgrade adds to them.
func Effective(p *catalog.Project, sel model.ProjectSelection) (cost, impact float64) {
	if len(p.UpgradeOptions) > 0 && sel.UpgradeOption != "" {
		if o, ok := p.Option(sel.UpgradeOption); ok {
			return o.Cost, o.Impact
		}
	}
	if p.Upgrade != nil && sel.Upgraded {
		return p.Cost + p.Upgrade.Cost, p.Impact + p.Upgrade.Impact
	}
	return p.Cost, p.Impact
}

// ComputeBudget derives the budget state. It never mutates st and skips
// selections that reference unknown projects or carry no period.
func ComputeBudget(cat *catalog.Catalog, st *model.SelectionState) model.BudgetState {
	var projects, fleet ledger
	impact := decimal.Zero

	for _, sel := range st.Selections {
		if !sel.Period.Active() {
			continue
		}
		p := cat.Project(sel.ProjectID)
		if p == nil {
			continue
		}
		cost, imp := Effective(p, sel)
		projects.charge(sel.Period, decimal.NewFromFloat(cost))
		impact = impact.Add(decimal.NewFromFloat(imp))
	}

	fleet.charge(st.Levers.FleetElectrification, decimal.NewFromFloat(cat.Fleet.Electrification))
	fleet.charge(st.Levers.FleetMaintenance, decimal.NewFromFloat(cat.Fleet.Maintenance))

	levers := leverEffect(&cat.Levers, st.Levers)
	base := decimal.NewFromFloat(cat.BaseAllocation)

	m1 := balance(base, levers.m1, projects.m1, fleet.m1)
	m2 := balance(base, levers.m2, projects.m2, fleet.m2)

	efficiency := 0.0
	if totalCost := m1.Cost() + m2.Cost(); totalCost != 0 {
		efficiency = impact.InexactFloat64() / totalCost
	}

	return model.BudgetState{
		M1:          m1,
		M2:          m2,
		TotalImpact: impact.InexactFloat64(),
		Efficiency:  efficiency,
	}
}

func balance(base, levers, projects, fleet decimal.Decimal) model.MandateBalance {
	return model.MandateBalance{
		Base:        base.InexactFloat64(),
		LeverEffect: levers.InexactFloat64(),
		ProjectCost: projects.InexactFloat64(),
		FleetCost:   fleet.InexactFloat64(),
		Balance:     base.Add(levers).Sub(projects).Sub(fleet).InexactFloat64(),
	}
}
