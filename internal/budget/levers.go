package budget

import (
	"github.com/shopspring/decimal"

	"mandate-engine/internal/catalog"
	"mandate-engine/internal/model"
)

// leverEffect books the net lever effect on each mandate.
func leverEffect(rates *catalog.LeverRates, l model.FinancingLevers) ledger {
	var e ledger
	fareFree := l.FareFree()

	e.apply(l.TotalFareFree, decimal.NewFromFloat(rates.TotalFareFree))
	e.apply(l.ConditionalFareFree, decimal.NewFromFloat(rates.ConditionalFareFree))
	e.apply(l.ParkAndRideFees, decimal.NewFromFloat(rates.ParkAndRideFees))

	if l.AdvertisingRevenue {
		e.apply(model.PeriodBoth, decimal.NewFromFloat(rates.AdvertisingRevenue))
	}
	if !fareFree {
		if l.SocialTariffRemoval {
			e.apply(model.PeriodBoth, decimal.NewFromFloat(rates.SocialTariffRemoval))
		}
		fares := decimal.NewFromFloat(rates.TicketPricePerPoint).Mul(decimal.NewFromInt(int64(l.TicketPricePct))).
			Add(decimal.NewFromFloat(rates.SubscriptionPricePerPoint).Mul(decimal.NewFromInt(int64(l.SubscriptionPricePct))))
		e.apply(model.PeriodBoth, fares)
	}

	// Tier values are validated at the boundary; an unknown tier books nothing.
	if amount, ok := rates.Tier(l.MobilityTaxTier); ok {
		e.apply(model.PeriodBoth, decimal.NewFromFloat(amount))
	}
	return e
}

// NormalizeLevers enforces the fare-free rules: while total fare-free is
// active, fare percentages read zero and the competing fare schemes are off.
// It reports whether anything changed.
func NormalizeLevers(l *model.FinancingLevers) bool {
	if !l.FareFree() {
		return false
	}
	changed := l.TicketPricePct != 0 || l.SubscriptionPricePct != 0 ||
		l.ConditionalFareFree != model.PeriodUnset || l.SocialTariffRemoval
	l.TicketPricePct = 0
	l.SubscriptionPricePct = 0
	l.ConditionalFareFree = model.PeriodUnset
	l.SocialTariffRemoval = false
	return changed
}
