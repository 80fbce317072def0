package selection

import (
	"errors"
	"fmt"

	"mandate-engine/internal/budget"
	"mandate-engine/internal/catalog"
	"mandate-engine/internal/model"
)

var (
	ErrUnknownLever = errors.New("unknown financing lever")
	ErrInvalidValue = errors.New("invalid lever value")
	ErrInvalidTier  = errors.New("invalid mobility tax tier")
)

// Lever keys accepted by SetFinancingLever.
const (
	LeverTotalFareFree        = "total_fare_free"
	LeverConditionalFareFree  = "conditional_fare_free"
	LeverParkAndRideFees      = "park_and_ride_fees"
	LeverSocialTariffRemoval  = "social_tariff_removal"
	LeverAdvertisingRevenue   = "advertising_revenue"
	LeverTicketPricePct       = "ticket_price_pct"
	LeverSubscriptionPricePct = "subscription_price_pct"
	LeverMobilityTaxTier      = "mobility_tax_tier"
	LeverFleetElectrification = "fleet_electrification"
	LeverFleetMaintenance     = "fleet_maintenance"
)

// LeverValue is the decoded value of a lever mutation. Exactly one field is
// read, depending on the lever's shape.
type LeverValue struct {
	Period  model.MandatPeriod
	Enabled bool
	Number  int
}

// LeverResult describes side effects of a lever write.
type LeverResult struct {
	Clamped    bool
	Normalized bool
}

// SetFinancingLever overwrites one lever, clamps percentages to the catalog
// bounds, rejects unknown tiers and then re-applies the fare-free rules.
func SetFinancingLever(cat *catalog.Catalog, st *model.SelectionState, key string, v LeverValue) (LeverResult, error) {
	var res LeverResult
	l := &st.Levers

	switch key {
	case LeverTotalFareFree:
		l.TotalFareFree = v.Period
	case LeverConditionalFareFree:
		l.ConditionalFareFree = v.Period
	case LeverParkAndRideFees:
		l.ParkAndRideFees = v.Period
	case LeverFleetElectrification:
		l.FleetElectrification = v.Period
	case LeverFleetMaintenance:
		l.FleetMaintenance = v.Period
	case LeverSocialTariffRemoval:
		l.SocialTariffRemoval = v.Enabled
	case LeverAdvertisingRevenue:
		l.AdvertisingRevenue = v.Enabled
	case LeverTicketPricePct:
		l.TicketPricePct, res.Clamped = clamp(v.Number, cat.Levers.PercentMin, cat.Levers.PercentMax)
	case LeverSubscriptionPricePct:
		l.SubscriptionPricePct, res.Clamped = clamp(v.Number, cat.Levers.PercentMin, cat.Levers.PercentMax)
	case LeverMobilityTaxTier:
		if _, ok := cat.Levers.Tier(v.Number); !ok {
			return res, fmt.Errorf("%w: %d", ErrInvalidTier, v.Number)
		}
		l.MobilityTaxTier = v.Number
	default:
		return res, fmt.Errorf("%w: %q", ErrUnknownLever, key)
	}

	res.Normalized = budget.NormalizeLevers(l)
	return res, nil
}

// IsPeriodLever reports whether the lever takes a mandate period.
func IsPeriodLever(key string) bool {
	switch key {
	case LeverTotalFareFree, LeverConditionalFareFree, LeverParkAndRideFees,
		LeverFleetElectrification, LeverFleetMaintenance:
		return true
	}
	return false
}

// IsToggleLever reports whether the lever is a plain on/off switch.
func IsToggleLever(key string) bool {
	return key == LeverSocialTariffRemoval || key == LeverAdvertisingRevenue
}

func clamp(v, lo, hi int) (int, bool) {
	if v < lo {
		return lo, true
	}
	if v > hi {
		return hi, true
	}
	return v, false
}
