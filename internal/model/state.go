package model

// ProjectSelection pairs a catalog project with the mandate(s) it is
// scheduled on and the variant chosen for it, if any.
type ProjectSelection struct {
	ProjectID     string       `json:"project_id" yaml:"project_id"`
	Period        MandatPeriod `json:"period" yaml:"period"`
	Upgraded      bool         `json:"upgraded,omitempty" yaml:"upgraded,omitempty"`
	UpgradeOption string       `json:"upgrade_option,omitempty" yaml:"upgrade_option,omitempty"`
}

// FinancingLevers holds the current value of every policy lever.
type FinancingLevers struct {
	TotalFareFree       MandatPeriod `json:"total_fare_free"`
	ConditionalFareFree MandatPeriod `json:"conditional_fare_free"`
	ParkAndRideFees     MandatPeriod `json:"park_and_ride_fees"`
	SocialTariffRemoval bool         `json:"social_tariff_removal"`
	AdvertisingRevenue  bool         `json:"advertising_revenue"`

	TicketPricePct       int `json:"ticket_price_pct"`
	SubscriptionPricePct int `json:"subscription_price_pct"`
	MobilityTaxTier      int `json:"mobility_tax_tier"`

	FleetElectrification MandatPeriod `json:"fleet_electrification"`
	FleetMaintenance     MandatPeriod `json:"fleet_maintenance"`
}

// DefaultLevers is the lever state of a fresh session.
func DefaultLevers() FinancingLevers {
	return FinancingLevers{}
}

// FareFree reports whether total fare-free is active on any mandate.
func (l FinancingLevers) FareFree() bool {
	return l.TotalFareFree.Active()
}

// LeverOverrides is a partial lever state; nil fields keep their default.
type LeverOverrides struct {
	TotalFareFree        *MandatPeriod `json:"total_fare_free,omitempty" yaml:"total_fare_free,omitempty"`
	ConditionalFareFree  *MandatPeriod `json:"conditional_fare_free,omitempty" yaml:"conditional_fare_free,omitempty"`
	ParkAndRideFees      *MandatPeriod `json:"park_and_ride_fees,omitempty" yaml:"park_and_ride_fees,omitempty"`
	SocialTariffRemoval  *bool         `json:"social_tariff_removal,omitempty" yaml:"social_tariff_removal,omitempty"`
	AdvertisingRevenue   *bool         `json:"advertising_revenue,omitempty" yaml:"advertising_revenue,omitempty"`
	TicketPricePct       *int          `json:"ticket_price_pct,omitempty" yaml:"ticket_price_pct,omitempty"`
	SubscriptionPricePct *int          `json:"subscription_price_pct,omitempty" yaml:"subscription_price_pct,omitempty"`
	MobilityTaxTier      *int          `json:"mobility_tax_tier,omitempty" yaml:"mobility_tax_tier,omitempty"`
	FleetElectrification *MandatPeriod `json:"fleet_electrification,omitempty" yaml:"fleet_electrification,omitempty"`
	FleetMaintenance     *MandatPeriod `json:"fleet_maintenance,omitempty" yaml:"fleet_maintenance,omitempty"`
}

// Overlay returns base with every non-nil override applied.
func (o LeverOverrides) Overlay(base FinancingLevers) FinancingLevers {
	if o.TotalFareFree != nil {
		base.TotalFareFree = *o.TotalFareFree
	}
	if o.ConditionalFareFree != nil {
		base.ConditionalFareFree = *o.ConditionalFareFree
	}
	if o.ParkAndRideFees != nil {
		base.ParkAndRideFees = *o.ParkAndRideFees
	}
	if o.SocialTariffRemoval != nil {
		base.SocialTariffRemoval = *o.SocialTariffRemoval
	}
	if o.AdvertisingRevenue != nil {
		base.AdvertisingRevenue = *o.AdvertisingRevenue
	}
	if o.TicketPricePct != nil {
		base.TicketPricePct = *o.TicketPricePct
	}
	if o.SubscriptionPricePct != nil {
		base.SubscriptionPricePct = *o.SubscriptionPricePct
	}
	if o.MobilityTaxTier != nil {
		base.MobilityTaxTier = *o.MobilityTaxTier
	}
	if o.FleetElectrification != nil {
		base.FleetElectrification = *o.FleetElectrification
	}
	if o.FleetMaintenance != nil {
		base.FleetMaintenance = *o.FleetMaintenance
	}
	return base
}

// SelectionState is the whole mutable state of a session and also its
// persisted layout. Derived values are never stored here.
type SelectionState struct {
	Selections          []ProjectSelection `json:"selections"`
	Levers              FinancingLevers    `json:"levers"`
	FleetOfferConfirmed bool               `json:"fleet_offer_confirmed"`
	PresetID            string             `json:"preset_id"`
}

func NewSelectionState() *SelectionState {
	return &SelectionState{
		Selections: []ProjectSelection{},
		Levers:     DefaultLevers(),
	}
}

// Selection returns the index of the selection for id, or -1.
func (s *SelectionState) Selection(id string) int {
	for i := range s.Selections {
		if s.Selections[i].ProjectID == id {
			return i
		}
	}
	return -1
}

// Clone returns a deep copy safe to mutate independently.
func (s *SelectionState) Clone() *SelectionState {
	c := *s
	c.Selections = make([]ProjectSelection, len(s.Selections))
	copy(c.Selections, s.Selections)
	return &c
}
