package catalog

import (
	"errors"
	"fmt"
	"sync"

	"mandate-engine/internal/model"
)

type Category string

const (
	CategoryMetro Category = "metro"
	CategoryTram  Category = "tram"
	CategoryBus   Category = "bus"
	CategoryOther Category = "other"
)

func (c Category) Valid() bool {
	switch c {
	case CategoryMetro, CategoryTram, CategoryBus, CategoryOther:
		return true
	}
	return false
}

type Project struct {
	ID             string          `json:"id" yaml:"id"`
	Name           string          `json:"name" yaml:"name"`
	Description    string          `json:"description" yaml:"description"`
	Category       Category        `json:"category" yaml:"category"`
	Cost           float64         `json:"cost" yaml:"cost"`
	Impact         float64         `json:"impact,omitempty" yaml:"impact,omitempty"`
	Requires       string          `json:"requires,omitempty" yaml:"requires,omitempty"`
	Upgrade        *Upgrade        `json:"upgrade,omitempty" yaml:"upgrade,omitempty"`
	UpgradeOptions []UpgradeOption `json:"upgrade_options,omitempty" yaml:"upgrade_options,omitempty"`
	MandatOnly     bool            `json:"mandat_only,omitempty" yaml:"mandat_only,omitempty"`
}

// Upgrade is an additive variant: its cost and impact add to the base.
type Upgrade struct {
	Label  string  `json:"label" yaml:"label"`
	Cost   float64 `json:"cost" yaml:"cost"`
	Impact float64 `json:"impact,omitempty" yaml:"impact,omitempty"`
}

// UpgradeOption replaces the project's base cost and impact entirely.
type UpgradeOption struct {
	ID     string  `json:"id" yaml:"id"`
	Label  string  `json:"label" yaml:"label"`
	Cost   float64 `json:"cost" yaml:"cost"`
	Impact float64 `json:"impact" yaml:"impact"`
}

func (p *Project) Option(id string) (UpgradeOption, bool) {
	for _, o := range p.UpgradeOptions {
		if o.ID == id {
			return o, true
		}
	}
	return UpgradeOption{}, false
}

type TierRate struct {
	Value  int     `json:"value" yaml:"value"`
	Amount float64 `json:"amount" yaml:"amount"`
}

// LeverRates are the fixed monetary effects of the financing levers, per mandate.
type LeverRates struct {
	TotalFareFree       float64 `json:"total_fare_free" yaml:"total_fare_free"`
	ConditionalFareFree float64 `json:"conditional_fare_free" yaml:"conditional_fare_free"`
	ParkAndRideFees     float64 `json:"park_and_ride_fees" yaml:"park_and_ride_fees"`
	SocialTariffRemoval float64 `json:"social_tariff_removal" yaml:"social_tariff_removal"`
	AdvertisingRevenue  float64 `json:"advertising_revenue" yaml:"advertising_revenue"`

	TicketPricePerPoint       float64 `json:"ticket_price_per_point" yaml:"ticket_price_per_point"`
	SubscriptionPricePerPoint float64 `json:"subscription_price_per_point" yaml:"subscription_price_per_point"`
	PercentMin                int     `json:"percent_min" yaml:"percent_min"`
	PercentMax                int     `json:"percent_max" yaml:"percent_max"`

	MobilityTaxTiers []TierRate `json:"mobility_tax_tiers" yaml:"mobility_tax_tiers"`
}

// Tier returns the amount for a mobility tax tier value.
func (r *LeverRates) Tier(value int) (float64, bool) {
	for _, t := range r.MobilityTaxTiers {
		if t.Value == value {
			return t.Amount, true
		}
	}
	return 0, false
}

// FleetCosts are fixed programme totals, scheduled like a project.
type FleetCosts struct {
	Electrification float64 `json:"electrification" yaml:"electrification"`
	Maintenance     float64 `json:"maintenance" yaml:"maintenance"`
}

type Preset struct {
	ID          string                   `json:"id" yaml:"id"`
	Name        string                   `json:"name" yaml:"name"`
	Description string                   `json:"description" yaml:"description"`
	Selections  []model.ProjectSelection `json:"selections" yaml:"selections"`
	Levers      model.LeverOverrides     `json:"levers" yaml:"levers"`
}

type Catalog struct {
	BaseAllocation float64    `json:"base_allocation" yaml:"base_allocation"`
	Projects       []Project  `json:"projects" yaml:"projects"`
	Levers         LeverRates `json:"levers" yaml:"levers"`
	Fleet          FleetCosts `json:"fleet" yaml:"fleet"`
	Presets        []Preset   `json:"presets" yaml:"presets"`

	indexOnce  sync.Once
	byID       map[string]int
	dependents map[string][]string
}

// ensureIndex builds the lookup tables on first use for catalogs that were
// neither loaded nor validated. Safe for concurrent readers.
func (c *Catalog) ensureIndex() {
	c.indexOnce.Do(func() {
		if c.byID == nil {
			c.index()
		}
	})
}

// index builds the lookup tables. Callers other than ensureIndex must run
// it before the catalog is shared.
func (c *Catalog) index() {
	c.byID = make(map[string]int, len(c.Projects))
	c.dependents = make(map[string][]string)
	for i, p := range c.Projects {
		c.byID[p.ID] = i
		if p.Requires != "" {
			c.dependents[p.Requires] = append(c.dependents[p.Requires], p.ID)
		}
	}
}

// Project looks a project up by id. Unknown ids return nil.
func (c *Catalog) Project(id string) *Project {
	c.ensureIndex()
	i, ok := c.byID[id]
	if !ok {
		return nil
	}
	return &c.Projects[i]
}

// Dependents lists the projects declaring Requires == id.
func (c *Catalog) Dependents(id string) []string {
	c.ensureIndex()
	return c.dependents[id]
}

func (c *Catalog) Preset(id string) *Preset {
	for i := range c.Presets {
		if c.Presets[i].ID == id {
			return &c.Presets[i]
		}
	}
	return nil
}

// Validate checks referential integrity and lever bounds.
func (c *Catalog) Validate() error {
	if c.BaseAllocation < 0 {
		return errors.New("base_allocation must be non-negative")
	}
	if c.Levers.PercentMin > 0 || c.Levers.PercentMax < 0 {
		return fmt.Errorf("percent bounds [%d,%d] must include 0", c.Levers.PercentMin, c.Levers.PercentMax)
	}
	if _, ok := c.Levers.Tier(0); !ok {
		return errors.New("mobility_tax_tiers must define tier 0")
	}
	seenTier := map[int]bool{}
	for _, t := range c.Levers.MobilityTaxTiers {
		if seenTier[t.Value] {
			return fmt.Errorf("duplicate mobility tax tier %d", t.Value)
		}
		seenTier[t.Value] = true
	}

	c.index()
	if len(c.byID) != len(c.Projects) {
		return errors.New("duplicate project id")
	}
	for _, p := range c.Projects {
		if p.ID == "" {
			return errors.New("project with empty id")
		}
		if !p.Category.Valid() {
			return fmt.Errorf("project %s: unknown category %q", p.ID, p.Category)
		}
		if p.Cost < 0 {
			return fmt.Errorf("project %s: negative cost", p.ID)
		}
		if p.Requires != "" {
			if p.Requires == p.ID {
				return fmt.Errorf("project %s requires itself", p.ID)
			}
			if c.Project(p.Requires) == nil {
				return fmt.Errorf("project %s requires unknown project %s", p.ID, p.Requires)
			}
		}
		opts := map[string]bool{}
		for _, o := range p.UpgradeOptions {
			if o.ID == "" || opts[o.ID] {
				return fmt.Errorf("project %s: empty or duplicate upgrade option %q", p.ID, o.ID)
			}
			opts[o.ID] = true
		}
	}

	presets := map[string]bool{}
	for _, pr := range c.Presets {
		if pr.ID == "" || presets[pr.ID] {
			return fmt.Errorf("empty or duplicate preset id %q", pr.ID)
		}
		presets[pr.ID] = true
		if err := c.validatePreset(&pr); err != nil {
			return fmt.Errorf("preset %s: %w", pr.ID, err)
		}
	}
	return nil
}

func (c *Catalog) validatePreset(pr *Preset) error {
	seen := map[string]bool{}
	for _, s := range pr.Selections {
		p := c.Project(s.ProjectID)
		if p == nil {
			return fmt.Errorf("unknown project %s", s.ProjectID)
		}
		if seen[s.ProjectID] {
			return fmt.Errorf("project %s selected twice", s.ProjectID)
		}
		seen[s.ProjectID] = true
		if !s.Period.Active() {
			return fmt.Errorf("project %s has no period", s.ProjectID)
		}
		if p.MandatOnly && s.Period != model.PeriodBoth {
			return fmt.Errorf("project %s must be split across both mandates", s.ProjectID)
		}
		if s.UpgradeOption != "" {
			if _, ok := p.Option(s.UpgradeOption); !ok {
				return fmt.Errorf("project %s: unknown upgrade option %s", s.ProjectID, s.UpgradeOption)
			}
		}
	}
	if pr.Levers.MobilityTaxTier != nil {
		if _, ok := c.Levers.Tier(*pr.Levers.MobilityTaxTier); !ok {
			return fmt.Errorf("invalid mobility tax tier %d", *pr.Levers.MobilityTaxTier)
		}
	}
	for _, v := range []*int{pr.Levers.TicketPricePct, pr.Levers.SubscriptionPricePct} {
		if v != nil && (*v < c.Levers.PercentMin || *v > c.Levers.PercentMax) {
			return fmt.Errorf("percentage %d out of bounds", *v)
		}
	}
	return nil
}
