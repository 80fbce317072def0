package catalog

import "mandate-engine/internal/model"

// DefaultBaseAllocation is the allocation granted to each mandate in the
// reference configuration.
const DefaultBaseAllocation = 2000

func ptr[T any](v T) *T { return &v }

// Default returns the built-in reference catalog. Each call returns a fresh
// copy that callers may modify.
func Default() *Catalog {
	c := &Catalog{
		BaseAllocation: DefaultBaseAllocation,
		Levers: LeverRates{
			TotalFareFree:             -1925,
			ConditionalFareFree:       -140,
			ParkAndRideFees:           25,
			SocialTariffRemoval:       35,
			AdvertisingRevenue:        15,
			TicketPricePerPoint:       4,
			SubscriptionPricePerPoint: 3,
			PercentMin:                -50,
			PercentMax:                50,
			MobilityTaxTiers: []TierRate{
				{Value: -25, Amount: -110},
				{Value: 0, Amount: 0},
				{Value: 25, Amount: 110},
				{Value: 50, Amount: 220},
			},
		},
		Fleet: FleetCosts{
			Electrification: 240,
			Maintenance:     180,
		},
		Projects: defaultProjects(),
		Presets:  defaultPresets(),
	}
	c.index()
	return c
}

func defaultProjects() []Project {
	return []Project{
		{
			ID:          "metro-a-doubling",
			Name:        "Line A capacity doubling",
			Description: "Longer trains and platforms on the busiest metro line.",
			Category:    CategoryMetro,
			Cost:        180,
			Impact:      25000,
		},
		{
			ID:          "metro-b-extension",
			Name:        "Line B southern extension",
			Description: "Four new stations towards the southern business park.",
			Category:    CategoryMetro,
			Cost:        350,
			Impact:      60000,
		},
		{
			ID:          "metro-c",
			Name:        "Third metro line",
			Description: "A new automated line crossing the city east to west. Too large for a single mandate.",
			Category:    CategoryMetro,
			Cost:        1800,
			Impact:      200000,
			MandatOnly:  true,
			UpgradeOptions: []UpgradeOption{
				{ID: "metro-c-short", Label: "Short alignment (city core only)", Cost: 1400, Impact: 150000},
				{ID: "metro-c-long", Label: "Long alignment (airport branch)", Cost: 2200, Impact: 240000},
			},
		},
		{
			ID:          "tram-t1-extension",
			Name:        "Tram T1 extension",
			Description: "Extends T1 to the exhibition centre.",
			Category:    CategoryTram,
			Cost:        120,
			Impact:      15000,
			Upgrade:     &Upgrade{Label: "Five-minute headway", Cost: 40, Impact: 5000},
		},
		{
			ID:          "tram-river",
			Name:        "Riverside tram line",
			Description: "A new tram line along the river quays.",
			Category:    CategoryTram,
			Cost:        260,
			Impact:      30000,
		},
		{
			ID:          "tram-airport-shuttle",
			Name:        "Airport tram shuttle",
			Description: "Direct shuttle service on the extended T1 tracks.",
			Category:    CategoryTram,
			Cost:        90,
			Impact:      8000,
			Requires:    "tram-t1-extension",
		},
		{
			ID:          "bus-rapid-east",
			Name:        "Eastern bus rapid transit",
			Description: "Dedicated lanes and priority signals on the eastern corridor.",
			Category:    CategoryBus,
			Cost:        110,
			Impact:      20000,
			Upgrade:     &Upgrade{Label: "Bi-articulated vehicles", Cost: 30},
		},
		{
			ID:          "bus-rapid-east-feeder",
			Name:        "Eastern feeder lines",
			Description: "Three feeder lines timed on the eastern rapid transit.",
			Category:    CategoryBus,
			Cost:        40,
			Impact:      6000,
			Requires:    "bus-rapid-east",
		},
		{
			ID:          "bus-express-network",
			Name:        "Express bus network",
			Description: "Upgrade of the radial express lines.",
			Category:    CategoryBus,
			Cost:        150,
			Impact:      28000,
			UpgradeOptions: []UpgradeOption{
				{ID: "express-4-lines", Label: "Four lines", Cost: 90, Impact: 16000},
				{ID: "express-12-lines", Label: "Twelve lines", Cost: 240, Impact: 42000},
			},
		},
		{
			ID:          "bus-night",
			Name:        "Night bus service",
			Description: "All-night service on six trunk routes.",
			Category:    CategoryBus,
			Cost:        25,
			Impact:      3000,
		},
		{
			ID:          "cable-car-south",
			Name:        "Southern cable car",
			Description: "Urban cable car linking the hospital and the university.",
			Category:    CategoryOther,
			Cost:        80,
			Impact:      7000,
		},
		{
			ID:          "bike-express",
			Name:        "Express cycle network",
			Description: "Protected cycle highways feeding the main stations.",
			Category:    CategoryOther,
			Cost:        60,
			Impact:      6000,
		},
		{
			ID:          "central-interchange",
			Name:        "Central station interchange",
			Description: "Rebuilt interchange between the rail station and line B.",
			Category:    CategoryOther,
			Cost:        140,
			Impact:      10000,
			Requires:    "metro-b-extension",
		},
		{
			ID:          "river-shuttle",
			Name:        "River shuttle boats",
			Description: "Seasonal boat service between the two banks.",
			Category:    CategoryOther,
			Cost:        35,
			Impact:      1500,
		},
	}
}

func defaultPresets() []Preset {
	return []Preset{
		{
			ID:          "green-network",
			Name:        "Green surface network",
			Description: "Trams, buses and bikes first, with an electric fleet.",
			Selections: []model.ProjectSelection{
				{ProjectID: "tram-river", Period: model.PeriodFirst},
				{ProjectID: "tram-t1-extension", Period: model.PeriodBoth, Upgraded: true},
				{ProjectID: "bus-rapid-east", Period: model.PeriodFirst},
				{ProjectID: "bike-express", Period: model.PeriodFirst},
				{ProjectID: "bus-night", Period: model.PeriodSecond},
			},
			Levers: model.LeverOverrides{
				TicketPricePct:       ptr(-10),
				MobilityTaxTier:      ptr(50),
				FleetElectrification: ptr(model.PeriodBoth),
				FleetMaintenance:     ptr(model.PeriodFirst),
			},
		},
		{
			ID:          "metro-first",
			Name:        "Heavy rail ambition",
			Description: "The third metro line and the line B extension, financed by fares.",
			Selections: []model.ProjectSelection{
				{ProjectID: "metro-c", Period: model.PeriodBoth, UpgradeOption: "metro-c-short"},
				{ProjectID: "metro-b-extension", Period: model.PeriodFirst},
				{ProjectID: "central-interchange", Period: model.PeriodSecond},
			},
			Levers: model.LeverOverrides{
				TicketPricePct:       ptr(10),
				SubscriptionPricePct: ptr(5),
				MobilityTaxTier:      ptr(25),
				ParkAndRideFees:      ptr(model.PeriodBoth),
			},
		},
		{
			ID:          "free-transit",
			Name:        "Fare-free city",
			Description: "Total fare-free transit from day one with a modest build programme.",
			Selections: []model.ProjectSelection{
				{ProjectID: "bus-night", Period: model.PeriodFirst},
				{ProjectID: "bus-express-network", Period: model.PeriodFirst, UpgradeOption: "express-4-lines"},
			},
			Levers: model.LeverOverrides{
				TotalFareFree:   ptr(model.PeriodBoth),
				MobilityTaxTier: ptr(50),
			},
		},
		{
			ID:          "prudent",
			Name:        "Prudent management",
			Description: "Targeted, cheap projects and extra revenue.",
			Selections: []model.ProjectSelection{
				{ProjectID: "metro-a-doubling", Period: model.PeriodFirst},
				{ProjectID: "bus-rapid-east", Period: model.PeriodSecond},
				{ProjectID: "bus-rapid-east-feeder", Period: model.PeriodSecond},
			},
			Levers: model.LeverOverrides{
				AdvertisingRevenue:  ptr(true),
				SocialTariffRemoval: ptr(true),
				TicketPricePct:      ptr(15),
			},
		},
	}
}
