package model

// MandateBalance is the derived budget of one mandate.
type MandateBalance struct {
	Base        float64 `json:"base"`
	LeverEffect float64 `json:"lever_effect"`
	ProjectCost float64 `json:"project_cost"`
	FleetCost   float64 `json:"fleet_cost"`
	Balance     float64 `json:"balance"`
}

// Cost is everything charged to the mandate.
func (m MandateBalance) Cost() float64 {
	return m.ProjectCost + m.FleetCost
}

type BudgetState struct {
	M1          MandateBalance `json:"m1"`
	M2          MandateBalance `json:"m2"`
	TotalImpact float64        `json:"total_impact"`
	Efficiency  float64        `json:"efficiency"`
}

// Balanced reports whether neither mandate ends in deficit.
func (b BudgetState) Balanced() bool {
	return b.M1.Balance >= 0 && b.M2.Balance >= 0
}

type Objective struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Target      float64 `json:"target"`
	Current     float64 `json:"current"`
	Completed   bool    `json:"completed"`
	Reward      int     `json:"reward"`
}

type Achievement struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Unlocked    bool   `json:"unlocked"`
}

// Report gathers every derived value for one state snapshot.
type Report struct {
	Budget       BudgetState   `json:"budget"`
	Score        int           `json:"score"`
	Objectives   []Objective   `json:"objectives"`
	Achievements []Achievement `json:"achievements"`
}
