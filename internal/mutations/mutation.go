package mutations

import (
	"mandate-engine/internal/catalog"
	"mandate-engine/internal/model"
)

// MutationHandler defines the contract for all mutation implementations.
// Validate must not change the state; Apply runs only when Validate raised
// no CRITICAL message.
type MutationHandler interface {
	Validate(cat *catalog.Catalog, state *model.SelectionState, mutation *model.Mutation) []model.CalculationMessage
	Apply(cat *catalog.Catalog, state *model.SelectionState, mutation *model.Mutation) []model.CalculationMessage
}
