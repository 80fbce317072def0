package mutations

import (
	"errors"
	"fmt"

	json "github.com/goccy/go-json"

	"mandate-engine/internal/catalog"
	"mandate-engine/internal/model"
	"mandate-engine/internal/selection"
)

type setFinancingLeverProps struct {
	Lever string          `json:"lever"`
	Value json.RawMessage `json:"value"`
}

// decodeLeverValue reads the value according to the lever's shape.
func decodeLeverValue(props setFinancingLeverProps) (selection.LeverValue, error) {
	var v selection.LeverValue
	raw := props.Value
	if len(raw) == 0 {
		raw = jsonNull
	}
	switch {
	case selection.IsPeriodLever(props.Lever):
		err := json.Unmarshal(raw, &v.Period)
		return v, err
	case selection.IsToggleLever(props.Lever):
		var b *bool
		if err := json.Unmarshal(raw, &b); err != nil {
			return v, err
		}
		v.Enabled = b != nil && *b
		return v, nil
	default:
		var n *int
		if err := json.Unmarshal(raw, &n); err != nil {
			return v, err
		}
		if n != nil {
			v.Number = *n
		}
		return v, nil
	}
}

type SetFinancingLeverHandler struct{}

func (h *SetFinancingLeverHandler) Validate(cat *catalog.Catalog, state *model.SelectionState, mutation *model.Mutation) []model.CalculationMessage {
	var props setFinancingLeverProps
	if err := decodeProps(mutation, &props); err != nil {
		return invalidProps(err)
	}
	v, err := decodeLeverValue(props)
	if err != nil {
		return critical("INVALID_LEVER_VALUE", fmt.Sprintf("Invalid value for lever %s: %v", props.Lever, err))
	}

	// Dry run on a copy so rejected values never touch the real state.
	_, err = selection.SetFinancingLever(cat, state.Clone(), props.Lever, v)
	switch {
	case errors.Is(err, selection.ErrUnknownLever):
		return critical("UNKNOWN_LEVER", fmt.Sprintf("Unknown financing lever: %s", props.Lever))
	case errors.Is(err, selection.ErrInvalidTier):
		return critical("INVALID_TIER", fmt.Sprintf("Mobility tax tier %d is not allowed", v.Number))
	case err != nil:
		return critical("INVALID_LEVER_VALUE", err.Error())
	}
	return nil
}

func (h *SetFinancingLeverHandler) Apply(cat *catalog.Catalog, state *model.SelectionState, mutation *model.Mutation) []model.CalculationMessage {
	var props setFinancingLeverProps
	decodeProps(mutation, &props)
	v, _ := decodeLeverValue(props)

	res, err := selection.SetFinancingLever(cat, state, props.Lever, v)
	if err != nil {
		return critical("INVALID_LEVER_VALUE", err.Error())
	}

	var msgs []model.CalculationMessage
	if res.Clamped {
		msgs = append(msgs, warning("PERCENTAGE_CLAMPED",
			fmt.Sprintf("Value %d for %s was clamped to [%d,%d]", v.Number, props.Lever, cat.Levers.PercentMin, cat.Levers.PercentMax)))
	}
	if res.Normalized {
		msgs = append(msgs, warning("FARE_LEVERS_RESET",
			"Total fare-free is active: fare percentages, conditional fare-free and social tariff removal were reset"))
	}
	return msgs
}

type confirmFleetOfferProps struct {
	Confirmed bool `json:"confirmed"`
}

type ConfirmFleetOfferHandler struct{}

func (h *ConfirmFleetOfferHandler) Validate(cat *catalog.Catalog, state *model.SelectionState, mutation *model.Mutation) []model.CalculationMessage {
	var props confirmFleetOfferProps
	if err := decodeProps(mutation, &props); err != nil {
		return invalidProps(err)
	}
	return nil
}

func (h *ConfirmFleetOfferHandler) Apply(cat *catalog.Catalog, state *model.SelectionState, mutation *model.Mutation) []model.CalculationMessage {
	var props confirmFleetOfferProps
	decodeProps(mutation, &props)
	selection.ConfirmFleetOffer(state, props.Confirmed)
	return nil
}
