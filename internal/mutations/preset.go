package mutations

import (
	"fmt"

	"mandate-engine/internal/catalog"
	"mandate-engine/internal/model"
	"mandate-engine/internal/selection"
)

type applyPresetProps struct {
	PresetID *string `json:"preset_id"`
}

func (p applyPresetProps) id() string {
	if p.PresetID == nil {
		return ""
	}
	return *p.PresetID
}

type ApplyPresetHandler struct{}

func (h *ApplyPresetHandler) Validate(cat *catalog.Catalog, state *model.SelectionState, mutation *model.Mutation) []model.CalculationMessage {
	var props applyPresetProps
	if err := decodeProps(mutation, &props); err != nil {
		return invalidProps(err)
	}
	if id := props.id(); id != "" && cat.Preset(id) == nil {
		return []model.CalculationMessage{warning("UNKNOWN_PRESET",
			fmt.Sprintf("Preset %s does not exist; state left unchanged", id))}
	}
	return nil
}

func (h *ApplyPresetHandler) Apply(cat *catalog.Catalog, state *model.SelectionState, mutation *model.Mutation) []model.CalculationMessage {
	var props applyPresetProps
	decodeProps(mutation, &props)
	selection.ApplyPreset(cat, state, props.id())
	return nil
}

type ResetAllHandler struct{}

func (h *ResetAllHandler) Validate(cat *catalog.Catalog, state *model.SelectionState, mutation *model.Mutation) []model.CalculationMessage {
	return nil
}

func (h *ResetAllHandler) Apply(cat *catalog.Catalog, state *model.SelectionState, mutation *model.Mutation) []model.CalculationMessage {
	selection.ResetAll(state)
	return nil
}
