package mutations

import (
	"fmt"
	"strings"

	"mandate-engine/internal/catalog"
	"mandate-engine/internal/model"
	"mandate-engine/internal/selection"
)

type setProjectPeriodProps struct {
	ProjectID string             `json:"project_id"`
	Period    model.MandatPeriod `json:"period"`
}

type SetProjectPeriodHandler struct{}

func (h *SetProjectPeriodHandler) Validate(cat *catalog.Catalog, state *model.SelectionState, mutation *model.Mutation) []model.CalculationMessage {
	var props setProjectPeriodProps
	if err := decodeProps(mutation, &props); err != nil {
		return invalidProps(err)
	}

	p := cat.Project(props.ProjectID)
	if p == nil {
		return []model.CalculationMessage{warning("UNKNOWN_PROJECT",
			fmt.Sprintf("Project %s is not in the catalog and was ignored", props.ProjectID))}
	}
	if p.MandatOnly && props.Period.Active() && props.Period != model.PeriodBoth {
		return []model.CalculationMessage{warning("PERIOD_COERCED",
			fmt.Sprintf("Project %s can only be split across both mandates", p.ID))}
	}
	return nil
}

func (h *SetProjectPeriodHandler) Apply(cat *catalog.Catalog, state *model.SelectionState, mutation *model.Mutation) []model.CalculationMessage {
	var props setProjectPeriodProps
	decodeProps(mutation, &props)

	var removed []string
	if !props.Period.Active() {
		for _, dep := range cat.Dependents(props.ProjectID) {
			if state.Selection(dep) >= 0 {
				removed = append(removed, dep)
			}
		}
	}

	selection.SetProjectPeriod(cat, state, props.ProjectID, props.Period)

	if len(removed) > 0 {
		return []model.CalculationMessage{warning("DEPENDENTS_REMOVED",
			fmt.Sprintf("Removing %s also removed %s", props.ProjectID, strings.Join(removed, ", ")))}
	}
	return nil
}

type setProjectUpgradeProps struct {
	ProjectID string `json:"project_id"`
	Upgraded  bool   `json:"upgraded"`
}

type SetProjectUpgradeHandler struct{}

func (h *SetProjectUpgradeHandler) Validate(cat *catalog.Catalog, state *model.SelectionState, mutation *model.Mutation) []model.CalculationMessage {
	var props setProjectUpgradeProps
	if err := decodeProps(mutation, &props); err != nil {
		return invalidProps(err)
	}
	return nil
}

func (h *SetProjectUpgradeHandler) Apply(cat *catalog.Catalog, state *model.SelectionState, mutation *model.Mutation) []model.CalculationMessage {
	var props setProjectUpgradeProps
	decodeProps(mutation, &props)

	if !selection.SetProjectUpgrade(cat, state, props.ProjectID, props.Upgraded) {
		return []model.CalculationMessage{warning("UPGRADE_IGNORED",
			fmt.Sprintf("Project %s is not selected or has no upgrade", props.ProjectID))}
	}
	return nil
}

type setProjectUpgradeOptionProps struct {
	ProjectID string  `json:"project_id"`
	OptionID  *string `json:"option_id"`
}

type SetProjectUpgradeOptionHandler struct{}

func (h *SetProjectUpgradeOptionHandler) Validate(cat *catalog.Catalog, state *model.SelectionState, mutation *model.Mutation) []model.CalculationMessage {
	var props setProjectUpgradeOptionProps
	if err := decodeProps(mutation, &props); err != nil {
		return invalidProps(err)
	}
	return nil
}

func (h *SetProjectUpgradeOptionHandler) Apply(cat *catalog.Catalog, state *model.SelectionState, mutation *model.Mutation) []model.CalculationMessage {
	var props setProjectUpgradeOptionProps
	decodeProps(mutation, &props)

	option := ""
	if props.OptionID != nil {
		option = *props.OptionID
	}
	if !selection.SetProjectUpgradeOption(cat, state, props.ProjectID, option) {
		return []model.CalculationMessage{warning("UPGRADE_OPTION_IGNORED",
			fmt.Sprintf("Project %s is not selected or has no option %q", props.ProjectID, option))}
	}
	return nil
}
