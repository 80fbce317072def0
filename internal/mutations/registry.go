package mutations

import "sort"

var registry = map[string]MutationHandler{
	"set_project_period":         &SetProjectPeriodHandler{},
	"set_project_upgrade":        &SetProjectUpgradeHandler{},
	"set_project_upgrade_option": &SetProjectUpgradeOptionHandler{},
	"set_financing_lever":        &SetFinancingLeverHandler{},
	"confirm_fleet_offer":        &ConfirmFleetOfferHandler{},
	"apply_preset":               &ApplyPresetHandler{},
	"reset_all":                  &ResetAllHandler{},
}

func Get(name string) (MutationHandler, bool) {
	h, ok := registry[name]
	return h, ok
}

// Names lists the registered mutation names in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
