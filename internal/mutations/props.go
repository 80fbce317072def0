package mutations

import (
	"bytes"

	json "github.com/goccy/go-json"

	"mandate-engine/internal/model"
)

var jsonNull = []byte("null")

// decodeProps unmarshals mutation properties into v. Missing properties are
// treated as an empty object.
func decodeProps(mutation *model.Mutation, v interface{}) error {
	raw := bytes.TrimSpace(mutation.MutationProperties)
	if len(raw) == 0 || bytes.Equal(raw, jsonNull) {
		return nil
	}
	return json.Unmarshal(raw, v)
}

func critical(code, message string) []model.CalculationMessage {
	return []model.CalculationMessage{{
		Level:   model.LevelCritical,
		Code:    code,
		Message: message,
	}}
}

func warning(code, message string) model.CalculationMessage {
	return model.CalculationMessage{
		Level:   model.LevelWarning,
		Code:    code,
		Message: message,
	}
}

func invalidProps(err error) []model.CalculationMessage {
	return critical("INVALID_PROPERTIES", "Invalid mutation properties: "+err.Error())
}
