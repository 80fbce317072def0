package model

import json "github.com/goccy/go-json"

// CalculationRequest starts from a session or an inline state document.
// State stays raw so it can be schema checked before it is decoded.
type CalculationRequest struct {
	SessionID string          `json:"session_id,omitempty"`
	State     json.RawMessage `json:"state,omitempty"`
	Mutations []Mutation      `json:"mutations"`
}

type Mutation struct {
	MutationID             string          `json:"mutation_id"`
	MutationDefinitionName string          `json:"mutation_definition_name"`
	MutationProperties     json.RawMessage `json:"mutation_properties"`
}
