package model

import json "github.com/goccy/go-json"

type CalculationResponse struct {
	CalculationMetadata CalculationMetadata `json:"calculation_metadata"`
	CalculationResult   CalculationResult   `json:"calculation_result"`
}

type CalculationMetadata struct {
	CalculationID          string `json:"calculation_id"`
	SessionID              string `json:"session_id,omitempty"`
	CalculationStartedAt   string `json:"calculation_started_at"`
	CalculationCompletedAt string `json:"calculation_completed_at"`
	CalculationDurationMs  int64  `json:"calculation_duration_ms"`
	CalculationOutcome     string `json:"calculation_outcome"`
}

type CalculationResult struct {
	Messages     []CalculationMessage `json:"messages"`
	Mutations    []ProcessedMutation  `json:"mutations"`
	InitialState SelectionState       `json:"initial_state"`
	EndState     StateEnvelope        `json:"end_state"`
	Report       Report               `json:"report"`
}

type ProcessedMutation struct {
	Mutation                  Mutation        `json:"mutation"`
	CalculationMessageIndexes []int           `json:"calculation_message_indexes,omitempty"`
	StatePatch                json.RawMessage `json:"state_patch,omitempty"`
}

type StateEnvelope struct {
	MutationID    string         `json:"mutation_id"`
	MutationIndex int            `json:"mutation_index"`
	State         SelectionState `json:"state"`
}

type SessionResponse struct {
	SessionID string         `json:"session_id"`
	State     SelectionState `json:"state"`
	Report    Report         `json:"report"`
}

type ErrorResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

const (
	OutcomeSuccess = "SUCCESS"
	OutcomeFailure = "FAILURE"
)
