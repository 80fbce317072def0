package engine

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"mandate-engine/internal/budget"
	"mandate-engine/internal/catalog"
	"mandate-engine/internal/jsonpatch"
	"mandate-engine/internal/model"
	"mandate-engine/internal/mutations"
	"mandate-engine/internal/scoring"
)

// Evaluate derives every read-side value from a state snapshot.
func Evaluate(cat *catalog.Catalog, st *model.SelectionState) model.Report {
	b := budget.ComputeBudget(cat, st)
	return model.Report{
		Budget:       b,
		Score:        scoring.ComputeScore(cat, st, b),
		Objectives:   scoring.ComputeObjectives(cat, st, b),
		Achievements: scoring.ComputeAchievements(cat, st, b),
	}
}

// Process applies the request's mutations in order to a copy of initial.
// A CRITICAL message stops the batch; the end state is the state after the
// last mutation that applied cleanly.
func Process(cat *catalog.Catalog, initial *model.SelectionState, req *model.CalculationRequest) *model.CalculationResponse {
	start := time.Now()

	if initial == nil {
		initial = model.NewSelectionState()
	}
	state := initial.Clone()

	var allMessages []model.CalculationMessage
	var processedMutations []model.ProcessedMutation
	outcome := model.OutcomeSuccess
	hasCritical := false

	lastMutationID := ""
	lastMutationIndex := -1

	for i, mut := range req.Mutations {
		handler, ok := mutations.Get(mut.MutationDefinitionName)
		if !ok {
			msg := model.CalculationMessage{
				ID:      len(allMessages),
				Level:   model.LevelCritical,
				Code:    "UNKNOWN_MUTATION",
				Message: fmt.Sprintf("Unknown mutation: %s", mut.MutationDefinitionName),
			}
			allMessages = append(allMessages, msg)
			processedMutations = append(processedMutations, model.ProcessedMutation{
				Mutation:                  mut,
				CalculationMessageIndexes: []int{msg.ID},
			})
			outcome = model.OutcomeFailure
			break
		}

		// Validate
		validationMsgs := handler.Validate(cat, state, &mut)
		var msgIndexes []int
		for _, vm := range validationMsgs {
			vm.ID = len(allMessages)
			allMessages = append(allMessages, vm)
			msgIndexes = append(msgIndexes, vm.ID)
			if vm.Level == model.LevelCritical {
				hasCritical = true
			}
		}

		if hasCritical {
			outcome = model.OutcomeFailure
			processedMutations = append(processedMutations, model.ProcessedMutation{
				Mutation:                  mut,
				CalculationMessageIndexes: msgIndexes,
			})
			break
		}

		// Apply on a working copy so a CRITICAL apply leaves state untouched.
		before := state
		next := state.Clone()
		applyMsgs := handler.Apply(cat, next, &mut)
		for _, am := range applyMsgs {
			am.ID = len(allMessages)
			allMessages = append(allMessages, am)
			msgIndexes = append(msgIndexes, am.ID)
			if am.Level == model.LevelCritical {
				hasCritical = true
			}
		}

		processed := model.ProcessedMutation{
			Mutation:                  mut,
			CalculationMessageIndexes: msgIndexes,
		}
		if hasCritical {
			processedMutations = append(processedMutations, processed)
			outcome = model.OutcomeFailure
			break
		}

		if patch, err := jsonpatch.Between(before, next); err == nil {
			processed.StatePatch = patch
		}
		processedMutations = append(processedMutations, processed)

		state = next
		lastMutationID = mut.MutationID
		lastMutationIndex = i
	}

	elapsed := time.Since(start)
	now := time.Now().UTC()

	if allMessages == nil {
		allMessages = []model.CalculationMessage{}
	}
	if processedMutations == nil {
		processedMutations = []model.ProcessedMutation{}
	}

	return &model.CalculationResponse{
		CalculationMetadata: model.CalculationMetadata{
			CalculationID:          uuid.New().String(),
			SessionID:              req.SessionID,
			CalculationStartedAt:   now.Add(-elapsed).Format(time.RFC3339),
			CalculationCompletedAt: now.Format(time.RFC3339),
			CalculationDurationMs:  elapsed.Milliseconds(),
			CalculationOutcome:     outcome,
		},
		CalculationResult: model.CalculationResult{
			Messages:     allMessages,
			Mutations:    processedMutations,
			InitialState: *initial.Clone(),
			EndState: model.StateEnvelope{
				MutationID:    lastMutationID,
				MutationIndex: lastMutationIndex,
				State:         *state,
			},
			Report: Evaluate(cat, state),
		},
	}
}
