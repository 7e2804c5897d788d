package statemachine

import (
	"strings"

	"gym-management-api/apperrors"
	"gym-management-api/models"
)

// Intent is a user action sent back from the presentation layer
type Intent string

const (
	IntentSelectPlan     Intent = "selectPlan"
	IntentSelectTimeSlot Intent = "selectTimeSlot"
	IntentSelectTrainer  Intent = "selectTrainer"
	IntentApprove        Intent = "approve"
	IntentReject         Intent = "reject"
	IntentDelete         Intent = "delete"
)

// OnboardingTransition defines a valid step of member onboarding
type OnboardingTransition struct {
	From   models.OnboardingState `json:"from"`
	Intent Intent                 `json:"intent"`
	To     models.OnboardingState `json:"to"`
}

// onboardingTransitions is the authoritative onboarding definition.
// No step can be skipped.
var onboardingTransitions = []OnboardingTransition{
	{From: models.StateNeedsPlan, Intent: IntentSelectPlan, To: models.StateNeedsTimeSlot},
	// Picking another plan before the slot is committed replaces the pending choice
	{From: models.StateNeedsTimeSlot, Intent: IntentSelectPlan, To: models.StateNeedsTimeSlot},
	{From: models.StateNeedsTimeSlot, Intent: IntentSelectTimeSlot, To: models.StateNeedsTrainer},
	{From: models.StateNeedsTrainer, Intent: IntentSelectTrainer, To: models.StateComplete},
}

type onboardingKey struct {
	From   models.OnboardingState
	Intent Intent
}

var onboardingMap = func() map[onboardingKey]models.OnboardingState {
	m := make(map[onboardingKey]models.OnboardingState)
	for _, t := range onboardingTransitions {
		m[onboardingKey{t.From, t.Intent}] = t.To
	}
	return m
}()

// DeriveOnboardingState computes the onboarding step from the stored member
// fields alone, so reopening the flow always lands on the right step.
func DeriveOnboardingState(m models.Member) models.OnboardingState {
	switch {
	case m.PlanID == 0:
		return models.StateNeedsPlan
	case m.TimeSlot == "":
		return models.StateNeedsTimeSlot
	case m.TrainerID == 0:
		return models.StateNeedsTrainer
	default:
		return models.StateComplete
	}
}

// NextOnboardingState returns the state reached by applying intent in from
func NextOnboardingState(from models.OnboardingState, intent Intent) (models.OnboardingState, error) {
	if to, ok := onboardingMap[onboardingKey{From: from, Intent: intent}]; ok {
		return to, nil
	}
	return from, apperrors.InvalidTransition("onboarding",
		"invalid transition: "+string(intent)+" is not allowed in "+string(from)+". "+
			"Allowed actions are: "+describeIntents(AllowedIntents(from)),
	)
}

// AllowedIntents returns the intents accepted in a given onboarding state
func AllowedIntents(state models.OnboardingState) []Intent {
	var intents []Intent
	for _, t := range onboardingTransitions {
		if t.From == state {
			intents = append(intents, t.Intent)
		}
	}
	return intents
}

// GetOnboardingTransitions returns the onboarding table for documentation
func GetOnboardingTransitions() []OnboardingTransition {
	return onboardingTransitions
}

func describeIntents(intents []Intent) string {
	if len(intents) == 0 {
		return "none (terminal state)"
	}
	names := make([]string, len(intents))
	for i, in := range intents {
		names[i] = string(in)
	}
	return strings.Join(names, ", ")
}
