package statemachine

import (
	"gym-management-api/apperrors"
	"gym-management-api/models"
)

// TrainerTransition defines a valid change of a trainer application and who can perform it
type TrainerTransition struct {
	From   models.TrainerStatus `json:"from"`
	Intent Intent               `json:"intent"`
	To     models.TrainerStatus `json:"to"`
	Actor  models.UserRole      `json:"actor"`
}

// trainerTransitions has no way back to PENDING_APPROVAL. Reject and delete
// are the same destructive step from either status.
var trainerTransitions = []TrainerTransition{
	{From: models.TrainerPendingApproval, Intent: IntentApprove, To: models.TrainerApproved, Actor: models.RoleAdmin},
	{From: models.TrainerPendingApproval, Intent: IntentReject, To: models.TrainerRejectedAndDeleted, Actor: models.RoleAdmin},
	{From: models.TrainerPendingApproval, Intent: IntentDelete, To: models.TrainerRejectedAndDeleted, Actor: models.RoleAdmin},
	{From: models.TrainerApproved, Intent: IntentReject, To: models.TrainerRejectedAndDeleted, Actor: models.RoleAdmin},
	{From: models.TrainerApproved, Intent: IntentDelete, To: models.TrainerRejectedAndDeleted, Actor: models.RoleAdmin},
}

type trainerKey struct {
	From   models.TrainerStatus
	Intent Intent
	Actor  models.UserRole
}

var trainerMap = func() map[trainerKey]models.TrainerStatus {
	m := make(map[trainerKey]models.TrainerStatus)
	for _, t := range trainerTransitions {
		m[trainerKey{t.From, t.Intent, t.Actor}] = t.To
	}
	return m
}()

// NextTrainerStatus checks if actor can apply intent to a trainer in status from
func NextTrainerStatus(from models.TrainerStatus, intent Intent, actor models.UserRole) (models.TrainerStatus, error) {
	if to, ok := trainerMap[trainerKey{From: from, Intent: intent, Actor: actor}]; ok {
		return to, nil
	}
	if actor != models.RoleAdmin {
		return from, apperrors.Forbidden("only admins can " + string(intent) + " trainers")
	}
	return from, apperrors.InvalidTransition("trainer",
		"invalid transition: "+string(intent)+" is not allowed for a trainer in "+string(from)+". "+
			"Allowed actions are: "+describeIntents(trainerIntentsFrom(from)),
	)
}

func trainerIntentsFrom(status models.TrainerStatus) []Intent {
	var intents []Intent
	seen := map[Intent]bool{}
	for _, t := range trainerTransitions {
		if t.From == status && !seen[t.Intent] {
			intents = append(intents, t.Intent)
			seen[t.Intent] = true
		}
	}
	return intents
}

// GetTrainerTransitions returns the approval table for documentation
func GetTrainerTransitions() []TrainerTransition {
	return trainerTransitions
}
