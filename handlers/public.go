package handlers

import (
	"net/http"

	"gym-management-api/models"
	"gym-management-api/statemachine"

	"github.com/gin-gonic/gin"
)

// ListPlans returns the plan catalog and the selectable time slots (public)
func (h *Handler) ListPlans(c *gin.Context) {
	plans, err := h.svc.Onboarding.Plans(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"count":      len(plans),
		"plans":      plans,
		"time_slots": models.TimeSlots,
	})
}

// GetStateMachineInfo returns both state machines for informational purposes
func (h *Handler) GetStateMachineInfo(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"onboarding": gin.H{
			"transitions":     statemachine.GetOnboardingTransitions(),
			"terminal_states": []models.OnboardingState{models.StateComplete},
			"description":     "Member onboarding: plan, then time slot, then trainer",
		},
		"trainer_approval": gin.H{
			"transitions":     statemachine.GetTrainerTransitions(),
			"terminal_states": []models.TrainerStatus{models.TrainerRejectedAndDeleted},
			"description":     "Trainer application lifecycle, decided by admins",
		},
	})
}

// Health reports liveness
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "Gym Management API",
		"version": "1.0.0",
	})
}
