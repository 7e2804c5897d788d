package handlers

import (
	"net/http"

	"gym-management-api/middleware"

	"github.com/gin-gonic/gin"
)

type SelectPlanRequest struct {
	PlanID uint `json:"plan_id" binding:"required"`
}

type SelectTimeSlotRequest struct {
	TimeSlot string `json:"time_slot" binding:"required,timeslot"`
}

type SelectTrainerRequest struct {
	TrainerID uint `json:"trainer_id" binding:"required"`
}

// GetOnboarding returns the current onboarding step
func (h *Handler) GetOnboarding(c *gin.Context) {
	view, err := h.svc.Onboarding.View(c.Request.Context(), middleware.GetSession(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"onboarding": view})
}

// SelectPlan holds a plan choice until the time slot is picked
func (h *Handler) SelectPlan(c *gin.Context) {
	var req SelectPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	view, err := h.svc.Onboarding.SelectPlan(c.Request.Context(), middleware.GetSession(c), req.PlanID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"onboarding": view})
}

// SelectTimeSlot commits the pending plan with the chosen slot
func (h *Handler) SelectTimeSlot(c *gin.Context) {
	var req SelectTimeSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	view, err := h.svc.Onboarding.SelectTimeSlot(c.Request.Context(), middleware.GetSession(c), req.TimeSlot)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"onboarding": view})
}

// SelectTrainer assigns an approved trainer and completes onboarding
func (h *Handler) SelectTrainer(c *gin.Context) {
	var req SelectTrainerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	view, err := h.svc.Onboarding.SelectTrainer(c.Request.Context(), middleware.GetSession(c), req.TrainerID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"onboarding": view})
}

// GetMemberDashboard returns the read-only dashboard of an onboarded member
func (h *Handler) GetMemberDashboard(c *gin.Context) {
	dash, err := h.svc.Onboarding.Dashboard(c.Request.Context(), middleware.GetSession(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"dashboard": dash})
}

func (h *Handler) CheckIn(c *gin.Context) {
	respondError(c, h.svc.Onboarding.CheckIn(c.Request.Context(), middleware.GetSession(c)))
}
