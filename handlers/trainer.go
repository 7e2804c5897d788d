package handlers

import (
	"net/http"

	"gym-management-api/middleware"

	"github.com/gin-gonic/gin"
)

// GetTrainerDashboard only reports the application status for now
func (h *Handler) GetTrainerDashboard(c *gin.Context) {
	trainer, err := h.svc.Approval.Get(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"trainer_id":     trainer.TrainerID,
		"specialization": trainer.Specialization,
		"status":         trainer.Status,
		"message":        "Trainer tools are not available yet",
	})
}
