package handlers

import (
	"net/http"

	"gym-management-api/middleware"
	"gym-management-api/models"

	"github.com/gin-gonic/gin"
)

// AdminListPendingTrainers returns trainer applications awaiting a decision, admin only
func (h *Handler) AdminListPendingTrainers(c *gin.Context) {
	trainers, err := h.svc.Approval.ListPending(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(trainers), "trainers": trainers})
}

// AdminListTrainers returns every trainer with its status, admin only
func (h *Handler) AdminListTrainers(c *gin.Context) {
	trainers, err := h.svc.Approval.ListAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	summary := map[models.TrainerStatus]int{}
	for _, t := range trainers {
		summary[t.Status]++
	}
	c.JSON(http.StatusOK, gin.H{
		"status_summary": summary,
		"count":          len(trainers),
		"trainers":       trainers,
	})
}

func (h *Handler) AdminApproveTrainer(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		respondError(c, err)
		return
	}
	if err := h.svc.Approval.Approve(c.Request.Context(), middleware.GetSession(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":    "Trainer approved",
		"trainer_id": id,
		"new_status": models.TrainerApproved,
	})
}

func (h *Handler) AdminRejectTrainer(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		respondError(c, err)
		return
	}
	if err := h.svc.Approval.Reject(c.Request.Context(), middleware.GetSession(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":    "Trainer rejected and removed",
		"trainer_id": id,
		"new_status": models.TrainerRejectedAndDeleted,
	})
}

func (h *Handler) AdminDeleteTrainer(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		respondError(c, err)
		return
	}
	if err := h.svc.Approval.Delete(c.Request.Context(), middleware.GetSession(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Trainer deleted", "trainer_id": id})
}

// AdminListMembers returns all members with their plan, admin only
func (h *Handler) AdminListMembers(c *gin.Context) {
	members, err := h.svc.Membership.ListMembers(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(members), "members": members})
}

func (h *Handler) AdminDeleteMember(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		respondError(c, err)
		return
	}
	if err := h.svc.Membership.DeleteMember(c.Request.Context(), middleware.GetSession(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Member deleted", "member_id": id})
}

// AdminEventStream upgrades to a websocket that receives flow events
func (h *Handler) AdminEventStream(c *gin.Context) {
	h.hub.ServeWS(c.Writer, c.Request)
}
