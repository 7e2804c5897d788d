package handlers

import (
	"errors"
	"strconv"

	"gym-management-api/apperrors"
	"gym-management-api/events"
	"gym-management-api/logger"
	"gym-management-api/middleware"
	"gym-management-api/services"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// Handler renders the flows over HTTP. It holds no state of its own.
type Handler struct {
	svc   *services.Services
	authn *middleware.Authenticator
	hub   *events.Hub
}

func New(svc *services.Services, authn *middleware.Authenticator, hub *events.Hub) *Handler {
	return &Handler{svc: svc, authn: authn, hub: hub}
}

// respondError is the single place error bodies are built.
func respondError(c *gin.Context, err error) {
	appErr := apperrors.From(err)
	if appErr.HTTPCode >= 500 {
		logger.FromContext(c.Request.Context()).Error("request failed",
			"code", appErr.Code, "domain", appErr.Domain, "error", err)
	}
	c.JSON(appErr.HTTPCode, gin.H{"error": appErr})
}

func respondBindError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		respondError(c, apperrors.Validation("request", "Field "+fe.Field()+" failed on the '"+fe.Tag()+"' rule"))
		return
	}
	respondError(c, apperrors.Validation("request", err.Error()))
}

func parseID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, apperrors.Validation("request", "Invalid id "+c.Param("id"))
	}
	return uint(id), nil
}
