package routes

import (
	"gym-management-api/handlers"
	"gym-management-api/metrics"
	"gym-management-api/middleware"
	"gym-management-api/models"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine, h *handlers.Handler, authn *middleware.Authenticator, m *metrics.Metrics) error {
	if err := handlers.RegisterValidators(); err != nil {
		return err
	}

	r.GET("/health", h.Health)
	if m != nil {
		r.GET("/metrics", gin.WrapH(m.Handler()))
	}

	// ── Public routes ──────────────────────────────────────────────
	public := r.Group("/api")
	{
		// Auth
		public.POST("/auth/register", h.Register)
		public.POST("/auth/verify", h.Verify)
		public.POST("/auth/login", h.Login)

		public.GET("/plans", h.ListPlans)

		// State machine info (great for docs/Postman)
		public.GET("/state-machine", h.GetStateMachineInfo)
	}

	// ── Authenticated routes ───────────────────────────────────────
	auth := r.Group("/api")
	auth.Use(authn.AuthRequired())
	{
		auth.POST("/auth/logout", h.Logout)
		auth.GET("/profile", h.GetProfile)
	}

	// ── Member routes ──────────────────────────────────────────────
	member := r.Group("/api/member")
	member.Use(authn.AuthRequired(), middleware.RoleRequired(models.RoleMember))
	{
		member.GET("/onboarding", h.GetOnboarding)
		member.POST("/onboarding/plan", h.SelectPlan)
		member.POST("/onboarding/time-slot", h.SelectTimeSlot)
		member.POST("/onboarding/trainer", h.SelectTrainer)

		member.GET("/dashboard", h.GetMemberDashboard)
		member.POST("/check-in", h.CheckIn)
	}

	// ── Trainer routes ─────────────────────────────────────────────
	trainer := r.Group("/api/trainer")
	trainer.Use(authn.AuthRequired(), middleware.RoleRequired(models.RoleTrainer))
	{
		trainer.GET("/dashboard", h.GetTrainerDashboard)
	}

	// ── Admin routes ───────────────────────────────────────────────
	admin := r.Group("/api/admin")
	admin.Use(authn.AuthRequired(), middleware.RoleRequired(models.RoleAdmin))
	{
		admin.GET("/trainers/pending", h.AdminListPendingTrainers)
		admin.GET("/trainers", h.AdminListTrainers)
		admin.PUT("/trainers/:id/approve", h.AdminApproveTrainer)
		admin.PUT("/trainers/:id/reject", h.AdminRejectTrainer)
		admin.DELETE("/trainers/:id", h.AdminDeleteTrainer)

		admin.GET("/members", h.AdminListMembers)
		admin.DELETE("/members/:id", h.AdminDeleteMember)

		admin.GET("/events", h.AdminEventStream)
	}

	return nil
}
