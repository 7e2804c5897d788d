package services

import (
	"context"

	"gym-management-api/events"
	"gym-management-api/logger"
	"gym-management-api/mailer"
	"gym-management-api/metrics"
	"gym-management-api/sessions"
	"gym-management-api/store"
)

// Deps are the collaborators shared by every service.
type Deps struct {
	Store            store.Store
	Sessions         *sessions.Manager
	Events           events.Publisher
	Metrics          *metrics.Metrics
	Mailer           mailer.Mailer
	VerificationCode string
}

// Services is the container handed to the transport layer.
type Services struct {
	Auth       *AuthService
	Onboarding *OnboardingService
	Approval   *ApprovalService
	Membership *MembershipService
}

func New(d Deps) *Services {
	if d.Events == nil {
		d.Events = events.Nop{}
	}
	if d.Mailer == nil {
		d.Mailer = mailer.LogMailer{}
	}
	return &Services{
		Auth:       &AuthService{deps: d},
		Onboarding: &OnboardingService{deps: d},
		Approval:   &ApprovalService{deps: d},
		Membership: &MembershipService{deps: d},
	}
}

// publish hands e to the event publisher. Delivery failures are logged only.
func publish(ctx context.Context, p events.Publisher, e events.Event) {
	if err := p.Publish(ctx, e); err != nil {
		logger.FromContext(ctx).Warn("failed to publish event", "type", e.Type, "error", err)
	}
}
