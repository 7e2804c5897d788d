package services

import (
	"context"

	"gym-management-api/events"
	"gym-management-api/logger"
	"gym-management-api/models"
	"gym-management-api/sessions"
	"gym-management-api/statemachine"
)

// ApprovalService runs the trainer approval flow for admins.
type ApprovalService struct {
	deps Deps
}

func (s *ApprovalService) ListPending(ctx context.Context) ([]models.TrainerDetail, error) {
	return s.deps.Store.ListPendingTrainers(ctx)
}

func (s *ApprovalService) ListAll(ctx context.Context) ([]models.TrainerDetail, error) {
	return s.deps.Store.ListAllTrainers(ctx)
}

// Get returns one trainer application.
func (s *ApprovalService) Get(ctx context.Context, trainerID uint) (*models.Trainer, error) {
	return s.deps.Store.GetTrainer(ctx, trainerID)
}

// Approve moves a PENDING_APPROVAL trainer to APPROVED.
func (s *ApprovalService) Approve(ctx context.Context, admin *sessions.Session, trainerID uint) error {
	if _, err := s.check(ctx, admin, trainerID, statemachine.IntentApprove); err != nil {
		return err
	}
	if err := s.deps.Store.ApproveTrainer(ctx, trainerID); err != nil {
		return err
	}
	s.done(ctx, admin, trainerID, statemachine.IntentApprove, events.TrainerApproved)
	return nil
}

// Reject removes the trainer and its user. Allowed from either status.
func (s *ApprovalService) Reject(ctx context.Context, admin *sessions.Session, trainerID uint) error {
	if _, err := s.check(ctx, admin, trainerID, statemachine.IntentReject); err != nil {
		return err
	}
	if err := s.deps.Store.RejectTrainer(ctx, trainerID); err != nil {
		return err
	}
	s.deps.Sessions.RevokeUser(trainerID)
	s.done(ctx, admin, trainerID, statemachine.IntentReject, events.TrainerRejected)
	return nil
}

// Delete is the admin-panel spelling of Reject.
func (s *ApprovalService) Delete(ctx context.Context, admin *sessions.Session, trainerID uint) error {
	if _, err := s.check(ctx, admin, trainerID, statemachine.IntentDelete); err != nil {
		return err
	}
	if err := s.deps.Store.DeleteTrainer(ctx, trainerID); err != nil {
		return err
	}
	s.deps.Sessions.RevokeUser(trainerID)
	s.done(ctx, admin, trainerID, statemachine.IntentDelete, events.TrainerDeleted)
	return nil
}

// check validates the transition against the trainer's current status.
func (s *ApprovalService) check(ctx context.Context, admin *sessions.Session, trainerID uint, intent statemachine.Intent) (models.TrainerStatus, error) {
	trainer, err := s.deps.Store.GetTrainer(ctx, trainerID)
	if err != nil {
		return "", err
	}
	return statemachine.NextTrainerStatus(trainer.Status, intent, admin.User.Role)
}

func (s *ApprovalService) done(ctx context.Context, admin *sessions.Session, trainerID uint, intent statemachine.Intent, t events.Type) {
	s.deps.Metrics.TrainerTransition(string(intent))
	logger.FromContext(ctx).Info("trainer transition", "intent", intent, "trainer_id", trainerID, "admin_id", admin.User.ID)
	publish(ctx, s.deps.Events, events.New(t, admin.User.ID, trainerID, nil))
}
