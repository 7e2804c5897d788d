package services

import (
	"context"

	"gym-management-api/apperrors"
	"gym-management-api/events"
	"gym-management-api/logger"
	"gym-management-api/models"
	"gym-management-api/sessions"
)

// MembershipService is the admin view over members.
type MembershipService struct {
	deps Deps
}

func (s *MembershipService) ListMembers(ctx context.Context) ([]models.MemberDetail, error) {
	return s.deps.Store.ListAllMembers(ctx)
}

// DeleteMember removes the member and its user in one transaction.
func (s *MembershipService) DeleteMember(ctx context.Context, admin *sessions.Session, memberID uint) error {
	if admin.User.Role != models.RoleAdmin {
		return apperrors.Forbidden("only admins can delete members")
	}
	if err := s.deps.Store.DeleteMember(ctx, memberID); err != nil {
		return err
	}
	s.deps.Sessions.RevokeUser(memberID)

	logger.FromContext(ctx).Info("member deleted", "member_id", memberID, "admin_id", admin.User.ID)
	publish(ctx, s.deps.Events, events.New(events.MemberDeleted, admin.User.ID, memberID, nil))
	return nil
}
