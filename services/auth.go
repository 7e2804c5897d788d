package services

import (
	"context"
	"crypto/subtle"
	"strings"

	"gym-management-api/apperrors"
	"gym-management-api/events"
	"gym-management-api/logger"
	"gym-management-api/models"
	"gym-management-api/sessions"
	"gym-management-api/statemachine"

	"golang.org/x/crypto/bcrypt"
)

// Destination names the screen a login lands on.
type Destination string

const (
	DestOnboarding       Destination = "onboarding"
	DestMemberDashboard  Destination = "member_dashboard"
	DestAdminPanel       Destination = "admin_panel"
	DestTrainerDashboard Destination = "trainer_dashboard"
)

type RegisterInput struct {
	Name           string
	Email          string
	Password       string
	Role           models.UserRole
	Specialization string
}

type LoginResult struct {
	Session     *sessions.Session
	Destination Destination
}

type AuthService struct {
	deps Deps
}

// Register creates an unverified account. Members get their member row and
// trainers their PENDING_APPROVAL row in the same transaction as the user.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	if !in.Role.SelfRegistrable() {
		return nil, apperrors.Validation("auth", "Role must be Member or Trainer")
	}
	email := models.NormalizeEmail(in.Email)

	_, err := s.deps.Store.GetUserByEmail(ctx, email)
	switch {
	case err == nil:
		return nil, apperrors.DuplicateEmail(nil)
	case !apperrors.HasCode(err, apperrors.CodeNotFound):
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	user := &models.User{
		Name:         strings.TrimSpace(in.Name),
		Email:        email,
		PasswordHash: string(hash),
		Role:         in.Role,
	}

	switch in.Role {
	case models.RoleMember:
		err = s.deps.Store.RegisterMember(ctx, user)
	case models.RoleTrainer:
		specialization := strings.TrimSpace(in.Specialization)
		if specialization == "" {
			specialization = models.DefaultSpecialization
		}
		err = s.deps.Store.RegisterTrainer(ctx, user, specialization)
	}
	if err != nil {
		return nil, err
	}

	log := logger.FromContext(ctx)
	log.Info("account registered", "user_id", user.ID, "role", user.Role)
	s.deps.Metrics.Registration(string(user.Role))

	if err := s.deps.Mailer.SendVerificationCode(ctx, user.Email, user.Name, s.deps.VerificationCode); err != nil {
		log.Warn("failed to send verification code", "email", user.Email, "error", err)
	}
	publish(ctx, s.deps.Events, events.New(events.UserRegistered, 0, user.ID, map[string]any{"role": user.Role}))
	return user, nil
}

// Verify marks the account verified when code matches the shared code.
func (s *AuthService) Verify(ctx context.Context, email, code string) error {
	email = models.NormalizeEmail(email)
	user, err := s.deps.Store.GetUserByEmail(ctx, email)
	if err != nil {
		return err
	}
	if subtle.ConstantTimeCompare([]byte(code), []byte(s.deps.VerificationCode)) != 1 {
		return apperrors.Validation("auth", "Invalid code")
	}
	if err := s.deps.Store.VerifyUser(ctx, email); err != nil {
		return err
	}
	logger.FromContext(ctx).Info("account verified", "user_id", user.ID)
	publish(ctx, s.deps.Events, events.New(events.UserVerified, user.ID, user.ID, nil))
	return nil
}

// Login authenticates, opens a session and decides where the user lands.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := s.deps.Store.Login(ctx, models.NormalizeEmail(email), password)
	if err != nil {
		s.deps.Metrics.Login(loginOutcome(err))
		return nil, err
	}
	if !user.Verified {
		s.deps.Metrics.Login("unverified")
		return nil, apperrors.Unverified()
	}

	dest, err := s.destination(ctx, user)
	if err != nil {
		s.deps.Metrics.Login("error")
		return nil, err
	}

	sess := s.deps.Sessions.Create(*user)
	s.deps.Metrics.Login("success")
	logger.FromContext(ctx).Info("login", "user_id", user.ID, "role", user.Role, "destination", dest)
	return &LoginResult{Session: sess, Destination: dest}, nil
}

func (s *AuthService) destination(ctx context.Context, user *models.User) (Destination, error) {
	switch user.Role {
	case models.RoleAdmin:
		return DestAdminPanel, nil
	case models.RoleTrainer:
		return DestTrainerDashboard, nil
	case models.RoleMember:
		if err := s.deps.Store.CreateMember(ctx, user.ID); err != nil {
			return "", err
		}
		member, err := s.deps.Store.GetMember(ctx, user.ID)
		if err != nil {
			return "", err
		}
		if statemachine.DeriveOnboardingState(*member) == models.StateComplete {
			return DestMemberDashboard, nil
		}
		return DestOnboarding, nil
	default:
		return "", apperrors.Forbidden("unknown role " + string(user.Role))
	}
}

// Logout revokes the session; an uncommitted plan selection is lost with it.
func (s *AuthService) Logout(sess *sessions.Session) {
	s.deps.Sessions.Revoke(sess.ID)
}

// Profile re-reads the session user from the store.
func (s *AuthService) Profile(ctx context.Context, sess *sessions.Session) (*models.User, error) {
	return s.deps.Store.GetUser(ctx, sess.User.ID)
}

func loginOutcome(err error) string {
	switch {
	case apperrors.HasCode(err, apperrors.CodeNotFound):
		return "not_found"
	case apperrors.HasCode(err, apperrors.CodeWrongPassword):
		return "wrong_password"
	default:
		return "error"
	}
}
