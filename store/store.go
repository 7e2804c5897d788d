package store

import (
	"context"

	"gym-management-api/models"
)

// Store is the record-store contract the flows depend on. Every method
// returns *apperrors.AppError values: NotFound for lookup misses,
// DuplicateEmail for registration conflicts and PersistenceFailure for
// anything the database refuses.
type Store interface {
	CreateUser(ctx context.Context, user *models.User) error
	// RegisterMember creates the user and its member row in one transaction.
	RegisterMember(ctx context.Context, user *models.User) error
	// RegisterTrainer creates the user and a PENDING_APPROVAL trainer row in one transaction.
	RegisterTrainer(ctx context.Context, user *models.User, specialization string) error
	GetUser(ctx context.Context, id uint) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	VerifyUser(ctx context.Context, email string) error
	// Login returns NotFound for an unknown email and WrongPassword on mismatch.
	Login(ctx context.Context, email, password string) (*models.User, error)

	GetMember(ctx context.Context, userID uint) (*models.Member, error)
	// CreateMember is a no-op when the member row already exists.
	CreateMember(ctx context.Context, userID uint) error
	UpdateMemberPlan(ctx context.Context, memberID, planID uint, timeSlot string) error
	AssignTrainer(ctx context.Context, memberID, trainerID uint) error

	CreateTrainer(ctx context.Context, userID uint, specialization string) error
	GetTrainer(ctx context.Context, trainerID uint) (*models.Trainer, error)

	GetPlan(ctx context.Context, planID uint) (*models.Plan, error)
	ListPlans(ctx context.Context) ([]models.Plan, error)
	ListApprovedTrainers(ctx context.Context) ([]models.Trainer, error)

	ListPendingTrainers(ctx context.Context) ([]models.TrainerDetail, error)
	ApproveTrainer(ctx context.Context, trainerID uint) error
	// RejectTrainer removes the trainer and its user atomically.
	RejectTrainer(ctx context.Context, trainerID uint) error
	ListAllMembers(ctx context.Context) ([]models.MemberDetail, error)
	ListAllTrainers(ctx context.Context) ([]models.TrainerDetail, error)
	// DeleteMember removes the member and its user atomically.
	DeleteMember(ctx context.Context, memberID uint) error
	DeleteTrainer(ctx context.Context, trainerID uint) error
}
