package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gym-management-api/apperrors"
	"gym-management-api/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStore implements Store on top of gorm. All statements are parameterised.
type GormStore struct {
	db *gorm.DB
}

var _ Store = (*GormStore)(nil)

func New(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// ── Users ───────────────────────────────────────────────────────────────────

func (s *GormStore) CreateUser(ctx context.Context, user *models.User) error {
	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		return translateWrite(err, "user")
	}
	return nil
}

func (s *GormStore) RegisterMember(ctx context.Context, user *models.User) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return translateWrite(err, "user")
		}
		member := models.Member{MemberID: user.ID}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&member).Error; err != nil {
			return apperrors.PersistenceFailure(err, "member")
		}
		return nil
	})
}

func (s *GormStore) RegisterTrainer(ctx context.Context, user *models.User, specialization string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return translateWrite(err, "user")
		}
		return createTrainer(tx, user.ID, specialization)
	})
}

func (s *GormStore) GetUser(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("user_id = ?", id).First(&user).Error; err != nil {
		return nil, translateRead(err, "user", "User not found")
	}
	return &user, nil
}

func (s *GormStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, translateRead(err, "user", "User not found")
	}
	return &user, nil
}

func (s *GormStore) VerifyUser(ctx context.Context, email string) error {
	res := s.db.WithContext(ctx).Model(&models.User{}).Where("email = ?", email).Update("verified", true)
	if res.Error != nil {
		return apperrors.PersistenceFailure(res.Error, "user")
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound("user", "User not found")
	}
	return nil
}

func (s *GormStore) Login(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, apperrors.WrongPassword()
	}
	return user, nil
}

// ── Members ─────────────────────────────────────────────────────────────────

func (s *GormStore) GetMember(ctx context.Context, userID uint) (*models.Member, error) {
	var member models.Member
	if err := s.db.WithContext(ctx).Where("member_id = ?", userID).First(&member).Error; err != nil {
		return nil, translateRead(err, "member", "Member not found")
	}
	return &member, nil
}

func (s *GormStore) CreateMember(ctx context.Context, userID uint) error {
	member := models.Member{MemberID: userID}
	if err := s.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&member).Error; err != nil {
		return apperrors.PersistenceFailure(err, "member")
	}
	return nil
}

// UpdateMemberPlan commits the plan and the time slot in a single statement.
func (s *GormStore) UpdateMemberPlan(ctx context.Context, memberID, planID uint, timeSlot string) error {
	res := s.db.WithContext(ctx).Model(&models.Member{}).
		Where("member_id = ?", memberID).
		Updates(map[string]interface{}{"plan_id": planID, "time_slot": timeSlot})
	return checkUpdate(res, "member", "Member not found")
}

func (s *GormStore) AssignTrainer(ctx context.Context, memberID, trainerID uint) error {
	res := s.db.WithContext(ctx).Model(&models.Member{}).
		Where("member_id = ?", memberID).
		Update("trainer_id", trainerID)
	return checkUpdate(res, "member", "Member not found")
}

// ── Trainers ────────────────────────────────────────────────────────────────

func (s *GormStore) CreateTrainer(ctx context.Context, userID uint, specialization string) error {
	return createTrainer(s.db.WithContext(ctx), userID, specialization)
}

func createTrainer(db *gorm.DB, userID uint, specialization string) error {
	trainer := models.Trainer{TrainerID: userID, Specialization: specialization}
	if err := db.Create(&trainer).Error; err != nil {
		return apperrors.PersistenceFailure(err, "trainer")
	}
	return nil
}

func (s *GormStore) GetTrainer(ctx context.Context, trainerID uint) (*models.Trainer, error) {
	var trainer models.Trainer
	if err := s.db.WithContext(ctx).Where("trainer_id = ?", trainerID).First(&trainer).Error; err != nil {
		return nil, translateRead(err, "trainer", "Trainer not found")
	}
	return &trainer, nil
}

func (s *GormStore) ListApprovedTrainers(ctx context.Context) ([]models.Trainer, error) {
	var trainers []models.Trainer
	err := s.db.WithContext(ctx).
		Where("status = ?", models.TrainerApproved).
		Order("trainer_id").
		Find(&trainers).Error
	if err != nil {
		return nil, apperrors.PersistenceFailure(err, "trainer")
	}
	return trainers, nil
}

func (s *GormStore) ListPendingTrainers(ctx context.Context) ([]models.TrainerDetail, error) {
	return s.trainerDetails(ctx, func(q *gorm.DB) *gorm.DB {
		return q.Where("t.status = ?", models.TrainerPendingApproval)
	})
}

func (s *GormStore) ListAllTrainers(ctx context.Context) ([]models.TrainerDetail, error) {
	return s.trainerDetails(ctx, func(q *gorm.DB) *gorm.DB { return q })
}

func (s *GormStore) trainerDetails(ctx context.Context, scope func(*gorm.DB) *gorm.DB) ([]models.TrainerDetail, error) {
	var out []models.TrainerDetail
	err := s.db.WithContext(ctx).
		Table("trainers AS t").
		Select("t.trainer_id, u.name, u.email, t.specialization, t.status").
		Joins("JOIN users u ON u.user_id = t.trainer_id").
		Scopes(scope).
		Order("t.trainer_id").
		Scan(&out).Error
	if err != nil {
		return nil, apperrors.PersistenceFailure(err, "trainer")
	}
	return out, nil
}

// ApproveTrainer flips PENDING_APPROVAL to APPROVED. The status condition
// keeps the update one-directional even when two admins race.
func (s *GormStore) ApproveTrainer(ctx context.Context, trainerID uint) error {
	res := s.db.WithContext(ctx).Model(&models.Trainer{}).
		Where("trainer_id = ? AND status = ?", trainerID, models.TrainerPendingApproval).
		Update("status", models.TrainerApproved)
	if res.Error != nil {
		return apperrors.PersistenceFailure(res.Error, "trainer")
	}
	if res.RowsAffected == 0 {
		if _, err := s.GetTrainer(ctx, trainerID); err != nil {
			return err
		}
		return apperrors.InvalidTransition("trainer", "Trainer is not pending approval")
	}
	return nil
}

func (s *GormStore) RejectTrainer(ctx context.Context, trainerID uint) error {
	return s.deleteWithUser(ctx, &models.Trainer{}, "trainer_id = ?", trainerID, models.RoleTrainer, "trainer")
}

func (s *GormStore) DeleteTrainer(ctx context.Context, trainerID uint) error {
	return s.RejectTrainer(ctx, trainerID)
}

// ── Members (admin) ─────────────────────────────────────────────────────────

func (s *GormStore) ListAllMembers(ctx context.Context) ([]models.MemberDetail, error) {
	var out []models.MemberDetail
	err := s.db.WithContext(ctx).
		Table("members AS m").
		Select("m.member_id, u.name, u.email, COALESCE(p.name, ?) AS plan_name, COALESCE(m.status, '') AS status", models.NoPlanName).
		Joins("JOIN users u ON u.user_id = m.member_id").
		Joins("LEFT JOIN plans p ON p.plan_id = m.plan_id").
		Order("m.member_id").
		Scan(&out).Error
	if err != nil {
		return nil, apperrors.PersistenceFailure(err, "member")
	}
	return out, nil
}

func (s *GormStore) DeleteMember(ctx context.Context, memberID uint) error {
	return s.deleteWithUser(ctx, &models.Member{}, "member_id = ?", memberID, models.RoleMember, "member")
}

// deleteWithUser removes a role row and the owning user in one transaction.
// A missing role row aborts before the user is touched. A role row without
// its owning user rolls the whole delete back.
func (s *GormStore) deleteWithUser(ctx context.Context, roleRow interface{}, cond string, id uint, role models.UserRole, domain string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where(cond, id).Delete(roleRow)
		if res.Error != nil {
			return apperrors.PersistenceFailure(res.Error, domain)
		}
		if res.RowsAffected == 0 {
			return apperrors.NotFound(domain, strings.ToUpper(domain[:1])+domain[1:]+" not found")
		}
		ures := tx.Where("user_id = ? AND role = ?", id, role).Delete(&models.User{})
		if ures.Error != nil {
			return apperrors.PersistenceFailure(ures.Error, domain)
		}
		if ures.RowsAffected == 0 {
			return apperrors.PersistenceFailure(fmt.Errorf("user %d with role %s missing", id, role), domain)
		}
		return nil
	})
}

// ── Plans ───────────────────────────────────────────────────────────────────

func (s *GormStore) GetPlan(ctx context.Context, planID uint) (*models.Plan, error) {
	var plan models.Plan
	if err := s.db.WithContext(ctx).Where("plan_id = ?", planID).First(&plan).Error; err != nil {
		return nil, translateRead(err, "plan", "Plan not found")
	}
	return &plan, nil
}

func (s *GormStore) ListPlans(ctx context.Context) ([]models.Plan, error) {
	var plans []models.Plan
	if err := s.db.WithContext(ctx).Order("plan_id").Find(&plans).Error; err != nil {
		return nil, apperrors.PersistenceFailure(err, "plan")
	}
	return plans, nil
}

// ── Error translation ───────────────────────────────────────────────────────

func translateRead(err error, domain, notFound string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.NotFound(domain, notFound)
	}
	return apperrors.PersistenceFailure(err, domain)
}

func translateWrite(err error, domain string) error {
	if isUniqueViolation(err) {
		return apperrors.DuplicateEmail(err)
	}
	return apperrors.PersistenceFailure(err, domain)
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") || strings.Contains(msg, "duplicate key value")
}

func checkUpdate(res *gorm.DB, domain, notFound string) error {
	if res.Error != nil {
		return apperrors.PersistenceFailure(res.Error, domain)
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound(domain, notFound)
	}
	return nil
}
