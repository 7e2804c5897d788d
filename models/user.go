package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// UserRole defines allowed roles in the system
type UserRole string

const (
	RoleAdmin   UserRole = "Admin"
	RoleMember  UserRole = "Member"
	RoleTrainer UserRole = "Trainer"
)

// User is the identity record shared by every role.
type User struct {
	ID           uint      `json:"id" gorm:"column:user_id;primaryKey"`
	Name         string    `json:"name" gorm:"not null"`
	Email        string    `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash string    `json:"-" gorm:"not null"`
	Role         UserRole  `json:"role" gorm:"not null"`
	Verified     bool      `json:"verified" gorm:"not null;default:false"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// SelfRegistrable reports whether a role can be chosen at registration.
// Admin accounts only come from the seed.
func (r UserRole) SelfRegistrable() bool {
	return r == RoleMember || r == RoleTrainer
}

// NormalizeEmail is the canonical form emails are stored and looked up in.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// BeforeCreate stores the email in canonical form whatever the caller passed.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	u.Email = NormalizeEmail(u.Email)
	return nil
}
