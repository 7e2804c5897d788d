package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// TrainerStatus represents the approval lifecycle of a trainer application
type TrainerStatus string

const (
	TrainerPendingApproval TrainerStatus = "PENDING_APPROVAL"
	TrainerApproved        TrainerStatus = "APPROVED"
	// TrainerRejectedAndDeleted is terminal and never stored: reaching it
	// removes the trainer and its user.
	TrainerRejectedAndDeleted TrainerStatus = "REJECTED_AND_DELETED"
)

// DefaultSpecialization is used when a trainer registers without one.
const DefaultSpecialization = "General Fitness"

type Trainer struct {
	TrainerID      uint          `json:"trainer_id" gorm:"primaryKey;autoIncrement:false"`
	Specialization string        `json:"specialization"`
	Status         TrainerStatus `json:"status" gorm:"not null;default:'PENDING_APPROVAL'"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`
}

// BeforeCreate fills in the registration defaults for an application.
func (t *Trainer) BeforeCreate(tx *gorm.DB) error {
	t.Specialization = strings.TrimSpace(t.Specialization)
	if t.Specialization == "" {
		t.Specialization = DefaultSpecialization
	}
	if t.Status == "" {
		t.Status = TrainerPendingApproval
	}
	return nil
}

// TrainerDetail joins the trainer with its user identity.
type TrainerDetail struct {
	TrainerID      uint          `json:"trainer_id"`
	Name           string        `json:"name"`
	Email          string        `json:"email"`
	Specialization string        `json:"specialization"`
	Status         TrainerStatus `json:"status"`
}
