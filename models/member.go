package models

import "time"

// NoPlanName is rendered in admin listings for members without a plan.
const NoPlanName = "None"

// Member is the enrollment record of a Member user. MemberID is the owning
// user's id, never an independent identity.
type Member struct {
	MemberID  uint      `json:"member_id" gorm:"primaryKey;autoIncrement:false"`
	PlanID    uint      `json:"plan_id"`    // 0 = unset
	TrainerID uint      `json:"trainer_id"` // 0 = unset
	TimeSlot  string    `json:"time_slot"`  // "" = unset
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// MemberDetail is the admin projection of Members join Users left join Plans.
type MemberDetail struct {
	MemberID uint   `json:"member_id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	PlanName string `json:"plan_name"`
	Status   string `json:"status"`
}
