package models

// Plan is a membership tier from the static catalog.
type Plan struct {
	PlanID   uint    `json:"plan_id" gorm:"primaryKey"`
	Name     string  `json:"name" gorm:"not null"`
	Price    float64 `json:"price"`
	TimeSlot string  `json:"time_slot"`
}

// DefaultPlans is the seed catalog.
func DefaultPlans() []Plan {
	return []Plan{
		{PlanID: 1, Name: "Basic (Morning)", Price: 30, TimeSlot: SlotMorning},
		{PlanID: 2, Name: "Standard (Evening)", Price: 50, TimeSlot: SlotEvening},
		{PlanID: 3, Name: "Premium (Anytime)", Price: 80, TimeSlot: SlotFullDay},
	}
}

// Attendance rows are migrated with the schema; check-in does not write them yet.
type Attendance struct {
	AttendanceID uint   `json:"attendance_id" gorm:"primaryKey"`
	MemberID     uint   `json:"member_id" gorm:"index"`
	Date         string `json:"date"`
	Status       string `json:"status"`
}
