package models

// OnboardingState is derived from the stored Member fields, never persisted.
type OnboardingState string

const (
	StateNeedsPlan     OnboardingState = "NEEDS_PLAN"
	StateNeedsTimeSlot OnboardingState = "NEEDS_TIME_SLOT"
	StateNeedsTrainer  OnboardingState = "NEEDS_TRAINER"
	StateComplete      OnboardingState = "COMPLETE"
)

const (
	SlotMorning = "Morning"
	SlotEvening = "Evening"
	SlotFullDay = "Full Day"
)

type TimeSlot struct {
	Label string `json:"label"`
	Hours string `json:"hours"`
}

// TimeSlots lists the slots a member can pick.
var TimeSlots = []TimeSlot{
	{Label: SlotMorning, Hours: "6-10"},
	{Label: SlotEvening, Hours: "5-9"},
	{Label: SlotFullDay, Hours: "all day"},
}

func IsTimeSlot(label string) bool {
	for _, s := range TimeSlots {
		if s.Label == label {
			return true
		}
	}
	return false
}

type WorkoutDay struct {
	Day   string `json:"day"`
	Focus string `json:"focus"`
}

// WeeklyWorkout is the static schedule shown on the member dashboard.
var WeeklyWorkout = []WorkoutDay{
	{Day: "Mon", Focus: "Chest"},
	{Day: "Tue", Focus: "Back"},
	{Day: "Wed", Focus: "Legs"},
}
