package services

import (
	"context"

	"gym-management-api/apperrors"
	"gym-management-api/events"
	"gym-management-api/logger"
	"gym-management-api/models"
	"gym-management-api/sessions"
	"gym-management-api/statemachine"
)

// OnboardingView is what the presentation layer renders for the current step.
type OnboardingView struct {
	State          models.OnboardingState `json:"state"`
	AllowedActions []statemachine.Intent  `json:"allowed_actions"`
	Plans          []models.Plan          `json:"plans,omitempty"`
	PendingPlan    *models.Plan           `json:"pending_plan,omitempty"`
	TimeSlots      []models.TimeSlot      `json:"time_slots,omitempty"`
	Trainers       []models.Trainer       `json:"trainers,omitempty"`
	Message        string                 `json:"message,omitempty"`
	Dashboard      *Dashboard             `json:"dashboard,omitempty"`
}

// Dashboard is the read-only summary of a completed onboarding.
type Dashboard struct {
	PlanID    uint                `json:"plan_id"`
	Plan      *models.Plan        `json:"plan,omitempty"`
	TimeSlot  string              `json:"time_slot"`
	TrainerID uint                `json:"trainer_id"`
	Workout   []models.WorkoutDay `json:"workout"`
	Actions   []DashboardAction   `json:"actions"`
}

type DashboardAction struct {
	Name        string `json:"name"`
	Implemented bool   `json:"implemented"`
}

const (
	msgNoPlans    = "No plans available"
	msgNoTrainers = "No trainers available"
)

type OnboardingService struct {
	deps Deps
}

// Plans lists the catalog.
func (s *OnboardingService) Plans(ctx context.Context) ([]models.Plan, error) {
	return s.deps.Store.ListPlans(ctx)
}

// State returns the effective onboarding state of the session's member.
func (s *OnboardingService) State(ctx context.Context, sess *sessions.Session) (models.OnboardingState, error) {
	member, err := s.deps.Store.GetMember(ctx, sess.User.ID)
	if err != nil {
		return "", err
	}
	return effectiveState(*member, sess), nil
}

// effectiveState advances NEEDS_PLAN to NEEDS_TIME_SLOT while the session
// holds a plan that is not committed yet.
func effectiveState(member models.Member, sess *sessions.Session) models.OnboardingState {
	state := statemachine.DeriveOnboardingState(member)
	if state == models.StateNeedsPlan {
		if _, ok := sess.PendingPlan(); ok {
			return models.StateNeedsTimeSlot
		}
	}
	return state
}

// View builds the view model for the step the member is on.
func (s *OnboardingService) View(ctx context.Context, sess *sessions.Session) (*OnboardingView, error) {
	member, err := s.deps.Store.GetMember(ctx, sess.User.ID)
	if err != nil {
		return nil, err
	}
	state := effectiveState(*member, sess)
	view := &OnboardingView{State: state, AllowedActions: statemachine.AllowedIntents(state)}

	switch state {
	case models.StateNeedsPlan:
		plans, err := s.deps.Store.ListPlans(ctx)
		if err != nil {
			return nil, err
		}
		if len(plans) == 0 {
			view.AllowedActions = nil
			view.Message = msgNoPlans
		}
		view.Plans = plans

	case models.StateNeedsTimeSlot:
		plans, err := s.deps.Store.ListPlans(ctx)
		if err != nil {
			return nil, err
		}
		view.Plans = plans
		if p, ok := sess.PendingPlan(); ok {
			view.PendingPlan = &p
		}
		view.TimeSlots = models.TimeSlots

	case models.StateNeedsTrainer:
		trainers, err := s.deps.Store.ListApprovedTrainers(ctx)
		if err != nil {
			return nil, err
		}
		if len(trainers) == 0 {
			view.AllowedActions = nil
			view.Message = msgNoTrainers
		}
		view.Trainers = trainers

	case models.StateComplete:
		dash, err := s.dashboard(ctx, *member)
		if err != nil {
			return nil, err
		}
		view.Dashboard = dash
	}
	return view, nil
}

// Dashboard is only reachable once onboarding is complete.
func (s *OnboardingService) Dashboard(ctx context.Context, sess *sessions.Session) (*Dashboard, error) {
	member, err := s.deps.Store.GetMember(ctx, sess.User.ID)
	if err != nil {
		return nil, err
	}
	if state := statemachine.DeriveOnboardingState(*member); state != models.StateComplete {
		return nil, apperrors.InvalidTransition("onboarding", "Onboarding is not complete, current step is "+string(state))
	}
	return s.dashboard(ctx, *member)
}

func (s *OnboardingService) dashboard(ctx context.Context, member models.Member) (*Dashboard, error) {
	dash := &Dashboard{
		PlanID:    member.PlanID,
		TimeSlot:  member.TimeSlot,
		TrainerID: member.TrainerID,
		Workout:   models.WeeklyWorkout,
		Actions:   []DashboardAction{{Name: "checkIn", Implemented: false}},
	}
	plan, err := s.deps.Store.GetPlan(ctx, member.PlanID)
	switch {
	case err == nil:
		dash.Plan = plan
	case !apperrors.HasCode(err, apperrors.CodeNotFound):
		return nil, err
	}
	return dash, nil
}

// SelectPlan holds the chosen plan in the session. Nothing is persisted
// until a time slot is picked.
func (s *OnboardingService) SelectPlan(ctx context.Context, sess *sessions.Session, planID uint) (*OnboardingView, error) {
	from, err := s.State(ctx, sess)
	if err != nil {
		return nil, err
	}
	to, err := statemachine.NextOnboardingState(from, statemachine.IntentSelectPlan)
	if err != nil {
		return nil, err
	}
	plan, err := s.deps.Store.GetPlan(ctx, planID)
	if err != nil {
		return nil, err
	}

	sess.SetPendingPlan(*plan)
	s.deps.Metrics.OnboardingTransition(string(statemachine.IntentSelectPlan), string(to))
	logger.FromContext(ctx).Debug("plan selected", "plan_id", plan.PlanID)
	return s.View(ctx, sess)
}

// SelectTimeSlot commits the plan and the slot together. On failure the
// pending plan is kept and the member stays on NEEDS_TIME_SLOT.
func (s *OnboardingService) SelectTimeSlot(ctx context.Context, sess *sessions.Session, slot string) (*OnboardingView, error) {
	member, err := s.deps.Store.GetMember(ctx, sess.User.ID)
	if err != nil {
		return nil, err
	}
	to, err := statemachine.NextOnboardingState(effectiveState(*member, sess), statemachine.IntentSelectTimeSlot)
	if err != nil {
		return nil, err
	}
	if !models.IsTimeSlot(slot) {
		return nil, apperrors.Validation("onboarding", "Unknown time slot "+slot)
	}

	planID := member.PlanID
	if p, ok := sess.PendingPlan(); ok {
		planID = p.PlanID
	}
	if err := s.deps.Store.UpdateMemberPlan(ctx, member.MemberID, planID, slot); err != nil {
		return nil, err
	}
	sess.ClearPendingPlan()

	s.deps.Metrics.OnboardingTransition(string(statemachine.IntentSelectTimeSlot), string(to))
	logger.FromContext(ctx).Info("plan and time slot committed", "plan_id", planID, "time_slot", slot)
	publish(ctx, s.deps.Events, events.New(events.TimeSlotCommitted, member.MemberID, member.MemberID,
		map[string]any{"plan_id": planID, "time_slot": slot}))
	return s.View(ctx, sess)
}

// SelectTrainer assigns an APPROVED trainer and completes onboarding.
func (s *OnboardingService) SelectTrainer(ctx context.Context, sess *sessions.Session, trainerID uint) (*OnboardingView, error) {
	member, err := s.deps.Store.GetMember(ctx, sess.User.ID)
	if err != nil {
		return nil, err
	}
	to, err := statemachine.NextOnboardingState(effectiveState(*member, sess), statemachine.IntentSelectTrainer)
	if err != nil {
		return nil, err
	}

	trainers, err := s.deps.Store.ListApprovedTrainers(ctx)
	if err != nil {
		return nil, err
	}
	if !containsTrainer(trainers, trainerID) {
		return nil, apperrors.InvalidTransition("onboarding", "Trainer is not available for selection")
	}
	if err := s.deps.Store.AssignTrainer(ctx, member.MemberID, trainerID); err != nil {
		return nil, err
	}

	s.deps.Metrics.OnboardingTransition(string(statemachine.IntentSelectTrainer), string(to))
	logger.FromContext(ctx).Info("trainer assigned", "trainer_id", trainerID)
	publish(ctx, s.deps.Events, events.New(events.TrainerAssigned, member.MemberID, member.MemberID,
		map[string]any{"trainer_id": trainerID}))
	return s.View(ctx, sess)
}

// CheckIn is listed on the dashboard but does nothing yet.
func (s *OnboardingService) CheckIn(ctx context.Context, sess *sessions.Session) error {
	return apperrors.NotImplemented("attendance", "Check-in is not implemented yet")
}

func containsTrainer(trainers []models.Trainer, id uint) bool {
	for _, t := range trainers {
		if t.TrainerID == id {
			return true
		}
	}
	return false
}
