package statemachine

import (
	"testing"

	"gym-management-api/apperrors"
	"gym-management-api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveOnboardingState(t *testing.T) {
	cases := []struct {
		name   string
		member models.Member
		want   models.OnboardingState
	}{
		{"fresh member", models.Member{MemberID: 2}, models.StateNeedsPlan},
		{"slot without plan", models.Member{MemberID: 2, TimeSlot: "Evening"}, models.StateNeedsPlan},
		{"plan only", models.Member{MemberID: 2, PlanID: 2}, models.StateNeedsTimeSlot},
		{"plan and slot", models.Member{MemberID: 2, PlanID: 2, TimeSlot: "Evening"}, models.StateNeedsTrainer},
		{"trainer without slot", models.Member{MemberID: 2, PlanID: 2, TrainerID: 5}, models.StateNeedsTimeSlot},
		{"all set", models.Member{MemberID: 2, PlanID: 2, TimeSlot: "Evening", TrainerID: 5}, models.StateComplete},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			first := DeriveOnboardingState(tc.member)
			assert.Equal(t, tc.want, first)
			assert.Equal(t, first, DeriveOnboardingState(tc.member), "derivation must be stable")
		})
	}
}

func TestNextOnboardingStateFollowsStrictOrder(t *testing.T) {
	state := models.StateNeedsPlan
	for _, intent := range []Intent{IntentSelectPlan, IntentSelectTimeSlot, IntentSelectTrainer} {
		next, err := NextOnboardingState(state, intent)
		require.NoError(t, err, "intent %s from %s", intent, state)
		state = next
	}
	assert.Equal(t, models.StateComplete, state)
}

func TestNextOnboardingStateRejectsSkips(t *testing.T) {
	_, err := NextOnboardingState(models.StateNeedsPlan, IntentSelectTimeSlot)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeInvalidTransition))

	_, err = NextOnboardingState(models.StateNeedsPlan, IntentSelectTrainer)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeInvalidTransition))

	_, err = NextOnboardingState(models.StateNeedsTrainer, IntentSelectPlan)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeInvalidTransition))

	_, err = NextOnboardingState(models.StateComplete, IntentSelectTrainer)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "none (terminal state)")
}

func TestPlanCanBeReselectedBeforeSlotCommit(t *testing.T) {
	next, err := NextOnboardingState(models.StateNeedsTimeSlot, IntentSelectPlan)
	require.NoError(t, err)
	assert.Equal(t, models.StateNeedsTimeSlot, next)
}

func TestAllowedIntents(t *testing.T) {
	assert.Equal(t, []Intent{IntentSelectPlan}, AllowedIntents(models.StateNeedsPlan))
	assert.Equal(t, []Intent{IntentSelectPlan, IntentSelectTimeSlot}, AllowedIntents(models.StateNeedsTimeSlot))
	assert.Equal(t, []Intent{IntentSelectTrainer}, AllowedIntents(models.StateNeedsTrainer))
	assert.Empty(t, AllowedIntents(models.StateComplete))
}
