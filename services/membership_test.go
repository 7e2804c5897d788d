package services

import (
	"context"
	"testing"

	"gym-management-api/apperrors"
	"gym-management-api/events"
	"gym-management-api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListMembersShowsPlanName(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	sess := memberSession(t, env)
	env.register(t, "Dave", "dave@x.com", models.RoleMember)

	_, err := env.svc.Onboarding.SelectPlan(ctx, sess, 1)
	require.NoError(t, err)
	_, err = env.svc.Onboarding.SelectTimeSlot(ctx, sess, "Morning")
	require.NoError(t, err)

	members, err := env.svc.Membership.ListMembers(ctx)
	require.NoError(t, err)
	require.Len(t, members, 2)
	assert.Equal(t, "Basic (Morning)", members[0].PlanName)
	assert.Equal(t, models.NoPlanName, members[1].PlanName)
}

func TestDeleteMember(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	sess := memberSession(t, env)

	require.NoError(t, env.svc.Membership.DeleteMember(ctx, env.admin(t), sess.User.ID))

	_, err := env.store.GetUserByEmail(ctx, "alice@x.com")
	assert.True(t, apperrors.HasCode(err, apperrors.CodeNotFound))
	_, ok := env.sessions.Get(sess.ID)
	assert.False(t, ok)
	assert.Contains(t, env.events.types(), events.MemberDeleted)

	err = env.svc.Membership.DeleteMember(ctx, env.admin(t), sess.User.ID)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeNotFound))
}

func TestDeleteMemberRequiresAdmin(t *testing.T) {
	env := newTestEnv(t)
	sess := memberSession(t, env)

	err := env.svc.Membership.DeleteMember(context.Background(), sess, sess.User.ID)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeForbidden))
}
