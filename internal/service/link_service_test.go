package service

import (
	"context"
	"testing"

	"alcyxob/coach-app/internal/cache"
	"alcyxob/coach-app/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoachLinksClientByUsername(t *testing.T) {
	f := newFixture(t)
	coach := f.signup(t, "Casey Coach", "coach@x.com", domain.RoleCoach)
	client := f.signup(t, "Alex Doe", "alex@x.com", domain.RoleClient)

	res, err := f.link.LinkByIdentifier(context.Background(), actorOf(coach), "  alex_doe ")
	require.NoError(t, err)

	assert.Equal(t, "/dashboard/clients", res.RedirectTo)
	assert.Equal(t, client.User.ID, res.Client.ID)
	assert.Equal(t, coach.User.ID, res.Coach.ID)

	profile := f.clientProfile(t, client)
	require.True(t, profile.HasCoach())
	assert.Equal(t, f.coachProfile(t, coach).ID, *profile.CoachID)
	assert.Contains(t, f.views.invalidated, cache.RosterKey(coach.User.ID))
	assert.Contains(t, f.views.invalidated, cache.DashboardKey(coach.User.ID))
}

func TestCoachLinksClientByCode(t *testing.T) {
	f := newFixture(t)
	coach := f.signup(t, "Casey Coach", "coach@x.com", domain.RoleCoach)
	client := f.signup(t, "Alex Doe", "alex@x.com", domain.RoleClient)

	_, err := f.link.LinkByIdentifier(context.Background(), actorOf(coach), client.Code)
	require.NoError(t, err)
	assert.True(t, f.clientProfile(t, client).HasCoach())
}

func TestClientLinksCoachByCode(t *testing.T) {
	f := newFixture(t)
	coach := f.signup(t, "Casey Coach", "coach@x.com", domain.RoleCoach)
	client := f.signup(t, "Alex Doe", "alex@x.com", domain.RoleClient)

	res, err := f.link.LinkByIdentifier(context.Background(), actorOf(client), coach.Code)
	require.NoError(t, err)

	assert.Equal(t, "/dashboard", res.RedirectTo)
	assert.Equal(t, f.coachProfile(t, coach).ID, *f.clientProfile(t, client).CoachID)
	assert.Contains(t, f.views.invalidated, cache.RosterKey(coach.User.ID))
}

func TestLinkRejectsClientThatAlreadyHasCoach(t *testing.T) {
	f := newFixture(t)
	first, client := f.pair(t)
	second := f.signup(t, "Other Coach", "other@x.com", domain.RoleCoach)

	_, err := f.link.LinkByIdentifier(context.Background(), actorOf(second), client.User.Username)

	assert.ErrorIs(t, err, ErrAlreadyLinked)
	assert.ErrorIs(t, err, ErrConflict)
	assert.Equal(t, f.coachProfile(t, first).ID, *f.clientProfile(t, client).CoachID)
}

func TestLinkRejectsClientCallerWithCoach(t *testing.T) {
	f := newFixture(t)
	_, client := f.pair(t)
	other := f.signup(t, "Other Coach", "other@x.com", domain.RoleCoach)

	_, err := f.link.LinkByIdentifier(context.Background(), actorOf(client), other.Code)

	assert.ErrorIs(t, err, ErrCallerAlreadyLinked)
	assert.ErrorIs(t, err, ErrAlreadyLinked)
	assert.ErrorIs(t, err, ErrConflict)
}

func TestLinkRoleMismatch(t *testing.T) {
	f := newFixture(t)
	coach := f.signup(t, "Casey Coach", "coach@x.com", domain.RoleCoach)
	other := f.signup(t, "Other Coach", "other@x.com", domain.RoleCoach)
	client := f.signup(t, "Alex Doe", "alex@x.com", domain.RoleClient)
	peer := f.signup(t, "Sam Peer", "sam@x.com", domain.RoleClient)
	ctx := context.Background()

	_, err := f.link.LinkByIdentifier(ctx, actorOf(coach), other.User.Username)
	assert.ErrorIs(t, err, ErrTargetNotClient)
	assert.ErrorIs(t, err, ErrRoleMismatch)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = f.link.LinkByIdentifier(ctx, actorOf(client), peer.Code)
	assert.ErrorIs(t, err, ErrTargetNotCoach)
	assert.False(t, f.clientProfile(t, peer).HasCoach())
}

func TestLinkIdentifierErrors(t *testing.T) {
	f := newFixture(t)
	coach := f.signup(t, "Casey Coach", "coach@x.com", domain.RoleCoach)
	ctx := context.Background()

	_, err := f.link.LinkByIdentifier(ctx, actorOf(coach), " a ")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = f.link.LinkByIdentifier(ctx, actorOf(coach), "PG-A-ZZZZ")
	assert.ErrorIs(t, err, ErrNotFound)

	// matching is case-sensitive
	_, err = f.link.LinkByIdentifier(ctx, actorOf(coach), "CASEY_COACH")
	assert.ErrorIs(t, err, ErrIdentifierNotFound)
}
