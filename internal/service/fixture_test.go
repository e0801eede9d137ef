package service

import (
	"alcyxob/coach-app/internal/domain"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

// fixedNow is "today" for every service under test.
var fixedNow = time.Date(2024, 5, 1, 14, 30, 0, 0, time.UTC)

type fixture struct {
	store    *store
	views    *memoryCache
	files    *fakeStorage
	auth     AuthService
	link     LinkService
	coach    CoachService
	client   ClientService
	messages MessageService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	s := newStore()
	f := &fixture{store: s, views: newMemoryCache(), files: &fakeStorage{}}

	users, coaches, clients := fakeUserRepo{s}, fakeCoachRepo{s}, fakeClientRepo{s}
	f.auth = NewAuthService(users, coaches, clients, testSecret, time.Hour)
	f.link = NewLinkService(users, coaches, clients, f.views)

	coachSvc := NewCoachService(users, coaches, clients, fakeWorkoutRepo{s}, fakeAssignmentRepo{s},
		fakeMealPlanRepo{s}, fakeProgressRepo{s}, fakeMessageRepo{s}, f.views, time.Minute)
	coachSvc.(*coachService).now = func() time.Time { return fixedNow }
	f.coach = coachSvc

	clientSvc := NewClientService(users, coaches, clients, fakeWorkoutRepo{s}, fakeAssignmentRepo{s},
		fakeMealPlanRepo{s}, fakeMealAssignmentRepo{s}, fakeProgressRepo{s}, f.files, f.views)
	clientSvc.(*clientService).now = func() time.Time { return fixedNow }
	f.client = clientSvc

	f.messages = NewMessageService(fakeMessageRepo{s}, users, coaches, clients, f.views)
	return f
}

func (f *fixture) signup(t *testing.T, name, email string, role domain.Role) *AuthResult {
	t.Helper()
	res, err := f.auth.Signup(context.Background(), name, email, "secret1", role)
	require.NoError(t, err)
	return res
}

// pair signs up a coach and a client and links them.
func (f *fixture) pair(t *testing.T) (coach, client *AuthResult) {
	t.Helper()
	coach = f.signup(t, "Casey Coach", "coach@x.com", domain.RoleCoach)
	client = f.signup(t, "Alex Doe", "alex@x.com", domain.RoleClient)
	_, err := f.link.LinkByIdentifier(context.Background(), actorOf(coach), client.User.Username)
	require.NoError(t, err)
	return coach, client
}

func (f *fixture) clientProfile(t *testing.T, res *AuthResult) *domain.ClientProfile {
	t.Helper()
	p, err := fakeClientRepo{f.store}.GetByUserID(context.Background(), res.User.ID)
	require.NoError(t, err)
	return p
}

func (f *fixture) coachProfile(t *testing.T, res *AuthResult) *domain.CoachProfile {
	t.Helper()
	p, err := fakeCoachRepo{f.store}.GetByUserID(context.Background(), res.User.ID)
	require.NoError(t, err)
	return p
}

func actorOf(res *AuthResult) domain.Actor {
	return domain.Actor{UserID: res.User.ID, Role: res.User.Role}
}
