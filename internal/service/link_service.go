package service

import (
	"alcyxob/coach-app/internal/cache"
	"alcyxob/coach-app/internal/domain"
	"alcyxob/coach-app/internal/repository"
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const minIdentifierLength = 2

// Where the caller is sent after a successful link.
const (
	coachLinkRedirect  = "/dashboard/clients"
	clientLinkRedirect = "/dashboard"
)

// LinkResult describes a freshly established coach-client relation.
type LinkResult struct {
	Coach      *domain.User
	Client     *domain.User
	Profile    *domain.ClientProfile
	RedirectTo string
}

type LinkService interface {
	// LinkByIdentifier links the caller to the user named by identifier, a
	// username or a profile code. Coaches add clients, clients add a coach.
	LinkByIdentifier(ctx context.Context, actor domain.Actor, identifier string) (*LinkResult, error)
}

type linkService struct {
	userRepo   repository.UserRepository
	coachRepo  repository.CoachProfileRepository
	clientRepo repository.ClientProfileRepository
	views      cache.ViewCache
}

func NewLinkService(
	userRepo repository.UserRepository,
	coachRepo repository.CoachProfileRepository,
	clientRepo repository.ClientProfileRepository,
	views cache.ViewCache,
) LinkService {
	return &linkService{
		userRepo:   userRepo,
		coachRepo:  coachRepo,
		clientRepo: clientRepo,
		views:      views,
	}
}

func (s *linkService) LinkByIdentifier(ctx context.Context, actor domain.Actor, identifier string) (*LinkResult, error) {
	identifier = strings.TrimSpace(identifier)
	if len([]rune(identifier)) < minIdentifierLength {
		return nil, validationError("please enter a username or code")
	}

	caller, err := s.userRepo.GetByID(ctx, actor.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, dbError("load caller", err)
	}

	target, err := s.resolve(ctx, identifier)
	if err != nil {
		return nil, err
	}

	var result *LinkResult
	switch actor.Role {
	case domain.RoleCoach:
		result, err = s.coachAddsClient(ctx, actor, caller, target)
	case domain.RoleClient:
		result, err = s.clientAddsCoach(ctx, actor, caller, target)
	default:
		return nil, ErrForbiddenRole
	}
	if err != nil {
		return nil, err
	}

	invalidateCoachViews(ctx, s.views, result.Coach.ID)
	result.Coach.PasswordHash = ""
	result.Client.PasswordHash = ""
	return result, nil
}

// resolve finds the user behind identifier: username first, then coach
// code, then client code. Matching is exact and case-sensitive.
func (s *linkService) resolve(ctx context.Context, identifier string) (*domain.User, error) {
	user, err := s.userRepo.GetByUsername(ctx, identifier)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, dbError("look up username", err)
	}

	if coach, err := s.coachRepo.GetByCode(ctx, identifier); err == nil {
		return s.userOfProfile(ctx, coach.UserID)
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, dbError("look up coach code", err)
	}

	if client, err := s.clientRepo.GetByCode(ctx, identifier); err == nil {
		return s.userOfProfile(ctx, client.UserID)
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, dbError("look up client code", err)
	}

	return nil, ErrIdentifierNotFound
}

func (s *linkService) userOfProfile(ctx context.Context, userID primitive.ObjectID) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// Orphaned profile
			return nil, ErrIdentifierNotFound
		}
		return nil, dbError("load user", err)
	}
	return user, nil
}

func (s *linkService) coachAddsClient(ctx context.Context, actor domain.Actor, coachUser, target *domain.User) (*LinkResult, error) {
	if !target.IsClient() {
		return nil, ErrTargetNotClient
	}
	coach, err := coachProfileOf(ctx, s.coachRepo, actor)
	if err != nil {
		return nil, err
	}
	client, err := s.clientRepo.GetByUserID(ctx, target.ID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, dbError("load client profile", err)
	}
	if client.HasCoach() {
		return nil, ErrAlreadyLinked
	}

	if err := s.setCoach(ctx, client, coach, ErrAlreadyLinked); err != nil {
		return nil, err
	}
	return &LinkResult{Coach: coachUser, Client: target, Profile: client, RedirectTo: coachLinkRedirect}, nil
}

func (s *linkService) clientAddsCoach(ctx context.Context, actor domain.Actor, clientUser, target *domain.User) (*LinkResult, error) {
	if !target.IsCoach() {
		return nil, ErrTargetNotCoach
	}
	client, err := clientProfileOf(ctx, s.clientRepo, actor)
	if err != nil {
		return nil, err
	}
	if client.HasCoach() {
		return nil, ErrCallerAlreadyLinked
	}
	coach, err := s.coachRepo.GetByUserID(ctx, target.ID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, newError(ErrNotFound, "target user is not a valid coach")
		}
		return nil, dbError("load coach profile", err)
	}

	if err := s.setCoach(ctx, client, coach, ErrCallerAlreadyLinked); err != nil {
		return nil, err
	}
	return &LinkResult{Coach: target, Client: clientUser, Profile: client, RedirectTo: clientLinkRedirect}, nil
}

// setCoach performs the set-once write. A concurrent link that got there
// first surfaces as lost.
func (s *linkService) setCoach(ctx context.Context, client *domain.ClientProfile, coach *domain.CoachProfile, lost error) error {
	err := s.clientRepo.SetCoachIfUnset(ctx, client.ID, coach.ID)
	switch {
	case err == nil:
		coachID := coach.ID
		client.CoachID = &coachID
		return nil
	case errors.Is(err, repository.ErrNotModified):
		return lost
	case errors.Is(err, repository.ErrNotFound):
		return ErrProfileNotFound
	default:
		return dbError("link client", err)
	}
}
