package service

import (
	"alcyxob/coach-app/internal/cache"
	"alcyxob/coach-app/internal/domain"
	"alcyxob/coach-app/internal/repository"
	"context"
	"errors"
	"log"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// coachProfileOf loads the coach profile of the calling user.
func coachProfileOf(ctx context.Context, repo repository.CoachProfileRepository, actor domain.Actor) (*domain.CoachProfile, error) {
	if !actor.IsCoach() {
		return nil, ErrForbiddenRole
	}
	profile, err := repo.GetByUserID(ctx, actor.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, dbError("load coach profile", err)
	}
	return profile, nil
}

// clientProfileOf loads the client profile of the calling user.
func clientProfileOf(ctx context.Context, repo repository.ClientProfileRepository, actor domain.Actor) (*domain.ClientProfile, error) {
	if !actor.IsClient() {
		return nil, ErrForbiddenRole
	}
	profile, err := repo.GetByUserID(ctx, actor.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, dbError("load client profile", err)
	}
	return profile, nil
}

// coachUserIDOf resolves the user behind a coach profile ID.
func coachUserIDOf(ctx context.Context, repo repository.CoachProfileRepository, coachID primitive.ObjectID) (primitive.ObjectID, error) {
	profile, err := repo.GetByID(ctx, coachID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return primitive.NilObjectID, ErrProfileNotFound
		}
		return primitive.NilObjectID, dbError("load coach profile", err)
	}
	return profile.UserID, nil
}

// invalidateCoachViews drops the cached dashboard and roster of a coach.
// A failure only means the views stay stale until their TTL runs out.
func invalidateCoachViews(ctx context.Context, views cache.ViewCache, coachUserID primitive.ObjectID) {
	if err := views.Invalidate(ctx, cache.DashboardKey(coachUserID), cache.RosterKey(coachUserID)); err != nil {
		log.Printf("WARN: Failed to invalidate cached views of coach %s: %v", coachUserID.Hex(), err)
	}
}
