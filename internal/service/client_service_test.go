package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"alcyxob/coach-app/internal/domain"
	"alcyxob/coach-app/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestEnsureDailyAssignmentIsIdempotent(t *testing.T) {
	f := newFixture(t)
	coach, client := f.pair(t)
	ctx := context.Background()

	_, err := f.coach.CreateMealPlan(ctx, actorOf(coach), samplePlan("Old", "Breakfast"))
	require.NoError(t, err)
	latest, err := f.coach.CreateMealPlan(ctx, actorOf(coach), samplePlan("New", "Breakfast", "Lunch"))
	require.NoError(t, err)

	clientID := f.clientProfile(t, client).ID
	morning := time.Date(2024, 5, 1, 6, 0, 0, 0, time.UTC)
	evening := time.Date(2024, 5, 1, 22, 45, 0, 0, time.UTC)

	first, err := f.client.EnsureDailyAssignment(ctx, clientID, morning)
	require.NoError(t, err)
	second, err := f.client.EnsureDailyAssignment(ctx, clientID, evening)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Len(t, f.store.mealAssignments, 1)
	require.NotNil(t, first.MealPlanID)
	assert.Equal(t, latest.ID, *first.MealPlanID)
	assert.Empty(t, first.CompletedMeals)
	assert.Empty(t, first.CustomContent)
	assert.True(t, first.Date.Equal(domain.DayStart(morning)))

	next, err := f.client.EnsureDailyAssignment(ctx, clientID, morning.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, next.ID)
}

func TestEnsureDailyAssignmentWithoutCoach(t *testing.T) {
	f := newFixture(t)
	client := f.signup(t, "Alex Doe", "alex@x.com", domain.RoleClient)

	a, err := f.client.EnsureDailyAssignment(context.Background(), f.clientProfile(t, client).ID, fixedNow)
	require.NoError(t, err)
	assert.Nil(t, a.MealPlanID)

	_, err = f.client.EnsureDailyAssignment(context.Background(), primitive.NewObjectID(), fixedNow)
	assert.ErrorIs(t, err, ErrClientNotFound)
}

func TestEnsureDailyAssignmentReturnsWinnerOfRace(t *testing.T) {
	f := newFixture(t)
	client := f.signup(t, "Alex Doe", "alex@x.com", domain.RoleClient)
	clientID := f.clientProfile(t, client).ID
	ctx := context.Background()

	// Simulate another request inserting between lookup and insert.
	racing := &racingMealRepo{fakeMealAssignmentRepo: fakeMealAssignmentRepo{f.store}}
	svc := f.client.(*clientService)
	svc.mealAssignmentRepo = racing

	got, err := f.client.EnsureDailyAssignment(ctx, clientID, fixedNow)
	require.NoError(t, err)
	require.NotNil(t, racing.winner)
	assert.Equal(t, racing.winner.ID, got.ID)
	assert.Len(t, f.store.mealAssignments, 1)
}

type racingMealRepo struct {
	fakeMealAssignmentRepo
	winner *domain.MealAssignment
}

func (r *racingMealRepo) Create(ctx context.Context, a *domain.MealAssignment) (primitive.ObjectID, error) {
	if r.winner == nil {
		r.winner = &domain.MealAssignment{ClientID: a.ClientID, Date: a.Date}
		if _, err := r.fakeMealAssignmentRepo.Create(ctx, r.winner); err != nil {
			return primitive.NilObjectID, err
		}
	}
	return r.fakeMealAssignmentRepo.Create(ctx, a)
}

func TestToggleMealCompletionIsAnInvolution(t *testing.T) {
	f := newFixture(t)
	coach, client := f.pair(t)
	ctx := context.Background()
	_, err := f.coach.CreateMealPlan(ctx, actorOf(coach), samplePlan("Cut", "Breakfast", "Lunch"))
	require.NoError(t, err)

	day, err := f.client.DailyMeals(ctx, actorOf(client), fixedNow)
	require.NoError(t, err)

	a, err := f.client.ToggleMealCompletion(ctx, actorOf(client), day.ID, "Lunch")
	require.NoError(t, err)
	assert.Equal(t, []string{"Lunch"}, a.CompletedMeals)

	a, err = f.client.ToggleMealCompletion(ctx, actorOf(client), day.ID, "Breakfast")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Lunch", "Breakfast"}, a.CompletedMeals)

	a, err = f.client.ToggleMealCompletion(ctx, actorOf(client), day.ID, "Breakfast")
	require.NoError(t, err)
	assert.Equal(t, []string{"Lunch"}, a.CompletedMeals)

	a, err = f.client.ToggleMealCompletion(ctx, actorOf(client), day.ID, "Lunch")
	require.NoError(t, err)
	assert.Empty(t, a.CompletedMeals)
}

// flippingMealRepo lets another request tick the meal off between the
// service's read and its conditional write.
type flippingMealRepo struct {
	fakeMealAssignmentRepo
	flipped bool
}

func (r *flippingMealRepo) AddCompletedMeal(ctx context.Context, id primitive.ObjectID, meal string) error {
	if !r.flipped {
		r.flipped = true
		if err := r.fakeMealAssignmentRepo.AddCompletedMeal(ctx, id, meal); err != nil {
			return err
		}
		return repository.ErrNotModified
	}
	return r.fakeMealAssignmentRepo.AddCompletedMeal(ctx, id, meal)
}

func TestToggleMealCompletionFlipsBackAfterConcurrentChange(t *testing.T) {
	f := newFixture(t)
	_, client := f.pair(t)
	ctx := context.Background()

	day, err := f.client.DailyMeals(ctx, actorOf(client), fixedNow)
	require.NoError(t, err)

	flipping := &flippingMealRepo{fakeMealAssignmentRepo: fakeMealAssignmentRepo{f.store}}
	f.client.(*clientService).mealAssignmentRepo = flipping

	a, err := f.client.ToggleMealCompletion(ctx, actorOf(client), day.ID, "Lunch")
	require.NoError(t, err)
	assert.True(t, flipping.flipped)
	assert.Empty(t, a.CompletedMeals)
}

// stuckMealRepo loses every conditional write.
type stuckMealRepo struct {
	fakeMealAssignmentRepo
	calls int
}

func (r *stuckMealRepo) AddCompletedMeal(context.Context, primitive.ObjectID, string) error {
	r.calls++
	return repository.ErrNotModified
}

func (r *stuckMealRepo) RemoveCompletedMeal(context.Context, primitive.ObjectID, string) error {
	r.calls++
	return repository.ErrNotModified
}

func TestToggleMealCompletionGivesUpOnRepeatedConflicts(t *testing.T) {
	f := newFixture(t)
	_, client := f.pair(t)
	ctx := context.Background()

	day, err := f.client.DailyMeals(ctx, actorOf(client), fixedNow)
	require.NoError(t, err)

	stuck := &stuckMealRepo{fakeMealAssignmentRepo: fakeMealAssignmentRepo{f.store}}
	f.client.(*clientService).mealAssignmentRepo = stuck

	_, err = f.client.ToggleMealCompletion(ctx, actorOf(client), day.ID, "Lunch")
	assert.ErrorIs(t, err, ErrMealToggleConflict)
	assert.ErrorIs(t, err, ErrConflict)
	assert.Equal(t, 2, stuck.calls)
}

func TestDailyAssignmentPicksMostRecentlyUpdatedPlan(t *testing.T) {
	f := newFixture(t)
	coach, client := f.pair(t)
	ctx := context.Background()

	older, err := f.coach.CreateMealPlan(ctx, actorOf(coach), samplePlan("Older", "Breakfast"))
	require.NoError(t, err)
	_, err = f.coach.CreateMealPlan(ctx, actorOf(coach), samplePlan("Newer", "Breakfast"))
	require.NoError(t, err)
	_, err = f.coach.UpdateMealPlan(ctx, actorOf(coach), older.ID, samplePlan("Older, revised", "Breakfast", "Dinner"))
	require.NoError(t, err)

	day, err := f.client.DailyMeals(ctx, actorOf(client), fixedNow)
	require.NoError(t, err)
	require.NotNil(t, day.MealPlanID)
	assert.Equal(t, older.ID, *day.MealPlanID)
}

func TestToggleMealCompletionAccess(t *testing.T) {
	f := newFixture(t)
	_, client := f.pair(t)
	other := f.signup(t, "Sam Other", "sam@x.com", domain.RoleClient)
	ctx := context.Background()

	day, err := f.client.DailyMeals(ctx, actorOf(client), fixedNow)
	require.NoError(t, err)

	_, err = f.client.ToggleMealCompletion(ctx, actorOf(other), day.ID, "Lunch")
	assert.ErrorIs(t, err, ErrNotAssignmentOwner)
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, err = f.client.ToggleMealCompletion(ctx, actorOf(client), primitive.NewObjectID(), "Lunch")
	assert.ErrorIs(t, err, ErrAssignmentNotFound)

	_, err = f.client.ToggleMealCompletion(ctx, actorOf(client), day.ID, "  ")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestUpdateDailyMealLogOverwrites(t *testing.T) {
	f := newFixture(t)
	_, client := f.pair(t)
	ctx := context.Background()

	day, err := f.client.DailyMeals(ctx, actorOf(client), fixedNow)
	require.NoError(t, err)

	_, err = f.client.UpdateDailyMealLog(ctx, actorOf(client), day.ID, "oats")
	require.NoError(t, err)
	a, err := f.client.UpdateDailyMealLog(ctx, actorOf(client), day.ID, "eggs and toast")
	require.NoError(t, err)
	assert.Equal(t, "eggs and toast", a.CustomContent)
}

func TestHomeView(t *testing.T) {
	f := newFixture(t)
	coach, client := f.pair(t)
	ctx := context.Background()

	plan, err := f.coach.CreateMealPlan(ctx, actorOf(coach), samplePlan("Cut", "Breakfast"))
	require.NoError(t, err)
	w, err := f.coach.CreateWorkout(ctx, actorOf(coach), sampleWorkout("Leg Day"))
	require.NoError(t, err)
	_, err = f.coach.AssignWorkout(ctx, actorOf(coach), w.ID, f.clientProfile(t, client).ID, fixedNow.Format(DateLayout))
	require.NoError(t, err)

	home, err := f.client.Home(ctx, actorOf(client))
	require.NoError(t, err)

	assert.Equal(t, "alex_doe", home.Username)
	assert.Equal(t, client.Code, home.Code)
	require.NotNil(t, home.Coach)
	assert.Equal(t, "Casey Coach", home.Coach.Name)
	require.NotNil(t, home.Workout)
	assert.Equal(t, "Leg Day", home.Workout.Workout.Title)
	require.NotNil(t, home.MealPlan)
	assert.Equal(t, plan.ID, home.MealPlan.ID)
	assert.Equal(t, home.MealPlan.ID, *home.Meals.MealPlanID)

	again, err := f.client.Home(ctx, actorOf(client))
	require.NoError(t, err)
	assert.Equal(t, home.Meals.ID, again.Meals.ID)

	_, err = f.client.Home(ctx, actorOf(coach))
	assert.ErrorIs(t, err, ErrForbiddenRole)
}

func TestWorkoutAccessIsOwnerOnly(t *testing.T) {
	f := newFixture(t)
	coach, client := f.pair(t)
	other := f.signup(t, "Sam Other", "sam@x.com", domain.RoleClient)
	ctx := context.Background()

	w, err := f.coach.CreateWorkout(ctx, actorOf(coach), sampleWorkout("Leg Day"))
	require.NoError(t, err)
	a, err := f.coach.AssignWorkout(ctx, actorOf(coach), w.ID, f.clientProfile(t, client).ID, "2024-05-01")
	require.NoError(t, err)

	_, err = f.client.ToggleWorkoutCompletion(ctx, actorOf(other), a.ID, true)
	assert.ErrorIs(t, err, ErrNotAssignmentOwner)
	_, err = f.client.UpdateWorkoutFeedback(ctx, actorOf(other), a.ID, "not mine")
	assert.ErrorIs(t, err, ErrNotAssignmentOwner)
	assert.False(t, f.store.assignments[a.ID].Completed)

	history, err := f.client.WorkoutHistory(ctx, actorOf(client))
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, w.ID, history[0].Workout.ID)
}

func TestProgressPhotoFlow(t *testing.T) {
	f := newFixture(t)
	coach, client := f.pair(t)
	other := f.signup(t, "Other Coach", "other@x.com", domain.RoleCoach)
	ctx := context.Background()

	_, err := f.client.LogProgress(ctx, actorOf(client), 0, "")
	assert.ErrorIs(t, err, ErrValidation)

	entry, err := f.client.LogProgress(ctx, actorOf(client), 81.5, " felt lighter ")
	require.NoError(t, err)
	assert.Equal(t, "felt lighter", entry.Notes)

	_, err = f.client.ProgressPhotoURL(ctx, actorOf(client), entry.ID)
	assert.ErrorIs(t, err, ErrProgressPhotoMissing)

	_, err = f.client.RequestProgressPhotoUpload(ctx, actorOf(client), entry.ID, "video/mp4")
	assert.ErrorIs(t, err, ErrValidation)

	upload, err := f.client.RequestProgressPhotoUpload(ctx, actorOf(client), entry.ID, "image/jpeg")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(upload.ObjectKey, ".jpg"))
	assert.Contains(t, upload.UploadURL, upload.ObjectKey)

	_, err = f.client.ConfirmProgressPhoto(ctx, actorOf(client), entry.ID, "progress/elsewhere/x.jpg")
	assert.ErrorIs(t, err, ErrInvalidPhotoKey)

	confirmed, err := f.client.ConfirmProgressPhoto(ctx, actorOf(client), entry.ID, upload.ObjectKey)
	require.NoError(t, err)
	assert.True(t, confirmed.HasPhoto)

	url, err := f.client.ProgressPhotoURL(ctx, actorOf(client), entry.ID)
	require.NoError(t, err)
	assert.Contains(t, url, upload.ObjectKey)

	url, err = f.client.ProgressPhotoURL(ctx, actorOf(coach), entry.ID)
	require.NoError(t, err)
	assert.Contains(t, url, upload.ObjectKey)

	_, err = f.client.ProgressPhotoURL(ctx, actorOf(other), entry.ID)
	assert.ErrorIs(t, err, ErrClientNotLinked)

	// replacing the photo removes the old object
	second, err := f.client.RequestProgressPhotoUpload(ctx, actorOf(client), entry.ID, "image/png")
	require.NoError(t, err)
	_, err = f.client.ConfirmProgressPhoto(ctx, actorOf(client), entry.ID, second.ObjectKey)
	require.NoError(t, err)
	assert.Equal(t, []string{upload.ObjectKey}, f.files.deleted)

	list, err := f.client.ListProgress(ctx, actorOf(client))
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.True(t, list[0].HasPhoto)
}

func TestProgressPhotosDisabledWithoutStorage(t *testing.T) {
	f := newFixture(t)
	_, client := f.pair(t)
	f.client.(*clientService).fileStorage = nil
	ctx := context.Background()

	entry, err := f.client.LogProgress(ctx, actorOf(client), 80, "")
	require.NoError(t, err)
	_, err = f.client.RequestProgressPhotoUpload(ctx, actorOf(client), entry.ID, "image/jpeg")
	assert.ErrorIs(t, err, ErrPhotosDisabled)
}

func TestPresignFailureIsInternalError(t *testing.T) {
	f := newFixture(t)
	_, client := f.pair(t)
	cause := errors.New("no credentials")
	f.files.failPresign = cause
	ctx := context.Background()

	entry, err := f.client.LogProgress(ctx, actorOf(client), 80, "")
	require.NoError(t, err)
	_, err = f.client.RequestProgressPhotoUpload(ctx, actorOf(client), entry.ID, "image/jpeg")
	assert.ErrorIs(t, err, ErrInternal)
	assert.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, ErrDatabase)
}
