package service

import (
	"alcyxob/coach-app/internal/cache"
	"alcyxob/coach-app/internal/domain"
	"alcyxob/coach-app/internal/repository"
	"alcyxob/coach-app/internal/storage"
	"context"
	"errors"
	"log"
	"path"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProgressEntry is a progress log as shown to users.
type ProgressEntry struct {
	domain.ProgressLog
	HasPhoto bool `json:"hasPhoto"`
}

func progressEntries(logs []domain.ProgressLog) []ProgressEntry {
	entries := make([]ProgressEntry, len(logs))
	for i, l := range logs {
		entries[i] = ProgressEntry{ProgressLog: l, HasPhoto: l.PhotoKey != ""}
	}
	return entries
}

// CoachSummary is what a client sees of their coach.
type CoachSummary struct {
	UserID   primitive.ObjectID `json:"userId"`
	Name     string             `json:"name"`
	Username string             `json:"username"`
	Code     string             `json:"code"`
}

// HomeView is everything the client home screen shows for one day.
type HomeView struct {
	Username string                 `json:"username"`
	Code     string                 `json:"code"`
	Coach    *CoachSummary          `json:"coach,omitempty"`
	Workout  *AssignedWorkout       `json:"workout,omitempty"`
	Meals    *domain.MealAssignment `json:"meals"`
	MealPlan *domain.MealPlan       `json:"mealPlan,omitempty"`
}

// UploadURLResponse structure for returning URL and object key
type UploadURLResponse struct {
	UploadURL string `json:"uploadUrl"`
	ObjectKey string `json:"objectKey"` // reported back on confirm
}

type ClientService interface {
	Home(ctx context.Context, actor domain.Actor) (*HomeView, error)

	// Meals
	EnsureDailyAssignment(ctx context.Context, clientID primitive.ObjectID, date time.Time) (*domain.MealAssignment, error)
	DailyMeals(ctx context.Context, actor domain.Actor, date time.Time) (*domain.MealAssignment, error)
	ToggleMealCompletion(ctx context.Context, actor domain.Actor, assignmentID primitive.ObjectID, meal string) (*domain.MealAssignment, error)
	UpdateDailyMealLog(ctx context.Context, actor domain.Actor, assignmentID primitive.ObjectID, content string) (*domain.MealAssignment, error)

	// Workouts
	ToggleWorkoutCompletion(ctx context.Context, actor domain.Actor, assignmentID primitive.ObjectID, completed bool) (*domain.WorkoutAssignment, error)
	UpdateWorkoutFeedback(ctx context.Context, actor domain.Actor, assignmentID primitive.ObjectID, feedback string) (*domain.WorkoutAssignment, error)
	WorkoutHistory(ctx context.Context, actor domain.Actor) ([]AssignedWorkout, error)

	// Progress
	LogProgress(ctx context.Context, actor domain.Actor, weight float64, notes string) (*domain.ProgressLog, error)
	ListProgress(ctx context.Context, actor domain.Actor) ([]ProgressEntry, error)
	RequestProgressPhotoUpload(ctx context.Context, actor domain.Actor, logID primitive.ObjectID, contentType string) (*UploadURLResponse, error)
	ConfirmProgressPhoto(ctx context.Context, actor domain.Actor, logID primitive.ObjectID, objectKey string) (*ProgressEntry, error)
	// ProgressPhotoURL is open to the owning client and to their coach.
	ProgressPhotoURL(ctx context.Context, actor domain.Actor, logID primitive.ObjectID) (string, error)
}

// clientService implements the ClientService interface.
type clientService struct {
	userRepo           repository.UserRepository
	coachRepo          repository.CoachProfileRepository
	clientRepo         repository.ClientProfileRepository
	workoutRepo        repository.WorkoutRepository
	assignmentRepo     repository.WorkoutAssignmentRepository
	mealPlanRepo       repository.MealPlanRepository
	mealAssignmentRepo repository.MealAssignmentRepository
	progressRepo       repository.ProgressLogRepository
	fileStorage        storage.FileStorage // nil when photos are disabled
	views              cache.ViewCache
	now                func() time.Time
}

// NewClientService creates a new instance of clientService. fileStorage may
// be nil, in which case progress photos are rejected.
func NewClientService(
	userRepo repository.UserRepository,
	coachRepo repository.CoachProfileRepository,
	clientRepo repository.ClientProfileRepository,
	workoutRepo repository.WorkoutRepository,
	assignmentRepo repository.WorkoutAssignmentRepository,
	mealPlanRepo repository.MealPlanRepository,
	mealAssignmentRepo repository.MealAssignmentRepository,
	progressRepo repository.ProgressLogRepository,
	fileStorage storage.FileStorage,
	views cache.ViewCache,
) ClientService {
	return &clientService{
		userRepo:           userRepo,
		coachRepo:          coachRepo,
		clientRepo:         clientRepo,
		workoutRepo:        workoutRepo,
		assignmentRepo:     assignmentRepo,
		mealPlanRepo:       mealPlanRepo,
		mealAssignmentRepo: mealAssignmentRepo,
		progressRepo:       progressRepo,
		fileStorage:        fileStorage,
		views:              views,
		now:                time.Now,
	}
}

// === Home ===

func (s *clientService) Home(ctx context.Context, actor domain.Actor) (*HomeView, error) {
	client, err := clientProfileOf(ctx, s.clientRepo, actor)
	if err != nil {
		return nil, err
	}
	user, err := s.userRepo.GetByID(ctx, actor.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, dbError("load user", err)
	}

	today := s.now()
	view := &HomeView{Username: user.Username, Code: client.Code}

	from, to := domain.DayRange(today)
	assignment, err := s.assignmentRepo.FindInRange(ctx, client.ID, from, to)
	switch {
	case err == nil:
		withWorkout, err := attachWorkouts(ctx, s.workoutRepo, []domain.WorkoutAssignment{*assignment})
		if err != nil {
			return nil, err
		}
		view.Workout = &withWorkout[0]
	case !errors.Is(err, repository.ErrNotFound):
		return nil, dbError("load today's workout", err)
	}

	if view.Meals, err = s.EnsureDailyAssignment(ctx, client.ID, today); err != nil {
		return nil, err
	}
	if view.Meals.MealPlanID != nil {
		plan, err := s.mealPlanRepo.GetByID(ctx, *view.Meals.MealPlanID)
		switch {
		case err == nil:
			view.MealPlan = plan
		case !errors.Is(err, repository.ErrNotFound):
			return nil, dbError("load meal plan", err)
		}
	}

	if client.HasCoach() {
		if view.Coach, err = s.coachSummary(ctx, *client.CoachID); err != nil {
			return nil, err
		}
	}
	return view, nil
}

func (s *clientService) coachSummary(ctx context.Context, coachID primitive.ObjectID) (*CoachSummary, error) {
	coach, err := s.coachRepo.GetByID(ctx, coachID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, dbError("load coach profile", err)
	}
	user, err := s.userRepo.GetByID(ctx, coach.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, dbError("load coach", err)
	}
	return &CoachSummary{UserID: user.ID, Name: user.Name, Username: user.Username, Code: coach.Code}, nil
}

// === Meals ===

// EnsureDailyAssignment returns the client's meal assignment for date's
// day, creating it from the coach's most recently updated plan if needed.
// Calling it again for the same day returns the same row.
func (s *clientService) EnsureDailyAssignment(ctx context.Context, clientID primitive.ObjectID, date time.Time) (*domain.MealAssignment, error) {
	from, to := domain.DayRange(date)
	existing, err := s.mealAssignmentRepo.FindInRange(ctx, clientID, from, to)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, dbError("load meal assignment", err)
	}

	client, err := s.clientRepo.GetByID(ctx, clientID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, dbError("load client", err)
	}

	assignment := &domain.MealAssignment{
		ClientID:       clientID,
		Date:           from,
		CompletedMeals: []string{},
	}
	if client.HasCoach() {
		plan, err := s.mealPlanRepo.LatestByCoachID(ctx, *client.CoachID)
		switch {
		case err == nil:
			assignment.MealPlanID = &plan.ID
		case !errors.Is(err, repository.ErrNotFound):
			return nil, dbError("load latest meal plan", err)
		}
	}

	if _, err := s.mealAssignmentRepo.Create(ctx, assignment); err != nil {
		if !errors.Is(err, repository.ErrDuplicateKey) {
			return nil, dbError("create meal assignment", err)
		}
		// Another request created the day first; return its row.
		winner, err := s.mealAssignmentRepo.FindInRange(ctx, clientID, from, to)
		if err != nil {
			return nil, dbError("load meal assignment", err)
		}
		return winner, nil
	}
	return assignment, nil
}

func (s *clientService) DailyMeals(ctx context.Context, actor domain.Actor, date time.Time) (*domain.MealAssignment, error) {
	client, err := clientProfileOf(ctx, s.clientRepo, actor)
	if err != nil {
		return nil, err
	}
	return s.EnsureDailyAssignment(ctx, client.ID, date)
}

// ToggleMealCompletion ticks a meal off, or un-ticks it if already done.
func (s *clientService) ToggleMealCompletion(ctx context.Context, actor domain.Actor, assignmentID primitive.ObjectID, meal string) (*domain.MealAssignment, error) {
	meal = strings.TrimSpace(meal)
	if meal == "" {
		return nil, validationError("meal name is required")
	}
	assignment, err := s.ownedMealAssignment(ctx, actor, assignmentID)
	if err != nil {
		return nil, err
	}

	// The add and remove writes are conditional on the current state. If a
	// concurrent toggle flipped the meal in between, flip the other way.
	done := assignment.IsMealCompleted(meal)
	toggled := false
	for attempt := 0; attempt < 2 && !toggled; attempt++ {
		if done {
			err = s.mealAssignmentRepo.RemoveCompletedMeal(ctx, assignmentID, meal)
		} else {
			err = s.mealAssignmentRepo.AddCompletedMeal(ctx, assignmentID, meal)
		}
		switch {
		case err == nil:
			toggled = true
		case errors.Is(err, repository.ErrNotModified):
			done = !done
		case errors.Is(err, repository.ErrNotFound):
			return nil, ErrAssignmentNotFound
		default:
			return nil, dbError("update completed meals", err)
		}
	}
	if !toggled {
		return nil, ErrMealToggleConflict
	}
	return s.reloadMealAssignment(ctx, assignmentID)
}

// UpdateDailyMealLog replaces the free-text log of the day.
func (s *clientService) UpdateDailyMealLog(ctx context.Context, actor domain.Actor, assignmentID primitive.ObjectID, content string) (*domain.MealAssignment, error) {
	if _, err := s.ownedMealAssignment(ctx, actor, assignmentID); err != nil {
		return nil, err
	}
	if err := s.mealAssignmentRepo.SetCustomContent(ctx, assignmentID, content); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrAssignmentNotFound
		}
		return nil, dbError("update daily log", err)
	}
	return s.reloadMealAssignment(ctx, assignmentID)
}

func (s *clientService) ownedMealAssignment(ctx context.Context, actor domain.Actor, assignmentID primitive.ObjectID) (*domain.MealAssignment, error) {
	client, err := clientProfileOf(ctx, s.clientRepo, actor)
	if err != nil {
		return nil, err
	}
	assignment, err := s.mealAssignmentRepo.GetByID(ctx, assignmentID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrAssignmentNotFound
		}
		return nil, dbError("load meal assignment", err)
	}
	if assignment.ClientID != client.ID {
		return nil, ErrNotAssignmentOwner
	}
	return assignment, nil
}

func (s *clientService) reloadMealAssignment(ctx context.Context, id primitive.ObjectID) (*domain.MealAssignment, error) {
	assignment, err := s.mealAssignmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrAssignmentNotFound
		}
		return nil, dbError("load meal assignment", err)
	}
	return assignment, nil
}

// === Workouts ===

// ToggleWorkoutCompletion sets the completed flag. Feedback is left as is.
func (s *clientService) ToggleWorkoutCompletion(ctx context.Context, actor domain.Actor, assignmentID primitive.ObjectID, completed bool) (*domain.WorkoutAssignment, error) {
	assignment, client, err := s.ownedWorkoutAssignment(ctx, actor, assignmentID)
	if err != nil {
		return nil, err
	}
	if err := s.assignmentRepo.SetCompleted(ctx, assignmentID, completed); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrAssignmentNotFound
		}
		return nil, dbError("update workout status", err)
	}
	assignment.Completed = completed

	// Pending check-ins on the coach dashboard just changed
	if client.HasCoach() {
		if coachUserID, err := coachUserIDOf(ctx, s.coachRepo, *client.CoachID); err == nil {
			invalidateCoachViews(ctx, s.views, coachUserID)
		} else {
			log.Printf("WARN: Could not resolve coach %s of client %s: %v", client.CoachID.Hex(), client.ID.Hex(), err)
		}
	}
	return assignment, nil
}

// UpdateWorkoutFeedback replaces the client's feedback text.
func (s *clientService) UpdateWorkoutFeedback(ctx context.Context, actor domain.Actor, assignmentID primitive.ObjectID, feedback string) (*domain.WorkoutAssignment, error) {
	assignment, _, err := s.ownedWorkoutAssignment(ctx, actor, assignmentID)
	if err != nil {
		return nil, err
	}
	if err := s.assignmentRepo.SetFeedback(ctx, assignmentID, feedback); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrAssignmentNotFound
		}
		return nil, dbError("update workout feedback", err)
	}
	assignment.Feedback = feedback
	return assignment, nil
}

func (s *clientService) ownedWorkoutAssignment(ctx context.Context, actor domain.Actor, assignmentID primitive.ObjectID) (*domain.WorkoutAssignment, *domain.ClientProfile, error) {
	client, err := clientProfileOf(ctx, s.clientRepo, actor)
	if err != nil {
		return nil, nil, err
	}
	assignment, err := s.assignmentRepo.GetByID(ctx, assignmentID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil, ErrAssignmentNotFound
		}
		return nil, nil, dbError("load assignment", err)
	}
	if assignment.ClientID != client.ID {
		return nil, nil, ErrNotAssignmentOwner
	}
	return assignment, client, nil
}

// WorkoutHistory lists every workout assigned to the client, newest first.
func (s *clientService) WorkoutHistory(ctx context.Context, actor domain.Actor) ([]AssignedWorkout, error) {
	client, err := clientProfileOf(ctx, s.clientRepo, actor)
	if err != nil {
		return nil, err
	}
	assignments, err := s.assignmentRepo.GetByClientID(ctx, client.ID, 0)
	if err != nil {
		return nil, dbError("load assignments", err)
	}
	return attachWorkouts(ctx, s.workoutRepo, assignments)
}

// === Progress ===

func (s *clientService) LogProgress(ctx context.Context, actor domain.Actor, weight float64, notes string) (*domain.ProgressLog, error) {
	client, err := clientProfileOf(ctx, s.clientRepo, actor)
	if err != nil {
		return nil, err
	}
	if weight <= 0 {
		return nil, validationError("weight must be positive")
	}
	entry := &domain.ProgressLog{
		ClientID: client.ID,
		Weight:   weight,
		Notes:    strings.TrimSpace(notes),
		Date:     s.now().UTC(),
	}
	if _, err := s.progressRepo.Create(ctx, entry); err != nil {
		return nil, dbError("log progress", err)
	}
	return entry, nil
}

func (s *clientService) ListProgress(ctx context.Context, actor domain.Actor) ([]ProgressEntry, error) {
	client, err := clientProfileOf(ctx, s.clientRepo, actor)
	if err != nil {
		return nil, err
	}
	logs, err := s.progressRepo.GetByClientID(ctx, client.ID, 0)
	if err != nil {
		return nil, dbError("load progress logs", err)
	}
	return progressEntries(logs), nil
}

// RequestProgressPhotoUpload generates a pre-signed URL for the client to
// PUT a photo for one of their progress logs.
func (s *clientService) RequestProgressPhotoUpload(ctx context.Context, actor domain.Actor, logID primitive.ObjectID, contentType string) (*UploadURLResponse, error) {
	if s.fileStorage == nil {
		return nil, ErrPhotosDisabled
	}
	entry, err := s.ownedProgressLog(ctx, actor, logID)
	if err != nil {
		return nil, err
	}
	objectKey, err := storage.ProgressPhotoKey(entry.ClientID.Hex(), entry.ID.Hex(), contentType)
	if err != nil {
		return nil, newError(ErrValidation, err.Error())
	}
	uploadURL, err := s.fileStorage.GeneratePresignedUploadURL(ctx, objectKey, contentType, storage.DefaultPresignedURLExpiry)
	if err != nil {
		return nil, internalError("generate upload URL", err)
	}
	return &UploadURLResponse{UploadURL: uploadURL, ObjectKey: objectKey}, nil
}

// ConfirmProgressPhoto attaches an uploaded object to the log. Any photo
// it replaces is removed from storage.
func (s *clientService) ConfirmProgressPhoto(ctx context.Context, actor domain.Actor, logID primitive.ObjectID, objectKey string) (*ProgressEntry, error) {
	if s.fileStorage == nil {
		return nil, ErrPhotosDisabled
	}
	entry, err := s.ownedProgressLog(ctx, actor, logID)
	if err != nil {
		return nil, err
	}
	prefix := path.Join("progress", entry.ClientID.Hex(), entry.ID.Hex()) + "/"
	if !strings.HasPrefix(objectKey, prefix) || path.Clean(objectKey) != objectKey {
		return nil, ErrInvalidPhotoKey
	}

	if err := s.progressRepo.SetPhotoKey(ctx, logID, objectKey); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProgressLogNotFound
		}
		return nil, dbError("attach progress photo", err)
	}
	if previous := entry.PhotoKey; previous != "" && previous != objectKey {
		if err := s.fileStorage.DeleteObject(ctx, previous); err != nil {
			log.Printf("WARN: Failed to delete replaced progress photo %s: %v", previous, err)
		}
	}
	entry.PhotoKey = objectKey
	return &ProgressEntry{ProgressLog: *entry, HasPhoto: true}, nil
}

func (s *clientService) ProgressPhotoURL(ctx context.Context, actor domain.Actor, logID primitive.ObjectID) (string, error) {
	if s.fileStorage == nil {
		return "", ErrPhotosDisabled
	}
	entry, err := s.progressLog(ctx, logID)
	if err != nil {
		return "", err
	}

	switch actor.Role {
	case domain.RoleClient:
		client, err := clientProfileOf(ctx, s.clientRepo, actor)
		if err != nil {
			return "", err
		}
		if entry.ClientID != client.ID {
			return "", ErrNotProgressOwner
		}
	case domain.RoleCoach:
		coach, err := coachProfileOf(ctx, s.coachRepo, actor)
		if err != nil {
			return "", err
		}
		client, err := s.clientRepo.GetByID(ctx, entry.ClientID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return "", ErrClientNotFound
			}
			return "", dbError("load client", err)
		}
		if !client.HasCoach() || *client.CoachID != coach.ID {
			return "", ErrClientNotLinked
		}
	default:
		return "", ErrForbiddenRole
	}

	if entry.PhotoKey == "" {
		return "", ErrProgressPhotoMissing
	}
	url, err := s.fileStorage.GeneratePresignedDownloadURL(ctx, entry.PhotoKey, storage.DefaultPresignedURLExpiry)
	if err != nil {
		return "", internalError("generate download URL", err)
	}
	return url, nil
}

func (s *clientService) ownedProgressLog(ctx context.Context, actor domain.Actor, logID primitive.ObjectID) (*domain.ProgressLog, error) {
	client, err := clientProfileOf(ctx, s.clientRepo, actor)
	if err != nil {
		return nil, err
	}
	entry, err := s.progressLog(ctx, logID)
	if err != nil {
		return nil, err
	}
	if entry.ClientID != client.ID {
		return nil, ErrNotProgressOwner
	}
	return entry, nil
}

func (s *clientService) progressLog(ctx context.Context, logID primitive.ObjectID) (*domain.ProgressLog, error) {
	entry, err := s.progressRepo.GetByID(ctx, logID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProgressLogNotFound
		}
		return nil, dbError("load progress log", err)
	}
	return entry, nil
}
