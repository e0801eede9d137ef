package service

import (
	"alcyxob/coach-app/internal/cache"
	"alcyxob/coach-app/internal/domain"
	"alcyxob/coach-app/internal/repository"
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	minTitleLength          = 2
	maxWorkoutSearchResults = 10
	recentAssignmentsLimit  = 10
	recentProgressLimit     = 5

	// DateLayout is the calendar-day format accepted when assigning workouts.
	DateLayout = "2006-01-02"
)

// WorkoutInput carries the editable fields of a workout.
type WorkoutInput struct {
	Title       string
	Description string
	Exercises   []domain.ExerciseEntry
}

// MealPlanInput carries the editable fields of a meal plan.
type MealPlanInput struct {
	Title   string
	Content domain.MealPlanContent
}

// WorkoutSummary is the search-as-you-type projection of a workout.
type WorkoutSummary struct {
	ID    primitive.ObjectID `json:"id"`
	Title string             `json:"title"`
}

// ClientSummary is one row of a coach's roster.
type ClientSummary struct {
	ProfileID primitive.ObjectID `json:"profileId"`
	UserID    primitive.ObjectID `json:"userId"`
	Name      string             `json:"name"`
	Email     string             `json:"email"`
	Username  string             `json:"username"`
	Code      string             `json:"code"`
}

// AssignedWorkout is an assignment together with the workout it points at.
// Workout is nil if the workout was deleted after being assigned.
type AssignedWorkout struct {
	domain.WorkoutAssignment
	Workout *domain.Workout `json:"workout,omitempty"`
}

// ClientDetail is the coach's view of a single client.
type ClientDetail struct {
	Client       ClientSummary     `json:"client"`
	Assignments  []AssignedWorkout `json:"assignments"`
	ProgressLogs []ProgressEntry   `json:"progressLogs"`
}

// DashboardStats are the headline numbers of the coach dashboard.
type DashboardStats struct {
	ActiveClients   int64  `json:"activeClients"`
	PendingCheckIns int64  `json:"pendingCheckIns"`
	UnreadMessages  int64  `json:"unreadMessages"`
	Username        string `json:"username"`
	Code            string `json:"code"`
}

type CoachService interface {
	// Workouts
	CreateWorkout(ctx context.Context, actor domain.Actor, input WorkoutInput) (*domain.Workout, error)
	ListWorkouts(ctx context.Context, actor domain.Actor) ([]domain.Workout, error)
	GetWorkout(ctx context.Context, actor domain.Actor, workoutID primitive.ObjectID) (*domain.Workout, error)
	DeleteWorkout(ctx context.Context, actor domain.Actor, workoutID primitive.ObjectID) error
	SearchWorkouts(ctx context.Context, actor domain.Actor, query string) ([]WorkoutSummary, error)
	AssignWorkout(ctx context.Context, actor domain.Actor, workoutID, clientID primitive.ObjectID, date string) (*domain.WorkoutAssignment, error)

	// Meal plans
	CreateMealPlan(ctx context.Context, actor domain.Actor, input MealPlanInput) (*domain.MealPlan, error)
	UpdateMealPlan(ctx context.Context, actor domain.Actor, planID primitive.ObjectID, input MealPlanInput) (*domain.MealPlan, error)
	ListMealPlans(ctx context.Context, actor domain.Actor) ([]domain.MealPlan, error)
	GetMealPlan(ctx context.Context, actor domain.Actor, planID primitive.ObjectID) (*domain.MealPlan, error)
	DeleteMealPlan(ctx context.Context, actor domain.Actor, planID primitive.ObjectID) error

	// Roster
	ListClients(ctx context.Context, actor domain.Actor) ([]ClientSummary, error)
	GetClientDetail(ctx context.Context, actor domain.Actor, clientID primitive.ObjectID) (*ClientDetail, error)
	Dashboard(ctx context.Context, actor domain.Actor) (*DashboardStats, error)
}

// coachService implements the CoachService interface.
type coachService struct {
	userRepo       repository.UserRepository
	coachRepo      repository.CoachProfileRepository
	clientRepo     repository.ClientProfileRepository
	workoutRepo    repository.WorkoutRepository
	assignmentRepo repository.WorkoutAssignmentRepository
	mealPlanRepo   repository.MealPlanRepository
	progressRepo   repository.ProgressLogRepository
	messageRepo    repository.MessageRepository
	views          cache.ViewCache
	viewTTL        time.Duration
	now            func() time.Time
}

// NewCoachService creates a new instance of coachService.
func NewCoachService(
	userRepo repository.UserRepository,
	coachRepo repository.CoachProfileRepository,
	clientRepo repository.ClientProfileRepository,
	workoutRepo repository.WorkoutRepository,
	assignmentRepo repository.WorkoutAssignmentRepository,
	mealPlanRepo repository.MealPlanRepository,
	progressRepo repository.ProgressLogRepository,
	messageRepo repository.MessageRepository,
	views cache.ViewCache,
	viewTTL time.Duration,
) CoachService {
	return &coachService{
		userRepo:       userRepo,
		coachRepo:      coachRepo,
		clientRepo:     clientRepo,
		workoutRepo:    workoutRepo,
		assignmentRepo: assignmentRepo,
		mealPlanRepo:   mealPlanRepo,
		progressRepo:   progressRepo,
		messageRepo:    messageRepo,
		views:          views,
		viewTTL:        viewTTL,
		now:            time.Now,
	}
}

// === Workouts ===

func (s *coachService) CreateWorkout(ctx context.Context, actor domain.Actor, input WorkoutInput) (*domain.Workout, error) {
	coach, err := coachProfileOf(ctx, s.coachRepo, actor)
	if err != nil {
		return nil, err
	}
	title := strings.TrimSpace(input.Title)
	if len([]rune(title)) < minTitleLength {
		return nil, validationError("title must be at least %d characters", minTitleLength)
	}
	exercises := make([]domain.ExerciseEntry, 0, len(input.Exercises))
	for i, ex := range input.Exercises {
		ex.Name = strings.TrimSpace(ex.Name)
		if ex.Name == "" {
			return nil, validationError("exercise %d has no name", i+1)
		}
		if ex.Sets < 0 {
			return nil, validationError("exercise %q has a negative set count", ex.Name)
		}
		exercises = append(exercises, ex)
	}

	workout := &domain.Workout{
		CoachID:     coach.ID,
		Title:       title,
		Description: strings.TrimSpace(input.Description),
		Exercises:   exercises,
	}
	if _, err := s.workoutRepo.Create(ctx, workout); err != nil {
		return nil, dbError("create workout", err)
	}
	return workout, nil
}

func (s *coachService) ListWorkouts(ctx context.Context, actor domain.Actor) ([]domain.Workout, error) {
	coach, err := coachProfileOf(ctx, s.coachRepo, actor)
	if err != nil {
		return nil, err
	}
	workouts, err := s.workoutRepo.GetByCoachID(ctx, coach.ID)
	if err != nil {
		return nil, dbError("list workouts", err)
	}
	return workouts, nil
}

func (s *coachService) GetWorkout(ctx context.Context, actor domain.Actor, workoutID primitive.ObjectID) (*domain.Workout, error) {
	coach, err := coachProfileOf(ctx, s.coachRepo, actor)
	if err != nil {
		return nil, err
	}
	return s.ownedWorkout(ctx, coach, workoutID)
}

func (s *coachService) ownedWorkout(ctx context.Context, coach *domain.CoachProfile, workoutID primitive.ObjectID) (*domain.Workout, error) {
	workout, err := s.workoutRepo.GetByID(ctx, workoutID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrWorkoutNotFound
		}
		return nil, dbError("load workout", err)
	}
	if workout.CoachID != coach.ID {
		return nil, ErrNotWorkoutOwner
	}
	return workout, nil
}

func (s *coachService) DeleteWorkout(ctx context.Context, actor domain.Actor, workoutID primitive.ObjectID) error {
	coach, err := coachProfileOf(ctx, s.coachRepo, actor)
	if err != nil {
		return err
	}
	if _, err := s.ownedWorkout(ctx, coach, workoutID); err != nil {
		return err
	}
	if err := s.workoutRepo.Delete(ctx, workoutID, coach.ID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrWorkoutNotFound
		}
		return dbError("delete workout", err)
	}
	return nil
}

// SearchWorkouts matches the coach's own workout titles case-insensitively.
func (s *coachService) SearchWorkouts(ctx context.Context, actor domain.Actor, query string) ([]WorkoutSummary, error) {
	coach, err := coachProfileOf(ctx, s.coachRepo, actor)
	if err != nil {
		return nil, err
	}
	results := []WorkoutSummary{}
	query = strings.TrimSpace(query)
	if query == "" {
		return results, nil
	}
	workouts, err := s.workoutRepo.SearchByTitle(ctx, coach.ID, query, maxWorkoutSearchResults)
	if err != nil {
		return nil, dbError("search workouts", err)
	}
	for _, w := range workouts {
		results = append(results, WorkoutSummary{ID: w.ID, Title: w.Title})
	}
	return results, nil
}

// AssignWorkout schedules one of the coach's workouts for a linked client
// on a calendar day given as YYYY-MM-DD.
func (s *coachService) AssignWorkout(ctx context.Context, actor domain.Actor, workoutID, clientID primitive.ObjectID, date string) (*domain.WorkoutAssignment, error) {
	coach, err := coachProfileOf(ctx, s.coachRepo, actor)
	if err != nil {
		return nil, err
	}
	day, err := time.Parse(DateLayout, strings.TrimSpace(date))
	if err != nil {
		return nil, validationError("date must be formatted as YYYY-MM-DD")
	}
	if _, err := s.ownedWorkout(ctx, coach, workoutID); err != nil {
		return nil, err
	}
	if _, err := s.linkedClient(ctx, coach, clientID); err != nil {
		return nil, err
	}

	assignment := &domain.WorkoutAssignment{
		WorkoutID: workoutID,
		ClientID:  clientID,
		Date:      domain.DayStart(day),
	}
	if _, err := s.assignmentRepo.Create(ctx, assignment); err != nil {
		return nil, dbError("assign workout", err)
	}
	invalidateCoachViews(ctx, s.views, actor.UserID)
	return assignment, nil
}

// linkedClient loads a client profile and checks it belongs to coach.
func (s *coachService) linkedClient(ctx context.Context, coach *domain.CoachProfile, clientID primitive.ObjectID) (*domain.ClientProfile, error) {
	client, err := s.clientRepo.GetByID(ctx, clientID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, dbError("load client", err)
	}
	if !client.HasCoach() || *client.CoachID != coach.ID {
		return nil, ErrClientNotLinked
	}
	return client, nil
}

// === Meal plans ===

func (s *coachService) CreateMealPlan(ctx context.Context, actor domain.Actor, input MealPlanInput) (*domain.MealPlan, error) {
	coach, err := coachProfileOf(ctx, s.coachRepo, actor)
	if err != nil {
		return nil, err
	}
	title, content, err := cleanMealPlanInput(input)
	if err != nil {
		return nil, err
	}
	plan := &domain.MealPlan{CoachID: coach.ID, Title: title, Content: content}
	if _, err := s.mealPlanRepo.Create(ctx, plan); err != nil {
		return nil, dbError("create meal plan", err)
	}
	return plan, nil
}

func (s *coachService) UpdateMealPlan(ctx context.Context, actor domain.Actor, planID primitive.ObjectID, input MealPlanInput) (*domain.MealPlan, error) {
	coach, err := coachProfileOf(ctx, s.coachRepo, actor)
	if err != nil {
		return nil, err
	}
	title, content, err := cleanMealPlanInput(input)
	if err != nil {
		return nil, err
	}
	plan, err := s.ownedMealPlan(ctx, coach, planID)
	if err != nil {
		return nil, err
	}
	plan.Title = title
	plan.Content = content
	if err := s.mealPlanRepo.Update(ctx, plan); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrMealPlanNotFound
		}
		return nil, dbError("update meal plan", err)
	}
	return plan, nil
}

func cleanMealPlanInput(input MealPlanInput) (string, domain.MealPlanContent, error) {
	title := strings.TrimSpace(input.Title)
	if len([]rune(title)) < minTitleLength {
		return "", domain.MealPlanContent{}, validationError("title must be at least %d characters", minTitleLength)
	}
	content := input.Content
	meals := make([]domain.Meal, len(content.Meals))
	for i, m := range content.Meals {
		m.Name = strings.TrimSpace(m.Name)
		if m.Foods == nil {
			m.Foods = []domain.FoodEntry{}
		}
		meals[i] = m
	}
	content.Meals = meals
	content.Summary = strings.TrimSpace(content.Summary)
	if err := content.Validate(); err != nil {
		return "", domain.MealPlanContent{}, newError(ErrValidation, err.Error())
	}
	return title, content, nil
}

func (s *coachService) ListMealPlans(ctx context.Context, actor domain.Actor) ([]domain.MealPlan, error) {
	coach, err := coachProfileOf(ctx, s.coachRepo, actor)
	if err != nil {
		return nil, err
	}
	plans, err := s.mealPlanRepo.GetByCoachID(ctx, coach.ID)
	if err != nil {
		return nil, dbError("list meal plans", err)
	}
	return plans, nil
}

func (s *coachService) GetMealPlan(ctx context.Context, actor domain.Actor, planID primitive.ObjectID) (*domain.MealPlan, error) {
	coach, err := coachProfileOf(ctx, s.coachRepo, actor)
	if err != nil {
		return nil, err
	}
	return s.ownedMealPlan(ctx, coach, planID)
}

func (s *coachService) ownedMealPlan(ctx context.Context, coach *domain.CoachProfile, planID primitive.ObjectID) (*domain.MealPlan, error) {
	plan, err := s.mealPlanRepo.GetByID(ctx, planID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrMealPlanNotFound
		}
		return nil, dbError("load meal plan", err)
	}
	if plan.CoachID != coach.ID {
		return nil, ErrNotMealPlanOwner
	}
	return plan, nil
}

func (s *coachService) DeleteMealPlan(ctx context.Context, actor domain.Actor, planID primitive.ObjectID) error {
	coach, err := coachProfileOf(ctx, s.coachRepo, actor)
	if err != nil {
		return err
	}
	if _, err := s.ownedMealPlan(ctx, coach, planID); err != nil {
		return err
	}
	if err := s.mealPlanRepo.Delete(ctx, planID, coach.ID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrMealPlanNotFound
		}
		return dbError("delete meal plan", err)
	}
	return nil
}

// === Roster ===

// ListClients returns the coach's linked clients. Served from the view
// cache when possible.
func (s *coachService) ListClients(ctx context.Context, actor domain.Actor) ([]ClientSummary, error) {
	coach, err := coachProfileOf(ctx, s.coachRepo, actor)
	if err != nil {
		return nil, err
	}

	key := cache.RosterKey(actor.UserID)
	var cached []ClientSummary
	if hit, err := s.views.Get(ctx, key, &cached); err != nil {
		log.Printf("WARN: Roster cache read failed for %s: %v", key, err)
	} else if hit {
		return cached, nil
	}

	profiles, err := s.clientRepo.GetByCoachID(ctx, coach.ID)
	if err != nil {
		return nil, dbError("list clients", err)
	}
	roster, err := s.summarize(ctx, profiles)
	if err != nil {
		return nil, err
	}

	if err := s.views.Set(ctx, key, roster, s.viewTTL); err != nil {
		log.Printf("WARN: Roster cache write failed for %s: %v", key, err)
	}
	return roster, nil
}

// summarize joins client profiles with their users, keeping profile order.
func (s *coachService) summarize(ctx context.Context, profiles []domain.ClientProfile) ([]ClientSummary, error) {
	userIDs := make([]primitive.ObjectID, len(profiles))
	for i, p := range profiles {
		userIDs[i] = p.UserID
	}
	users, err := s.userRepo.GetByIDs(ctx, userIDs)
	if err != nil {
		return nil, dbError("load client users", err)
	}
	byID := make(map[primitive.ObjectID]domain.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}

	summaries := make([]ClientSummary, 0, len(profiles))
	for _, p := range profiles {
		u, ok := byID[p.UserID]
		if !ok {
			log.Printf("WARN: Client profile %s has no user %s", p.ID.Hex(), p.UserID.Hex())
			continue
		}
		summaries = append(summaries, ClientSummary{
			ProfileID: p.ID,
			UserID:    u.ID,
			Name:      u.Name,
			Email:     u.Email,
			Username:  u.Username,
			Code:      p.Code,
		})
	}
	return summaries, nil
}

func (s *coachService) GetClientDetail(ctx context.Context, actor domain.Actor, clientID primitive.ObjectID) (*ClientDetail, error) {
	coach, err := coachProfileOf(ctx, s.coachRepo, actor)
	if err != nil {
		return nil, err
	}
	client, err := s.linkedClient(ctx, coach, clientID)
	if err != nil {
		return nil, err
	}
	summaries, err := s.summarize(ctx, []domain.ClientProfile{*client})
	if err != nil {
		return nil, err
	}
	if len(summaries) == 0 {
		return nil, ErrUserNotFound
	}

	assignments, err := s.assignmentRepo.GetByClientID(ctx, client.ID, recentAssignmentsLimit)
	if err != nil {
		return nil, dbError("load assignments", err)
	}
	withWorkouts, err := attachWorkouts(ctx, s.workoutRepo, assignments)
	if err != nil {
		return nil, err
	}
	logs, err := s.progressRepo.GetByClientID(ctx, client.ID, recentProgressLimit)
	if err != nil {
		return nil, dbError("load progress logs", err)
	}

	return &ClientDetail{
		Client:       summaries[0],
		Assignments:  withWorkouts,
		ProgressLogs: progressEntries(logs),
	}, nil
}

// Dashboard returns the coach's headline numbers, cached for viewTTL.
func (s *coachService) Dashboard(ctx context.Context, actor domain.Actor) (*DashboardStats, error) {
	coach, err := coachProfileOf(ctx, s.coachRepo, actor)
	if err != nil {
		return nil, err
	}

	key := cache.DashboardKey(actor.UserID)
	var cached DashboardStats
	if hit, err := s.views.Get(ctx, key, &cached); err != nil {
		log.Printf("WARN: Dashboard cache read failed for %s: %v", key, err)
	} else if hit {
		return &cached, nil
	}

	user, err := s.userRepo.GetByID(ctx, actor.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, dbError("load coach", err)
	}
	clients, err := s.clientRepo.GetByCoachID(ctx, coach.ID)
	if err != nil {
		return nil, dbError("list clients", err)
	}
	stats := &DashboardStats{
		ActiveClients: int64(len(clients)),
		Username:      user.Username,
		Code:          coach.Code,
	}
	if len(clients) > 0 {
		ids := make([]primitive.ObjectID, len(clients))
		for i, c := range clients {
			ids[i] = c.ID
		}
		if stats.PendingCheckIns, err = s.assignmentRepo.CountPending(ctx, ids, s.now().UTC()); err != nil {
			return nil, dbError("count pending assignments", err)
		}
	}
	if stats.UnreadMessages, err = s.messageRepo.CountUnread(ctx, actor.UserID, nil); err != nil {
		return nil, dbError("count unread messages", err)
	}

	if err := s.views.Set(ctx, key, stats, s.viewTTL); err != nil {
		log.Printf("WARN: Dashboard cache write failed for %s: %v", key, err)
	}
	return stats, nil
}

// attachWorkouts resolves the workout of every assignment in one query.
func attachWorkouts(ctx context.Context, repo repository.WorkoutRepository, assignments []domain.WorkoutAssignment) ([]AssignedWorkout, error) {
	result := make([]AssignedWorkout, 0, len(assignments))
	if len(assignments) == 0 {
		return result, nil
	}
	ids := make([]primitive.ObjectID, 0, len(assignments))
	seen := make(map[primitive.ObjectID]bool, len(assignments))
	for _, a := range assignments {
		if !seen[a.WorkoutID] {
			seen[a.WorkoutID] = true
			ids = append(ids, a.WorkoutID)
		}
	}
	workouts, err := repo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, dbError("load workouts", err)
	}
	byID := make(map[primitive.ObjectID]*domain.Workout, len(workouts))
	for i := range workouts {
		byID[workouts[i].ID] = &workouts[i]
	}
	for _, a := range assignments {
		result = append(result, AssignedWorkout{WorkoutAssignment: a, Workout: byID[a.WorkoutID]})
	}
	return result, nil
}
