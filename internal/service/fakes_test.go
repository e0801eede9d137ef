package service

import (
	"alcyxob/coach-app/internal/domain"
	"alcyxob/coach-app/internal/repository"
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// store is an in-memory stand-in for the mongo repositories. Timestamps come
// from a monotonic clock so ordering by time is deterministic.
type store struct {
	mu    sync.Mutex
	clock time.Time

	users           map[primitive.ObjectID]domain.User
	coaches         map[primitive.ObjectID]domain.CoachProfile
	clients         map[primitive.ObjectID]domain.ClientProfile
	workouts        map[primitive.ObjectID]domain.Workout
	assignments     map[primitive.ObjectID]domain.WorkoutAssignment
	mealPlans       map[primitive.ObjectID]domain.MealPlan
	mealAssignments map[primitive.ObjectID]domain.MealAssignment
	progress        map[primitive.ObjectID]domain.ProgressLog
	messages        map[primitive.ObjectID]domain.Message

	// failProfileCreate makes the next profile insert fail.
	failProfileCreate error
}

func newStore() *store {
	return &store{
		clock:           time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC),
		users:           map[primitive.ObjectID]domain.User{},
		coaches:         map[primitive.ObjectID]domain.CoachProfile{},
		clients:         map[primitive.ObjectID]domain.ClientProfile{},
		workouts:        map[primitive.ObjectID]domain.Workout{},
		assignments:     map[primitive.ObjectID]domain.WorkoutAssignment{},
		mealPlans:       map[primitive.ObjectID]domain.MealPlan{},
		mealAssignments: map[primitive.ObjectID]domain.MealAssignment{},
		progress:        map[primitive.ObjectID]domain.ProgressLog{},
		messages:        map[primitive.ObjectID]domain.Message{},
	}
}

func (s *store) tick() time.Time {
	s.clock = s.clock.Add(time.Second)
	return s.clock
}

// --- users ---

type fakeUserRepo struct{ *store }

func (r fakeUserRepo) Create(_ context.Context, u *domain.User) (primitive.ObjectID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Email == u.Email || existing.Username == u.Username {
			return primitive.NilObjectID, repository.ErrDuplicateKey
		}
	}
	u.ID = primitive.NewObjectID()
	u.CreatedAt = r.tick()
	r.users[u.ID] = *u
	return u.ID, nil
}

func (r fakeUserRepo) find(match func(domain.User) bool) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if match(u) {
			u := u
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r fakeUserRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.User, error) {
	return r.find(func(u domain.User) bool { return u.ID == id })
}

func (r fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	return r.find(func(u domain.User) bool { return u.Email == email })
}

func (r fakeUserRepo) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	return r.find(func(u domain.User) bool { return u.Username == username })
}

func (r fakeUserRepo) GetByIDs(_ context.Context, ids []primitive.ObjectID) ([]domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []domain.User{}
	for _, id := range ids {
		if u, ok := r.users[id]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r fakeUserRepo) UsernameExists(ctx context.Context, username string) (bool, error) {
	_, err := r.GetByUsername(ctx, username)
	return err == nil, nil
}

func (r fakeUserRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.users, id)
	return nil
}

// --- profiles ---

type fakeCoachRepo struct{ *store }

func (r fakeCoachRepo) Create(_ context.Context, p *domain.CoachProfile) (primitive.ObjectID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.failProfileCreate; err != nil {
		r.failProfileCreate = nil
		return primitive.NilObjectID, err
	}
	for _, existing := range r.coaches {
		if existing.Code == p.Code || existing.UserID == p.UserID {
			return primitive.NilObjectID, repository.ErrDuplicateKey
		}
	}
	p.ID = primitive.NewObjectID()
	p.CreatedAt = r.tick()
	r.coaches[p.ID] = *p
	return p.ID, nil
}

func (r fakeCoachRepo) find(match func(domain.CoachProfile) bool) (*domain.CoachProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.coaches {
		if match(p) {
			p := p
			return &p, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r fakeCoachRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.CoachProfile, error) {
	return r.find(func(p domain.CoachProfile) bool { return p.ID == id })
}

func (r fakeCoachRepo) GetByUserID(_ context.Context, userID primitive.ObjectID) (*domain.CoachProfile, error) {
	return r.find(func(p domain.CoachProfile) bool { return p.UserID == userID })
}

func (r fakeCoachRepo) GetByCode(_ context.Context, code string) (*domain.CoachProfile, error) {
	return r.find(func(p domain.CoachProfile) bool { return p.Code == code })
}

func (r fakeCoachRepo) CodeExists(ctx context.Context, code string) (bool, error) {
	_, err := r.GetByCode(ctx, code)
	return err == nil, nil
}

type fakeClientRepo struct{ *store }

func (r fakeClientRepo) Create(_ context.Context, p *domain.ClientProfile) (primitive.ObjectID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.failProfileCreate; err != nil {
		r.failProfileCreate = nil
		return primitive.NilObjectID, err
	}
	for _, existing := range r.clients {
		if existing.Code == p.Code || existing.UserID == p.UserID {
			return primitive.NilObjectID, repository.ErrDuplicateKey
		}
	}
	p.ID = primitive.NewObjectID()
	p.CreatedAt = r.tick()
	r.clients[p.ID] = *p
	return p.ID, nil
}

func (r fakeClientRepo) find(match func(domain.ClientProfile) bool) (*domain.ClientProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.clients {
		if match(p) {
			p := p
			return &p, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r fakeClientRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.ClientProfile, error) {
	return r.find(func(p domain.ClientProfile) bool { return p.ID == id })
}

func (r fakeClientRepo) GetByUserID(_ context.Context, userID primitive.ObjectID) (*domain.ClientProfile, error) {
	return r.find(func(p domain.ClientProfile) bool { return p.UserID == userID })
}

func (r fakeClientRepo) GetByCode(_ context.Context, code string) (*domain.ClientProfile, error) {
	return r.find(func(p domain.ClientProfile) bool { return p.Code == code })
}

func (r fakeClientRepo) CodeExists(ctx context.Context, code string) (bool, error) {
	_, err := r.GetByCode(ctx, code)
	return err == nil, nil
}

func (r fakeClientRepo) SetCoachIfUnset(_ context.Context, clientID, coachID primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.clients[clientID]
	if !ok {
		return repository.ErrNotFound
	}
	if p.CoachID != nil {
		return repository.ErrNotModified
	}
	p.CoachID = &coachID
	r.clients[clientID] = p
	return nil
}

func (r fakeClientRepo) GetByCoachID(_ context.Context, coachID primitive.ObjectID) ([]domain.ClientProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []domain.ClientProfile{}
	for _, p := range r.clients {
		if p.CoachID != nil && *p.CoachID == coachID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r fakeClientRepo) CountByCoachID(ctx context.Context, coachID primitive.ObjectID) (int64, error) {
	clients, _ := r.GetByCoachID(ctx, coachID)
	return int64(len(clients)), nil
}

// --- workouts ---

type fakeWorkoutRepo struct{ *store }

func (r fakeWorkoutRepo) Create(_ context.Context, w *domain.Workout) (primitive.ObjectID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	w.ID = primitive.NewObjectID()
	w.CreatedAt = r.tick()
	r.workouts[w.ID] = *w
	return w.ID, nil
}

func (r fakeWorkoutRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Workout, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	w, ok := r.workouts[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &w, nil
}

func (r fakeWorkoutRepo) GetByIDs(_ context.Context, ids []primitive.ObjectID) ([]domain.Workout, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []domain.Workout{}
	for _, id := range ids {
		if w, ok := r.workouts[id]; ok {
			out = append(out, w)
		}
	}
	return out, nil
}

func (r fakeWorkoutRepo) list(match func(domain.Workout) bool) []domain.Workout {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []domain.Workout{}
	for _, w := range r.workouts {
		if match(w) {
			out = append(out, w)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (r fakeWorkoutRepo) GetByCoachID(_ context.Context, coachID primitive.ObjectID) ([]domain.Workout, error) {
	return r.list(func(w domain.Workout) bool { return w.CoachID == coachID }), nil
}

func (r fakeWorkoutRepo) SearchByTitle(_ context.Context, coachID primitive.ObjectID, query string, limit int64) ([]domain.Workout, error) {
	q := strings.ToLower(query)
	out := r.list(func(w domain.Workout) bool {
		return w.CoachID == coachID && strings.Contains(strings.ToLower(w.Title), q)
	})
	if limit > 0 && int64(len(out)) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r fakeWorkoutRepo) Delete(_ context.Context, id, coachID primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	w, ok := r.workouts[id]
	if !ok || w.CoachID != coachID {
		return repository.ErrNotFound
	}
	delete(r.workouts, id)
	return nil
}

// --- workout assignments ---

type fakeAssignmentRepo struct{ *store }

func (r fakeAssignmentRepo) Create(_ context.Context, a *domain.WorkoutAssignment) (primitive.ObjectID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a.ID = primitive.NewObjectID()
	a.CreatedAt = r.tick()
	a.Date = domain.DayStart(a.Date)
	r.assignments[a.ID] = *a
	return a.ID, nil
}

func (r fakeAssignmentRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.WorkoutAssignment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.assignments[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &a, nil
}

func (r fakeAssignmentRepo) GetByClientID(_ context.Context, clientID primitive.ObjectID, limit int64) ([]domain.WorkoutAssignment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []domain.WorkoutAssignment{}
	for _, a := range r.assignments {
		if a.ClientID == clientID {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	if limit > 0 && int64(len(out)) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r fakeAssignmentRepo) FindInRange(_ context.Context, clientID primitive.ObjectID, from, to time.Time) (*domain.WorkoutAssignment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.assignments {
		if a.ClientID == clientID && !a.Date.Before(from) && a.Date.Before(to) {
			return &a, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r fakeAssignmentRepo) update(id primitive.ObjectID, apply func(*domain.WorkoutAssignment)) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.assignments[id]
	if !ok {
		return repository.ErrNotFound
	}
	apply(&a)
	r.assignments[id] = a
	return nil
}

func (r fakeAssignmentRepo) SetCompleted(_ context.Context, id primitive.ObjectID, completed bool) error {
	return r.update(id, func(a *domain.WorkoutAssignment) { a.Completed = completed })
}

func (r fakeAssignmentRepo) SetFeedback(_ context.Context, id primitive.ObjectID, feedback string) error {
	return r.update(id, func(a *domain.WorkoutAssignment) { a.Feedback = feedback })
}

func (r fakeAssignmentRepo) CountPending(_ context.Context, clientIDs []primitive.ObjectID, dueBy time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ids := map[primitive.ObjectID]bool{}
	for _, id := range clientIDs {
		ids[id] = true
	}
	var n int64
	for _, a := range r.assignments {
		if ids[a.ClientID] && !a.Completed && !a.Date.After(dueBy) {
			n++
		}
	}
	return n, nil
}

// --- meal plans ---

type fakeMealPlanRepo struct{ *store }

func (r fakeMealPlanRepo) Create(_ context.Context, p *domain.MealPlan) (primitive.ObjectID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p.ID = primitive.NewObjectID()
	p.CreatedAt = r.tick()
	p.UpdatedAt = p.CreatedAt
	r.mealPlans[p.ID] = *p
	return p.ID, nil
}

func (r fakeMealPlanRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.MealPlan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.mealPlans[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &p, nil
}

func (r fakeMealPlanRepo) GetByCoachID(_ context.Context, coachID primitive.ObjectID) ([]domain.MealPlan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []domain.MealPlan{}
	for _, p := range r.mealPlans {
		if p.CoachID == coachID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].UpdatedAt.Equal(out[j].UpdatedAt) {
			return out[i].ID.Hex() < out[j].ID.Hex()
		}
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
	})
	return out, nil
}

func (r fakeMealPlanRepo) LatestByCoachID(ctx context.Context, coachID primitive.ObjectID) (*domain.MealPlan, error) {
	plans, _ := r.GetByCoachID(ctx, coachID)
	if len(plans) == 0 {
		return nil, repository.ErrNotFound
	}
	return &plans[0], nil
}

func (r fakeMealPlanRepo) Update(_ context.Context, p *domain.MealPlan) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.mealPlans[p.ID]
	if !ok || existing.CoachID != p.CoachID {
		return repository.ErrNotFound
	}
	p.UpdatedAt = r.tick()
	r.mealPlans[p.ID] = *p
	return nil
}

func (r fakeMealPlanRepo) Delete(_ context.Context, id, coachID primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.mealPlans[id]
	if !ok || p.CoachID != coachID {
		return repository.ErrNotFound
	}
	delete(r.mealPlans, id)
	return nil
}

// --- meal assignments ---

type fakeMealAssignmentRepo struct{ *store }

func (r fakeMealAssignmentRepo) Create(_ context.Context, a *domain.MealAssignment) (primitive.ObjectID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a.Date = domain.DayStart(a.Date)
	for _, existing := range r.mealAssignments {
		if existing.ClientID == a.ClientID && existing.Date.Equal(a.Date) {
			return primitive.NilObjectID, repository.ErrDuplicateKey
		}
	}
	a.ID = primitive.NewObjectID()
	a.CreatedAt = r.tick()
	if a.CompletedMeals == nil {
		a.CompletedMeals = []string{}
	}
	r.mealAssignments[a.ID] = *a
	return a.ID, nil
}

func (r fakeMealAssignmentRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.MealAssignment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.mealAssignments[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	a.CompletedMeals = append([]string{}, a.CompletedMeals...)
	return &a, nil
}

func (r fakeMealAssignmentRepo) FindInRange(_ context.Context, clientID primitive.ObjectID, from, to time.Time) (*domain.MealAssignment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.mealAssignments {
		if a.ClientID == clientID && !a.Date.Before(from) && a.Date.Before(to) {
			a.CompletedMeals = append([]string{}, a.CompletedMeals...)
			return &a, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r fakeMealAssignmentRepo) AddCompletedMeal(_ context.Context, id primitive.ObjectID, meal string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.mealAssignments[id]
	if !ok {
		return repository.ErrNotFound
	}
	if a.IsMealCompleted(meal) {
		return repository.ErrNotModified
	}
	a.CompletedMeals = append(append([]string{}, a.CompletedMeals...), meal)
	r.mealAssignments[id] = a
	return nil
}

func (r fakeMealAssignmentRepo) RemoveCompletedMeal(_ context.Context, id primitive.ObjectID, meal string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.mealAssignments[id]
	if !ok {
		return repository.ErrNotFound
	}
	if !a.IsMealCompleted(meal) {
		return repository.ErrNotModified
	}
	kept := []string{}
	for _, m := range a.CompletedMeals {
		if m != meal {
			kept = append(kept, m)
		}
	}
	a.CompletedMeals = kept
	r.mealAssignments[id] = a
	return nil
}

func (r fakeMealAssignmentRepo) SetCustomContent(_ context.Context, id primitive.ObjectID, content string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.mealAssignments[id]
	if !ok {
		return repository.ErrNotFound
	}
	a.CustomContent = content
	r.mealAssignments[id] = a
	return nil
}

// --- progress ---

type fakeProgressRepo struct{ *store }

func (r fakeProgressRepo) Create(_ context.Context, l *domain.ProgressLog) (primitive.ObjectID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	l.ID = primitive.NewObjectID()
	if l.Date.IsZero() {
		l.Date = r.tick()
	}
	r.progress[l.ID] = *l
	return l.ID, nil
}

func (r fakeProgressRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.ProgressLog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.progress[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &l, nil
}

func (r fakeProgressRepo) GetByClientID(_ context.Context, clientID primitive.ObjectID, limit int64) ([]domain.ProgressLog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []domain.ProgressLog{}
	for _, l := range r.progress {
		if l.ClientID == clientID {
			out = append(out, l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	if limit > 0 && int64(len(out)) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r fakeProgressRepo) SetPhotoKey(_ context.Context, id primitive.ObjectID, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.progress[id]
	if !ok {
		return repository.ErrNotFound
	}
	l.PhotoKey = key
	r.progress[id] = l
	return nil
}

// --- messages ---

type fakeMessageRepo struct{ *store }

func (r fakeMessageRepo) Create(_ context.Context, m *domain.Message) (primitive.ObjectID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m.ID = primitive.NewObjectID()
	m.CreatedAt = r.tick()
	m.Read = false
	r.messages[m.ID] = *m
	return m.ID, nil
}

func (r fakeMessageRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.messages[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &m, nil
}

func (r fakeMessageRepo) Conversation(_ context.Context, a, b primitive.ObjectID, offset, limit int64) ([]domain.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []domain.Message{}
	for _, m := range r.messages {
		if (m.SenderID == a && m.ReceiverID == b) || (m.SenderID == b && m.ReceiverID == a) {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	end := int64(len(out)) - offset
	if end <= 0 {
		return []domain.Message{}, nil
	}
	start := int64(0)
	if limit > 0 && end-limit > 0 {
		start = end - limit
	}
	return out[start:end], nil
}

func (r fakeMessageRepo) MarkRead(_ context.Context, id, receiverID primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.messages[id]
	if !ok || m.ReceiverID != receiverID {
		return repository.ErrNotFound
	}
	m.Read = true
	r.messages[id] = m
	return nil
}

func (r fakeMessageRepo) CountUnread(_ context.Context, receiverID primitive.ObjectID, senderID *primitive.ObjectID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, m := range r.messages {
		if m.ReceiverID == receiverID && !m.Read && (senderID == nil || m.SenderID == *senderID) {
			n++
		}
	}
	return n, nil
}

// --- view cache ---

// memoryCache records invalidations and stores raw values by key.
type memoryCache struct {
	mu          sync.Mutex
	values      map[string]interface{}
	invalidated []string
}

func newMemoryCache() *memoryCache {
	return &memoryCache{values: map[string]interface{}{}}
}

func (c *memoryCache) Get(_ context.Context, key string, dst interface{}) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.values[key]
	if !ok {
		return false, nil
	}
	switch d := dst.(type) {
	case *DashboardStats:
		*d = *(v.(*DashboardStats))
	case *[]ClientSummary:
		*d = v.([]ClientSummary)
	default:
		return false, nil
	}
	return true, nil
}

func (c *memoryCache) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.values[key] = value
	return nil
}

func (c *memoryCache) Invalidate(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.values, k)
		c.invalidated = append(c.invalidated, k)
	}
	return nil
}

// --- file storage ---

type fakeStorage struct {
	deleted []string
	// failPresign makes every presign call fail.
	failPresign error
}

func (f *fakeStorage) GeneratePresignedUploadURL(_ context.Context, key, _ string, _ time.Duration) (string, error) {
	if f.failPresign != nil {
		return "", f.failPresign
	}
	return "https://uploads.example/" + key, nil
}

func (f *fakeStorage) GeneratePresignedDownloadURL(_ context.Context, key string, _ time.Duration) (string, error) {
	if f.failPresign != nil {
		return "", f.failPresign
	}
	return "https://downloads.example/" + key, nil
}

func (f *fakeStorage) DeleteObject(_ context.Context, key string) error {
	f.deleted = append(f.deleted, key)
	return nil
}
