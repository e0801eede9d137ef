package api

import (
	"alcyxob/coach-app/internal/domain"
	"alcyxob/coach-app/internal/service"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CoachHandler struct {
	coachService service.CoachService
}

func NewCoachHandler(coachService service.CoachService) *CoachHandler {
	return &CoachHandler{coachService: coachService}
}

// --- DTOs ---

type CreateWorkoutRequest struct {
	Title       string                 `json:"title" binding:"required"`
	Description string                 `json:"description"`
	Exercises   []domain.ExerciseEntry `json:"exercises"`
}

type AssignWorkoutRequest struct {
	WorkoutID string `json:"workoutId" binding:"required"`
	ClientID  string `json:"clientId" binding:"required"`
	Date      string `json:"date" binding:"required"` // YYYY-MM-DD
}

// MealPlanRequest is decoded strictly: unknown fields are rejected so a
// typo in the content structure does not silently drop data.
type MealPlanRequest struct {
	Title   string                 `json:"title"`
	Content domain.MealPlanContent `json:"content"`
}

// --- Workouts ---

// CreateWorkout godoc
// @Summary Create a workout template
// @Tags Coach
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param workout body CreateWorkoutRequest true "Workout"
// @Success 201 {object} domain.Workout
// @Failure 400 {object} gin.H "Validation error"
// @Router /coach/workouts [post]
func (h *CoachHandler) CreateWorkout(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}
	var req CreateWorkoutRequest
	if !bindJSON(c, &req) {
		return
	}

	workout, err := h.coachService.CreateWorkout(c.Request.Context(), actor, service.WorkoutInput{
		Title:       req.Title,
		Description: req.Description,
		Exercises:   req.Exercises,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, workout)
}

func (h *CoachHandler) ListWorkouts(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}
	workouts, err := h.coachService.ListWorkouts(c.Request.Context(), actor)
	if err != nil {
		respondError(c, err)
		return
	}
	if workouts == nil {
		workouts = []domain.Workout{} // Return empty JSON array, not null
	}
	c.JSON(http.StatusOK, workouts)
}

func (h *CoachHandler) GetWorkout(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}
	workoutID, ok := objectIDParam(c, "workoutId")
	if !ok {
		return
	}
	workout, err := h.coachService.GetWorkout(c.Request.Context(), actor, workoutID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, workout)
}

func (h *CoachHandler) DeleteWorkout(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}
	workoutID, ok := objectIDParam(c, "workoutId")
	if !ok {
		return
	}
	if err := h.coachService.DeleteWorkout(c.Request.Context(), actor, workoutID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// SearchWorkouts godoc
// @Summary Search-as-you-type over the coach's workout titles
// @Tags Coach
// @Produce json
// @Security BearerAuth
// @Param q query string false "Title fragment"
// @Success 200 {array} service.WorkoutSummary
// @Router /coach/workouts/search [get]
func (h *CoachHandler) SearchWorkouts(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}
	results, err := h.coachService.SearchWorkouts(c.Request.Context(), actor, c.Query("q"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, results)
}

// AssignWorkout godoc
// @Summary Assign a workout to a linked client for a day
// @Tags Coach
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param assignment body AssignWorkoutRequest true "Assignment"
// @Success 201 {object} domain.WorkoutAssignment
// @Failure 400 {object} gin.H "Invalid IDs or date"
// @Failure 403 {object} gin.H "Workout or client belongs to another coach"
// @Router /coach/assignments [post]
func (h *CoachHandler) AssignWorkout(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}
	var req AssignWorkoutRequest
	if !bindJSON(c, &req) {
		return
	}
	workoutID, err := primitive.ObjectIDFromHex(req.WorkoutID)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid workoutId format.")
		return
	}
	clientID, err := primitive.ObjectIDFromHex(req.ClientID)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid clientId format.")
		return
	}

	assignment, err := h.coachService.AssignWorkout(c.Request.Context(), actor, workoutID, clientID, req.Date)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, assignment)
}

// --- Meal plans ---

func (h *CoachHandler) CreateMealPlan(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}
	var req MealPlanRequest
	if !decodeStrict(c, &req) {
		return
	}
	plan, err := h.coachService.CreateMealPlan(c.Request.Context(), actor, service.MealPlanInput{Title: req.Title, Content: req.Content})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, plan)
}

func (h *CoachHandler) UpdateMealPlan(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}
	planID, ok := objectIDParam(c, "planId")
	if !ok {
		return
	}
	var req MealPlanRequest
	if !decodeStrict(c, &req) {
		return
	}
	plan, err := h.coachService.UpdateMealPlan(c.Request.Context(), actor, planID, service.MealPlanInput{Title: req.Title, Content: req.Content})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, plan)
}

func (h *CoachHandler) ListMealPlans(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}
	plans, err := h.coachService.ListMealPlans(c.Request.Context(), actor)
	if err != nil {
		respondError(c, err)
		return
	}
	if plans == nil {
		plans = []domain.MealPlan{}
	}
	c.JSON(http.StatusOK, plans)
}

func (h *CoachHandler) GetMealPlan(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}
	planID, ok := objectIDParam(c, "planId")
	if !ok {
		return
	}
	plan, err := h.coachService.GetMealPlan(c.Request.Context(), actor, planID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, plan)
}

func (h *CoachHandler) DeleteMealPlan(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}
	planID, ok := objectIDParam(c, "planId")
	if !ok {
		return
	}
	if err := h.coachService.DeleteMealPlan(c.Request.Context(), actor, planID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// --- Roster ---

// GetClients godoc
// @Summary Get the coach's linked clients
// @Tags Coach
// @Produce json
// @Security BearerAuth
// @Success 200 {array} service.ClientSummary
// @Router /coach/clients [get]
func (h *CoachHandler) GetClients(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}
	clients, err := h.coachService.ListClients(c.Request.Context(), actor)
	if err != nil {
		respondError(c, err)
		return
	}
	if clients == nil {
		clients = []service.ClientSummary{}
	}
	c.JSON(http.StatusOK, clients)
}

func (h *CoachHandler) GetClientDetail(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}
	clientID, ok := objectIDParam(c, "clientId")
	if !ok {
		return
	}
	detail, err := h.coachService.GetClientDetail(c.Request.Context(), actor, clientID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

// Dashboard godoc
// @Summary Headline numbers for the coach dashboard
// @Tags Coach
// @Produce json
// @Security BearerAuth
// @Success 200 {object} service.DashboardStats
// @Router /coach/dashboard [get]
func (h *CoachHandler) Dashboard(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}
	stats, err := h.coachService.Dashboard(c.Request.Context(), actor)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func decodeStrict(c *gin.Context, dst interface{}) bool {
	dec := json.NewDecoder(c.Request.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return false
	}
	return true
}
