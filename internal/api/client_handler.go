package api

import (
	"alcyxob/coach-app/internal/service"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type ClientHandler struct {
	clientService service.ClientService
}

func NewClientHandler(clientService service.ClientService) *ClientHandler {
	return &ClientHandler{clientService: clientService}
}

// --- DTOs ---

type ToggleMealRequest struct {
	Meal string `json:"meal" binding:"required"`
}

type DailyLogRequest struct {
	Content string `json:"content"`
}

type WorkoutStatusRequest struct {
	Completed *bool `json:"completed" binding:"required"`
}

type WorkoutFeedbackRequest struct {
	Feedback string `json:"feedback"`
}

type LogProgressRequest struct {
	Weight float64 `json:"weight" binding:"required,gt=0"`
	Notes  string  `json:"notes"`
}

type PhotoUploadRequest struct {
	ContentType string `json:"contentType" binding:"required"`
}

type PhotoConfirmRequest struct {
	ObjectKey string `json:"objectKey" binding:"required"`
}

// --- Home & meals ---

// Home godoc
// @Summary Today's workout, meals and coach for the client
// @Tags Client
// @Produce json
// @Security BearerAuth
// @Success 200 {object} service.HomeView
// @Router /client/home [get]
func (h *ClientHandler) Home(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}
	view, err := h.clientService.Home(c.Request.Context(), actor)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// DailyMeals returns (creating if needed) the meal assignment of ?date=,
// today by default.
func (h *ClientHandler) DailyMeals(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}
	date := time.Now()
	if raw := c.Query("date"); raw != "" {
		parsed, err := time.Parse(service.DateLayout, raw)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, "date must be formatted as YYYY-MM-DD")
			return
		}
		date = parsed
	}

	assignment, err := h.clientService.DailyMeals(c.Request.Context(), actor, date)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, assignment)
}

func (h *ClientHandler) ToggleMeal(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}
	assignmentID, ok := objectIDParam(c, "assignmentId")
	if !ok {
		return
	}
	var req ToggleMealRequest
	if !bindJSON(c, &req) {
		return
	}
	assignment, err := h.clientService.ToggleMealCompletion(c.Request.Context(), actor, assignmentID, req.Meal)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, assignment)
}

func (h *ClientHandler) UpdateDailyLog(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}
	assignmentID, ok := objectIDParam(c, "assignmentId")
	if !ok {
		return
	}
	var req DailyLogRequest
	if !bindJSON(c, &req) {
		return
	}
	assignment, err := h.clientService.UpdateDailyMealLog(c.Request.Context(), actor, assignmentID, req.Content)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, assignment)
}

// --- Workouts ---

// UpdateWorkoutStatus godoc
// @Summary Mark an assigned workout done or not done
// @Tags Client
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param assignmentId path string true "Assignment's ObjectID Hex"
// @Param status body WorkoutStatusRequest true "Completion flag"
// @Success 200 {object} domain.WorkoutAssignment
// @Failure 403 {object} gin.H "Assignment belongs to another client"
// @Router /client/workouts/{assignmentId}/status [patch]
func (h *ClientHandler) UpdateWorkoutStatus(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}
	assignmentID, ok := objectIDParam(c, "assignmentId")
	if !ok {
		return
	}
	var req WorkoutStatusRequest
	if !bindJSON(c, &req) {
		return
	}
	assignment, err := h.clientService.ToggleWorkoutCompletion(c.Request.Context(), actor, assignmentID, *req.Completed)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, assignment)
}

func (h *ClientHandler) UpdateWorkoutFeedback(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}
	assignmentID, ok := objectIDParam(c, "assignmentId")
	if !ok {
		return
	}
	var req WorkoutFeedbackRequest
	if !bindJSON(c, &req) {
		return
	}
	assignment, err := h.clientService.UpdateWorkoutFeedback(c.Request.Context(), actor, assignmentID, req.Feedback)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, assignment)
}

func (h *ClientHandler) WorkoutHistory(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}
	history, err := h.clientService.WorkoutHistory(c.Request.Context(), actor)
	if err != nil {
		respondError(c, err)
		return
	}
	if history == nil {
		history = []service.AssignedWorkout{}
	}
	c.JSON(http.StatusOK, history)
}

// --- Progress ---

func (h *ClientHandler) LogProgress(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}
	var req LogProgressRequest
	if !bindJSON(c, &req) {
		return
	}
	entry, err := h.clientService.LogProgress(c.Request.Context(), actor, req.Weight, req.Notes)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, service.ProgressEntry{ProgressLog: *entry})
}

func (h *ClientHandler) ListProgress(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}
	entries, err := h.clientService.ListProgress(c.Request.Context(), actor)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

// RequestPhotoUpload godoc
// @Summary Get a pre-signed URL to upload a progress photo
// @Tags Client
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param logId path string true "Progress log's ObjectID Hex"
// @Param request body PhotoUploadRequest true "Image content type"
// @Success 200 {object} service.UploadURLResponse
// @Failure 400 {object} gin.H "Unsupported content type"
// @Failure 404 {object} gin.H "Progress log not found"
// @Router /client/progress/{logId}/photo/upload-url [post]
func (h *ClientHandler) RequestPhotoUpload(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}
	logID, ok := objectIDParam(c, "logId")
	if !ok {
		return
	}
	var req PhotoUploadRequest
	if !bindJSON(c, &req) {
		return
	}
	res, err := h.clientService.RequestProgressPhotoUpload(c.Request.Context(), actor, logID, req.ContentType)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *ClientHandler) ConfirmPhoto(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}
	logID, ok := objectIDParam(c, "logId")
	if !ok {
		return
	}
	var req PhotoConfirmRequest
	if !bindJSON(c, &req) {
		return
	}
	entry, err := h.clientService.ConfirmProgressPhoto(c.Request.Context(), actor, logID, req.ObjectKey)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, entry)
}

// PhotoURL is shared by the client and their coach.
func (h *ClientHandler) PhotoURL(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}
	logID, ok := objectIDParam(c, "logId")
	if !ok {
		return
	}
	url, err := h.clientService.ProgressPhotoURL(c.Request.Context(), actor, logID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"downloadUrl": url})
}
