package api

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"alcyxob/gym-buddy/internal/domain"
	"alcyxob/gym-buddy/internal/repository"
	"alcyxob/gym-buddy/internal/service"
	"alcyxob/gym-buddy/internal/validation"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WorkoutHandler holds the workout service dependency.
type WorkoutHandler struct {
	workoutService service.WorkoutService
}

// NewWorkoutHandler creates a new WorkoutHandler.
func NewWorkoutHandler(workoutService service.WorkoutService) *WorkoutHandler {
	return &WorkoutHandler{workoutService: workoutService}
}

// --- DTOs for API (Data Transfer Objects) ---

// WorkoutSummaryResponse is one entry of the list endpoint.
type WorkoutSummaryResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Category    string    `json:"category"`
	IsFavorite  bool      `json:"isFavorite"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ExerciseResponse is the DTO for returning exercise details.
type ExerciseResponse struct {
	ID        string    `json:"id"`
	WorkoutID string    `json:"workoutId"`
	Name      string    `json:"name"`
	Reps      *int      `json:"reps,omitempty"`
	Sets      *int      `json:"sets,omitempty"`
	Duration  string    `json:"duration,omitempty"`
	Notes     string    `json:"notes,omitempty"`
	Order     int       `json:"order"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// WorkoutResponse is the full workout representation returned after writes
// and fetches: identity fields, aggregates and the ordered exercise list.
type WorkoutResponse struct {
	ID              string             `json:"id"`
	Name            string             `json:"name"`
	Description     string             `json:"description,omitempty"`
	Category        string             `json:"category"`
	IsFavorite      bool               `json:"isFavorite"`
	ExerciseCount   int                `json:"exerciseCount"`
	CompletionCount int64              `json:"completionCount"`
	LastCompleted   *time.Time         `json:"lastCompleted"`
	Exercises       []ExerciseResponse `json:"exercises"`
	CreatedAt       time.Time          `json:"createdAt"`
	UpdatedAt       time.Time          `json:"updatedAt"`
}

// WorkoutDetailResponse adds the full completion history to WorkoutResponse.
type WorkoutDetailResponse struct {
	WorkoutResponse
	Completions []CompletionResponse `json:"completions"`
}

// CompletionResponse is the DTO for one completion record.
type CompletionResponse struct {
	ID          string    `json:"id"`
	WorkoutID   string    `json:"workoutId"`
	CompletedAt time.Time `json:"completedAt"`
	Notes       *string   `json:"notes"`
	Duration    *int      `json:"duration"`
}

// PaginationResponse describes one page of a listing.
type PaginationResponse struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int64 `json:"totalPages"`
}

// ListWorkoutsResponse is the envelope of the list endpoint.
type ListWorkoutsResponse struct {
	Data       []WorkoutSummaryResponse `json:"data"`
	Pagination PaginationResponse       `json:"pagination"`
}

func mapWorkoutSummary(w *domain.Workout) WorkoutSummaryResponse {
	return WorkoutSummaryResponse{
		ID:          w.ID.Hex(),
		Name:        w.Name,
		Description: w.Description,
		Category:    w.Category,
		IsFavorite:  w.IsFavorite,
		CreatedAt:   w.CreatedAt,
		UpdatedAt:   w.UpdatedAt,
	}
}

func mapExercise(ex *domain.Exercise) ExerciseResponse {
	return ExerciseResponse{
		ID:        ex.ID.Hex(),
		WorkoutID: ex.WorkoutID.Hex(),
		Name:      ex.Name,
		Reps:      ex.Reps,
		Sets:      ex.Sets,
		Duration:  ex.Duration,
		Notes:     ex.Notes,
		Order:     ex.Order,
		CreatedAt: ex.CreatedAt,
		UpdatedAt: ex.UpdatedAt,
	}
}

func mapWorkoutView(view *service.WorkoutView) WorkoutResponse {
	exercises := make([]ExerciseResponse, len(view.Exercises))
	for i := range view.Exercises {
		exercises[i] = mapExercise(&view.Exercises[i])
	}
	return WorkoutResponse{
		ID:              view.Workout.ID.Hex(),
		Name:            view.Workout.Name,
		Description:     view.Workout.Description,
		Category:        view.Workout.Category,
		IsFavorite:      view.Workout.IsFavorite,
		ExerciseCount:   len(view.Exercises),
		CompletionCount: view.CompletionCount,
		LastCompleted:   view.LastCompleted,
		Exercises:       exercises,
		CreatedAt:       view.Workout.CreatedAt,
		UpdatedAt:       view.Workout.UpdatedAt,
	}
}

func mapCompletion(c *domain.WorkoutCompletion) CompletionResponse {
	var notes *string
	if c.Notes != "" {
		notes = &c.Notes
	}
	return CompletionResponse{
		ID:          c.ID.Hex(),
		WorkoutID:   c.WorkoutID.Hex(),
		CompletedAt: c.CompletedAt,
		Notes:       notes,
		Duration:    c.Duration,
	}
}

// --- Handler Methods ---

// ListWorkouts handles GET /workouts with filtering and pagination.
func (h *WorkoutHandler) ListWorkouts(c *gin.Context) {
	filter := repository.WorkoutFilter{
		Category: strings.ToLower(strings.TrimSpace(c.Query("category"))),
		Search:   strings.TrimSpace(c.Query("search")),
	}
	if fav := c.Query("favorite"); fav != "" {
		v := fav == "true"
		filter.Favorite = &v
	}
	filter.Page, _ = strconv.Atoi(c.Query("page"))
	filter.Limit, _ = strconv.Atoi(c.Query("limit"))

	page, err := h.workoutService.List(c.Request.Context(), filter)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	data := make([]WorkoutSummaryResponse, len(page.Workouts))
	for i := range page.Workouts {
		data[i] = mapWorkoutSummary(&page.Workouts[i])
	}
	totalPages := (page.Total + int64(page.Limit) - 1) / int64(page.Limit)
	c.JSON(http.StatusOK, ListWorkoutsResponse{
		Data: data,
		Pagination: PaginationResponse{
			Page:       page.Page,
			Limit:      page.Limit,
			Total:      page.Total,
			TotalPages: totalPages,
		},
	})
}

// CreateWorkout handles POST /workouts.
func (h *WorkoutHandler) CreateWorkout(c *gin.Context) {
	var payload validation.WorkoutPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, errorCategoryValidation, "Invalid request body.", nil)
		return
	}

	view, err := h.workoutService.Create(c.Request.Context(), payload)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, mapWorkoutView(view))
}

// GetWorkout handles GET /workouts/:id.
func (h *WorkoutHandler) GetWorkout(c *gin.Context) {
	id, ok := workoutIDParam(c)
	if !ok {
		return
	}
	detail, err := h.workoutService.Get(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	resp := WorkoutDetailResponse{
		WorkoutResponse: mapWorkoutView(&detail.WorkoutView),
		Completions:     make([]CompletionResponse, len(detail.Completions)),
	}
	for i := range detail.Completions {
		resp.Completions[i] = mapCompletion(&detail.Completions[i])
	}
	c.JSON(http.StatusOK, resp)
}

// UpdateWorkout handles PUT /workouts/:id, including exercise reconciliation.
func (h *WorkoutHandler) UpdateWorkout(c *gin.Context) {
	id, ok := workoutIDParam(c)
	if !ok {
		return
	}
	var payload validation.WorkoutPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, errorCategoryValidation, "Invalid request body.", nil)
		return
	}

	view, err := h.workoutService.Update(c.Request.Context(), id, payload)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapWorkoutView(view))
}

// DeleteWorkout handles DELETE /workouts/:id.
func (h *WorkoutHandler) DeleteWorkout(c *gin.Context) {
	id, ok := workoutIDParam(c)
	if !ok {
		return
	}
	if err := h.workoutService.Delete(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ToggleFavorite handles PATCH /workouts/:id/favorite.
func (h *WorkoutHandler) ToggleFavorite(c *gin.Context) {
	id, ok := workoutIDParam(c)
	if !ok {
		return
	}
	view, err := h.workoutService.ToggleFavorite(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapWorkoutView(view))
}

// CompleteWorkout handles POST /workouts/:id/complete.
func (h *WorkoutHandler) CompleteWorkout(c *gin.Context) {
	id, ok := workoutIDParam(c)
	if !ok {
		return
	}
	var payload validation.CompletionPayload
	// A complete action may arrive with an empty body.
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&payload); err != nil {
			respondError(c, http.StatusBadRequest, errorCategoryValidation, "Invalid request body.", nil)
			return
		}
	}

	completion, err := h.workoutService.Complete(c.Request.Context(), id, payload)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, mapCompletion(completion))
}

// workoutIDParam parses the :id path parameter. A malformed id can never
// reference a workout, so it reports not found.
func workoutIDParam(c *gin.Context) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusNotFound, errorCategoryNotFound, "Workout not found.", nil)
		return primitive.NilObjectID, false
	}
	return id, true
}

// respondServiceError maps service-layer failures to the error taxonomy.
func respondServiceError(c *gin.Context, err error) {
	var verr *validation.Error
	switch {
	case errors.As(err, &verr):
		respondError(c, http.StatusBadRequest, errorCategoryValidation, "Validation failed.", verr.Fields)
	case errors.Is(err, service.ErrWorkoutNotFound):
		respondError(c, http.StatusNotFound, errorCategoryNotFound, "Workout not found.", nil)
	case errors.Is(err, service.ErrExerciseNotFound):
		respondError(c, http.StatusNotFound, errorCategoryNotFound, "Exercise not found.", nil)
	case errors.Is(err, repository.ErrConflict):
		respondError(c, http.StatusConflict, errorCategoryConflict, "The request conflicts with existing data.", nil)
	default:
		logrus.WithError(err).WithField("path", c.FullPath()).Error("request failed")
		respondError(c, http.StatusInternalServerError, errorCategoryInternal, "Internal server error.", nil)
	}
}
