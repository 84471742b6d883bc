package api

import (
	"net/http"

	"alcyxob/gym-buddy/internal/ratelimit"
	"alcyxob/gym-buddy/internal/service"

	"github.com/gin-gonic/gin"
)

// SetupRoutes registers the full REST surface on the router. The limiter is
// optional; pass nil to disable rate limiting.
func SetupRoutes(
	router *gin.Engine,
	workoutService service.WorkoutService,
	limiter ratelimit.Limiter,
) {
	workoutHandler := NewWorkoutHandler(workoutService)

	router.HandleMethodNotAllowed = true
	router.NoMethod(func(c *gin.Context) {
		respondError(c, http.StatusMethodNotAllowed, errorCategoryMethodNotAllowed, "Method not allowed.", nil)
	})
	router.NoRoute(func(c *gin.Context) {
		respondError(c, http.StatusNotFound, errorCategoryNotFound, "Route not found.", nil)
	})

	router.Use(RequestID())

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	workouts := router.Group("/workouts")
	if limiter != nil {
		workouts.Use(RateLimit(limiter))
	}
	{
		workouts.GET("", workoutHandler.ListWorkouts)
		workouts.POST("", workoutHandler.CreateWorkout)
		workouts.GET("/:id", workoutHandler.GetWorkout)
		workouts.PUT("/:id", workoutHandler.UpdateWorkout)
		workouts.DELETE("/:id", workoutHandler.DeleteWorkout)
		workouts.PATCH("/:id/favorite", workoutHandler.ToggleFavorite)
		workouts.POST("/:id/complete", workoutHandler.CompleteWorkout)
	}
}
