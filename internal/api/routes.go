package api

import (
	"alcyxob/coach-app/internal/domain"
	"alcyxob/coach-app/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Services bundles what the HTTP layer needs.
type Services struct {
	Auth     service.AuthService
	Link     service.LinkService
	Coach    service.CoachService
	Client   service.ClientService
	Messages service.MessageService
}

func SetupRoutes(router *gin.Engine, jwtSecret string, services Services) {
	authHandler := NewAuthHandler(services.Auth)
	linkHandler := NewLinkHandler(services.Link)
	coachHandler := NewCoachHandler(services.Coach)
	clientHandler := NewClientHandler(services.Client)
	messageHandler := NewMessageHandler(services.Messages)
	catalogHandler := NewCatalogHandler()

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiV1 := router.Group("/api/v1")
	{
		authGroup := apiV1.Group("/auth")
		{
			authGroup.POST("/signup", authHandler.Signup)
			authGroup.POST("/login", authHandler.Login)
		}
	}

	protected := apiV1.Group("")
	protected.Use(AuthMiddleware(jwtSecret))
	{
		protected.GET("/me", authHandler.Me)

		// Coaches add clients, clients add a coach
		protected.POST("/links", linkHandler.Link)

		catalogGroup := protected.Group("/catalog")
		{
			catalogGroup.GET("/exercises", catalogHandler.SearchExercises)
			catalogGroup.GET("/foods", catalogHandler.SearchFoods)
		}

		messageGroup := protected.Group("/messages")
		{
			messageGroup.POST("", messageHandler.Send)
			messageGroup.GET("/inbox", messageHandler.Inbox)
			messageGroup.GET("/unread-count", messageHandler.UnreadCount)
			messageGroup.GET("/with/:userId", messageHandler.Conversation)
			messageGroup.PATCH("/:messageId/read", messageHandler.MarkRead)
		}

		// Owning client or their coach
		protected.GET("/progress/:logId/photo", clientHandler.PhotoURL)

		coachGroup := protected.Group("/coach")
		coachGroup.Use(RoleMiddleware(domain.RoleCoach))
		{
			coachGroup.GET("/dashboard", coachHandler.Dashboard)
			coachGroup.GET("/clients", coachHandler.GetClients)
			coachGroup.GET("/clients/:clientId", coachHandler.GetClientDetail)

			coachGroup.POST("/workouts", coachHandler.CreateWorkout)
			coachGroup.GET("/workouts", coachHandler.ListWorkouts)
			coachGroup.GET("/workouts/search", coachHandler.SearchWorkouts)
			coachGroup.GET("/workouts/:workoutId", coachHandler.GetWorkout)
			coachGroup.DELETE("/workouts/:workoutId", coachHandler.DeleteWorkout)
			coachGroup.POST("/assignments", coachHandler.AssignWorkout)

			coachGroup.POST("/meal-plans", coachHandler.CreateMealPlan)
			coachGroup.GET("/meal-plans", coachHandler.ListMealPlans)
			coachGroup.GET("/meal-plans/:planId", coachHandler.GetMealPlan)
			coachGroup.PUT("/meal-plans/:planId", coachHandler.UpdateMealPlan)
			coachGroup.DELETE("/meal-plans/:planId", coachHandler.DeleteMealPlan)
		}

		clientGroup := protected.Group("/client")
		clientGroup.Use(RoleMiddleware(domain.RoleClient))
		{
			clientGroup.GET("/home", clientHandler.Home)

			clientGroup.GET("/meals", clientHandler.DailyMeals)
			clientGroup.POST("/meals/:assignmentId/toggle", clientHandler.ToggleMeal)
			clientGroup.PUT("/meals/:assignmentId/log", clientHandler.UpdateDailyLog)

			clientGroup.GET("/workouts", clientHandler.WorkoutHistory)
			clientGroup.PATCH("/workouts/:assignmentId/status", clientHandler.UpdateWorkoutStatus)
			clientGroup.PUT("/workouts/:assignmentId/feedback", clientHandler.UpdateWorkoutFeedback)

			clientGroup.POST("/progress", clientHandler.LogProgress)
			clientGroup.GET("/progress", clientHandler.ListProgress)
			clientGroup.POST("/progress/:logId/photo/upload-url", clientHandler.RequestPhotoUpload)
			clientGroup.POST("/progress/:logId/photo/confirm", clientHandler.ConfirmPhoto)
		}
	}
}
