package main

import (
	"alcyxob/coach-app/internal/api"
	"alcyxob/coach-app/internal/cache"
	"alcyxob/coach-app/internal/repository/mongo"
	"alcyxob/coach-app/internal/service"
	"alcyxob/coach-app/internal/storage"
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServer(cmd.Context())
	},
}

func runServer(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	// --- Ensure Indexes ---
	// The uniqueness invariants depend on these, so a failure is fatal.
	indexCtx, cancelIndexes := context.WithTimeout(ctx, time.Minute)
	err := mongo.EnsureIndexes(indexCtx, appDB)
	cancelIndexes()
	if err != nil {
		return fmt.Errorf("could not ensure indexes: %w", err)
	}
	log.Println("Database indexes ensured.")

	// --- View cache ---
	views := cache.NewNoop()
	if cfg.Redis.Address != "" {
		redisViews, redisClient, err := cache.NewRedis(ctx, cfg.Redis)
		if err != nil {
			return fmt.Errorf("could not connect to Redis: %w", err)
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				log.Printf("ERROR: Failed to close Redis client: %v", err)
			}
		}()
		views = redisViews
		log.Printf("View cache enabled at %s.", cfg.Redis.Address)
	} else {
		log.Println("WARN: REDIS_ADDRESS not set, view cache disabled.")
	}

	// --- Initialize Storage ---
	var fileStorage storage.FileStorage
	if cfg.S3.Enabled() {
		if fileStorage, err = storage.NewS3Storage(ctx, cfg.S3); err != nil {
			return fmt.Errorf("failed to initialize S3 storage: %w", err)
		}
		log.Println("Progress photo storage initialized.")
	} else {
		log.Println("WARN: S3_BUCKET_NAME not set, progress photos disabled.")
	}

	// --- Initialize Repositories ---
	userRepo := mongo.NewMongoUserRepository(appDB)
	coachRepo := mongo.NewMongoCoachProfileRepository(appDB)
	clientRepo := mongo.NewMongoClientProfileRepository(appDB)
	workoutRepo := mongo.NewMongoWorkoutRepository(appDB)
	assignmentRepo := mongo.NewMongoWorkoutAssignmentRepository(appDB)
	mealPlanRepo := mongo.NewMongoMealPlanRepository(appDB)
	mealAssignmentRepo := mongo.NewMongoMealAssignmentRepository(appDB)
	progressRepo := mongo.NewMongoProgressLogRepository(appDB)
	messageRepo := mongo.NewMongoMessageRepository(appDB)

	// --- Initialize Services ---
	services := api.Services{
		Auth: service.NewAuthService(userRepo, coachRepo, clientRepo, cfg.JWT.Secret, cfg.JWT.Expiration),
		Link: service.NewLinkService(userRepo, coachRepo, clientRepo, views),
		Coach: service.NewCoachService(userRepo, coachRepo, clientRepo, workoutRepo, assignmentRepo,
			mealPlanRepo, progressRepo, messageRepo, views, cfg.Cache.ViewTTL),
		Client: service.NewClientService(userRepo, coachRepo, clientRepo, workoutRepo, assignmentRepo,
			mealPlanRepo, mealAssignmentRepo, progressRepo, fileStorage, views),
		Messages: service.NewMessageService(messageRepo, userRepo, coachRepo, clientRepo, views),
	}

	// --- Initialize Gin Engine ---
	gin.SetMode(cfg.Server.Mode)
	router := gin.Default() // Includes Logger and Recovery middleware
	api.SetupRoutes(router, services.Auth.GetJWTSecret(), services)

	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// --- Graceful Shutdown ---
	serverErr := make(chan error, 1)
	go func() {
		log.Printf("Server starting on %s", cfg.Server.Address)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-serverErr:
		return fmt.Errorf("ListenAndServe: %w", err)
	case <-quit:
	}
	log.Println("Shutting down server...")

	// The server has 5 seconds to finish the requests it is currently handling
	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	if err := server.Shutdown(ctxShutdown); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	log.Println("Server exiting.")
	return nil
}
