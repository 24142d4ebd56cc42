// File: app/app.go
package app

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	"wiser-api/config"
	"wiser-api/db"
	"wiser-api/handler"
	"wiser-api/logger"
	"wiser-api/repository"
	"wiser-api/router"
	"wiser-api/service"

	"github.com/redis/go-redis/v9"
)

func Run() {
	config.LoadConfig(".")
	logger.Init()
	logger.Log.Info("Logger initialized")
	logger.Log.Info("Configuration loaded successfully")

	database, err := db.Connect()
	if err != nil {
		logger.Log.Fatalf("Error connecting to the database: %v", err)
	}
	defer database.Close()

	if err := db.Migrate("file://db/migrations"); err != nil {
		logger.Log.Fatalf("Error applying database migrations: %v", err)
	}

	redisClient, err := db.ConnectRedis()
	if err != nil {
		logger.Log.Fatalf("Error connecting to redis: %v", err)
	}
	defer redisClient.Close()

	r := buildRouter(database, redisClient)

	// --- Start the Server with Graceful Shutdown ---
	port := config.AppConfig.Server.Port
	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}

	go func() {
		logger.Log.Infof("Server starting on port :%s", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Log.Warn("Shutdown signal received. Starting graceful shutdown...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Fatalf("Server forced to shutdown: %v", err)
	}

	logger.Log.Info("Server exited properly")
}

// buildRouter wires repositories, services and handlers together. Shared by
// Run and the integration test harness.
func buildRouter(database *sql.DB, redisClient *redis.Client) http.Handler {
	userRepo := repository.NewUserRepository(database)
	tokenRepo := repository.NewTokenRepository(database)
	skillRepo := repository.NewSkillRepository(database)
	masterDataRepo := repository.NewMasterDataRepository(database)
	mappingRepo := repository.NewMappingRepository(database)
	profileRepo := repository.NewProfileRepository(database)
	configDataRepo := repository.NewConfigDataRepository(database)
	planRepo := repository.NewCareerPlanRepository(database)

	authService := service.NewAuthService(database, userRepo, tokenRepo, config.AppConfig.JWT)
	userService := service.NewUserService(userRepo)
	skillService := service.NewSkillService(skillRepo)
	masterDataService := service.NewMasterDataService(masterDataRepo, redisClient)
	mappingService := service.NewMappingService(mappingRepo)
	profileService := service.NewProfileService(profileRepo, userRepo)
	configDataService := service.NewConfigDataService(configDataRepo)
	planService := service.NewCareerPlanService(planRepo, userRepo, config.AppConfig.OpenAI.APIKey)

	return router.NewRouter(
		handler.NewAuthHandler(authService),
		handler.NewUserHandler(userService),
		handler.NewSkillHandler(skillService),
		handler.NewMasterDataHandler(masterDataService),
		handler.NewMappingHandler(mappingService),
		handler.NewProfileHandler(profileService),
		handler.NewConfigDataHandler(configDataService),
		handler.NewCareerPlanHandler(planService),
	)
}

// TestApp exposes the wired router for integration tests.
type TestApp struct {
	Router http.Handler
}

func NewTestApp(database *sql.DB, redisClient *redis.Client) *TestApp {
	return &TestApp{Router: buildRouter(database, redisClient)}
}
