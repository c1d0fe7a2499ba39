package main

import (
	"fmt"
	"os"
	"time"

	"github.com/allinhq/allin-backend/internal/app"
	"github.com/allinhq/allin-backend/internal/db"
	"github.com/allinhq/allin-backend/internal/handlers"
	"github.com/allinhq/allin-backend/internal/logger"
	"github.com/allinhq/allin-backend/internal/middleware"
	"github.com/allinhq/allin-backend/internal/repos"
	"github.com/allinhq/allin-backend/internal/server"
	"github.com/allinhq/allin-backend/internal/services"
)

func main() {
	// Logger
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Config
	log.Info("Loading configuration from main...")
	cfg, err := app.LoadConfig(log)
	if err != nil {
		log.Error("Could not load config", "error", err)
		os.Exit(1)
	}

	// Postgres
	postgresService, err := db.NewPostgresService(log)
	if err != nil {
		log.Error("Postgres init failed", "error", err)
		os.Exit(1)
	}
	if err = postgresService.AutoMigrateAll(); err != nil {
		log.Warn("Postgres auto migration failed", "error", err)
	}
	thePG := postgresService.DB()

	// Repos
	log.Info("Setting up Repos from main...")
	userRepo := repos.NewUserRepo(thePG, log)
	userTokenRepo := repos.NewUserTokenRepo(thePG, log)
	intakeProfileRepo := repos.NewIntakeProfileRepo(thePG, log)
	dailyStateRepo := repos.NewDailyStateRepo(thePG, log)
	taskRepo := repos.NewTaskRepo(thePG, log)

	// Services
	log.Info("Setting up Services from main...")
	groqClient, err := services.NewGroqClient(log, cfg.GroqConfig())
	if err != nil {
		log.Error("Could not init GroqClient", "error", err)
		os.Exit(1)
	}
	var taskCache services.TaskCache
	if cfg.Redis.Addr != "" {
		taskCache = services.NewRedisTaskCache(log, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, time.Duration(cfg.Redis.CacheTTLMinutes)*time.Minute)
	} else {
		log.Info("REDIS_ADDR not set, task batch cache disabled")
		taskCache = services.NewNoopTaskCache()
	}
	authService := services.NewAuthService(thePG, log, userRepo, userTokenRepo, cfg.JWTSecretKey, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	userService := services.NewUserService(thePG, log, userRepo)
	intakeService := services.NewIntakeService(thePG, log, intakeProfileRepo, userRepo)
	dailyService := services.NewDailyStateService(thePG, log, dailyStateRepo, userRepo)
	taskService := services.NewTaskService(thePG, log, taskRepo, userRepo, intakeService, dailyService, groqClient, taskCache, cfg.PromptOptions())

	// Handlers
	log.Info("Setting up handlers from main...")
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService)
	surveyHandler := handlers.NewSurveyHandler(intakeService, dailyService)
	taskHandler := handlers.NewTaskHandler(taskService)

	// Middleware
	log.Info("Setting up middleware from main...")
	authMiddleware := middleware.NewAuthMiddleware(log, authService)

	// Router
	log.Info("Setting up router from main...")
	router := server.NewRouter(server.RouterConfig{
		AuthHandler:    authHandler,
		AuthMiddleware: authMiddleware,
		UserHandler:    userHandler,
		SurveyHandler:  surveyHandler,
		TaskHandler:    taskHandler,
		AllowOrigins:   cfg.AllowOrigins,
	})

	fmt.Printf("Server listening on %s\n", cfg.ListenAddr)
	if err := router.Run(cfg.ListenAddr); err != nil {
		log.Warn("Server failed", "error", err)
	}
}
