package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/allinhq/allin-backend/internal/handlers"
	"github.com/allinhq/allin-backend/internal/middleware"
	"github.com/allinhq/allin-backend/internal/observability"
)

type RouterConfig struct {
	AuthHandler    *handlers.AuthHandler
	AuthMiddleware *middleware.AuthMiddleware
	UserHandler    *handlers.UserHandler
	SurveyHandler  *handlers.SurveyHandler
	TaskHandler    *handlers.TaskHandler
	AllowOrigins   []string
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	// Public
	router.GET("/healthcheck", handlers.HealthCheck)
	router.GET("/metrics", observability.MetricsHandler())
	router.POST("/register", cfg.AuthHandler.Register)
	router.POST("/login", cfg.AuthHandler.Login)
	router.POST("/refresh", cfg.AuthHandler.Refresh)

	// Protected
	api := router.Group("/api")
	api.Use(cfg.AuthMiddleware.RequireAuth())

	api.POST("/logout", cfg.AuthHandler.Logout)
	api.GET("/users/me", cfg.UserHandler.GetMe)

	api.POST("/surveys/initial", cfg.SurveyHandler.CreateIntake)
	api.GET("/surveys/initial/me", cfg.SurveyHandler.GetMyIntake)
	api.PUT("/surveys/initial/me", cfg.SurveyHandler.UpdateMyIntake)
	api.POST("/surveys/daily", cfg.SurveyHandler.SubmitDaily)
	api.GET("/surveys/daily/today", cfg.SurveyHandler.GetTodaysDaily)

	api.GET("/tasks", cfg.TaskHandler.GetTasks)
	api.PATCH("/tasks/:id/complete", cfg.TaskHandler.SetCompleted)

	return router
}
