// Package router wires handlers to their routes.
package router

import (
	"tasktrack/internal/delivery/api/middleware"
	"tasktrack/internal/delivery/api/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AuthHandler         *handler.AuthHandler
	ProfileHandler      *handler.ProfileHandler
	TaskHandler         *handler.TaskHandler
	AuthMiddleware      *middleware.AuthMiddleware
	RateLimitMiddleware *middleware.RateLimitMiddleware
}

type router struct {
	authHandler    *handler.AuthHandler
	profileHandler *handler.ProfileHandler
	taskHandler    *handler.TaskHandler
	authMiddleware *middleware.AuthMiddleware
	rateLimiter    *middleware.RateLimitMiddleware
}

func NewRouter(params RouterParams) *router {
	return &router{
		authHandler:    params.AuthHandler,
		profileHandler: params.ProfileHandler,
		taskHandler:    params.TaskHandler,
		authMiddleware: params.AuthMiddleware,
		rateLimiter:    params.RateLimitMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", handler.HealthCheck)

	api := e.Group("/api")

	// /me and /verify read the bearer token themselves so that they can
	// answer 404 and {isValid:false} instead of a blanket 401.
	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", r.authHandler.Register, r.rateLimiter.Limit)
		authGroup.POST("/login", r.authHandler.Login, r.rateLimiter.Limit)
		authGroup.GET("/me", r.authHandler.Me)
		authGroup.GET("/verify", r.authHandler.Verify)
	}

	usersGroup := api.Group("/users/me", r.authMiddleware.Authenticate)
	{
		usersGroup.GET("", r.profileHandler.GetProfile)
		usersGroup.PATCH("", r.profileHandler.UpdateProfile)
		usersGroup.PUT("/password", r.profileHandler.ChangePassword)
		usersGroup.DELETE("", r.profileHandler.DeleteAccount)
	}

	tasksGroup := api.Group("/tasks", r.authMiddleware.Authenticate)
	{
		tasksGroup.POST("", r.taskHandler.CreateTask)
		tasksGroup.GET("", r.taskHandler.ListTasks)
		tasksGroup.GET("/:id", r.taskHandler.GetTask)
		tasksGroup.PUT("/:id", r.taskHandler.UpdateTask)
		tasksGroup.DELETE("/:id", r.taskHandler.DeleteTask)
	}
}
