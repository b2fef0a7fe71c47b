// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"helpmate/internal/delivery/http/middleware"
	"helpmate/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AuthHandler    *handler.AuthHandler
	AlertHandler   *handler.AlertHandler
	ContactHandler *handler.ContactHandler
	UserHandler    *handler.UserHandler
	AuthMiddleware *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	authHandler    *handler.AuthHandler
	alertHandler   *handler.AlertHandler
	contactHandler *handler.ContactHandler
	userHandler    *handler.UserHandler
	authMiddleware *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		authHandler:    params.AuthHandler,
		alertHandler:   params.AlertHandler,
		contactHandler: params.ContactHandler,
		userHandler:    params.UserHandler,
		authMiddleware: params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Auth routes; register and login are the only unauthenticated ones.
	authGroup := e.Group("/auth")
	{
		authGroup.POST("/register", r.authHandler.Register)
		authGroup.POST("/login", r.authHandler.Login)
		authGroup.GET("/me", r.authHandler.Me, r.authMiddleware.Authenticate)
		authGroup.POST("/logout", r.authHandler.Logout, r.authMiddleware.Authenticate)
	}

	alertGroup := e.Group("/alerts")
	alertGroup.Use(r.authMiddleware.Authenticate)
	{
		alertGroup.GET("", r.alertHandler.List)
		alertGroup.POST("/emergency", r.alertHandler.CreateEmergency)
		alertGroup.POST("/cancel", r.alertHandler.Cancel)
		alertGroup.GET("/:id", r.alertHandler.Get)
		alertGroup.PATCH("/:id/resolve", r.alertHandler.Resolve)
		alertGroup.DELETE("/:id", r.alertHandler.Delete)
	}

	contactGroup := e.Group("/contacts")
	contactGroup.Use(r.authMiddleware.Authenticate)
	{
		contactGroup.GET("", r.contactHandler.List)
		contactGroup.POST("", r.contactHandler.Create)
		contactGroup.POST("/test", r.contactHandler.Test)
		contactGroup.PUT("/:id", r.contactHandler.Update)
		contactGroup.DELETE("/:id", r.contactHandler.Delete)
		contactGroup.PATCH("/:id/toggle", r.contactHandler.Toggle)
	}

	userGroup := e.Group("/users")
	userGroup.Use(r.authMiddleware.Authenticate)
	{
		userGroup.GET("/profile", r.userHandler.GetProfile)
		userGroup.PUT("/profile", r.userHandler.UpdateProfile)
	}
}
