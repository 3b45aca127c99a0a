// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"lessonboard/internal/delivery/http/middleware"
	"lessonboard/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	SignupHandler  *handler.SignupHandler
	AuthHandler    *handler.AuthHandler
	LessonHandler  *handler.LessonHandler
	AuthMiddleware *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	signupHandler  *handler.SignupHandler
	authHandler    *handler.AuthHandler
	lessonHandler  *handler.LessonHandler
	authMiddleware *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		signupHandler:  params.SignupHandler,
		authHandler:    params.AuthHandler,
		lessonHandler:  params.LessonHandler,
		authMiddleware: params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Signup wizard: three strictly sequential steps tied together by the
	// session cookie. No authentication; the account does not exist yet.
	signupGroup := e.Group("/signup")
	{
		signupGroup.POST("/email", r.signupHandler.SubmitEmail)
		signupGroup.POST("/password", r.signupHandler.SubmitPassword)
		signupGroup.POST("/profile", r.signupHandler.SubmitProfile)
	}

	// Auth routes for committed users
	authGroup := e.Group("/auth")
	{
		authGroup.POST("/login", r.authHandler.Login)
		authGroup.POST("/refresh", r.authHandler.RefreshToken)
	}

	// Lesson routes: reads are public, mutations require authentication
	lessonGroup := e.Group("/lessons")
	{
		lessonGroup.GET("", r.lessonHandler.List)
		lessonGroup.GET("/:id", r.lessonHandler.Get)

		lessonGroup.POST("", r.lessonHandler.Create, r.authMiddleware.Authenticate)
		lessonGroup.PUT("/:id", r.lessonHandler.Update, r.authMiddleware.Authenticate)
		lessonGroup.DELETE("/:id", r.lessonHandler.Delete, r.authMiddleware.Authenticate)
		lessonGroup.DELETE("/:id/media", r.lessonHandler.DeleteMedia, r.authMiddleware.Authenticate)
	}
}
