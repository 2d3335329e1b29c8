// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"cafefinder/internal/delivery/api/router/handler"
	"cafefinder/internal/delivery/ws"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	CafeHandler       *handler.CafeHandler
	PreferenceHandler *handler.PreferenceHandler
	SessionHandler    *ws.Handler
}

// router holds all the handlers that need to be registered.
type router struct {
	cafeHandler       *handler.CafeHandler
	preferenceHandler *handler.PreferenceHandler
	sessionHandler    *ws.Handler
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		cafeHandler:       params.CafeHandler,
		preferenceHandler: params.PreferenceHandler,
		sessionHandler:    params.SessionHandler,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", handler.HealthCheck)

	apiGroup := e.Group("/api")
	{
		apiGroup.GET("/cafes/nearby", r.cafeHandler.FindNearby)
		apiGroup.GET("/preferences", r.preferenceHandler.GetPreferences)
		apiGroup.PATCH("/preferences", r.preferenceHandler.UpdatePreferences)
	}

	// Live session: browser events in, render commands out
	e.GET("/ws/session", r.sessionHandler.Serve)
}
