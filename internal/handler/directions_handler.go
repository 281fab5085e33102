package handler

import (
	"context"
	"strings"

	"github.com/Kilat-Pet-Delivery/service-route-planner/internal/application"
	"github.com/Kilat-Pet-Delivery/service-route-planner/internal/platform/response"
	"github.com/gin-gonic/gin"
)

// RoutePlanner plans a route for a prompt. *application.PlannerService satisfies it.
type RoutePlanner interface {
	PlanRoute(ctx context.Context, req application.PlanRouteRequest) *application.DirectionsResponse
}

// DirectionsHandler handles HTTP requests for route planning.
type DirectionsHandler struct {
	service RoutePlanner
}

// NewDirectionsHandler creates a new DirectionsHandler.
func NewDirectionsHandler(service RoutePlanner) *DirectionsHandler {
	return &DirectionsHandler{service: service}
}

// RegisterRoutes registers the directions routes on the given router group.
func (h *DirectionsHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/api/directions", h.PlanDirections)
	r.POST("/api/v1/directions", h.PlanDirections)
}

// PlanDirections handles POST /api/directions.
// Planning failures are reported in the body notes with status 200.
func (h *DirectionsHandler) PlanDirections(c *gin.Context) {
	var req application.PlanRouteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if strings.TrimSpace(req.Prompt) == "" {
		response.BadRequest(c, "prompt must not be blank")
		return
	}
	req.RequestID = c.GetString(response.RequestIDKey)

	result := h.service.PlanRoute(c.Request.Context(), req)
	response.OK(c, result)
}
