// Package handler contains the echo handlers of the JSON API.
package handler

import (
	"log/slog"
	"net/http"

	"cafefinder/config"
	"cafefinder/internal/delivery/api/response"
	"cafefinder/internal/delivery/dto"
	"cafefinder/internal/domain/entity"
	"cafefinder/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// CafeHandlerParams holds dependencies for CafeHandler, injected by Fx.
type CafeHandlerParams struct {
	fx.In

	CafeUC usecase.CafeUsecase
	Config *config.Config
	Logger *slog.Logger
}

// CafeHandler serves one-shot cafe searches
type CafeHandler struct {
	cafeUC        usecase.CafeUsecase
	defaultRadius int
	logger        *slog.Logger
}

// NewCafeHandler is the constructor for CafeHandler
func NewCafeHandler(params CafeHandlerParams) *CafeHandler {
	return &CafeHandler{
		cafeUC:        params.CafeUC,
		defaultRadius: params.Config.Search.DefaultRadius,
		logger:        params.Logger,
	}
}

// NearbyRequest represents the query of GET /api/cafes/nearby
type NearbyRequest struct {
	Lat    float64 `query:"lat" validate:"gte=-90,lte=90"`
	Lng    float64 `query:"lng" validate:"gte=-180,lte=180"`
	Radius int     `query:"radius" validate:"gte=0"`
	Query  string  `query:"q" validate:"max=100"`
}

// NearbyResponse is the body of a successful search
type NearbyResponse struct {
	Source  entity.SourceKind  `json:"source"`
	Message string             `json:"message"`
	State   entity.SearchState `json:"state"`
	Total   int                `json:"total"` // Before the text filter.
	Cafes   []dto.Cafe         `json:"cafes"`
}

// FindNearby handles GET /api/cafes/nearby?lat&lng&radius&q
func (h *CafeHandler) FindNearby(c echo.Context) error {
	var req NearbyRequest
	err := echo.QueryParamsBinder(c).
		MustFloat64("lat", &req.Lat).
		MustFloat64("lng", &req.Lng).
		Int("radius", &req.Radius).
		String("q", &req.Query).
		BindError()
	if err != nil {
		return response.BindingError(c, "INVALID_INPUT", "lat and lng are required numbers, radius must be an integer")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	if req.Radius == 0 {
		req.Radius = h.defaultRadius
	}

	result, err := h.cafeUC.FindNearby(c.Request().Context(), entity.Point{Lat: req.Lat, Lng: req.Lng}, req.Radius)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	filtered := h.cafeUC.Filter(result.Cafes, req.Query)

	return response.Success(c, http.StatusOK, NearbyResponse{
		Source:  result.Source,
		Message: result.Message,
		State:   result.State,
		Total:   len(result.Cafes),
		Cafes:   dto.NewCafes(filtered),
	})
}
