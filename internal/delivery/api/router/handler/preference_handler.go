package handler

import (
	"fmt"
	"log/slog"
	"net/http"

	"cafefinder/config"
	"cafefinder/internal/delivery/api/response"
	"cafefinder/internal/domain/entity"
	"cafefinder/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// PreferenceHandlerParams holds dependencies for PreferenceHandler, injected by Fx.
type PreferenceHandlerParams struct {
	fx.In

	PreferenceUC usecase.PreferenceUsecase
	Config       *config.Config
	Logger       *slog.Logger
}

// PreferenceHandler reads and updates the stored radius and last location
type PreferenceHandler struct {
	preferenceUC usecase.PreferenceUsecase
	maxRadius    int
	logger       *slog.Logger
}

// NewPreferenceHandler is the constructor for PreferenceHandler
func NewPreferenceHandler(params PreferenceHandlerParams) *PreferenceHandler {
	return &PreferenceHandler{
		preferenceUC: params.PreferenceUC,
		maxRadius:    params.Config.Search.MaxRadius,
		logger:       params.Logger,
	}
}

// UpdatePreferencesRequest is a partial update; omitted fields keep their
// stored value. The location is updated as a pair.
type UpdatePreferencesRequest struct {
	Radius  *int     `json:"radius" validate:"omitempty,gt=0"`
	LastLat *float64 `json:"lastLat" validate:"omitempty,gte=-90,lte=90"`
	LastLng *float64 `json:"lastLng" validate:"omitempty,gte=-180,lte=180"`
}

// GetPreferences handles GET /api/preferences?client=
func (h *PreferenceHandler) GetPreferences(c echo.Context) error {
	prefs := h.preferenceUC.Load(c.Request().Context(), c.QueryParam("client"))

	return response.Success(c, http.StatusOK, prefs)
}

// UpdatePreferences handles PATCH /api/preferences?client=
func (h *PreferenceHandler) UpdatePreferences(c echo.Context) error {
	var req UpdatePreferencesRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid preferences body")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	// Radii the search would reject are never stored.
	if req.Radius != nil && *req.Radius > h.maxRadius {
		return response.BadRequest(c, "VALIDATION_ERROR",
			fmt.Sprintf("radius must not exceed %d meters", h.maxRadius))
	}

	if (req.LastLat == nil) != (req.LastLng == nil) {
		return response.BadRequest(c, "VALIDATION_ERROR", "lastLat and lastLng must be set together")
	}

	ctx := c.Request().Context()
	scope := c.QueryParam("client")

	partial := entity.Preferences{Radius: req.Radius, LastLat: req.LastLat, LastLng: req.LastLng}
	if err := h.preferenceUC.Save(ctx, scope, partial); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, h.preferenceUC.Load(ctx, scope))
}
