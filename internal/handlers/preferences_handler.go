package handlers

import (
	"net/http"

	"github.com/cinelist/backend/internal/models"
	"github.com/cinelist/backend/internal/repositories"
	"github.com/cinelist/backend/pkg/security"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// PreferencesHandler handles loan hand-off preference requests
type PreferencesHandler struct {
	preferencesRepository repositories.PreferencesRepository
}

// NewPreferencesHandler creates a new PreferencesHandler
func NewPreferencesHandler(preferencesRepo repositories.PreferencesRepository) *PreferencesHandler {
	return &PreferencesHandler{preferencesRepository: preferencesRepo}
}

// RegisterPreferencesRoutes registers preference-related routes
func (h *PreferencesHandler) RegisterPreferencesRoutes(g *echo.Group) {
	g.GET("/preferences", h.GetPreferences)
	g.PUT("/preferences", h.UpdatePreferences)
}

// GetPreferences retrieves the authenticated user's preferences, creating
// the defaults on first access
func (h *PreferencesHandler) GetPreferences(c echo.Context) error {
	claims := authUser(c)

	prefs, err := h.preferencesRepository.GetOrCreate(claims.UserID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, prefs)
}

// UpdatePreferences updates the authenticated user's preferences
func (h *PreferencesHandler) UpdatePreferences(c echo.Context) error {
	claims := authUser(c)

	var req models.UpdatePreferencesRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	prefs, err := h.preferencesRepository.GetOrCreate(claims.UserID)
	if err != nil {
		return httpError(err)
	}

	if req.ShowPersonalInfo != nil {
		prefs.ShowPersonalInfo = *req.ShowPersonalInfo
	}
	if req.StartLoanExchangeType != "" {
		prefs.StartLoanExchangeType = req.StartLoanExchangeType
	}
	if req.EndLoanExchangeType != "" {
		prefs.EndLoanExchangeType = req.EndLoanExchangeType
	}
	if req.ExchangeLocationChoice != "" {
		prefs.ExchangeLocationChoice = req.ExchangeLocationChoice
	}
	if req.ExchangeLocation != "" {
		prefs.ExchangeLocation = security.SanitizeString(security.SanitizeHTML(req.ExchangeLocation))
	}
	if req.FavoriteGenre != "" {
		prefs.FavoriteGenre = security.SanitizeString(security.SanitizeHTML(req.FavoriteGenre))
	}

	if err := h.preferencesRepository.Update(prefs); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, prefs)
}
