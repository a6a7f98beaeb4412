package handlers

import (
	"net/http"
	"testing"

	"github.com/cinelist/backend/internal/models"
	"github.com/cinelist/backend/internal/repositories"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreferencesDefaultsAndUpdate(t *testing.T) {
	db := newTestDB(t)
	e := echo.New()
	h := NewPreferencesHandler(repositories.NewPostgresPreferencesRepository(db))
	user := createTestUser(t, db, "Alice", "alice@example.com")

	c, rec := newRequestContext(t, e, http.MethodGet, "/preferences", nil, user.ID)
	require.NoError(t, h.GetPreferences(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var prefs models.UserPreferences
	decodeBody(t, rec.Body.Bytes(), &prefs)
	assert.True(t, prefs.ShowPersonalInfo)
	assert.Equal(t, models.ExchangePickUp, prefs.StartLoanExchangeType)

	hide := false
	c, rec = newRequestContext(t, e, http.MethodPut, "/preferences", models.UpdatePreferencesRequest{
		ShowPersonalInfo:       &hide,
		ExchangeLocationChoice: models.ExchangeLocationOther,
		ExchangeLocation:       "Corner coffee shop",
	}, user.ID)
	require.NoError(t, h.UpdatePreferences(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var updated models.UserPreferences
	decodeBody(t, rec.Body.Bytes(), &updated)
	assert.False(t, updated.ShowPersonalInfo)
	assert.Equal(t, models.ExchangeLocationOther, updated.ExchangeLocationChoice)
	assert.Equal(t, "Corner coffee shop", updated.ExchangeLocation)
	assert.Equal(t, models.ExchangePickUp, updated.StartLoanExchangeType, "untouched fields keep defaults")
}

func TestUpdatePreferencesValidation(t *testing.T) {
	db := newTestDB(t)
	e := echo.New()
	h := NewPreferencesHandler(repositories.NewPostgresPreferencesRepository(db))
	user := createTestUser(t, db, "Alice", "alice@example.com")

	c, _ := newRequestContext(t, e, http.MethodPut, "/preferences", models.UpdatePreferencesRequest{
		StartLoanExchangeType: "TELEPORT",
	}, user.ID)
	err := h.UpdatePreferences(c)
	assert.Equal(t, http.StatusBadRequest, httpStatus(t, err))
}
