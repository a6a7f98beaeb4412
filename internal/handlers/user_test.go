package handlers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/cinelist/backend/internal/models"
	"github.com/cinelist/backend/internal/repositories"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateProfileSanitizesAddress(t *testing.T) {
	db := newTestDB(t)
	e := echo.New()
	h := NewUserHandler(repositories.NewPostgresUserRepository(db), repositories.NewPostgresPreferencesRepository(db))
	user := createTestUser(t, db, "Alice", "alice@example.com")

	c, rec := newRequestContext(t, e, http.MethodPut, "/profile", models.UpdateProfileRequest{
		Address: "  12 Main St <script>alert(1)</script>  ",
	}, user.ID)
	require.NoError(t, h.UpdateProfile(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var updated models.User
	decodeBody(t, rec.Body.Bytes(), &updated)
	assert.Equal(t, "12 Main St", updated.Address)
	assert.Equal(t, "Alice", updated.FirstName, "unset fields keep their value")
}

func TestSearchUsersRequiresQuery(t *testing.T) {
	db := newTestDB(t)
	e := echo.New()
	h := NewUserHandler(repositories.NewPostgresUserRepository(db), repositories.NewPostgresPreferencesRepository(db))
	user := createTestUser(t, db, "Alice", "alice@example.com")

	c, _ := newRequestContext(t, e, http.MethodGet, "/users/search", nil, user.ID)
	err := h.SearchUsers(c)
	assert.Equal(t, http.StatusBadRequest, httpStatus(t, err))

	c, rec := newRequestContext(t, e, http.MethodGet, "/users/search?query=alice", nil, user.ID)
	require.NoError(t, h.SearchUsers(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var users []models.User
	decodeBody(t, rec.Body.Bytes(), &users)
	assert.Len(t, users, 1)
}

func TestGetUserRespectsShowPersonalInfo(t *testing.T) {
	db := newTestDB(t)
	e := echo.New()
	prefsRepo := repositories.NewPostgresPreferencesRepository(db)
	h := NewUserHandler(repositories.NewPostgresUserRepository(db), prefsRepo)

	owner := createTestUser(t, db, "Alice", "alice@example.com")
	viewer := createTestUser(t, db, "Ben", "ben@example.com")
	require.NoError(t, db.Model(owner).Updates(map[string]interface{}{
		"phone_number": "555-0100",
		"address":      "12 Main St",
	}).Error)

	getUser := func(targetID, viewerID uint) models.User {
		c, rec := newRequestContext(t, e, http.MethodGet, "/users/"+fmt.Sprint(targetID), nil, viewerID)
		c.SetParamNames("id")
		c.SetParamValues(fmt.Sprint(targetID))
		require.NoError(t, h.GetUser(c))
		require.Equal(t, http.StatusOK, rec.Code)
		var user models.User
		decodeBody(t, rec.Body.Bytes(), &user)
		return user
	}

	// Defaults share contact details with other users
	user := getUser(owner.ID, viewer.ID)
	assert.Equal(t, "555-0100", user.PhoneNumber)
	assert.Equal(t, "12 Main St", user.Address)

	prefs, err := prefsRepo.GetOrCreate(owner.ID)
	require.NoError(t, err)
	prefs.ShowPersonalInfo = false
	require.NoError(t, prefsRepo.Update(prefs))

	// Other users no longer see contact details
	user = getUser(owner.ID, viewer.ID)
	assert.Empty(t, user.PhoneNumber)
	assert.Empty(t, user.Address)

	// The owner still sees their own
	user = getUser(owner.ID, owner.ID)
	assert.Equal(t, "555-0100", user.PhoneNumber)
	assert.Equal(t, "12 Main St", user.Address)
}

func TestGetProfileOmitsPassword(t *testing.T) {
	db := newTestDB(t)
	e := echo.New()
	h := NewUserHandler(repositories.NewPostgresUserRepository(db), repositories.NewPostgresPreferencesRepository(db))
	user := createTestUser(t, db, "Alice", "alice@example.com")

	c, rec := newRequestContext(t, e, http.MethodGet, "/profile", nil, user.ID)
	require.NoError(t, h.GetProfile(c))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "hashed-password")
}
