package handlers

import (
	"net/http"
	"strconv"

	"github.com/cinelist/backend/internal/models"
	"github.com/cinelist/backend/internal/repositories"
	"github.com/cinelist/backend/pkg/security"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// UserHandler handles HTTP requests related to users
type UserHandler struct {
	userRepository        repositories.UserRepository
	preferencesRepository repositories.PreferencesRepository
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userRepo repositories.UserRepository, preferencesRepo repositories.PreferencesRepository) *UserHandler {
	return &UserHandler{
		userRepository:        userRepo,
		preferencesRepository: preferencesRepo,
	}
}

// RegisterProfileRoutes registers user profile-related routes
func (h *UserHandler) RegisterProfileRoutes(g *echo.Group) {
	g.GET("/profile", h.GetProfile)    // Get own profile
	g.PUT("/profile", h.UpdateProfile) // Update own profile
	g.GET("/users/:id", h.GetUser)     // Get other user's profile by ID
	g.DELETE("/profile", h.DeleteUser) // Delete own user profile
}

// GetUser serves another user's profile. Contact details are withheld when
// the profile owner has switched show_personal_info off.
func (h *UserHandler) GetUser(c echo.Context) error {
	claims := authUser(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}
	user, err := h.userRepository.GetUserByID(uint(id))
	if err != nil {
		return httpError(err)
	}

	if user.ID != claims.UserID {
		prefs, err := h.preferencesRepository.GetOrCreate(user.ID)
		if err != nil {
			return httpError(err)
		}
		if !prefs.ShowPersonalInfo {
			user.PhoneNumber = ""
			user.Address = ""
		}
	}

	return c.JSON(http.StatusOK, user)
}

// GetProfile retrieves the authenticated user's profile
func (h *UserHandler) GetProfile(c echo.Context) error {
	claims := authUser(c)

	user, err := h.userRepository.GetUserByID(claims.UserID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, user)
}

// UpdateProfile updates the authenticated user's profile
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	claims := authUser(c)

	var req models.UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.userRepository.GetUserByID(claims.UserID)
	if err != nil {
		return httpError(err)
	}

	if req.FirstName != "" {
		user.FirstName = req.FirstName
	}
	if req.LastName != "" {
		user.LastName = req.LastName
	}
	if req.Email != "" {
		user.Email = req.Email
	}
	if req.PhoneNumber != "" {
		user.PhoneNumber = req.PhoneNumber
	}
	if req.Address != "" {
		user.Address = security.SanitizeString(security.SanitizeHTML(req.Address))
	}

	if err := h.userRepository.UpdateUser(user); err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, user)
}

// DeleteUser deletes the authenticated user's profile
func (h *UserHandler) DeleteUser(c echo.Context) error {
	claims := authUser(c)

	user, err := h.userRepository.GetUserByID(claims.UserID)
	if err != nil {
		return httpError(err)
	}

	if err := h.userRepository.DeleteUser(user.ID); err != nil {
		return httpError(err)
	}

	return c.NoContent(http.StatusNoContent)
}

// SearchUsers searches the user directory by name or email
func (h *UserHandler) SearchUsers(c echo.Context) error {
	query := c.QueryParam("query")
	if query == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Missing search query")
	}

	users, err := h.userRepository.SearchUsers(query)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, users)
}
