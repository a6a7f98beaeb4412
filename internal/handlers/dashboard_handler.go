package handlers

import (
	"net/http"

	"github.com/cinelist/backend/internal/models"
	"github.com/cinelist/backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

// DashboardHandler serves the signed-in landing view: pending requests and
// upcoming exchanges in both directions, plus a library count.
type DashboardHandler struct {
	movieRepository         repositories.MovieRepository
	friendRequestRepository repositories.FriendRequestRepository
	borrowRepository        repositories.BorrowRequestRepository
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(
	movieRepo repositories.MovieRepository,
	friendRequestRepo repositories.FriendRequestRepository,
	borrowRepo repositories.BorrowRequestRepository,
) *DashboardHandler {
	return &DashboardHandler{
		movieRepository:         movieRepo,
		friendRequestRepository: friendRequestRepo,
		borrowRepository:        borrowRepo,
	}
}

// RegisterDashboardRoutes registers the dashboard route
func (h *DashboardHandler) RegisterDashboardRoutes(g *echo.Group) {
	g.GET("/dashboard", h.GetDashboard)
}

// GetDashboard aggregates everything the landing page shows
func (h *DashboardHandler) GetDashboard(c echo.Context) error {
	claims := authUser(c)

	libraryCount, err := h.movieRepository.CountByUser(claims.UserID)
	if err != nil {
		return httpError(err)
	}

	pendingFriendRequests, err := h.friendRequestRepository.ListPendingReceived(claims.UserID)
	if err != nil {
		return httpError(err)
	}

	pendingBorrowRequests, err := h.borrowRepository.List(claims.UserID, repositories.RoleReceiver, models.BorrowRequestSent)
	if err != nil {
		return httpError(err)
	}

	upcomingBorrows, err := h.borrowRepository.List(claims.UserID, repositories.RoleSender, models.BorrowRequestAccepted)
	if err != nil {
		return httpError(err)
	}

	upcomingLoans, err := h.borrowRepository.List(claims.UserID, repositories.RoleReceiver, models.BorrowRequestAccepted)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"library_count":           libraryCount,
		"pending_friend_requests": pendingFriendRequests,
		"pending_borrow_requests": pendingBorrowRequests,
		"upcoming_borrows":        upcomingBorrows,
		"upcoming_loans":          upcomingLoans,
	})
}
