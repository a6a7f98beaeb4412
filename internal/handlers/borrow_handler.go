package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/cinelist/backend/internal/models"
	"github.com/cinelist/backend/internal/notify"
	"github.com/cinelist/backend/internal/repositories"
	"github.com/cinelist/backend/pkg/apperrors"
	"github.com/cinelist/backend/pkg/security"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

const maxBorrowNotesLength = 500

// today returns the current calendar day at midnight UTC. Borrow windows
// are whole days, so all date comparisons work on day boundaries.
func today() time.Time {
	y, m, d := time.Now().UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// BorrowHandler handles HTTP requests for the borrow workflow
type BorrowHandler struct {
	borrowRepository repositories.BorrowRequestRepository
	movieRepository  repositories.MovieRepository
	userRepository   repositories.UserRepository
	notifications    *notify.Service
}

// NewBorrowHandler creates a new BorrowHandler
func NewBorrowHandler(
	borrowRepo repositories.BorrowRequestRepository,
	movieRepo repositories.MovieRepository,
	userRepo repositories.UserRepository,
	notifications *notify.Service,
) *BorrowHandler {
	return &BorrowHandler{
		borrowRepository: borrowRepo,
		movieRepository:  movieRepo,
		userRepository:   userRepo,
		notifications:    notifications,
	}
}

// RegisterBorrowRoutes registers borrow-workflow routes
func (h *BorrowHandler) RegisterBorrowRoutes(g *echo.Group) {
	g.POST("/borrows", h.ProposeBorrow)
	g.GET("/borrows", h.ListBorrows)
	g.PUT("/borrows/:id/status", h.SetBorrowStatus)
	g.GET("/upcoming-borrows", h.UpcomingBorrows)
	g.GET("/upcoming-loans", h.UpcomingLoans)
}

// ProposeBorrow proposes borrowing a friend's movie. The start date must not
// be in the past and the duration must be one of the enumerated choices;
// both are checked before anything is written.
func (h *BorrowHandler) ProposeBorrow(c echo.Context) error {
	claims := authUser(c)

	var req models.CreateBorrowRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	startDate, err := time.ParseInLocation("2006-01-02", req.StartDate, time.UTC)
	if err != nil {
		return httpError(apperrors.New(apperrors.ErrCodeInvalidDate, "start date must be formatted YYYY-MM-DD"))
	}
	if startDate.Before(today()) {
		return httpError(apperrors.New(apperrors.ErrCodeInvalidDate, "start date cannot be in the past"))
	}
	if !models.ValidBorrowDuration(req.BorrowDuration) {
		return httpError(apperrors.New(apperrors.ErrCodeInvalidDuration, "borrow duration must be between 1 and 14 days"))
	}

	// Entity escaping can grow the text, so the limit applies to the
	// sanitized form that is actually stored.
	notes := security.SanitizeString(security.SanitizeHTML(req.Notes))
	if len(notes) > maxBorrowNotesLength {
		return httpError(apperrors.New(apperrors.ErrCodeValidation, "notes must be at most 500 characters"))
	}

	movie, err := h.movieRepository.GetByID(req.MovieID)
	if err != nil {
		return httpError(err)
	}
	if movie.UserID == claims.UserID {
		return echo.NewHTTPError(http.StatusBadRequest, "Cannot borrow your own movie")
	}

	friends, err := h.userRepository.AreFriends(claims.UserID, movie.UserID)
	if err != nil {
		return httpError(err)
	}
	if !friends {
		return httpError(apperrors.New(apperrors.ErrCodePermissionDenied, "you may only borrow from friends"))
	}

	borrower, err := h.userRepository.GetUserByID(claims.UserID)
	if err != nil {
		return httpError(err)
	}
	owner, err := h.userRepository.GetUserByID(movie.UserID)
	if err != nil {
		return httpError(err)
	}

	borrowRequest := &models.BorrowRequest{
		MovieID:        movie.ID,
		SenderID:       borrower.ID,
		ReceiverID:     owner.ID,
		StartDate:      startDate,
		BorrowDuration: req.BorrowDuration,
		Notes:          notes,
	}

	if err := h.borrowRepository.Create(borrowRequest); err != nil {
		return httpError(err)
	}

	h.notifications.SendBorrowRequest(c.Request().Context(), borrower, owner, movie, borrowRequest.Notes)

	return c.JSON(http.StatusCreated, borrowRequest)
}

// SetBorrowStatus transitions a pending borrow request to a terminal status.
// The owner may accept or deny, the borrower may cancel. A request that has
// already reached a terminal status is reported as a conflict.
func (h *BorrowHandler) SetBorrowStatus(c echo.Context) error {
	claims := authUser(c)

	requestID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request ID")
	}

	var req models.UpdateBorrowStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	borrowRequest, err := h.borrowRepository.GetByID(uint(requestID))
	if err != nil {
		return httpError(err)
	}

	switch req.Status {
	case models.BorrowRequestAccepted, models.BorrowRequestDenied:
		if borrowRequest.ReceiverID != claims.UserID {
			return httpError(apperrors.New(apperrors.ErrCodePermissionDenied, "only the movie's owner may accept or deny a borrow request"))
		}
	case models.BorrowRequestCancelled:
		if borrowRequest.SenderID != claims.UserID {
			return httpError(apperrors.New(apperrors.ErrCodePermissionDenied, "only the borrower may cancel a borrow request"))
		}
	}

	updated, err := h.borrowRepository.UpdateStatus(uint(requestID), req.Status)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, updated)
}

// ListBorrows lists borrow requests involving the authenticated user. The
// role query parameter selects between requests the user sent (as borrower)
// and requests the user received (as owner); status is an optional filter.
func (h *BorrowHandler) ListBorrows(c echo.Context) error {
	claims := authUser(c)

	role := c.QueryParam("role")
	if role == "" {
		role = repositories.RoleSender
	}

	requests, err := h.borrowRepository.List(claims.UserID, role, c.QueryParam("status"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, requests)
}

// UpcomingBorrows lists accepted requests where the user is the borrower,
// soonest start date first.
func (h *BorrowHandler) UpcomingBorrows(c echo.Context) error {
	claims := authUser(c)

	requests, err := h.borrowRepository.List(claims.UserID, repositories.RoleSender, models.BorrowRequestAccepted)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, requests)
}

// UpcomingLoans lists accepted requests where the user is the owner lending
// out a movie, soonest start date first.
func (h *BorrowHandler) UpcomingLoans(c echo.Context) error {
	claims := authUser(c)

	requests, err := h.borrowRepository.List(claims.UserID, repositories.RoleReceiver, models.BorrowRequestAccepted)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, requests)
}
