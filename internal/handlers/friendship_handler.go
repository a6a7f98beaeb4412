package handlers

import (
	"net/http"
	"strconv"

	"github.com/cinelist/backend/internal/models"
	"github.com/cinelist/backend/internal/notify"
	"github.com/cinelist/backend/internal/repositories"
	"github.com/cinelist/backend/pkg/apperrors"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// FriendshipHandler handles HTTP requests related to friendships
type FriendshipHandler struct {
	friendRequestRepository repositories.FriendRequestRepository
	userRepository          repositories.UserRepository
	notifications           *notify.Service
}

// NewFriendshipHandler creates a new FriendshipHandler
func NewFriendshipHandler(friendRequestRepo repositories.FriendRequestRepository, userRepo repositories.UserRepository, notifications *notify.Service) *FriendshipHandler {
	return &FriendshipHandler{
		friendRequestRepository: friendRequestRepo,
		userRepository:          userRepo,
		notifications:           notifications,
	}
}

// RegisterFriendshipRoutes registers friendship-related routes
func (h *FriendshipHandler) RegisterFriendshipRoutes(g *echo.Group) {
	g.POST("/friends/requests", h.SendFriendRequest)
	g.GET("/friends/requests/pending", h.GetPendingFriendRequests)
	g.POST("/friends/requests/:id/accept", h.AcceptFriendRequest)
	g.POST("/friends/requests/:id/cancel", h.CancelFriendRequest)
	g.POST("/friends/requests/:id/deny", h.DenyFriendRequest)
	g.GET("/friends", h.GetFriends)
	g.DELETE("/friends/:id", h.RemoveFriend) // Unfriend
}

// SendFriendRequest handles proposing a friendship
func (h *FriendshipHandler) SendFriendRequest(c echo.Context) error {
	claims := authUser(c)

	var req models.CreateFriendRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if claims.UserID == req.ReceiverID {
		return echo.NewHTTPError(http.StatusBadRequest, "Cannot send a friend request to yourself")
	}

	sender, err := h.userRepository.GetUserByID(claims.UserID)
	if err != nil {
		return httpError(err)
	}

	receiver, err := h.userRepository.GetUserByID(req.ReceiverID)
	if err != nil {
		return httpError(err)
	}

	alreadyFriends, err := h.userRepository.AreFriends(sender.ID, receiver.ID)
	if err != nil {
		return httpError(err)
	}
	if alreadyFriends {
		return httpError(apperrors.New(apperrors.ErrCodeDuplicateRequest, "users are already friends"))
	}

	friendRequest := &models.FriendRequest{
		SenderID:   sender.ID,
		ReceiverID: receiver.ID,
		Status:     models.FriendRequestSent,
	}

	if err := h.friendRequestRepository.Create(friendRequest); err != nil {
		return httpError(err)
	}

	h.notifications.SendFriendRequest(c.Request().Context(), sender, receiver)

	return c.JSON(http.StatusCreated, friendRequest)
}

// GetPendingFriendRequests retrieves pending requests involving the
// authenticated user, both incoming and outgoing.
func (h *FriendshipHandler) GetPendingFriendRequests(c echo.Context) error {
	claims := authUser(c)

	received, err := h.friendRequestRepository.ListPendingReceived(claims.UserID)
	if err != nil {
		return httpError(err)
	}
	sent, err := h.friendRequestRepository.ListPendingSent(claims.UserID)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"received": received,
		"sent":     sent,
	})
}

func (h *FriendshipHandler) loadRequest(c echo.Context) (*models.FriendRequest, error) {
	requestID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "Invalid request ID")
	}
	friendRequest, err := h.friendRequestRepository.GetByID(uint(requestID))
	if err != nil {
		return nil, httpError(err)
	}
	return friendRequest, nil
}

// AcceptFriendRequest accepts an incoming request: the mutual friendship
// edge is added in both directions and the request is kept as history with
// status accepted.
func (h *FriendshipHandler) AcceptFriendRequest(c echo.Context) error {
	claims := authUser(c)

	friendRequest, err := h.loadRequest(c)
	if err != nil {
		return err
	}

	// Only the receiver of a request may accept it
	if friendRequest.ReceiverID != claims.UserID {
		return httpError(apperrors.New(apperrors.ErrCodePermissionDenied, "only the receiver may accept a friend request"))
	}

	// The status flip and the mutual edge land in one transaction
	if err := h.friendRequestRepository.Accept(friendRequest.ID); err != nil {
		return httpError(err)
	}

	friendRequest.Status = models.FriendRequestAccepted
	return c.JSON(http.StatusOK, friendRequest)
}

// CancelFriendRequest withdraws the authenticated user's own outgoing
// request. Cancelling a request that is no longer pending is a no-op.
func (h *FriendshipHandler) CancelFriendRequest(c echo.Context) error {
	claims := authUser(c)

	friendRequest, err := h.loadRequest(c)
	if err != nil {
		return err
	}

	if friendRequest.SenderID != claims.UserID {
		return httpError(apperrors.New(apperrors.ErrCodePermissionDenied, "only the sender may cancel a friend request"))
	}

	return h.closePending(c, friendRequest)
}

// DenyFriendRequest declines an incoming request. Denying a request that is
// no longer pending is a no-op.
func (h *FriendshipHandler) DenyFriendRequest(c echo.Context) error {
	claims := authUser(c)

	friendRequest, err := h.loadRequest(c)
	if err != nil {
		return err
	}

	if friendRequest.ReceiverID != claims.UserID {
		return httpError(apperrors.New(apperrors.ErrCodePermissionDenied, "only the receiver may deny a friend request"))
	}

	return h.closePending(c, friendRequest)
}

func (h *FriendshipHandler) closePending(c echo.Context, friendRequest *models.FriendRequest) error {
	err := h.friendRequestRepository.MarkCancelled(friendRequest.ID)
	if err != nil {
		// A request that already reached a terminal state stays as-is
		if apperrors.Code(err) == apperrors.ErrCodeInvalidTransition {
			return c.JSON(http.StatusOK, friendRequest)
		}
		return httpError(err)
	}
	friendRequest.Status = models.FriendRequestCancelled
	return c.JSON(http.StatusOK, friendRequest)
}

// GetFriends retrieves the list of friends for the authenticated user
func (h *FriendshipHandler) GetFriends(c echo.Context) error {
	claims := authUser(c)

	friends, err := h.userRepository.GetFriends(claims.UserID)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, friends)
}

// RemoveFriend handles unfriending: the edge is removed in both directions
// and any lingering pending request between the two users is cancelled.
func (h *FriendshipHandler) RemoveFriend(c echo.Context) error {
	claims := authUser(c)

	friendUserID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid friend user ID")
	}

	if err := h.userRepository.RemoveFriend(claims.UserID, uint(friendUserID)); err != nil {
		return httpError(err)
	}

	if err := h.friendRequestRepository.CancelPendingBetween(claims.UserID, uint(friendUserID)); err != nil {
		return httpError(err)
	}

	return c.NoContent(http.StatusNoContent)
}
