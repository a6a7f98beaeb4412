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
	"gorm.io/gorm"
)

func newFriendshipHandler(db *gorm.DB) (*FriendshipHandler, repositories.UserRepository) {
	userRepo := repositories.NewPostgresUserRepository(db)
	friendRequestRepo := repositories.NewPostgresFriendRequestRepository(db)
	return NewFriendshipHandler(friendRequestRepo, userRepo, newNotifyService()), userRepo
}

func sendFriendRequest(t *testing.T, e *echo.Echo, h *FriendshipHandler, senderID, receiverID uint) *models.FriendRequest {
	t.Helper()
	c, rec := newRequestContext(t, e, http.MethodPost, "/friends/requests",
		models.CreateFriendRequest{ReceiverID: receiverID}, senderID)
	require.NoError(t, h.SendFriendRequest(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var created models.FriendRequest
	decodeBody(t, rec.Body.Bytes(), &created)
	return &created
}

func TestFriendRequestLifecycleAcceptance(t *testing.T) {
	db := newTestDB(t)
	e := echo.New()
	h, userRepo := newFriendshipHandler(db)
	alice := createTestUser(t, db, "Alice", "alice@example.com")
	bob := createTestUser(t, db, "Bob", "bob@example.com")

	created := sendFriendRequest(t, e, h, alice.ID, bob.ID)
	assert.Equal(t, models.FriendRequestSent, created.Status)

	c, rec := newRequestContext(t, e, http.MethodPost, "/", nil, bob.ID)
	c.SetParamNames("id")
	c.SetParamValues(fmt.Sprint(created.ID))
	require.NoError(t, h.AcceptFriendRequest(c))
	require.Equal(t, http.StatusOK, rec.Code)

	// Acceptance makes the friendship mutual
	forward, err := userRepo.AreFriends(alice.ID, bob.ID)
	require.NoError(t, err)
	reverse, err := userRepo.AreFriends(bob.ID, alice.ID)
	require.NoError(t, err)
	assert.True(t, forward)
	assert.True(t, reverse)
}

func TestSendFriendRequestToSelf(t *testing.T) {
	db := newTestDB(t)
	e := echo.New()
	h, _ := newFriendshipHandler(db)
	alice := createTestUser(t, db, "Alice", "alice@example.com")

	c, _ := newRequestContext(t, e, http.MethodPost, "/friends/requests",
		models.CreateFriendRequest{ReceiverID: alice.ID}, alice.ID)
	err := h.SendFriendRequest(c)
	assert.Equal(t, http.StatusBadRequest, httpStatus(t, err))
}

func TestSendFriendRequestToExistingFriend(t *testing.T) {
	db := newTestDB(t)
	e := echo.New()
	h, userRepo := newFriendshipHandler(db)
	alice := createTestUser(t, db, "Alice", "alice@example.com")
	bob := createTestUser(t, db, "Bob", "bob@example.com")
	require.NoError(t, userRepo.AddFriend(alice.ID, bob.ID))

	c, _ := newRequestContext(t, e, http.MethodPost, "/friends/requests",
		models.CreateFriendRequest{ReceiverID: bob.ID}, alice.ID)
	err := h.SendFriendRequest(c)
	assert.Equal(t, http.StatusConflict, httpStatus(t, err))
}

func TestAcceptFriendRequestRequiresReceiver(t *testing.T) {
	db := newTestDB(t)
	e := echo.New()
	h, _ := newFriendshipHandler(db)
	alice := createTestUser(t, db, "Alice", "alice@example.com")
	bob := createTestUser(t, db, "Bob", "bob@example.com")

	created := sendFriendRequest(t, e, h, alice.ID, bob.ID)

	// The sender cannot accept their own request
	c, _ := newRequestContext(t, e, http.MethodPost, "/", nil, alice.ID)
	c.SetParamNames("id")
	c.SetParamValues(fmt.Sprint(created.ID))
	err := h.AcceptFriendRequest(c)
	assert.Equal(t, http.StatusForbidden, httpStatus(t, err))
}

func TestCancelFriendRequestIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	e := echo.New()
	h, _ := newFriendshipHandler(db)
	alice := createTestUser(t, db, "Alice", "alice@example.com")
	bob := createTestUser(t, db, "Bob", "bob@example.com")

	created := sendFriendRequest(t, e, h, alice.ID, bob.ID)

	for i := 0; i < 2; i++ {
		c, rec := newRequestContext(t, e, http.MethodPost, "/", nil, alice.ID)
		c.SetParamNames("id")
		c.SetParamValues(fmt.Sprint(created.ID))
		require.NoError(t, h.CancelFriendRequest(c))
		assert.Equal(t, http.StatusOK, rec.Code)
	}

	var stored models.FriendRequest
	require.NoError(t, db.First(&stored, created.ID).Error)
	assert.Equal(t, models.FriendRequestCancelled, stored.Status)
}

func TestDenyFriendRequestRequiresReceiver(t *testing.T) {
	db := newTestDB(t)
	e := echo.New()
	h, _ := newFriendshipHandler(db)
	alice := createTestUser(t, db, "Alice", "alice@example.com")
	bob := createTestUser(t, db, "Bob", "bob@example.com")

	created := sendFriendRequest(t, e, h, alice.ID, bob.ID)

	c, _ := newRequestContext(t, e, http.MethodPost, "/", nil, alice.ID)
	c.SetParamNames("id")
	c.SetParamValues(fmt.Sprint(created.ID))
	err := h.DenyFriendRequest(c)
	assert.Equal(t, http.StatusForbidden, httpStatus(t, err))
}

func TestRemoveFriendCancelsLingeringRequests(t *testing.T) {
	db := newTestDB(t)
	e := echo.New()
	h, userRepo := newFriendshipHandler(db)
	alice := createTestUser(t, db, "Alice", "alice@example.com")
	bob := createTestUser(t, db, "Bob", "bob@example.com")

	created := sendFriendRequest(t, e, h, alice.ID, bob.ID)
	require.NoError(t, userRepo.AddFriend(alice.ID, bob.ID))

	c, rec := newRequestContext(t, e, http.MethodDelete, "/", nil, bob.ID)
	c.SetParamNames("id")
	c.SetParamValues(fmt.Sprint(alice.ID))
	require.NoError(t, h.RemoveFriend(c))
	assert.Equal(t, http.StatusNoContent, rec.Code)

	friends, err := userRepo.GetFriends(alice.ID)
	require.NoError(t, err)
	assert.Empty(t, friends)

	var stored models.FriendRequest
	require.NoError(t, db.First(&stored, created.ID).Error)
	assert.Equal(t, models.FriendRequestCancelled, stored.Status)
}
