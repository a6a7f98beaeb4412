package repositories

import (
	"testing"

	"github.com/cinelist/backend/pkg/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetUserByEmailNotFound(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresUserRepository(db)

	_, err := repo.GetUserByEmail("nobody@example.com")
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeNotFound, apperrors.Code(err))
}

func TestAddFriendIsSymmetric(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresUserRepository(db)
	alice := createTestUser(t, db, "Alice", "alice@example.com")
	bob := createTestUser(t, db, "Bob", "bob@example.com")

	require.NoError(t, repo.AddFriend(alice.ID, bob.ID))

	forward, err := repo.AreFriends(alice.ID, bob.ID)
	require.NoError(t, err)
	reverse, err := repo.AreFriends(bob.ID, alice.ID)
	require.NoError(t, err)
	assert.True(t, forward)
	assert.True(t, reverse)

	bobFriends, err := repo.GetFriends(bob.ID)
	require.NoError(t, err)
	require.Len(t, bobFriends, 1)
	assert.Equal(t, alice.ID, bobFriends[0].ID)
}

func TestAddFriendIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresUserRepository(db)
	alice := createTestUser(t, db, "Alice", "alice@example.com")
	bob := createTestUser(t, db, "Bob", "bob@example.com")

	require.NoError(t, repo.AddFriend(alice.ID, bob.ID))
	require.NoError(t, repo.AddFriend(alice.ID, bob.ID))

	friends, err := repo.GetFriends(alice.ID)
	require.NoError(t, err)
	assert.Len(t, friends, 1)
}

func TestRemoveFriendRemovesBothDirections(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresUserRepository(db)
	alice := createTestUser(t, db, "Alice", "alice@example.com")
	bob := createTestUser(t, db, "Bob", "bob@example.com")

	require.NoError(t, repo.AddFriend(alice.ID, bob.ID))
	require.NoError(t, repo.RemoveFriend(bob.ID, alice.ID))

	forward, err := repo.AreFriends(alice.ID, bob.ID)
	require.NoError(t, err)
	reverse, err := repo.AreFriends(bob.ID, alice.ID)
	require.NoError(t, err)
	assert.False(t, forward)
	assert.False(t, reverse)
}

func TestSearchUsersMatchesNameAndEmail(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresUserRepository(db)
	createTestUser(t, db, "Alice", "alice@example.com")
	createTestUser(t, db, "Bob", "bob@example.com")

	byName, err := repo.SearchUsers("aLiCe")
	require.NoError(t, err)
	require.Len(t, byName, 1)
	assert.Equal(t, "Alice", byName[0].FirstName)

	byEmail, err := repo.SearchUsers("bob@")
	require.NoError(t, err)
	require.Len(t, byEmail, 1)
	assert.Equal(t, "Bob", byEmail[0].FirstName)
}
