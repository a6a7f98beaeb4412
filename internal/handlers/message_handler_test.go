package handlers

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/cinelist/backend/internal/models"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListMessagesNewestFirst(t *testing.T) {
	e := echo.New()
	repo := &memoryMessageRepository{}
	h := NewMessageHandler(repo)

	base := time.Now().Add(-time.Hour)
	for i, subject := range []string{"first", "second", "third"} {
		require.NoError(t, repo.Create(context.Background(), &models.Message{
			Subject:     subject,
			ToEmail:     "alice@example.com",
			RecipientID: 1,
			DateSent:    base.Add(time.Duration(i) * time.Minute),
		}))
	}
	require.NoError(t, repo.Create(context.Background(), &models.Message{
		Subject:     "someone else's mail",
		RecipientID: 2,
		DateSent:    base,
	}))

	c, rec := newRequestContext(t, e, http.MethodGet, "/messages", nil, 1)
	require.NoError(t, h.ListMessages(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var messages []models.Message
	decodeBody(t, rec.Body.Bytes(), &messages)
	require.Len(t, messages, 3)
	assert.Equal(t, "third", messages[0].Subject)
	assert.Equal(t, "first", messages[2].Subject)

	c, rec = newRequestContext(t, e, http.MethodGet, "/messages?limit=1", nil, 1)
	require.NoError(t, h.ListMessages(c))
	var limited []models.Message
	decodeBody(t, rec.Body.Bytes(), &limited)
	assert.Len(t, limited, 1)

	c, _ = newRequestContext(t, e, http.MethodGet, "/messages?limit=zero", nil, 1)
	err := h.ListMessages(c)
	assert.Equal(t, http.StatusBadRequest, httpStatus(t, err))
}
