package handlers

import (
	"net/http"
	"strconv"

	"github.com/cinelist/backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

const defaultMessageLimit = 50

// MessageHandler serves the authenticated user's notification archive
type MessageHandler struct {
	messageRepository repositories.MessageRepository
}

// NewMessageHandler creates a new MessageHandler
func NewMessageHandler(messageRepo repositories.MessageRepository) *MessageHandler {
	return &MessageHandler{messageRepository: messageRepo}
}

// RegisterMessageRoutes registers message-related routes
func (h *MessageHandler) RegisterMessageRoutes(g *echo.Group) {
	g.GET("/messages", h.ListMessages)
}

// ListMessages retrieves the user's notification messages, newest first
func (h *MessageHandler) ListMessages(c echo.Context) error {
	claims := authUser(c)

	limit := int64(defaultMessageLimit)
	if raw := c.QueryParam("limit"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || parsed < 1 {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid limit")
		}
		limit = parsed
	}

	messages, err := h.messageRepository.ListByRecipient(c.Request().Context(), claims.UserID, limit)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, messages)
}
