package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/thereayou/messenger/internal/handlers/dto"
	"github.com/thereayou/messenger/internal/services"
)

// ListMessages получает историю сообщений чата, от старых к новым
func (h *APIHandler) ListMessages(c *gin.Context) {
	chatID, ok := pathID(c)
	if !ok {
		return
	}

	chat, err := h.svc.GetChat(c.Request.Context(), chatID, false)
	if err != nil {
		h.fail(c, err)
		return
	}
	if chat == nil {
		h.fail(c, services.ErrChatNotFound)
		return
	}

	messages, err := h.svc.ListMessages(c.Request.Context(), chatID)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewMessageList(messages, true))
}

// SendMessage отправляет сообщение; автор не из чата становится участником
func (h *APIHandler) SendMessage(c *gin.Context) {
	chatID, ok := pathID(c)
	if !ok {
		return
	}

	var req dto.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "author_id and content are required")
		return
	}

	message, err := h.svc.SendMessage(c.Request.Context(), chatID, *req.AuthorID, strings.TrimSpace(req.Content))
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewMessageResponse(*message, false))
}
