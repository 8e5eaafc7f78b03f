package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/thereayou/messenger/internal/handlers/dto"
	"github.com/thereayou/messenger/internal/services"
)

const (
	errTitleRequired       = "title is required"
	errParticipantsInvalid = "participant_ids must be a non-empty list"
)

func (h *APIHandler) ListChats(c *gin.Context) {
	chats, err := h.svc.ListChats(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewChatList(chats))
}

// CreateChat создаёт чат. Сначала проверяется название, потом список участников.
func (h *APIHandler) CreateChat(c *gin.Context) {
	var req dto.CreateChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, createChatBindError(err))
		return
	}

	chat, err := h.svc.CreateChat(c.Request.Context(), strings.TrimSpace(req.Title), req.ParticipantIDs, req.Description)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewChatResponse(*chat))
}

// GetChat возвращает чат вместе с сообщениями
func (h *APIHandler) GetChat(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	chat, err := h.svc.GetChat(c.Request.Context(), id, true)
	if err != nil {
		h.fail(c, err)
		return
	}
	if chat == nil {
		h.fail(c, services.ErrChatNotFound)
		return
	}

	c.JSON(http.StatusOK, dto.NewChatDetailResponse(*chat))
}

func (h *APIHandler) DeleteChat(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.svc.DeleteChat(c.Request.Context(), id); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func createChatBindError(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			if fe.Field() == "Title" {
				return errTitleRequired
			}
		}
		return errParticipantsInvalid
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && strings.HasPrefix(typeErr.Field, "participant_ids") {
		return errParticipantsInvalid
	}

	// Нечитаемое тело равносильно пустому
	return errTitleRequired
}
