package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/thereayou/messenger/internal/models"
	"github.com/thereayou/messenger/internal/services"
)

// Messenger содержит операции доменного сервиса, нужные HTTP-слою
type Messenger interface {
	CreateUser(ctx context.Context, username, displayName string, email *string) (*models.User, error)
	GetUser(ctx context.Context, id uint64) (*models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	CreateChat(ctx context.Context, title string, participantIDs []uint64, description *string) (*models.Chat, error)
	GetChat(ctx context.Context, id uint64, includeMessages bool) (*models.Chat, error)
	ListChats(ctx context.Context) ([]models.Chat, error)
	DeleteChat(ctx context.Context, id uint64) error
	SendMessage(ctx context.Context, chatID, authorID uint64, content string) (*models.Message, error)
	ListMessages(ctx context.Context, chatID uint64) ([]models.Message, error)
}

var _ Messenger = (*services.MessengerService)(nil)

// APIHandler обслуживает JSON API под /api
type APIHandler struct {
	svc Messenger
}

func NewAPIHandler(svc Messenger) *APIHandler {
	return &APIHandler{svc: svc}
}

// fail переводит доменную ошибку в статус и тело {"error": ...}.
// Неизвестные ошибки прячутся за 500 и попадают в лог запроса.
func (h *APIHandler) fail(c *gin.Context, err error) {
	status, message := http.StatusInternalServerError, "internal server error"

	switch {
	case errors.Is(err, services.ErrDuplicateIdentity):
		status, message = http.StatusConflict, err.Error()
	case errors.Is(err, services.ErrParticipantsNotFound),
		errors.Is(err, services.ErrNoParticipants):
		status, message = http.StatusBadRequest, err.Error()
	case errors.Is(err, services.ErrChatNotFound),
		errors.Is(err, services.ErrUserNotFound):
		status, message = http.StatusNotFound, err.Error()
	default:
		_ = c.Error(err)
	}

	c.JSON(status, gin.H{"error": message})
}

func badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": message})
}

// pathID читает :id; при ошибке ответ уже отправлен
func pathID(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		badRequest(c, "invalid id")
		return 0, false
	}
	return id, true
}
