package dto

import (
	"time"

	"github.com/samber/lo"
	"github.com/thereayou/messenger/internal/models"
)

// MessageResponse структура для исходящих сообщений
type MessageResponse struct {
	ID        uint64        `json:"id"`
	Content   string        `json:"content"`
	ChatID    uint64        `json:"chat_id"`
	AuthorID  uint64        `json:"author_id"`
	CreatedAt *string       `json:"created_at"`
	Author    *UserResponse `json:"author,omitempty"`
}

// NewMessageResponse добавляет автора только по запросу и только если он загружен
func NewMessageResponse(m models.Message, withAuthor bool) MessageResponse {
	resp := MessageResponse{
		ID:       m.ID,
		Content:  m.Content,
		ChatID:   m.ChatID,
		AuthorID: m.AuthorID,
	}
	if !m.CreatedAt.IsZero() {
		created := m.CreatedAt.UTC().Format(time.RFC3339)
		resp.CreatedAt = &created
	}
	if withAuthor && m.Author.ID != 0 {
		author := NewUserResponse(m.Author)
		resp.Author = &author
	}
	return resp
}

func NewMessageList(messages []models.Message, withAuthor bool) []MessageResponse {
	return lo.Map(messages, func(m models.Message, _ int) MessageResponse {
		return NewMessageResponse(m, withAuthor)
	})
}
