package dto

import (
	"github.com/samber/lo"
	"github.com/thereayou/messenger/internal/models"
)

type ChatResponse struct {
	ID           uint64         `json:"id"`
	Title        string         `json:"title"`
	Description  *string        `json:"description"`
	Participants []UserResponse `json:"participants"`
}

// ChatDetailResponse это чат вместе с сообщениями и их авторами
type ChatDetailResponse struct {
	ChatResponse
	Messages []MessageResponse `json:"messages"`
}

func NewChatResponse(c models.Chat) ChatResponse {
	return ChatResponse{
		ID:           c.ID,
		Title:        c.Title,
		Description:  c.Description,
		Participants: NewUserList(c.Participants),
	}
}

func NewChatDetailResponse(c models.Chat) ChatDetailResponse {
	return ChatDetailResponse{
		ChatResponse: NewChatResponse(c),
		Messages:     NewMessageList(c.Messages, true),
	}
}

func NewChatList(chats []models.Chat) []ChatResponse {
	return lo.Map(chats, func(c models.Chat, _ int) ChatResponse {
		return NewChatResponse(c)
	})
}
