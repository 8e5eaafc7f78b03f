package database

import (
	"context"
	"fmt"

	"github.com/thereayou/messenger/internal/models"
	"gorm.io/gorm"
)

type MessageRepository struct {
	db *gorm.DB
}

func (r *MessageRepository) Create(ctx context.Context, chat *models.Chat, author *models.User, content string) (*models.Message, error) {
	message := &models.Message{
		ChatID:   chat.ID,
		AuthorID: author.ID,
		Content:  content,
	}
	if err := r.db.WithContext(ctx).Create(message).Error; err != nil {
		return nil, fmt.Errorf("create message in chat %d: %w", chat.ID, err)
	}
	message.Author = *author
	return message, nil
}

// ListForChat от старых к новым, с авторами
func (r *MessageRepository) ListForChat(ctx context.Context, chatID uint64) ([]models.Message, error) {
	var messages []models.Message
	err := r.db.WithContext(ctx).
		Where("chat_id = ?", chatID).
		Order("created_at ASC").
		Order("id ASC").
		Preload("Author").
		Find(&messages).Error
	if err != nil {
		return nil, fmt.Errorf("list messages of chat %d: %w", chatID, err)
	}
	return messages, nil
}
