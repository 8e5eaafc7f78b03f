package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/samber/lo"
	"github.com/thereayou/messenger/internal/models"
	"gorm.io/gorm"
)

type ChatRepository struct {
	db *gorm.DB
}

// Участники всегда в порядке id, чтобы страницы не "прыгали"
func orderedParticipants(db *gorm.DB) *gorm.DB {
	return db.Order("users.id ASC")
}

func orderedMessages(db *gorm.DB) *gorm.DB {
	return db.Order("messages.created_at ASC").Order("messages.id ASC")
}

// Create сохраняет чат и строки chat_users. Сами пользователи не перезаписываются.
func (r *ChatRepository) Create(ctx context.Context, title string, description *string, participants []models.User) (*models.Chat, error) {
	chat := &models.Chat{
		Title:        title,
		Description:  description,
		Participants: participants,
	}
	if err := r.db.WithContext(ctx).Omit("Participants.*").Create(chat).Error; err != nil {
		return nil, fmt.Errorf("create chat: %w", err)
	}
	return chat, nil
}

// GetByID загружает чат с участниками, но без сообщений
func (r *ChatRepository) GetByID(ctx context.Context, id uint64) (*models.Chat, error) {
	var chat models.Chat
	err := r.db.WithContext(ctx).
		Preload("Participants", orderedParticipants).
		First(&chat, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get chat %d: %w", id, err)
	}
	return &chat, nil
}

// GetWithMessages дополнительно подгружает сообщения вместе с авторами
func (r *ChatRepository) GetWithMessages(ctx context.Context, id uint64) (*models.Chat, error) {
	var chat models.Chat
	err := r.db.WithContext(ctx).
		Preload("Participants", orderedParticipants).
		Preload("Messages", orderedMessages).
		Preload("Messages.Author").
		First(&chat, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get chat %d with messages: %w", id, err)
	}
	return &chat, nil
}

func (r *ChatRepository) List(ctx context.Context) ([]models.Chat, error) {
	var chats []models.Chat
	err := r.db.WithContext(ctx).
		Preload("Participants", orderedParticipants).
		Order("title ASC").
		Order("id ASC").
		Find(&chats).Error
	if err != nil {
		return nil, fmt.Errorf("list chats: %w", err)
	}
	return chats, nil
}

// AddParticipant идемпотентен: повторный вызов ничего не меняет,
// а вставка в chat_users игнорирует конфликт по (chat_id, user_id).
func (r *ChatRepository) AddParticipant(ctx context.Context, chat *models.Chat, user *models.User) error {
	if lo.ContainsBy(chat.Participants, func(p models.User) bool { return p.ID == user.ID }) {
		return nil
	}
	if err := r.db.WithContext(ctx).Model(chat).Association("Participants").Append(user); err != nil {
		return fmt.Errorf("add user %d to chat %d: %w", user.ID, chat.ID, err)
	}
	return nil
}

// Delete удаляет чат вместе с сообщениями и участием. Возвращает false, если чата не было.
func (r *ChatRepository) Delete(ctx context.Context, id uint64) (bool, error) {
	db := r.db.WithContext(ctx)

	var chat models.Chat
	if err := db.First(&chat, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("get chat %d: %w", id, err)
	}

	if err := db.Where("chat_id = ?", id).Delete(&models.Message{}).Error; err != nil {
		return false, fmt.Errorf("delete messages of chat %d: %w", id, err)
	}
	if err := db.Model(&chat).Association("Participants").Clear(); err != nil {
		return false, fmt.Errorf("clear participants of chat %d: %w", id, err)
	}
	if err := db.Delete(&chat).Error; err != nil {
		return false, fmt.Errorf("delete chat %d: %w", id, err)
	}
	return true, nil
}
