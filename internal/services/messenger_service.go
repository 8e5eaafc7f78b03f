package services

import (
	"context"
	"errors"

	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
	"github.com/thereayou/messenger/internal/database"
	"github.com/thereayou/messenger/internal/metrics"
	"github.com/thereayou/messenger/internal/models"
)

// MessengerService единственное место, где отсутствующие данные и нарушения
// уникальности превращаются в доменные ошибки. Каждая запись идёт в одной транзакции.
type MessengerService struct {
	store Store
	log   logrus.FieldLogger
}

func NewMessengerService(store Store, log logrus.FieldLogger) *MessengerService {
	return &MessengerService{store: store, log: log}
}

func (s *MessengerService) CreateUser(ctx context.Context, username, displayName string, email *string) (*models.User, error) {
	if email != nil && *email == "" {
		email = nil
	}

	var user *models.User
	err := s.store.Transaction(ctx, func(tx Store) error {
		existing, err := tx.Users().GetByUsername(ctx, username)
		if err != nil {
			return err
		}
		if existing != nil {
			return ErrDuplicateIdentity
		}

		user, err = tx.Users().Create(ctx, username, displayName, email)
		return err
	})
	if err != nil {
		// Гонка между проверкой и вставкой или занятый email
		if database.IsUniqueViolation(err) {
			return nil, ErrDuplicateIdentity
		}
		if !errors.Is(err, ErrDuplicateIdentity) {
			s.log.WithError(err).WithField("username", username).Error("create user failed")
		}
		return nil, err
	}

	metrics.RecordUserCreated()
	s.log.WithFields(logrus.Fields{"user_id": user.ID, "username": user.Username}).Info("user created")
	return user, nil
}

func (s *MessengerService) CreateChat(ctx context.Context, title string, participantIDs []uint64, description *string) (*models.Chat, error) {
	if len(participantIDs) == 0 {
		return nil, ErrNoParticipants
	}
	if description != nil && *description == "" {
		description = nil
	}

	var chat *models.Chat
	err := s.store.Transaction(ctx, func(tx Store) error {
		participants := make([]models.User, 0, len(participantIDs))
		var missing []uint64
		for _, id := range lo.Uniq(participantIDs) {
			user, err := tx.Users().GetByID(ctx, id)
			if err != nil {
				return err
			}
			if user == nil {
				missing = append(missing, id)
				continue
			}
			participants = append(participants, *user)
		}
		if len(missing) > 0 {
			return &ParticipantsNotFoundError{IDs: missing}
		}

		var err error
		chat, err = tx.Chats().Create(ctx, title, description, participants)
		return err
	})
	if err != nil {
		if !errors.Is(err, ErrParticipantsNotFound) {
			s.log.WithError(err).WithField("title", title).Error("create chat failed")
		}
		return nil, err
	}

	metrics.RecordChatCreated()
	s.log.WithFields(logrus.Fields{
		"chat_id":      chat.ID,
		"participants": len(chat.Participants),
	}).Info("chat created")
	return chat, nil
}

// SendMessage проверяет сначала чат, потом автора. Автор вне чата добавляется в участники.
func (s *MessengerService) SendMessage(ctx context.Context, chatID, authorID uint64, content string) (*models.Message, error) {
	var (
		message *models.Message
		joined  bool
	)
	err := s.store.Transaction(ctx, func(tx Store) error {
		chat, err := tx.Chats().GetByID(ctx, chatID)
		if err != nil {
			return err
		}
		if chat == nil {
			return ErrChatNotFound
		}

		author, err := tx.Users().GetByID(ctx, authorID)
		if err != nil {
			return err
		}
		if author == nil {
			return ErrUserNotFound
		}

		if !lo.ContainsBy(chat.Participants, func(p models.User) bool { return p.ID == author.ID }) {
			if err := tx.Chats().AddParticipant(ctx, chat, author); err != nil {
				return err
			}
			joined = true
		}

		message, err = tx.Messages().Create(ctx, chat, author, content)
		return err
	})
	if err != nil {
		if !errors.Is(err, ErrChatNotFound) && !errors.Is(err, ErrUserNotFound) {
			s.log.WithError(err).WithField("chat_id", chatID).Error("send message failed")
		}
		return nil, err
	}

	if joined {
		metrics.RecordParticipantJoined()
		s.log.WithFields(logrus.Fields{"chat_id": chatID, "user_id": authorID}).Info("user joined chat")
	}
	metrics.RecordMessageSent()
	return message, nil
}

// DeleteChat удаляет чат вместе с сообщениями
func (s *MessengerService) DeleteChat(ctx context.Context, id uint64) error {
	err := s.store.Transaction(ctx, func(tx Store) error {
		deleted, err := tx.Chats().Delete(ctx, id)
		if err != nil {
			return err
		}
		if !deleted {
			return ErrChatNotFound
		}
		return nil
	})
	if err != nil {
		if !errors.Is(err, ErrChatNotFound) {
			s.log.WithError(err).WithField("chat_id", id).Error("delete chat failed")
		}
		return err
	}

	metrics.RecordChatDeleted()
	s.log.WithField("chat_id", id).Info("chat deleted")
	return nil
}

func (s *MessengerService) ListUsers(ctx context.Context) ([]models.User, error) {
	return s.store.Users().List(ctx)
}

// GetUser возвращает nil, nil если пользователя нет
func (s *MessengerService) GetUser(ctx context.Context, id uint64) (*models.User, error) {
	return s.store.Users().GetByID(ctx, id)
}

func (s *MessengerService) ListChats(ctx context.Context) ([]models.Chat, error) {
	return s.store.Chats().List(ctx)
}

// GetChat возвращает nil, nil если чата нет
func (s *MessengerService) GetChat(ctx context.Context, id uint64, includeMessages bool) (*models.Chat, error) {
	if includeMessages {
		return s.store.Chats().GetWithMessages(ctx, id)
	}
	return s.store.Chats().GetByID(ctx, id)
}

func (s *MessengerService) ListMessages(ctx context.Context, chatID uint64) ([]models.Message, error) {
	return s.store.Messages().ListForChat(ctx, chatID)
}
