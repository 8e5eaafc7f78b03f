package services

import (
	"context"

	"github.com/thereayou/messenger/internal/database"
	"github.com/thereayou/messenger/internal/models"
)

// Репозитории возвращают nil, nil когда записи нет

type UserRepository interface {
	GetByID(ctx context.Context, id uint64) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	Create(ctx context.Context, username, displayName string, email *string) (*models.User, error)
}

type ChatRepository interface {
	Create(ctx context.Context, title string, description *string, participants []models.User) (*models.Chat, error)
	GetByID(ctx context.Context, id uint64) (*models.Chat, error)
	GetWithMessages(ctx context.Context, id uint64) (*models.Chat, error)
	List(ctx context.Context) ([]models.Chat, error)
	AddParticipant(ctx context.Context, chat *models.Chat, user *models.User) error
	Delete(ctx context.Context, id uint64) (bool, error)
}

type MessageRepository interface {
	Create(ctx context.Context, chat *models.Chat, author *models.User, content string) (*models.Message, error)
	ListForChat(ctx context.Context, chatID uint64) ([]models.Message, error)
}

// Store это единица работы: три репозитория поверх одного соединения или одной транзакции.
type Store interface {
	Users() UserRepository
	Chats() ChatRepository
	Messages() MessageRepository
	Transaction(ctx context.Context, fn func(tx Store) error) error
}

type dbStore struct {
	db *database.Database
}

func NewStore(db *database.Database) Store {
	return &dbStore{db: db}
}

func (s *dbStore) Users() UserRepository       { return s.db.Users() }
func (s *dbStore) Chats() ChatRepository       { return s.db.Chats() }
func (s *dbStore) Messages() MessageRepository { return s.db.Messages() }

func (s *dbStore) Transaction(ctx context.Context, fn func(tx Store) error) error {
	return s.db.Transaction(ctx, func(tx *database.Database) error {
		return fn(&dbStore{db: tx})
	})
}
