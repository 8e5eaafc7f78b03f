package database

import (
	"context"

	"gorm.io/gorm"
)

// Database владеет *gorm.DB. Внутри Transaction тот же тип оборачивает tx,
// поэтому репозитории не знают, работают ли они в транзакции.
type Database struct {
	db *gorm.DB
}

func NewDatabase(db *gorm.DB) *Database {
	return &Database{db: db}
}

func (d *Database) Gorm() *gorm.DB {
	return d.db
}

func (d *Database) Users() *UserRepository {
	return &UserRepository{db: d.db}
}

func (d *Database) Chats() *ChatRepository {
	return &ChatRepository{db: d.db}
}

func (d *Database) Messages() *MessageRepository {
	return &MessageRepository{db: d.db}
}

// Transaction выполняет fn в одной транзакции: commit при nil, rollback при ошибке.
// Ошибка fn возвращается без изменений.
func (d *Database) Transaction(ctx context.Context, fn func(tx *Database) error) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewDatabase(tx))
	})
}

func (d *Database) Ping(ctx context.Context) error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (d *Database) Close() error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
