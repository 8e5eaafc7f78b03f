package models

import "time"

type Message struct {
	ID        uint64 `gorm:"primaryKey;autoIncrement"`
	Content   string `gorm:"type:text;not null"`
	ChatID    uint64 `gorm:"not null;index"`
	AuthorID  uint64 `gorm:"not null;index"`
	CreatedAt time.Time
	UpdatedAt time.Time

	// Связи
	Author User `gorm:"foreignKey:AuthorID"`
}
