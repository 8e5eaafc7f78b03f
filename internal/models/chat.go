package models

import "time"

type Chat struct {
	ID          uint64  `gorm:"primaryKey;autoIncrement"`
	Title       string  `gorm:"size:120;not null"`
	Description *string `gorm:"size:255"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Связи
	Participants []User    `gorm:"many2many:chat_users"`
	Messages     []Message `gorm:"foreignKey:ChatID;constraint:OnDelete:CASCADE"`
}
