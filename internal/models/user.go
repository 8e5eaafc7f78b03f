package models

import "time"

type User struct {
	ID          uint64  `gorm:"primaryKey;autoIncrement"`
	Username    string  `gorm:"size:80;uniqueIndex;not null"`
	DisplayName string  `gorm:"size:120;not null"`
	Email       *string `gorm:"size:120;uniqueIndex"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
