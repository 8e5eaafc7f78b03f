package services

import (
	"errors"
	"fmt"
)

var (
	ErrDuplicateIdentity    = errors.New("username already exists")
	ErrParticipantsNotFound = errors.New("participants not found")
	ErrNoParticipants       = errors.New("at least one participant is required")
	ErrChatNotFound         = errors.New("chat not found")
	ErrUserNotFound         = errors.New("user not found")
)

// ParticipantsNotFoundError перечисляет все id, которых нет в базе
type ParticipantsNotFoundError struct {
	IDs []uint64
}

func (e *ParticipantsNotFoundError) Error() string {
	return fmt.Sprintf("participants not found: %v", e.IDs)
}

func (e *ParticipantsNotFoundError) Is(target error) bool {
	return target == ErrParticipantsNotFound
}
