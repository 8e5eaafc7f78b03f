package dto

type CreateUserRequest struct {
	Username    string  `json:"username" binding:"notblank"`
	DisplayName string  `json:"display_name" binding:"notblank"`
	Email       *string `json:"email"`
}

type CreateChatRequest struct {
	Title          string   `json:"title" binding:"notblank"`
	Description    *string  `json:"description"`
	ParticipantIDs []uint64 `json:"participant_ids" binding:"required,min=1"`
}

type SendMessageRequest struct {
	AuthorID *uint64 `json:"author_id" binding:"required"`
	Content  string  `json:"content" binding:"notblank"`
}
