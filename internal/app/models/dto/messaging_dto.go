package dto

import (
	"time"

	"github.com/Ayesha-Rimione/hackmate/internal/app/models"
)

// StartConversationRequest is the payload for opening a conversation
type StartConversationRequest struct {
	ParticipantIDs []int64 `json:"participantIds" binding:"required"`
}

// SendMessageRequest is the payload for appending a message
type SendMessageRequest struct {
	Content string `json:"content" binding:"required" example:"Hi! Still looking for a frontend dev?"`
}

// MessageResponse is a single message entry
type MessageResponse struct {
	ID             int64              `json:"id"`
	ConversationID int64              `json:"conversationId"`
	Sender         *UserBasicResponse `json:"sender,omitempty"`
	Content        string             `json:"content"`
	IsRead         bool               `json:"isRead"`
	CreatedAt      time.Time          `json:"createdAt"`
}

// NewMessageResponse maps a message model to its response form.
func NewMessageResponse(message *models.Message) MessageResponse {
	return MessageResponse{
		ID:             message.ID,
		ConversationID: message.ConversationID,
		Sender:         NewUserBasicResponse(message.Sender),
		Content:        message.Content,
		IsRead:         message.IsRead,
		CreatedAt:      message.CreatedAt,
	}
}

// ConversationResponse is a conversation summary
type ConversationResponse struct {
	ID           int64               `json:"id"`
	Participants []UserBasicResponse `json:"participants"`
	LastMessage  *MessageResponse    `json:"lastMessage,omitempty"`
	UpdatedAt    time.Time           `json:"updatedAt"`
}

// UnreadCountResponse reports the caller's unread message total
type UnreadCountResponse struct {
	UnreadCount int64 `json:"unreadCount" example:"4"`
}
