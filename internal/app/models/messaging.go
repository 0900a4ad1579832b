package models

import "time"

// Conversation groups messages between two or more users
type Conversation struct {
	ID        int64     `json:"id" db:"id"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`

	// Related entities
	Participants []*User  `json:"participants,omitempty"`
	LastMessage  *Message `json:"lastMessage,omitempty"`
}

// Message is a single entry in a conversation. The log is append-only;
// messages are ordered by creation time.
type Message struct {
	ID             int64     `json:"id" db:"id"`
	ConversationID int64     `json:"conversationId" db:"conversation_id"`
	SenderID       int64     `json:"senderId" db:"sender_id"`
	Content        string    `json:"content" db:"content"`
	IsRead         bool      `json:"isRead" db:"is_read"`
	CreatedAt      time.Time `json:"createdAt" db:"created_at"`

	// Related entities
	Sender *User `json:"sender,omitempty"`
}
