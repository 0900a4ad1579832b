package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Ayesha-Rimione/hackmate/internal/app/models"
	"github.com/Ayesha-Rimione/hackmate/internal/db"
	"github.com/Ayesha-Rimione/hackmate/internal/pkg/apperrors"
	"github.com/Ayesha-Rimione/hackmate/internal/pkg/helpers"
)

// MessagingRepository handles database operations for conversations and messages
type MessagingRepository struct {
	db *pgxpool.Pool
}

// NewMessagingRepository creates a new MessagingRepository
func NewMessagingRepository(db *pgxpool.Pool) *MessagingRepository {
	return &MessagingRepository{db: db}
}

// FindDirectConversation finds an existing two-party conversation between the
// given users. Returns 0 when none exists.
func (r *MessagingRepository) FindDirectConversation(ctx context.Context, userA, userB int64) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx, `
		SELECT c.id
		FROM conversations c
		WHERE EXISTS (SELECT 1 FROM conversation_participants p
				WHERE p.conversation_id = c.id AND p.user_id = $1)
			AND EXISTS (SELECT 1 FROM conversation_participants p
				WHERE p.conversation_id = c.id AND p.user_id = $2)
			AND (SELECT COUNT(*) FROM conversation_participants p
				WHERE p.conversation_id = c.id) = 2
		LIMIT 1
	`, userA, userB).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf("error executing query: %w", err)
	}
	return id, nil
}

// CreateConversation inserts a conversation with its participants in one
// transaction.
func (r *MessagingRepository) CreateConversation(ctx context.Context, participantIDs []int64) (int64, error) {
	var conversationID int64
	err := db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		err := tx.QueryRow(ctx,
			`INSERT INTO conversations DEFAULT VALUES RETURNING id`).Scan(&conversationID)
		if err != nil {
			return fmt.Errorf("error inserting conversation: %w", err)
		}

		for _, userID := range participantIDs {
			_, err := tx.Exec(ctx, `
				INSERT INTO conversation_participants (conversation_id, user_id)
				VALUES ($1, $2)
			`, conversationID, userID)
			if err != nil {
				return fmt.Errorf("error inserting participant: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return conversationID, nil
}

// IsParticipant reports whether the user belongs to the conversation.
func (r *MessagingRepository) IsParticipant(ctx context.Context, conversationID, userID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM conversation_participants
			WHERE conversation_id = $1 AND user_id = $2
		)
	`, conversationID, userID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error executing query: %w", err)
	}
	return exists, nil
}

// GetConversation retrieves a conversation with its participants.
func (r *MessagingRepository) GetConversation(ctx context.Context, id int64) (*models.Conversation, error) {
	var conversation models.Conversation
	err := r.db.QueryRow(ctx,
		`SELECT id, created_at, updated_at FROM conversations WHERE id = $1`, id).
		Scan(&conversation.ID, &conversation.CreatedAt, &conversation.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrConversationNotFound
		}
		return nil, fmt.Errorf("error executing query: %w", err)
	}

	participants, err := r.getParticipants(ctx, id)
	if err != nil {
		return nil, err
	}
	conversation.Participants = participants

	return &conversation, nil
}

func (r *MessagingRepository) getParticipants(ctx context.Context, conversationID int64) ([]*models.User, error) {
	rows, err := r.db.Query(ctx, `
		SELECT u.id, u.email, u.first_name, u.last_name
		FROM users u
		JOIN conversation_participants p ON p.user_id = u.id
		WHERE p.conversation_id = $1
		ORDER BY u.id
	`, conversationID)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		var user models.User
		if err := rows.Scan(&user.ID, &user.Email, &user.FirstName, &user.LastName); err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		users = append(users, &user)
	}

	return users, rows.Err()
}

// GetConversationsByUser retrieves the user's conversations, most recently
// active first, each with participants and its latest message attached.
func (r *MessagingRepository) GetConversationsByUser(ctx context.Context, userID int64) ([]*models.Conversation, error) {
	rows, err := r.db.Query(ctx, `
		SELECT c.id, c.created_at, c.updated_at
		FROM conversations c
		JOIN conversation_participants p ON p.conversation_id = c.id
		WHERE p.user_id = $1
		ORDER BY c.updated_at DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var conversations []*models.Conversation
	for rows.Next() {
		var conversation models.Conversation
		err := rows.Scan(&conversation.ID, &conversation.CreatedAt, &conversation.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		conversations = append(conversations, &conversation)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, conversation := range conversations {
		participants, err := r.getParticipants(ctx, conversation.ID)
		if err != nil {
			return nil, err
		}
		conversation.Participants = participants

		lastMessage, err := r.getLastMessage(ctx, conversation.ID)
		if err != nil {
			return nil, err
		}
		conversation.LastMessage = lastMessage
	}

	return conversations, nil
}

func (r *MessagingRepository) getLastMessage(ctx context.Context, conversationID int64) (*models.Message, error) {
	var message models.Message
	err := r.db.QueryRow(ctx, `
		SELECT id, conversation_id, sender_id, content, is_read, created_at
		FROM messages
		WHERE conversation_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT 1
	`, conversationID).Scan(
		&message.ID,
		&message.ConversationID,
		&message.SenderID,
		&message.Content,
		&message.IsRead,
		&message.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	return &message, nil
}

// CreateMessage appends a message and bumps the conversation's updated_at in
// one transaction so the conversation list sorts by latest activity.
func (r *MessagingRepository) CreateMessage(ctx context.Context, message *models.Message) (int64, error) {
	var id int64
	err := db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		err := tx.QueryRow(ctx, `
			INSERT INTO messages (conversation_id, sender_id, content)
			VALUES ($1, $2, $3)
			RETURNING id
		`, message.ConversationID, message.SenderID, message.Content).Scan(&id)
		if err != nil {
			return fmt.Errorf("error inserting message: %w", err)
		}

		_, err = tx.Exec(ctx,
			`UPDATE conversations SET updated_at = NOW() WHERE id = $1`,
			message.ConversationID)
		if err != nil {
			return fmt.Errorf("error bumping conversation: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

// GetMessages retrieves a page of a conversation's messages in chronological
// order, with sender data attached.
func (r *MessagingRepository) GetMessages(ctx context.Context, conversationID int64, page, pageSize int) ([]*models.Message, int64, error) {
	offset, limit := helpers.CalculateOffsetLimit(page, pageSize)

	rows, err := r.db.Query(ctx, `
		SELECT m.id, m.conversation_id, m.sender_id, m.content, m.is_read, m.created_at,
			u.id, u.email, u.first_name, u.last_name,
			COUNT(*) OVER() AS total_count
		FROM messages m
		JOIN users u ON u.id = m.sender_id
		WHERE m.conversation_id = $1
		ORDER BY m.created_at, m.id
		LIMIT $2 OFFSET $3
	`, conversationID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var messages []*models.Message
	var total int64
	for rows.Next() {
		var message models.Message
		var sender models.User
		err := rows.Scan(
			&message.ID,
			&message.ConversationID,
			&message.SenderID,
			&message.Content,
			&message.IsRead,
			&message.CreatedAt,
			&sender.ID,
			&sender.Email,
			&sender.FirstName,
			&sender.LastName,
			&total,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning row: %w", err)
		}
		message.Sender = &sender
		messages = append(messages, &message)
	}

	return messages, total, rows.Err()
}

// MarkMessagesRead marks all messages in the conversation not sent by the
// reader as read.
func (r *MessagingRepository) MarkMessagesRead(ctx context.Context, conversationID, readerID int64) error {
	_, err := r.db.Exec(ctx, `
		UPDATE messages
		SET is_read = TRUE
		WHERE conversation_id = $1 AND sender_id <> $2 AND NOT is_read
	`, conversationID, readerID)
	if err != nil {
		return fmt.Errorf("error executing query: %w", err)
	}
	return nil
}

// CountUnread counts unread messages addressed to the user across all
// conversations they participate in.
func (r *MessagingRepository) CountUnread(ctx context.Context, userID int64) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*)
		FROM messages m
		JOIN conversation_participants p ON p.conversation_id = m.conversation_id
		WHERE p.user_id = $1 AND m.sender_id <> $1 AND NOT m.is_read
	`, userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error executing query: %w", err)
	}
	return count, nil
}
