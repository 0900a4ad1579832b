package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/samber/lo"

	"github.com/Ayesha-Rimione/hackmate/internal/app/models"
	"github.com/Ayesha-Rimione/hackmate/internal/app/models/dto"
	"github.com/Ayesha-Rimione/hackmate/internal/pkg/apperrors"
	"github.com/Ayesha-Rimione/hackmate/internal/pkg/helpers"
)

// messagingRepository is the slice of the messaging repository the messaging
// service needs.
type messagingRepository interface {
	FindDirectConversation(ctx context.Context, userA, userB int64) (int64, error)
	CreateConversation(ctx context.Context, participantIDs []int64) (int64, error)
	IsParticipant(ctx context.Context, conversationID, userID int64) (bool, error)
	GetConversation(ctx context.Context, id int64) (*models.Conversation, error)
	GetConversationsByUser(ctx context.Context, userID int64) ([]*models.Conversation, error)
	CreateMessage(ctx context.Context, message *models.Message) (int64, error)
	GetMessages(ctx context.Context, conversationID int64, page, pageSize int) ([]*models.Message, int64, error)
	MarkMessagesRead(ctx context.Context, conversationID, readerID int64) error
	CountUnread(ctx context.Context, userID int64) (int64, error)
}

// messagingUserFinder resolves users before adding them to a conversation.
type messagingUserFinder interface {
	FindByID(ctx context.Context, id int64) (*models.User, error)
}

// MessagingService handles conversations and their append-only message logs
type MessagingService interface {
	StartConversation(ctx context.Context, callerID int64, req *dto.StartConversationRequest) (*dto.ConversationResponse, error)
	GetConversations(ctx context.Context, callerID int64) ([]dto.ConversationResponse, error)
	SendMessage(ctx context.Context, callerID, conversationID int64, req *dto.SendMessageRequest) (*dto.MessageResponse, error)
	GetMessages(ctx context.Context, callerID, conversationID int64, page, pageSize int) ([]dto.MessageResponse, *dto.PaginationInfo, error)
	GetUnreadCount(ctx context.Context, callerID int64) (*dto.UnreadCountResponse, error)
}

type messagingServiceImpl struct {
	messagingRepo    messagingRepository
	userRepo         messagingUserFinder
	notificationRepo notificationWriter
	logger           zerolog.Logger
}

// NewMessagingService creates a new MessagingService
func NewMessagingService(
	messagingRepo messagingRepository,
	userRepo messagingUserFinder,
	notificationRepo notificationWriter,
	logger zerolog.Logger,
) MessagingService {
	return &messagingServiceImpl{
		messagingRepo:    messagingRepo,
		userRepo:         userRepo,
		notificationRepo: notificationRepo,
		logger:           logger,
	}
}

// StartConversation opens a conversation between the caller and the given
// participants. A direct conversation between two users is reused if one
// already exists instead of creating a duplicate.
func (s *messagingServiceImpl) StartConversation(ctx context.Context, callerID int64, req *dto.StartConversationRequest) (*dto.ConversationResponse, error) {
	participantIDs := lo.Uniq(append([]int64{callerID}, req.ParticipantIDs...))
	if len(participantIDs) < 2 {
		return nil, apperrors.NewBadRequestError("a conversation needs at least one other participant")
	}

	for _, id := range participantIDs {
		if id == callerID {
			continue
		}
		if _, err := s.userRepo.FindByID(ctx, id); err != nil {
			return nil, err
		}
	}

	var conversationID int64
	if len(participantIDs) == 2 {
		existing, err := s.messagingRepo.FindDirectConversation(ctx, participantIDs[0], participantIDs[1])
		if err != nil {
			return nil, err
		}
		conversationID = existing
	}

	if conversationID == 0 {
		id, err := s.messagingRepo.CreateConversation(ctx, participantIDs)
		if err != nil {
			return nil, err
		}
		conversationID = id

		s.logger.Info().
			Int64("conversationID", conversationID).
			Int("participants", len(participantIDs)).
			Msg("Conversation started")
	}

	conversation, err := s.messagingRepo.GetConversation(ctx, conversationID)
	if err != nil {
		return nil, err
	}

	resp := newConversationResponse(conversation)
	return &resp, nil
}

// GetConversations lists the caller's conversations, newest activity first.
func (s *messagingServiceImpl) GetConversations(ctx context.Context, callerID int64) ([]dto.ConversationResponse, error) {
	conversations, err := s.messagingRepo.GetConversationsByUser(ctx, callerID)
	if err != nil {
		return nil, err
	}

	return lo.Map(conversations, func(c *models.Conversation, _ int) dto.ConversationResponse {
		return newConversationResponse(c)
	}), nil
}

func newConversationResponse(c *models.Conversation) dto.ConversationResponse {
	participants := lo.Map(c.Participants, func(u *models.User, _ int) dto.UserBasicResponse {
		return *dto.NewUserBasicResponse(u)
	})

	resp := dto.ConversationResponse{
		ID:           c.ID,
		Participants: participants,
		UpdatedAt:    c.UpdatedAt,
	}
	if c.LastMessage != nil {
		last := dto.NewMessageResponse(c.LastMessage)
		resp.LastMessage = &last
	}
	return resp
}

// SendMessage appends a message. Participant-only. Recipients get a
// notification row pointing at the conversation.
func (s *messagingServiceImpl) SendMessage(ctx context.Context, callerID, conversationID int64, req *dto.SendMessageRequest) (*dto.MessageResponse, error) {
	if strings.TrimSpace(req.Content) == "" {
		return nil, apperrors.NewBadRequestError("message content is required")
	}

	if err := s.requireParticipant(ctx, conversationID, callerID); err != nil {
		return nil, err
	}
	conversation, err := s.messagingRepo.GetConversation(ctx, conversationID)
	if err != nil {
		return nil, err
	}

	message := &models.Message{
		ConversationID: conversationID,
		SenderID:       callerID,
		Content:        req.Content,
	}
	messageID, err := s.messagingRepo.CreateMessage(ctx, message)
	if err != nil {
		return nil, err
	}

	sender, err := s.userRepo.FindByID(ctx, callerID)
	if err != nil {
		return nil, err
	}

	for _, participant := range conversation.Participants {
		if participant.ID == callerID {
			continue
		}
		_, err := s.notificationRepo.Create(ctx, &models.Notification{
			UserID:  participant.ID,
			Type:    models.NotificationMessage,
			Title:   "New message",
			Message: fmt.Sprintf("%s %s sent you a message", sender.FirstName, sender.LastName),
			Target:  models.ConversationTarget(conversationID),
		})
		if err != nil {
			s.logger.Warn().Err(err).
				Int64("userID", participant.ID).
				Msg("Failed to write message notification")
		}
	}

	message.ID = messageID
	message.Sender = sender
	resp := dto.NewMessageResponse(message)
	return &resp, nil
}

// GetMessages retrieves a page of a conversation's messages in creation-time
// order and marks the caller's unread messages as read.
func (s *messagingServiceImpl) GetMessages(ctx context.Context, callerID, conversationID int64, page, pageSize int) ([]dto.MessageResponse, *dto.PaginationInfo, error) {
	if err := s.requireParticipant(ctx, conversationID, callerID); err != nil {
		return nil, nil, err
	}

	messages, total, err := s.messagingRepo.GetMessages(ctx, conversationID, page, pageSize)
	if err != nil {
		return nil, nil, err
	}

	if err := s.messagingRepo.MarkMessagesRead(ctx, conversationID, callerID); err != nil {
		s.logger.Warn().Err(err).Int64("conversationID", conversationID).Msg("Failed to mark messages read")
	}

	responses := lo.Map(messages, func(m *models.Message, _ int) dto.MessageResponse {
		return dto.NewMessageResponse(m)
	})
	pagination := helpers.NewPaginationInfo(total, page, pageSize)

	return responses, &pagination, nil
}

// GetUnreadCount reports the caller's unread message total.
func (s *messagingServiceImpl) GetUnreadCount(ctx context.Context, callerID int64) (*dto.UnreadCountResponse, error) {
	count, err := s.messagingRepo.CountUnread(ctx, callerID)
	if err != nil {
		return nil, err
	}
	return &dto.UnreadCountResponse{UnreadCount: count}, nil
}

// requireParticipant gates conversation access. A nonexistent conversation is
// indistinguishable from one the caller is not part of.
func (s *messagingServiceImpl) requireParticipant(ctx context.Context, conversationID, callerID int64) error {
	ok, err := s.messagingRepo.IsParticipant(ctx, conversationID, callerID)
	if err != nil {
		return err
	}
	if !ok {
		return apperrors.NewForbiddenError("not a participant in this conversation")
	}
	return nil
}
