package services

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/samber/lo"

	"github.com/Ayesha-Rimione/hackmate/internal/app/models"
	"github.com/Ayesha-Rimione/hackmate/internal/app/models/dto"
	"github.com/Ayesha-Rimione/hackmate/internal/pkg/helpers"
)

// notificationRepository is the slice of the notification repository the
// notification service needs.
type notificationRepository interface {
	GetByUser(ctx context.Context, userID int64, unreadOnly bool, page, pageSize int) ([]*models.Notification, int64, error)
	CountUnread(ctx context.Context, userID int64) (int64, error)
	MarkRead(ctx context.Context, id, userID int64) error
	MarkAllRead(ctx context.Context, userID int64) error
}

// NotificationService handles the per-user notification log
type NotificationService interface {
	GetNotifications(ctx context.Context, userID int64, unreadOnly bool, page, pageSize int) (*dto.NotificationListResponse, error)
	GetUnreadCount(ctx context.Context, userID int64) (int64, error)
	MarkRead(ctx context.Context, userID, notificationID int64) error
	MarkAllRead(ctx context.Context, userID int64) error
}

type notificationServiceImpl struct {
	notificationRepo notificationRepository
	logger           zerolog.Logger
}

// NewNotificationService creates a new NotificationService
func NewNotificationService(notificationRepo notificationRepository, logger zerolog.Logger) NotificationService {
	return &notificationServiceImpl{notificationRepo: notificationRepo, logger: logger}
}

// GetNotifications retrieves a page of the caller's notifications, newest first.
func (s *notificationServiceImpl) GetNotifications(ctx context.Context, userID int64, unreadOnly bool, page, pageSize int) (*dto.NotificationListResponse, error) {
	notifications, total, err := s.notificationRepo.GetByUser(ctx, userID, unreadOnly, page, pageSize)
	if err != nil {
		return nil, err
	}

	responses := lo.Map(notifications, func(n *models.Notification, _ int) dto.NotificationResponse {
		return dto.NewNotificationResponse(n)
	})

	return &dto.NotificationListResponse{
		Notifications:  responses,
		PaginationInfo: helpers.NewPaginationInfo(total, page, pageSize),
	}, nil
}

// GetUnreadCount reports the caller's unread notification total.
func (s *notificationServiceImpl) GetUnreadCount(ctx context.Context, userID int64) (int64, error) {
	return s.notificationRepo.CountUnread(ctx, userID)
}

// MarkRead marks one of the caller's notifications as read.
func (s *notificationServiceImpl) MarkRead(ctx context.Context, userID, notificationID int64) error {
	return s.notificationRepo.MarkRead(ctx, notificationID, userID)
}

// MarkAllRead marks all of the caller's notifications as read.
func (s *notificationServiceImpl) MarkAllRead(ctx context.Context, userID int64) error {
	return s.notificationRepo.MarkAllRead(ctx, userID)
}
