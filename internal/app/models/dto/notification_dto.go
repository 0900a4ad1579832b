package dto

import (
	"time"

	"github.com/Ayesha-Rimione/hackmate/internal/app/models"
)

// NotificationTargetResponse is the typed reference carried by a notification
type NotificationTargetResponse struct {
	Kind string `json:"kind" example:"invitation"`
	ID   int64  `json:"id" example:"12"`
}

// NotificationResponse is a single notification entry
type NotificationResponse struct {
	ID        int64                       `json:"id"`
	Type      string                      `json:"type" example:"team_invitation"`
	Title     string                      `json:"title"`
	Message   string                      `json:"message"`
	Target    *NotificationTargetResponse `json:"target,omitempty"`
	IsRead    bool                        `json:"isRead"`
	CreatedAt time.Time                   `json:"createdAt"`
}

// NewNotificationResponse maps a notification model to its response form.
func NewNotificationResponse(n *models.Notification) NotificationResponse {
	resp := NotificationResponse{
		ID:        n.ID,
		Type:      string(n.Type),
		Title:     n.Title,
		Message:   n.Message,
		IsRead:    n.IsRead,
		CreatedAt: n.CreatedAt,
	}
	if !n.Target.IsZero() {
		resp.Target = &NotificationTargetResponse{
			Kind: string(n.Target.Kind),
			ID:   n.Target.ID,
		}
	}
	return resp
}

// NotificationListResponse is a paginated notification list
type NotificationListResponse struct {
	Notifications  []NotificationResponse `json:"notifications"`
	PaginationInfo PaginationInfo         `json:"pagination"`
}
