package models

import "time"

// NotificationType categorizes notifications
type NotificationType string

const (
	NotificationTeamInvitation NotificationType = "team_invitation"
	NotificationJoinRequest    NotificationType = "join_request"
	NotificationEventUpdate    NotificationType = "event_update"
	NotificationMessage        NotificationType = "message"
	NotificationGeneral        NotificationType = "general"
)

// TargetKind is the closed set of entities a notification can point at.
// A tagged target replaces the loose id+type string pair so references
// cannot name unknown kinds.
type TargetKind string

const (
	TargetTeam         TargetKind = "team"
	TargetEvent        TargetKind = "event"
	TargetInvitation   TargetKind = "invitation"
	TargetJoinRequest  TargetKind = "join_request"
	TargetConversation TargetKind = "conversation"
)

// NotificationTarget is a typed reference to the entity a notification is
// about. The zero value means the notification has no target.
type NotificationTarget struct {
	Kind TargetKind `json:"kind" db:"target_kind"`
	ID   int64      `json:"id" db:"target_id"`
}

// IsZero reports whether the target is unset.
func (t NotificationTarget) IsZero() bool {
	return t.Kind == "" && t.ID == 0
}

// TeamTarget builds a target pointing at a team.
func TeamTarget(id int64) NotificationTarget {
	return NotificationTarget{Kind: TargetTeam, ID: id}
}

// EventTarget builds a target pointing at an event.
func EventTarget(id int64) NotificationTarget {
	return NotificationTarget{Kind: TargetEvent, ID: id}
}

// InvitationTarget builds a target pointing at a team invitation.
func InvitationTarget(id int64) NotificationTarget {
	return NotificationTarget{Kind: TargetInvitation, ID: id}
}

// JoinRequestTarget builds a target pointing at a join request.
func JoinRequestTarget(id int64) NotificationTarget {
	return NotificationTarget{Kind: TargetJoinRequest, ID: id}
}

// ConversationTarget builds a target pointing at a conversation.
func ConversationTarget(id int64) NotificationTarget {
	return NotificationTarget{Kind: TargetConversation, ID: id}
}

// Notification is a per-user entry in the notification log
type Notification struct {
	ID        int64              `json:"id" db:"id"`
	UserID    int64              `json:"userId" db:"user_id"`
	Type      NotificationType   `json:"type" db:"notification_type"`
	Title     string             `json:"title" db:"title"`
	Message   string             `json:"message" db:"message"`
	Target    NotificationTarget `json:"target,omitempty"`
	IsRead    bool               `json:"isRead" db:"is_read"`
	CreatedAt time.Time          `json:"createdAt" db:"created_at"`
}
