package models

import "time"

// Team is a group of users competing together at one event
type Team struct {
	ID           int64     `json:"id" db:"id"`
	EventID      int64     `json:"eventId" db:"event_id"`
	CreatorID    int64     `json:"creatorId" db:"creator_id"`
	Name         string    `json:"name" db:"name"`
	Description  string    `json:"description" db:"description"`
	Requirements string    `json:"requirements" db:"requirements"`
	MaxMembers   int       `json:"maxMembers" db:"max_members"`
	IsPublic     bool      `json:"isPublic" db:"is_public"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`

	// Related entities
	Creator        *User   `json:"creator,omitempty"`
	MemberCount    int     `json:"memberCount"`
	RequiredSkills []Skill `json:"requiredSkills,omitempty"`
}

// HasAvailableSlots reports whether the team is below its member capacity.
// The authoritative check happens transactionally at admission time; this is
// only for presentation.
func (t *Team) HasAvailableSlots() bool {
	return t.MemberCount < t.MaxMembers
}

// MembershipRole is the role a member holds inside a team
type MembershipRole string

const (
	RoleLeader MembershipRole = "leader"
	RoleMember MembershipRole = "member"
	RoleMentor MembershipRole = "mentor"
)

// TeamMembership is the active (team, user) relation. Unique per (team, user).
type TeamMembership struct {
	ID       int64          `json:"id" db:"id"`
	TeamID   int64          `json:"teamId" db:"team_id"`
	UserID   int64          `json:"userId" db:"user_id"`
	Role     MembershipRole `json:"role" db:"role"`
	IsActive bool           `json:"isActive" db:"is_active"`
	JoinedAt time.Time      `json:"joinedAt" db:"joined_at"`

	// Related entities
	User *User `json:"user,omitempty"`
}

// JoinRequestStatus is the state of a user-initiated join request.
// pending is the only non-terminal state.
type JoinRequestStatus string

const (
	JoinRequestPending  JoinRequestStatus = "pending"
	JoinRequestApproved JoinRequestStatus = "approved"
	JoinRequestRejected JoinRequestStatus = "rejected"
)

// TeamJoinRequest is a user-initiated ask to join a team. Unique per (team, user).
type TeamJoinRequest struct {
	ID          int64             `json:"id" db:"id"`
	TeamID      int64             `json:"teamId" db:"team_id"`
	UserID      int64             `json:"userId" db:"user_id"`
	Message     string            `json:"message" db:"message"`
	Status      JoinRequestStatus `json:"status" db:"status"`
	CreatedAt   time.Time         `json:"createdAt" db:"created_at"`
	ProcessedAt *time.Time        `json:"processedAt,omitempty" db:"processed_at"`

	// Related entities
	Team *Team `json:"team,omitempty"`
	User *User `json:"user,omitempty"`
}

// InvitationStatus is the state of a team-initiated invitation.
// pending is the only non-terminal state.
type InvitationStatus string

const (
	InvitationPending  InvitationStatus = "pending"
	InvitationAccepted InvitationStatus = "accepted"
	InvitationDeclined InvitationStatus = "declined"
	InvitationExpired  InvitationStatus = "expired"
)

// TeamInvitation is a team-initiated ask for a specific user to join.
// Unique per (team, invitee).
type TeamInvitation struct {
	ID        int64            `json:"id" db:"id"`
	TeamID    int64            `json:"teamId" db:"team_id"`
	InviterID int64            `json:"inviterId" db:"inviter_id"`
	InviteeID int64            `json:"inviteeId" db:"invitee_id"`
	Message   string           `json:"message" db:"message"`
	Status    InvitationStatus `json:"status" db:"status"`
	CreatedAt time.Time        `json:"createdAt" db:"created_at"`
	ExpiresAt time.Time        `json:"expiresAt" db:"expires_at"`

	// Related entities
	Team    *Team `json:"team,omitempty"`
	Inviter *User `json:"inviter,omitempty"`
	Invitee *User `json:"invitee,omitempty"`
}

// IsExpired reports whether the invitation's expiry has passed. Expiry is
// evaluated lazily at accept time; there is no background sweep.
func (i *TeamInvitation) IsExpired(now time.Time) bool {
	return now.After(i.ExpiresAt)
}
