package dto

import (
	"time"

	"github.com/Ayesha-Rimione/hackmate/internal/app/models"
)

// CreateTeamRequest is the payload for team creation
type CreateTeamRequest struct {
	EventID      int64  `json:"eventId" binding:"required" example:"1"`
	Name         string `json:"name" binding:"required" example:"The Gophers"`
	Description  string `json:"description" binding:"required"`
	Requirements string `json:"requirements"`
	MaxMembers   int    `json:"maxMembers" example:"5"`
	IsPublic     *bool  `json:"isPublic"`
}

// UpdateTeamRequest is the payload for team updates; nil fields stay unchanged
type UpdateTeamRequest struct {
	Name         *string `json:"name"`
	Description  *string `json:"description"`
	Requirements *string `json:"requirements"`
	MaxMembers   *int    `json:"maxMembers"`
	IsPublic     *bool   `json:"isPublic"`
}

// TeamResponse is the team representation
type TeamResponse struct {
	ID             int64              `json:"id" example:"1"`
	EventID        int64              `json:"eventId" example:"1"`
	Name           string             `json:"name" example:"The Gophers"`
	Description    string             `json:"description"`
	Requirements   string             `json:"requirements"`
	Creator        *UserBasicResponse `json:"creator,omitempty"`
	MaxMembers     int                `json:"maxMembers" example:"5"`
	MemberCount    int                `json:"memberCount" example:"3"`
	IsPublic       bool               `json:"isPublic" example:"true"`
	RequiredSkills []SkillResponse    `json:"requiredSkills"`
	CreatedAt      time.Time          `json:"createdAt"`
}

// NewTeamResponse maps a team model to its response form.
func NewTeamResponse(team *models.Team) TeamResponse {
	skills := make([]SkillResponse, 0, len(team.RequiredSkills))
	for _, s := range team.RequiredSkills {
		skills = append(skills, NewSkillResponse(s))
	}
	return TeamResponse{
		ID:             team.ID,
		EventID:        team.EventID,
		Name:           team.Name,
		Description:    team.Description,
		Requirements:   team.Requirements,
		Creator:        NewUserBasicResponse(team.Creator),
		MaxMembers:     team.MaxMembers,
		MemberCount:    team.MemberCount,
		IsPublic:       team.IsPublic,
		RequiredSkills: skills,
		CreatedAt:      team.CreatedAt,
	}
}

// TeamFilterRequest carries list filters for team browsing
type TeamFilterRequest struct {
	EventID  *int64
	Search   *string
	Page     int
	PageSize int
}

// TeamListResponse is a paginated team list
type TeamListResponse struct {
	Teams          []TeamResponse `json:"teams"`
	PaginationInfo PaginationInfo `json:"pagination"`
}

// TeamMemberResponse is a single membership entry
type TeamMemberResponse struct {
	ID       int64              `json:"id"`
	User     *UserBasicResponse `json:"user"`
	Role     string             `json:"role" example:"member"`
	JoinedAt time.Time          `json:"joinedAt"`
}

// JoinTeamRequest is the payload for a join request
type JoinTeamRequest struct {
	Message string `json:"message" example:"I can cover the backend."`
}

// JoinRequestResponse is the join request representation
type JoinRequestResponse struct {
	ID          int64              `json:"id"`
	TeamID      int64              `json:"teamId"`
	User        *UserBasicResponse `json:"user,omitempty"`
	Message     string             `json:"message"`
	Status      string             `json:"status" example:"pending"`
	CreatedAt   time.Time          `json:"createdAt"`
	ProcessedAt *time.Time         `json:"processedAt,omitempty"`
}

// NewJoinRequestResponse maps a join request model to its response form.
func NewJoinRequestResponse(request *models.TeamJoinRequest) JoinRequestResponse {
	return JoinRequestResponse{
		ID:          request.ID,
		TeamID:      request.TeamID,
		User:        NewUserBasicResponse(request.User),
		Message:     request.Message,
		Status:      string(request.Status),
		CreatedAt:   request.CreatedAt,
		ProcessedAt: request.ProcessedAt,
	}
}

// InviteRequest is the payload for creating a team invitation
type InviteRequest struct {
	InviteeID int64      `json:"inviteeId" binding:"required" example:"7"`
	Message   string     `json:"message" example:"We need a designer!"`
	ExpiresAt *time.Time `json:"expiresAt"`
}

// InvitationResponse is the invitation representation
type InvitationResponse struct {
	ID        int64              `json:"id"`
	TeamID    int64              `json:"teamId"`
	Inviter   *UserBasicResponse `json:"inviter,omitempty"`
	Invitee   *UserBasicResponse `json:"invitee,omitempty"`
	Message   string             `json:"message"`
	Status    string             `json:"status" example:"pending"`
	CreatedAt time.Time          `json:"createdAt"`
	ExpiresAt time.Time          `json:"expiresAt"`
}

// NewInvitationResponse maps an invitation model to its response form.
func NewInvitationResponse(invitation *models.TeamInvitation) InvitationResponse {
	return InvitationResponse{
		ID:        invitation.ID,
		TeamID:    invitation.TeamID,
		Inviter:   NewUserBasicResponse(invitation.Inviter),
		Invitee:   NewUserBasicResponse(invitation.Invitee),
		Message:   invitation.Message,
		Status:    string(invitation.Status),
		CreatedAt: invitation.CreatedAt,
		ExpiresAt: invitation.ExpiresAt,
	}
}
