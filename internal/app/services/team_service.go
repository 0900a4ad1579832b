package services

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/samber/lo"

	"github.com/Ayesha-Rimione/hackmate/internal/app/models"
	"github.com/Ayesha-Rimione/hackmate/internal/app/models/dto"
	"github.com/Ayesha-Rimione/hackmate/internal/pkg/apperrors"
	"github.com/Ayesha-Rimione/hackmate/internal/pkg/helpers"
)

// teamRepository is the slice of the team repository the team service needs.
type teamRepository interface {
	Create(ctx context.Context, team *models.Team) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Team, error)
	GetAll(ctx context.Context, filter *dto.TeamFilterRequest, viewerID int64) ([]models.Team, int64, error)
	Update(ctx context.Context, id int64, req *dto.UpdateTeamRequest) error
	Delete(ctx context.Context, id int64) error
	SetRequiredSkills(ctx context.Context, teamID int64, skillIDs []int64) error
	IsActiveMember(ctx context.Context, teamID, userID int64) (bool, error)
	GetMembers(ctx context.Context, teamID int64) ([]*models.TeamMembership, error)
	CountActiveLeaders(ctx context.Context, teamID int64) (int, error)
	RemoveMember(ctx context.Context, teamID, userID int64) error
	AdmitJoinRequest(ctx context.Context, requestID, teamID, userID int64) (bool, error)
	AdmitInvitation(ctx context.Context, invitationID, teamID, userID int64) (bool, error)
}

// joinRequestRepository is the slice of the join request repository the team
// service needs.
type joinRequestRepository interface {
	Create(ctx context.Context, request *models.TeamJoinRequest) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.TeamJoinRequest, error)
	GetByTeam(ctx context.Context, teamID int64, status *models.JoinRequestStatus) ([]*models.TeamJoinRequest, error)
	GetByUser(ctx context.Context, userID int64) ([]*models.TeamJoinRequest, error)
	UpdateStatus(ctx context.Context, id int64, status models.JoinRequestStatus) error
}

// invitationRepository is the slice of the invitation repository the team
// service needs.
type invitationRepository interface {
	Create(ctx context.Context, invitation *models.TeamInvitation) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.TeamInvitation, error)
	GetByTeam(ctx context.Context, teamID int64) ([]*models.TeamInvitation, error)
	GetByInvitee(ctx context.Context, inviteeID int64) ([]*models.TeamInvitation, error)
	UpdateStatus(ctx context.Context, id int64, status models.InvitationStatus) error
}

// notificationWriter appends rows to the notification log.
type notificationWriter interface {
	Create(ctx context.Context, notification *models.Notification) (int64, error)
}

// teamUserFinder resolves users for membership and invitation checks.
type teamUserFinder interface {
	FindByID(ctx context.Context, id int64) (*models.User, error)
}

// TeamService handles teams, memberships, join requests and invitations.
//
// Join requests and invitations are two mirrored flows: requests are
// user-initiated and approved by the team creator, invitations are
// team-initiated and accepted by the invitee. Both admit through the same
// transactional capacity check so a full team can never be overbooked.
type TeamService interface {
	CreateTeam(ctx context.Context, creatorID int64, req *dto.CreateTeamRequest) (*dto.TeamResponse, error)
	GetTeams(ctx context.Context, filter *dto.TeamFilterRequest, viewerID int64) (*dto.TeamListResponse, error)
	GetTeamByID(ctx context.Context, teamID, viewerID int64) (*dto.TeamResponse, error)
	UpdateTeam(ctx context.Context, callerID, teamID int64, req *dto.UpdateTeamRequest) (*dto.TeamResponse, error)
	DeleteTeam(ctx context.Context, callerID, teamID int64) error
	SetRequiredSkills(ctx context.Context, callerID, teamID int64, skillIDs []int64) (*dto.TeamResponse, error)
	GetMembers(ctx context.Context, teamID, viewerID int64) ([]dto.TeamMemberResponse, error)

	RequestJoin(ctx context.Context, teamID, userID int64, message string) (*dto.JoinRequestResponse, error)
	GetTeamJoinRequests(ctx context.Context, callerID, teamID int64, status *string) ([]dto.JoinRequestResponse, error)
	GetMyJoinRequests(ctx context.Context, userID int64) ([]dto.JoinRequestResponse, error)
	ApproveJoinRequest(ctx context.Context, callerID, requestID int64) (*dto.JoinRequestResponse, error)
	RejectJoinRequest(ctx context.Context, callerID, requestID int64) (*dto.JoinRequestResponse, error)
	Leave(ctx context.Context, teamID, userID int64) error
	RemoveMember(ctx context.Context, callerID, teamID, memberID int64) error

	Invite(ctx context.Context, callerID, teamID int64, req *dto.InviteRequest) (*dto.InvitationResponse, error)
	GetTeamInvitations(ctx context.Context, callerID, teamID int64) ([]dto.InvitationResponse, error)
	GetMyInvitations(ctx context.Context, userID int64) ([]dto.InvitationResponse, error)
	AcceptInvitation(ctx context.Context, callerID, invitationID int64) (*dto.InvitationResponse, error)
	DeclineInvitation(ctx context.Context, callerID, invitationID int64) (*dto.InvitationResponse, error)
}

type teamServiceImpl struct {
	teamRepo         teamRepository
	joinRequestRepo  joinRequestRepository
	invitationRepo   invitationRepository
	notificationRepo notificationWriter
	userRepo         teamUserFinder
	invitationExpiry time.Duration
	now              func() time.Time
	logger           zerolog.Logger
}

// NewTeamService creates a new TeamService. invitationExpiry is the default
// validity window applied when an invitation carries no explicit expiry.
func NewTeamService(
	teamRepo teamRepository,
	joinRequestRepo joinRequestRepository,
	invitationRepo invitationRepository,
	notificationRepo notificationWriter,
	userRepo teamUserFinder,
	invitationExpiry time.Duration,
	logger zerolog.Logger,
) TeamService {
	return &teamServiceImpl{
		teamRepo:         teamRepo,
		joinRequestRepo:  joinRequestRepo,
		invitationRepo:   invitationRepo,
		notificationRepo: notificationRepo,
		userRepo:         userRepo,
		invitationExpiry: invitationExpiry,
		now:              time.Now,
		logger:           logger,
	}
}

const defaultMaxMembers = 5

// CreateTeam creates a team; the creator becomes its leader in the same
// transaction.
func (s *teamServiceImpl) CreateTeam(ctx context.Context, creatorID int64, req *dto.CreateTeamRequest) (*dto.TeamResponse, error) {
	maxMembers := req.MaxMembers
	if maxMembers == 0 {
		maxMembers = defaultMaxMembers
	}
	if maxMembers < 1 {
		return nil, apperrors.NewBadRequestError("maxMembers must be positive")
	}

	isPublic := true
	if req.IsPublic != nil {
		isPublic = *req.IsPublic
	}

	team := &models.Team{
		EventID:      req.EventID,
		CreatorID:    creatorID,
		Name:         req.Name,
		Description:  req.Description,
		Requirements: req.Requirements,
		MaxMembers:   maxMembers,
		IsPublic:     isPublic,
	}

	teamID, err := s.teamRepo.Create(ctx, team)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("teamID", teamID).Int64("creatorID", creatorID).Msg("Team created")

	return s.GetTeamByID(ctx, teamID, creatorID)
}

// GetTeams lists teams visible to the viewer, paginated.
func (s *teamServiceImpl) GetTeams(ctx context.Context, filter *dto.TeamFilterRequest, viewerID int64) (*dto.TeamListResponse, error) {
	teams, total, err := s.teamRepo.GetAll(ctx, filter, viewerID)
	if err != nil {
		return nil, err
	}

	responses := lo.Map(teams, func(t models.Team, _ int) dto.TeamResponse {
		return dto.NewTeamResponse(&t)
	})

	return &dto.TeamListResponse{
		Teams:          responses,
		PaginationInfo: helpers.NewPaginationInfo(total, filter.Page, filter.PageSize),
	}, nil
}

// GetTeamByID retrieves one team. Private teams are visible to members only.
func (s *teamServiceImpl) GetTeamByID(ctx context.Context, teamID, viewerID int64) (*dto.TeamResponse, error) {
	team, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return nil, err
	}

	if !team.IsPublic {
		isMember, err := s.teamRepo.IsActiveMember(ctx, teamID, viewerID)
		if err != nil {
			return nil, err
		}
		if !isMember {
			return nil, apperrors.ErrTeamNotFound
		}
	}

	if creator, err := s.userRepo.FindByID(ctx, team.CreatorID); err == nil {
		team.Creator = creator
	}

	resp := dto.NewTeamResponse(team)
	return &resp, nil
}

// UpdateTeam applies a partial update. Creator-only.
func (s *teamServiceImpl) UpdateTeam(ctx context.Context, callerID, teamID int64, req *dto.UpdateTeamRequest) (*dto.TeamResponse, error) {
	if err := s.requireCreator(ctx, callerID, teamID); err != nil {
		return nil, err
	}

	if req.MaxMembers != nil && *req.MaxMembers < 1 {
		return nil, apperrors.NewBadRequestError("maxMembers must be positive")
	}

	if err := s.teamRepo.Update(ctx, teamID, req); err != nil {
		return nil, err
	}

	return s.GetTeamByID(ctx, teamID, callerID)
}

// DeleteTeam removes a team and everything hanging off it. Creator-only.
func (s *teamServiceImpl) DeleteTeam(ctx context.Context, callerID, teamID int64) error {
	if err := s.requireCreator(ctx, callerID, teamID); err != nil {
		return err
	}

	s.logger.Info().Int64("teamID", teamID).Msg("Team deleted")

	return s.teamRepo.Delete(ctx, teamID)
}

// SetRequiredSkills replaces the team's required skill set. Creator-only.
func (s *teamServiceImpl) SetRequiredSkills(ctx context.Context, callerID, teamID int64, skillIDs []int64) (*dto.TeamResponse, error) {
	if err := s.requireCreator(ctx, callerID, teamID); err != nil {
		return nil, err
	}

	if err := s.teamRepo.SetRequiredSkills(ctx, teamID, lo.Uniq(skillIDs)); err != nil {
		return nil, err
	}

	return s.GetTeamByID(ctx, teamID, callerID)
}

// GetMembers lists a team's active members. Private teams show their member
// list to members only.
func (s *teamServiceImpl) GetMembers(ctx context.Context, teamID, viewerID int64) ([]dto.TeamMemberResponse, error) {
	if _, err := s.GetTeamByID(ctx, teamID, viewerID); err != nil {
		return nil, err
	}

	members, err := s.teamRepo.GetMembers(ctx, teamID)
	if err != nil {
		return nil, err
	}

	return lo.Map(members, func(m *models.TeamMembership, _ int) dto.TeamMemberResponse {
		return dto.TeamMemberResponse{
			ID:       m.ID,
			User:     dto.NewUserBasicResponse(m.User),
			Role:     string(m.Role),
			JoinedAt: m.JoinedAt,
		}
	}), nil
}

func (s *teamServiceImpl) requireCreator(ctx context.Context, callerID, teamID int64) error {
	team, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return err
	}
	if team.CreatorID != callerID {
		return apperrors.NewForbiddenError("only the team creator may do this")
	}
	return nil
}

// RequestJoin files a pending join request. Capacity is not checked here; a
// full team can still collect requests and approve them once a slot opens.
func (s *teamServiceImpl) RequestJoin(ctx context.Context, teamID, userID int64, message string) (*dto.JoinRequestResponse, error) {
	team, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return nil, err
	}

	isMember, err := s.teamRepo.IsActiveMember(ctx, teamID, userID)
	if err != nil {
		return nil, err
	}
	if isMember {
		return nil, apperrors.ErrAlreadyMember
	}

	request := &models.TeamJoinRequest{
		TeamID:  teamID,
		UserID:  userID,
		Message: message,
	}
	requestID, err := s.joinRequestRepo.Create(ctx, request)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("teamID", teamID).
		Int64("userID", userID).
		Int64("requestID", requestID).
		Msg("Join request filed")

	s.notify(ctx, team.CreatorID, models.NotificationJoinRequest,
		"New join request",
		fmt.Sprintf("Someone asked to join %s", team.Name),
		models.JoinRequestTarget(requestID))

	return s.joinRequestResponse(ctx, requestID)
}

// GetTeamJoinRequests lists a team's join requests. Creator-only.
func (s *teamServiceImpl) GetTeamJoinRequests(ctx context.Context, callerID, teamID int64, status *string) ([]dto.JoinRequestResponse, error) {
	if err := s.requireCreator(ctx, callerID, teamID); err != nil {
		return nil, err
	}

	var statusFilter *models.JoinRequestStatus
	if status != nil && *status != "" {
		parsed := models.JoinRequestStatus(*status)
		switch parsed {
		case models.JoinRequestPending, models.JoinRequestApproved, models.JoinRequestRejected:
			statusFilter = &parsed
		default:
			return nil, apperrors.NewBadRequestError("unknown join request status")
		}
	}

	requests, err := s.joinRequestRepo.GetByTeam(ctx, teamID, statusFilter)
	if err != nil {
		return nil, err
	}

	return lo.Map(requests, func(r *models.TeamJoinRequest, _ int) dto.JoinRequestResponse {
		return dto.NewJoinRequestResponse(r)
	}), nil
}

// GetMyJoinRequests lists the caller's own join requests.
func (s *teamServiceImpl) GetMyJoinRequests(ctx context.Context, userID int64) ([]dto.JoinRequestResponse, error) {
	requests, err := s.joinRequestRepo.GetByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return lo.Map(requests, func(r *models.TeamJoinRequest, _ int) dto.JoinRequestResponse {
		return dto.NewJoinRequestResponse(r)
	}), nil
}

// ApproveJoinRequest admits the requester. Creator-only; pending-only. The
// capacity check, membership insert and status flip are one transaction: if
// the team is full nothing changes and the request stays pending, so it can
// be approved later once a member leaves.
func (s *teamServiceImpl) ApproveJoinRequest(ctx context.Context, callerID, requestID int64) (*dto.JoinRequestResponse, error) {
	request, err := s.joinRequestRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if request.Team.CreatorID != callerID {
		return nil, apperrors.NewForbiddenError("only the team creator may process join requests")
	}
	if request.Status != models.JoinRequestPending {
		return nil, apperrors.ErrAlreadyProcessed
	}

	admitted, err := s.teamRepo.AdmitJoinRequest(ctx, requestID, request.TeamID, request.UserID)
	if err != nil {
		return nil, err
	}
	if !admitted {
		return nil, apperrors.ErrTeamFull
	}

	s.logger.Info().
		Int64("requestID", requestID).
		Int64("teamID", request.TeamID).
		Int64("userID", request.UserID).
		Msg("Join request approved")

	s.notify(ctx, request.UserID, models.NotificationJoinRequest,
		"Join request approved",
		fmt.Sprintf("You are now a member of %s", request.Team.Name),
		models.TeamTarget(request.TeamID))

	return s.joinRequestResponse(ctx, requestID)
}

// RejectJoinRequest rejects a pending request. Creator-only; pending-only.
func (s *teamServiceImpl) RejectJoinRequest(ctx context.Context, callerID, requestID int64) (*dto.JoinRequestResponse, error) {
	request, err := s.joinRequestRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if request.Team.CreatorID != callerID {
		return nil, apperrors.NewForbiddenError("only the team creator may process join requests")
	}
	if request.Status != models.JoinRequestPending {
		return nil, apperrors.ErrAlreadyProcessed
	}

	if err := s.joinRequestRepo.UpdateStatus(ctx, requestID, models.JoinRequestRejected); err != nil {
		return nil, err
	}

	s.notify(ctx, request.UserID, models.NotificationJoinRequest,
		"Join request rejected",
		fmt.Sprintf("Your request to join %s was rejected", request.Team.Name),
		models.TeamTarget(request.TeamID))

	return s.joinRequestResponse(ctx, requestID)
}

// Leave removes the caller's membership. A sole leader may leave; the team is
// left leaderless, matching how departures always worked in this system.
func (s *teamServiceImpl) Leave(ctx context.Context, teamID, userID int64) error {
	members, err := s.teamRepo.GetMembers(ctx, teamID)
	if err != nil {
		return err
	}

	membership, found := lo.Find(members, func(m *models.TeamMembership) bool {
		return m.UserID == userID
	})
	if !found {
		return apperrors.ErrNotAMember
	}

	if membership.Role == models.RoleLeader {
		leaders, err := s.teamRepo.CountActiveLeaders(ctx, teamID)
		if err != nil {
			return err
		}
		if leaders == 1 {
			s.logger.Warn().
				Int64("teamID", teamID).
				Int64("userID", userID).
				Msg("Sole leader leaving team, team is now leaderless")
		}
	}

	if err := s.teamRepo.RemoveMember(ctx, teamID, userID); err != nil {
		return err
	}

	s.logger.Info().Int64("teamID", teamID).Int64("userID", userID).Msg("Member left team")
	return nil
}

// RemoveMember kicks a member out. Creator-only; the creator uses Leave for
// themselves.
func (s *teamServiceImpl) RemoveMember(ctx context.Context, callerID, teamID, memberID int64) error {
	if err := s.requireCreator(ctx, callerID, teamID); err != nil {
		return err
	}
	if callerID == memberID {
		return apperrors.NewBadRequestError("use leave to remove yourself")
	}

	if err := s.teamRepo.RemoveMember(ctx, teamID, memberID); err != nil {
		return err
	}

	team, err := s.teamRepo.GetByID(ctx, teamID)
	if err == nil {
		s.notify(ctx, memberID, models.NotificationGeneral,
			"Removed from team",
			fmt.Sprintf("You were removed from %s", team.Name),
			models.TeamTarget(teamID))
	}

	s.logger.Info().Int64("teamID", teamID).Int64("memberID", memberID).Msg("Member removed from team")
	return nil
}

// Invite creates a pending invitation for a user. Any active member may
// invite. The expiry defaults to the configured window when the request
// carries none.
func (s *teamServiceImpl) Invite(ctx context.Context, callerID, teamID int64, req *dto.InviteRequest) (*dto.InvitationResponse, error) {
	team, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return nil, err
	}

	isMember, err := s.teamRepo.IsActiveMember(ctx, teamID, callerID)
	if err != nil {
		return nil, err
	}
	if !isMember {
		return nil, apperrors.NewForbiddenError("only team members may invite")
	}

	if _, err := s.userRepo.FindByID(ctx, req.InviteeID); err != nil {
		return nil, err
	}

	inviteeIsMember, err := s.teamRepo.IsActiveMember(ctx, teamID, req.InviteeID)
	if err != nil {
		return nil, err
	}
	if inviteeIsMember {
		return nil, apperrors.ErrAlreadyMember
	}

	expiresAt := s.now().Add(s.invitationExpiry)
	if req.ExpiresAt != nil {
		if req.ExpiresAt.Before(s.now()) {
			return nil, apperrors.NewBadRequestError("expiresAt must be in the future")
		}
		expiresAt = *req.ExpiresAt
	}

	invitation := &models.TeamInvitation{
		TeamID:    teamID,
		InviterID: callerID,
		InviteeID: req.InviteeID,
		Message:   req.Message,
		ExpiresAt: expiresAt,
	}
	invitationID, err := s.invitationRepo.Create(ctx, invitation)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("teamID", teamID).
		Int64("inviterID", callerID).
		Int64("inviteeID", req.InviteeID).
		Msg("Invitation sent")

	s.notify(ctx, req.InviteeID, models.NotificationTeamInvitation,
		"Team invitation",
		fmt.Sprintf("You were invited to join %s", team.Name),
		models.InvitationTarget(invitationID))

	return s.invitationResponse(ctx, invitationID)
}

// GetTeamInvitations lists a team's invitations. Member-only.
func (s *teamServiceImpl) GetTeamInvitations(ctx context.Context, callerID, teamID int64) ([]dto.InvitationResponse, error) {
	isMember, err := s.teamRepo.IsActiveMember(ctx, teamID, callerID)
	if err != nil {
		return nil, err
	}
	if !isMember {
		return nil, apperrors.NewForbiddenError("only team members may list invitations")
	}

	invitations, err := s.invitationRepo.GetByTeam(ctx, teamID)
	if err != nil {
		return nil, err
	}
	return lo.Map(invitations, func(i *models.TeamInvitation, _ int) dto.InvitationResponse {
		return dto.NewInvitationResponse(i)
	}), nil
}

// GetMyInvitations lists invitations addressed to the caller.
func (s *teamServiceImpl) GetMyInvitations(ctx context.Context, userID int64) ([]dto.InvitationResponse, error) {
	invitations, err := s.invitationRepo.GetByInvitee(ctx, userID)
	if err != nil {
		return nil, err
	}
	return lo.Map(invitations, func(i *models.TeamInvitation, _ int) dto.InvitationResponse {
		return dto.NewInvitationResponse(i)
	}), nil
}

// AcceptInvitation admits the invitee. Invitee-only; pending-only. An
// invitation past its expiry is persisted as expired before the call fails,
// so the row reflects why acceptance stopped working. A full team leaves the
// invitation pending and returns ErrTeamFull.
func (s *teamServiceImpl) AcceptInvitation(ctx context.Context, callerID, invitationID int64) (*dto.InvitationResponse, error) {
	invitation, err := s.invitationRepo.GetByID(ctx, invitationID)
	if err != nil {
		return nil, err
	}
	if invitation.InviteeID != callerID {
		return nil, apperrors.NewForbiddenError("only the invitee may accept")
	}
	if invitation.Status != models.InvitationPending {
		return nil, apperrors.ErrInvalidState
	}

	if invitation.IsExpired(s.now()) {
		if err := s.invitationRepo.UpdateStatus(ctx, invitationID, models.InvitationExpired); err != nil {
			return nil, err
		}
		return nil, apperrors.ErrInvitationExpired
	}

	admitted, err := s.teamRepo.AdmitInvitation(ctx, invitationID, invitation.TeamID, invitation.InviteeID)
	if err != nil {
		return nil, err
	}
	if !admitted {
		return nil, apperrors.ErrTeamFull
	}

	s.logger.Info().
		Int64("invitationID", invitationID).
		Int64("teamID", invitation.TeamID).
		Int64("userID", callerID).
		Msg("Invitation accepted")

	s.notify(ctx, invitation.InviterID, models.NotificationTeamInvitation,
		"Invitation accepted",
		fmt.Sprintf("Your invitation to %s was accepted", invitation.Team.Name),
		models.TeamTarget(invitation.TeamID))

	return s.invitationResponse(ctx, invitationID)
}

// DeclineInvitation declines a pending invitation. Invitee-only; declining a
// non-pending invitation returns ErrInvalidState.
func (s *teamServiceImpl) DeclineInvitation(ctx context.Context, callerID, invitationID int64) (*dto.InvitationResponse, error) {
	invitation, err := s.invitationRepo.GetByID(ctx, invitationID)
	if err != nil {
		return nil, err
	}
	if invitation.InviteeID != callerID {
		return nil, apperrors.NewForbiddenError("only the invitee may decline")
	}
	if invitation.Status != models.InvitationPending {
		return nil, apperrors.ErrInvalidState
	}

	if err := s.invitationRepo.UpdateStatus(ctx, invitationID, models.InvitationDeclined); err != nil {
		return nil, err
	}

	s.notify(ctx, invitation.InviterID, models.NotificationTeamInvitation,
		"Invitation declined",
		fmt.Sprintf("Your invitation to %s was declined", invitation.Team.Name),
		models.TeamTarget(invitation.TeamID))

	return s.invitationResponse(ctx, invitationID)
}

func (s *teamServiceImpl) joinRequestResponse(ctx context.Context, requestID int64) (*dto.JoinRequestResponse, error) {
	request, err := s.joinRequestRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	resp := dto.NewJoinRequestResponse(request)
	return &resp, nil
}

func (s *teamServiceImpl) invitationResponse(ctx context.Context, invitationID int64) (*dto.InvitationResponse, error) {
	invitation, err := s.invitationRepo.GetByID(ctx, invitationID)
	if err != nil {
		return nil, err
	}
	resp := dto.NewInvitationResponse(invitation)
	return &resp, nil
}

// notify appends a notification row. Failures are logged and swallowed; a
// missing notification must not fail the workflow operation itself.
func (s *teamServiceImpl) notify(ctx context.Context, userID int64, typ models.NotificationType, title, message string, target models.NotificationTarget) {
	_, err := s.notificationRepo.Create(ctx, &models.Notification{
		UserID:  userID,
		Type:    typ,
		Title:   title,
		Message: message,
		Target:  target,
	})
	if err != nil {
		s.logger.Warn().Err(err).Int64("userID", userID).Msg("Failed to write notification")
	}
}
