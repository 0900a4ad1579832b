package services

import (
	"context"
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ayesha-Rimione/hackmate/internal/app/models"
	"github.com/Ayesha-Rimione/hackmate/internal/app/models/dto"
	"github.com/Ayesha-Rimione/hackmate/internal/pkg/apperrors"
)

// workflowStore is an in-memory stand-in for the team workflow tables. The
// fake repositories below share one store so admission sees the same state
// the request and invitation fakes mutate.
type workflowStore struct {
	nextID        int64
	users         map[int64]*models.User
	teams         map[int64]*models.Team
	memberships   []*models.TeamMembership
	requests      map[int64]*models.TeamJoinRequest
	invitations   map[int64]*models.TeamInvitation
	notifications []*models.Notification
}

func newWorkflowStore() *workflowStore {
	return &workflowStore{
		users:       make(map[int64]*models.User),
		teams:       make(map[int64]*models.Team),
		requests:    make(map[int64]*models.TeamJoinRequest),
		invitations: make(map[int64]*models.TeamInvitation),
	}
}

func (s *workflowStore) id() int64 {
	s.nextID++
	return s.nextID
}

func (s *workflowStore) addUser(name string) *models.User {
	user := &models.User{
		ID:        s.id(),
		Email:     fmt.Sprintf("%s@test.dev", name),
		FirstName: name,
		LastName:  "Tester",
		IsActive:  true,
	}
	s.users[user.ID] = user
	return user
}

func (s *workflowStore) addTeam(creator *models.User, maxMembers int) *models.Team {
	team := &models.Team{
		ID:         s.id(),
		EventID:    1,
		CreatorID:  creator.ID,
		Name:       "Team " + creator.FirstName,
		MaxMembers: maxMembers,
		IsPublic:   true,
	}
	s.teams[team.ID] = team
	s.memberships = append(s.memberships, &models.TeamMembership{
		ID:       s.id(),
		TeamID:   team.ID,
		UserID:   creator.ID,
		Role:     models.RoleLeader,
		IsActive: true,
	})
	return team
}

func (s *workflowStore) addMember(teamID, userID int64, role models.MembershipRole) {
	s.memberships = append(s.memberships, &models.TeamMembership{
		ID:       s.id(),
		TeamID:   teamID,
		UserID:   userID,
		Role:     role,
		IsActive: true,
	})
}

func (s *workflowStore) activeMembers(teamID int64) []*models.TeamMembership {
	return lo.Filter(s.memberships, func(m *models.TeamMembership, _ int) bool {
		return m.TeamID == teamID && m.IsActive
	})
}

func (s *workflowStore) membership(teamID, userID int64) (*models.TeamMembership, bool) {
	return lo.Find(s.memberships, func(m *models.TeamMembership) bool {
		return m.TeamID == teamID && m.UserID == userID && m.IsActive
	})
}

type fakeTeamRepo struct{ s *workflowStore }

func (f *fakeTeamRepo) Create(_ context.Context, team *models.Team) (int64, error) {
	team.ID = f.s.id()
	f.s.teams[team.ID] = team
	f.s.addMember(team.ID, team.CreatorID, models.RoleLeader)
	return team.ID, nil
}

func (f *fakeTeamRepo) GetByID(_ context.Context, id int64) (*models.Team, error) {
	team, ok := f.s.teams[id]
	if !ok {
		return nil, apperrors.ErrTeamNotFound
	}
	copied := *team
	copied.MemberCount = len(f.s.activeMembers(id))
	return &copied, nil
}

func (f *fakeTeamRepo) GetAll(_ context.Context, _ *dto.TeamFilterRequest, viewerID int64) ([]models.Team, int64, error) {
	var teams []models.Team
	for _, team := range f.s.teams {
		_, isMember := f.s.membership(team.ID, viewerID)
		if team.IsPublic || isMember {
			copied := *team
			copied.MemberCount = len(f.s.activeMembers(team.ID))
			teams = append(teams, copied)
		}
	}
	sort.Slice(teams, func(i, j int) bool { return teams[i].ID < teams[j].ID })
	return teams, int64(len(teams)), nil
}

func (f *fakeTeamRepo) Update(_ context.Context, id int64, req *dto.UpdateTeamRequest) error {
	team, ok := f.s.teams[id]
	if !ok {
		return apperrors.ErrTeamNotFound
	}
	if req.MaxMembers != nil {
		team.MaxMembers = *req.MaxMembers
	}
	if req.Name != nil {
		team.Name = *req.Name
	}
	return nil
}

func (f *fakeTeamRepo) Delete(_ context.Context, id int64) error {
	if _, ok := f.s.teams[id]; !ok {
		return apperrors.ErrTeamNotFound
	}
	delete(f.s.teams, id)
	return nil
}

func (f *fakeTeamRepo) SetRequiredSkills(_ context.Context, _ int64, _ []int64) error {
	return nil
}

func (f *fakeTeamRepo) IsActiveMember(_ context.Context, teamID, userID int64) (bool, error) {
	_, ok := f.s.membership(teamID, userID)
	return ok, nil
}

func (f *fakeTeamRepo) GetMembers(_ context.Context, teamID int64) ([]*models.TeamMembership, error) {
	members := f.s.activeMembers(teamID)
	for _, m := range members {
		m.User = f.s.users[m.UserID]
	}
	return members, nil
}

func (f *fakeTeamRepo) CountActiveLeaders(_ context.Context, teamID int64) (int, error) {
	leaders := lo.Filter(f.s.activeMembers(teamID), func(m *models.TeamMembership, _ int) bool {
		return m.Role == models.RoleLeader
	})
	return len(leaders), nil
}

func (f *fakeTeamRepo) RemoveMember(_ context.Context, teamID, userID int64) error {
	before := len(f.s.memberships)
	f.s.memberships = lo.Reject(f.s.memberships, func(m *models.TeamMembership, _ int) bool {
		return m.TeamID == teamID && m.UserID == userID
	})
	if len(f.s.memberships) == before {
		return apperrors.ErrNotAMember
	}
	return nil
}

func (f *fakeTeamRepo) AdmitJoinRequest(_ context.Context, requestID, teamID, userID int64) (bool, error) {
	team, ok := f.s.teams[teamID]
	if !ok {
		return false, apperrors.ErrTeamNotFound
	}
	if len(f.s.activeMembers(teamID)) >= team.MaxMembers {
		return false, nil
	}
	f.s.addMember(teamID, userID, models.RoleMember)
	request := f.s.requests[requestID]
	request.Status = models.JoinRequestApproved
	now := time.Now()
	request.ProcessedAt = &now
	return true, nil
}

func (f *fakeTeamRepo) AdmitInvitation(_ context.Context, invitationID, teamID, userID int64) (bool, error) {
	team, ok := f.s.teams[teamID]
	if !ok {
		return false, apperrors.ErrTeamNotFound
	}
	if len(f.s.activeMembers(teamID)) >= team.MaxMembers {
		return false, nil
	}
	f.s.addMember(teamID, userID, models.RoleMember)
	f.s.invitations[invitationID].Status = models.InvitationAccepted
	return true, nil
}

type fakeJoinRequestRepo struct{ s *workflowStore }

func (f *fakeJoinRequestRepo) Create(_ context.Context, request *models.TeamJoinRequest) (int64, error) {
	for _, existing := range f.s.requests {
		if existing.TeamID == request.TeamID && existing.UserID == request.UserID &&
			existing.Status == models.JoinRequestPending {
			return 0, apperrors.ErrDuplicateRequest
		}
	}
	request.ID = f.s.id()
	request.Status = models.JoinRequestPending
	request.CreatedAt = time.Now()
	f.s.requests[request.ID] = request
	return request.ID, nil
}

func (f *fakeJoinRequestRepo) GetByID(_ context.Context, id int64) (*models.TeamJoinRequest, error) {
	request, ok := f.s.requests[id]
	if !ok {
		return nil, apperrors.ErrJoinRequestNotFound
	}
	copied := *request
	copied.Team = f.s.teams[request.TeamID]
	copied.User = f.s.users[request.UserID]
	return &copied, nil
}

func (f *fakeJoinRequestRepo) GetByTeam(_ context.Context, teamID int64, status *models.JoinRequestStatus) ([]*models.TeamJoinRequest, error) {
	var requests []*models.TeamJoinRequest
	for _, request := range f.s.requests {
		if request.TeamID != teamID {
			continue
		}
		if status != nil && request.Status != *status {
			continue
		}
		request.User = f.s.users[request.UserID]
		requests = append(requests, request)
	}
	return requests, nil
}

func (f *fakeJoinRequestRepo) GetByUser(_ context.Context, userID int64) ([]*models.TeamJoinRequest, error) {
	var requests []*models.TeamJoinRequest
	for _, request := range f.s.requests {
		if request.UserID == userID {
			requests = append(requests, request)
		}
	}
	return requests, nil
}

func (f *fakeJoinRequestRepo) UpdateStatus(_ context.Context, id int64, status models.JoinRequestStatus) error {
	request, ok := f.s.requests[id]
	if !ok {
		return apperrors.ErrJoinRequestNotFound
	}
	request.Status = status
	now := time.Now()
	request.ProcessedAt = &now
	return nil
}

type fakeInvitationRepo struct{ s *workflowStore }

func (f *fakeInvitationRepo) Create(_ context.Context, invitation *models.TeamInvitation) (int64, error) {
	for _, existing := range f.s.invitations {
		if existing.TeamID == invitation.TeamID && existing.InviteeID == invitation.InviteeID {
			return 0, apperrors.ErrDuplicateInvitation
		}
	}
	invitation.ID = f.s.id()
	invitation.Status = models.InvitationPending
	invitation.CreatedAt = time.Now()
	f.s.invitations[invitation.ID] = invitation
	return invitation.ID, nil
}

func (f *fakeInvitationRepo) GetByID(_ context.Context, id int64) (*models.TeamInvitation, error) {
	invitation, ok := f.s.invitations[id]
	if !ok {
		return nil, apperrors.ErrInvitationNotFound
	}
	copied := *invitation
	copied.Team = f.s.teams[invitation.TeamID]
	return &copied, nil
}

func (f *fakeInvitationRepo) GetByTeam(_ context.Context, teamID int64) ([]*models.TeamInvitation, error) {
	var invitations []*models.TeamInvitation
	for _, invitation := range f.s.invitations {
		if invitation.TeamID == teamID {
			invitations = append(invitations, invitation)
		}
	}
	return invitations, nil
}

func (f *fakeInvitationRepo) GetByInvitee(_ context.Context, inviteeID int64) ([]*models.TeamInvitation, error) {
	var invitations []*models.TeamInvitation
	for _, invitation := range f.s.invitations {
		if invitation.InviteeID == inviteeID {
			invitations = append(invitations, invitation)
		}
	}
	return invitations, nil
}

func (f *fakeInvitationRepo) UpdateStatus(_ context.Context, id int64, status models.InvitationStatus) error {
	invitation, ok := f.s.invitations[id]
	if !ok {
		return apperrors.ErrInvitationNotFound
	}
	invitation.Status = status
	return nil
}

type fakeNotificationRepo struct{ s *workflowStore }

func (f *fakeNotificationRepo) Create(_ context.Context, notification *models.Notification) (int64, error) {
	notification.ID = f.s.id()
	f.s.notifications = append(f.s.notifications, notification)
	return notification.ID, nil
}

type fakeUserRepo struct{ s *workflowStore }

func (f *fakeUserRepo) FindByID(_ context.Context, id int64) (*models.User, error) {
	user, ok := f.s.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return user, nil
}

func newWorkflowFixture() (TeamService, *workflowStore) {
	store := newWorkflowStore()
	service := NewTeamService(
		&fakeTeamRepo{s: store},
		&fakeJoinRequestRepo{s: store},
		&fakeInvitationRepo{s: store},
		&fakeNotificationRepo{s: store},
		&fakeUserRepo{s: store},
		7*24*time.Hour,
		zerolog.Nop(),
	)
	return service, store
}

func TestRequestJoinCreatesPendingRequest(t *testing.T) {
	service, store := newWorkflowFixture()
	ctx := context.Background()

	leader := store.addUser("leader")
	applicant := store.addUser("applicant")
	team := store.addTeam(leader, 5)

	resp, err := service.RequestJoin(ctx, team.ID, applicant.ID, "let me in")
	require.NoError(t, err)

	assert.Equal(t, string(models.JoinRequestPending), resp.Status)
	assert.Nil(t, resp.ProcessedAt)

	// Creator gets a notification pointing at the request.
	require.Len(t, store.notifications, 1)
	n := store.notifications[0]
	assert.Equal(t, leader.ID, n.UserID)
	assert.Equal(t, models.NotificationJoinRequest, n.Type)
	assert.Equal(t, models.TargetJoinRequest, n.Target.Kind)
	assert.Equal(t, resp.ID, n.Target.ID)
}

func TestRequestJoinRejectsActiveMember(t *testing.T) {
	service, store := newWorkflowFixture()
	ctx := context.Background()

	leader := store.addUser("leader")
	team := store.addTeam(leader, 5)

	_, err := service.RequestJoin(ctx, team.ID, leader.ID, "")
	assert.ErrorIs(t, err, apperrors.ErrAlreadyMember)
}

func TestRequestJoinRejectsDuplicatePending(t *testing.T) {
	service, store := newWorkflowFixture()
	ctx := context.Background()

	leader := store.addUser("leader")
	applicant := store.addUser("applicant")
	team := store.addTeam(leader, 5)

	_, err := service.RequestJoin(ctx, team.ID, applicant.ID, "first")
	require.NoError(t, err)

	_, err = service.RequestJoin(ctx, team.ID, applicant.ID, "second")
	assert.ErrorIs(t, err, apperrors.ErrDuplicateRequest)
}

func TestApproveJoinRequestAdmitsMember(t *testing.T) {
	service, store := newWorkflowFixture()
	ctx := context.Background()

	leader := store.addUser("leader")
	applicant := store.addUser("applicant")
	team := store.addTeam(leader, 5)

	created, err := service.RequestJoin(ctx, team.ID, applicant.ID, "")
	require.NoError(t, err)

	resp, err := service.ApproveJoinRequest(ctx, leader.ID, created.ID)
	require.NoError(t, err)

	assert.Equal(t, string(models.JoinRequestApproved), resp.Status)
	assert.NotNil(t, resp.ProcessedAt)

	membership, ok := store.membership(team.ID, applicant.ID)
	require.True(t, ok)
	assert.Equal(t, models.RoleMember, membership.Role)
}

func TestApproveJoinRequestRequiresCreator(t *testing.T) {
	service, store := newWorkflowFixture()
	ctx := context.Background()

	leader := store.addUser("leader")
	applicant := store.addUser("applicant")
	outsider := store.addUser("outsider")
	team := store.addTeam(leader, 5)

	created, err := service.RequestJoin(ctx, team.ID, applicant.ID, "")
	require.NoError(t, err)

	_, err = service.ApproveJoinRequest(ctx, outsider.ID, created.ID)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
}

func TestApproveJoinRequestIsSingleShot(t *testing.T) {
	service, store := newWorkflowFixture()
	ctx := context.Background()

	leader := store.addUser("leader")
	applicant := store.addUser("applicant")
	team := store.addTeam(leader, 5)

	created, err := service.RequestJoin(ctx, team.ID, applicant.ID, "")
	require.NoError(t, err)

	_, err = service.ApproveJoinRequest(ctx, leader.ID, created.ID)
	require.NoError(t, err)

	// The pending -> approved transition is terminal; approving or rejecting
	// again must fail without touching anything.
	_, err = service.ApproveJoinRequest(ctx, leader.ID, created.ID)
	assert.ErrorIs(t, err, apperrors.ErrAlreadyProcessed)

	_, err = service.RejectJoinRequest(ctx, leader.ID, created.ID)
	assert.ErrorIs(t, err, apperrors.ErrAlreadyProcessed)
}

func TestApproveJoinRequestFullTeamStaysPending(t *testing.T) {
	service, store := newWorkflowFixture()
	ctx := context.Background()

	leader := store.addUser("leader")
	member := store.addUser("member")
	applicant := store.addUser("applicant")
	team := store.addTeam(leader, 2)
	store.addMember(team.ID, member.ID, models.RoleMember)

	created, err := service.RequestJoin(ctx, team.ID, applicant.ID, "")
	require.NoError(t, err)

	_, err = service.ApproveJoinRequest(ctx, leader.ID, created.ID)
	assert.ErrorIs(t, err, apperrors.ErrTeamFull)

	// Nothing changed: the request is still pending and can be approved once
	// a slot opens, and the capacity ceiling holds.
	assert.Equal(t, models.JoinRequestPending, store.requests[created.ID].Status)
	assert.Len(t, store.activeMembers(team.ID), 2)

	require.NoError(t, service.Leave(ctx, team.ID, member.ID))

	resp, err := service.ApproveJoinRequest(ctx, leader.ID, created.ID)
	require.NoError(t, err)
	assert.Equal(t, string(models.JoinRequestApproved), resp.Status)
	assert.Len(t, store.activeMembers(team.ID), 2)
}

func TestCapacityCeilingUnderCompetingApprovals(t *testing.T) {
	service, store := newWorkflowFixture()
	ctx := context.Background()

	leader := store.addUser("leader")
	first := store.addUser("first")
	second := store.addUser("second")
	team := store.addTeam(leader, 2)

	reqFirst, err := service.RequestJoin(ctx, team.ID, first.ID, "")
	require.NoError(t, err)
	reqSecond, err := service.RequestJoin(ctx, team.ID, second.ID, "")
	require.NoError(t, err)

	_, err = service.ApproveJoinRequest(ctx, leader.ID, reqFirst.ID)
	require.NoError(t, err)

	// One slot existed; the second approval must bounce off the ceiling.
	_, err = service.ApproveJoinRequest(ctx, leader.ID, reqSecond.ID)
	assert.ErrorIs(t, err, apperrors.ErrTeamFull)
	assert.Len(t, store.activeMembers(team.ID), team.MaxMembers)
}

func TestRejectJoinRequest(t *testing.T) {
	service, store := newWorkflowFixture()
	ctx := context.Background()

	leader := store.addUser("leader")
	applicant := store.addUser("applicant")
	team := store.addTeam(leader, 5)

	created, err := service.RequestJoin(ctx, team.ID, applicant.ID, "")
	require.NoError(t, err)

	resp, err := service.RejectJoinRequest(ctx, leader.ID, created.ID)
	require.NoError(t, err)
	assert.Equal(t, string(models.JoinRequestRejected), resp.Status)
	assert.NotNil(t, resp.ProcessedAt)

	_, ok := store.membership(team.ID, applicant.ID)
	assert.False(t, ok)
}

func TestLeaveThenRejoin(t *testing.T) {
	service, store := newWorkflowFixture()
	ctx := context.Background()

	leader := store.addUser("leader")
	member := store.addUser("member")
	team := store.addTeam(leader, 5)
	store.addMember(team.ID, member.ID, models.RoleMember)

	require.NoError(t, service.Leave(ctx, team.ID, member.ID))

	// A departed member can ask to join again.
	resp, err := service.RequestJoin(ctx, team.ID, member.ID, "coming back")
	require.NoError(t, err)
	assert.Equal(t, string(models.JoinRequestPending), resp.Status)
}

func TestLeaveRequiresMembership(t *testing.T) {
	service, store := newWorkflowFixture()
	ctx := context.Background()

	leader := store.addUser("leader")
	outsider := store.addUser("outsider")
	team := store.addTeam(leader, 5)

	err := service.Leave(ctx, team.ID, outsider.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotAMember)
}

func TestSoleLeaderMayLeave(t *testing.T) {
	service, store := newWorkflowFixture()
	ctx := context.Background()

	leader := store.addUser("leader")
	member := store.addUser("member")
	team := store.addTeam(leader, 5)
	store.addMember(team.ID, member.ID, models.RoleMember)

	require.NoError(t, service.Leave(ctx, team.ID, leader.ID))

	_, ok := store.membership(team.ID, leader.ID)
	assert.False(t, ok)
	_, ok = store.membership(team.ID, member.ID)
	assert.True(t, ok)
}

func TestInviteNotifiesInvitee(t *testing.T) {
	service, store := newWorkflowFixture()
	ctx := context.Background()

	leader := store.addUser("leader")
	invitee := store.addUser("invitee")
	team := store.addTeam(leader, 5)

	resp, err := service.Invite(ctx, leader.ID, team.ID, &dto.InviteRequest{InviteeID: invitee.ID})
	require.NoError(t, err)
	assert.Equal(t, string(models.InvitationPending), resp.Status)
	assert.False(t, resp.ExpiresAt.IsZero())

	require.Len(t, store.notifications, 1)
	n := store.notifications[0]
	assert.Equal(t, invitee.ID, n.UserID)
	assert.Equal(t, models.NotificationTeamInvitation, n.Type)
	assert.Equal(t, models.TargetInvitation, n.Target.Kind)
	assert.Equal(t, resp.ID, n.Target.ID)
}

func TestInviteRejectsExistingMember(t *testing.T) {
	service, store := newWorkflowFixture()
	ctx := context.Background()

	leader := store.addUser("leader")
	member := store.addUser("member")
	team := store.addTeam(leader, 5)
	store.addMember(team.ID, member.ID, models.RoleMember)

	_, err := service.Invite(ctx, leader.ID, team.ID, &dto.InviteRequest{InviteeID: member.ID})
	assert.ErrorIs(t, err, apperrors.ErrAlreadyMember)
}

func TestInviteRejectsDuplicate(t *testing.T) {
	service, store := newWorkflowFixture()
	ctx := context.Background()

	leader := store.addUser("leader")
	invitee := store.addUser("invitee")
	team := store.addTeam(leader, 5)

	_, err := service.Invite(ctx, leader.ID, team.ID, &dto.InviteRequest{InviteeID: invitee.ID})
	require.NoError(t, err)

	_, err = service.Invite(ctx, leader.ID, team.ID, &dto.InviteRequest{InviteeID: invitee.ID})
	assert.ErrorIs(t, err, apperrors.ErrDuplicateInvitation)
}

func TestInviteRequiresMembership(t *testing.T) {
	service, store := newWorkflowFixture()
	ctx := context.Background()

	leader := store.addUser("leader")
	outsider := store.addUser("outsider")
	invitee := store.addUser("invitee")
	team := store.addTeam(leader, 5)

	_, err := service.Invite(ctx, outsider.ID, team.ID, &dto.InviteRequest{InviteeID: invitee.ID})
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
}

func TestAcceptInvitationAdmitsInvitee(t *testing.T) {
	service, store := newWorkflowFixture()
	ctx := context.Background()

	leader := store.addUser("leader")
	invitee := store.addUser("invitee")
	team := store.addTeam(leader, 5)

	created, err := service.Invite(ctx, leader.ID, team.ID, &dto.InviteRequest{InviteeID: invitee.ID})
	require.NoError(t, err)

	resp, err := service.AcceptInvitation(ctx, invitee.ID, created.ID)
	require.NoError(t, err)
	assert.Equal(t, string(models.InvitationAccepted), resp.Status)

	membership, ok := store.membership(team.ID, invitee.ID)
	require.True(t, ok)
	assert.Equal(t, models.RoleMember, membership.Role)
}

func TestAcceptInvitationRequiresInvitee(t *testing.T) {
	service, store := newWorkflowFixture()
	ctx := context.Background()

	leader := store.addUser("leader")
	invitee := store.addUser("invitee")
	outsider := store.addUser("outsider")
	team := store.addTeam(leader, 5)

	created, err := service.Invite(ctx, leader.ID, team.ID, &dto.InviteRequest{InviteeID: invitee.ID})
	require.NoError(t, err)

	_, err = service.AcceptInvitation(ctx, outsider.ID, created.ID)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
}

func TestAcceptExpiredInvitationPersistsExpiry(t *testing.T) {
	service, store := newWorkflowFixture()
	ctx := context.Background()

	leader := store.addUser("leader")
	invitee := store.addUser("invitee")
	team := store.addTeam(leader, 5)

	past := time.Now().Add(-time.Hour)
	invitation := &models.TeamInvitation{
		TeamID:    team.ID,
		InviterID: leader.ID,
		InviteeID: invitee.ID,
		ExpiresAt: past,
	}
	invitationID, err := (&fakeInvitationRepo{s: store}).Create(ctx, invitation)
	require.NoError(t, err)

	// Accepting past the expiry fails AND flips the row to expired.
	_, err = service.AcceptInvitation(ctx, invitee.ID, invitationID)
	assert.ErrorIs(t, err, apperrors.ErrInvitationExpired)
	assert.Equal(t, models.InvitationExpired, store.invitations[invitationID].Status)

	_, ok := store.membership(team.ID, invitee.ID)
	assert.False(t, ok)

	// expired is terminal: a second accept reports the invalid state.
	_, err = service.AcceptInvitation(ctx, invitee.ID, invitationID)
	assert.ErrorIs(t, err, apperrors.ErrInvalidState)
}

func TestAcceptInvitationFullTeamStaysPending(t *testing.T) {
	service, store := newWorkflowFixture()
	ctx := context.Background()

	leader := store.addUser("leader")
	member := store.addUser("member")
	invitee := store.addUser("invitee")
	team := store.addTeam(leader, 2)

	created, err := service.Invite(ctx, leader.ID, team.ID, &dto.InviteRequest{InviteeID: invitee.ID})
	require.NoError(t, err)

	store.addMember(team.ID, member.ID, models.RoleMember)

	_, err = service.AcceptInvitation(ctx, invitee.ID, created.ID)
	assert.ErrorIs(t, err, apperrors.ErrTeamFull)
	assert.Equal(t, models.InvitationPending, store.invitations[created.ID].Status)
	assert.Len(t, store.activeMembers(team.ID), 2)
}

func TestDeclineInvitationTwice(t *testing.T) {
	service, store := newWorkflowFixture()
	ctx := context.Background()

	leader := store.addUser("leader")
	invitee := store.addUser("invitee")
	team := store.addTeam(leader, 5)

	created, err := service.Invite(ctx, leader.ID, team.ID, &dto.InviteRequest{InviteeID: invitee.ID})
	require.NoError(t, err)

	resp, err := service.DeclineInvitation(ctx, invitee.ID, created.ID)
	require.NoError(t, err)
	assert.Equal(t, string(models.InvitationDeclined), resp.Status)

	_, err = service.DeclineInvitation(ctx, invitee.ID, created.ID)
	assert.ErrorIs(t, err, apperrors.ErrInvalidState)
}

func TestPrivateTeamHiddenFromOutsiders(t *testing.T) {
	service, store := newWorkflowFixture()
	ctx := context.Background()

	leader := store.addUser("leader")
	outsider := store.addUser("outsider")
	team := store.addTeam(leader, 5)
	team.IsPublic = false

	_, err := service.GetTeamByID(ctx, team.ID, outsider.ID)
	assert.ErrorIs(t, err, apperrors.ErrTeamNotFound)

	_, err = service.GetTeamByID(ctx, team.ID, leader.ID)
	assert.NoError(t, err)
}

func TestCreateTeamDefaultsAndLeaderMembership(t *testing.T) {
	service, store := newWorkflowFixture()
	ctx := context.Background()

	creator := store.addUser("creator")

	resp, err := service.CreateTeam(ctx, creator.ID, &dto.CreateTeamRequest{
		EventID:     1,
		Name:        "Night Shift",
		Description: "late builds",
	})
	require.NoError(t, err)
	assert.Equal(t, defaultMaxMembers, resp.MaxMembers)
	assert.True(t, resp.IsPublic)
	assert.Equal(t, 1, resp.MemberCount)

	membership, ok := store.membership(resp.ID, creator.ID)
	require.True(t, ok)
	assert.Equal(t, models.RoleLeader, membership.Role)
}

func TestRemoveMemberCreatorOnly(t *testing.T) {
	service, store := newWorkflowFixture()
	ctx := context.Background()

	leader := store.addUser("leader")
	member := store.addUser("member")
	team := store.addTeam(leader, 5)
	store.addMember(team.ID, member.ID, models.RoleMember)

	err := service.RemoveMember(ctx, member.ID, team.ID, leader.ID)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	require.NoError(t, service.RemoveMember(ctx, leader.ID, team.ID, member.ID))
	_, ok := store.membership(team.ID, member.ID)
	assert.False(t, ok)
}
