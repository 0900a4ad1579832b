package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Ayesha-Rimione/hackmate/internal/app/models/dto"
	"github.com/Ayesha-Rimione/hackmate/internal/app/services"
	"github.com/Ayesha-Rimione/hackmate/internal/middleware"
	"github.com/Ayesha-Rimione/hackmate/internal/pkg/helpers"
)

// TeamController handles teams, memberships, join requests and invitations
type TeamController struct {
	teamService services.TeamService
}

// NewTeamController creates a new team controller
func NewTeamController(teamService services.TeamService) *TeamController {
	return &TeamController{teamService: teamService}
}

// GetTeams lists teams visible to the caller
// @Summary List teams
// @Description Retrieves public teams plus teams the caller belongs to, paginated
// @Tags teams
// @Produce json
// @Security BearerAuth
// @Param eventId query int false "Filter by event"
// @Param search query string false "Search in name and description"
// @Param page query int false "Page number"
// @Param size query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=dto.TeamListResponse} "Teams retrieved"
// @Router /teams [get]
func (c *TeamController) GetTeams(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	page, size := helpers.ParsePaginationParams(ctx)
	filter := &dto.TeamFilterRequest{Page: page, PageSize: size}

	if v := ctx.Query("eventId"); v != "" {
		eventID, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid event ID").WithField("eventId")
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
			return
		}
		filter.EventID = &eventID
	}
	if v := ctx.Query("search"); v != "" {
		filter.Search = &v
	}

	resp, err := c.teamService.GetTeams(ctx, filter, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

// CreateTeam creates a team led by the caller
// @Summary Create team
// @Description Creates a team; the caller becomes its leader
// @Tags teams
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateTeamRequest true "Team payload"
// @Success 201 {object} dto.APIResponse{data=dto.TeamResponse} "Team created"
// @Failure 404 {object} dto.ErrorResponse "Event not found"
// @Router /teams [post]
func (c *TeamController) CreateTeam(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var req dto.CreateTeamRequest
	if !bindJSON(ctx, &req) {
		return
	}

	resp, err := c.teamService.CreateTeam(ctx, userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(resp))
}

// GetTeamByID retrieves one team
// @Summary Get team by ID
// @Description Retrieves a team with member count and required skills; private teams are member-only
// @Tags teams
// @Produce json
// @Security BearerAuth
// @Param id path int true "Team ID"
// @Success 200 {object} dto.APIResponse{data=dto.TeamResponse} "Team retrieved"
// @Failure 404 {object} dto.ErrorResponse "Team not found"
// @Router /teams/{id} [get]
func (c *TeamController) GetTeamByID(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	resp, err := c.teamService.GetTeamByID(ctx, id, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

// UpdateTeam updates a team
// @Summary Update team
// @Description Applies a partial update; creator-only
// @Tags teams
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Team ID"
// @Param request body dto.UpdateTeamRequest true "Team fields"
// @Success 200 {object} dto.APIResponse{data=dto.TeamResponse} "Team updated"
// @Failure 403 {object} dto.ErrorResponse "Not the creator"
// @Router /teams/{id} [put]
func (c *TeamController) UpdateTeam(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateTeamRequest
	if !bindJSON(ctx, &req) {
		return
	}

	resp, err := c.teamService.UpdateTeam(ctx, userID, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

// DeleteTeam removes a team
// @Summary Delete team
// @Description Deletes a team with its memberships, requests and invitations; creator-only
// @Tags teams
// @Produce json
// @Security BearerAuth
// @Param id path int true "Team ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Team deleted"
// @Failure 403 {object} dto.ErrorResponse "Not the creator"
// @Router /teams/{id} [delete]
func (c *TeamController) DeleteTeam(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.teamService.DeleteTeam(ctx, userID, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.SuccessResponse{Message: "Team deleted"}))
}

// GetMembers lists a team's active members
// @Summary List team members
// @Description Retrieves the team's active members with roles
// @Tags teams
// @Produce json
// @Security BearerAuth
// @Param id path int true "Team ID"
// @Success 200 {object} dto.APIResponse{data=[]dto.TeamMemberResponse} "Members retrieved"
// @Failure 404 {object} dto.ErrorResponse "Team not found"
// @Router /teams/{id}/members [get]
func (c *TeamController) GetMembers(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	resp, err := c.teamService.GetMembers(ctx, id, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

// RemoveMember kicks a member from the team
// @Summary Remove team member
// @Description Removes a member; creator-only
// @Tags teams
// @Produce json
// @Security BearerAuth
// @Param id path int true "Team ID"
// @Param userId path int true "User ID of the member"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Member removed"
// @Failure 403 {object} dto.ErrorResponse "Not the creator"
// @Router /teams/{id}/members/{userId} [delete]
func (c *TeamController) RemoveMember(ctx *gin.Context) {
	callerID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	teamID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	memberID, ok := parseIDParam(ctx, "userId")
	if !ok {
		return
	}

	if err := c.teamService.RemoveMember(ctx, callerID, teamID, memberID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.SuccessResponse{Message: "Member removed"}))
}

// SetRequiredSkills replaces a team's required skills
// @Summary Set required skills
// @Description Replaces the team's required skill set; creator-only
// @Tags teams
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Team ID"
// @Param request body dto.SetSkillsRequest true "Skill IDs"
// @Success 200 {object} dto.APIResponse{data=dto.TeamResponse} "Skills updated"
// @Failure 403 {object} dto.ErrorResponse "Not the creator"
// @Router /teams/{id}/skills [put]
func (c *TeamController) SetRequiredSkills(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.SetSkillsRequest
	if !bindJSON(ctx, &req) {
		return
	}

	resp, err := c.teamService.SetRequiredSkills(ctx, userID, id, req.SkillIDs)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

// RequestJoin files a join request
// @Summary Request to join a team
// @Description Creates a pending join request for the caller
// @Tags teams
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Team ID"
// @Param request body dto.JoinTeamRequest false "Optional message"
// @Success 201 {object} dto.APIResponse{data=dto.JoinRequestResponse} "Request filed"
// @Failure 409 {object} dto.ErrorResponse "Already a member or duplicate request"
// @Router /teams/{id}/join [post]
func (c *TeamController) RequestJoin(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.JoinTeamRequest
	if ctx.Request.ContentLength > 0 && !bindJSON(ctx, &req) {
		return
	}

	resp, err := c.teamService.RequestJoin(ctx, id, userID, req.Message)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(resp))
}

// Leave removes the caller from the team
// @Summary Leave team
// @Description Removes the caller's membership
// @Tags teams
// @Produce json
// @Security BearerAuth
// @Param id path int true "Team ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Left team"
// @Failure 400 {object} dto.ErrorResponse "Not a member"
// @Router /teams/{id}/leave [post]
func (c *TeamController) Leave(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.teamService.Leave(ctx, id, userID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.SuccessResponse{Message: "Left team"}))
}

// GetTeamJoinRequests lists a team's join requests
// @Summary List team join requests
// @Description Retrieves the team's join requests; creator-only
// @Tags teams
// @Produce json
// @Security BearerAuth
// @Param id path int true "Team ID"
// @Param status query string false "Filter by status (pending, approved, rejected)"
// @Success 200 {object} dto.APIResponse{data=[]dto.JoinRequestResponse} "Requests retrieved"
// @Failure 403 {object} dto.ErrorResponse "Not the creator"
// @Router /teams/{id}/join-requests [get]
func (c *TeamController) GetTeamJoinRequests(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var status *string
	if v := ctx.Query("status"); v != "" {
		status = &v
	}

	resp, err := c.teamService.GetTeamJoinRequests(ctx, userID, id, status)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

// GetMyJoinRequests lists the caller's join requests
// @Summary List own join requests
// @Description Retrieves join requests filed by the caller
// @Tags join-requests
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.JoinRequestResponse} "Requests retrieved"
// @Router /join-requests [get]
func (c *TeamController) GetMyJoinRequests(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	resp, err := c.teamService.GetMyJoinRequests(ctx, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

// ApproveJoinRequest approves a pending join request
// @Summary Approve join request
// @Description Admits the requester if the team has a free slot; creator-only
// @Tags join-requests
// @Produce json
// @Security BearerAuth
// @Param id path int true "Join request ID"
// @Success 200 {object} dto.APIResponse{data=dto.JoinRequestResponse} "Request approved"
// @Failure 400 {object} dto.ErrorResponse "Team full or already processed"
// @Failure 403 {object} dto.ErrorResponse "Not the creator"
// @Router /join-requests/{id}/approve [post]
func (c *TeamController) ApproveJoinRequest(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	resp, err := c.teamService.ApproveJoinRequest(ctx, userID, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

// RejectJoinRequest rejects a pending join request
// @Summary Reject join request
// @Description Rejects the request; creator-only
// @Tags join-requests
// @Produce json
// @Security BearerAuth
// @Param id path int true "Join request ID"
// @Success 200 {object} dto.APIResponse{data=dto.JoinRequestResponse} "Request rejected"
// @Failure 400 {object} dto.ErrorResponse "Already processed"
// @Failure 403 {object} dto.ErrorResponse "Not the creator"
// @Router /join-requests/{id}/reject [post]
func (c *TeamController) RejectJoinRequest(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	resp, err := c.teamService.RejectJoinRequest(ctx, userID, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

// Invite invites a user to the team
// @Summary Invite user to team
// @Description Creates a pending invitation; any active member may invite
// @Tags teams
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Team ID"
// @Param request body dto.InviteRequest true "Invitation payload"
// @Success 201 {object} dto.APIResponse{data=dto.InvitationResponse} "Invitation sent"
// @Failure 409 {object} dto.ErrorResponse "Already a member or duplicate invitation"
// @Router /teams/{id}/invitations [post]
func (c *TeamController) Invite(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.InviteRequest
	if !bindJSON(ctx, &req) {
		return
	}

	resp, err := c.teamService.Invite(ctx, userID, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(resp))
}

// GetTeamInvitations lists a team's invitations
// @Summary List team invitations
// @Description Retrieves the team's invitations; member-only
// @Tags teams
// @Produce json
// @Security BearerAuth
// @Param id path int true "Team ID"
// @Success 200 {object} dto.APIResponse{data=[]dto.InvitationResponse} "Invitations retrieved"
// @Failure 403 {object} dto.ErrorResponse "Not a member"
// @Router /teams/{id}/invitations [get]
func (c *TeamController) GetTeamInvitations(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	resp, err := c.teamService.GetTeamInvitations(ctx, userID, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

// GetMyInvitations lists invitations addressed to the caller
// @Summary List own invitations
// @Description Retrieves invitations where the caller is the invitee
// @Tags invitations
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.InvitationResponse} "Invitations retrieved"
// @Router /invitations [get]
func (c *TeamController) GetMyInvitations(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	resp, err := c.teamService.GetMyInvitations(ctx, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

// AcceptInvitation accepts a pending invitation
// @Summary Accept invitation
// @Description Admits the caller if the team has a free slot; invitee-only
// @Tags invitations
// @Produce json
// @Security BearerAuth
// @Param id path int true "Invitation ID"
// @Success 200 {object} dto.APIResponse{data=dto.InvitationResponse} "Invitation accepted"
// @Failure 400 {object} dto.ErrorResponse "Team full, expired or no longer pending"
// @Failure 403 {object} dto.ErrorResponse "Not the invitee"
// @Router /invitations/{id}/accept [post]
func (c *TeamController) AcceptInvitation(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	resp, err := c.teamService.AcceptInvitation(ctx, userID, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

// DeclineInvitation declines a pending invitation
// @Summary Decline invitation
// @Description Declines the invitation; invitee-only
// @Tags invitations
// @Produce json
// @Security BearerAuth
// @Param id path int true "Invitation ID"
// @Success 200 {object} dto.APIResponse{data=dto.InvitationResponse} "Invitation declined"
// @Failure 400 {object} dto.ErrorResponse "No longer pending"
// @Failure 403 {object} dto.ErrorResponse "Not the invitee"
// @Router /invitations/{id}/decline [post]
func (c *TeamController) DeclineInvitation(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	resp, err := c.teamService.DeclineInvitation(ctx, userID, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}
