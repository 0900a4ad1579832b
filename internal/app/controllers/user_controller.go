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

// UserController handles user browsing and profile management
type UserController struct {
	userService services.UserService
}

// NewUserController creates a new user controller
func NewUserController(userService services.UserService) *UserController {
	return &UserController{userService: userService}
}

// GetUsers lists users for team matching
// @Summary List users
// @Description Retrieves users filtered by availability, status or skill, paginated
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param availability query string false "Filter by availability (available, busy, unavailable)"
// @Param status query string false "Filter by profile status"
// @Param skillId query int false "Filter by skill ID"
// @Param search query string false "Search in name and email"
// @Param page query int false "Page number"
// @Param size query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=dto.UserListResponse} "Users retrieved"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /users [get]
func (c *UserController) GetUsers(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)
	filter := &dto.UserFilterRequest{Page: page, PageSize: size}

	if v := ctx.Query("availability"); v != "" {
		filter.Availability = &v
	}
	if v := ctx.Query("status"); v != "" {
		filter.Status = &v
	}
	if v := ctx.Query("skillId"); v != "" {
		skillID, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid skill ID").WithField("skillId")
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
			return
		}
		filter.SkillID = &skillID
	}
	if v := ctx.Query("search"); v != "" {
		filter.Search = &v
	}

	resp, err := c.userService.GetUsers(ctx, filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

// GetMe returns the caller's own user record
// @Summary Get current user
// @Description Retrieves the authenticated user with profile and skills
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.UserResponse} "User retrieved"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /users/me [get]
func (c *UserController) GetMe(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	resp, err := c.userService.GetUserByID(ctx, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

// GetUserByID retrieves one user
// @Summary Get user by ID
// @Description Retrieves a user with profile and skills
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} dto.APIResponse{data=dto.UserResponse} "User retrieved"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Router /users/{id} [get]
func (c *UserController) GetUserByID(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	resp, err := c.userService.GetUserByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

// UpdateProfile updates the caller's profile
// @Summary Update profile
// @Description Applies a partial update to the caller's profile; omitted fields stay unchanged
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.UpdateProfileRequest true "Profile fields"
// @Success 200 {object} dto.APIResponse{data=dto.UserResponse} "Profile updated"
// @Failure 400 {object} dto.ErrorResponse "Validation failed"
// @Router /users/me/profile [put]
func (c *UserController) UpdateProfile(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var req dto.UpdateProfileRequest
	if !bindJSON(ctx, &req) {
		return
	}

	resp, err := c.userService.UpdateProfile(ctx, userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

// SetSkills replaces the caller's profile skills
// @Summary Set profile skills
// @Description Replaces the caller's skill set with the given skill IDs
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.SetSkillsRequest true "Skill IDs"
// @Success 200 {object} dto.APIResponse{data=dto.UserResponse} "Skills updated"
// @Failure 404 {object} dto.ErrorResponse "Skill not found"
// @Router /users/me/skills [put]
func (c *UserController) SetSkills(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var req dto.SetSkillsRequest
	if !bindJSON(ctx, &req) {
		return
	}

	resp, err := c.userService.SetSkills(ctx, userID, req.SkillIDs)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}
