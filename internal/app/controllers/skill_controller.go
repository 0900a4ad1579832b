package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Ayesha-Rimione/hackmate/internal/app/models/dto"
	"github.com/Ayesha-Rimione/hackmate/internal/app/services"
	"github.com/Ayesha-Rimione/hackmate/internal/middleware"
)

// SkillController handles the shared skill catalog
type SkillController struct {
	skillService services.SkillService
}

// NewSkillController creates a new skill controller
func NewSkillController(skillService services.SkillService) *SkillController {
	return &SkillController{skillService: skillService}
}

// GetSkills lists the skill catalog
// @Summary List skills
// @Description Retrieves the skill catalog, optionally filtered by category
// @Tags skills
// @Produce json
// @Security BearerAuth
// @Param category query string false "Filter by category (programming, design, business, marketing, data, other)"
// @Success 200 {object} dto.APIResponse{data=[]dto.SkillResponse} "Skills retrieved"
// @Failure 400 {object} dto.ErrorResponse "Unknown category"
// @Router /skills [get]
func (c *SkillController) GetSkills(ctx *gin.Context) {
	var category *string
	if v := ctx.Query("category"); v != "" {
		category = &v
	}

	resp, err := c.skillService.GetSkills(ctx, category)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

// CreateSkill adds a catalog entry
// @Summary Create skill
// @Description Adds a skill to the shared catalog; names are unique
// @Tags skills
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateSkillRequest true "Skill payload"
// @Success 201 {object} dto.APIResponse{data=dto.SkillResponse} "Skill created"
// @Failure 409 {object} dto.ErrorResponse "Skill already exists"
// @Router /skills [post]
func (c *SkillController) CreateSkill(ctx *gin.Context) {
	var req dto.CreateSkillRequest
	if !bindJSON(ctx, &req) {
		return
	}

	resp, err := c.skillService.CreateSkill(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(resp))
}
