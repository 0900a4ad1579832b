package dto

import "github.com/Ayesha-Rimione/hackmate/internal/app/models"

// SkillResponse is the catalog entry representation
type SkillResponse struct {
	ID       int64  `json:"id" example:"3"`
	Name     string `json:"name" example:"Go"`
	Category string `json:"category" example:"programming"`
}

// NewSkillResponse maps a skill model to its response form.
func NewSkillResponse(skill models.Skill) SkillResponse {
	return SkillResponse{
		ID:       skill.ID,
		Name:     skill.Name,
		Category: string(skill.Category),
	}
}

// CreateSkillRequest is the payload for adding a catalog entry
type CreateSkillRequest struct {
	Name     string `json:"name" binding:"required" example:"Go"`
	Category string `json:"category" binding:"required" example:"programming"`
}
