package services

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
	"github.com/samber/lo"

	"github.com/Ayesha-Rimione/hackmate/internal/app/models"
	"github.com/Ayesha-Rimione/hackmate/internal/app/models/dto"
	"github.com/Ayesha-Rimione/hackmate/internal/pkg/apperrors"
)

// skillRepository is the slice of the skill repository the skill service needs.
type skillRepository interface {
	GetAll(ctx context.Context, category *string) ([]models.Skill, error)
	Create(ctx context.Context, skill *models.Skill) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Skill, error)
}

// SkillService handles the shared skill catalog
type SkillService interface {
	GetSkills(ctx context.Context, category *string) ([]dto.SkillResponse, error)
	CreateSkill(ctx context.Context, req *dto.CreateSkillRequest) (*dto.SkillResponse, error)
}

type skillServiceImpl struct {
	skillRepo skillRepository
	logger    zerolog.Logger
}

// NewSkillService creates a new SkillService
func NewSkillService(skillRepo skillRepository, logger zerolog.Logger) SkillService {
	return &skillServiceImpl{skillRepo: skillRepo, logger: logger}
}

// GetSkills retrieves the catalog, optionally filtered by category.
func (s *skillServiceImpl) GetSkills(ctx context.Context, category *string) ([]dto.SkillResponse, error) {
	if category != nil && *category != "" && !isValidSkillCategory(*category) {
		return nil, apperrors.NewBadRequestError("unknown skill category")
	}

	skills, err := s.skillRepo.GetAll(ctx, category)
	if err != nil {
		return nil, err
	}

	return lo.Map(skills, func(skill models.Skill, _ int) dto.SkillResponse {
		return dto.NewSkillResponse(skill)
	}), nil
}

// CreateSkill adds a catalog entry. Names are unique case-insensitively; the
// stored form keeps the caller's casing.
func (s *skillServiceImpl) CreateSkill(ctx context.Context, req *dto.CreateSkillRequest) (*dto.SkillResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperrors.NewBadRequestError("skill name is required")
	}

	category := models.SkillOther
	if req.Category != "" {
		if !isValidSkillCategory(req.Category) {
			return nil, apperrors.NewBadRequestError("unknown skill category")
		}
		category = models.SkillCategory(req.Category)
	}

	skill := &models.Skill{Name: name, Category: category}
	id, err := s.skillRepo.Create(ctx, skill)
	if err != nil {
		return nil, err
	}
	skill.ID = id

	s.logger.Info().Str("name", name).Msg("Skill added to catalog")

	resp := dto.NewSkillResponse(*skill)
	return &resp, nil
}

func isValidSkillCategory(category string) bool {
	switch models.SkillCategory(category) {
	case models.SkillProgramming, models.SkillDesign, models.SkillBusiness,
		models.SkillMarketing, models.SkillData, models.SkillOther:
		return true
	}
	return false
}
