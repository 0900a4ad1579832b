package services

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/samber/lo"

	"github.com/Ayesha-Rimione/hackmate/internal/app/models"
	"github.com/Ayesha-Rimione/hackmate/internal/app/models/dto"
	"github.com/Ayesha-Rimione/hackmate/internal/pkg/apperrors"
	"github.com/Ayesha-Rimione/hackmate/internal/pkg/helpers"
	"github.com/Ayesha-Rimione/hackmate/internal/pkg/validation"
)

// userRepository is the slice of the user repository the user service needs.
type userRepository interface {
	GetWithProfile(ctx context.Context, id int64) (*models.User, error)
	UpdateProfile(ctx context.Context, userID int64, req *dto.UpdateProfileRequest) error
	SetProfileSkills(ctx context.Context, userID int64, skillIDs []int64) error
	GetAll(ctx context.Context, filter *dto.UserFilterRequest) ([]models.User, int64, error)
}

// UserService handles user browsing and profile management
type UserService interface {
	GetUsers(ctx context.Context, filter *dto.UserFilterRequest) (*dto.UserListResponse, error)
	GetUserByID(ctx context.Context, id int64) (*dto.UserResponse, error)
	UpdateProfile(ctx context.Context, userID int64, req *dto.UpdateProfileRequest) (*dto.UserResponse, error)
	SetSkills(ctx context.Context, userID int64, skillIDs []int64) (*dto.UserResponse, error)
}

type userServiceImpl struct {
	userRepo userRepository
	logger   zerolog.Logger
}

// NewUserService creates a new UserService
func NewUserService(userRepo userRepository, logger zerolog.Logger) UserService {
	return &userServiceImpl{userRepo: userRepo, logger: logger}
}

// GetUsers retrieves users matching the filter, paginated.
func (s *userServiceImpl) GetUsers(ctx context.Context, filter *dto.UserFilterRequest) (*dto.UserListResponse, error) {
	users, total, err := s.userRepo.GetAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := lo.Map(users, func(u models.User, _ int) dto.UserResponse {
		return dto.NewUserResponse(&u)
	})

	return &dto.UserListResponse{
		Users:          responses,
		PaginationInfo: helpers.NewPaginationInfo(total, filter.Page, filter.PageSize),
	}, nil
}

// GetUserByID retrieves one user with profile and skills.
func (s *userServiceImpl) GetUserByID(ctx context.Context, id int64) (*dto.UserResponse, error) {
	user, err := s.userRepo.GetWithProfile(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := dto.NewUserResponse(user)
	return &resp, nil
}

// UpdateProfile applies a partial profile update for the calling user and
// returns the updated representation.
func (s *userServiceImpl) UpdateProfile(ctx context.Context, userID int64, req *dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	if err := validateProfileUpdate(req); err != nil {
		return nil, err
	}

	if err := s.userRepo.UpdateProfile(ctx, userID, req); err != nil {
		return nil, err
	}

	s.logger.Debug().Int64("userID", userID).Msg("Profile updated")

	return s.GetUserByID(ctx, userID)
}

func validateProfileUpdate(req *dto.UpdateProfileRequest) error {
	if req.ExperienceLevel != nil {
		switch models.ExperienceLevel(*req.ExperienceLevel) {
		case models.ExperienceBeginner, models.ExperienceIntermediate,
			models.ExperienceAdvanced, models.ExperienceExpert:
		default:
			return apperrors.NewBadRequestError("unknown experience level")
		}
	}
	if req.Availability != nil {
		switch models.Availability(*req.Availability) {
		case models.AvailabilityAvailable, models.AvailabilityBusy, models.AvailabilityUnavailable:
		default:
			return apperrors.NewBadRequestError("unknown availability")
		}
	}
	if req.Status != nil {
		switch models.ProfileStatus(*req.Status) {
		case models.StatusLookingForTeam, models.StatusLookingForMembers, models.StatusNotLooking:
		default:
			return apperrors.NewBadRequestError("unknown profile status")
		}
	}
	for _, url := range []*string{req.LinkedinURL, req.GithubURL, req.PortfolioURL} {
		if url != nil && *url != "" && !validation.IsValidURL(*url) {
			return apperrors.NewBadRequestError("invalid URL")
		}
	}
	return nil
}

// SetSkills replaces the calling user's profile skill set.
func (s *userServiceImpl) SetSkills(ctx context.Context, userID int64, skillIDs []int64) (*dto.UserResponse, error) {
	if err := s.userRepo.SetProfileSkills(ctx, userID, lo.Uniq(skillIDs)); err != nil {
		return nil, err
	}
	return s.GetUserByID(ctx, userID)
}
