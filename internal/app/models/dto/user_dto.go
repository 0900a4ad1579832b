package dto

import (
	"time"

	"github.com/Ayesha-Rimione/hackmate/internal/app/models"
)

// UserBasicResponse is the short user representation embedded in other payloads
type UserBasicResponse struct {
	ID        int64  `json:"id" example:"1"`
	Email     string `json:"email" example:"ada@uni.edu"`
	FirstName string `json:"firstName" example:"Ada"`
	LastName  string `json:"lastName" example:"Lovelace"`
}

// NewUserBasicResponse maps a user model to its short representation.
func NewUserBasicResponse(user *models.User) *UserBasicResponse {
	if user == nil {
		return nil
	}
	return &UserBasicResponse{
		ID:        user.ID,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
	}
}

// ProfileResponse is the full profile representation
type ProfileResponse struct {
	Bio             string          `json:"bio"`
	University      string          `json:"university"`
	Organization    string          `json:"organization"`
	ExperienceLevel string          `json:"experienceLevel" example:"intermediate"`
	Interests       string          `json:"interests"`
	Availability    string          `json:"availability" example:"available"`
	Status          string          `json:"status" example:"looking_for_team"`
	LinkedinURL     string          `json:"linkedinUrl"`
	GithubURL       string          `json:"githubUrl"`
	PortfolioURL    string          `json:"portfolioUrl"`
	Skills          []SkillResponse `json:"skills"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

// UserResponse is the full user representation
type UserResponse struct {
	ID        int64            `json:"id" example:"1"`
	Email     string           `json:"email" example:"ada@uni.edu"`
	FirstName string           `json:"firstName" example:"Ada"`
	LastName  string           `json:"lastName" example:"Lovelace"`
	IsActive  bool             `json:"isActive" example:"true"`
	CreatedAt time.Time        `json:"createdAt"`
	Profile   *ProfileResponse `json:"profile,omitempty"`
}

// NewUserResponse maps a user model (with optional profile) to its response form.
func NewUserResponse(user *models.User) UserResponse {
	resp := UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		IsActive:  user.IsActive,
		CreatedAt: user.CreatedAt,
	}
	if user.Profile != nil {
		p := user.Profile
		skills := make([]SkillResponse, 0, len(p.Skills))
		for _, s := range p.Skills {
			skills = append(skills, NewSkillResponse(s))
		}
		resp.Profile = &ProfileResponse{
			Bio:             p.Bio,
			University:      p.University,
			Organization:    p.Organization,
			ExperienceLevel: string(p.ExperienceLevel),
			Interests:       p.Interests,
			Availability:    string(p.Availability),
			Status:          string(p.Status),
			LinkedinURL:     p.LinkedinURL,
			GithubURL:       p.GithubURL,
			PortfolioURL:    p.PortfolioURL,
			Skills:          skills,
			UpdatedAt:       p.UpdatedAt,
		}
	}
	return resp
}

// UpdateProfileRequest is the payload for profile updates. Pointer fields are
// optional; nil means "leave unchanged".
type UpdateProfileRequest struct {
	Bio             *string `json:"bio"`
	University      *string `json:"university"`
	Organization    *string `json:"organization"`
	ExperienceLevel *string `json:"experienceLevel" example:"advanced"`
	Interests       *string `json:"interests"`
	Availability    *string `json:"availability" example:"busy"`
	Status          *string `json:"status" example:"looking_for_members"`
	LinkedinURL     *string `json:"linkedinUrl"`
	GithubURL       *string `json:"githubUrl"`
	PortfolioURL    *string `json:"portfolioUrl"`
}

// SetSkillsRequest replaces the caller's profile skill set
type SetSkillsRequest struct {
	SkillIDs []int64 `json:"skillIds" binding:"required"`
}

// UserFilterRequest carries list filters for user browsing
type UserFilterRequest struct {
	Availability *string
	Status       *string
	SkillID      *int64
	Search       *string
	Page         int
	PageSize     int
}

// UserListResponse is a paginated user list
type UserListResponse struct {
	Users          []UserResponse `json:"users"`
	PaginationInfo PaginationInfo `json:"pagination"`
}
