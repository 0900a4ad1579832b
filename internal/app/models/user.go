package models

import "time"

// User represents an account. Email is the unique, immutable identifier.
type User struct {
	ID           int64     `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	FirstName    string    `json:"firstName" db:"first_name"`
	LastName     string    `json:"lastName" db:"last_name"`
	IsActive     bool      `json:"isActive" db:"is_active"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`

	// Related entities
	Profile *Profile `json:"profile,omitempty"`
}

// ExperienceLevel describes how seasoned a participant is
type ExperienceLevel string

const (
	ExperienceBeginner     ExperienceLevel = "beginner"
	ExperienceIntermediate ExperienceLevel = "intermediate"
	ExperienceAdvanced     ExperienceLevel = "advanced"
	ExperienceExpert       ExperienceLevel = "expert"
)

// Availability describes whether a participant has time for a team
type Availability string

const (
	AvailabilityAvailable   Availability = "available"
	AvailabilityBusy        Availability = "busy"
	AvailabilityUnavailable Availability = "unavailable"
)

// ProfileStatus describes what the participant is currently looking for
type ProfileStatus string

const (
	StatusLookingForTeam    ProfileStatus = "looking_for_team"
	StatusLookingForMembers ProfileStatus = "looking_for_members"
	StatusNotLooking        ProfileStatus = "not_looking"
)

// Profile holds the matching-relevant attributes of a user. Exactly one
// profile exists per user.
type Profile struct {
	ID              int64           `json:"id" db:"id"`
	UserID          int64           `json:"userId" db:"user_id"`
	Bio             string          `json:"bio" db:"bio"`
	University      string          `json:"university" db:"university"`
	Organization    string          `json:"organization" db:"organization"`
	ExperienceLevel ExperienceLevel `json:"experienceLevel" db:"experience_level"`
	Interests       string          `json:"interests" db:"interests"`
	Availability    Availability    `json:"availability" db:"availability"`
	Status          ProfileStatus   `json:"status" db:"status"`
	LinkedinURL     string          `json:"linkedinUrl" db:"linkedin_url"`
	GithubURL       string          `json:"githubUrl" db:"github_url"`
	PortfolioURL    string          `json:"portfolioUrl" db:"portfolio_url"`
	CreatedAt       time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time       `json:"updatedAt" db:"updated_at"`

	// Related entities
	Skills []Skill `json:"skills,omitempty"`
}
