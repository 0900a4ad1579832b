package dto

import (
	"time"

	"github.com/Ayesha-Rimione/hackmate/internal/app/models"
)

// CreateEventRequest is the payload for event creation
type CreateEventRequest struct {
	Title                string    `json:"title" binding:"required" example:"Campus Hack 2025"`
	Description          string    `json:"description" binding:"required"`
	University           string    `json:"university"`
	Organization         string    `json:"organization"`
	StartDate            time.Time `json:"startDate" binding:"required"`
	EndDate              time.Time `json:"endDate" binding:"required"`
	RegistrationDeadline time.Time `json:"registrationDeadline" binding:"required"`
	MaxParticipants      *int      `json:"maxParticipants"`
	IsOnline             bool      `json:"isOnline"`
	Location             string    `json:"location"`
	WebsiteURL           string    `json:"websiteUrl"`
	Rules                string    `json:"rules"`
	Prizes               string    `json:"prizes"`
	Themes               string    `json:"themes"`
}

// UpdateEventRequest is the payload for event updates; nil fields stay unchanged
type UpdateEventRequest struct {
	Title                *string    `json:"title"`
	Description          *string    `json:"description"`
	StartDate            *time.Time `json:"startDate"`
	EndDate              *time.Time `json:"endDate"`
	RegistrationDeadline *time.Time `json:"registrationDeadline"`
	MaxParticipants      *int       `json:"maxParticipants"`
	IsOnline             *bool      `json:"isOnline"`
	Location             *string    `json:"location"`
	WebsiteURL           *string    `json:"websiteUrl"`
	Rules                *string    `json:"rules"`
	Prizes               *string    `json:"prizes"`
	Themes               *string    `json:"themes"`
	IsPublished          *bool      `json:"isPublished"`
}

// EventResponse is the event representation
type EventResponse struct {
	ID                   int64              `json:"id" example:"1"`
	Title                string             `json:"title" example:"Campus Hack 2025"`
	Description          string             `json:"description"`
	Organizer            *UserBasicResponse `json:"organizer,omitempty"`
	University           string             `json:"university"`
	Organization         string             `json:"organization"`
	StartDate            time.Time          `json:"startDate"`
	EndDate              time.Time          `json:"endDate"`
	RegistrationDeadline time.Time          `json:"registrationDeadline"`
	MaxParticipants      *int               `json:"maxParticipants,omitempty"`
	IsOnline             bool               `json:"isOnline"`
	Location             string             `json:"location"`
	WebsiteURL           string             `json:"websiteUrl"`
	Rules                string             `json:"rules"`
	Prizes               string             `json:"prizes"`
	Themes               string             `json:"themes"`
	IsApproved           bool               `json:"isApproved"`
	IsPublished          bool               `json:"isPublished"`
	ParticipantCount     int                `json:"participantCount"`
	Tags                 []string           `json:"tags"`
	CreatedAt            time.Time          `json:"createdAt"`
}

// NewEventResponse maps an event model to its response form.
func NewEventResponse(event *models.Event, participantCount int) EventResponse {
	tags := event.Tags
	if tags == nil {
		tags = []string{}
	}
	return EventResponse{
		ID:                   event.ID,
		Title:                event.Title,
		Description:          event.Description,
		Organizer:            NewUserBasicResponse(event.Organizer),
		University:           event.University,
		Organization:         event.Organization,
		StartDate:            event.StartDate,
		EndDate:              event.EndDate,
		RegistrationDeadline: event.RegistrationDeadline,
		MaxParticipants:      event.MaxParticipants,
		IsOnline:             event.IsOnline,
		Location:             event.Location,
		WebsiteURL:           event.WebsiteURL,
		Rules:                event.Rules,
		Prizes:               event.Prizes,
		Themes:               event.Themes,
		IsApproved:           event.IsApproved,
		IsPublished:          event.IsPublished,
		ParticipantCount:     participantCount,
		Tags:                 tags,
		CreatedAt:            event.CreatedAt,
	}
}

// EventFilterRequest carries list filters for event browsing
type EventFilterRequest struct {
	Search      *string
	OrganizerID *int64
	Upcoming    bool
	Page        int
	PageSize    int
}

// EventListResponse is a paginated event list
type EventListResponse struct {
	Events         []EventResponse `json:"events"`
	PaginationInfo PaginationInfo  `json:"pagination"`
}

// EventParticipantResponse is a single registration entry
type EventParticipantResponse struct {
	ID               int64              `json:"id"`
	User             *UserBasicResponse `json:"user"`
	Status           string             `json:"status" example:"registered"`
	RegistrationDate time.Time          `json:"registrationDate"`
}

// SetTagsRequest replaces an event's tag set
type SetTagsRequest struct {
	Tags []string `json:"tags" binding:"required"`
}
