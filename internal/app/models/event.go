package models

import "time"

// Event represents a hackathon or tech event
type Event struct {
	ID                   int64     `json:"id" db:"id"`
	Title                string    `json:"title" db:"title"`
	Description          string    `json:"description" db:"description"`
	OrganizerID          int64     `json:"organizerId" db:"organizer_id"`
	University           string    `json:"university" db:"university"`
	Organization         string    `json:"organization" db:"organization"`
	StartDate            time.Time `json:"startDate" db:"start_date"`
	EndDate              time.Time `json:"endDate" db:"end_date"`
	RegistrationDeadline time.Time `json:"registrationDeadline" db:"registration_deadline"`
	MaxParticipants      *int      `json:"maxParticipants,omitempty" db:"max_participants"`
	IsOnline             bool      `json:"isOnline" db:"is_online"`
	Location             string    `json:"location" db:"location"`
	WebsiteURL           string    `json:"websiteUrl" db:"website_url"`
	Rules                string    `json:"rules" db:"rules"`
	Prizes               string    `json:"prizes" db:"prizes"`
	Themes               string    `json:"themes" db:"themes"`
	IsApproved           bool      `json:"isApproved" db:"is_approved"`
	IsPublished          bool      `json:"isPublished" db:"is_published"`
	CreatedAt            time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt            time.Time `json:"updatedAt" db:"updated_at"`

	// Related entities
	Organizer *User    `json:"organizer,omitempty"`
	Tags      []string `json:"tags,omitempty"`
}

// IsRegistrationOpen reports whether the registration deadline has not passed yet.
func (e *Event) IsRegistrationOpen(now time.Time) bool {
	return !now.After(e.RegistrationDeadline)
}

// ParticipationStatus is the lifecycle state of an event registration
type ParticipationStatus string

const (
	ParticipationRegistered ParticipationStatus = "registered"
	ParticipationConfirmed  ParticipationStatus = "confirmed"
	ParticipationCancelled  ParticipationStatus = "cancelled"
	ParticipationWaitlist   ParticipationStatus = "waitlist"
)

// EventParticipant links a user to an event. Unique per (event, user).
type EventParticipant struct {
	ID               int64               `json:"id" db:"id"`
	EventID          int64               `json:"eventId" db:"event_id"`
	UserID           int64               `json:"userId" db:"user_id"`
	Status           ParticipationStatus `json:"status" db:"status"`
	RegistrationDate time.Time           `json:"registrationDate" db:"registration_date"`

	// Related entities
	User *User `json:"user,omitempty"`
}
