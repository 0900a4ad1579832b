package services

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/samber/lo"

	"github.com/Ayesha-Rimione/hackmate/internal/app/models"
	"github.com/Ayesha-Rimione/hackmate/internal/app/models/dto"
	"github.com/Ayesha-Rimione/hackmate/internal/pkg/apperrors"
	"github.com/Ayesha-Rimione/hackmate/internal/pkg/helpers"
)

// eventRepository is the slice of the event repository the event service needs.
type eventRepository interface {
	Create(ctx context.Context, event *models.Event) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Event, error)
	GetAll(ctx context.Context, filter *dto.EventFilterRequest, publishedOnly bool) ([]models.Event, int64, error)
	Update(ctx context.Context, id int64, req *dto.UpdateEventRequest) error
	Delete(ctx context.Context, id int64) error
	SetTags(ctx context.Context, eventID int64, tags []string) error
	Register(ctx context.Context, eventID, userID int64, status models.ParticipationStatus) (int64, error)
	UpdateRegistrationStatus(ctx context.Context, eventID, userID int64, status models.ParticipationStatus) error
	CountActiveParticipants(ctx context.Context, eventID int64) (int, error)
	GetParticipants(ctx context.Context, eventID int64) ([]*models.EventParticipant, error)
}

// eventUserFinder resolves users for organizer embedding.
type eventUserFinder interface {
	FindByID(ctx context.Context, id int64) (*models.User, error)
}

// EventService handles events, registrations and tags
type EventService interface {
	CreateEvent(ctx context.Context, organizerID int64, req *dto.CreateEventRequest) (*dto.EventResponse, error)
	GetEvents(ctx context.Context, filter *dto.EventFilterRequest) (*dto.EventListResponse, error)
	GetEventByID(ctx context.Context, viewerID, id int64) (*dto.EventResponse, error)
	UpdateEvent(ctx context.Context, callerID, eventID int64, req *dto.UpdateEventRequest) (*dto.EventResponse, error)
	DeleteEvent(ctx context.Context, callerID, eventID int64) error
	SetTags(ctx context.Context, callerID, eventID int64, tags []string) (*dto.EventResponse, error)
	RegisterForEvent(ctx context.Context, eventID, userID int64) (*dto.EventParticipantResponse, error)
	CancelRegistration(ctx context.Context, eventID, userID int64) error
	GetParticipants(ctx context.Context, callerID, eventID int64) ([]dto.EventParticipantResponse, error)
}

type eventServiceImpl struct {
	eventRepo eventRepository
	userRepo  eventUserFinder
	now       func() time.Time
	logger    zerolog.Logger
}

// NewEventService creates a new EventService
func NewEventService(eventRepo eventRepository, userRepo eventUserFinder, logger zerolog.Logger) EventService {
	return &eventServiceImpl{
		eventRepo: eventRepo,
		userRepo:  userRepo,
		now:       time.Now,
		logger:    logger,
	}
}

// CreateEvent creates an event owned by the caller. New events start
// unapproved and unpublished.
func (s *eventServiceImpl) CreateEvent(ctx context.Context, organizerID int64, req *dto.CreateEventRequest) (*dto.EventResponse, error) {
	if !req.EndDate.After(req.StartDate) {
		return nil, apperrors.NewBadRequestError("end date must be after start date")
	}
	if req.RegistrationDeadline.After(req.StartDate) {
		return nil, apperrors.NewBadRequestError("registration deadline must not be after the start date")
	}
	if req.MaxParticipants != nil && *req.MaxParticipants < 1 {
		return nil, apperrors.NewBadRequestError("maxParticipants must be positive")
	}

	event := &models.Event{
		Title:                req.Title,
		Description:          req.Description,
		OrganizerID:          organizerID,
		University:           req.University,
		Organization:         req.Organization,
		StartDate:            req.StartDate,
		EndDate:              req.EndDate,
		RegistrationDeadline: req.RegistrationDeadline,
		MaxParticipants:      req.MaxParticipants,
		IsOnline:             req.IsOnline,
		Location:             req.Location,
		WebsiteURL:           req.WebsiteURL,
		Rules:                req.Rules,
		Prizes:               req.Prizes,
		Themes:               req.Themes,
	}

	id, err := s.eventRepo.Create(ctx, event)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("eventID", id).Int64("organizerID", organizerID).Msg("Event created")

	return s.GetEventByID(ctx, organizerID, id)
}

// GetEvents retrieves approved, published events matching the filter.
func (s *eventServiceImpl) GetEvents(ctx context.Context, filter *dto.EventFilterRequest) (*dto.EventListResponse, error) {
	events, total, err := s.eventRepo.GetAll(ctx, filter, true)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.EventResponse, 0, len(events))
	for i := range events {
		count, err := s.eventRepo.CountActiveParticipants(ctx, events[i].ID)
		if err != nil {
			return nil, err
		}
		responses = append(responses, dto.NewEventResponse(&events[i], count))
	}

	return &dto.EventListResponse{
		Events:         responses,
		PaginationInfo: helpers.NewPaginationInfo(total, filter.Page, filter.PageSize),
	}, nil
}

// GetEventByID retrieves one event with organizer, tags and participant count.
// Draft events are visible to their organizer only.
func (s *eventServiceImpl) GetEventByID(ctx context.Context, viewerID, id int64) (*dto.EventResponse, error) {
	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.requireVisible(event, viewerID); err != nil {
		return nil, err
	}

	if organizer, err := s.userRepo.FindByID(ctx, event.OrganizerID); err == nil {
		event.Organizer = organizer
	}

	count, err := s.eventRepo.CountActiveParticipants(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := dto.NewEventResponse(event, count)
	return &resp, nil
}

// UpdateEvent applies a partial update. Only the organizer may update.
func (s *eventServiceImpl) UpdateEvent(ctx context.Context, callerID, eventID int64, req *dto.UpdateEventRequest) (*dto.EventResponse, error) {
	if err := s.requireOrganizer(ctx, callerID, eventID); err != nil {
		return nil, err
	}

	if err := s.eventRepo.Update(ctx, eventID, req); err != nil {
		return nil, err
	}

	return s.GetEventByID(ctx, callerID, eventID)
}

// DeleteEvent removes an event. Only the organizer may delete.
func (s *eventServiceImpl) DeleteEvent(ctx context.Context, callerID, eventID int64) error {
	if err := s.requireOrganizer(ctx, callerID, eventID); err != nil {
		return err
	}

	s.logger.Info().Int64("eventID", eventID).Msg("Event deleted")

	return s.eventRepo.Delete(ctx, eventID)
}

// SetTags replaces an event's tags. Only the organizer may set tags.
func (s *eventServiceImpl) SetTags(ctx context.Context, callerID, eventID int64, tags []string) (*dto.EventResponse, error) {
	if err := s.requireOrganizer(ctx, callerID, eventID); err != nil {
		return nil, err
	}

	if err := s.eventRepo.SetTags(ctx, eventID, lo.Uniq(tags)); err != nil {
		return nil, err
	}

	return s.GetEventByID(ctx, callerID, eventID)
}

// requireVisible hides unapproved or unpublished events from everyone but
// their organizer. They behave as nonexistent, not as forbidden.
func (s *eventServiceImpl) requireVisible(event *models.Event, viewerID int64) error {
	if (!event.IsApproved || !event.IsPublished) && event.OrganizerID != viewerID {
		return apperrors.ErrEventNotFound
	}
	return nil
}

func (s *eventServiceImpl) requireOrganizer(ctx context.Context, callerID, eventID int64) error {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return err
	}
	if event.OrganizerID != callerID {
		return apperrors.NewForbiddenError("only the organizer may modify this event")
	}
	return nil
}

// RegisterForEvent registers the caller. Registration closes at the deadline;
// when the event is at capacity the caller is put on the waitlist instead.
func (s *eventServiceImpl) RegisterForEvent(ctx context.Context, eventID, userID int64) (*dto.EventParticipantResponse, error) {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if !event.IsApproved || !event.IsPublished {
		return nil, apperrors.ErrEventNotFound
	}
	if !event.IsRegistrationOpen(s.now()) {
		return nil, apperrors.ErrRegistrationClosed
	}

	status := models.ParticipationRegistered
	if event.MaxParticipants != nil {
		count, err := s.eventRepo.CountActiveParticipants(ctx, eventID)
		if err != nil {
			return nil, err
		}
		if count >= *event.MaxParticipants {
			status = models.ParticipationWaitlist
		}
	}

	id, err := s.eventRepo.Register(ctx, eventID, userID, status)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("eventID", eventID).
		Int64("userID", userID).
		Str("status", string(status)).
		Msg("Event registration")

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &dto.EventParticipantResponse{
		ID:               id,
		User:             dto.NewUserBasicResponse(user),
		Status:           string(status),
		RegistrationDate: s.now(),
	}, nil
}

// CancelRegistration marks the caller's registration cancelled. If a slot
// opens up, the longest-waiting waitlisted participant is promoted.
func (s *eventServiceImpl) CancelRegistration(ctx context.Context, eventID, userID int64) error {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return err
	}

	if err := s.eventRepo.UpdateRegistrationStatus(ctx, eventID, userID, models.ParticipationCancelled); err != nil {
		return err
	}

	if event.MaxParticipants != nil {
		if err := s.promoteFromWaitlist(ctx, event); err != nil {
			s.logger.Warn().Err(err).Int64("eventID", eventID).Msg("Waitlist promotion failed")
		}
	}

	return nil
}

func (s *eventServiceImpl) promoteFromWaitlist(ctx context.Context, event *models.Event) error {
	count, err := s.eventRepo.CountActiveParticipants(ctx, event.ID)
	if err != nil {
		return err
	}
	if count >= *event.MaxParticipants {
		return nil
	}

	participants, err := s.eventRepo.GetParticipants(ctx, event.ID)
	if err != nil {
		return err
	}

	// GetParticipants orders by registration date, so the first waitlisted
	// entry is the longest-waiting one.
	next, found := lo.Find(participants, func(p *models.EventParticipant) bool {
		return p.Status == models.ParticipationWaitlist
	})
	if !found {
		return nil
	}

	if err := s.eventRepo.UpdateRegistrationStatus(ctx, event.ID, next.UserID, models.ParticipationRegistered); err != nil {
		return fmt.Errorf("error promoting participant %d: %w", next.UserID, err)
	}

	s.logger.Info().
		Int64("eventID", event.ID).
		Int64("userID", next.UserID).
		Msg("Promoted participant from waitlist")

	return nil
}

// GetParticipants lists an event's registrations. Only the organizer sees the
// full list including cancellations.
func (s *eventServiceImpl) GetParticipants(ctx context.Context, callerID, eventID int64) ([]dto.EventParticipantResponse, error) {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if err := s.requireVisible(event, callerID); err != nil {
		return nil, err
	}

	participants, err := s.eventRepo.GetParticipants(ctx, eventID)
	if err != nil {
		return nil, err
	}

	if event.OrganizerID != callerID {
		participants = lo.Filter(participants, func(p *models.EventParticipant, _ int) bool {
			return p.Status == models.ParticipationRegistered || p.Status == models.ParticipationConfirmed
		})
	}

	return lo.Map(participants, func(p *models.EventParticipant, _ int) dto.EventParticipantResponse {
		return dto.EventParticipantResponse{
			ID:               p.ID,
			User:             dto.NewUserBasicResponse(p.User),
			Status:           string(p.Status),
			RegistrationDate: p.RegistrationDate,
		}
	}), nil
}
