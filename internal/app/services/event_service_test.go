package services

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ayesha-Rimione/hackmate/internal/app/models"
	"github.com/Ayesha-Rimione/hackmate/internal/app/models/dto"
	"github.com/Ayesha-Rimione/hackmate/internal/pkg/apperrors"
)

type fakeEventRepo struct {
	nextID       int64
	events       map[int64]*models.Event
	participants []*models.EventParticipant
	users        map[int64]*models.User
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{
		events: make(map[int64]*models.Event),
		users:  make(map[int64]*models.User),
	}
}

func (f *fakeEventRepo) id() int64 {
	f.nextID++
	return f.nextID
}

func (f *fakeEventRepo) addUser(name string) *models.User {
	user := &models.User{ID: f.id(), FirstName: name, LastName: "Tester", IsActive: true}
	f.users[user.ID] = user
	return user
}

func (f *fakeEventRepo) addEvent(organizerID int64, deadline time.Time, maxParticipants *int) *models.Event {
	event := &models.Event{
		ID:                   f.id(),
		Title:                "Hack Night",
		OrganizerID:          organizerID,
		StartDate:            deadline.Add(24 * time.Hour),
		EndDate:              deadline.Add(48 * time.Hour),
		RegistrationDeadline: deadline,
		MaxParticipants:      maxParticipants,
		IsApproved:           true,
		IsPublished:          true,
	}
	f.events[event.ID] = event
	return event
}

func (f *fakeEventRepo) Create(_ context.Context, event *models.Event) (int64, error) {
	event.ID = f.id()
	f.events[event.ID] = event
	return event.ID, nil
}

func (f *fakeEventRepo) GetByID(_ context.Context, id int64) (*models.Event, error) {
	event, ok := f.events[id]
	if !ok {
		return nil, apperrors.ErrEventNotFound
	}
	return event, nil
}

func (f *fakeEventRepo) GetAll(_ context.Context, _ *dto.EventFilterRequest, publishedOnly bool) ([]models.Event, int64, error) {
	var events []models.Event
	for _, event := range f.events {
		if publishedOnly && (!event.IsApproved || !event.IsPublished) {
			continue
		}
		events = append(events, *event)
	}
	sort.Slice(events, func(i, j int) bool { return events[i].ID < events[j].ID })
	return events, int64(len(events)), nil
}

func (f *fakeEventRepo) Update(_ context.Context, id int64, req *dto.UpdateEventRequest) error {
	event, ok := f.events[id]
	if !ok {
		return apperrors.ErrEventNotFound
	}
	if req.Title != nil {
		event.Title = *req.Title
	}
	if req.IsPublished != nil {
		event.IsPublished = *req.IsPublished
	}
	return nil
}

func (f *fakeEventRepo) Delete(_ context.Context, id int64) error {
	if _, ok := f.events[id]; !ok {
		return apperrors.ErrEventNotFound
	}
	delete(f.events, id)
	return nil
}

func (f *fakeEventRepo) SetTags(_ context.Context, eventID int64, tags []string) error {
	f.events[eventID].Tags = tags
	return nil
}

func (f *fakeEventRepo) Register(_ context.Context, eventID, userID int64, status models.ParticipationStatus) (int64, error) {
	for _, p := range f.participants {
		if p.EventID == eventID && p.UserID == userID {
			return 0, apperrors.ErrAlreadyRegistered
		}
	}
	participant := &models.EventParticipant{
		ID:               f.id(),
		EventID:          eventID,
		UserID:           userID,
		Status:           status,
		RegistrationDate: time.Now(),
	}
	f.participants = append(f.participants, participant)
	return participant.ID, nil
}

func (f *fakeEventRepo) UpdateRegistrationStatus(_ context.Context, eventID, userID int64, status models.ParticipationStatus) error {
	p, ok := lo.Find(f.participants, func(p *models.EventParticipant) bool {
		return p.EventID == eventID && p.UserID == userID
	})
	if !ok {
		return apperrors.ErrNotRegistered
	}
	p.Status = status
	return nil
}

func (f *fakeEventRepo) CountActiveParticipants(_ context.Context, eventID int64) (int, error) {
	active := lo.Filter(f.participants, func(p *models.EventParticipant, _ int) bool {
		return p.EventID == eventID &&
			(p.Status == models.ParticipationRegistered || p.Status == models.ParticipationConfirmed)
	})
	return len(active), nil
}

func (f *fakeEventRepo) GetParticipants(_ context.Context, eventID int64) ([]*models.EventParticipant, error) {
	participants := lo.Filter(f.participants, func(p *models.EventParticipant, _ int) bool {
		return p.EventID == eventID
	})
	for _, p := range participants {
		p.User = f.users[p.UserID]
	}
	return participants, nil
}

func (f *fakeEventRepo) FindByID(_ context.Context, id int64) (*models.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return user, nil
}

func newEventFixture() (EventService, *fakeEventRepo) {
	repo := newFakeEventRepo()
	service := NewEventService(repo, repo, zerolog.Nop())
	return service, repo
}

func TestRegisterForEvent(t *testing.T) {
	service, repo := newEventFixture()
	ctx := context.Background()

	organizer := repo.addUser("organizer")
	participant := repo.addUser("participant")
	event := repo.addEvent(organizer.ID, time.Now().Add(time.Hour), nil)

	resp, err := service.RegisterForEvent(ctx, event.ID, participant.ID)
	require.NoError(t, err)
	assert.Equal(t, string(models.ParticipationRegistered), resp.Status)

	_, err = service.RegisterForEvent(ctx, event.ID, participant.ID)
	assert.ErrorIs(t, err, apperrors.ErrAlreadyRegistered)
}

func TestRegisterAfterDeadline(t *testing.T) {
	service, repo := newEventFixture()
	ctx := context.Background()

	organizer := repo.addUser("organizer")
	participant := repo.addUser("participant")
	event := repo.addEvent(organizer.ID, time.Now().Add(-time.Minute), nil)

	_, err := service.RegisterForEvent(ctx, event.ID, participant.ID)
	assert.ErrorIs(t, err, apperrors.ErrRegistrationClosed)
}

func TestRegisterFullEventGoesToWaitlist(t *testing.T) {
	service, repo := newEventFixture()
	ctx := context.Background()

	organizer := repo.addUser("organizer")
	first := repo.addUser("first")
	second := repo.addUser("second")
	event := repo.addEvent(organizer.ID, time.Now().Add(time.Hour), lo.ToPtr(1))

	resp, err := service.RegisterForEvent(ctx, event.ID, first.ID)
	require.NoError(t, err)
	assert.Equal(t, string(models.ParticipationRegistered), resp.Status)

	resp, err = service.RegisterForEvent(ctx, event.ID, second.ID)
	require.NoError(t, err)
	assert.Equal(t, string(models.ParticipationWaitlist), resp.Status)
}

func TestCancelPromotesFromWaitlist(t *testing.T) {
	service, repo := newEventFixture()
	ctx := context.Background()

	organizer := repo.addUser("organizer")
	first := repo.addUser("first")
	second := repo.addUser("second")
	event := repo.addEvent(organizer.ID, time.Now().Add(time.Hour), lo.ToPtr(1))

	_, err := service.RegisterForEvent(ctx, event.ID, first.ID)
	require.NoError(t, err)
	_, err = service.RegisterForEvent(ctx, event.ID, second.ID)
	require.NoError(t, err)

	require.NoError(t, service.CancelRegistration(ctx, event.ID, first.ID))

	promoted, ok := lo.Find(repo.participants, func(p *models.EventParticipant) bool {
		return p.UserID == second.ID
	})
	require.True(t, ok)
	assert.Equal(t, models.ParticipationRegistered, promoted.Status)
}

func TestUnpublishedEventHiddenFromRegistration(t *testing.T) {
	service, repo := newEventFixture()
	ctx := context.Background()

	organizer := repo.addUser("organizer")
	participant := repo.addUser("participant")
	event := repo.addEvent(organizer.ID, time.Now().Add(time.Hour), nil)
	event.IsPublished = false

	_, err := service.RegisterForEvent(ctx, event.ID, participant.ID)
	assert.ErrorIs(t, err, apperrors.ErrEventNotFound)
}

func TestUpdateEventOrganizerOnly(t *testing.T) {
	service, repo := newEventFixture()
	ctx := context.Background()

	organizer := repo.addUser("organizer")
	other := repo.addUser("other")
	event := repo.addEvent(organizer.ID, time.Now().Add(time.Hour), nil)

	_, err := service.UpdateEvent(ctx, other.ID, event.ID, &dto.UpdateEventRequest{
		Title: lo.ToPtr("Renamed"),
	})
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	resp, err := service.UpdateEvent(ctx, organizer.ID, event.ID, &dto.UpdateEventRequest{
		Title: lo.ToPtr("Renamed"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", resp.Title)
}

func TestGetParticipantsHidesCancelledFromNonOrganizers(t *testing.T) {
	service, repo := newEventFixture()
	ctx := context.Background()

	organizer := repo.addUser("organizer")
	active := repo.addUser("active")
	cancelled := repo.addUser("cancelled")
	event := repo.addEvent(organizer.ID, time.Now().Add(time.Hour), nil)

	_, err := service.RegisterForEvent(ctx, event.ID, active.ID)
	require.NoError(t, err)
	_, err = service.RegisterForEvent(ctx, event.ID, cancelled.ID)
	require.NoError(t, err)
	require.NoError(t, service.CancelRegistration(ctx, event.ID, cancelled.ID))

	forOrganizer, err := service.GetParticipants(ctx, organizer.ID, event.ID)
	require.NoError(t, err)
	assert.Len(t, forOrganizer, 2)

	forMember, err := service.GetParticipants(ctx, active.ID, event.ID)
	require.NoError(t, err)
	require.Len(t, forMember, 1)
	assert.Equal(t, string(models.ParticipationRegistered), forMember[0].Status)
}

func TestDraftEventVisibleOnlyToOrganizer(t *testing.T) {
	service, repo := newEventFixture()
	ctx := context.Background()

	organizer := repo.addUser("organizer")
	other := repo.addUser("other")
	event := repo.addEvent(organizer.ID, time.Now().Add(time.Hour), nil)
	event.IsPublished = false

	_, err := service.GetEventByID(ctx, other.ID, event.ID)
	assert.ErrorIs(t, err, apperrors.ErrEventNotFound)

	_, err = service.GetParticipants(ctx, other.ID, event.ID)
	assert.ErrorIs(t, err, apperrors.ErrEventNotFound)

	resp, err := service.GetEventByID(ctx, organizer.ID, event.ID)
	require.NoError(t, err)
	assert.Equal(t, event.ID, resp.ID)
}

func TestSetTagsRoundTrip(t *testing.T) {
	service, repo := newEventFixture()
	ctx := context.Background()

	organizer := repo.addUser("organizer")
	event := repo.addEvent(organizer.ID, time.Now().Add(time.Hour), nil)

	resp, err := service.SetTags(ctx, organizer.ID, event.ID, []string{"ai", "web", "ai"})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"ai", "web"}, resp.Tags)

	resp, err = service.GetEventByID(ctx, organizer.ID, event.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"ai", "web"}, resp.Tags)
}

func TestCreateEventValidatesDates(t *testing.T) {
	service, repo := newEventFixture()
	ctx := context.Background()

	organizer := repo.addUser("organizer")
	start := time.Now().Add(48 * time.Hour)

	_, err := service.CreateEvent(ctx, organizer.ID, &dto.CreateEventRequest{
		Title:                "Backwards",
		Description:          "end before start",
		StartDate:            start,
		EndDate:              start.Add(-time.Hour),
		RegistrationDeadline: start.Add(-24 * time.Hour),
	})
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)

	_, err = service.CreateEvent(ctx, organizer.ID, &dto.CreateEventRequest{
		Title:                "Late deadline",
		Description:          "deadline after start",
		StartDate:            start,
		EndDate:              start.Add(24 * time.Hour),
		RegistrationDeadline: start.Add(time.Hour),
	})
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)
}
