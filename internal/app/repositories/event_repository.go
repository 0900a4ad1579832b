package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Ayesha-Rimione/hackmate/internal/app/models"
	"github.com/Ayesha-Rimione/hackmate/internal/app/models/dto"
	"github.com/Ayesha-Rimione/hackmate/internal/db"
	"github.com/Ayesha-Rimione/hackmate/internal/pkg/apperrors"
	"github.com/Ayesha-Rimione/hackmate/internal/pkg/dberrors"
	"github.com/Ayesha-Rimione/hackmate/internal/pkg/helpers"
)

// EventRepository handles database operations for events, registrations and tags
type EventRepository struct {
	db *pgxpool.Pool
}

// NewEventRepository creates a new EventRepository
func NewEventRepository(db *pgxpool.Pool) *EventRepository {
	return &EventRepository{db: db}
}

var eventColumns = []string{
	"id", "title", "description", "organizer_id", "university", "organization",
	"start_date", "end_date", "registration_deadline", "max_participants",
	"is_online", "location", "website_url", "rules", "prizes", "themes",
	"is_approved", "is_published", "created_at", "updated_at",
}

func scanEvent(row pgx.Row) (*models.Event, error) {
	var event models.Event
	err := row.Scan(
		&event.ID,
		&event.Title,
		&event.Description,
		&event.OrganizerID,
		&event.University,
		&event.Organization,
		&event.StartDate,
		&event.EndDate,
		&event.RegistrationDeadline,
		&event.MaxParticipants,
		&event.IsOnline,
		&event.Location,
		&event.WebsiteURL,
		&event.Rules,
		&event.Prizes,
		&event.Themes,
		&event.IsApproved,
		&event.IsPublished,
		&event.CreatedAt,
		&event.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &event, nil
}

// Create inserts a new event.
func (r *EventRepository) Create(ctx context.Context, event *models.Event) (int64, error) {
	query := `
		INSERT INTO events (
			title, description, organizer_id, university, organization,
			start_date, end_date, registration_deadline, max_participants,
			is_online, location, website_url, rules, prizes, themes
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING id
	`

	var id int64
	err := r.db.QueryRow(ctx, query,
		event.Title, event.Description, event.OrganizerID,
		event.University, event.Organization,
		event.StartDate, event.EndDate, event.RegistrationDeadline,
		event.MaxParticipants, event.IsOnline, event.Location,
		event.WebsiteURL, event.Rules, event.Prizes, event.Themes,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("error executing query: %w", err)
	}

	return id, nil
}

// GetByID retrieves an event with its tags.
func (r *EventRepository) GetByID(ctx context.Context, id int64) (*models.Event, error) {
	query := squirrel.Select(eventColumns...).
		From("events").
		Where("id = ?", id).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	event, err := scanEvent(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrEventNotFound
		}
		return nil, fmt.Errorf("error executing query: %w", err)
	}

	tags, err := r.getTags(ctx, id)
	if err != nil {
		return nil, err
	}
	event.Tags = tags

	return event, nil
}

func (r *EventRepository) getTags(ctx context.Context, eventID int64) ([]string, error) {
	rows, err := r.db.Query(ctx,
		`SELECT name FROM event_tags WHERE event_id = $1 ORDER BY name`, eventID)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var tags []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		tags = append(tags, name)
	}

	return tags, rows.Err()
}

// GetAll retrieves events with filtering and pagination. When publishedOnly is
// set, only approved and published events are returned.
func (r *EventRepository) GetAll(ctx context.Context, filter *dto.EventFilterRequest, publishedOnly bool) ([]models.Event, int64, error) {
	offset, limit := helpers.CalculateOffsetLimit(filter.Page, filter.PageSize)

	columns := make([]string, len(eventColumns), len(eventColumns)+1)
	copy(columns, eventColumns)
	columns = append(columns, "COUNT(*) OVER() AS total_count")

	query := squirrel.Select(columns...).
		From("events").
		OrderBy("start_date DESC").
		Limit(uint64(limit)).
		Offset(offset).
		PlaceholderFormat(squirrel.Dollar)

	if publishedOnly {
		query = query.Where("is_approved AND is_published")
	}
	if filter.OrganizerID != nil {
		query = query.Where("organizer_id = ?", *filter.OrganizerID)
	}
	if filter.Upcoming {
		query = query.Where("start_date > NOW()")
	}
	if filter.Search != nil && *filter.Search != "" {
		pattern := "%" + *filter.Search + "%"
		query = query.Where("(title ILIKE ? OR description ILIKE ?)", pattern, pattern)
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var events []models.Event
	var total int64
	for rows.Next() {
		var event models.Event
		err := rows.Scan(
			&event.ID,
			&event.Title,
			&event.Description,
			&event.OrganizerID,
			&event.University,
			&event.Organization,
			&event.StartDate,
			&event.EndDate,
			&event.RegistrationDeadline,
			&event.MaxParticipants,
			&event.IsOnline,
			&event.Location,
			&event.WebsiteURL,
			&event.Rules,
			&event.Prizes,
			&event.Themes,
			&event.IsApproved,
			&event.IsPublished,
			&event.CreatedAt,
			&event.UpdatedAt,
			&total,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning row: %w", err)
		}
		events = append(events, event)
	}

	return events, total, rows.Err()
}

// Update applies the non-nil fields of the request to an event.
func (r *EventRepository) Update(ctx context.Context, id int64, req *dto.UpdateEventRequest) error {
	update := squirrel.Update("events").
		Set("updated_at", squirrel.Expr("NOW()")).
		Where("id = ?", id).
		PlaceholderFormat(squirrel.Dollar)

	if req.Title != nil {
		update = update.Set("title", *req.Title)
	}
	if req.Description != nil {
		update = update.Set("description", *req.Description)
	}
	if req.StartDate != nil {
		update = update.Set("start_date", *req.StartDate)
	}
	if req.EndDate != nil {
		update = update.Set("end_date", *req.EndDate)
	}
	if req.RegistrationDeadline != nil {
		update = update.Set("registration_deadline", *req.RegistrationDeadline)
	}
	if req.MaxParticipants != nil {
		update = update.Set("max_participants", *req.MaxParticipants)
	}
	if req.IsOnline != nil {
		update = update.Set("is_online", *req.IsOnline)
	}
	if req.Location != nil {
		update = update.Set("location", *req.Location)
	}
	if req.WebsiteURL != nil {
		update = update.Set("website_url", *req.WebsiteURL)
	}
	if req.Rules != nil {
		update = update.Set("rules", *req.Rules)
	}
	if req.Prizes != nil {
		update = update.Set("prizes", *req.Prizes)
	}
	if req.Themes != nil {
		update = update.Set("themes", *req.Themes)
	}
	if req.IsPublished != nil {
		update = update.Set("is_published", *req.IsPublished)
	}

	sql, args, err := update.ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	result, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error executing query: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrEventNotFound
	}

	return nil
}

// Delete removes an event; registrations, teams and tags cascade.
func (r *EventRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.Exec(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error executing query: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrEventNotFound
	}
	return nil
}

// SetTags replaces an event's tag set.
func (r *EventRepository) SetTags(ctx context.Context, eventID int64, tags []string) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM event_tags WHERE event_id = $1`, eventID); err != nil {
			return fmt.Errorf("error clearing tags: %w", err)
		}
		for _, tag := range tags {
			_, err := tx.Exec(ctx,
				`INSERT INTO event_tags (event_id, name) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
				eventID, tag)
			if err != nil {
				return fmt.Errorf("error inserting tag: %w", err)
			}
		}
		return nil
	})
}

// Register inserts a registration row with the given status.
// Returns ErrAlreadyRegistered on the (event, user) unique constraint.
func (r *EventRepository) Register(ctx context.Context, eventID, userID int64, status models.ParticipationStatus) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx, `
		INSERT INTO event_participants (event_id, user_id, status)
		VALUES ($1, $2, $3)
		RETURNING id
	`, eventID, userID, status).Scan(&id)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return 0, apperrors.ErrAlreadyRegistered
		}
		return 0, fmt.Errorf("error executing query: %w", err)
	}
	return id, nil
}

// UpdateRegistrationStatus moves a registration to a new status.
func (r *EventRepository) UpdateRegistrationStatus(ctx context.Context, eventID, userID int64, status models.ParticipationStatus) error {
	result, err := r.db.Exec(ctx, `
		UPDATE event_participants SET status = $1
		WHERE event_id = $2 AND user_id = $3
	`, status, eventID, userID)
	if err != nil {
		return fmt.Errorf("error executing query: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotRegistered
	}
	return nil
}

// CountActiveParticipants counts registrations that occupy a slot.
func (r *EventRepository) CountActiveParticipants(ctx context.Context, eventID int64) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM event_participants
		WHERE event_id = $1 AND status IN ('registered', 'confirmed')
	`, eventID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error executing query: %w", err)
	}
	return count, nil
}

// GetParticipants retrieves all registrations for an event with user data,
// ordered by registration date.
func (r *EventRepository) GetParticipants(ctx context.Context, eventID int64) ([]*models.EventParticipant, error) {
	query := `
		SELECT ep.id, ep.event_id, ep.user_id, ep.status, ep.registration_date,
			u.id, u.email, u.first_name, u.last_name
		FROM event_participants ep
		JOIN users u ON u.id = ep.user_id
		WHERE ep.event_id = $1
		ORDER BY ep.registration_date
	`

	rows, err := r.db.Query(ctx, query, eventID)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var participants []*models.EventParticipant
	for rows.Next() {
		var p models.EventParticipant
		var u models.User
		err := rows.Scan(
			&p.ID, &p.EventID, &p.UserID, &p.Status, &p.RegistrationDate,
			&u.ID, &u.Email, &u.FirstName, &u.LastName,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		p.User = &u
		participants = append(participants, &p)
	}

	return participants, rows.Err()
}
