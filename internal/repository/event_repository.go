package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/campus-events-api/internal/models"
)

const eventColumns = `id, year, title, location, start_date, end_date, is_published, created_at, updated_at`

// EventRepository manages persistence for events.
type EventRepository struct {
	db *sqlx.DB
}

// NewEventRepository constructs an EventRepository.
func NewEventRepository(db *sqlx.DB) *EventRepository {
	return &EventRepository{db: db}
}

// List returns events ordered by year, newest first.
func (r *EventRepository) List(ctx context.Context, filter models.EventFilter) ([]models.Event, error) {
	var cond conditions
	if filter.PublishedOnly {
		cond.add("is_published = $%d", true)
	}

	events := []models.Event{}
	query := `SELECT ` + eventColumns + ` FROM events` + cond.where() + ` ORDER BY year DESC`
	if err := r.db.SelectContext(ctx, &events, query, cond.args...); err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return events, nil
}

// FindByID fetches an event by id.
func (r *EventRepository) FindByID(ctx context.Context, id string) (*models.Event, error) {
	var event models.Event
	if err := r.db.GetContext(ctx, &event, `SELECT `+eventColumns+` FROM events WHERE id = $1`, id); err != nil {
		return nil, err
	}
	return &event, nil
}

// FindByYear fetches the event of a given year, optionally only when published.
func (r *EventRepository) FindByYear(ctx context.Context, year int, publishedOnly bool) (*models.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE year = $1`
	if publishedOnly {
		query += ` AND is_published = TRUE`
	}
	var event models.Event
	if err := r.db.GetContext(ctx, &event, query, year); err != nil {
		return nil, err
	}
	return &event, nil
}

// Exists reports whether an event with id exists.
func (r *EventRepository) Exists(ctx context.Context, id string) (bool, error) {
	found, err := exists(ctx, r.db, `SELECT 1 FROM events WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("check event: %w", err)
	}
	return found, nil
}

// ExistsByYear checks whether another event already claims year.
func (r *EventRepository) ExistsByYear(ctx context.Context, year int, excludeID string) (bool, error) {
	found, err := existsExcluding(ctx, r.db, "events", "year", year, excludeID)
	if err != nil {
		return false, fmt.Errorf("check event year: %w", err)
	}
	return found, nil
}

// Create inserts an event whose id and timestamps are already set.
func (r *EventRepository) Create(ctx context.Context, event *models.Event) error {
	const query = `INSERT INTO events (id, year, title, location, start_date, end_date, is_published, created_at, updated_at)
		VALUES (:id, :year, :title, :location, :start_date, :end_date, :is_published, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, event); err != nil {
		return fmt.Errorf("create event: %w", err)
	}
	return nil
}

// Update persists every column of event.
func (r *EventRepository) Update(ctx context.Context, event *models.Event) error {
	const query = `UPDATE events SET year = :year, title = :title, location = :location, start_date = :start_date,
		end_date = :end_date, is_published = :is_published, updated_at = :updated_at WHERE id = :id`
	res, err := r.db.NamedExecContext(ctx, query, event)
	if err != nil {
		return fmt.Errorf("update event: %w", err)
	}
	return requireAffected(res)
}

// Delete removes an event; every owned row cascades in the schema.
func (r *EventRepository) Delete(ctx context.Context, id string) error {
	if err := deleteByID(ctx, r.db, "events", id); err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	return nil
}
