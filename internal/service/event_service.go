package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/noah-isme/campus-events-api/internal/dto"
	"github.com/noah-isme/campus-events-api/internal/models"
	appErrors "github.com/noah-isme/campus-events-api/pkg/errors"
)

const noCurrentEventMsg = "No current event found"

type eventRepository interface {
	List(ctx context.Context, filter models.EventFilter) ([]models.Event, error)
	FindByID(ctx context.Context, id string) (*models.Event, error)
	FindByYear(ctx context.Context, year int, publishedOnly bool) (*models.Event, error)
	ExistsByYear(ctx context.Context, year int, excludeID string) (bool, error)
	Create(ctx context.Context, event *models.Event) error
	Update(ctx context.Context, event *models.Event) error
	Delete(ctx context.Context, id string) error
}

type contentLister[T any] interface {
	ListByEventID(ctx context.Context, eventID string) ([]T, error)
}

// EventContents lists every content collection shown on an event page.
type EventContents struct {
	Summaries   contentLister[models.Summary]
	Themes      contentLister[models.Theme]
	Programmes  contentLister[models.Programme]
	Resources   contentLister[models.Resource]
	Speakers    contentLister[models.Speaker]
	Sponsors    contentLister[models.Sponsor]
	FAQs        contentLister[models.FAQ]
	Media       contentLister[models.Media]
	Galleries   contentLister[models.Gallery]
	Attendances contentLister[models.Attendance]
}

// EventService manages events and their cached public reads.
type EventService struct {
	repo      eventRepository
	contents  EventContents
	cache     *CacheService
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewEventService constructs an EventService. cache may be nil.
func NewEventService(repo eventRepository, contents EventContents, cache *CacheService, validate *validator.Validate, logger *zap.Logger) *EventService {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EventService{repo: repo, contents: contents, cache: cache, validator: validate, logger: logger, now: time.Now}
}

// List returns events ordered by year, newest first.
func (s *EventService) List(ctx context.Context, filter models.EventFilter) ([]models.Event, error) {
	events, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, internalError(err, "failed to list events")
	}
	return events, nil
}

// Get returns an event with all of its content.
func (s *EventService) Get(ctx context.Context, id string) (*models.EventDetail, error) {
	return s.cached(ctx, eventIDKey(id), func() (*models.Event, error) {
		return s.find(ctx, id)
	})
}

// ByYear returns the event held in year, published or not.
func (s *EventService) ByYear(ctx context.Context, year int) (*models.EventDetail, error) {
	return s.cached(ctx, eventYearKey(year), func() (*models.Event, error) {
		event, err := s.repo.FindByYear(ctx, year, false)
		if err != nil {
			return nil, notFoundAs(err, fmt.Sprintf("Event not found for year %d", year))
		}
		return event, nil
	})
}

// Current returns the published event of the current calendar year.
func (s *EventService) Current(ctx context.Context) (*models.EventDetail, error) {
	year := s.now().Year()
	return s.cached(ctx, currentEventKey(year), func() (*models.Event, error) {
		event, err := s.repo.FindByYear(ctx, year, true)
		if err != nil {
			return nil, notFoundAs(err, noCurrentEventMsg)
		}
		return event, nil
	})
}

// Create validates and stores a new event.
func (s *EventService) Create(ctx context.Context, req dto.CreateEventRequest) (*models.Event, error) {
	fields, err := validateStruct(s.validator, req)
	if err != nil {
		return nil, err
	}
	if req.Year != nil {
		if err := fields.unique("year", func() (bool, error) { return s.repo.ExistsByYear(ctx, *req.Year, "") }); err != nil {
			return nil, err
		}
	}
	checkDateOrder(fields, "end_date", "start_date", req.EndDate, req.StartDate)
	if err := fields.err(); err != nil {
		return nil, err
	}

	now := utcNow()
	event := &models.Event{
		ID:          uuid.NewString(),
		Year:        *req.Year,
		Title:       strings.TrimSpace(req.Title),
		Location:    nullableString(req.Location),
		StartDate:   optionalDay(req.StartDate),
		EndDate:     optionalDay(req.EndDate),
		IsPublished: boolOr(req.IsPublished, false),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Create(ctx, event); err != nil {
		return nil, writeError(s.logger, err, "failed to create event")
	}
	s.cache.PurgeEvents(ctx)
	return event, nil
}

// Update applies a partial update. The year stays unique across events.
func (s *EventService) Update(ctx context.Context, id string, req dto.UpdateEventRequest) (*models.Event, error) {
	event, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	fields, err := validateStruct(s.validator, req)
	if err != nil {
		return nil, err
	}
	if req.Year != nil {
		if err := fields.unique("year", func() (bool, error) { return s.repo.ExistsByYear(ctx, *req.Year, id) }); err != nil {
			return nil, err
		}
	}
	start := dateString(event.StartDate)
	if req.StartDate.Set {
		start = req.StartDate.Value
	}
	end := dateString(event.EndDate)
	if req.EndDate.Set {
		end = req.EndDate.Value
	}
	if req.StartDate.Set || req.EndDate.Set {
		checkDateOrder(fields, "end_date", "start_date", end, start)
	}
	if err := fields.err(); err != nil {
		return nil, err
	}

	if req.Year != nil {
		event.Year = *req.Year
	}
	event.Title = stringOr(req.Title, event.Title)
	applyString(req.Location, &event.Location)
	if req.StartDate.Set {
		event.StartDate = optionalDay(req.StartDate.Value)
	}
	if req.EndDate.Set {
		event.EndDate = optionalDay(req.EndDate.Value)
	}
	event.IsPublished = boolOr(req.IsPublished, event.IsPublished)
	event.UpdatedAt = utcNow()

	if err := s.repo.Update(ctx, event); err != nil {
		return nil, writeError(s.logger, err, "failed to update event")
	}
	s.cache.PurgeEvents(ctx)
	return event, nil
}

// Delete removes an event; the schema cascades to its content.
func (s *EventService) Delete(ctx context.Context, id string) error {
	if _, err := s.find(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return writeError(s.logger, err, "failed to delete event")
	}
	s.cache.PurgeEvents(ctx)
	return nil
}

func (s *EventService) find(ctx context.Context, id string) (*models.Event, error) {
	if !isUUID(id) {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "Event not found")
	}
	event, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "Event")
	}
	return event, nil
}

// cached serves key from the cache, falling back to load plus a full
// content fetch.
func (s *EventService) cached(ctx context.Context, key string, load func() (*models.Event, error)) (*models.EventDetail, error) {
	var detail models.EventDetail
	if s.cache.Fetch(ctx, key, &detail) {
		return &detail, nil
	}

	event, err := load()
	if err != nil {
		return nil, err
	}
	out, err := s.detail(ctx, *event)
	if err != nil {
		return nil, err
	}
	s.cache.Store(ctx, key, out)
	return out, nil
}

func (s *EventService) detail(ctx context.Context, event models.Event) (*models.EventDetail, error) {
	out := &models.EventDetail{Event: event}
	g, gctx := errgroup.WithContext(ctx)
	loadInto(g, gctx, s.contents.Summaries, event.ID, &out.Summaries)
	loadInto(g, gctx, s.contents.Themes, event.ID, &out.Themes)
	loadInto(g, gctx, s.contents.Programmes, event.ID, &out.Programmes)
	loadInto(g, gctx, s.contents.Resources, event.ID, &out.Resources)
	loadInto(g, gctx, s.contents.Speakers, event.ID, &out.Speakers)
	loadInto(g, gctx, s.contents.Sponsors, event.ID, &out.Sponsors)
	loadInto(g, gctx, s.contents.FAQs, event.ID, &out.FAQs)
	loadInto(g, gctx, s.contents.Media, event.ID, &out.Media)
	loadInto(g, gctx, s.contents.Galleries, event.ID, &out.Galleries)
	loadInto(g, gctx, s.contents.Attendances, event.ID, &out.Attendances)
	if err := g.Wait(); err != nil {
		return nil, internalError(err, "failed to load event content")
	}
	return out, nil
}

func loadInto[T any](g *errgroup.Group, ctx context.Context, lister contentLister[T], eventID string, dst *[]T) {
	g.Go(func() error {
		items, err := lister.ListByEventID(ctx, eventID)
		if err != nil {
			return err
		}
		if items == nil {
			items = []T{}
		}
		*dst = items
		return nil
	})
}

func notFoundAs(err error, message string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return appErrors.Clone(appErrors.ErrNotFound, message)
	}
	return internalError(err, "failed to load event")
}

// checkDateOrder adds an after-or-equal error on field when both values
// parse and later is before earlier.
func checkDateOrder(fields fieldErrors, field, other string, later, earlier *string) {
	if later == nil || earlier == nil || fields.has(field) || fields.has(other) {
		return
	}
	end, err := ParseTimestamp(*later)
	if err != nil {
		return
	}
	start, err := ParseTimestamp(*earlier)
	if err != nil {
		return
	}
	if end.Before(start) {
		fields.add(field, afterOrEqualMessage(field, other))
	}
}

func optionalDay(raw *string) *models.Date {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return nil
	}
	d := parseDay(*raw)
	return &d
}

func dateString(d *models.Date) *string {
	if d == nil {
		return nil
	}
	s := d.String()
	return &s
}
