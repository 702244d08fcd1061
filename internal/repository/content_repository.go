package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/noah-isme/campus-events-api/internal/models"
)

// contentTable describes where one kind of event content is stored.
// columns excludes id, event_id and the timestamps.
type contentTable struct {
	name    string
	columns []string
	orderBy string
}

const (
	byCreated = `created_at, id`
	byOrder   = `"order", created_at, id`
)

var (
	summaryTable    = contentTable{name: "event_summaries", columns: []string{"summary"}, orderBy: byCreated}
	themeTable      = contentTable{name: "event_themes", columns: []string{"theme", "description"}, orderBy: byCreated}
	programmeTable  = contentTable{name: "event_programmes", columns: []string{"title", "description", "start_time", "end_time", "location", "speaker", "order"}, orderBy: byOrder}
	resourceTable   = contentTable{name: "event_resources", columns: []string{"title", "description", "file_path", "file_type", "url"}, orderBy: byCreated}
	speakerTable    = contentTable{name: "speakers", columns: []string{"topic_id", "name", "title", "organization", "bio", "photo", "email", "linkedin", "twitter", "order"}, orderBy: byOrder}
	sponsorTable    = contentTable{name: "sponsors", columns: []string{"name", "tier", "logo", "website", "description", "order"}, orderBy: byOrder}
	faqTable        = contentTable{name: "faqs", columns: []string{"question", "answer", "order"}, orderBy: byOrder}
	mediaTable      = contentTable{name: "media", columns: []string{"title", "type", "file_path", "thumbnail", "description", "order"}, orderBy: byOrder}
	galleryTable    = contentTable{name: "galleries", columns: []string{"title", "image_path", "caption", "order"}, orderBy: byOrder}
	attendanceTable = contentTable{name: "attendances", columns: []string{"name", "email", "phone", "organization", "registration_type", "checked_in", "checked_in_at"}, orderBy: byCreated}
)

func (t contentTable) selectColumns() string {
	cols := append([]string{"id", "event_id"}, t.columns...)
	cols = append(cols, "created_at", "updated_at")
	quoted := make([]string, len(cols))
	for i, c := range cols {
		quoted[i] = pq.QuoteIdentifier(c)
	}
	return strings.Join(quoted, ", ")
}

func (t contentTable) insertQuery() string {
	cols := append([]string{"id", "event_id"}, t.columns...)
	cols = append(cols, "created_at", "updated_at")
	names := make([]string, len(cols))
	params := make([]string, len(cols))
	for i, c := range cols {
		names[i] = pq.QuoteIdentifier(c)
		params[i] = ":" + c
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", t.name, strings.Join(names, ", "), strings.Join(params, ", "))
}

func (t contentTable) updateQuery() string {
	sets := make([]string, 0, len(t.columns)+1)
	for _, c := range t.columns {
		sets = append(sets, fmt.Sprintf("%s = :%s", pq.QuoteIdentifier(c), c))
	}
	sets = append(sets, "updated_at = :updated_at")
	return fmt.Sprintf("UPDATE %s SET %s WHERE id = :id", t.name, strings.Join(sets, ", "))
}

// ContentRepository stores one kind of event-owned content.
type ContentRepository[T any] struct {
	db    *sqlx.DB
	table contentTable
}

func newContentRepository[T any](db *sqlx.DB, table contentTable) *ContentRepository[T] {
	return &ContentRepository[T]{db: db, table: table}
}

// NewSummaryRepository stores event summaries.
func NewSummaryRepository(db *sqlx.DB) *ContentRepository[models.Summary] {
	return newContentRepository[models.Summary](db, summaryTable)
}

// NewThemeRepository stores event themes.
func NewThemeRepository(db *sqlx.DB) *ContentRepository[models.Theme] {
	return newContentRepository[models.Theme](db, themeTable)
}

// NewProgrammeRepository stores programme slots.
func NewProgrammeRepository(db *sqlx.DB) *ContentRepository[models.Programme] {
	return newContentRepository[models.Programme](db, programmeTable)
}

// NewResourceRepository stores downloadable resources.
func NewResourceRepository(db *sqlx.DB) *ContentRepository[models.Resource] {
	return newContentRepository[models.Resource](db, resourceTable)
}

// NewSponsorRepository stores sponsors.
func NewSponsorRepository(db *sqlx.DB) *ContentRepository[models.Sponsor] {
	return newContentRepository[models.Sponsor](db, sponsorTable)
}

// NewFAQRepository stores frequently asked questions.
func NewFAQRepository(db *sqlx.DB) *ContentRepository[models.FAQ] {
	return newContentRepository[models.FAQ](db, faqTable)
}

// NewMediaRepository stores media items.
func NewMediaRepository(db *sqlx.DB) *ContentRepository[models.Media] {
	return newContentRepository[models.Media](db, mediaTable)
}

// NewGalleryRepository stores gallery images.
func NewGalleryRepository(db *sqlx.DB) *ContentRepository[models.Gallery] {
	return newContentRepository[models.Gallery](db, galleryTable)
}

// NewAttendanceRepository stores attendee registrations.
func NewAttendanceRepository(db *sqlx.DB) *ContentRepository[models.Attendance] {
	return newContentRepository[models.Attendance](db, attendanceTable)
}

// ListByEventID returns the items of one event in display order.
func (r *ContentRepository[T]) ListByEventID(ctx context.Context, eventID string) ([]T, error) {
	items := []T{}
	query := fmt.Sprintf("SELECT %s FROM %s WHERE event_id = $1 ORDER BY %s", r.table.selectColumns(), r.table.name, r.table.orderBy)
	if err := r.db.SelectContext(ctx, &items, query, eventID); err != nil {
		return nil, fmt.Errorf("list %s: %w", r.table.name, err)
	}
	return items, nil
}

// FindByID fetches one item.
func (r *ContentRepository[T]) FindByID(ctx context.Context, id string) (*T, error) {
	var item T
	query := fmt.Sprintf("SELECT %s FROM %s WHERE id = $1", r.table.selectColumns(), r.table.name)
	if err := r.db.GetContext(ctx, &item, query, id); err != nil {
		return nil, err
	}
	return &item, nil
}

// Create inserts an item whose id, event and timestamps are already set.
func (r *ContentRepository[T]) Create(ctx context.Context, item *T) error {
	if _, err := r.db.NamedExecContext(ctx, r.table.insertQuery(), item); err != nil {
		return fmt.Errorf("create %s: %w", r.table.name, err)
	}
	return nil
}

// Update persists every mutable column of item.
func (r *ContentRepository[T]) Update(ctx context.Context, item *T) error {
	res, err := r.db.NamedExecContext(ctx, r.table.updateQuery(), item)
	if err != nil {
		return fmt.Errorf("update %s: %w", r.table.name, err)
	}
	return requireAffected(res)
}

// Delete removes one item.
func (r *ContentRepository[T]) Delete(ctx context.Context, id string) error {
	if err := deleteByID(ctx, r.db, r.table.name, id); err != nil {
		return fmt.Errorf("delete %s: %w", r.table.name, err)
	}
	return nil
}

// SpeakerRepository adds topic lookups to the speaker content store.
type SpeakerRepository struct {
	*ContentRepository[models.Speaker]
}

// NewSpeakerRepository stores speakers.
func NewSpeakerRepository(db *sqlx.DB) *SpeakerRepository {
	return &SpeakerRepository{ContentRepository: newContentRepository[models.Speaker](db, speakerTable)}
}

// ListByTopicIDs loads the speakers of several topics at once.
func (r *SpeakerRepository) ListByTopicIDs(ctx context.Context, topicIDs []string) ([]models.Speaker, error) {
	speakers := []models.Speaker{}
	if len(topicIDs) == 0 {
		return speakers, nil
	}
	query := fmt.Sprintf("SELECT %s FROM speakers WHERE topic_id = ANY($1) ORDER BY %s", speakerTable.selectColumns(), speakerTable.orderBy)
	if err := r.db.SelectContext(ctx, &speakers, query, pq.Array(topicIDs)); err != nil {
		return nil, fmt.Errorf("list topic speakers: %w", err)
	}
	return speakers, nil
}
