package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/noah-isme/campus-events-api/internal/models"
	appErrors "github.com/noah-isme/campus-events-api/pkg/errors"
)

type fakeEvents struct {
	rows map[string]*models.Event
}

func newFakeEvents() *fakeEvents {
	return &fakeEvents{rows: map[string]*models.Event{}}
}

func (f *fakeEvents) add(year int, published bool) *models.Event {
	e := &models.Event{ID: uuid.NewString(), Year: year, Title: "Summit", IsPublished: published}
	f.rows[e.ID] = e
	return e
}

func (f *fakeEvents) List(ctx context.Context, filter models.EventFilter) ([]models.Event, error) {
	out := []models.Event{}
	for _, e := range f.rows {
		if !filter.PublishedOnly || e.IsPublished {
			out = append(out, *e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Year > out[j].Year })
	return out, nil
}

func (f *fakeEvents) FindByID(ctx context.Context, id string) (*models.Event, error) {
	e, ok := f.rows[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	cp := *e
	return &cp, nil
}

func (f *fakeEvents) FindByYear(ctx context.Context, year int, publishedOnly bool) (*models.Event, error) {
	for _, e := range f.rows {
		if e.Year == year && (!publishedOnly || e.IsPublished) {
			cp := *e
			return &cp, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (f *fakeEvents) ExistsByYear(ctx context.Context, year int, excludeID string) (bool, error) {
	for _, e := range f.rows {
		if e.Year == year && e.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeEvents) Exists(ctx context.Context, id string) (bool, error) {
	_, ok := f.rows[id]
	return ok, nil
}

func (f *fakeEvents) Create(ctx context.Context, e *models.Event) error {
	cp := *e
	f.rows[e.ID] = &cp
	return nil
}

func (f *fakeEvents) Update(ctx context.Context, e *models.Event) error {
	cp := *e
	f.rows[e.ID] = &cp
	return nil
}

func (f *fakeEvents) Delete(ctx context.Context, id string) error {
	delete(f.rows, id)
	return nil
}

// fakeContent stores one content kind in insertion order. The accessors
// reach the ID and event of a row since generic code cannot name fields.
type fakeContent[T any] struct {
	rows    map[string]*T
	order   []string
	idOf    func(*T) string
	eventOf func(*T) string
	listErr error
}

func newFakeContent[T any](idOf, eventOf func(*T) string) *fakeContent[T] {
	return &fakeContent[T]{rows: map[string]*T{}, idOf: idOf, eventOf: eventOf}
}

func (f *fakeContent[T]) ListByEventID(ctx context.Context, eventID string) ([]T, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []T
	for _, id := range f.order {
		if row, ok := f.rows[id]; ok && f.eventOf(row) == eventID {
			out = append(out, *row)
		}
	}
	return out, nil
}

func (f *fakeContent[T]) FindByID(ctx context.Context, id string) (*T, error) {
	row, ok := f.rows[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	cp := *row
	return &cp, nil
}

func (f *fakeContent[T]) Create(ctx context.Context, item *T) error {
	cp := *item
	id := f.idOf(item)
	f.rows[id] = &cp
	f.order = append(f.order, id)
	return nil
}

func (f *fakeContent[T]) Update(ctx context.Context, item *T) error {
	cp := *item
	f.rows[f.idOf(item)] = &cp
	return nil
}

func (f *fakeContent[T]) Delete(ctx context.Context, id string) error {
	delete(f.rows, id)
	return nil
}

func newSummaryStore() *fakeContent[models.Summary] {
	return newFakeContent(func(s *models.Summary) string { return s.ID }, func(s *models.Summary) string { return s.EventID })
}

func newProgrammeStore() *fakeContent[models.Programme] {
	return newFakeContent(func(p *models.Programme) string { return p.ID }, func(p *models.Programme) string { return p.EventID })
}

func newSpeakerStore() *fakeContent[models.Speaker] {
	return newFakeContent(func(s *models.Speaker) string { return s.ID }, func(s *models.Speaker) string { return s.EventID })
}

func newAttendanceStore() *fakeContent[models.Attendance] {
	return newFakeContent(func(a *models.Attendance) string { return a.ID }, func(a *models.Attendance) string { return a.EventID })
}

func newFAQStore() *fakeContent[models.FAQ] {
	return newFakeContent(func(q *models.FAQ) string { return q.ID }, func(q *models.FAQ) string { return q.EventID })
}

// ListByTopicIDs lets a speaker store back a TopicService.
func (f *fakeContent[T]) ListByTopicIDs(ctx context.Context, topicIDs []string) ([]models.Speaker, error) {
	out := []models.Speaker{}
	for _, id := range f.order {
		sp, ok := any(f.rows[id]).(*models.Speaker)
		if ok && sp != nil && sp.TopicID != nil {
			for _, topicID := range topicIDs {
				if *sp.TopicID == topicID {
					out = append(out, *sp)
				}
			}
		}
	}
	return out, nil
}

// emptyContents answers every content collection with no rows.
func emptyContents() EventContents {
	return EventContents{
		Summaries:   newSummaryStore(),
		Themes:      newFakeContent(func(t *models.Theme) string { return t.ID }, func(t *models.Theme) string { return t.EventID }),
		Programmes:  newProgrammeStore(),
		Resources:   newFakeContent(func(r *models.Resource) string { return r.ID }, func(r *models.Resource) string { return r.EventID }),
		Speakers:    newSpeakerStore(),
		Sponsors:    newFakeContent(func(s *models.Sponsor) string { return s.ID }, func(s *models.Sponsor) string { return s.EventID }),
		FAQs:        newFAQStore(),
		Media:       newFakeContent(func(m *models.Media) string { return m.ID }, func(m *models.Media) string { return m.EventID }),
		Galleries:   newFakeContent(func(g *models.Gallery) string { return g.ID }, func(g *models.Gallery) string { return g.EventID }),
		Attendances: newAttendanceStore(),
	}
}

type fakeTopics struct {
	rows map[string]*models.Topic
}

func newFakeTopics() *fakeTopics {
	return &fakeTopics{rows: map[string]*models.Topic{}}
}

func (f *fakeTopics) add(eventID, title, day string) *models.Topic {
	t := &models.Topic{ID: uuid.NewString(), EventID: eventID, Title: title, TopicDate: models.MustParseDate(day)}
	f.rows[t.ID] = t
	return t
}

func (f *fakeTopics) List(ctx context.Context, filter models.TopicFilter) ([]models.Topic, error) {
	out := []models.Topic{}
	for _, t := range f.rows {
		if filter.EventID == "" || t.EventID == filter.EventID {
			out = append(out, *t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TopicDate.Time.Before(out[j].TopicDate.Time) })
	return out, nil
}

func (f *fakeTopics) FindByID(ctx context.Context, id string) (*models.Topic, error) {
	t, ok := f.rows[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	cp := *t
	return &cp, nil
}

func (f *fakeTopics) BelongsToEvent(ctx context.Context, topicID, eventID string) (bool, error) {
	t, ok := f.rows[topicID]
	return ok && t.EventID == eventID, nil
}

func (f *fakeTopics) Create(ctx context.Context, t *models.Topic) error {
	cp := *t
	f.rows[t.ID] = &cp
	return nil
}

func (f *fakeTopics) Update(ctx context.Context, t *models.Topic) error {
	cp := *t
	f.rows[t.ID] = &cp
	return nil
}

func (f *fakeTopics) Delete(ctx context.Context, id string) error {
	delete(f.rows, id)
	return nil
}

// memoryCache is a JSON round-tripping CacheRepository.
type memoryCache struct {
	entries map[string][]byte
	gets    int
	deletes []string
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: map[string][]byte{}}
}

func (m *memoryCache) Get(ctx context.Context, key string, dest interface{}) error {
	m.gets++
	raw, ok := m.entries[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	return json.Unmarshal(raw, dest)
}

func (m *memoryCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.entries[key] = raw
	return nil
}

func (m *memoryCache) DeleteByPattern(ctx context.Context, pattern string) error {
	m.deletes = append(m.deletes, pattern)
	prefix := strings.TrimSuffix(pattern, "*")
	for key := range m.entries {
		if strings.HasPrefix(key, prefix) {
			delete(m.entries, key)
		}
	}
	return nil
}

func (m *memoryCache) service() *CacheService {
	return NewCacheService(m, nil, time.Minute, nil, true)
}
