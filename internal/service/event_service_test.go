package service

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/campus-events-api/internal/dto"
	"github.com/noah-isme/campus-events-api/internal/models"
	appErrors "github.com/noah-isme/campus-events-api/pkg/errors"
)

func newEventFixture(cache *CacheService) (*EventService, *fakeEvents, EventContents) {
	events := newFakeEvents()
	contents := emptyContents()
	svc := NewEventService(events, contents, cache, nil, nil)
	svc.now = func() time.Time { return time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC) }
	return svc, events, contents
}

func TestEventServiceCreate(t *testing.T) {
	svc, events, _ := newEventFixture(nil)

	event, err := svc.Create(context.Background(), dto.CreateEventRequest{
		Year:      ptr(2026),
		Title:     " Campus Summit ",
		StartDate: ptr("2026-05-01"),
		EndDate:   ptr("2026-05-03"),
	})
	require.NoError(t, err)
	_, err = uuid.Parse(event.ID)
	require.NoError(t, err)
	assert.Equal(t, "Campus Summit", event.Title)
	assert.False(t, event.IsPublished)
	require.NotNil(t, event.EndDate)
	assert.Equal(t, "2026-05-03", event.EndDate.String())
	assert.Contains(t, events.rows, event.ID)
}

func TestEventServiceCreateRules(t *testing.T) {
	svc, events, _ := newEventFixture(nil)
	events.add(2025, true)

	appErr := requireFields(t, mustFail(svc.Create(context.Background(), dto.CreateEventRequest{
		Year:      ptr(2025),
		Title:     "Again",
		StartDate: ptr("2025-05-02"),
		EndDate:   ptr("2025-05-01"),
	})), "year", "end_date")
	assert.Equal(t, []string{"The year has already been taken."}, appErr.Fields["year"])
	assert.Equal(t, []string{"The end date field must be a date after or equal to start date."}, appErr.Fields["end_date"])

	_, err := svc.Create(context.Background(), dto.CreateEventRequest{StartDate: ptr("soon")})
	requireFields(t, err, "year", "title", "start_date")
	assert.Len(t, events.rows, 1)
}

func TestEventServiceUpdate(t *testing.T) {
	svc, events, _ := newEventFixture(nil)
	event := events.add(2026, false)
	start, end := models.MustParseDate("2026-05-01"), models.MustParseDate("2026-05-03")
	event.StartDate, event.EndDate = &start, &end
	events.add(2027, false)

	_, err := svc.Update(context.Background(), event.ID, dto.UpdateEventRequest{EndDate: dto.Some("2026-04-30")})
	requireFields(t, err, "end_date")

	_, err = svc.Update(context.Background(), event.ID, dto.UpdateEventRequest{Year: ptr(2027)})
	requireFields(t, err, "year")

	updated, err := svc.Update(context.Background(), event.ID, dto.UpdateEventRequest{
		Year:        ptr(2026),
		IsPublished: ptr(true),
		StartDate:   dto.Null[string](),
		Location:    dto.Some("Main Hall"),
	})
	require.NoError(t, err)
	assert.True(t, updated.IsPublished)
	assert.Nil(t, updated.StartDate)
	require.NotNil(t, updated.EndDate)
	require.NotNil(t, updated.Location)
	assert.Equal(t, "Main Hall", *updated.Location)

	_, err = svc.Update(context.Background(), "not-a-uuid", dto.UpdateEventRequest{})
	requireStatus(t, err, http.StatusNotFound)
}

func TestEventServiceReadsByYearAndCurrent(t *testing.T) {
	svc, events, _ := newEventFixture(nil)
	draft := events.add(2026, false)

	_, err := svc.Current(context.Background())
	requireStatus(t, err, http.StatusNotFound)
	assert.Equal(t, "No current event found", appErrors.FromError(err).Message)

	byYear, err := svc.ByYear(context.Background(), 2026)
	require.NoError(t, err)
	assert.Equal(t, draft.ID, byYear.ID)

	_, err = svc.ByYear(context.Background(), 1999)
	requireStatus(t, err, http.StatusNotFound)
	assert.Equal(t, "Event not found for year 1999", appErrors.FromError(err).Message)

	draft.IsPublished = true
	current, err := svc.Current(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2026, current.Year)
}

func TestEventServiceGetLoadsEveryCollection(t *testing.T) {
	svc, events, contents := newEventFixture(nil)
	event := events.add(2026, true)
	other := events.add(2025, true)
	summaries := contents.Summaries.(*fakeContent[models.Summary])
	require.NoError(t, summaries.Create(context.Background(), &models.Summary{ID: "s1", EventID: event.ID, Summary: "Three days"}))
	require.NoError(t, summaries.Create(context.Background(), &models.Summary{ID: "s2", EventID: other.ID, Summary: "Elsewhere"}))

	detail, err := svc.Get(context.Background(), event.ID)
	require.NoError(t, err)
	require.Len(t, detail.Summaries, 1)
	assert.Equal(t, "Three days", detail.Summaries[0].Summary)
	assert.NotNil(t, detail.Themes)
	assert.NotNil(t, detail.Speakers)
	assert.NotNil(t, detail.Attendances)
	assert.Empty(t, detail.Galleries)

	_, err = svc.Get(context.Background(), uuid.NewString())
	requireStatus(t, err, http.StatusNotFound)
	assert.Equal(t, "Event not found", appErrors.FromError(err).Message)
}

func TestEventServiceContentFailureIsInternal(t *testing.T) {
	svc, events, contents := newEventFixture(nil)
	event := events.add(2026, true)
	contents.FAQs.(*fakeContent[models.FAQ]).listErr = errors.New("connection reset")

	_, err := svc.Get(context.Background(), event.ID)
	requireStatus(t, err, http.StatusInternalServerError)
}

func TestEventServiceCachesReadsUntilWrite(t *testing.T) {
	store := newMemoryCache()
	svc, events, _ := newEventFixture(store.service())
	event := events.add(2026, true)

	first, err := svc.Get(context.Background(), event.ID)
	require.NoError(t, err)
	assert.Contains(t, store.entries, "events:id:"+event.ID)

	// A change behind the service's back stays invisible while cached.
	events.rows[event.ID].Title = "Renamed directly"
	second, err := svc.Get(context.Background(), event.ID)
	require.NoError(t, err)
	assert.Equal(t, first.Title, second.Title)

	_, err = svc.Current(context.Background())
	require.NoError(t, err)
	assert.Contains(t, store.entries, "events:current:2026")

	_, err = svc.Update(context.Background(), event.ID, dto.UpdateEventRequest{Title: ptr("Summit 2026")})
	require.NoError(t, err)
	assert.Empty(t, store.entries)
	assert.Equal(t, []string{"events:*"}, store.deletes)

	third, err := svc.Get(context.Background(), event.ID)
	require.NoError(t, err)
	assert.Equal(t, "Summit 2026", third.Title)
}

func TestEventServiceListAndDelete(t *testing.T) {
	store := newMemoryCache()
	svc, events, _ := newEventFixture(store.service())
	events.add(2024, true)
	draft := events.add(2026, false)

	list, err := svc.List(context.Background(), models.EventFilter{PublishedOnly: true})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, 2024, list[0].Year)

	require.NoError(t, svc.Delete(context.Background(), draft.ID))
	assert.NotContains(t, events.rows, draft.ID)
	assert.Equal(t, []string{"events:*"}, store.deletes)
	requireStatus(t, svc.Delete(context.Background(), draft.ID), http.StatusNotFound)
}
