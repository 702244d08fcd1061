package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/campus-events-api/internal/dto"
	"github.com/noah-isme/campus-events-api/internal/models"
)

type topicFixture struct {
	events   *fakeEvents
	topics   *fakeTopics
	speakers *fakeContent[models.Speaker]
	cache    *memoryCache
}

func newTopicFixture() (*TopicService, topicFixture) {
	fx := topicFixture{events: newFakeEvents(), topics: newFakeTopics(), speakers: newSpeakerStore(), cache: newMemoryCache()}
	svc := NewTopicService(fx.topics, fx.events, fx.speakers, fx.cache.service(), nil, nil)
	return svc, fx
}

func TestTopicServiceCreate(t *testing.T) {
	svc, fx := newTopicFixture()
	event := fx.events.add(2026, true)

	view, err := svc.Create(context.Background(), dto.CreateTopicRequest{
		EventID:   event.ID,
		Title:     "Distributed Systems",
		TopicDate: "2026-05-02",
		Content:   ptr(""),
	})
	require.NoError(t, err)
	assert.Equal(t, "2026-05-02", view.TopicDate.String())
	assert.Nil(t, view.Content)
	assert.Equal(t, 0, view.Order)
	assert.Equal(t, []models.Speaker{}, view.Speakers)
	require.NotNil(t, view.Event)
	assert.Equal(t, event.ID, view.Event.ID)
	assert.Equal(t, []string{"events:*"}, fx.cache.deletes)
}

func TestTopicServiceCreateRejectsUnknownEvent(t *testing.T) {
	svc, fx := newTopicFixture()

	appErr := requireFields(t, mustFail(svc.Create(context.Background(), dto.CreateTopicRequest{
		EventID:   uuid.NewString(),
		Title:     "Orphan",
		TopicDate: "2026-05-02",
	})), "event_id")
	assert.Equal(t, []string{"The selected event id is invalid."}, appErr.Fields["event_id"])

	_, err := svc.Create(context.Background(), dto.CreateTopicRequest{EventID: "42", Title: "Orphan", TopicDate: "tomorrow"})
	requireFields(t, err, "event_id", "topic_date")
	assert.Empty(t, fx.topics.rows)
	assert.Empty(t, fx.cache.deletes)
}

func TestTopicServiceListAttachesSpeakers(t *testing.T) {
	svc, fx := newTopicFixture()
	event := fx.events.add(2026, true)
	later := fx.topics.add(event.ID, "Closing", "2026-05-03")
	earlier := fx.topics.add(event.ID, "Opening", "2026-05-01")
	require.NoError(t, fx.speakers.Create(context.Background(), &models.Speaker{ID: "sp1", EventID: event.ID, TopicID: &earlier.ID, Name: "Barbara Liskov"}))
	require.NoError(t, fx.speakers.Create(context.Background(), &models.Speaker{ID: "sp2", EventID: event.ID, Name: "Unassigned"}))

	views, err := svc.List(context.Background(), models.TopicFilter{EventID: event.ID})
	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.Equal(t, earlier.ID, views[0].ID)
	require.Len(t, views[0].Speakers, 1)
	assert.Equal(t, "Barbara Liskov", views[0].Speakers[0].Name)
	assert.Equal(t, later.ID, views[1].ID)
	assert.Empty(t, views[1].Speakers)
	assert.Equal(t, event.ID, views[1].Event.ID)

	none, err := svc.List(context.Background(), models.TopicFilter{EventID: "abc"})
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestTopicServiceUpdateAndDelete(t *testing.T) {
	svc, fx := newTopicFixture()
	event := fx.events.add(2026, true)
	next := fx.events.add(2027, false)
	topic := fx.topics.add(event.ID, "Opening", "2026-05-01")

	_, err := svc.Update(context.Background(), topic.ID, dto.UpdateTopicRequest{EventID: ptr(uuid.NewString())})
	requireFields(t, err, "event_id")

	view, err := svc.Update(context.Background(), topic.ID, dto.UpdateTopicRequest{
		EventID: &next.ID,
		Order:   ptr(3),
		Content: dto.Some("Welcome"),
	})
	require.NoError(t, err)
	assert.Equal(t, next.ID, view.EventID)
	assert.Equal(t, 3, view.Order)
	assert.Equal(t, "Opening", view.Title)
	require.NotNil(t, view.Content)
	assert.Equal(t, 2027, view.Event.Year)

	require.NoError(t, svc.Delete(context.Background(), topic.ID))
	_, err = svc.Get(context.Background(), topic.ID)
	requireStatus(t, err, http.StatusNotFound)
	assert.Len(t, fx.cache.deletes, 2)
}
