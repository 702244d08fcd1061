package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/campus-events-api/internal/dto"
	"github.com/noah-isme/campus-events-api/internal/models"
	appErrors "github.com/noah-isme/campus-events-api/pkg/errors"
)

type topicRepository interface {
	List(ctx context.Context, filter models.TopicFilter) ([]models.Topic, error)
	FindByID(ctx context.Context, id string) (*models.Topic, error)
	Create(ctx context.Context, topic *models.Topic) error
	Update(ctx context.Context, topic *models.Topic) error
	Delete(ctx context.Context, id string) error
}

type eventLookup interface {
	FindByID(ctx context.Context, id string) (*models.Event, error)
	Exists(ctx context.Context, id string) (bool, error)
}

type topicSpeakerLister interface {
	ListByTopicIDs(ctx context.Context, topicIDs []string) ([]models.Speaker, error)
}

// TopicService manages event topics and the speakers attached to them.
type TopicService struct {
	repo      topicRepository
	events    eventLookup
	speakers  topicSpeakerLister
	cache     *CacheService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewTopicService constructs a TopicService.
func NewTopicService(repo topicRepository, events eventLookup, speakers topicSpeakerLister, cache *CacheService, validate *validator.Validate, logger *zap.Logger) *TopicService {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TopicService{repo: repo, events: events, speakers: speakers, cache: cache, validator: validate, logger: logger}
}

// List returns topics ordered by date, each with speakers and event.
func (s *TopicService) List(ctx context.Context, filter models.TopicFilter) ([]models.TopicView, error) {
	if filter.EventID != "" && !isUUID(filter.EventID) {
		return []models.TopicView{}, nil
	}
	topics, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, internalError(err, "failed to list topics")
	}
	return s.views(ctx, topics)
}

// Get returns one topic with speakers and event.
func (s *TopicService) Get(ctx context.Context, id string) (*models.TopicView, error) {
	topic, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.view(ctx, *topic)
}

// Create stores a topic under an existing event.
func (s *TopicService) Create(ctx context.Context, req dto.CreateTopicRequest) (*models.TopicView, error) {
	fields, err := validateStruct(s.validator, req)
	if err != nil {
		return nil, err
	}
	if err := fields.exists("event_id", s.eventProbe(ctx, req.EventID)); err != nil {
		return nil, err
	}
	if err := fields.err(); err != nil {
		return nil, err
	}

	now := utcNow()
	topic := &models.Topic{
		ID:           uuid.NewString(),
		EventID:      strings.TrimSpace(req.EventID),
		Title:        strings.TrimSpace(req.Title),
		TopicDate:    parseDay(req.TopicDate),
		Content:      nullableString(req.Content),
		TopicPicture: nullableString(req.TopicPicture),
		Order:        intOr(req.Order, 0),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.Create(ctx, topic); err != nil {
		return nil, writeError(s.logger, err, "failed to create topic")
	}
	s.cache.PurgeEvents(ctx)
	return s.view(ctx, *topic)
}

// Update applies a partial update; a new event_id must exist.
func (s *TopicService) Update(ctx context.Context, id string, req dto.UpdateTopicRequest) (*models.TopicView, error) {
	topic, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	fields, err := validateStruct(s.validator, req)
	if err != nil {
		return nil, err
	}
	if req.EventID != nil {
		if err := fields.exists("event_id", s.eventProbe(ctx, *req.EventID)); err != nil {
			return nil, err
		}
	}
	if err := fields.err(); err != nil {
		return nil, err
	}

	topic.EventID = stringOr(req.EventID, topic.EventID)
	topic.Title = stringOr(req.Title, topic.Title)
	if req.TopicDate != nil {
		topic.TopicDate = parseDay(*req.TopicDate)
	}
	applyString(req.Content, &topic.Content)
	applyString(req.TopicPicture, &topic.TopicPicture)
	topic.Order = intOr(req.Order, topic.Order)
	topic.UpdatedAt = utcNow()

	if err := s.repo.Update(ctx, topic); err != nil {
		return nil, writeError(s.logger, err, "failed to update topic")
	}
	s.cache.PurgeEvents(ctx)
	return s.view(ctx, *topic)
}

// Delete removes a topic. Its speakers stay with the event and lose the link.
func (s *TopicService) Delete(ctx context.Context, id string) error {
	if _, err := s.find(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return writeError(s.logger, err, "failed to delete topic")
	}
	s.cache.PurgeEvents(ctx)
	return nil
}

func (s *TopicService) eventProbe(ctx context.Context, eventID string) func() (bool, error) {
	return func() (bool, error) {
		eventID = strings.TrimSpace(eventID)
		if !isUUID(eventID) {
			return false, nil
		}
		return s.events.Exists(ctx, eventID)
	}
}

func (s *TopicService) find(ctx context.Context, id string) (*models.Topic, error) {
	if !isUUID(id) {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "Topic not found")
	}
	topic, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "Topic")
	}
	return topic, nil
}

func (s *TopicService) view(ctx context.Context, topic models.Topic) (*models.TopicView, error) {
	views, err := s.views(ctx, []models.Topic{topic})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

func (s *TopicService) views(ctx context.Context, topics []models.Topic) ([]models.TopicView, error) {
	out := make([]models.TopicView, len(topics))
	if len(topics) == 0 {
		return out, nil
	}

	ids := make([]string, len(topics))
	for i, t := range topics {
		ids[i] = t.ID
	}
	speakers, err := s.speakers.ListByTopicIDs(ctx, ids)
	if err != nil {
		return nil, internalError(err, "failed to load speakers")
	}
	byTopic := make(map[string][]models.Speaker, len(topics))
	for _, sp := range speakers {
		if sp.TopicID != nil {
			byTopic[*sp.TopicID] = append(byTopic[*sp.TopicID], sp)
		}
	}

	events := make(map[string]*models.Event)
	for i, t := range topics {
		event, ok := events[t.EventID]
		if !ok {
			event, err = s.events.FindByID(ctx, t.EventID)
			if err != nil && !errors.Is(err, sql.ErrNoRows) {
				return nil, internalError(err, "failed to load event")
			}
			events[t.EventID] = event
		}
		list := byTopic[t.ID]
		if list == nil {
			list = []models.Speaker{}
		}
		out[i] = models.TopicView{Topic: t, Speakers: list, Event: event}
	}
	return out, nil
}
