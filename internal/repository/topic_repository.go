package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/campus-events-api/internal/models"
)

const topicColumns = `id, event_id, title, topic_date, content, topic_picture, "order", created_at, updated_at`

// TopicRepository manages persistence for topics.
type TopicRepository struct {
	db *sqlx.DB
}

// NewTopicRepository constructs a TopicRepository.
func NewTopicRepository(db *sqlx.DB) *TopicRepository {
	return &TopicRepository{db: db}
}

// List returns topics ordered by date.
func (r *TopicRepository) List(ctx context.Context, filter models.TopicFilter) ([]models.Topic, error) {
	var cond conditions
	if filter.EventID != "" {
		cond.add("event_id = $%d", filter.EventID)
	}

	topics := []models.Topic{}
	query := `SELECT ` + topicColumns + ` FROM topics` + cond.where() + ` ORDER BY topic_date, "order", created_at`
	if err := r.db.SelectContext(ctx, &topics, query, cond.args...); err != nil {
		return nil, fmt.Errorf("list topics: %w", err)
	}
	return topics, nil
}

// FindByID fetches a topic by id.
func (r *TopicRepository) FindByID(ctx context.Context, id string) (*models.Topic, error) {
	var topic models.Topic
	if err := r.db.GetContext(ctx, &topic, `SELECT `+topicColumns+` FROM topics WHERE id = $1`, id); err != nil {
		return nil, err
	}
	return &topic, nil
}

// BelongsToEvent reports whether the topic exists and is owned by eventID.
func (r *TopicRepository) BelongsToEvent(ctx context.Context, topicID, eventID string) (bool, error) {
	found, err := exists(ctx, r.db, `SELECT 1 FROM topics WHERE id = $1 AND event_id = $2`, topicID, eventID)
	if err != nil {
		return false, fmt.Errorf("check topic: %w", err)
	}
	return found, nil
}

// Create inserts a topic whose id and timestamps are already set.
func (r *TopicRepository) Create(ctx context.Context, topic *models.Topic) error {
	const query = `INSERT INTO topics (id, event_id, title, topic_date, content, topic_picture, "order", created_at, updated_at)
		VALUES (:id, :event_id, :title, :topic_date, :content, :topic_picture, :order, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, topic); err != nil {
		return fmt.Errorf("create topic: %w", err)
	}
	return nil
}

// Update persists every column of topic.
func (r *TopicRepository) Update(ctx context.Context, topic *models.Topic) error {
	const query = `UPDATE topics SET event_id = :event_id, title = :title, topic_date = :topic_date,
		content = :content, topic_picture = :topic_picture, "order" = :order, updated_at = :updated_at
		WHERE id = :id`
	res, err := r.db.NamedExecContext(ctx, query, topic)
	if err != nil {
		return fmt.Errorf("update topic: %w", err)
	}
	return requireAffected(res)
}

// Delete removes a topic; its speakers are detached by the schema.
func (r *TopicRepository) Delete(ctx context.Context, id string) error {
	if err := deleteByID(ctx, r.db, "topics", id); err != nil {
		return fmt.Errorf("delete topic: %w", err)
	}
	return nil
}
