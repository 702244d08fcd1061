package dto

// CreateEventRequest is the payload for POST /events.
type CreateEventRequest struct {
	Year        *int    `json:"year" validate:"required"`
	Title       string  `json:"title" validate:"required,max=255"`
	Location    *string `json:"location" validate:"omitnil,max=255"`
	StartDate   *string `json:"start_date" validate:"omitnil,timestamp"`
	EndDate     *string `json:"end_date" validate:"omitnil,timestamp"`
	IsPublished *bool   `json:"is_published"`
}

// UpdateEventRequest is a partial event update. Nullable columns use
// Optional so that null clears them.
type UpdateEventRequest struct {
	Year        *int             `json:"year"`
	Title       *string          `json:"title" validate:"omitnil,filled,max=255"`
	Location    Optional[string] `json:"location" validate:"omitempty,max=255"`
	StartDate   Optional[string] `json:"start_date" validate:"omitempty,timestamp"`
	EndDate     Optional[string] `json:"end_date" validate:"omitempty,timestamp"`
	IsPublished *bool            `json:"is_published"`
}

// CreateTopicRequest is the payload for POST /topics.
type CreateTopicRequest struct {
	EventID      string  `json:"event_id" validate:"required"`
	Title        string  `json:"title" validate:"required,max=255"`
	TopicDate    string  `json:"topic_date" validate:"required,timestamp"`
	Content      *string `json:"content"`
	TopicPicture *string `json:"topic_picture"`
	Order        *int    `json:"order"`
}

// UpdateTopicRequest is a partial topic update.
type UpdateTopicRequest struct {
	EventID      *string          `json:"event_id" validate:"omitnil,filled"`
	Title        *string          `json:"title" validate:"omitnil,filled,max=255"`
	TopicDate    *string          `json:"topic_date" validate:"omitnil,timestamp"`
	Content      Optional[string] `json:"content"`
	TopicPicture Optional[string] `json:"topic_picture"`
	Order        *int             `json:"order"`
}
