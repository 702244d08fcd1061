package models

import "time"

// Event is one yearly edition of the conference.
type Event struct {
	ID          string    `db:"id" json:"id"`
	Year        int       `db:"year" json:"year"`
	Title       string    `db:"title" json:"title"`
	Location    *string   `db:"location" json:"location"`
	StartDate   *Date     `db:"start_date" json:"start_date"`
	EndDate     *Date     `db:"end_date" json:"end_date"`
	IsPublished bool      `db:"is_published" json:"is_published"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// EventFilter captures list filters.
type EventFilter struct {
	PublishedOnly bool
}

// EventDetail is an event with every content collection loaded.
type EventDetail struct {
	Event
	Summaries   []Summary    `json:"summaries"`
	Themes      []Theme      `json:"themes"`
	Programmes  []Programme  `json:"programmes"`
	Resources   []Resource   `json:"resources"`
	Speakers    []Speaker    `json:"speakers"`
	Sponsors    []Sponsor    `json:"sponsors"`
	FAQs        []FAQ        `json:"faqs"`
	Media       []Media      `json:"media"`
	Galleries   []Gallery    `json:"galleries"`
	Attendances []Attendance `json:"attendances"`
}

// Topic is a dated session of an event that speakers can be attached to.
type Topic struct {
	ID           string    `db:"id" json:"id"`
	EventID      string    `db:"event_id" json:"event_id"`
	Title        string    `db:"title" json:"title"`
	TopicDate    Date      `db:"topic_date" json:"topic_date"`
	Content      *string   `db:"content" json:"content"`
	TopicPicture *string   `db:"topic_picture" json:"topic_picture"`
	Order        int       `db:"order" json:"order"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// TopicFilter captures list filters.
type TopicFilter struct {
	EventID string
}

// TopicView is a topic with its speakers and event.
type TopicView struct {
	Topic
	Speakers []Speaker `json:"speakers"`
	Event    *Event    `json:"event"`
}
