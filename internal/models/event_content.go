package models

import "time"

type Summary struct {
	ID        string    `db:"id" json:"id"`
	EventID   string    `db:"event_id" json:"event_id"`
	Summary   string    `db:"summary" json:"summary"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

type Theme struct {
	ID          string    `db:"id" json:"id"`
	EventID     string    `db:"event_id" json:"event_id"`
	Theme       string    `db:"theme" json:"theme"`
	Description *string   `db:"description" json:"description"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

type Programme struct {
	ID          string     `db:"id" json:"id"`
	EventID     string     `db:"event_id" json:"event_id"`
	Title       string     `db:"title" json:"title"`
	Description *string    `db:"description" json:"description"`
	StartTime   *time.Time `db:"start_time" json:"start_time"`
	EndTime     *time.Time `db:"end_time" json:"end_time"`
	Location    *string    `db:"location" json:"location"`
	Speaker     *string    `db:"speaker" json:"speaker"`
	Order       int        `db:"order" json:"order"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at" json:"updated_at"`
}

type Resource struct {
	ID          string    `db:"id" json:"id"`
	EventID     string    `db:"event_id" json:"event_id"`
	Title       string    `db:"title" json:"title"`
	Description *string   `db:"description" json:"description"`
	FilePath    *string   `db:"file_path" json:"file_path"`
	FileType    *string   `db:"file_type" json:"file_type"`
	URL         *string   `db:"url" json:"url"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

type Speaker struct {
	ID           string    `db:"id" json:"id"`
	EventID      string    `db:"event_id" json:"event_id"`
	TopicID      *string   `db:"topic_id" json:"topic_id"`
	Name         string    `db:"name" json:"name"`
	Title        *string   `db:"title" json:"title"`
	Organization *string   `db:"organization" json:"organization"`
	Bio          *string   `db:"bio" json:"bio"`
	Photo        *string   `db:"photo" json:"photo"`
	Email        *string   `db:"email" json:"email"`
	LinkedIn     *string   `db:"linkedin" json:"linkedin"`
	Twitter      *string   `db:"twitter" json:"twitter"`
	Order        int       `db:"order" json:"order"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

type Sponsor struct {
	ID          string    `db:"id" json:"id"`
	EventID     string    `db:"event_id" json:"event_id"`
	Name        string    `db:"name" json:"name"`
	Tier        *string   `db:"tier" json:"tier"`
	Logo        *string   `db:"logo" json:"logo"`
	Website     *string   `db:"website" json:"website"`
	Description *string   `db:"description" json:"description"`
	Order       int       `db:"order" json:"order"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

type FAQ struct {
	ID        string    `db:"id" json:"id"`
	EventID   string    `db:"event_id" json:"event_id"`
	Question  string    `db:"question" json:"question"`
	Answer    string    `db:"answer" json:"answer"`
	Order     int       `db:"order" json:"order"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

type Media struct {
	ID          string    `db:"id" json:"id"`
	EventID     string    `db:"event_id" json:"event_id"`
	Title       string    `db:"title" json:"title"`
	Type        *string   `db:"type" json:"type"`
	FilePath    string    `db:"file_path" json:"file_path"`
	Thumbnail   *string   `db:"thumbnail" json:"thumbnail"`
	Description *string   `db:"description" json:"description"`
	Order       int       `db:"order" json:"order"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

type Gallery struct {
	ID        string    `db:"id" json:"id"`
	EventID   string    `db:"event_id" json:"event_id"`
	Title     *string   `db:"title" json:"title"`
	ImagePath string    `db:"image_path" json:"image_path"`
	Caption   *string   `db:"caption" json:"caption"`
	Order     int       `db:"order" json:"order"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

type Attendance struct {
	ID               string     `db:"id" json:"id"`
	EventID          string     `db:"event_id" json:"event_id"`
	Name             string     `db:"name" json:"name"`
	Email            string     `db:"email" json:"email"`
	Phone            *string    `db:"phone" json:"phone"`
	Organization     *string    `db:"organization" json:"organization"`
	RegistrationType *string    `db:"registration_type" json:"registration_type"`
	CheckedIn        bool       `db:"checked_in" json:"checked_in"`
	CheckedInAt      *time.Time `db:"checked_in_at" json:"checked_in_at"`
	CreatedAt        time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time  `db:"updated_at" json:"updated_at"`
}

// Stamp and Touch let the content service manage identity and timestamps
// without knowing the concrete kind.

func (s *Summary) Stamp(id, eventID string, now time.Time) {
	s.ID, s.EventID, s.CreatedAt, s.UpdatedAt = id, eventID, now, now
}

func (s *Summary) Touch(now time.Time) { s.UpdatedAt = now }

func (t *Theme) Stamp(id, eventID string, now time.Time) {
	t.ID, t.EventID, t.CreatedAt, t.UpdatedAt = id, eventID, now, now
}

func (t *Theme) Touch(now time.Time) { t.UpdatedAt = now }

func (p *Programme) Stamp(id, eventID string, now time.Time) {
	p.ID, p.EventID, p.CreatedAt, p.UpdatedAt = id, eventID, now, now
}

func (p *Programme) Touch(now time.Time) { p.UpdatedAt = now }

func (r *Resource) Stamp(id, eventID string, now time.Time) {
	r.ID, r.EventID, r.CreatedAt, r.UpdatedAt = id, eventID, now, now
}

func (r *Resource) Touch(now time.Time) { r.UpdatedAt = now }

func (s *Speaker) Stamp(id, eventID string, now time.Time) {
	s.ID, s.EventID, s.CreatedAt, s.UpdatedAt = id, eventID, now, now
}

func (s *Speaker) Touch(now time.Time) { s.UpdatedAt = now }

func (s *Sponsor) Stamp(id, eventID string, now time.Time) {
	s.ID, s.EventID, s.CreatedAt, s.UpdatedAt = id, eventID, now, now
}

func (s *Sponsor) Touch(now time.Time) { s.UpdatedAt = now }

func (f *FAQ) Stamp(id, eventID string, now time.Time) {
	f.ID, f.EventID, f.CreatedAt, f.UpdatedAt = id, eventID, now, now
}

func (f *FAQ) Touch(now time.Time) { f.UpdatedAt = now }

func (m *Media) Stamp(id, eventID string, now time.Time) {
	m.ID, m.EventID, m.CreatedAt, m.UpdatedAt = id, eventID, now, now
}

func (m *Media) Touch(now time.Time) { m.UpdatedAt = now }

func (g *Gallery) Stamp(id, eventID string, now time.Time) {
	g.ID, g.EventID, g.CreatedAt, g.UpdatedAt = id, eventID, now, now
}

func (g *Gallery) Touch(now time.Time) { g.UpdatedAt = now }

func (a *Attendance) Stamp(id, eventID string, now time.Time) {
	a.ID, a.EventID, a.CreatedAt, a.UpdatedAt = id, eventID, now, now
}

func (a *Attendance) Touch(now time.Time) { a.UpdatedAt = now }
