package models

import "time"

// Enrollment statuses.
const (
	EnrollmentEnrolled  = "enrolled"
	EnrollmentDropped   = "dropped"
	EnrollmentCompleted = "completed"
	EnrollmentFailed    = "failed"
)

// Enrollment links a student to a course.
type Enrollment struct {
	ID             int64     `db:"id" json:"id"`
	StudentID      int64     `db:"student_id" json:"student_id"`
	CourseID       int64     `db:"course_id" json:"course_id"`
	EnrollmentDate Date      `db:"enrollment_date" json:"enrollment_date"`
	Status         string    `db:"status" json:"status"`
	FinalGrade     *float64  `db:"final_grade" json:"final_grade"`
	LetterGrade    *string   `db:"letter_grade" json:"letter_grade"`
	Notes          *string   `db:"notes" json:"notes"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}

// EnrollmentFilter captures list filters.
type EnrollmentFilter struct {
	StudentID *int64
	CourseID  *int64
	Status    string
}

// EnrollmentView carries the relations loaded alongside an enrollment.
type EnrollmentView struct {
	Enrollment
	Student *StudentView `json:"student,omitempty"`
	Course  *Course      `json:"course,omitempty"`
}

// EnrollmentDetail adds the enrollment's grades.
type EnrollmentDetail struct {
	EnrollmentView
	Grades []Grade `json:"grades"`
}
