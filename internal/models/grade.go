package models

import "time"

// Grade is one assessed assignment within an enrollment.
type Grade struct {
	ID             int64     `db:"id" json:"id"`
	EnrollmentID   int64     `db:"enrollment_id" json:"enrollment_id"`
	AssignmentName string    `db:"assignment_name" json:"assignment_name"`
	AssignmentType string    `db:"assignment_type" json:"assignment_type"`
	Grade          float64   `db:"grade" json:"grade"`
	MaxGrade       float64   `db:"max_grade" json:"max_grade"`
	Weight         float64   `db:"weight" json:"weight"`
	GradeDate      Date      `db:"grade_date" json:"grade_date"`
	Remarks        *string   `db:"remarks" json:"remarks"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}

// GradeFilter captures list filters.
type GradeFilter struct {
	EnrollmentID   *int64
	AssignmentType string
}

// GradeView is a grade with its enrollment.
type GradeView struct {
	Grade
	Enrollment *EnrollmentView `json:"enrollment,omitempty"`
}
