package models

import (
	"time"

	"github.com/jmoiron/sqlx/types"
)

// Course is a class offered by a department for one term.
type Course struct {
	ID           int64           `db:"id" json:"id"`
	Code         string          `db:"code" json:"code"`
	Name         string          `db:"name" json:"name"`
	Description  *string         `db:"description" json:"description"`
	Credits      int             `db:"credits" json:"credits"`
	DepartmentID int64           `db:"department_id" json:"department_id"`
	TeacherID    *int64          `db:"teacher_id" json:"teacher_id"`
	Semester     string          `db:"semester" json:"semester"`
	AcademicYear string          `db:"academic_year" json:"academic_year"`
	MaxStudents  int             `db:"max_students" json:"max_students"`
	Level        string          `db:"level" json:"level"`
	Room         *string         `db:"room" json:"room"`
	Schedule     *types.JSONText `db:"schedule" json:"schedule"`
	IsActive     bool            `db:"is_active" json:"is_active"`
	CreatedAt    time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time       `db:"updated_at" json:"updated_at"`
}

// CourseFilter captures list filters. Empty values are ignored.
type CourseFilter struct {
	DepartmentID *int64
	Semester     string
	AcademicYear string
}

// CourseView carries the relations loaded alongside a course.
type CourseView struct {
	Course
	Department *Department       `json:"department,omitempty"`
	Teacher    *Teacher          `json:"teacher,omitempty"`
	Students   []EnrolledStudent `json:"students,omitempty"`
}

// CourseDetail adds enrollments, each with its student.
type CourseDetail struct {
	CourseView
	Enrollments []EnrollmentView `json:"enrollments"`
}

// EnrolledCourse is a course reached through a student's enrollments.
type EnrolledCourse struct {
	Course
	Pivot Pivot `db:"pivot" json:"pivot"`
}

// Pivot exposes the enrollment row joining a student and a course.
type Pivot struct {
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
