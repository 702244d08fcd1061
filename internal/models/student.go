package models

import "time"

// Student is an enrolled learner attached to a user account.
type Student struct {
	ID                int64     `db:"id" json:"id"`
	UserID            int64     `db:"user_id" json:"user_id"`
	StudentID         string    `db:"student_id" json:"student_id"`
	DateOfBirth       Date      `db:"date_of_birth" json:"date_of_birth"`
	Gender            string    `db:"gender" json:"gender"`
	Phone             *string   `db:"phone" json:"phone"`
	Address           *string   `db:"address" json:"address"`
	GuardianName      string    `db:"guardian_name" json:"guardian_name"`
	GuardianPhone     string    `db:"guardian_phone" json:"guardian_phone"`
	GuardianEmail     *string   `db:"guardian_email" json:"guardian_email"`
	AdmissionDate     Date      `db:"admission_date" json:"admission_date"`
	EnrollmentStatus  string    `db:"enrollment_status" json:"enrollment_status"`
	BloodGroup        *string   `db:"blood_group" json:"blood_group"`
	MedicalConditions *string   `db:"medical_conditions" json:"medical_conditions"`
	CreatedAt         time.Time `db:"created_at" json:"created_at"`
	UpdatedAt         time.Time `db:"updated_at" json:"updated_at"`
}

// StudentFilter captures list filters.
type StudentFilter struct {
	EnrollmentStatus string
}

// StudentView is a student with its user account.
type StudentView struct {
	Student
	User *User `json:"user,omitempty"`
}

// StudentDetail adds enrollments, each with its course.
type StudentDetail struct {
	StudentView
	Enrollments []EnrollmentView `json:"enrollments"`
}

// EnrolledStudent is a student reached through a course roster.
type EnrolledStudent struct {
	Student
	Pivot Pivot `db:"pivot" json:"pivot"`
}
