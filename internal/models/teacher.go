package models

import "time"

// Employment types accepted for teachers.
const (
	EmploymentFullTime = "full-time"
	EmploymentPartTime = "part-time"
	EmploymentContract = "contract"
)

// Teacher is a staff member attached to a department and a user account.
type Teacher struct {
	ID             int64     `db:"id" json:"id"`
	UserID         int64     `db:"user_id" json:"user_id"`
	DepartmentID   int64     `db:"department_id" json:"department_id"`
	EmployeeID     string    `db:"employee_id" json:"employee_id"`
	Phone          *string   `db:"phone" json:"phone"`
	Specialization *string   `db:"specialization" json:"specialization"`
	HireDate       Date      `db:"hire_date" json:"hire_date"`
	EmploymentType string    `db:"employment_type" json:"employment_type"`
	Bio            *string   `db:"bio" json:"bio"`
	OfficeLocation *string   `db:"office_location" json:"office_location"`
	IsActive       bool      `db:"is_active" json:"is_active"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}

// TeacherFilter captures list filters.
type TeacherFilter struct {
	DepartmentID *int64
	IsActive     *bool
}

// TeacherView carries the relations loaded alongside a teacher.
type TeacherView struct {
	Teacher
	User       *User       `json:"user,omitempty"`
	Department *Department `json:"department,omitempty"`
}

// TeacherDetail adds the courses a teacher is assigned to.
type TeacherDetail struct {
	TeacherView
	Courses []Course `json:"courses"`
}
