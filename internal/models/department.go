package models

import "time"

// Department groups teachers and courses.
type Department struct {
	ID          int64     `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Code        string    `db:"code" json:"code"`
	Description *string   `db:"description" json:"description"`
	Head        *string   `db:"head" json:"head"`
	Email       *string   `db:"email" json:"email"`
	Phone       *string   `db:"phone" json:"phone"`
	IsActive    bool      `db:"is_active" json:"is_active"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// DepartmentFilter captures list filters.
type DepartmentFilter struct {
	IsActive *bool
}

// DepartmentDetail is a department with its teachers and courses.
type DepartmentDetail struct {
	Department
	Teachers []Teacher `json:"teachers"`
	Courses  []Course  `json:"courses"`
}
