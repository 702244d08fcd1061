package database

import (
	"errors"

	"github.com/lib/pq"

	appErrors "github.com/noah-isme/campus-events-api/pkg/errors"
)

const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
)

type constraintField struct {
	field   string
	message string
}

// constraints maps schema constraint names to the request field they guard.
var constraints = map[string]constraintField{
	"users_email_key":                {"email", "The email has already been taken."},
	"departments_name_key":           {"name", "The name has already been taken."},
	"departments_code_key":           {"code", "The code has already been taken."},
	"teachers_employee_id_key":       {"employee_id", "The employee id has already been taken."},
	"teachers_department_id_fkey":    {"department_id", "The selected department id is invalid."},
	"students_student_id_key":        {"student_id", "The student id has already been taken."},
	"courses_code_key":               {"code", "The code has already been taken."},
	"courses_department_id_fkey":     {"department_id", "The selected department id is invalid."},
	"courses_teacher_id_fkey":        {"teacher_id", "The selected teacher id is invalid."},
	"enrollments_student_course_key": {"student_id", "The student is already enrolled in this course."},
	"enrollments_student_id_fkey":    {"student_id", "The selected student id is invalid."},
	"enrollments_course_id_fkey":     {"course_id", "The selected course id is invalid."},
	"grades_enrollment_id_fkey":      {"enrollment_id", "The selected enrollment id is invalid."},
	"events_year_key":                {"year", "The year has already been taken."},
	"topics_event_id_fkey":           {"event_id", "The selected event id is invalid."},
	"speakers_topic_id_fkey":         {"topic_id", "The selected topic id is invalid."},
}

// ConstraintError converts unique and foreign-key violations on known
// constraints into a 422 field error. It returns nil for anything else.
func ConstraintError(err error) *appErrors.Error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return nil
	}
	if pqErr.Code != uniqueViolation && pqErr.Code != foreignKeyViolation {
		return nil
	}
	cf, ok := constraints[pqErr.Constraint]
	if !ok {
		return nil
	}
	e := appErrors.FieldError(cf.field, cf.message)
	e.Err = err
	return e
}

// IsUniqueViolation reports whether err is a unique_violation.
func IsUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}

// IsForeignKeyViolation reports whether err is a foreign_key_violation.
func IsForeignKeyViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == foreignKeyViolation
}
