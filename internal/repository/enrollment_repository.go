package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/noah-isme/campus-events-api/internal/models"
)

const enrollmentColumns = `id, student_id, course_id, enrollment_date, status, final_grade, letter_grade, notes,
	created_at, updated_at`

// EnrollmentRepository manages persistence for enrollments.
type EnrollmentRepository struct {
	db *sqlx.DB
}

// NewEnrollmentRepository constructs an EnrollmentRepository.
func NewEnrollmentRepository(db *sqlx.DB) *EnrollmentRepository {
	return &EnrollmentRepository{db: db}
}

// List returns enrollments matching filter.
func (r *EnrollmentRepository) List(ctx context.Context, filter models.EnrollmentFilter) ([]models.Enrollment, error) {
	var cond conditions
	if filter.StudentID != nil {
		cond.add("student_id = $%d", *filter.StudentID)
	}
	if filter.CourseID != nil {
		cond.add("course_id = $%d", *filter.CourseID)
	}
	if filter.Status != "" {
		cond.add("status = $%d", filter.Status)
	}

	enrollments := []models.Enrollment{}
	query := `SELECT ` + enrollmentColumns + ` FROM enrollments` + cond.where() + ` ORDER BY id`
	if err := r.db.SelectContext(ctx, &enrollments, query, cond.args...); err != nil {
		return nil, fmt.Errorf("list enrollments: %w", err)
	}
	return enrollments, nil
}

// FindByID fetches an enrollment by id.
func (r *EnrollmentRepository) FindByID(ctx context.Context, id int64) (*models.Enrollment, error) {
	var enrollment models.Enrollment
	if err := r.db.GetContext(ctx, &enrollment, `SELECT `+enrollmentColumns+` FROM enrollments WHERE id = $1`, id); err != nil {
		return nil, err
	}
	return &enrollment, nil
}

// FindByIDs batch-loads enrollments for eager loading.
func (r *EnrollmentRepository) FindByIDs(ctx context.Context, ids []int64) ([]models.Enrollment, error) {
	enrollments := []models.Enrollment{}
	if len(ids) == 0 {
		return enrollments, nil
	}
	query := `SELECT ` + enrollmentColumns + ` FROM enrollments WHERE id = ANY($1)`
	if err := r.db.SelectContext(ctx, &enrollments, query, pq.Array(ids)); err != nil {
		return nil, fmt.Errorf("find enrollments: %w", err)
	}
	return enrollments, nil
}

// Exists reports whether an enrollment with id exists.
func (r *EnrollmentRepository) Exists(ctx context.Context, id int64) (bool, error) {
	found, err := exists(ctx, r.db, `SELECT 1 FROM enrollments WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("check enrollment: %w", err)
	}
	return found, nil
}

// ExistsForPair reports whether the student is already enrolled in the course.
func (r *EnrollmentRepository) ExistsForPair(ctx context.Context, studentID, courseID int64) (bool, error) {
	found, err := exists(ctx, r.db, `SELECT 1 FROM enrollments WHERE student_id = $1 AND course_id = $2`, studentID, courseID)
	if err != nil {
		return false, fmt.Errorf("check enrollment pair: %w", err)
	}
	return found, nil
}

// Create inserts a new enrollment.
func (r *EnrollmentRepository) Create(ctx context.Context, enrollment *models.Enrollment) error {
	now := time.Now().UTC()
	enrollment.CreatedAt = now
	enrollment.UpdatedAt = now
	const query = `INSERT INTO enrollments (student_id, course_id, enrollment_date, status, final_grade, letter_grade,
		notes, created_at, updated_at)
		VALUES (:student_id, :course_id, :enrollment_date, :status, :final_grade, :letter_grade,
		:notes, :created_at, :updated_at) RETURNING id`
	id, err := insertReturningID(ctx, r.db, query, enrollment)
	if err != nil {
		return fmt.Errorf("create enrollment: %w", err)
	}
	enrollment.ID = id
	return nil
}

// Update persists the mutable columns of enrollment.
func (r *EnrollmentRepository) Update(ctx context.Context, enrollment *models.Enrollment) error {
	enrollment.UpdatedAt = time.Now().UTC()
	const query = `UPDATE enrollments SET enrollment_date = :enrollment_date, status = :status,
		final_grade = :final_grade, letter_grade = :letter_grade, notes = :notes, updated_at = :updated_at
		WHERE id = :id`
	res, err := r.db.NamedExecContext(ctx, query, enrollment)
	if err != nil {
		return fmt.Errorf("update enrollment: %w", err)
	}
	return requireAffected(res)
}

// Delete removes an enrollment and its grades.
func (r *EnrollmentRepository) Delete(ctx context.Context, id int64) error {
	if err := deleteByID(ctx, r.db, "enrollments", id); err != nil {
		return fmt.Errorf("delete enrollment: %w", err)
	}
	return nil
}
