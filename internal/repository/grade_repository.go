package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/campus-events-api/internal/models"
)

const gradeColumns = `id, enrollment_id, assignment_name, assignment_type, grade, max_grade, weight, grade_date,
	remarks, created_at, updated_at`

// GradeRepository manages persistence for grades.
type GradeRepository struct {
	db *sqlx.DB
}

// NewGradeRepository constructs a GradeRepository.
func NewGradeRepository(db *sqlx.DB) *GradeRepository {
	return &GradeRepository{db: db}
}

// List returns grades matching filter.
func (r *GradeRepository) List(ctx context.Context, filter models.GradeFilter) ([]models.Grade, error) {
	var cond conditions
	if filter.EnrollmentID != nil {
		cond.add("enrollment_id = $%d", *filter.EnrollmentID)
	}
	if filter.AssignmentType != "" {
		cond.add("assignment_type = $%d", filter.AssignmentType)
	}

	grades := []models.Grade{}
	query := `SELECT ` + gradeColumns + ` FROM grades` + cond.where() + ` ORDER BY id`
	if err := r.db.SelectContext(ctx, &grades, query, cond.args...); err != nil {
		return nil, fmt.Errorf("list grades: %w", err)
	}
	return grades, nil
}

// FindByID fetches a grade by id.
func (r *GradeRepository) FindByID(ctx context.Context, id int64) (*models.Grade, error) {
	var grade models.Grade
	if err := r.db.GetContext(ctx, &grade, `SELECT `+gradeColumns+` FROM grades WHERE id = $1`, id); err != nil {
		return nil, err
	}
	return &grade, nil
}

// Create inserts a new grade.
func (r *GradeRepository) Create(ctx context.Context, grade *models.Grade) error {
	now := time.Now().UTC()
	grade.CreatedAt = now
	grade.UpdatedAt = now
	const query = `INSERT INTO grades (enrollment_id, assignment_name, assignment_type, grade, max_grade, weight,
		grade_date, remarks, created_at, updated_at)
		VALUES (:enrollment_id, :assignment_name, :assignment_type, :grade, :max_grade, :weight,
		:grade_date, :remarks, :created_at, :updated_at) RETURNING id`
	id, err := insertReturningID(ctx, r.db, query, grade)
	if err != nil {
		return fmt.Errorf("create grade: %w", err)
	}
	grade.ID = id
	return nil
}

// Update persists the mutable columns of grade.
func (r *GradeRepository) Update(ctx context.Context, grade *models.Grade) error {
	grade.UpdatedAt = time.Now().UTC()
	const query = `UPDATE grades SET assignment_name = :assignment_name, assignment_type = :assignment_type,
		grade = :grade, max_grade = :max_grade, weight = :weight, grade_date = :grade_date, remarks = :remarks,
		updated_at = :updated_at WHERE id = :id`
	res, err := r.db.NamedExecContext(ctx, query, grade)
	if err != nil {
		return fmt.Errorf("update grade: %w", err)
	}
	return requireAffected(res)
}

// Delete removes a grade.
func (r *GradeRepository) Delete(ctx context.Context, id int64) error {
	if err := deleteByID(ctx, r.db, "grades", id); err != nil {
		return fmt.Errorf("delete grade: %w", err)
	}
	return nil
}
