package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/noah-isme/campus-events-api/internal/models"
)

const teacherColumns = `id, user_id, department_id, employee_id, phone, specialization, hire_date, employment_type,
	bio, office_location, is_active, created_at, updated_at`

// TeacherRepository manages persistence for teachers.
type TeacherRepository struct {
	db *sqlx.DB
}

// NewTeacherRepository constructs a TeacherRepository.
func NewTeacherRepository(db *sqlx.DB) *TeacherRepository {
	return &TeacherRepository{db: db}
}

// List returns teachers matching filter.
func (r *TeacherRepository) List(ctx context.Context, filter models.TeacherFilter) ([]models.Teacher, error) {
	var cond conditions
	if filter.DepartmentID != nil {
		cond.add("department_id = $%d", *filter.DepartmentID)
	}
	if filter.IsActive != nil {
		cond.add("is_active = $%d", *filter.IsActive)
	}

	teachers := []models.Teacher{}
	query := `SELECT ` + teacherColumns + ` FROM teachers` + cond.where() + ` ORDER BY id`
	if err := r.db.SelectContext(ctx, &teachers, query, cond.args...); err != nil {
		return nil, fmt.Errorf("list teachers: %w", err)
	}
	return teachers, nil
}

// FindByID fetches a teacher by id.
func (r *TeacherRepository) FindByID(ctx context.Context, id int64) (*models.Teacher, error) {
	var teacher models.Teacher
	if err := r.db.GetContext(ctx, &teacher, `SELECT `+teacherColumns+` FROM teachers WHERE id = $1`, id); err != nil {
		return nil, err
	}
	return &teacher, nil
}

// FindByIDs batch-loads teachers for eager loading.
func (r *TeacherRepository) FindByIDs(ctx context.Context, ids []int64) ([]models.Teacher, error) {
	teachers := []models.Teacher{}
	if len(ids) == 0 {
		return teachers, nil
	}
	if err := r.db.SelectContext(ctx, &teachers, `SELECT `+teacherColumns+` FROM teachers WHERE id = ANY($1)`, pq.Array(ids)); err != nil {
		return nil, fmt.Errorf("find teachers: %w", err)
	}
	return teachers, nil
}

// ListByDepartmentIDs loads the teachers of several departments at once.
func (r *TeacherRepository) ListByDepartmentIDs(ctx context.Context, departmentIDs []int64) ([]models.Teacher, error) {
	teachers := []models.Teacher{}
	if len(departmentIDs) == 0 {
		return teachers, nil
	}
	query := `SELECT ` + teacherColumns + ` FROM teachers WHERE department_id = ANY($1) ORDER BY id`
	if err := r.db.SelectContext(ctx, &teachers, query, pq.Array(departmentIDs)); err != nil {
		return nil, fmt.Errorf("list department teachers: %w", err)
	}
	return teachers, nil
}

// Exists reports whether a teacher with id exists.
func (r *TeacherRepository) Exists(ctx context.Context, id int64) (bool, error) {
	found, err := exists(ctx, r.db, `SELECT 1 FROM teachers WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("check teacher: %w", err)
	}
	return found, nil
}

// ExistsByEmployeeID checks whether another teacher uses employeeID.
func (r *TeacherRepository) ExistsByEmployeeID(ctx context.Context, employeeID string, excludeID int64) (bool, error) {
	found, err := existsExcluding(ctx, r.db, "teachers", "employee_id", employeeID, excludeID)
	if err != nil {
		return false, fmt.Errorf("check teacher employee id: %w", err)
	}
	return found, nil
}

// CreateWithUser inserts the user account and the teacher in one transaction.
func (r *TeacherRepository) CreateWithUser(ctx context.Context, user *models.User, teacher *models.Teacher) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin create teacher: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if err := insertUser(ctx, tx, user); err != nil {
		return err
	}

	teacher.UserID = user.ID
	teacher.CreatedAt = user.CreatedAt
	teacher.UpdatedAt = user.UpdatedAt
	const query = `INSERT INTO teachers (user_id, department_id, employee_id, phone, specialization, hire_date,
		employment_type, bio, office_location, is_active, created_at, updated_at)
		VALUES (:user_id, :department_id, :employee_id, :phone, :specialization, :hire_date,
		:employment_type, :bio, :office_location, :is_active, :created_at, :updated_at) RETURNING id`
	id, err := insertReturningID(ctx, tx, query, teacher)
	if err != nil {
		return fmt.Errorf("create teacher: %w", err)
	}
	teacher.ID = id

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit create teacher: %w", err)
	}
	return nil
}

// Update persists every column of teacher.
func (r *TeacherRepository) Update(ctx context.Context, teacher *models.Teacher) error {
	teacher.UpdatedAt = time.Now().UTC()
	const query = `UPDATE teachers SET department_id = :department_id, employee_id = :employee_id, phone = :phone,
		specialization = :specialization, hire_date = :hire_date, employment_type = :employment_type, bio = :bio,
		office_location = :office_location, is_active = :is_active, updated_at = :updated_at WHERE id = :id`
	res, err := r.db.NamedExecContext(ctx, query, teacher)
	if err != nil {
		return fmt.Errorf("update teacher: %w", err)
	}
	return requireAffected(res)
}

// Delete removes a teacher; their courses keep existing with no teacher.
func (r *TeacherRepository) Delete(ctx context.Context, id int64) error {
	if err := deleteByID(ctx, r.db, "teachers", id); err != nil {
		return fmt.Errorf("delete teacher: %w", err)
	}
	return nil
}
