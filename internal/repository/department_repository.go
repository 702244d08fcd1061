package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/noah-isme/campus-events-api/internal/models"
)

const departmentColumns = `id, name, code, description, head, email, phone, is_active, created_at, updated_at`

// DepartmentRepository manages persistence for departments.
type DepartmentRepository struct {
	db *sqlx.DB
}

// NewDepartmentRepository constructs a DepartmentRepository.
func NewDepartmentRepository(db *sqlx.DB) *DepartmentRepository {
	return &DepartmentRepository{db: db}
}

// List returns departments matching filter, oldest first.
func (r *DepartmentRepository) List(ctx context.Context, filter models.DepartmentFilter) ([]models.Department, error) {
	var cond conditions
	if filter.IsActive != nil {
		cond.add("is_active = $%d", *filter.IsActive)
	}

	departments := []models.Department{}
	query := `SELECT ` + departmentColumns + ` FROM departments` + cond.where() + ` ORDER BY id`
	if err := r.db.SelectContext(ctx, &departments, query, cond.args...); err != nil {
		return nil, fmt.Errorf("list departments: %w", err)
	}
	return departments, nil
}

// FindByID fetches a department by id.
func (r *DepartmentRepository) FindByID(ctx context.Context, id int64) (*models.Department, error) {
	var department models.Department
	if err := r.db.GetContext(ctx, &department, `SELECT `+departmentColumns+` FROM departments WHERE id = $1`, id); err != nil {
		return nil, err
	}
	return &department, nil
}

// FindByIDs batch-loads departments for eager loading.
func (r *DepartmentRepository) FindByIDs(ctx context.Context, ids []int64) ([]models.Department, error) {
	departments := []models.Department{}
	if len(ids) == 0 {
		return departments, nil
	}
	if err := r.db.SelectContext(ctx, &departments, `SELECT `+departmentColumns+` FROM departments WHERE id = ANY($1)`, pq.Array(ids)); err != nil {
		return nil, fmt.Errorf("find departments: %w", err)
	}
	return departments, nil
}

// Exists reports whether a department with id exists.
func (r *DepartmentRepository) Exists(ctx context.Context, id int64) (bool, error) {
	found, err := exists(ctx, r.db, `SELECT 1 FROM departments WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("check department: %w", err)
	}
	return found, nil
}

// ExistsByName checks whether another department uses name.
func (r *DepartmentRepository) ExistsByName(ctx context.Context, name string, excludeID int64) (bool, error) {
	found, err := existsExcluding(ctx, r.db, "departments", "name", name, excludeID)
	if err != nil {
		return false, fmt.Errorf("check department name: %w", err)
	}
	return found, nil
}

// ExistsByCode checks whether another department uses code.
func (r *DepartmentRepository) ExistsByCode(ctx context.Context, code string, excludeID int64) (bool, error) {
	found, err := existsExcluding(ctx, r.db, "departments", "code", code, excludeID)
	if err != nil {
		return false, fmt.Errorf("check department code: %w", err)
	}
	return found, nil
}

// Create inserts a new department.
func (r *DepartmentRepository) Create(ctx context.Context, department *models.Department) error {
	now := time.Now().UTC()
	department.CreatedAt = now
	department.UpdatedAt = now

	const query = `INSERT INTO departments (name, code, description, head, email, phone, is_active, created_at, updated_at)
		VALUES (:name, :code, :description, :head, :email, :phone, :is_active, :created_at, :updated_at) RETURNING id`
	id, err := insertReturningID(ctx, r.db, query, department)
	if err != nil {
		return fmt.Errorf("create department: %w", err)
	}
	department.ID = id
	return nil
}

// Update persists every column of department.
func (r *DepartmentRepository) Update(ctx context.Context, department *models.Department) error {
	department.UpdatedAt = time.Now().UTC()
	const query = `UPDATE departments SET name = :name, code = :code, description = :description, head = :head,
		email = :email, phone = :phone, is_active = :is_active, updated_at = :updated_at WHERE id = :id`
	res, err := r.db.NamedExecContext(ctx, query, department)
	if err != nil {
		return fmt.Errorf("update department: %w", err)
	}
	return requireAffected(res)
}

// Delete removes a department; teachers and courses cascade in the schema.
func (r *DepartmentRepository) Delete(ctx context.Context, id int64) error {
	if err := deleteByID(ctx, r.db, "departments", id); err != nil {
		return fmt.Errorf("delete department: %w", err)
	}
	return nil
}
