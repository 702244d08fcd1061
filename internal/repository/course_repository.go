package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/noah-isme/campus-events-api/internal/models"
)

const courseColumns = `id, code, name, description, credits, department_id, teacher_id, semester, academic_year,
	max_students, level, room, schedule, is_active, created_at, updated_at`

// CourseRepository manages persistence for courses.
type CourseRepository struct {
	db *sqlx.DB
}

// NewCourseRepository constructs a CourseRepository.
func NewCourseRepository(db *sqlx.DB) *CourseRepository {
	return &CourseRepository{db: db}
}

// List returns courses matching every non-empty filter.
func (r *CourseRepository) List(ctx context.Context, filter models.CourseFilter) ([]models.Course, error) {
	var cond conditions
	if filter.DepartmentID != nil {
		cond.add("department_id = $%d", *filter.DepartmentID)
	}
	if filter.Semester != "" {
		cond.add("semester = $%d", filter.Semester)
	}
	if filter.AcademicYear != "" {
		cond.add("academic_year = $%d", filter.AcademicYear)
	}

	courses := []models.Course{}
	query := `SELECT ` + courseColumns + ` FROM courses` + cond.where() + ` ORDER BY id`
	if err := r.db.SelectContext(ctx, &courses, query, cond.args...); err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	return courses, nil
}

// FindByID fetches a course by id.
func (r *CourseRepository) FindByID(ctx context.Context, id int64) (*models.Course, error) {
	var course models.Course
	if err := r.db.GetContext(ctx, &course, `SELECT `+courseColumns+` FROM courses WHERE id = $1`, id); err != nil {
		return nil, err
	}
	return &course, nil
}

// FindByIDs batch-loads courses for eager loading.
func (r *CourseRepository) FindByIDs(ctx context.Context, ids []int64) ([]models.Course, error) {
	courses := []models.Course{}
	if len(ids) == 0 {
		return courses, nil
	}
	if err := r.db.SelectContext(ctx, &courses, `SELECT `+courseColumns+` FROM courses WHERE id = ANY($1)`, pq.Array(ids)); err != nil {
		return nil, fmt.Errorf("find courses: %w", err)
	}
	return courses, nil
}

// ListByDepartmentIDs loads the courses of several departments at once.
func (r *CourseRepository) ListByDepartmentIDs(ctx context.Context, departmentIDs []int64) ([]models.Course, error) {
	courses := []models.Course{}
	if len(departmentIDs) == 0 {
		return courses, nil
	}
	query := `SELECT ` + courseColumns + ` FROM courses WHERE department_id = ANY($1) ORDER BY id`
	if err := r.db.SelectContext(ctx, &courses, query, pq.Array(departmentIDs)); err != nil {
		return nil, fmt.Errorf("list department courses: %w", err)
	}
	return courses, nil
}

// ListByTeacherID returns the courses taught by one teacher.
func (r *CourseRepository) ListByTeacherID(ctx context.Context, teacherID int64) ([]models.Course, error) {
	courses := []models.Course{}
	query := `SELECT ` + courseColumns + ` FROM courses WHERE teacher_id = $1 ORDER BY id`
	if err := r.db.SelectContext(ctx, &courses, query, teacherID); err != nil {
		return nil, fmt.Errorf("list teacher courses: %w", err)
	}
	return courses, nil
}

// ListEnrolledByStudentID returns the courses a student is enrolled in with
// the enrollment row attached as pivot.
func (r *CourseRepository) ListEnrolledByStudentID(ctx context.Context, studentID int64) ([]models.EnrolledCourse, error) {
	courses := []models.EnrolledCourse{}
	query := `SELECT c.id, c.code, c.name, c.description, c.credits, c.department_id, c.teacher_id, c.semester,
		c.academic_year, c.max_students, c.level, c.room, c.schedule, c.is_active, c.created_at, c.updated_at,
		` + pivotColumns + `
		FROM courses c JOIN enrollments e ON e.course_id = c.id
		WHERE e.student_id = $1 ORDER BY c.id`
	if err := r.db.SelectContext(ctx, &courses, query, studentID); err != nil {
		return nil, fmt.Errorf("list student courses: %w", err)
	}
	return courses, nil
}

// Exists reports whether a course with id exists.
func (r *CourseRepository) Exists(ctx context.Context, id int64) (bool, error) {
	found, err := exists(ctx, r.db, `SELECT 1 FROM courses WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("check course: %w", err)
	}
	return found, nil
}

// ExistsByCode checks whether another course uses code.
func (r *CourseRepository) ExistsByCode(ctx context.Context, code string, excludeID int64) (bool, error) {
	found, err := existsExcluding(ctx, r.db, "courses", "code", code, excludeID)
	if err != nil {
		return false, fmt.Errorf("check course code: %w", err)
	}
	return found, nil
}

// Create inserts a new course.
func (r *CourseRepository) Create(ctx context.Context, course *models.Course) error {
	now := time.Now().UTC()
	course.CreatedAt = now
	course.UpdatedAt = now
	const query = `INSERT INTO courses (code, name, description, credits, department_id, teacher_id, semester,
		academic_year, max_students, level, room, schedule, is_active, created_at, updated_at)
		VALUES (:code, :name, :description, :credits, :department_id, :teacher_id, :semester,
		:academic_year, :max_students, :level, :room, :schedule, :is_active, :created_at, :updated_at) RETURNING id`
	id, err := insertReturningID(ctx, r.db, query, course)
	if err != nil {
		return fmt.Errorf("create course: %w", err)
	}
	course.ID = id
	return nil
}

// Update persists every column of course.
func (r *CourseRepository) Update(ctx context.Context, course *models.Course) error {
	course.UpdatedAt = time.Now().UTC()
	const query = `UPDATE courses SET code = :code, name = :name, description = :description, credits = :credits,
		department_id = :department_id, teacher_id = :teacher_id, semester = :semester,
		academic_year = :academic_year, max_students = :max_students, level = :level, room = :room,
		schedule = :schedule, is_active = :is_active, updated_at = :updated_at WHERE id = :id`
	res, err := r.db.NamedExecContext(ctx, query, course)
	if err != nil {
		return fmt.Errorf("update course: %w", err)
	}
	return requireAffected(res)
}

// Delete removes a course together with its enrollments.
func (r *CourseRepository) Delete(ctx context.Context, id int64) error {
	if err := deleteByID(ctx, r.db, "courses", id); err != nil {
		return fmt.Errorf("delete course: %w", err)
	}
	return nil
}
