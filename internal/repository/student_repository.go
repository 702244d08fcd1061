package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/noah-isme/campus-events-api/internal/models"
)

const studentColumns = `id, user_id, student_id, date_of_birth, gender, phone, address, guardian_name, guardian_phone,
	guardian_email, admission_date, enrollment_status, blood_group, medical_conditions, created_at, updated_at`

const pivotColumns = `e.student_id AS "pivot.student_id", e.course_id AS "pivot.course_id",
	e.enrollment_date AS "pivot.enrollment_date", e.status AS "pivot.status", e.final_grade AS "pivot.final_grade",
	e.letter_grade AS "pivot.letter_grade", e.notes AS "pivot.notes", e.created_at AS "pivot.created_at",
	e.updated_at AS "pivot.updated_at"`

// StudentRepository manages persistence for students.
type StudentRepository struct {
	db *sqlx.DB
}

// NewStudentRepository constructs a StudentRepository.
func NewStudentRepository(db *sqlx.DB) *StudentRepository {
	return &StudentRepository{db: db}
}

// List returns students matching filter.
func (r *StudentRepository) List(ctx context.Context, filter models.StudentFilter) ([]models.Student, error) {
	var cond conditions
	if filter.EnrollmentStatus != "" {
		cond.add("enrollment_status = $%d", filter.EnrollmentStatus)
	}

	students := []models.Student{}
	query := `SELECT ` + studentColumns + ` FROM students` + cond.where() + ` ORDER BY id`
	if err := r.db.SelectContext(ctx, &students, query, cond.args...); err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}
	return students, nil
}

// FindByID fetches a student by id.
func (r *StudentRepository) FindByID(ctx context.Context, id int64) (*models.Student, error) {
	var student models.Student
	if err := r.db.GetContext(ctx, &student, `SELECT `+studentColumns+` FROM students WHERE id = $1`, id); err != nil {
		return nil, err
	}
	return &student, nil
}

// FindByIDs batch-loads students for eager loading.
func (r *StudentRepository) FindByIDs(ctx context.Context, ids []int64) ([]models.Student, error) {
	students := []models.Student{}
	if len(ids) == 0 {
		return students, nil
	}
	if err := r.db.SelectContext(ctx, &students, `SELECT `+studentColumns+` FROM students WHERE id = ANY($1)`, pq.Array(ids)); err != nil {
		return nil, fmt.Errorf("find students: %w", err)
	}
	return students, nil
}

// ListEnrolledByCourseIDs returns the roster of each course with the
// enrollment row attached as pivot.
func (r *StudentRepository) ListEnrolledByCourseIDs(ctx context.Context, courseIDs []int64) ([]models.EnrolledStudent, error) {
	students := []models.EnrolledStudent{}
	if len(courseIDs) == 0 {
		return students, nil
	}
	query := `SELECT s.id, s.user_id, s.student_id, s.date_of_birth, s.gender, s.phone, s.address, s.guardian_name,
		s.guardian_phone, s.guardian_email, s.admission_date, s.enrollment_status, s.blood_group, s.medical_conditions,
		s.created_at, s.updated_at, ` + pivotColumns + `
		FROM students s JOIN enrollments e ON e.student_id = s.id
		WHERE e.course_id = ANY($1) ORDER BY e.course_id, s.id`
	if err := r.db.SelectContext(ctx, &students, query, pq.Array(courseIDs)); err != nil {
		return nil, fmt.Errorf("list course students: %w", err)
	}
	return students, nil
}

// Exists reports whether a student with id exists.
func (r *StudentRepository) Exists(ctx context.Context, id int64) (bool, error) {
	found, err := exists(ctx, r.db, `SELECT 1 FROM students WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("check student: %w", err)
	}
	return found, nil
}

// ExistsByStudentID checks whether another student uses the registration number.
func (r *StudentRepository) ExistsByStudentID(ctx context.Context, studentID string, excludeID int64) (bool, error) {
	found, err := existsExcluding(ctx, r.db, "students", "student_id", studentID, excludeID)
	if err != nil {
		return false, fmt.Errorf("check student number: %w", err)
	}
	return found, nil
}

// CreateWithUser inserts the user account and the student in one transaction.
func (r *StudentRepository) CreateWithUser(ctx context.Context, user *models.User, student *models.Student) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin create student: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if err := insertUser(ctx, tx, user); err != nil {
		return err
	}

	student.UserID = user.ID
	student.CreatedAt = user.CreatedAt
	student.UpdatedAt = user.UpdatedAt
	const query = `INSERT INTO students (user_id, student_id, date_of_birth, gender, phone, address, guardian_name,
		guardian_phone, guardian_email, admission_date, enrollment_status, blood_group, medical_conditions,
		created_at, updated_at)
		VALUES (:user_id, :student_id, :date_of_birth, :gender, :phone, :address, :guardian_name,
		:guardian_phone, :guardian_email, :admission_date, :enrollment_status, :blood_group, :medical_conditions,
		:created_at, :updated_at) RETURNING id`
	id, err := insertReturningID(ctx, tx, query, student)
	if err != nil {
		return fmt.Errorf("create student: %w", err)
	}
	student.ID = id

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit create student: %w", err)
	}
	return nil
}

// Update persists every column of student.
func (r *StudentRepository) Update(ctx context.Context, student *models.Student) error {
	student.UpdatedAt = time.Now().UTC()
	const query = `UPDATE students SET student_id = :student_id, date_of_birth = :date_of_birth, gender = :gender,
		phone = :phone, address = :address, guardian_name = :guardian_name, guardian_phone = :guardian_phone,
		guardian_email = :guardian_email, admission_date = :admission_date, enrollment_status = :enrollment_status,
		blood_group = :blood_group, medical_conditions = :medical_conditions, updated_at = :updated_at WHERE id = :id`
	res, err := r.db.NamedExecContext(ctx, query, student)
	if err != nil {
		return fmt.Errorf("update student: %w", err)
	}
	return requireAffected(res)
}

// Delete removes a student; enrollments and grades cascade in the schema.
func (r *StudentRepository) Delete(ctx context.Context, id int64) error {
	if err := deleteByID(ctx, r.db, "students", id); err != nil {
		return fmt.Errorf("delete student: %w", err)
	}
	return nil
}
