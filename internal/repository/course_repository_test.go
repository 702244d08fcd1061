package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/campus-events-api/internal/models"
)

func TestCourseRepositoryListCombinesFilters(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewCourseRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "code", "name", "department_id", "teacher_id", "semester", "academic_year", "schedule", "created_at", "updated_at"}).
		AddRow(int64(1), "CS101", "Intro", int64(3), nil, "Fall", "2024/2025", []byte(`[{"day":"Mon"}]`), now, now).
		AddRow(int64(2), "CS102", "Data", int64(3), int64(8), "Fall", "2024/2025", nil, now, now)
	mock.ExpectQuery(regexp.QuoteMeta("FROM courses WHERE department_id = $1 AND semester = $2 AND academic_year = $3 ORDER BY id")).
		WithArgs(int64(3), "Fall", "2024/2025").
		WillReturnRows(rows)

	dept := int64(3)
	list, err := repo.List(context.Background(), models.CourseFilter{DepartmentID: &dept, Semester: "Fall", AcademicYear: "2024/2025"})
	require.NoError(t, err)
	require.Len(t, list, 2)

	require.NotNil(t, list[0].Schedule)
	assert.JSONEq(t, `[{"day":"Mon"}]`, string(*list[0].Schedule))
	assert.Nil(t, list[0].TeacherID)
	assert.Nil(t, list[1].Schedule)
	assert.Equal(t, int64(8), *list[1].TeacherID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCourseRepositoryListWithoutFilters(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewCourseRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM courses ORDER BY id")).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	list, err := repo.List(context.Background(), models.CourseFilter{})
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func TestCourseRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewCourseRepository(db)

	mock.ExpectQuery("INSERT INTO courses").WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(12)))

	schedule := types.JSONText(`{"mon":"09:00"}`)
	course := &models.Course{Code: "CS101", Name: "Intro", Credits: 3, DepartmentID: 1, Semester: "Fall", AcademicYear: "2024", MaxStudents: 30, Level: "undergraduate", Schedule: &schedule}
	require.NoError(t, repo.Create(context.Background(), course))
	assert.Equal(t, int64(12), course.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCourseRepositoryListEnrolledByStudentID(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewCourseRepository(db)

	rows := sqlmock.NewRows([]string{"id", "code", "pivot.student_id", "pivot.course_id", "pivot.status", "pivot.letter_grade"}).
		AddRow(int64(2), "CS102", int64(4), int64(2), "completed", "A-")
	mock.ExpectQuery(regexp.QuoteMeta("JOIN enrollments e ON e.course_id = c.id WHERE e.student_id = $1")).
		WithArgs(int64(4)).
		WillReturnRows(rows)

	list, err := repo.ListEnrolledByStudentID(context.Background(), 4)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "completed", list[0].Pivot.Status)
	require.NotNil(t, list[0].Pivot.LetterGrade)
	assert.Equal(t, "A-", *list[0].Pivot.LetterGrade)
}
