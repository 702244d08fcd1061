package repository

import (
	"context"
	"regexp"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/campus-events-api/internal/models"
)

func TestStudentRepositoryListEnrolledByCourseIDsScansPivot(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewStudentRepository(db)

	rows := sqlmock.NewRows([]string{
		"id", "user_id", "student_id", "gender", "enrollment_status",
		"pivot.student_id", "pivot.course_id", "pivot.enrollment_date", "pivot.status", "pivot.final_grade",
	}).AddRow(int64(4), int64(9), "S-001", "female", "active", int64(4), int64(2), "2024-09-01", "enrolled", nil)
	mock.ExpectQuery(regexp.QuoteMeta("FROM students s JOIN enrollments e ON e.student_id = s.id WHERE e.course_id = ANY($1)")).
		WillReturnRows(rows)

	list, err := repo.ListEnrolledByCourseIDs(context.Background(), []int64{2})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "S-001", list[0].StudentID)
	assert.Equal(t, int64(2), list[0].Pivot.CourseID)
	assert.Equal(t, "2024-09-01", list[0].Pivot.EnrollmentDate.String())
	assert.Nil(t, list[0].Pivot.FinalGrade)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepositoryCreateWithUser(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewStudentRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO users").WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(11)))
	mock.ExpectQuery("INSERT INTO students").WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(5)))
	mock.ExpectCommit()

	student := &models.Student{StudentID: "S-001", Gender: "male", EnrollmentStatus: "active"}
	require.NoError(t, repo.CreateWithUser(context.Background(), &models.User{Email: "s@example.com"}, student))
	assert.Equal(t, int64(5), student.ID)
	assert.Equal(t, int64(11), student.UserID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepositoryUpdateMissing(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewStudentRepository(db)

	mock.ExpectExec("UPDATE students SET").WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Update(context.Background(), &models.Student{ID: 99})
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
