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

func TestEnrollmentRepositoryExistsForPair(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewEnrollmentRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT 1 FROM enrollments WHERE student_id = $1 AND course_id = $2")).
		WithArgs(int64(1), int64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"?column?"}).AddRow(1))

	found, err := repo.ExistsForPair(context.Background(), 1, 2)
	require.NoError(t, err)
	assert.True(t, found)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnrollmentRepositoryListByStatus(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewEnrollmentRepository(db)

	rows := sqlmock.NewRows([]string{"id", "student_id", "course_id", "enrollment_date", "status", "final_grade"}).
		AddRow(int64(1), int64(1), int64(2), "2024-09-01", "dropped", 71.5)
	mock.ExpectQuery(regexp.QuoteMeta("FROM enrollments WHERE status = $1 ORDER BY id")).
		WithArgs("dropped").
		WillReturnRows(rows)

	list, err := repo.List(context.Background(), models.EnrollmentFilter{Status: models.EnrollmentDropped})
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.NotNil(t, list[0].FinalGrade)
	assert.InDelta(t, 71.5, *list[0].FinalGrade, 0.001)
}

func TestEnrollmentRepositoryUpdateLeavesPairAlone(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewEnrollmentRepository(db)

	mock.ExpectExec(`UPDATE enrollments SET enrollment_date = \?, status = \?`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Update(context.Background(), &models.Enrollment{ID: 1, Status: models.EnrollmentCompleted}))
	assert.NoError(t, mock.ExpectationsWereMet())
}
