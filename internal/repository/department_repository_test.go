package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/campus-events-api/internal/models"
)

func TestDepartmentRepositoryListFiltersActive(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewDepartmentRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "name", "code", "is_active", "created_at", "updated_at"}).
		AddRow(int64(1), "Physics", "PHY", true, now, now)
	mock.ExpectQuery(regexp.QuoteMeta("FROM departments WHERE is_active = $1 ORDER BY id")).
		WithArgs(true).
		WillReturnRows(rows)

	active := true
	list, err := repo.List(context.Background(), models.DepartmentFilter{IsActive: &active})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "PHY", list[0].Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDepartmentRepositoryCreateReturnsID(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewDepartmentRepository(db)

	mock.ExpectQuery("INSERT INTO departments").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(42)))

	dept := &models.Department{Name: "Physics", Code: "PHY", IsActive: true}
	require.NoError(t, repo.Create(context.Background(), dept))
	assert.Equal(t, int64(42), dept.ID)
	assert.False(t, dept.CreatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDepartmentRepositoryExistsByCodeExcludesSelf(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewDepartmentRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT 1 FROM departments WHERE code = $1 AND id <> $2 LIMIT 1")).
		WithArgs("PHY", int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"?column?"}))

	found, err := repo.ExistsByCode(context.Background(), "PHY", 3)
	require.NoError(t, err)
	assert.False(t, found)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDepartmentRepositoryDeleteMissing(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewDepartmentRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM departments WHERE id = $1")).
		WithArgs(int64(9)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), 9)
	assert.True(t, errors.Is(err, sql.ErrNoRows))
	assert.NoError(t, mock.ExpectationsWereMet())
}
