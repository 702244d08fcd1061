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

func TestEventRepositoryListNewestFirst(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewEventRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "year", "title", "start_date", "is_published", "created_at", "updated_at"}).
		AddRow("5d0c3a4e-4bb0-4f5e-9c16-4d8a0f0b9a11", 2025, "Summit 2025", "2025-05-01", true, now, now).
		AddRow("0b6c5f7e-3d7e-4b55-8d55-1a2c3e4f5a6b", 2024, "Summit 2024", nil, true, now, now)
	mock.ExpectQuery(regexp.QuoteMeta("FROM events WHERE is_published = $1 ORDER BY year DESC")).
		WithArgs(true).
		WillReturnRows(rows)

	list, err := repo.List(context.Background(), models.EventFilter{PublishedOnly: true})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, 2025, list[0].Year)
	require.NotNil(t, list[0].StartDate)
	assert.Equal(t, "2025-05-01", list[0].StartDate.String())
	assert.Nil(t, list[1].StartDate)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEventRepositoryFindByYearPublished(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewEventRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM events WHERE year = $1 AND is_published = TRUE")).
		WithArgs(2026).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByYear(context.Background(), 2026, true)
	assert.True(t, errors.Is(err, sql.ErrNoRows))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEventRepositoryExistsByYear(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewEventRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT 1 FROM events WHERE year = $1 LIMIT 1")).
		WithArgs(2025).
		WillReturnRows(sqlmock.NewRows([]string{"?column?"}).AddRow(1))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT 1 FROM events WHERE year = $1 AND id <> $2 LIMIT 1")).
		WithArgs(2025, "self").
		WillReturnRows(sqlmock.NewRows([]string{"?column?"}))

	taken, err := repo.ExistsByYear(context.Background(), 2025, "")
	require.NoError(t, err)
	assert.True(t, taken)

	taken, err = repo.ExistsByYear(context.Background(), 2025, "self")
	require.NoError(t, err)
	assert.False(t, taken)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTopicRepositoryListOrdersByDate(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewTopicRepository(db)

	rows := sqlmock.NewRows([]string{"id", "event_id", "title", "topic_date", "order"}).
		AddRow("t1", "e1", "Opening", "2025-05-01", 0)
	mock.ExpectQuery(regexp.QuoteMeta(`FROM topics WHERE event_id = $1 ORDER BY topic_date`)).
		WithArgs("e1").
		WillReturnRows(rows)

	topics, err := repo.List(context.Background(), models.TopicFilter{EventID: "e1"})
	require.NoError(t, err)
	require.Len(t, topics, 1)
	assert.Equal(t, "2025-05-01", topics[0].TopicDate.String())
}
