package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/campus-events-api/internal/models"
)

func TestContentTableQueriesQuoteColumns(t *testing.T) {
	assert.Equal(t,
		`INSERT INTO faqs ("id", "event_id", "question", "answer", "order", "created_at", "updated_at") VALUES (:id, :event_id, :question, :answer, :order, :created_at, :updated_at)`,
		faqTable.insertQuery())
	assert.Equal(t,
		`UPDATE faqs SET "question" = :question, "answer" = :answer, "order" = :order, updated_at = :updated_at WHERE id = :id`,
		faqTable.updateQuery())
}

func TestContentRepositoryListByEventIDUsesDisplayOrder(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewSponsorRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "event_id", "name", "tier", "order", "created_at", "updated_at"}).
		AddRow("s1", "e1", "Acme", "gold", 1, now, now).
		AddRow("s2", "e1", "Globex", nil, 2, now, now)
	mock.ExpectQuery(regexp.QuoteMeta(`FROM sponsors WHERE event_id = $1 ORDER BY "order", created_at, id`)).
		WithArgs("e1").
		WillReturnRows(rows)

	sponsors, err := repo.ListByEventID(context.Background(), "e1")
	require.NoError(t, err)
	require.Len(t, sponsors, 2)
	assert.Equal(t, "Acme", sponsors[0].Name)
	assert.Nil(t, sponsors[1].Tier)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestContentRepositoryCreateAndDelete(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewSummaryRepository(db)

	mock.ExpectExec("INSERT INTO event_summaries").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM event_summaries WHERE id = $1")).
		WithArgs("sum-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Create(context.Background(), &models.Summary{ID: "sum-1", EventID: "e1", Summary: "Recap"}))
	require.NoError(t, repo.Delete(context.Background(), "sum-1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSpeakerRepositoryListByTopicIDs(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewSpeakerRepository(db)

	rows := sqlmock.NewRows([]string{"id", "event_id", "topic_id", "name", "linkedin", "order"}).
		AddRow("sp1", "e1", "t1", "Linus", "in/linus", 0)
	mock.ExpectQuery(regexp.QuoteMeta("FROM speakers WHERE topic_id = ANY($1)")).
		WillReturnRows(rows)

	speakers, err := repo.ListByTopicIDs(context.Background(), []string{"t1"})
	require.NoError(t, err)
	require.Len(t, speakers, 1)
	require.NotNil(t, speakers[0].TopicID)
	assert.Equal(t, "t1", *speakers[0].TopicID)
	assert.Equal(t, "in/linus", *speakers[0].LinkedIn)

	empty, err := repo.ListByTopicIDs(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
	assert.NoError(t, mock.ExpectationsWereMet())
}
