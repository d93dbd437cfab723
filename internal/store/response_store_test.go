package store

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResponseStoreCountFor(t *testing.T) {
	db, mock := newMockDB(t)
	s := &ResponseStore{DB: db}

	mock.ExpectQuery(`SELECT count\(\*\) FROM "responses" WHERE session_id = \$1 AND student_id = \$2`).
		WithArgs("sess-1", "student-1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	n, err := s.CountFor(context.Background(), "sess-1", "student-1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestResponseStoreAppend(t *testing.T) {
	db, mock := newMockDB(t)
	s := &ResponseStore{DB: db}

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "responses"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	r, err := s.Append(context.Background(), "sess-1", "student-1", "sun")
	require.NoError(t, err)
	assert.Equal(t, "sun", r.Word)
	assert.NotEmpty(t, r.ID)
	assert.False(t, r.SubmittedAt.IsZero())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestResponseStoreAppendWithinQuotaRejectsAtLimit(t *testing.T) {
	db, mock := newMockDB(t)
	s := &ResponseStore{DB: db}

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "students" WHERE id = \$1 .*FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "full_name", "file_number", "class_id"}).
			AddRow("student-1", "Amina", "001", "class-1"))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "responses" WHERE session_id = \$1 AND student_id = \$2`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))
	mock.ExpectRollback()

	_, err := s.AppendWithinQuota(context.Background(), "sess-1", "student-1", "star", 3)
	assert.ErrorIs(t, err, ErrQuotaExceeded)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestResponseStoreAppendWithinQuotaUnknownStudent(t *testing.T) {
	db, mock := newMockDB(t)
	s := &ResponseStore{DB: db}

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "students" WHERE id = \$1 .*FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectRollback()

	_, err := s.AppendWithinQuota(context.Background(), "sess-1", "ghost", "star", 3)
	assert.ErrorIs(t, err, ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}
