package store

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/classpulse/wordcloud-backend/internal/models"
)

func TestStudentStoreEnroll(t *testing.T) {
	db, mock := newMockDB(t)
	s := &StudentStore{DB: db}

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "students"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	st := &models.Student{FullName: "Amina", FileNumber: "001", ClassID: "class-5a"}
	require.NoError(t, s.Enroll(context.Background(), st))
	assert.NotEmpty(t, st.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentStoreEnrollDuplicateFileNumber(t *testing.T) {
	db, mock := newMockDB(t)
	s := &StudentStore{DB: db}

	// unique index on (class_id, file_number) fires at insert time
	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "students"`).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "uniq_class_file"})
	mock.ExpectRollback()

	st := &models.Student{FullName: "Dani", FileNumber: "001", ClassID: "class-5a"}
	err := s.Enroll(context.Background(), st)
	assert.ErrorIs(t, err, ErrDuplicate)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentStoreEnrollSameFileNumberOtherClass(t *testing.T) {
	db, mock := newMockDB(t)
	s := &StudentStore{DB: db}

	// same file number under a different class is a different index key
	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "students"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	st := &models.Student{FullName: "Dani", FileNumber: "001", ClassID: "class-5b"}
	require.NoError(t, s.Enroll(context.Background(), st))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentStoreFindByFileNumberNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	s := &StudentStore{DB: db}

	mock.ExpectQuery(`SELECT \* FROM "students" WHERE class_id = \$1 AND file_number = \$2`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := s.FindByFileNumber(context.Background(), "class-5a", "404")
	assert.ErrorIs(t, err, ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}
