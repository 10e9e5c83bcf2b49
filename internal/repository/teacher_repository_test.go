package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

type recordingObserver struct {
	labels []string
}

func (o *recordingObserver) ObserveDBQuery(label string, _ time.Duration) {
	o.labels = append(o.labels, label)
}

func TestTeacherRepositoryEnsure(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	observer := &recordingObserver{}
	repo := NewTeacherRepository(db, observer)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO teachers (email) VALUES ($1) ON CONFLICT (email) DO NOTHING")).
		WithArgs("teacherken@gmail.com").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, email, created_at FROM teachers WHERE email = $1")).
		WithArgs("teacherken@gmail.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "created_at"}).AddRow(7, "teacherken@gmail.com", time.Now()))

	teacher, err := repo.Ensure(context.Background(), "teacherken@gmail.com")
	require.NoError(t, err)
	assert.Equal(t, int64(7), teacher.ID)
	assert.Equal(t, "teacherken@gmail.com", teacher.Email)
	assert.Equal(t, []string{"teachers.ensure"}, observer.labels)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTeacherRepositoryEnsureInsertError(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewTeacherRepository(db, nil)

	mock.ExpectExec("INSERT INTO teachers").
		WithArgs("teacherken@gmail.com").
		WillReturnError(errors.New("connection reset"))

	_, err := repo.Ensure(context.Background(), "teacherken@gmail.com")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "insert teacher")
	assert.NoError(t, mock.ExpectationsWereMet())
}
