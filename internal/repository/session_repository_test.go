package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/revitalisasi-dashboard/internal/models"
	appErrors "github.com/noah-isme/revitalisasi-dashboard/pkg/errors"
)

func newSessionMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func TestPostgresSessionRepositorySaveAndGet(t *testing.T) {
	db, mock, cleanup := newSessionMock(t)
	defer cleanup()

	now := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)
	repo := NewPostgresSessionRepository(db)
	repo.now = func() time.Time { return now }

	session := &models.Session{ID: "s1", Token: "backend-token", User: &models.User{ID: "7", Name: "Rina", Role: "koordinator"}}
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO dashboard_sessions (id, payload, updated_at, expires_at)")).
		WithArgs("s1", sqlmock.AnyArg(), now, now.Add(time.Hour)).
		WillReturnResult(sqlmock.NewResult(1, 1))
	require.NoError(t, repo.Save(context.Background(), session, time.Hour))

	payload := []byte(`{"id":"s1","token":"backend-token","user":{"id":"7","name":"Rina","email":"","role":"koordinator"},"loading":false}`)
	rows := sqlmock.NewRows([]string{"payload", "expires_at"}).AddRow(payload, now.Add(time.Hour))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT payload, expires_at FROM dashboard_sessions WHERE id = $1 AND expires_at > $2 LIMIT 1")).
		WithArgs("s1", now).
		WillReturnRows(rows)

	found, err := repo.Get(context.Background(), "s1")
	require.NoError(t, err)
	require.NotNil(t, found.User)
	assert.Equal(t, "koordinator", found.User.Role)
	assert.Equal(t, now.Add(time.Hour), found.ExpiresAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresSessionRepositoryGetMissing(t *testing.T) {
	db, mock, cleanup := newSessionMock(t)
	defer cleanup()
	repo := NewPostgresSessionRepository(db)

	mock.ExpectQuery("SELECT payload, expires_at FROM dashboard_sessions").
		WillReturnRows(sqlmock.NewRows([]string{"payload", "expires_at"}))

	_, err := repo.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, appErrors.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresSessionRepositoryDeleteAndPurge(t *testing.T) {
	db, mock, cleanup := newSessionMock(t)
	defer cleanup()
	repo := NewPostgresSessionRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM dashboard_sessions WHERE id = $1")).
		WithArgs("s1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.Delete(context.Background(), "s1"))

	now := time.Now()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM dashboard_sessions WHERE expires_at <= $1")).
		WithArgs(now).
		WillReturnResult(sqlmock.NewResult(0, 3))
	removed, err := repo.PurgeExpired(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, int64(3), removed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresSessionRepositoryMigrate(t *testing.T) {
	db, mock, cleanup := newSessionMock(t)
	defer cleanup()

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS dashboard_sessions").WillReturnResult(sqlmock.NewResult(0, 0))
	require.NoError(t, NewPostgresSessionRepository(db).Migrate(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMemorySessionRepositoryExpiry(t *testing.T) {
	repo := NewMemorySessionRepository()
	now := time.Now()
	repo.now = func() time.Time { return now }

	require.NoError(t, repo.Save(context.Background(), &models.Session{ID: "a", Error: "x"}, time.Minute))
	got, err := repo.Get(context.Background(), "a")
	require.NoError(t, err)
	assert.Equal(t, "x", got.Error)

	got.Error = "mutated"
	again, _ := repo.Get(context.Background(), "a")
	assert.Equal(t, "x", again.Error)

	now = now.Add(2 * time.Minute)
	_, err = repo.Get(context.Background(), "a")
	assert.ErrorIs(t, err, appErrors.ErrNotFound)

	removed, err := repo.PurgeExpired(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	require.NoError(t, repo.Delete(context.Background(), "never-existed"))
}

func TestRedisSessionRepositoryUnreachable(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", DialTimeout: 50 * time.Millisecond, MaxRetries: -1})
	repo := NewRedisSessionRepository(client, nil)
	defer repo.Close()

	_, err := repo.Get(context.Background(), "s1")
	require.Error(t, err)
	assert.NotErrorIs(t, err, appErrors.ErrNotFound)
}
