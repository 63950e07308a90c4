package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/revitalisasi-dashboard/internal/models"
	appErrors "github.com/noah-isme/revitalisasi-dashboard/pkg/errors"
)

const sessionSchema = `CREATE TABLE IF NOT EXISTS dashboard_sessions (
	id TEXT PRIMARY KEY,
	payload JSONB NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL,
	expires_at TIMESTAMPTZ NOT NULL
)`

// PostgresSessionRepository persists sessions in the dashboard_sessions table.
type PostgresSessionRepository struct {
	db  *sqlx.DB
	now func() time.Time
}

// NewPostgresSessionRepository creates a new instance of PostgresSessionRepository.
func NewPostgresSessionRepository(db *sqlx.DB) *PostgresSessionRepository {
	return &PostgresSessionRepository{db: db, now: time.Now}
}

// Migrate creates the sessions table when missing.
func (r *PostgresSessionRepository) Migrate(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, sessionSchema); err != nil {
		return fmt.Errorf("migrate sessions: %w", err)
	}
	return nil
}

type sessionRow struct {
	Payload   []byte    `db:"payload"`
	ExpiresAt time.Time `db:"expires_at"`
}

// Get returns an unexpired session or ErrNotFound.
func (r *PostgresSessionRepository) Get(ctx context.Context, id string) (*models.Session, error) {
	const query = `SELECT payload, expires_at FROM dashboard_sessions WHERE id = $1 AND expires_at > $2 LIMIT 1`
	var row sessionRow
	if err := r.db.GetContext(ctx, &row, query, id, r.now()); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.ErrNotFound
		}
		return nil, fmt.Errorf("get session: %w", err)
	}
	var session models.Session
	if err := json.Unmarshal(row.Payload, &session); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	session.ExpiresAt = row.ExpiresAt
	return &session, nil
}

// Save upserts the session.
func (r *PostgresSessionRepository) Save(ctx context.Context, session *models.Session, ttl time.Duration) error {
	now := r.now()
	session.UpdatedAt = now
	session.ExpiresAt = now.Add(ttl)
	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	const query = `INSERT INTO dashboard_sessions (id, payload, updated_at, expires_at) VALUES ($1, $2, $3, $4)
ON CONFLICT (id) DO UPDATE SET payload = EXCLUDED.payload, updated_at = EXCLUDED.updated_at, expires_at = EXCLUDED.expires_at`
	if _, err := r.db.ExecContext(ctx, query, session.ID, payload, session.UpdatedAt, session.ExpiresAt); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// Delete removes a session.
func (r *PostgresSessionRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM dashboard_sessions WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// PurgeExpired removes sessions whose expiry has passed.
func (r *PostgresSessionRepository) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	const query = `DELETE FROM dashboard_sessions WHERE expires_at <= $1`
	res, err := r.db.ExecContext(ctx, query, now)
	if err != nil {
		return 0, fmt.Errorf("purge sessions: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("purge sessions rows: %w", err)
	}
	return n, nil
}
