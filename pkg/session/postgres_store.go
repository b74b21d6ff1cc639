package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX is the subset of *pgxpool.Pool used by PostgresStore.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresStore keeps sessions in the site_sessions table.
// Run Migrate before first use.
type PostgresStore struct {
	db DBTX
}

// NewPostgresStore returns a store over db.
func NewPostgresStore(db DBTX) *PostgresStore {
	return &PostgresStore{db: db}
}

const (
	insertSessionSQL = `INSERT INTO site_sessions
	(id, token, ip, user_agent, data, created_at, last_active_at, expires_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	selectSessionSQL = `SELECT id, token, ip, user_agent, data, created_at, last_active_at, expires_at
	FROM site_sessions WHERE token = $1`

	updateSessionSQL = `UPDATE site_sessions
	SET ip = $2, user_agent = $3, data = $4, last_active_at = $5, expires_at = $6
	WHERE id = $1`

	deleteSessionSQL = `DELETE FROM site_sessions WHERE id = $1`

	deleteExpiredSQL = `DELETE FROM site_sessions WHERE expires_at < now()`
)

func (s *PostgresStore) Create(ctx context.Context, sess *Session) error {
	data, err := json.Marshal(sess.Values)
	if err != nil {
		return fmt.Errorf("session: encode values: %w", err)
	}
	_, err = s.db.Exec(ctx, insertSessionSQL,
		sess.ID, sess.Token, sess.IP, sess.UserAgent, data,
		sess.CreatedAt, sess.LastActiveAt, sess.ExpiresAt,
	)
	if err != nil {
		return fmt.Errorf("session: create: %w", err)
	}
	return nil
}

func (s *PostgresStore) Get(ctx context.Context, token string) (*Session, error) {
	if token == "" {
		return nil, ErrInvalidToken
	}

	var (
		sess Session
		data []byte
	)
	err := s.db.QueryRow(ctx, selectSessionSQL, token).Scan(
		&sess.ID, &sess.Token, &sess.IP, &sess.UserAgent, &data,
		&sess.CreatedAt, &sess.LastActiveAt, &sess.ExpiresAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("session: get: %w", err)
	}

	if len(data) > 0 {
		if err := json.Unmarshal(data, &sess.Values); err != nil {
			return nil, fmt.Errorf("session: decode values: %w", err)
		}
	}
	if sess.Values == nil {
		sess.Values = make(map[string]any)
	}
	if sess.IsExpired() {
		return nil, ErrExpired
	}
	return &sess, nil
}

func (s *PostgresStore) Update(ctx context.Context, sess *Session) error {
	data, err := json.Marshal(sess.Values)
	if err != nil {
		return fmt.Errorf("session: encode values: %w", err)
	}
	tag, err := s.db.Exec(ctx, updateSessionSQL,
		sess.ID, sess.IP, sess.UserAgent, data, sess.LastActiveAt, sess.ExpiresAt,
	)
	if err != nil {
		return fmt.Errorf("session: update: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) Delete(ctx context.Context, id string) error {
	if _, err := s.db.Exec(ctx, deleteSessionSQL, id); err != nil {
		return fmt.Errorf("session: delete: %w", err)
	}
	return nil
}

func (s *PostgresStore) DeleteExpired(ctx context.Context) (int64, error) {
	tag, err := s.db.Exec(ctx, deleteExpiredSQL)
	if err != nil {
		return 0, fmt.Errorf("session: delete expired: %w", err)
	}
	return tag.RowsAffected(), nil
}
