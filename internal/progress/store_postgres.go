package progress

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const dbTimeout = 5 * time.Second

// PostgresStore is a PostgreSQL-backed Store. It expects the schema
// applied by database.Migrate.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a PostgreSQL-backed progress store.
func NewPostgresStore(pool *pgxpool.Pool) (*PostgresStore, error) {
	if pool == nil {
		return nil, fmt.Errorf("pool is nil")
	}
	return &PostgresStore{pool: pool}, nil
}

func (s *PostgresStore) Get(ctx context.Context, userID string) (Progress, error) {
	if userID == "" {
		return Progress{}, fmt.Errorf("user_id is required")
	}

	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	p := New(userID)
	var lastActive *time.Time
	err := s.pool.QueryRow(ctx,
		`SELECT points, streak, last_active
		 FROM user_progress
		 WHERE user_id = $1`,
		userID,
	).Scan(&p.Points, &p.Streak, &lastActive)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return p, nil
		}
		return Progress{}, fmt.Errorf("get progress: %w", err)
	}
	if lastActive != nil {
		p.LastActive = lastActive.UTC()
	}

	if err := loadCompletions(ctx, s.pool, &p); err != nil {
		return Progress{}, err
	}
	return p, nil
}

func (s *PostgresStore) Record(ctx context.Context, userID string, c Completion) (Progress, bool, error) {
	if userID == "" {
		return Progress{}, false, fmt.Errorf("user_id is required")
	}

	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return Progress{}, false, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx,
		`INSERT INTO user_progress (user_id) VALUES ($1)
		 ON CONFLICT (user_id) DO NOTHING`,
		userID,
	); err != nil {
		return Progress{}, false, fmt.Errorf("create progress row: %w", err)
	}

	p := New(userID)
	var lastActive *time.Time
	if err := tx.QueryRow(ctx,
		`SELECT points, streak, last_active
		 FROM user_progress
		 WHERE user_id = $1
		 FOR UPDATE`,
		userID,
	).Scan(&p.Points, &p.Streak, &lastActive); err != nil {
		return Progress{}, false, fmt.Errorf("lock progress: %w", err)
	}
	if lastActive != nil {
		p.LastActive = lastActive.UTC()
	}
	if err := loadCompletions(ctx, tx, &p); err != nil {
		return Progress{}, false, err
	}

	if c.At.IsZero() {
		c.At = time.Now()
	}
	next, changed := Apply(p, c)
	if !changed {
		return p, false, tx.Commit(ctx)
	}

	if _, err := tx.Exec(ctx,
		`INSERT INTO completions (user_id, kind, item_id, points, completed_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		userID, string(c.Kind), c.ItemID, c.Points, c.At,
	); err != nil {
		return Progress{}, false, fmt.Errorf("insert completion: %w", err)
	}
	if _, err := tx.Exec(ctx,
		`UPDATE user_progress
		 SET points = $2, streak = $3, last_active = $4, updated_at = NOW()
		 WHERE user_id = $1`,
		userID, next.Points, next.Streak, next.LastActive,
	); err != nil {
		return Progress{}, false, fmt.Errorf("update progress: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return Progress{}, false, fmt.Errorf("commit progress: %w", err)
	}
	return next, true, nil
}

type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

func loadCompletions(ctx context.Context, q querier, p *Progress) error {
	rows, err := q.Query(ctx,
		`SELECT kind, item_id
		 FROM completions
		 WHERE user_id = $1
		 ORDER BY completed_at ASC, item_id ASC`,
		p.UserID,
	)
	if err != nil {
		return fmt.Errorf("query completions: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var kind, itemID string
		if err := rows.Scan(&kind, &itemID); err != nil {
			return fmt.Errorf("scan completion: %w", err)
		}
		switch Kind(kind) {
		case KindLesson:
			p.CompletedLessons = append(p.CompletedLessons, itemID)
		case KindExercise:
			p.CompletedExercises = append(p.CompletedExercises, itemID)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate completions: %w", err)
	}
	return nil
}
