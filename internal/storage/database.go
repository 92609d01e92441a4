// Package storage persists code snippets and their reviews.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/sevigo/snippet-review/internal/core"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("record not found")

//go:generate mockgen -destination=../../mocks/mock_store.go -package=mocks . Store

// Store defines the interface for all database operations.
// Every write is committed on its own; no transaction spans two calls.
type Store interface {
	// SaveSnippet inserts a snippet and fills in its ID and CreatedAt.
	SaveSnippet(ctx context.Context, snippet *core.CodeSnippet) error
	// SaveReview inserts a review for an existing snippet and fills in its ID and CreatedAt.
	SaveReview(ctx context.Context, review *core.Review) error
	GetSnippet(ctx context.Context, id int64) (*core.CodeSnippet, error)
	ListReviewsForSnippet(ctx context.Context, snippetID int64) ([]core.Review, error)
	Ping(ctx context.Context) error
}

type sqlStore struct {
	db  *sqlx.DB
	now func() time.Time
}

// NewStore creates a new Store on top of an open connection pool. Queries are
// rebound for the pool's driver, so postgres and sqlite share one code path.
func NewStore(db *sqlx.DB) Store {
	return &sqlStore{
		db:  db,
		now: func() time.Time { return time.Now().UTC() },
	}
}

// SaveSnippet inserts a new snippet record into the database.
func (s *sqlStore) SaveSnippet(ctx context.Context, snippet *core.CodeSnippet) error {
	createdAt := s.now()
	query := s.db.Rebind(`INSERT INTO code_snippets (code, created_at) VALUES (?, ?) RETURNING id`)

	var id int64
	if err := s.db.QueryRowxContext(ctx, query, snippet.Code, createdAt).Scan(&id); err != nil {
		return fmt.Errorf("failed to insert code snippet: %w", err)
	}

	snippet.ID = id
	snippet.CreatedAt = createdAt
	return nil
}

// SaveReview inserts a new review record into the database.
func (s *sqlStore) SaveReview(ctx context.Context, review *core.Review) error {
	if review.SnippetID <= 0 {
		return fmt.Errorf("review has no snippet id")
	}
	if review.Status == "" {
		review.Status = core.StatusOK
	}

	createdAt := s.now()
	query := s.db.Rebind(`INSERT INTO reviews (snippet_id, feedback, status, created_at) VALUES (?, ?, ?, ?) RETURNING id`)

	var id int64
	err := s.db.QueryRowxContext(ctx, query, review.SnippetID, review.Feedback, review.Status, createdAt).Scan(&id)
	if err != nil {
		return fmt.Errorf("failed to insert review for snippet %d: %w", review.SnippetID, err)
	}

	review.ID = id
	review.CreatedAt = createdAt
	return nil
}

// GetSnippet retrieves a snippet by its identity.
func (s *sqlStore) GetSnippet(ctx context.Context, id int64) (*core.CodeSnippet, error) {
	query := s.db.Rebind(`SELECT id, code, created_at FROM code_snippets WHERE id = ?`)

	var snippet core.CodeSnippet
	if err := s.db.GetContext(ctx, &snippet, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("snippet %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get snippet %d: %w", id, err)
	}
	return &snippet, nil
}

// ListReviewsForSnippet returns every review of a snippet, oldest first.
func (s *sqlStore) ListReviewsForSnippet(ctx context.Context, snippetID int64) ([]core.Review, error) {
	query := s.db.Rebind(`
		SELECT id, snippet_id, feedback, status, created_at
		FROM reviews
		WHERE snippet_id = ?
		ORDER BY created_at, id`)

	reviews := []core.Review{}
	if err := s.db.SelectContext(ctx, &reviews, query, snippetID); err != nil {
		return nil, fmt.Errorf("failed to list reviews for snippet %d: %w", snippetID, err)
	}
	return reviews, nil
}

// Ping checks that the database is reachable.
func (s *sqlStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}
