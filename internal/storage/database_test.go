package storage

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sevigo/snippet-review/internal/config"
	"github.com/sevigo/snippet-review/internal/core"
	"github.com/sevigo/snippet-review/internal/db"
)

func newTestStore(t *testing.T) Store {
	t.Helper()
	conn, cleanup, err := db.NewDatabase(&config.DBConfig{
		URL: "sqlite://" + filepath.Join(t.TempDir(), "store.db"),
	})
	require.NoError(t, err)
	t.Cleanup(cleanup)
	require.NoError(t, conn.RunMigrations())
	return NewStore(conn.DB)
}

func TestSaveSnippet_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	codes := []string{
		"def f(): pass",
		"",
		"  leading and trailing whitespace \n\t",
		"s := \"quotes\" + `backticks` + '\\n' -- ; DROP TABLE reviews;",
		"unicode: λ → 字",
	}

	for _, code := range codes {
		snippet := &core.CodeSnippet{Code: code}
		require.NoError(t, store.SaveSnippet(ctx, snippet))
		assert.Positive(t, snippet.ID)
		assert.False(t, snippet.CreatedAt.IsZero())

		got, err := store.GetSnippet(ctx, snippet.ID)
		require.NoError(t, err)
		assert.Equal(t, code, got.Code)
		assert.WithinDuration(t, snippet.CreatedAt, got.CreatedAt, time.Millisecond)
	}
}

func TestSaveReview_ReferencesEarlierSnippet(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	snippet := &core.CodeSnippet{Code: "print('hi')"}
	require.NoError(t, store.SaveSnippet(ctx, snippet))

	review := &core.Review{SnippetID: snippet.ID, Feedback: "- use f-strings"}
	require.NoError(t, store.SaveReview(ctx, review))
	assert.Positive(t, review.ID)
	assert.Equal(t, core.StatusOK, review.Status, "empty status defaults to ok")

	reviews, err := store.ListReviewsForSnippet(ctx, snippet.ID)
	require.NoError(t, err)
	require.Len(t, reviews, 1)
	assert.Equal(t, snippet.ID, reviews[0].SnippetID)
	assert.Equal(t, "- use f-strings", reviews[0].Feedback)
	assert.False(t, reviews[0].CreatedAt.Before(snippet.CreatedAt))
}

func TestSaveReview_DegradedStatusPersisted(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	snippet := &core.CodeSnippet{Code: "x = 1"}
	require.NoError(t, store.SaveSnippet(ctx, snippet))

	outcome := core.Failed("quota exceeded")
	require.NoError(t, store.SaveReview(ctx, &core.Review{
		SnippetID: snippet.ID,
		Feedback:  outcome.Feedback,
		Status:    outcome.Status,
	}))

	reviews, err := store.ListReviewsForSnippet(ctx, snippet.ID)
	require.NoError(t, err)
	require.Len(t, reviews, 1)
	assert.Equal(t, core.StatusDegraded, reviews[0].Status)
	assert.Equal(t, "Error getting feedback: quota exceeded", reviews[0].Feedback)
}

func TestSaveReview_Errors(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	err := store.SaveReview(ctx, &core.Review{Feedback: "orphan"})
	assert.Error(t, err, "missing snippet id is rejected")

	err = store.SaveReview(ctx, &core.Review{SnippetID: 4242, Feedback: "dangling"})
	assert.Error(t, err, "foreign key must reject unknown snippets")
}

func TestGetSnippet_NotFound(t *testing.T) {
	store := newTestStore(t)

	_, err := store.GetSnippet(context.Background(), 99)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListReviewsForSnippet_Empty(t *testing.T) {
	store := newTestStore(t)

	reviews, err := store.ListReviewsForSnippet(context.Background(), 1)
	require.NoError(t, err)
	assert.NotNil(t, reviews)
	assert.Empty(t, reviews)
}

func TestStore_ConcurrentWrites(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	const n = 16
	ids := make([]int64, n)
	var wg sync.WaitGroup
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			snippet := &core.CodeSnippet{Code: fmt.Sprintf("snippet-%d", i)}
			if !assert.NoError(t, store.SaveSnippet(ctx, snippet)) {
				return
			}
			assert.NoError(t, store.SaveReview(ctx, &core.Review{
				SnippetID: snippet.ID,
				Feedback:  fmt.Sprintf("feedback-%d", i),
			}))
			ids[i] = snippet.ID
		}()
	}
	wg.Wait()

	seen := make(map[int64]bool)
	for i, id := range ids {
		require.NotZero(t, id)
		assert.False(t, seen[id], "identities must not collide")
		seen[id] = true

		got, err := store.GetSnippet(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, fmt.Sprintf("snippet-%d", i), got.Code)

		reviews, err := store.ListReviewsForSnippet(ctx, id)
		require.NoError(t, err)
		require.Len(t, reviews, 1)
		assert.Equal(t, fmt.Sprintf("feedback-%d", i), reviews[0].Feedback)
	}
}

func TestPing(t *testing.T) {
	store := newTestStore(t)
	assert.NoError(t, store.Ping(context.Background()))
}
