package review

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/sevigo/snippet-review/internal/core"
	"github.com/sevigo/snippet-review/internal/storage"
	"github.com/sevigo/snippet-review/mocks"
)

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

func TestService_Submit(t *testing.T) {
	tests := []struct {
		name       string
		outcome    core.Outcome
		wantStatus core.OutcomeStatus
	}{
		{name: "Generated feedback", outcome: core.Succeeded("- looks good"), wantStatus: core.StatusOK},
		{name: "Degraded feedback", outcome: core.Failed("network unreachable"), wantStatus: core.StatusDegraded},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			store := mocks.NewMockStore(ctrl)
			reviewer := mocks.NewMockReviewer(ctrl)

			gomock.InOrder(
				store.EXPECT().SaveSnippet(gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, s *core.CodeSnippet) error {
						assert.Equal(t, "def f(): pass", s.Code)
						s.ID = 7
						s.CreatedAt = time.Now()
						return nil
					}),
				reviewer.EXPECT().Review(gomock.Any(), "def f(): pass").Return(tt.outcome),
				store.EXPECT().SaveReview(gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, r *core.Review) error {
						assert.Equal(t, int64(7), r.SnippetID)
						assert.Equal(t, tt.outcome.Feedback, r.Feedback)
						assert.Equal(t, tt.wantStatus, r.Status)
						r.ID = 11
						return nil
					}),
			)

			svc := NewService(store, reviewer, discardLogger)
			got, err := svc.Submit(context.Background(), "def f(): pass")
			require.NoError(t, err)

			assert.Equal(t, &core.Submission{
				SnippetID: 7,
				ReviewID:  11,
				Feedback:  tt.outcome.Feedback,
				Status:    tt.wantStatus,
			}, got)
		})
	}
}

func TestService_Submit_SnippetWriteFails(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockStore(ctrl)
	reviewer := mocks.NewMockReviewer(ctrl)

	dbErr := errors.New("connection refused")
	store.EXPECT().SaveSnippet(gomock.Any(), gomock.Any()).Return(dbErr)

	svc := NewService(store, reviewer, discardLogger)
	_, err := svc.Submit(context.Background(), "x")
	require.Error(t, err)
	assert.ErrorIs(t, err, dbErr)
}

func TestService_Submit_ReviewWriteFails(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockStore(ctrl)
	reviewer := mocks.NewMockReviewer(ctrl)

	dbErr := errors.New("constraint violation")
	store.EXPECT().SaveSnippet(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, s *core.CodeSnippet) error {
			s.ID = 3
			return nil
		})
	reviewer.EXPECT().Review(gomock.Any(), "x").Return(core.Succeeded("- ok"))
	store.EXPECT().SaveReview(gomock.Any(), gomock.Any()).Return(dbErr)

	svc := NewService(store, reviewer, discardLogger)
	_, err := svc.Submit(context.Background(), "x")
	require.Error(t, err)
	assert.ErrorIs(t, err, dbErr)
	assert.Contains(t, err.Error(), "snippet 3")
}

func TestService_Submit_ReviewSavedAfterCancellation(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockStore(ctrl)
	reviewer := mocks.NewMockReviewer(ctrl)

	ctx, cancel := context.WithCancel(context.Background())

	store.EXPECT().SaveSnippet(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, s *core.CodeSnippet) error {
			s.ID = 1
			return nil
		})
	reviewer.EXPECT().Review(gomock.Any(), "x").DoAndReturn(
		func(context.Context, string) core.Outcome {
			cancel()
			return core.Failed("generation aborted: context canceled")
		})
	store.EXPECT().SaveReview(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, r *core.Review) error {
			assert.NoError(t, ctx.Err(), "review write must not inherit the caller's cancellation")
			r.ID = 2
			return nil
		})

	svc := NewService(store, reviewer, discardLogger)
	got, err := svc.Submit(ctx, "x")
	require.NoError(t, err)
	assert.Equal(t, core.StatusDegraded, got.Status)
}

func TestService_Snippet(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockStore(ctrl)

	snippet := &core.CodeSnippet{ID: 5, Code: "x"}
	reviews := []core.Review{{ID: 9, SnippetID: 5, Feedback: "- ok", Status: core.StatusOK}}
	store.EXPECT().GetSnippet(gomock.Any(), int64(5)).Return(snippet, nil)
	store.EXPECT().ListReviewsForSnippet(gomock.Any(), int64(5)).Return(reviews, nil)

	svc := NewService(store, mocks.NewMockReviewer(ctrl), discardLogger)
	got, err := svc.Snippet(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, snippet, got.Snippet)
	assert.Equal(t, reviews, got.Reviews)
}

func TestService_Snippet_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockStore(ctrl)
	store.EXPECT().GetSnippet(gomock.Any(), int64(5)).Return(nil, storage.ErrNotFound)

	svc := NewService(store, mocks.NewMockReviewer(ctrl), discardLogger)
	_, err := svc.Snippet(context.Background(), 5)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestNewService_PanicsOnNil(t *testing.T) {
	ctrl := gomock.NewController(t)
	assert.Panics(t, func() { NewService(nil, mocks.NewMockReviewer(ctrl), discardLogger) })
	assert.Panics(t, func() { NewService(mocks.NewMockStore(ctrl), nil, discardLogger) })
	assert.Panics(t, func() { NewService(mocks.NewMockStore(ctrl), mocks.NewMockReviewer(ctrl), nil) })
}
