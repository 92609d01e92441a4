// Package review implements the submit-for-review operation: persist the
// snippet, ask the reviewer for feedback, persist the feedback.
package review

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sevigo/snippet-review/internal/core"
	"github.com/sevigo/snippet-review/internal/storage"
)

// Service orchestrates one review request against the store and the reviewer.
type Service struct {
	store    storage.Store
	reviewer core.Reviewer
	logger   *slog.Logger
}

// NewService creates a new Service with the store, reviewer, and logger.
func NewService(store storage.Store, reviewer core.Reviewer, logger *slog.Logger) core.ReviewService {
	if store == nil {
		panic("store cannot be nil")
	}
	if reviewer == nil {
		panic("reviewer cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &Service{store: store, reviewer: reviewer, logger: logger}
}

// Submit runs the three steps strictly in order. The snippet is committed
// before the reviewer is called, so the review always references a stored
// identity. If the second write fails the snippet stays without a review.
func (s *Service) Submit(ctx context.Context, code string) (*core.Submission, error) {
	snippet := &core.CodeSnippet{Code: code}
	if err := s.store.SaveSnippet(ctx, snippet); err != nil {
		return nil, fmt.Errorf("failed to save snippet: %w", err)
	}
	s.logger.Info("snippet saved", "snippet_id", snippet.ID, "bytes", len(code))

	outcome := s.reviewer.Review(ctx, code)
	if outcome.Degraded() {
		s.logger.Warn("review degraded", "snippet_id", snippet.ID, "reason", outcome.Reason)
	}

	// the outcome is recorded even if the caller has gone away meanwhile
	review := &core.Review{
		SnippetID: snippet.ID,
		Feedback:  outcome.Feedback,
		Status:    outcome.Status,
	}
	if err := s.store.SaveReview(context.WithoutCancel(ctx), review); err != nil {
		s.logger.Error("review not saved, snippet left without review", "snippet_id", snippet.ID, "error", err)
		return nil, fmt.Errorf("failed to save review for snippet %d: %w", snippet.ID, err)
	}
	s.logger.Info("review saved", "snippet_id", snippet.ID, "review_id", review.ID, "status", review.Status)

	return &core.Submission{
		SnippetID: snippet.ID,
		ReviewID:  review.ID,
		Feedback:  review.Feedback,
		Status:    review.Status,
	}, nil
}

// Snippet loads a stored snippet and its reviews.
func (s *Service) Snippet(ctx context.Context, id int64) (*core.SnippetDetail, error) {
	snippet, err := s.store.GetSnippet(ctx, id)
	if err != nil {
		return nil, err
	}

	reviews, err := s.store.ListReviewsForSnippet(ctx, id)
	if err != nil {
		return nil, err
	}

	return &core.SnippetDetail{Snippet: snippet, Reviews: reviews}, nil
}
