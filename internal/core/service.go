// Package core defines the data structures and interfaces shared by the
// persistence layer, the review generator and the HTTP surface.
package core

import (
	"context"
)

//go:generate mockgen -destination=../../mocks/mock_core.go -package=mocks . Reviewer,ReviewService

// Reviewer produces feedback for a piece of code. Implementations never
// return provider failures as errors; they are folded into the Outcome.
type Reviewer interface {
	Review(ctx context.Context, code string) Outcome
}

// ReviewService is the submit-for-review operation and its read-back
// counterpart, as exposed over HTTP.
type ReviewService interface {
	// Submit persists the snippet, asks the Reviewer for feedback and
	// persists that feedback. Only persistence failures are returned.
	Submit(ctx context.Context, code string) (*Submission, error)
	// Snippet returns a stored snippet with all of its reviews.
	Snippet(ctx context.Context, id int64) (*SnippetDetail, error)
}
