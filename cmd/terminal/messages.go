package main

import (
	"github.com/sevigo/snippet-review/internal/core"
	"github.com/sevigo/snippet-review/internal/server/handler"
)

// Indicates whether the review server answered the greeting.
type serverReadyMsg struct {
	greeting string
	err      error
}

// Carries the outcome of one submitted snippet.
type reviewCompleteMsg struct {
	resp *handler.ReviewResponse
	err  error
}

// Carries a stored snippet requested with /show.
type snippetLoadedMsg struct {
	detail *core.SnippetDetail
	err    error
}
