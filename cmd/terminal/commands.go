package main

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sevigo/snippet-review/internal/client"
	"github.com/sevigo/snippet-review/internal/core"
	"github.com/sevigo/snippet-review/internal/server/handler"
)

const (
	pingTimeout   = 5 * time.Second
	reviewTimeout = 5 * time.Minute
)

// reviewClient is the part of client.Client the UI needs.
type reviewClient interface {
	Ping(ctx context.Context) (string, error)
	Submit(ctx context.Context, code string) (*handler.ReviewResponse, error)
	Snippet(ctx context.Context, id int64) (*core.SnippetDetail, error)
}

var _ reviewClient = (*client.Client)(nil)

func pingServerCmd(c reviewClient) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
		defer cancel()

		greeting, err := c.Ping(ctx)
		return serverReadyMsg{greeting: greeting, err: err}
	}
}

func submitReviewCmd(c reviewClient, code string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), reviewTimeout)
		defer cancel()

		resp, err := c.Submit(ctx, code)
		return reviewCompleteMsg{resp: resp, err: err}
	}
}

func loadSnippetCmd(c reviewClient, id int64) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
		defer cancel()

		detail, err := c.Snippet(ctx, id)
		return snippetLoadedMsg{detail: detail, err: err}
	}
}
