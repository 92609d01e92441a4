package llm

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/sevigo/snippet-review/internal/config"
	"github.com/sevigo/snippet-review/internal/core"
)

const errEmptyResponse = "provider returned an empty response"

// reviewer implements core.Reviewer with a single provider call per snippet.
type reviewer struct {
	prompts   *PromptManager
	generator Generator
	provider  ModelProvider
	timeout   time.Duration
	logger    *slog.Logger
}

// NewReviewer builds the review generator. When REVIEW_PROMPT_FILE is set the
// embedded review template is replaced by the file's contents.
func NewReviewer(cfg *config.Config, prompts *PromptManager, generator Generator, logger *slog.Logger) (core.Reviewer, error) {
	if cfg.AI.PromptFile != "" {
		if err := prompts.Override(CodeReviewPrompt, cfg.AI.PromptFile); err != nil {
			return nil, err
		}
		logger.Info("using review prompt override", "file", cfg.AI.PromptFile)
	}

	return &reviewer{
		prompts:   prompts,
		generator: generator,
		provider:  ProviderOf(cfg.AI.LLMProvider),
		timeout:   cfg.AI.GenerationTimeout,
		logger:    logger,
	}, nil
}

// Review asks the provider for feedback on code. Every failure, including a
// panic inside the provider client, comes back as a degraded outcome.
func (r *reviewer) Review(ctx context.Context, code string) core.Outcome {
	prompt, err := r.prompts.Render(CodeReviewPrompt, r.provider, ReviewPromptData{Code: code})
	if err != nil {
		r.logger.Error("failed to render review prompt", "error", err)
		return core.Failed(err.Error())
	}

	start := time.Now()
	text, err := r.generateWithTimeout(ctx, prompt)
	if err != nil {
		r.logger.Warn("review generation failed", "provider", r.provider, "error", err, "duration", time.Since(start))
		return core.Failed(err.Error())
	}
	if strings.TrimSpace(text) == "" {
		r.logger.Warn("review generation returned no text", "provider", r.provider)
		return core.Failed(errEmptyResponse)
	}

	r.logger.Debug("review generated", "provider", r.provider, "chars", len(text), "duration", time.Since(start))
	return core.Succeeded(text)
}

// generateWithTimeout wraps generation with a hard timeout.
func (r *reviewer) generateWithTimeout(ctx context.Context, prompt string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("generation aborted: %w", err)
	}
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	type result struct {
		resp string
		err  error
	}
	resultCh := make(chan result, 1)

	go func() {
		defer func() {
			if p := recover(); p != nil {
				resultCh <- result{err: fmt.Errorf("provider panicked: %v", p)}
			}
		}()
		resp, err := r.generator.Generate(ctx, prompt)
		resultCh <- result{resp, err}
	}()

	select {
	case res := <-resultCh:
		return res.resp, res.err
	case <-ctx.Done():
		return "", fmt.Errorf("generation aborted: %w", ctx.Err())
	}
}
