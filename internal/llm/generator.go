package llm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/sevigo/goframe/llms"
	"github.com/sevigo/goframe/llms/gemini"
	"github.com/sevigo/goframe/llms/ollama"
	"google.golang.org/genai"

	"github.com/sevigo/snippet-review/internal/config"
)

//go:generate mockgen -destination=../../mocks/mock_generator.go -package=mocks . Generator

// Generator is a single text-generation capability: one prompt in, one
// completion out.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// NewGenerator creates the generator for the configured provider. A missing
// credential does not fail startup; the returned generator fails every call
// instead, and the reviewer turns that into degraded feedback.
func NewGenerator(ctx context.Context, cfg *config.Config, logger *slog.Logger) (Generator, error) {
	ai := cfg.AI
	switch ai.LLMProvider {
	case "gemini":
		if ai.GeminiAPIKey == "" {
			logger.Warn("GEMINI_API_KEY is not set, reviews will be degraded")
			return unavailableGenerator{err: errors.New("GEMINI_API_KEY is not set")}, nil
		}
		logger.Info("using Gemini LLM provider", "model", ai.GeneratorModel)
		model, err := gemini.New(ctx,
			gemini.WithModel(ai.GeneratorModel),
			gemini.WithAPIKey(ai.GeminiAPIKey),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create gemini client: %w", err)
		}
		return NewModelGenerator(model), nil

	case "ollama":
		logger.Info("using Ollama LLM provider", "model", ai.GeneratorModel, "host", ai.OllamaHost)
		model, err := ollama.New(
			ollama.WithServerURL(ai.OllamaHost),
			ollama.WithHTTPClient(newOllamaHTTPClient()),
			ollama.WithModel(ai.GeneratorModel),
			ollama.WithLogger(logger),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create ollama client: %w", err)
		}
		return NewModelGenerator(model), nil

	case "vertex":
		if ai.VertexProject == "" {
			logger.Warn("VERTEX_PROJECT is not set, reviews will be degraded")
			return unavailableGenerator{err: errors.New("VERTEX_PROJECT is not set")}, nil
		}
		logger.Info("using Vertex AI provider", "model", ai.GeneratorModel, "project", ai.VertexProject, "location", ai.VertexLocation)
		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			Backend:  genai.BackendVertexAI,
			Project:  ai.VertexProject,
			Location: ai.VertexLocation,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create vertex ai client: %w", err)
		}
		return &genaiGenerator{client: client, model: ai.GeneratorModel}, nil

	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", ai.LLMProvider)
	}
}

// modelGenerator adapts a goframe model.
type modelGenerator struct {
	model llms.Model
}

// NewModelGenerator wraps any goframe llms.Model.
func NewModelGenerator(model llms.Model) Generator {
	return &modelGenerator{model: model}
}

func (g *modelGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	return llms.GenerateFromSinglePrompt(ctx, g.model, prompt)
}

// genaiGenerator talks to Vertex AI through the genai SDK.
type genaiGenerator struct {
	client *genai.Client
	model  string
}

func (g *genaiGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	if err != nil {
		return "", err
	}
	if resp == nil || len(resp.Candidates) == 0 {
		if resp != nil && resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
			return "", fmt.Errorf("prompt blocked: %s", resp.PromptFeedback.BlockReason)
		}
		return "", errors.New("response has no candidates")
	}
	return resp.Text(), nil
}

type unavailableGenerator struct {
	err error
}

func (g unavailableGenerator) Generate(context.Context, string) (string, error) {
	return "", g.err
}

func newOllamaHTTPClient() *http.Client {
	return &http.Client{
		Transport: &http.Transport{
			DialContext: (&net.Dialer{
				Timeout:   30 * time.Second,
				KeepAlive: 30 * time.Second,
			}).DialContext,
			MaxIdleConns:        100,
			MaxConnsPerHost:     10,
			IdleConnTimeout:     90 * time.Second,
			TLSHandshakeTimeout: 10 * time.Second,
		},
		Timeout: 15 * time.Minute,
	}
}

// ProviderOf maps a configured provider name to the prompt variant it uses.
func ProviderOf(name string) ModelProvider {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return DefaultProvider
	}
	return ModelProvider(name)
}
