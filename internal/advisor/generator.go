// Package advisor wraps the language-model collaborator behind a small interface so the
// calculation engine and the insights writer can be exercised without network access.
package advisor

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/time/rate"
	"google.golang.org/genai"

	"github.com/ndewijer/Property-Investment-Calculator-Backend/internal/apperrors"
	"github.com/ndewijer/Property-Investment-Calculator-Backend/internal/logging"
)

const (
	DefaultModel     = "gemini-2.5-flash"
	DefaultTimeout   = 15 * time.Second
	DefaultRateLimit = 5 // requests per second
)

// TextGenerator produces free text from a system prompt and a user prompt.
// Implementations must honour ctx cancellation.
type TextGenerator interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// Unavailable is the generator used when no API key is configured.
// Every call fails immediately, which routes callers onto their fallback paths.
type Unavailable struct{}

// Complete always returns ErrGeneratorUnavailable.
func (Unavailable) Complete(context.Context, string, string) (string, error) {
	return "", apperrors.ErrGeneratorUnavailable
}

// GeminiGenerator implements TextGenerator on top of the Google Gemini API.
// Calls share a token-bucket limiter; waiting on it counts against the caller's deadline.
type GeminiGenerator struct {
	client  *genai.Client
	model   string
	limiter *rate.Limiter
	logger  *logging.Logger
}

// GeminiOption configures the generator
type GeminiOption func(*GeminiGenerator)

// WithModel sets the model to use
func WithModel(model string) GeminiOption {
	return func(g *GeminiGenerator) {
		if model != "" {
			g.model = model
		}
	}
}

// WithRateLimit sets the rate limit
func WithRateLimit(requestsPerSecond int) GeminiOption {
	return func(g *GeminiGenerator) {
		if requestsPerSecond > 0 {
			g.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond)
		}
	}
}

// WithLogger sets the logger
func WithLogger(logger *logging.Logger) GeminiOption {
	return func(g *GeminiGenerator) {
		g.logger = logger
	}
}

// NewGeminiGenerator creates a Gemini-backed generator.
func NewGeminiGenerator(ctx context.Context, apiKey string, opts ...GeminiOption) (*GeminiGenerator, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	g := &GeminiGenerator{
		client:  client,
		model:   DefaultModel,
		limiter: rate.NewLimiter(rate.Limit(DefaultRateLimit), DefaultRateLimit),
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(g)
	}

	return g, nil
}

// Complete sends one completion request. No retries are attempted.
func (g *GeminiGenerator) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	if err := g.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limiter: %w", err)
	}

	config := &genai.GenerateContentConfig{}
	if systemPrompt != "" {
		config.SystemInstruction = genai.NewContentFromText(systemPrompt, genai.RoleUser)
	}

	g.logger.Debug("generating content", "model", g.model)

	result, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(userPrompt), config)
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	return extractText(result)
}

func extractText(result *genai.GenerateContentResponse) (string, error) {
	if result == nil || len(result.Candidates) == 0 || result.Candidates[0].Content == nil {
		return "", apperrors.ErrEmptyAdvisorResponse
	}

	var sb strings.Builder
	for _, part := range result.Candidates[0].Content.Parts {
		if part != nil && part.Text != "" {
			sb.WriteString(part.Text)
		}
	}
	if sb.Len() == 0 {
		return "", apperrors.ErrEmptyAdvisorResponse
	}

	return sb.String(), nil
}

// CompleteWithTimeout runs one generator call bounded by timeout.
// A nil generator behaves like Unavailable; blank output is reported as ErrEmptyAdvisorResponse.
func CompleteWithTimeout(ctx context.Context, generator TextGenerator, timeout time.Duration, systemPrompt, userPrompt string) (string, error) {
	if generator == nil {
		return "", apperrors.ErrGeneratorUnavailable
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	callCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	text, err := generator.Complete(callCtx, systemPrompt, userPrompt)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(text) == "" {
		return "", apperrors.ErrEmptyAdvisorResponse
	}

	return text, nil
}
