// Package gemini provides the Google Gemini implementation of the chat
// responder.
package gemini

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/genai"

	"magang_backend/internal/feature/chat/usecase"
	"magang_backend/internal/shared/ratelimiter"
)

// DefaultModel is the Gemini model used when none is configured.
const DefaultModel = "gemini-2.5-flash"

// requestsPerMinute caps outbound Gemini calls below the free-tier quota.
const requestsPerMinute = 15

// Responder generates replies through the Gemini API.
type Responder struct {
	client  *genai.Client
	model   string
	limiter ratelimiter.Limiter
}

// Compile-time check that Responder implements usecase.Responder.
var _ usecase.Responder = (*Responder)(nil)

// NewResponder creates a Responder using application default credentials.
// The GOOGLE_GENAI_USE_VERTEXAI, GOOGLE_CLOUD_PROJECT and
// GOOGLE_CLOUD_LOCATION environment variables configure the client.
func NewResponder(ctx context.Context, model string) (*Responder, error) {
	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	if model == "" {
		model = DefaultModel
	}
	return &Responder{
		client:  client,
		model:   model,
		limiter: ratelimiter.NewRateLimiter(requestsPerMinute, time.Minute),
	}, nil
}

// Respond sends the prompt and returns the model's text reply.
func (r *Responder) Respond(ctx context.Context, prompt string) (string, error) {
	r.limiter.WaitIfNeeded()
	resp, err := r.client.Models.GenerateContent(ctx, r.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("gemini API request failed: %w", err)
	}
	return resp.Text(), nil
}
