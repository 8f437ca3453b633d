package google

import (
	"context"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/arohiabhilasha/FocusFlow/pkg/auth"
)

// DefaultModel is the Gemini model used when none is configured.
const DefaultModel = "gemini-3-flash-preview"

// NewClient creates a Gemini client authenticated with whatever credentials
// auth.ClientOptions finds. Callers must Close it.
func NewClient(ctx context.Context, apiKey string) (*genai.Client, error) {
	opts, err := auth.ClientOptions(ctx, apiKey)
	if err != nil {
		return nil, err
	}
	return newClient(ctx, opts...)
}

func newClient(ctx context.Context, opts ...option.ClientOption) (*genai.Client, error) {
	client, err := genai.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("unable to create Gemini client: %w", err)
	}
	return client, nil
}
