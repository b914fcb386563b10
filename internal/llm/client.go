package llm

import (
	"context"
)

// LLMClient issues one completion per call. Generate is used for free-form
// prompts; GenerateWithSystem keeps the analyst persona separate from the
// per-candidate content so structured-output contracts stay stable.
type LLMClient interface {
	Generate(ctx context.Context, prompt string) (string, error)
	GenerateWithSystem(ctx context.Context, system, prompt string) (string, error)
}

type EmbedderClient interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

type RerankerClient interface {
	Rank(ctx context.Context, query string, documents []string) ([]int, error)
}
