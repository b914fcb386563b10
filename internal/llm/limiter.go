package llm

import (
	"context"

	"golang.org/x/time/rate"
)

// RateLimited wraps a client so outstanding completion calls respect the
// provider's rate limits. Wait blocks until a token is available or the
// context is cancelled; a cancelled wait surfaces as the per-candidate
// failure of whichever call was pending.
type RateLimited struct {
	inner   LLMClient
	limiter *rate.Limiter
}

func NewRateLimited(inner LLMClient, rps float64, burst int) *RateLimited {
	return &RateLimited{
		inner:   inner,
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
	}
}

func (r *RateLimited) Generate(ctx context.Context, prompt string) (string, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return "", err
	}
	return r.inner.Generate(ctx, prompt)
}

func (r *RateLimited) GenerateWithSystem(ctx context.Context, system, prompt string) (string, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return "", err
	}
	return r.inner.GenerateWithSystem(ctx, system, prompt)
}

// GenerateStructured delegates to the wrapped client's JSON mode when it has
// one, otherwise plain generation applies.
func (r *RateLimited) GenerateStructured(ctx context.Context, system, prompt string) (string, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return "", err
	}
	if sc, ok := r.inner.(StructuredClient); ok {
		return sc.GenerateStructured(ctx, system, prompt)
	}
	return r.inner.GenerateWithSystem(ctx, system, prompt)
}
