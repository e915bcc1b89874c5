package pipeline

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/dgallion1/resumeforge/internal/llm"
)

// MaxRetries is the number of attempts made for a retryable LLM call.
const MaxRetries = 3

// IsRetryable checks if an error is worth retrying.
func IsRetryable(err error) bool {
	return llm.IsRetryable(err)
}

// Backoff returns a duration for attempt n (0-indexed) with jitter.
func Backoff(attempt int) time.Duration {
	base := time.Duration(1<<uint(attempt)) * time.Second
	if base > 30*time.Second {
		base = 30 * time.Second
	}
	jitter := time.Duration(rand.Int64N(int64(base) / 2))
	return base + jitter
}

// withRetry calls fn up to MaxRetries times while it fails with a
// retryable error, sleeping backoff(attempt) in between.
func withRetry[T any](ctx context.Context, log *slog.Logger, op string, backoff func(int) time.Duration, fn func(context.Context) (T, error)) (T, error) {
	var (
		out T
		err error
	)
	for attempt := range MaxRetries {
		out, err = fn(ctx)
		if err == nil || !IsRetryable(err) || attempt == MaxRetries-1 {
			return out, err
		}
		log.Warn("retryable llm error", "op", op, "attempt", attempt, "error", err)
		select {
		case <-time.After(backoff(attempt)):
		case <-ctx.Done():
			return out, ctx.Err()
		}
	}
	return out, err
}
