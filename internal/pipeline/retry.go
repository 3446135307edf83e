package pipeline

import (
	"context"
	"errors"
	"math/rand"
	"time"

	"github.com/crepdde/pddepack/internal/assemble"
	"github.com/crepdde/pddepack/internal/dispatch"
	"github.com/crepdde/pddepack/internal/extool"
)

const MaxRetries = 3

// IsRetryable reports whether an external-tool failure is worth retrying.
// Only timeouts qualify: a nonzero exit on the same input will fail again.
func IsRetryable(err error) bool {
	var toolErr *extool.Error
	return errors.As(err, &toolErr) && toolErr.Timeout
}

// Backoff returns a duration for attempt n (0-indexed) with jitter.
func Backoff(attempt int) time.Duration {
	base := time.Duration(1<<uint(attempt)) * time.Second
	if base > 30*time.Second {
		base = 30 * time.Second
	}
	jitter := time.Duration(rand.Int63n(int64(base) / 2))
	return base + jitter
}

// WithRetryMerger wraps a merger with the retry policy.
func WithRetryMerger(m assemble.Merger) assemble.Merger {
	return retryMerger{m}
}

type retryMerger struct {
	m assemble.Merger
}

func (r retryMerger) Merge(ctx context.Context, pdfs [][]byte) ([]byte, error) {
	var data []byte
	err := withRetry(ctx, func() error {
		var mergeErr error
		data, mergeErr = r.m.Merge(ctx, pdfs)
		return mergeErr
	})
	return data, err
}

// WithRetryConverter wraps a converter with the retry policy.
func WithRetryConverter(c dispatch.Converter) dispatch.Converter {
	return retryConverter{c}
}

type retryConverter struct {
	c dispatch.Converter
}

func (r retryConverter) Convert(ctx context.Context, htmlDoc []byte) ([]byte, error) {
	var data []byte
	err := withRetry(ctx, func() error {
		var convErr error
		data, convErr = r.c.Convert(ctx, htmlDoc)
		return convErr
	})
	return data, err
}

func withRetry(ctx context.Context, fn func() error) error {
	var lastErr error
	for attempt := 0; attempt < MaxRetries; attempt++ {
		lastErr = fn()
		if lastErr == nil || !IsRetryable(lastErr) {
			return lastErr
		}
		if attempt == MaxRetries-1 {
			break
		}
		select {
		case <-time.After(Backoff(attempt)):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return lastErr
}
