package telemetry

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit_EmptyDSNIsNoop(t *testing.T) {
	flush, err := Init(Config{}, slog.Default())
	require.NoError(t, err)
	require.NotNil(t, flush)
	assert.NotPanics(t, flush)
}

func TestInit_InvalidDSN(t *testing.T) {
	_, err := Init(Config{DSN: "::not a dsn"}, slog.Default())
	assert.Error(t, err)
}

func TestSpanAndCapture_WithoutClient(t *testing.T) {
	ctx, span := StartSpan(context.Background(), "tailor", map[string]string{"job_id": "j1"})
	require.NotNil(t, ctx)
	assert.NotPanics(t, func() {
		CaptureError(ctx, errors.New("boom"))
		CaptureError(ctx, nil)
		span.End(errors.New("boom"))
	})

	var nilSpan *Span
	assert.NotPanics(t, func() { nilSpan.End(nil) })
}
