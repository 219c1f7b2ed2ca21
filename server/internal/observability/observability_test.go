package observability

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsSnapshot(t *testing.T) {
	m := NewMetrics()
	m.RecordAttempt("primary")
	m.RecordFailure("primary", 40*time.Millisecond)
	m.RecordAttempt("offline")
	m.RecordSuccess("offline", 20*time.Millisecond)
	m.RecordAttempt("offline")
	m.RecordSuccess("offline", 40*time.Millisecond)

	snap := m.Snapshot()
	require.Len(t, snap, 2)
	assert.Equal(t, TierSnapshot{Tier: "offline", AttemptCount: 2, SuccessCount: 2, AverageDuration: 30}, snap[0])
	assert.Equal(t, TierSnapshot{Tier: "primary", AttemptCount: 1, FailureCount: 1, AverageDuration: 40}, snap[1])

	m.Reset()
	assert.Empty(t, m.Snapshot())
}

func TestRequestContext(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	reqCtx := NewRequestContext(logger, "generate", "sess-1")
	assert.NotEmpty(t, reqCtx.RequestID)

	reqCtx.Info("tier succeeded", slog.String(LogFieldTier, "offline"))
	out := buf.String()
	assert.Contains(t, out, "session_id=sess-1")
	assert.Contains(t, out, "operation=generate")
	assert.Contains(t, out, "tier=offline")

	ctx := WithRequestContext(context.Background(), reqCtx)
	got, ok := FromContext(ctx)
	require.True(t, ok)
	assert.Same(t, reqCtx, got)
	assert.Same(t, reqCtx, FromContextOrNew(ctx, "other"))
	assert.Equal(t, "other", FromContextOrNew(context.Background(), "other").Operation)
}
