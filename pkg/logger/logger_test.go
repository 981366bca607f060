package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"stockroom/pkg/web"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func logLine(t *testing.T, ctx context.Context) map[string]any {
	t.Helper()
	var buf bytes.Buffer
	log := slog.New(NewContextHandler(slog.NewJSONHandler(&buf, nil)))
	log.InfoContext(ctx, "hello")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	return entry
}

func Test_ContextHandler_RequestID(t *testing.T) {
	t.Run("injected id is logged", func(t *testing.T) {
		ctx := web.WithRequestID(context.Background(), "req-42")
		entry := logLine(t, ctx)
		assert.Equal(t, "req-42", entry["request_id"])
	})

	t.Run("falls back to the router id", func(t *testing.T) {
		ctx := context.WithValue(context.Background(), middleware.RequestIDKey, "chi-7")
		entry := logLine(t, ctx)
		assert.Equal(t, "chi-7", entry["request_id"])
	})

	t.Run("no id, no attribute", func(t *testing.T) {
		entry := logLine(t, context.Background())
		_, ok := entry["request_id"]
		assert.False(t, ok)
	})
}
