package observability

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testHandler captures log records for testing.
type testHandler struct {
	buf   *bytes.Buffer
	level slog.Level
	attrs []slog.Attr
}

func newTestHandler() *testHandler {
	return &testHandler{
		buf:   &bytes.Buffer{},
		level: slog.LevelDebug,
	}
}

func (h *testHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

func (h *testHandler) Handle(_ context.Context, r slog.Record) error {
	data := map[string]any{
		"level": r.Level.String(),
		"msg":   r.Message,
	}
	for _, attr := range h.attrs {
		data[attr.Key] = attr.Value.Any()
	}
	r.Attrs(func(a slog.Attr) bool {
		data[a.Key] = a.Value.Any()
		return true
	})
	return json.NewEncoder(h.buf).Encode(data)
}

func (h *testHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	newH := &testHandler{
		buf:   h.buf,
		level: h.level,
		attrs: make([]slog.Attr, len(h.attrs)+len(attrs)),
	}
	copy(newH.attrs, h.attrs)
	copy(newH.attrs[len(h.attrs):], attrs)
	return newH
}

func (h *testHandler) WithGroup(_ string) slog.Handler {
	return h
}

// decode parses the single JSON record the handler captured.
func (h *testHandler) decode(t *testing.T) map[string]any {
	t.Helper()
	var data map[string]any
	dec := json.NewDecoder(strings.NewReader(h.buf.String()))
	require.NoError(t, dec.Decode(&data))
	return data
}

func TestLogScheduled(t *testing.T) {
	h := newTestHandler()
	logger := slog.New(h)

	LogScheduled(logger, 7, "TIMER", 1, 3)

	data := h.decode(t)
	assert.Equal(t, "DEBUG", data["level"])
	assert.Equal(t, "operation scheduled", data["msg"])
	assert.Equal(t, float64(7), data["op_id"])
	assert.Equal(t, "TIMER", data["kind"])
	assert.Equal(t, float64(1), data["trigger_id"])
	assert.Equal(t, float64(3), data["trace_depth"])
}

func TestLogDestroyed(t *testing.T) {
	h := newTestHandler()
	logger := slog.New(h)

	LogDestroyed(logger, 7, 4)

	data := h.decode(t)
	assert.Equal(t, "operation destroyed", data["msg"])
	assert.Equal(t, float64(7), data["op_id"])
	assert.Equal(t, float64(4), data["live_operations"])
}

func TestLogScopeUnderflow(t *testing.T) {
	h := newTestHandler()
	logger := slog.New(h)

	LogScopeUnderflow(logger)

	data := h.decode(t)
	assert.Equal(t, "WARN", data["level"])
	assert.Contains(t, data["msg"], "dispatch exit without matching enter")
}

func TestLogRecordError(t *testing.T) {
	h := newTestHandler()
	logger := slog.New(h)

	LogRecordError(logger, 9, errors.New("disk full"))

	data := h.decode(t)
	assert.Equal(t, "WARN", data["level"])
	assert.Equal(t, float64(9), data["op_id"])
	assert.Equal(t, "disk full", data["error"])
}

func TestLogHelpersNilLogger(t *testing.T) {
	assert.NotPanics(t, func() {
		LogScheduled(nil, 1, "TIMER", 0, 0)
		LogDestroyed(nil, 1, 0)
		LogScopeUnderflow(nil)
		LogRecordError(nil, 1, errors.New("x"))
	})
}
