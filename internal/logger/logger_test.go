package logger

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitLoggerWithWriterJSON(t *testing.T) {
	var buf bytes.Buffer
	config := NewConfig("info", "json", "life-rpg", "test", "dev", false)
	InitLoggerWithWriter(config, &buf)

	Info("hello", "key", "value")

	out := buf.String()
	assert.Contains(t, out, `"msg":"hello"`)
	assert.Contains(t, out, `"service":"life-rpg"`)
	assert.Contains(t, out, `"key":"value"`)
}

func TestLogLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	config := NewConfig("warn", "text", "life-rpg", "test", "dev", false)
	InitLoggerWithWriter(config, &buf)

	Info("should be dropped")
	Warn("should appear")

	out := buf.String()
	assert.NotContains(t, out, "should be dropped")
	assert.Contains(t, out, "should appear")
}

func TestRequestIDRoundTrip(t *testing.T) {
	id := GenerateRequestID()
	require.NotEmpty(t, id)

	ctx := WithRequestID(context.Background(), id)
	got, ok := RequestIDFromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, id, got)

	_, ok = RequestIDFromContext(context.Background())
	assert.False(t, ok)
}

func TestFromContextIncludesRequestID(t *testing.T) {
	var buf bytes.Buffer
	InitLoggerWithWriter(NewConfig("info", "json", "life-rpg", "test", "dev", false), &buf)

	ctx := WithRequestID(context.Background(), "req-123")
	FromContext(ctx).Info("tagged")

	assert.True(t, strings.Contains(buf.String(), `"request_id":"req-123"`))
}
