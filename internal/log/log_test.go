package log

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/olusolaa/cloud-resource-api/internal/errors"
)

func TestNewLogger_RejectsUnknownLevel(t *testing.T) {
	_, err := NewLoggerWithWriter(Config{Level: "loud", Format: FormatText}, &bytes.Buffer{})
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeConfigValidation, apperrors.GetCode(err))
}

func TestJSONLogger_ErrorFields(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewLoggerWithWriter(Config{Level: LevelDebug, Format: FormatJSON}, &buf)
	require.NoError(t, err)

	logger.WithFields(map[string]any{"route": "region-list"}).
		Errorf(context.Background(), apperrors.NotFound("Region", "x"), "request failed for %s", "x")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "request failed for x", entry["msg"])
	assert.Equal(t, "region-list", entry["route"])
	assert.Equal(t, string(apperrors.CodeResourceNotFound), entry["error_code"])
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewLoggerWithWriter(Config{Level: LevelWarn, Format: FormatText}, &buf)
	require.NoError(t, err)

	logger.Infof(context.Background(), "hidden")
	assert.Empty(t, buf.String())

	logger.Warnf(context.Background(), "shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestContextFieldsAndService(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewLoggerWithWriter(Config{Level: LevelInfo, Format: FormatJSON, Service: "cloud-api"}, &buf)
	require.NoError(t, err)

	ctx := ContextWithFields(context.Background(), map[string]any{"request_id": "abc"})
	ctx = ContextWithFields(ctx, map[string]any{"route": "instance-list"})
	logger.Infof(ctx, "served")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "cloud-api", entry["service"])
	assert.Equal(t, "abc", entry["request_id"])
	assert.Equal(t, "instance-list", entry["route"])
}

func TestContextWithFields_DoesNotMutateParent(t *testing.T) {
	parent := ContextWithFields(context.Background(), map[string]any{"a": 1})
	_ = ContextWithFields(parent, map[string]any{"b": 2})

	assert.Equal(t, map[string]any{"a": 1}, FieldsFromContext(parent))
}
