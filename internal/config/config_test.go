package config

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olusolaa/cloud-resource-api/internal/errors"
)

func TestDefaultConfigIsValid(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate(context.Background()))
}

func TestValidateReportsEveryField(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Settings.LogLevel = "verbose"
	cfg.Platform.Type = "gcp"
	cfg.Server.BasePath = "api"

	err := cfg.Validate(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.CodeConfigValidation))
	msg, suggestion, userFacing := errors.GetUserFacingMessage(err)
	assert.True(t, userFacing)
	assert.NotEmpty(t, suggestion)
	assert.Contains(t, msg, "Config.Settings.LogLevel")
	assert.Contains(t, msg, "Config.Platform.Type")
	assert.Contains(t, msg, "Config.Server.BasePath")
}

func TestProtectedTagValueNeedsKey(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Permissions.ProtectedTagValue = "cloud-api"
	assert.Error(t, cfg.Validate(context.Background()))

	cfg.Permissions.ProtectedTagKey = "managed-by"
	assert.NoError(t, cfg.Validate(context.Background()))
}

func TestAWSEndpointMustBeURL(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Platform.AWS.Endpoint = "not a url"
	assert.Error(t, cfg.Validate(context.Background()))

	cfg.Platform.AWS.Endpoint = "http://localhost:4566"
	assert.NoError(t, cfg.Validate(context.Background()))
}

func TestMemoryAccessKeysNeedSeparator(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Platform.Memory.AccessKeys = []string{"AKIDEXAMPLE"}
	assert.Error(t, cfg.Validate(context.Background()))

	cfg.Platform.Memory.AccessKeys = []string{"AKIDEXAMPLE:secret"}
	assert.NoError(t, cfg.Validate(context.Background()))
}
