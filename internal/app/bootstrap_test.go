package app

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olusolaa/cloud-resource-api/internal/config"
	"github.com/olusolaa/cloud-resource-api/internal/errors"
	"github.com/olusolaa/cloud-resource-api/internal/log"
)

func memoryViper() *viper.Viper {
	v := viper.New()
	v.Set("platform.type", "memory")
	v.Set("settings.log_level", "error")
	return v
}

func TestLoadConfigDecodesDurationsAndLists(t *testing.T) {
	v := memoryViper()
	v.Set("server.read_timeout", "5s")
	v.Set("platform.memory.access_keys", "AKIDONE:one,AKIDTWO:two")

	cfg, err := LoadConfig(context.Background(), v)
	require.NoError(t, err)
	assert.Equal(t, 5*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, []string{"AKIDONE:one", "AKIDTWO:two"}, cfg.Platform.Memory.AccessKeys)
	assert.Equal(t, "/api/v1", cfg.Server.BasePath)
	assert.Equal(t, map[string]string{"AKIDONE": "one", "AKIDTWO": "two"}, accessKeyPairs(cfg.Platform.Memory.AccessKeys))
}

func TestLoadConfigAppliesProtectedTagOverride(t *testing.T) {
	v := memoryViper()
	v.Set(ProtectedTagFlag, "managed-by=cloud-api")

	cfg, err := LoadConfig(context.Background(), v)
	require.NoError(t, err)
	assert.Equal(t, "managed-by", cfg.Permissions.ProtectedTagKey)
	assert.Equal(t, "cloud-api", cfg.Permissions.ProtectedTagValue)

	v.Set(ProtectedTagFlag, "=oops")
	_, err = LoadConfig(context.Background(), v)
	assert.True(t, errors.Is(err, errors.CodeConfigValidation))
}

func TestLoadConfigRejectsUnknownPlatform(t *testing.T) {
	v := memoryViper()
	v.Set("platform.type", "gcp")
	_, err := LoadConfig(context.Background(), v)
	assert.True(t, errors.Is(err, errors.CodeConfigValidation))
}

func TestBuildServesAPIAndMetrics(t *testing.T) {
	application, err := BuildApplicationFromViper(context.Background(), memoryViper())
	require.NoError(t, err)
	defer application.Close()

	get := func(path string) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		application.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "http://api.test"+path, nil))
		return rec
	}

	rec := get("/api/v1/compute/regions/")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "http://api.test/api/v1/compute/regions/us-east-1/")

	rec = get("/api/v1/nowhere/")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "RESOURCE_NOT_FOUND")

	rec = get("/metrics")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `route="region-list"`)
	assert.Contains(t, rec.Body.String(), `cloudapi_request_total{code="404",method="GET",route="unmatched"} 1`)
}

func TestBuildWithDatabase(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Platform.Type = config.PlatformMemory
	cfg.Database.URL = "sqlite:" + filepath.Join(t.TempDir(), "apps.db")

	application, err := Build(context.Background(), cfg, log.NewNop())
	require.NoError(t, err)
	defer application.Close()
	require.NoError(t, application.Migrate(context.Background()))

	body := strings.NewReader(`{"slug": "galaxy", "name": "Galaxy"}`)
	req := httptest.NewRequest(http.MethodPost, "http://api.test/api/v1/applications/", body)
	rec := httptest.NewRecorder()
	application.Handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
}

func TestMigrateWithoutDatabase(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Platform.Type = config.PlatformMemory
	application, err := Build(context.Background(), cfg, log.NewNop())
	require.NoError(t, err)
	assert.True(t, errors.Is(application.Migrate(context.Background()), errors.CodeConfigValidation))
}

func TestReportRoutes(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Platform.Type = config.PlatformMemory
	application, err := Build(context.Background(), cfg, log.NewNop())
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, application.ReportRoutes(context.Background(), "json", true, &buf))
	assert.Contains(t, buf.String(), `"name": "instance-reboot"`)
	assert.Contains(t, buf.String(), `"/api/v1/compute/regions/{region_pk:[^/.]+}/zones/"`)

	assert.Error(t, application.ReportRoutes(context.Background(), "yaml", true, &buf))
}

func TestParseTagOverride(t *testing.T) {
	key, value, err := parseTagOverride(" managed-by = cloud-api ")
	require.NoError(t, err)
	assert.Equal(t, "managed-by", key)
	assert.Equal(t, "cloud-api", value)

	key, value, err = parseTagOverride("owner")
	require.NoError(t, err)
	assert.Equal(t, "owner", key)
	assert.Empty(t, value)
}
