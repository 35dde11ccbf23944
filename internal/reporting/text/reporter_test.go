package text

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olusolaa/cloud-resource-api/internal/core/domain"
	"github.com/olusolaa/cloud-resource-api/internal/core/resource"
	"github.com/olusolaa/cloud-resource-api/internal/core/router"
	"github.com/olusolaa/cloud-resource-api/internal/log"
)

func testRoutes(t *testing.T) []router.Route {
	r := router.NewSimpleRouter()
	require.NoError(t, r.Register("compute/regions", resource.MustHandler(resource.Definition[*domain.Region]{
		Kind:         domain.KindRegion,
		Capabilities: resource.ReadOnly,
		List:         func(*resource.Request) ([]*domain.Region, error) { return nil, nil },
		Get:          func(*resource.Request, string) (*domain.Region, error) { return nil, nil },
	}), "region"))
	require.NoError(t, r.Register("health", resource.NewEndpoint(domain.KindHealth, func(*resource.Request) (any, error) {
		return nil, nil
	}), "health"))
	return r.AllRoutes()
}

func TestReportPrintsTable(t *testing.T) {
	var buf bytes.Buffer
	rep := NewReporter(Config{NoColor: true, BasePath: "/api/v1"}, &buf, log.NewNop())

	require.NoError(t, rep.Report(context.Background(), testRoutes(t)))
	out := buf.String()
	assert.Contains(t, out, "region-list")
	assert.Contains(t, out, "/api/v1/compute/regions/{pk:[^/.]+}/")
	assert.Contains(t, out, "health-list")
	assert.Regexp(t, `Total Routes:\s+3`, out)
	assert.Regexp(t, `Detail Routes:\s+1`, out)
}

func TestReportEmpty(t *testing.T) {
	var buf bytes.Buffer
	rep := NewReporter(Config{NoColor: true}, &buf, log.NewNop())
	require.NoError(t, rep.Report(context.Background(), nil))
	assert.Equal(t, "No routes registered.\n", buf.String())
}

func TestReportHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	rep := NewReporter(Config{NoColor: true}, &bytes.Buffer{}, log.NewNop())
	assert.ErrorIs(t, rep.Report(ctx, testRoutes(t)), context.Canceled)
}
