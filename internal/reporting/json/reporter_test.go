package json

import (
	"bytes"
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/olusolaa/cloud-resource-api/internal/core/domain"
	"github.com/olusolaa/cloud-resource-api/internal/core/resource"
	"github.com/olusolaa/cloud-resource-api/internal/core/router"
	"github.com/olusolaa/cloud-resource-api/internal/log"
)

func TestReportEncodesRoutes(t *testing.T) {
	r := router.NewSimpleRouter()
	require.NoError(t, r.Register("block_store/volumes", resource.MustHandler(resource.Definition[*domain.Volume]{
		Kind:         domain.KindVolume,
		Capabilities: resource.Mutable,
		List:         func(*resource.Request) ([]*domain.Volume, error) { return nil, nil },
		Get:          func(*resource.Request, string) (*domain.Volume, error) { return nil, nil },
		NewInput:     func() any { return &domain.VolumeSpec{} },
		Create:       func(*resource.Request, any) (*domain.Volume, error) { return nil, nil },
		Delete:       func(*resource.Request, *domain.Volume) error { return nil },
	}), "volume"))

	var buf bytes.Buffer
	require.NoError(t, NewReporter(Config{BasePath: "/api/v1"}, &buf, log.NewNop()).Report(context.Background(), r.AllRoutes()))

	var got jsonReport
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	want := jsonReport{
		Total: 2,
		Routes: []jsonRoute{
			{Name: "volume-list", Pattern: "/api/v1/block_store/volumes/", Methods: []string{"GET", "POST"}, Basename: "volume", Kind: domain.KindVolume},
			{Name: "volume-detail", Pattern: "/api/v1/block_store/volumes/{pk:[^/.]+}/", Methods: []string{"DELETE", "GET"}, Basename: "volume", Kind: domain.KindVolume, Detail: true},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("route report mismatch (-want +got):\n%s", diff)
	}
}
