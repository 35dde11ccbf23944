package api

import (
	"github.com/olusolaa/cloud-resource-api/internal/core/domain"
	"github.com/olusolaa/cloud-resource-api/internal/core/ports"
	"github.com/olusolaa/cloud-resource-api/internal/core/resource"
	"github.com/olusolaa/cloud-resource-api/internal/core/router"
)

func blockStoreOf(req *resource.Request) (ports.BlockStoreService, error) {
	p, err := provider(req)
	if err != nil {
		return nil, err
	}
	return p.BlockStore(), nil
}

func registerBlockStore(r *router.Router, deps Deps) error {
	summary, err := resource.SummarySingleton(domain.KindBlockStore, resource.Links{
		"volumes":   "volume-list",
		"snapshots": "snapshot-list",
	})
	if err != nil {
		return err
	}
	if err := r.Register("block_store", summary, "block_store"); err != nil {
		return err
	}

	volumes, err := resource.NewHandler(resource.Definition[*domain.Volume]{
		Kind:         domain.KindVolume,
		Capabilities: resource.Mutable,
		Retrieval:    resource.RetrieveDirect,
		List: func(req *resource.Request) ([]*domain.Volume, error) {
			b, err := blockStoreOf(req)
			if err != nil {
				return nil, err
			}
			return b.ListVolumes(req.Context())
		},
		Get: func(req *resource.Request, id string) (*domain.Volume, error) {
			b, err := blockStoreOf(req)
			if err != nil {
				return nil, err
			}
			return b.GetVolume(req.Context(), id)
		},
		NewInput: newInput[domain.VolumeSpec](),
		Create: func(req *resource.Request, input any) (*domain.Volume, error) {
			spec, err := inputAs[domain.VolumeSpec](input)
			if err != nil {
				return nil, err
			}
			b, err := blockStoreOf(req)
			if err != nil {
				return nil, err
			}
			return b.CreateVolume(req.Context(), spec)
		},
		Delete: func(req *resource.Request, current *domain.Volume) error {
			b, err := blockStoreOf(req)
			if err != nil {
				return err
			}
			return b.DeleteVolume(req.Context(), current.ID)
		},
		Permission: deps.permission(),
	})
	if err != nil {
		return err
	}
	if err := r.Register("block_store/volumes", volumes, "volume"); err != nil {
		return err
	}

	snapshots, err := resource.NewHandler(resource.Definition[*domain.Snapshot]{
		Kind:         domain.KindSnapshot,
		Capabilities: resource.Mutable,
		Retrieval:    resource.RetrieveDirect,
		List: func(req *resource.Request) ([]*domain.Snapshot, error) {
			b, err := blockStoreOf(req)
			if err != nil {
				return nil, err
			}
			return b.ListSnapshots(req.Context())
		},
		Get: func(req *resource.Request, id string) (*domain.Snapshot, error) {
			b, err := blockStoreOf(req)
			if err != nil {
				return nil, err
			}
			return b.GetSnapshot(req.Context(), id)
		},
		NewInput: newInput[domain.SnapshotSpec](),
		Create: func(req *resource.Request, input any) (*domain.Snapshot, error) {
			spec, err := inputAs[domain.SnapshotSpec](input)
			if err != nil {
				return nil, err
			}
			b, err := blockStoreOf(req)
			if err != nil {
				return nil, err
			}
			return b.CreateSnapshot(req.Context(), spec)
		},
		Delete: func(req *resource.Request, current *domain.Snapshot) error {
			b, err := blockStoreOf(req)
			if err != nil {
				return err
			}
			return b.DeleteSnapshot(req.Context(), current.ID)
		},
		Permission: deps.permission(),
	})
	if err != nil {
		return err
	}
	return r.Register("block_store/snapshots", snapshots, "snapshot")
}
