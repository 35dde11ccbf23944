package memory

import (
	"context"

	"github.com/olusolaa/cloud-resource-api/internal/core/domain"
)

const defaultVolumeType = "gp3"

type blockStoreService struct{ c *Cloud }

func (s blockStoreService) ListVolumes(context.Context) ([]*domain.Volume, error) {
	s.c.mu.RLock()
	defer s.c.mu.RUnlock()
	return sorted(s.c.volumes, nil), nil
}

func (s blockStoreService) GetVolume(_ context.Context, id string) (*domain.Volume, error) {
	s.c.mu.RLock()
	defer s.c.mu.RUnlock()
	return lookup(s.c.volumes, domain.KindVolume, id)
}

func (s blockStoreService) CreateVolume(_ context.Context, spec domain.VolumeSpec) (*domain.Volume, error) {
	s.c.mu.Lock()
	defer s.c.mu.Unlock()
	if _, ok := s.c.zones[spec.Zone]; !ok {
		return nil, invalid("zone_id", "unknown zone %q", spec.Zone)
	}
	if spec.SnapshotID != "" {
		snap, ok := s.c.snapshots[spec.SnapshotID]
		if !ok {
			return nil, invalid("source_snapshot_id", "unknown snapshot %q", spec.SnapshotID)
		}
		if spec.SizeGB < snap.SizeGB {
			return nil, invalid("size", "size must be at least the snapshot size of %d GiB", snap.SizeGB)
		}
	}
	volumeType := spec.VolumeType
	if volumeType == "" {
		volumeType = defaultVolumeType
	}
	v := &domain.Volume{
		ID:         s.c.nextID("vol"),
		Name:       spec.Name,
		SizeGB:     spec.SizeGB,
		Zone:       spec.Zone,
		State:      "available",
		VolumeType: volumeType,
		SnapshotID: spec.SnapshotID,
		CreatedAt:  s.c.timestamp(),
		Tags:       cloneTags(spec.Tags),
	}
	s.c.volumes[v.ID] = v
	return clone(v), nil
}

func (s blockStoreService) DeleteVolume(_ context.Context, id string) error {
	s.c.mu.Lock()
	defer s.c.mu.Unlock()
	v, ok := s.c.volumes[id]
	if !ok {
		return lookupErr(domain.KindVolume, id)
	}
	if v.AttachedTo != "" {
		return conflict("volume %s is attached to %s", id, v.AttachedTo)
	}
	delete(s.c.volumes, id)
	return nil
}

func (s blockStoreService) ListSnapshots(context.Context) ([]*domain.Snapshot, error) {
	s.c.mu.RLock()
	defer s.c.mu.RUnlock()
	return sorted(s.c.snapshots, nil), nil
}

func (s blockStoreService) GetSnapshot(_ context.Context, id string) (*domain.Snapshot, error) {
	s.c.mu.RLock()
	defer s.c.mu.RUnlock()
	return lookup(s.c.snapshots, domain.KindSnapshot, id)
}

func (s blockStoreService) CreateSnapshot(_ context.Context, spec domain.SnapshotSpec) (*domain.Snapshot, error) {
	s.c.mu.Lock()
	defer s.c.mu.Unlock()
	v, ok := s.c.volumes[spec.VolumeID]
	if !ok {
		return nil, invalid("volume_id", "unknown volume %q", spec.VolumeID)
	}
	snap := &domain.Snapshot{
		ID:          s.c.nextID("snap"),
		Name:        spec.Name,
		Description: spec.Description,
		VolumeID:    v.ID,
		SizeGB:      v.SizeGB,
		State:       "completed",
		CreatedAt:   s.c.timestamp(),
		Tags:        cloneTags(spec.Tags),
	}
	s.c.snapshots[snap.ID] = snap
	return clone(snap), nil
}

func (s blockStoreService) DeleteSnapshot(_ context.Context, id string) error {
	s.c.mu.Lock()
	defer s.c.mu.Unlock()
	if _, ok := s.c.snapshots[id]; !ok {
		return lookupErr(domain.KindSnapshot, id)
	}
	delete(s.c.snapshots, id)
	return nil
}
