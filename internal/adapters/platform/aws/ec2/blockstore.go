package ec2

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"

	"github.com/olusolaa/cloud-resource-api/internal/core/domain"
	apperrors "github.com/olusolaa/cloud-resource-api/internal/errors"
)

// BlockStore implements ports.BlockStoreService over EBS.
type BlockStore struct {
	*Service
}

func (b *BlockStore) ListVolumes(ctx context.Context) ([]*domain.Volume, error) {
	paginator := ec2.NewDescribeVolumesPaginator(b.client, &ec2.DescribeVolumesInput{})
	volumes := []*domain.Volume{}
	for paginator.HasMorePages() {
		if err := b.wait(ctx); err != nil {
			return nil, err
		}
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, b.fail(ctx, "EBS volume", "", err)
		}
		for _, v := range page.Volumes {
			volumes = append(volumes, mapVolume(v))
		}
	}
	return volumes, nil
}

func (b *BlockStore) GetVolume(ctx context.Context, id string) (*domain.Volume, error) {
	if err := b.wait(ctx); err != nil {
		return nil, err
	}
	out, err := b.client.DescribeVolumes(ctx, &ec2.DescribeVolumesInput{VolumeIds: []string{id}})
	if err != nil {
		return nil, b.fail(ctx, "EBS volume", id, err)
	}
	if len(out.Volumes) == 0 {
		return nil, apperrors.NotFound(domain.KindVolume.String(), id)
	}
	return mapVolume(out.Volumes[0]), nil
}

func (b *BlockStore) CreateVolume(ctx context.Context, spec domain.VolumeSpec) (*domain.Volume, error) {
	input := &ec2.CreateVolumeInput{
		AvailabilityZone:  aws.String(spec.Zone),
		Size:              aws.Int32(spec.SizeGB),
		TagSpecifications: tagSpecifications(types.ResourceTypeVolume, spec.Name, spec.Tags),
	}
	if spec.VolumeType != "" {
		input.VolumeType = types.VolumeType(spec.VolumeType)
	}
	if spec.SnapshotID != "" {
		input.SnapshotId = aws.String(spec.SnapshotID)
	}
	if err := b.wait(ctx); err != nil {
		return nil, err
	}
	out, err := b.client.CreateVolume(ctx, input)
	if err != nil {
		return nil, b.fail(ctx, "EBS volume", spec.Name, err)
	}
	return mapVolume(types.Volume{
		VolumeId:         out.VolumeId,
		Size:             out.Size,
		AvailabilityZone: out.AvailabilityZone,
		State:            out.State,
		VolumeType:       out.VolumeType,
		SnapshotId:       out.SnapshotId,
		CreateTime:       out.CreateTime,
		Tags:             out.Tags,
	}), nil
}

func (b *BlockStore) DeleteVolume(ctx context.Context, id string) error {
	if err := b.wait(ctx); err != nil {
		return err
	}
	if _, err := b.client.DeleteVolume(ctx, &ec2.DeleteVolumeInput{VolumeId: aws.String(id)}); err != nil {
		return b.fail(ctx, "EBS volume", id, err)
	}
	return nil
}

// ListSnapshots lists snapshots owned by the caller only.
func (b *BlockStore) ListSnapshots(ctx context.Context) ([]*domain.Snapshot, error) {
	paginator := ec2.NewDescribeSnapshotsPaginator(b.client, &ec2.DescribeSnapshotsInput{OwnerIds: []string{"self"}})
	snapshots := []*domain.Snapshot{}
	for paginator.HasMorePages() {
		if err := b.wait(ctx); err != nil {
			return nil, err
		}
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, b.fail(ctx, "EBS snapshot", "", err)
		}
		for _, s := range page.Snapshots {
			snapshots = append(snapshots, mapSnapshot(s))
		}
	}
	return snapshots, nil
}

func (b *BlockStore) GetSnapshot(ctx context.Context, id string) (*domain.Snapshot, error) {
	if err := b.wait(ctx); err != nil {
		return nil, err
	}
	out, err := b.client.DescribeSnapshots(ctx, &ec2.DescribeSnapshotsInput{SnapshotIds: []string{id}})
	if err != nil {
		return nil, b.fail(ctx, "EBS snapshot", id, err)
	}
	if len(out.Snapshots) == 0 {
		return nil, apperrors.NotFound(domain.KindSnapshot.String(), id)
	}
	return mapSnapshot(out.Snapshots[0]), nil
}

func (b *BlockStore) CreateSnapshot(ctx context.Context, spec domain.SnapshotSpec) (*domain.Snapshot, error) {
	input := &ec2.CreateSnapshotInput{
		VolumeId:          aws.String(spec.VolumeID),
		TagSpecifications: tagSpecifications(types.ResourceTypeSnapshot, spec.Name, spec.Tags),
	}
	if spec.Description != "" {
		input.Description = aws.String(spec.Description)
	}
	if err := b.wait(ctx); err != nil {
		return nil, err
	}
	out, err := b.client.CreateSnapshot(ctx, input)
	if err != nil {
		return nil, b.fail(ctx, "EBS snapshot", spec.Name, err)
	}
	return mapSnapshot(types.Snapshot{
		SnapshotId:  out.SnapshotId,
		Description: out.Description,
		VolumeId:    out.VolumeId,
		VolumeSize:  out.VolumeSize,
		State:       out.State,
		StartTime:   out.StartTime,
		Tags:        out.Tags,
	}), nil
}

func (b *BlockStore) DeleteSnapshot(ctx context.Context, id string) error {
	if err := b.wait(ctx); err != nil {
		return err
	}
	if _, err := b.client.DeleteSnapshot(ctx, &ec2.DeleteSnapshotInput{SnapshotId: aws.String(id)}); err != nil {
		return b.fail(ctx, "EBS snapshot", id, err)
	}
	return nil
}
