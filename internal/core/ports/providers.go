package ports

import (
	"context"

	"github.com/olusolaa/cloud-resource-api/internal/core/domain"
)

// Provider is the per-credential handle over a cloud. Every method is a
// potentially slow remote call; implementations return AppErrors with
// CodeResourceNotFound for missing objects.
type Provider interface {
	Type() string
	Identity(ctx context.Context) (*domain.Identity, error)
	Compute() ComputeService
	Security() SecurityService
	Network() NetworkService
	BlockStore() BlockStoreService
	ObjectStore() ObjectStoreService
}

type ComputeService interface {
	ListRegions(ctx context.Context) ([]*domain.Region, error)
	GetRegion(ctx context.Context, id string) (*domain.Region, error)
	ListZones(ctx context.Context, regionID string) ([]*domain.Zone, error)
	ListInstanceTypes(ctx context.Context) ([]*domain.InstanceType, error)
	GetInstanceType(ctx context.Context, id string) (*domain.InstanceType, error)
	ListInstances(ctx context.Context) ([]*domain.Instance, error)
	GetInstance(ctx context.Context, id string) (*domain.Instance, error)
	CreateInstance(ctx context.Context, spec domain.InstanceSpec) (*domain.Instance, error)
	DeleteInstance(ctx context.Context, id string) error
	RebootInstance(ctx context.Context, id string) error
	StartInstance(ctx context.Context, id string) error
	StopInstance(ctx context.Context, id string) error
}

type SecurityService interface {
	ListKeyPairs(ctx context.Context) ([]*domain.KeyPair, error)
	GetKeyPair(ctx context.Context, id string) (*domain.KeyPair, error)
	CreateKeyPair(ctx context.Context, spec domain.KeyPairSpec) (*domain.KeyPair, error)
	DeleteKeyPair(ctx context.Context, id string) error
	ListSecurityGroups(ctx context.Context) ([]*domain.SecurityGroup, error)
	GetSecurityGroup(ctx context.Context, id string) (*domain.SecurityGroup, error)
	CreateSecurityGroup(ctx context.Context, spec domain.SecurityGroupSpec) (*domain.SecurityGroup, error)
	DeleteSecurityGroup(ctx context.Context, id string) error
	ListRules(ctx context.Context, groupID string) ([]*domain.SecurityGroupRule, error)
	CreateRule(ctx context.Context, groupID string, spec domain.RuleSpec) (*domain.SecurityGroupRule, error)
	DeleteRule(ctx context.Context, groupID string, ruleID string) error
}

type NetworkService interface {
	ListNetworks(ctx context.Context) ([]*domain.Network, error)
	GetNetwork(ctx context.Context, id string) (*domain.Network, error)
	CreateNetwork(ctx context.Context, spec domain.NetworkSpec) (*domain.Network, error)
	DeleteNetwork(ctx context.Context, id string) error
	ListSubnets(ctx context.Context, networkID string) ([]*domain.Subnet, error)
	GetSubnet(ctx context.Context, networkID string, id string) (*domain.Subnet, error)
	CreateSubnet(ctx context.Context, networkID string, spec domain.SubnetSpec) (*domain.Subnet, error)
	DeleteSubnet(ctx context.Context, networkID string, id string) error
}

type BlockStoreService interface {
	ListVolumes(ctx context.Context) ([]*domain.Volume, error)
	GetVolume(ctx context.Context, id string) (*domain.Volume, error)
	CreateVolume(ctx context.Context, spec domain.VolumeSpec) (*domain.Volume, error)
	DeleteVolume(ctx context.Context, id string) error
	ListSnapshots(ctx context.Context) ([]*domain.Snapshot, error)
	GetSnapshot(ctx context.Context, id string) (*domain.Snapshot, error)
	CreateSnapshot(ctx context.Context, spec domain.SnapshotSpec) (*domain.Snapshot, error)
	DeleteSnapshot(ctx context.Context, id string) error
}

type ObjectStoreService interface {
	ListBuckets(ctx context.Context) ([]*domain.Bucket, error)
	GetBucket(ctx context.Context, name string) (*domain.Bucket, error)
	CreateBucket(ctx context.Context, spec domain.BucketSpec) (*domain.Bucket, error)
	DeleteBucket(ctx context.Context, name string) error
	ListObjects(ctx context.Context, bucket string) ([]*domain.BucketObject, error)
	GetObject(ctx context.Context, bucket string, key string) (*domain.BucketObject, error)
	DeleteObject(ctx context.Context, bucket string, key string) error
}
