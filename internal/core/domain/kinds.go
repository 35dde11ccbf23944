package domain

type ResourceKind string

const (
	KindRegion            ResourceKind = "Region"
	KindZone              ResourceKind = "Zone"
	KindInstanceType      ResourceKind = "InstanceType"
	KindInstance          ResourceKind = "Instance"
	KindKeyPair           ResourceKind = "KeyPair"
	KindSecurityGroup     ResourceKind = "SecurityGroup"
	KindSecurityGroupRule ResourceKind = "SecurityGroupRule"
	KindNetwork           ResourceKind = "Network"
	KindSubnet            ResourceKind = "Subnet"
	KindVolume            ResourceKind = "Volume"
	KindSnapshot          ResourceKind = "Snapshot"
	KindBucket            ResourceKind = "Bucket"
	KindBucketObject      ResourceKind = "BucketObject"
	KindApplication       ResourceKind = "Application"

	// Summary kinds back singleton endpoints.
	KindCompute     ResourceKind = "Compute"
	KindSecurity    ResourceKind = "Security"
	KindNetworking  ResourceKind = "Networking"
	KindBlockStore  ResourceKind = "BlockStore"
	KindObjectStore ResourceKind = "ObjectStore"
	KindIdentity    ResourceKind = "Identity"
	KindHealth      ResourceKind = "Health"
)

func (rk ResourceKind) String() string {
	return string(rk)
}
