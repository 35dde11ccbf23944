package domain

// Creation payloads. Validation tags are enforced by the resource layer
// before any provider call is made.

type InstanceSpec struct {
	Name             string            `json:"name" validate:"required,max=255"`
	ImageID          string            `json:"image_id" validate:"required"`
	InstanceType     string            `json:"instance_type" validate:"required"`
	KeyPairName      string            `json:"key_pair_name"`
	SubnetID         string            `json:"subnet_id"`
	SecurityGroupIDs []string          `json:"security_group_ids" validate:"dive,required"`
	Zone             string            `json:"zone_id"`
	UserData         string            `json:"user_data"`
	Tags             map[string]string `json:"tags"`
}

type KeyPairSpec struct {
	Name string `json:"name" validate:"required,max=255"`
}

type SecurityGroupSpec struct {
	Name        string            `json:"name" validate:"required,max=255"`
	Description string            `json:"description" validate:"required,max=255"`
	NetworkID   string            `json:"network_id"`
	Tags        map[string]string `json:"tags"`
}

type RuleSpec struct {
	Egress        bool   `json:"egress"`
	IPProtocol    string `json:"ip_protocol" validate:"required,oneof=tcp udp icmp -1"`
	FromPort      int32  `json:"from_port" validate:"min=-1,max=65535"`
	ToPort        int32  `json:"to_port" validate:"min=-1,max=65535,gtefield=FromPort"`
	CIDRIP        string `json:"cidr_ip" validate:"required_without=SourceGroupID,omitempty,cidr"`
	SourceGroupID string `json:"source_group_id"`
}

type NetworkSpec struct {
	Name      string            `json:"name" validate:"required,max=255"`
	CIDRBlock string            `json:"cidr_block" validate:"required,cidrv4"`
	Tags      map[string]string `json:"tags"`
}

type SubnetSpec struct {
	Name      string            `json:"name" validate:"required,max=255"`
	CIDRBlock string            `json:"cidr_block" validate:"required,cidrv4"`
	Zone      string            `json:"zone"`
	Tags      map[string]string `json:"tags"`
}

type VolumeSpec struct {
	Name       string            `json:"name" validate:"required,max=255"`
	SizeGB     int32             `json:"size" validate:"required,min=1,max=16384"`
	Zone       string            `json:"zone_id" validate:"required"`
	VolumeType string            `json:"volume_type" validate:"omitempty,oneof=gp2 gp3 io1 io2 st1 sc1 standard"`
	SnapshotID string            `json:"source_snapshot_id"`
	Tags       map[string]string `json:"tags"`
}

type SnapshotSpec struct {
	Name        string            `json:"name" validate:"required,max=255"`
	VolumeID    string            `json:"volume_id" validate:"required"`
	Description string            `json:"description"`
	Tags        map[string]string `json:"tags"`
}

type BucketSpec struct {
	Name string `json:"name" validate:"required,min=3,max=63"`
}
