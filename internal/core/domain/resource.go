package domain

import "time"

// Object is anything the API can list, retrieve and serialize.
type Object interface {
	ObjectID() string
}

// Tagged objects expose provider tags to object permission checks.
type Tagged interface {
	ResourceTags() map[string]string
}

type Region struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Endpoint string `json:"endpoint,omitempty"`
}

func (r *Region) ObjectID() string { return r.ID }

type Zone struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Region string `json:"region_name"`
	State  string `json:"state"`
}

func (z *Zone) ObjectID() string { return z.ID }

type InstanceType struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Family      string `json:"family"`
	VCPUs       int32  `json:"vcpus"`
	RAMMiB      int64  `json:"ram"`
	SizeTotalGB int64  `json:"size_total_disk"`
}

func (t *InstanceType) ObjectID() string { return t.ID }

type Instance struct {
	ID               string            `json:"id"`
	Name             string            `json:"name"`
	InstanceType     string            `json:"instance_type"`
	ImageID          string            `json:"image_id"`
	State            string            `json:"state"`
	Zone             string            `json:"zone_id"`
	SubnetID         string            `json:"subnet_id,omitempty"`
	KeyPairName      string            `json:"key_pair_name,omitempty"`
	SecurityGroupIDs []string          `json:"security_group_ids"`
	PublicIPs        []string          `json:"public_ips"`
	PrivateIPs       []string          `json:"private_ips"`
	LaunchTime       *time.Time        `json:"launch_time,omitempty"`
	Tags             map[string]string `json:"tags,omitempty"`
}

func (i *Instance) ObjectID() string                { return i.ID }
func (i *Instance) ResourceTags() map[string]string { return i.Tags }

type KeyPair struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Fingerprint string `json:"fingerprint"`
	// Material is only populated in the response to a create call.
	Material string `json:"material,omitempty"`
}

func (k *KeyPair) ObjectID() string { return k.ID }

type SecurityGroup struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	NetworkID   string            `json:"network_id,omitempty"`
	Tags        map[string]string `json:"tags,omitempty"`
}

func (g *SecurityGroup) ObjectID() string                { return g.ID }
func (g *SecurityGroup) ResourceTags() map[string]string { return g.Tags }

type SecurityGroupRule struct {
	ID              string `json:"id"`
	SecurityGroupID string `json:"security_group_id"`
	Egress          bool   `json:"egress"`
	IPProtocol      string `json:"ip_protocol"`
	FromPort        int32  `json:"from_port"`
	ToPort          int32  `json:"to_port"`
	CIDRIP          string `json:"cidr_ip,omitempty"`
	SourceGroupID   string `json:"source_group_id,omitempty"`
}

func (r *SecurityGroupRule) ObjectID() string { return r.ID }

type Network struct {
	ID        string            `json:"id"`
	Name      string            `json:"name"`
	CIDRBlock string            `json:"cidr_block"`
	State     string            `json:"state"`
	IsDefault bool              `json:"is_default"`
	Tags      map[string]string `json:"tags,omitempty"`
}

func (n *Network) ObjectID() string                { return n.ID }
func (n *Network) ResourceTags() map[string]string { return n.Tags }

type Subnet struct {
	ID        string            `json:"id"`
	Name      string            `json:"name"`
	NetworkID string            `json:"network_id"`
	CIDRBlock string            `json:"cidr_block"`
	Zone      string            `json:"zone"`
	State     string            `json:"state"`
	Tags      map[string]string `json:"tags,omitempty"`
}

func (s *Subnet) ObjectID() string                { return s.ID }
func (s *Subnet) ResourceTags() map[string]string { return s.Tags }

type Volume struct {
	ID         string            `json:"id"`
	Name       string            `json:"name"`
	SizeGB     int32             `json:"size"`
	Zone       string            `json:"zone_id"`
	State      string            `json:"state"`
	VolumeType string            `json:"volume_type"`
	SnapshotID string            `json:"source_snapshot_id,omitempty"`
	AttachedTo string            `json:"attached_to,omitempty"`
	CreatedAt  *time.Time        `json:"create_time,omitempty"`
	Tags       map[string]string `json:"tags,omitempty"`
}

func (v *Volume) ObjectID() string                { return v.ID }
func (v *Volume) ResourceTags() map[string]string { return v.Tags }

type Snapshot struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	VolumeID    string            `json:"volume_id"`
	SizeGB      int32             `json:"size"`
	State       string            `json:"state"`
	CreatedAt   *time.Time        `json:"create_time,omitempty"`
	Tags        map[string]string `json:"tags,omitempty"`
}

func (s *Snapshot) ObjectID() string                { return s.ID }
func (s *Snapshot) ResourceTags() map[string]string { return s.Tags }

type Bucket struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Region    string     `json:"region,omitempty"`
	CreatedAt *time.Time `json:"creation_date,omitempty"`
}

func (b *Bucket) ObjectID() string { return b.ID }

type BucketObject struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	BucketName   string     `json:"bucket"`
	Size         int64      `json:"size"`
	ETag         string     `json:"etag,omitempty"`
	LastModified *time.Time `json:"last_modified,omitempty"`
}

func (o *BucketObject) ObjectID() string { return o.ID }

// Identity describes the principal behind a set of provider credentials.
type Identity struct {
	AccountID string `json:"account_id"`
	ARN       string `json:"arn"`
	UserID    string `json:"user_id"`
	Provider  string `json:"provider"`
	Region    string `json:"region"`
}

func (i *Identity) ObjectID() string { return i.ARN }
