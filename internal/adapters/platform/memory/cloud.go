// Package memory is a self-contained cloud held in process memory. It backs
// local development (platform type "memory") and the API tests.
package memory

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/olusolaa/cloud-resource-api/internal/core/domain"
	"github.com/olusolaa/cloud-resource-api/internal/errors"
)

const (
	ProviderTypeMemory = "memory"
	DefaultAccountID   = "000000000000"
)

// Cloud is the shared state behind every memory Provider. All providers
// opened on one Cloud see the same resources whatever their region.
type Cloud struct {
	mu  sync.RWMutex
	seq int
	now func() time.Time

	regions       map[string]*domain.Region
	zones         map[string]*domain.Zone
	instanceTypes map[string]*domain.InstanceType
	instances     map[string]*domain.Instance
	keyPairs      map[string]*domain.KeyPair
	groups        map[string]*domain.SecurityGroup
	rules         map[string]*domain.SecurityGroupRule
	networks      map[string]*domain.Network
	subnets       map[string]*domain.Subnet
	volumes       map[string]*domain.Volume
	snapshots     map[string]*domain.Snapshot
	buckets       map[string]*domain.Bucket
	objects       map[string]map[string]*domain.BucketObject
}

type CloudOption func(*Cloud)

// WithClock replaces time.Now for creation timestamps.
func WithClock(now func() time.Time) CloudOption {
	return func(c *Cloud) {
		if now != nil {
			c.now = now
		}
	}
}

// NewCloud returns an empty cloud. Use Seed to load fixture data.
func NewCloud(opts ...CloudOption) *Cloud {
	c := &Cloud{
		now:           time.Now,
		regions:       map[string]*domain.Region{},
		zones:         map[string]*domain.Zone{},
		instanceTypes: map[string]*domain.InstanceType{},
		instances:     map[string]*domain.Instance{},
		keyPairs:      map[string]*domain.KeyPair{},
		groups:        map[string]*domain.SecurityGroup{},
		rules:         map[string]*domain.SecurityGroupRule{},
		networks:      map[string]*domain.Network{},
		subnets:       map[string]*domain.Subnet{},
		volumes:       map[string]*domain.Volume{},
		snapshots:     map[string]*domain.Snapshot{},
		buckets:       map[string]*domain.Bucket{},
		objects:       map[string]map[string]*domain.BucketObject{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewSeededCloud returns a cloud loaded with DefaultFixture.
func NewSeededCloud(opts ...CloudOption) *Cloud {
	c := NewCloud(opts...)
	c.Seed(DefaultFixture())
	return c
}

// Fixture is the initial content of a Cloud.
type Fixture struct {
	Regions       map[string][]string
	InstanceTypes []*domain.InstanceType
	Networks      []*domain.Network
	Subnets       []*domain.Subnet
	Groups        []*domain.SecurityGroup
	Rules         []*domain.SecurityGroupRule
	Buckets       []*domain.Bucket
	Objects       []*domain.BucketObject
}

func DefaultFixture() Fixture {
	return Fixture{
		Regions: map[string][]string{
			"us-east-1": {"us-east-1a", "us-east-1b", "us-east-1c"},
			"eu-west-1": {"eu-west-1a", "eu-west-1b"},
		},
		InstanceTypes: []*domain.InstanceType{
			{ID: "t3.micro", Name: "t3.micro", Family: "t3", VCPUs: 2, RAMMiB: 1024},
			{ID: "t3.small", Name: "t3.small", Family: "t3", VCPUs: 2, RAMMiB: 2048},
			{ID: "m5.large", Name: "m5.large", Family: "m5", VCPUs: 2, RAMMiB: 8192},
			{ID: "c5d.xlarge", Name: "c5d.xlarge", Family: "c5d", VCPUs: 4, RAMMiB: 8192, SizeTotalGB: 100},
		},
		Networks: []*domain.Network{
			{ID: "vpc-default", Name: "default", CIDRBlock: "172.31.0.0/16", State: "available", IsDefault: true},
		},
		Subnets: []*domain.Subnet{
			{ID: "subnet-default-a", Name: "default-a", NetworkID: "vpc-default", CIDRBlock: "172.31.0.0/20", Zone: "us-east-1a", State: "available"},
			{ID: "subnet-default-b", Name: "default-b", NetworkID: "vpc-default", CIDRBlock: "172.31.16.0/20", Zone: "us-east-1b", State: "available"},
		},
		Groups: []*domain.SecurityGroup{
			{ID: "sg-default", Name: "default", Description: "default VPC security group", NetworkID: "vpc-default"},
		},
		Rules: []*domain.SecurityGroupRule{
			{ID: "sgr-default-egress", SecurityGroupID: "sg-default", Egress: true, IPProtocol: "-1", FromPort: -1, ToPort: -1, CIDRIP: "0.0.0.0/0"},
		},
		Buckets: []*domain.Bucket{
			{ID: "example-assets", Name: "example-assets", Region: "us-east-1"},
		},
		Objects: []*domain.BucketObject{
			{ID: "index.html", Name: "index.html", BucketName: "example-assets", Size: 512, ETag: "5d41402abc4b2a76b9719d911017c592"},
			{ID: "img/logo.png", Name: "img/logo.png", BucketName: "example-assets", Size: 2048, ETag: "7d793037a0760186574b0282f2f435e7"},
		},
	}
}

// Seed adds the fixture to the cloud, replacing entries with equal IDs.
func (c *Cloud) Seed(f Fixture) {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.now().UTC()

	for region, zones := range f.Regions {
		c.regions[region] = &domain.Region{ID: region, Name: region, Endpoint: fmt.Sprintf("compute.%s.memory.local", region)}
		for _, z := range zones {
			c.zones[z] = &domain.Zone{ID: z, Name: z, Region: region, State: "available"}
		}
	}
	for _, it := range f.InstanceTypes {
		c.instanceTypes[it.ID] = clone(it)
	}
	for _, n := range f.Networks {
		c.networks[n.ID] = clone(n)
	}
	for _, s := range f.Subnets {
		c.subnets[s.ID] = clone(s)
	}
	for _, g := range f.Groups {
		c.groups[g.ID] = clone(g)
	}
	for _, r := range f.Rules {
		c.rules[r.ID] = clone(r)
	}
	for _, b := range f.Buckets {
		cp := clone(b)
		if cp.CreatedAt == nil {
			cp.CreatedAt = &now
		}
		c.buckets[b.ID] = cp
		if c.objects[b.ID] == nil {
			c.objects[b.ID] = map[string]*domain.BucketObject{}
		}
	}
	for _, o := range f.Objects {
		if c.objects[o.BucketName] == nil {
			continue
		}
		cp := clone(o)
		if cp.LastModified == nil {
			cp.LastModified = &now
		}
		c.objects[o.BucketName][o.ID] = cp
	}
}

// nextID returns a fresh identifier such as "i-00000007". Callers hold mu.
func (c *Cloud) nextID(prefix string) string {
	c.seq++
	return fmt.Sprintf("%s-%08d", prefix, c.seq)
}

func (c *Cloud) timestamp() *time.Time {
	t := c.now().UTC()
	return &t
}

func clone[T any](v *T) *T {
	cp := *v
	return &cp
}

func cloneTags(tags map[string]string) map[string]string {
	if len(tags) == 0 {
		return nil
	}
	out := make(map[string]string, len(tags))
	for k, v := range tags {
		out[k] = v
	}
	return out
}

// sorted copies the values of m ordered by ID.
func sorted[T any, P interface {
	*T
	domain.Object
}](m map[string]P, keep func(P) bool) []P {
	out := make([]P, 0, len(m))
	for _, v := range m {
		if keep != nil && !keep(v) {
			continue
		}
		out = append(out, P(clone((*T)(v))))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ObjectID() < out[j].ObjectID() })
	return out
}

func lookup[T any](m map[string]*T, kind domain.ResourceKind, id string) (*T, error) {
	v, ok := m[id]
	if !ok {
		return nil, lookupErr(kind, id)
	}
	return clone(v), nil
}

func conflict(format string, args ...any) error {
	return errors.Conflict(format, args...)
}

func invalid(field, format string, args ...any) error {
	msg := fmt.Sprintf(format, args...)
	return errors.InvalidInput(msg, map[string]string{field: msg})
}

func lookupErr(kind domain.ResourceKind, id string) error {
	return errors.NotFound(kind.String(), id)
}
