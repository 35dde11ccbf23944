package memory

import (
	"context"

	"github.com/olusolaa/cloud-resource-api/internal/core/domain"
)

type computeService struct{ c *Cloud }

func (s computeService) ListRegions(context.Context) ([]*domain.Region, error) {
	s.c.mu.RLock()
	defer s.c.mu.RUnlock()
	return sorted(s.c.regions, nil), nil
}

func (s computeService) GetRegion(_ context.Context, id string) (*domain.Region, error) {
	s.c.mu.RLock()
	defer s.c.mu.RUnlock()
	return lookup(s.c.regions, domain.KindRegion, id)
}

func (s computeService) ListZones(_ context.Context, regionID string) ([]*domain.Zone, error) {
	s.c.mu.RLock()
	defer s.c.mu.RUnlock()
	return sorted(s.c.zones, func(z *domain.Zone) bool { return z.Region == regionID }), nil
}

func (s computeService) ListInstanceTypes(context.Context) ([]*domain.InstanceType, error) {
	s.c.mu.RLock()
	defer s.c.mu.RUnlock()
	return sorted(s.c.instanceTypes, nil), nil
}

func (s computeService) GetInstanceType(_ context.Context, id string) (*domain.InstanceType, error) {
	s.c.mu.RLock()
	defer s.c.mu.RUnlock()
	return lookup(s.c.instanceTypes, domain.KindInstanceType, id)
}

func (s computeService) ListInstances(context.Context) ([]*domain.Instance, error) {
	s.c.mu.RLock()
	defer s.c.mu.RUnlock()
	return sorted(s.c.instances, nil), nil
}

func (s computeService) GetInstance(_ context.Context, id string) (*domain.Instance, error) {
	s.c.mu.RLock()
	defer s.c.mu.RUnlock()
	return lookup(s.c.instances, domain.KindInstance, id)
}

// CreateInstance checks every reference in spec before launching. New
// instances start out running.
func (s computeService) CreateInstance(_ context.Context, spec domain.InstanceSpec) (*domain.Instance, error) {
	s.c.mu.Lock()
	defer s.c.mu.Unlock()

	if _, ok := s.c.instanceTypes[spec.InstanceType]; !ok {
		return nil, invalid("instance_type", "unknown instance type %q", spec.InstanceType)
	}
	zone := spec.Zone
	if spec.SubnetID != "" {
		subnet, ok := s.c.subnets[spec.SubnetID]
		if !ok {
			return nil, invalid("subnet_id", "unknown subnet %q", spec.SubnetID)
		}
		if zone != "" && zone != subnet.Zone {
			return nil, invalid("zone_id", "subnet %s is in zone %s", subnet.ID, subnet.Zone)
		}
		zone = subnet.Zone
	}
	if zone != "" {
		if _, ok := s.c.zones[zone]; !ok {
			return nil, invalid("zone_id", "unknown zone %q", zone)
		}
	}
	if spec.KeyPairName != "" {
		if _, ok := s.c.keyPairs[spec.KeyPairName]; !ok {
			return nil, invalid("key_pair_name", "unknown key pair %q", spec.KeyPairName)
		}
	}
	for _, g := range spec.SecurityGroupIDs {
		if _, ok := s.c.groups[g]; !ok {
			return nil, invalid("security_group_ids", "unknown security group %q", g)
		}
	}

	tags := cloneTags(spec.Tags)
	if tags == nil {
		tags = map[string]string{}
	}
	if _, ok := tags["Name"]; !ok {
		tags["Name"] = spec.Name
	}
	inst := &domain.Instance{
		ID:               s.c.nextID("i"),
		Name:             tags["Name"],
		InstanceType:     spec.InstanceType,
		ImageID:          spec.ImageID,
		State:            "running",
		Zone:             zone,
		SubnetID:         spec.SubnetID,
		KeyPairName:      spec.KeyPairName,
		SecurityGroupIDs: append([]string{}, spec.SecurityGroupIDs...),
		PublicIPs:        []string{},
		PrivateIPs:       []string{},
		LaunchTime:       s.c.timestamp(),
		Tags:             tags,
	}
	s.c.instances[inst.ID] = inst
	return clone(inst), nil
}

func (s computeService) DeleteInstance(_ context.Context, id string) error {
	s.c.mu.Lock()
	defer s.c.mu.Unlock()
	if _, err := lookup(s.c.instances, domain.KindInstance, id); err != nil {
		return err
	}
	delete(s.c.instances, id)
	return nil
}

func (s computeService) RebootInstance(_ context.Context, id string) error {
	return s.transition(id, []string{"running"}, "running")
}

func (s computeService) StartInstance(_ context.Context, id string) error {
	return s.transition(id, []string{"running", "stopped"}, "running")
}

func (s computeService) StopInstance(_ context.Context, id string) error {
	return s.transition(id, []string{"running", "stopped"}, "stopped")
}

func (s computeService) transition(id string, from []string, to string) error {
	s.c.mu.Lock()
	defer s.c.mu.Unlock()
	inst, ok := s.c.instances[id]
	if !ok {
		return lookupErr(domain.KindInstance, id)
	}
	for _, state := range from {
		if inst.State == state {
			inst.State = to
			return nil
		}
	}
	return conflict("instance %s is %s", id, inst.State)
}
