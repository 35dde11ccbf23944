package memory

import (
	"context"
	"net/netip"

	"github.com/olusolaa/cloud-resource-api/internal/core/domain"
)

type networkService struct{ c *Cloud }

func (s networkService) ListNetworks(context.Context) ([]*domain.Network, error) {
	s.c.mu.RLock()
	defer s.c.mu.RUnlock()
	return sorted(s.c.networks, nil), nil
}

func (s networkService) GetNetwork(_ context.Context, id string) (*domain.Network, error) {
	s.c.mu.RLock()
	defer s.c.mu.RUnlock()
	return lookup(s.c.networks, domain.KindNetwork, id)
}

func (s networkService) CreateNetwork(_ context.Context, spec domain.NetworkSpec) (*domain.Network, error) {
	prefix, err := netip.ParsePrefix(spec.CIDRBlock)
	if err != nil {
		return nil, invalid("cidr_block", "invalid CIDR block %q", spec.CIDRBlock)
	}
	if bits := prefix.Bits(); bits < 16 || bits > 28 {
		return nil, invalid("cidr_block", "network prefix length must be between /16 and /28")
	}

	s.c.mu.Lock()
	defer s.c.mu.Unlock()
	n := &domain.Network{
		ID:        s.c.nextID("vpc"),
		Name:      spec.Name,
		CIDRBlock: prefix.Masked().String(),
		State:     "available",
		Tags:      cloneTags(spec.Tags),
	}
	s.c.networks[n.ID] = n
	return clone(n), nil
}

// DeleteNetwork refuses networks that still have subnets or groups.
func (s networkService) DeleteNetwork(_ context.Context, id string) error {
	s.c.mu.Lock()
	defer s.c.mu.Unlock()
	if _, ok := s.c.networks[id]; !ok {
		return lookupErr(domain.KindNetwork, id)
	}
	for _, sn := range s.c.subnets {
		if sn.NetworkID == id {
			return conflict("network %s has dependencies: subnet %s", id, sn.ID)
		}
	}
	for _, g := range s.c.groups {
		if g.NetworkID == id {
			return conflict("network %s has dependencies: security group %s", id, g.ID)
		}
	}
	delete(s.c.networks, id)
	return nil
}

func (s networkService) ListSubnets(_ context.Context, networkID string) ([]*domain.Subnet, error) {
	s.c.mu.RLock()
	defer s.c.mu.RUnlock()
	if _, ok := s.c.networks[networkID]; !ok {
		return nil, lookupErr(domain.KindNetwork, networkID)
	}
	return sorted(s.c.subnets, func(sn *domain.Subnet) bool { return sn.NetworkID == networkID }), nil
}

func (s networkService) GetSubnet(_ context.Context, networkID string, id string) (*domain.Subnet, error) {
	s.c.mu.RLock()
	defer s.c.mu.RUnlock()
	sn, ok := s.c.subnets[id]
	if !ok || sn.NetworkID != networkID {
		return nil, lookupErr(domain.KindSubnet, id)
	}
	return clone(sn), nil
}

// CreateSubnet requires the block to sit inside the network's block without
// overlapping a sibling subnet.
func (s networkService) CreateSubnet(_ context.Context, networkID string, spec domain.SubnetSpec) (*domain.Subnet, error) {
	prefix, err := netip.ParsePrefix(spec.CIDRBlock)
	if err != nil {
		return nil, invalid("cidr_block", "invalid CIDR block %q", spec.CIDRBlock)
	}
	prefix = prefix.Masked()

	s.c.mu.Lock()
	defer s.c.mu.Unlock()
	n, ok := s.c.networks[networkID]
	if !ok {
		return nil, lookupErr(domain.KindNetwork, networkID)
	}
	parent, err := netip.ParsePrefix(n.CIDRBlock)
	if err != nil || !parent.Contains(prefix.Addr()) || prefix.Bits() < parent.Bits() {
		return nil, invalid("cidr_block", "%s is not within network block %s", prefix, n.CIDRBlock)
	}
	for _, sn := range s.c.subnets {
		if sn.NetworkID != networkID {
			continue
		}
		if other, err := netip.ParsePrefix(sn.CIDRBlock); err == nil && other.Overlaps(prefix) {
			return nil, conflict("%s overlaps subnet %s (%s)", prefix, sn.ID, sn.CIDRBlock)
		}
	}
	if spec.Zone != "" {
		if _, ok := s.c.zones[spec.Zone]; !ok {
			return nil, invalid("zone", "unknown zone %q", spec.Zone)
		}
	}

	sn := &domain.Subnet{
		ID:        s.c.nextID("subnet"),
		Name:      spec.Name,
		NetworkID: networkID,
		CIDRBlock: prefix.String(),
		Zone:      spec.Zone,
		State:     "available",
		Tags:      cloneTags(spec.Tags),
	}
	s.c.subnets[sn.ID] = sn
	return clone(sn), nil
}

func (s networkService) DeleteSubnet(_ context.Context, networkID string, id string) error {
	s.c.mu.Lock()
	defer s.c.mu.Unlock()
	sn, ok := s.c.subnets[id]
	if !ok || sn.NetworkID != networkID {
		return lookupErr(domain.KindSubnet, id)
	}
	for _, inst := range s.c.instances {
		if inst.SubnetID == id {
			return conflict("subnet %s is in use by instance %s", id, inst.ID)
		}
	}
	delete(s.c.subnets, id)
	return nil
}
