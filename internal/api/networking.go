package api

import (
	"github.com/olusolaa/cloud-resource-api/internal/core/domain"
	"github.com/olusolaa/cloud-resource-api/internal/core/ports"
	"github.com/olusolaa/cloud-resource-api/internal/core/resource"
	"github.com/olusolaa/cloud-resource-api/internal/core/router"
)

func networkOf(req *resource.Request) (ports.NetworkService, error) {
	p, err := provider(req)
	if err != nil {
		return nil, err
	}
	return p.Network(), nil
}

func registerNetworking(r *router.Router, deps Deps) error {
	summary, err := resource.SummarySingleton(domain.KindNetworking, resource.Links{
		"networks": "network-list",
	})
	if err != nil {
		return err
	}
	if err := r.Register("networking", summary, "networking"); err != nil {
		return err
	}

	networks, err := resource.NewHandler(resource.Definition[*domain.Network]{
		Kind:         domain.KindNetwork,
		Capabilities: resource.Mutable,
		Retrieval:    resource.RetrieveDirect,
		List: func(req *resource.Request) ([]*domain.Network, error) {
			n, err := networkOf(req)
			if err != nil {
				return nil, err
			}
			return n.ListNetworks(req.Context())
		},
		Get: func(req *resource.Request, id string) (*domain.Network, error) {
			n, err := networkOf(req)
			if err != nil {
				return nil, err
			}
			return n.GetNetwork(req.Context(), id)
		},
		NewInput: newInput[domain.NetworkSpec](),
		Create: func(req *resource.Request, input any) (*domain.Network, error) {
			spec, err := inputAs[domain.NetworkSpec](input)
			if err != nil {
				return nil, err
			}
			n, err := networkOf(req)
			if err != nil {
				return nil, err
			}
			return n.CreateNetwork(req.Context(), spec)
		},
		Delete: func(req *resource.Request, current *domain.Network) error {
			n, err := networkOf(req)
			if err != nil {
				return err
			}
			return n.DeleteNetwork(req.Context(), current.ID)
		},
		Permission: deps.permission(),
	})
	if err != nil {
		return err
	}
	if err := r.Register("networks", networks, "network"); err != nil {
		return err
	}

	subnets, err := resource.NewHandler(resource.Definition[*domain.Subnet]{
		Kind:         domain.KindSubnet,
		Capabilities: resource.Mutable,
		Retrieval:    resource.RetrieveDirect,
		ParentParam:  "network_pk",
		VerifyParent: func(req *resource.Request, networkID string) error {
			n, err := networkOf(req)
			if err != nil {
				return err
			}
			network, err := n.GetNetwork(req.Context(), networkID)
			return deps.authorizeParent(req, network, err)
		},
		List: func(req *resource.Request) ([]*domain.Subnet, error) {
			n, err := networkOf(req)
			if err != nil {
				return nil, err
			}
			return n.ListSubnets(req.Context(), req.Var("network_pk"))
		},
		Get: func(req *resource.Request, id string) (*domain.Subnet, error) {
			n, err := networkOf(req)
			if err != nil {
				return nil, err
			}
			return n.GetSubnet(req.Context(), req.Var("network_pk"), id)
		},
		NewInput: newInput[domain.SubnetSpec](),
		Create: func(req *resource.Request, input any) (*domain.Subnet, error) {
			spec, err := inputAs[domain.SubnetSpec](input)
			if err != nil {
				return nil, err
			}
			n, err := networkOf(req)
			if err != nil {
				return nil, err
			}
			return n.CreateSubnet(req.Context(), req.Var("network_pk"), spec)
		},
		Delete: func(req *resource.Request, current *domain.Subnet) error {
			n, err := networkOf(req)
			if err != nil {
				return err
			}
			return n.DeleteSubnet(req.Context(), current.NetworkID, current.ID)
		},
		Permission: deps.permission(),
	})
	if err != nil {
		return err
	}
	networkRouter, err := r.Nested("networks", "network")
	if err != nil {
		return err
	}
	return networkRouter.Register("subnets", subnets, "subnet")
}
