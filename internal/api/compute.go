package api

import (
	"context"
	"net/http"

	"github.com/olusolaa/cloud-resource-api/internal/core/domain"
	"github.com/olusolaa/cloud-resource-api/internal/core/ports"
	"github.com/olusolaa/cloud-resource-api/internal/core/resource"
	"github.com/olusolaa/cloud-resource-api/internal/core/router"
)

func computeOf(req *resource.Request) (ports.ComputeService, error) {
	p, err := provider(req)
	if err != nil {
		return nil, err
	}
	return p.Compute(), nil
}

func registerCompute(r *router.Router, deps Deps) error {
	summary, err := resource.SummarySingleton(domain.KindCompute, resource.Links{
		"regions":        "region-list",
		"instance_types": "instance_type-list",
		"instances":      "instance-list",
	})
	if err != nil {
		return err
	}
	if err := r.Register("compute", summary, "compute"); err != nil {
		return err
	}

	regions, err := resource.NewHandler(resource.Definition[*domain.Region]{
		Kind:         domain.KindRegion,
		Capabilities: resource.ReadOnly,
		Retrieval:    resource.RetrieveDirect,
		List: func(req *resource.Request) ([]*domain.Region, error) {
			c, err := computeOf(req)
			if err != nil {
				return nil, err
			}
			return c.ListRegions(req.Context())
		},
		Get: func(req *resource.Request, id string) (*domain.Region, error) {
			c, err := computeOf(req)
			if err != nil {
				return nil, err
			}
			return c.GetRegion(req.Context(), id)
		},
	})
	if err != nil {
		return err
	}
	if err := r.Register("compute/regions", regions, "region"); err != nil {
		return err
	}

	zones, err := resource.NewHandler(resource.Definition[*domain.Zone]{
		Kind:         domain.KindZone,
		Capabilities: resource.ReadOnly,
		Retrieval:    resource.RetrieveFilteredList,
		ParentParam:  "region_pk",
		VerifyParent: func(req *resource.Request, regionID string) error {
			c, err := computeOf(req)
			if err != nil {
				return err
			}
			_, err = c.GetRegion(req.Context(), regionID)
			return err
		},
		List: func(req *resource.Request) ([]*domain.Zone, error) {
			c, err := computeOf(req)
			if err != nil {
				return nil, err
			}
			return c.ListZones(req.Context(), req.Var("region_pk"))
		},
	})
	if err != nil {
		return err
	}
	regionRouter, err := r.Nested("compute/regions", "region")
	if err != nil {
		return err
	}
	if err := regionRouter.Register("zones", zones, "zone"); err != nil {
		return err
	}

	instanceTypes, err := resource.NewHandler(resource.Definition[*domain.InstanceType]{
		Kind:         domain.KindInstanceType,
		Capabilities: resource.ReadOnly,
		Retrieval:    resource.RetrieveDirect,
		// Instance type names contain dots.
		LookupRegex: `[^/]+`,
		List: func(req *resource.Request) ([]*domain.InstanceType, error) {
			c, err := computeOf(req)
			if err != nil {
				return nil, err
			}
			return c.ListInstanceTypes(req.Context())
		},
		Get: func(req *resource.Request, id string) (*domain.InstanceType, error) {
			c, err := computeOf(req)
			if err != nil {
				return nil, err
			}
			return c.GetInstanceType(req.Context(), id)
		},
	})
	if err != nil {
		return err
	}
	if err := r.Register("compute/instance_types", instanceTypes, "instance_type"); err != nil {
		return err
	}

	instances, err := resource.NewHandler(resource.Definition[*domain.Instance]{
		Kind:         domain.KindInstance,
		Capabilities: resource.Mutable,
		Retrieval:    resource.RetrieveDirect,
		List: func(req *resource.Request) ([]*domain.Instance, error) {
			c, err := computeOf(req)
			if err != nil {
				return nil, err
			}
			return c.ListInstances(req.Context())
		},
		Get: func(req *resource.Request, id string) (*domain.Instance, error) {
			c, err := computeOf(req)
			if err != nil {
				return nil, err
			}
			return c.GetInstance(req.Context(), id)
		},
		NewInput: newInput[domain.InstanceSpec](),
		Create: func(req *resource.Request, input any) (*domain.Instance, error) {
			spec, err := inputAs[domain.InstanceSpec](input)
			if err != nil {
				return nil, err
			}
			c, err := computeOf(req)
			if err != nil {
				return nil, err
			}
			return c.CreateInstance(req.Context(), spec)
		},
		Delete: func(req *resource.Request, current *domain.Instance) error {
			c, err := computeOf(req)
			if err != nil {
				return err
			}
			return c.DeleteInstance(req.Context(), current.ID)
		},
		Permission: deps.permission(),
		Actions: []resource.Action{
			instanceAction("reboot", ports.ComputeService.RebootInstance),
			instanceAction("start", ports.ComputeService.StartInstance),
			instanceAction("stop", ports.ComputeService.StopInstance),
		},
	})
	if err != nil {
		return err
	}
	return r.Register("compute/instances", instances, "instance")
}

// ActionResult acknowledges an asynchronous instance operation.
type ActionResult struct {
	ID     string `json:"id"`
	Action string `json:"action"`
	Status string `json:"status"`
}

func instanceAction(name string, run func(ports.ComputeService, context.Context, string) error) resource.Action {
	return resource.Action{
		Name:    name,
		Detail:  true,
		Methods: []string{http.MethodPost},
		Run: func(req *resource.Request, obj domain.Object) (*resource.Response, error) {
			c, err := computeOf(req)
			if err != nil {
				return nil, err
			}
			if err := run(c, req.Context(), obj.ObjectID()); err != nil {
				return nil, err
			}
			req.Logger.Infof(req.Context(), "Requested %s of instance '%s'", name, obj.ObjectID())
			return &resource.Response{
				Status: http.StatusAccepted,
				Body:   &ActionResult{ID: obj.ObjectID(), Action: name, Status: "accepted"},
			}, nil
		},
	}
}
