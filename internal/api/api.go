// Package api is the registration table of the service: which resources
// exist, where they are mounted and how each one reaches the provider.
package api

import (
	"fmt"
	"time"

	"github.com/olusolaa/cloud-resource-api/internal/core/domain"
	"github.com/olusolaa/cloud-resource-api/internal/core/ports"
	"github.com/olusolaa/cloud-resource-api/internal/core/resource"
	"github.com/olusolaa/cloud-resource-api/internal/core/router"
	"github.com/olusolaa/cloud-resource-api/internal/errors"
)

// Deps are the process-wide collaborators of the API handlers.
type Deps struct {
	Applications ports.ApplicationRepository
	// Permission guards every mutating operation on provider resources.
	Permission resource.ObjectPermission
	Now        func() time.Time
}

func (d Deps) now() time.Time {
	if d.Now == nil {
		return time.Now().UTC()
	}
	return d.Now().UTC()
}

func (d Deps) permission() resource.ObjectPermission {
	if d.Permission == nil {
		return resource.AllowAny{}
	}
	return d.Permission
}

// authorizeParent applies the object permission to the parent of a nested
// route. Writes to children of a protected object are refused like writes to
// the object itself.
func (d Deps) authorizeParent(req *resource.Request, parent domain.Object, err error) error {
	if err != nil {
		return err
	}
	return d.permission().HasObjectPermission(req, parent)
}

// NewRouter builds the full route registry. The result still has to be
// mounted.
func NewRouter(deps Deps, opts ...router.Option) (*router.Router, error) {
	if deps.Applications == nil {
		return nil, errors.New(errors.CodeInternal, "api needs an application repository")
	}
	r := router.NewDefaultRouter(opts...)
	for _, register := range []func(*router.Router, Deps) error{
		registerService,
		registerCompute,
		registerSecurity,
		registerNetworking,
		registerBlockStore,
		registerObjectStore,
		registerApplications,
	} {
		if err := register(r, deps); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// provider opens the request's provider handle.
func provider(req *resource.Request) (ports.Provider, error) {
	return req.Provider()
}

// inputAs unwraps the payload produced by a definition's NewInput.
func inputAs[S any](input any) (S, error) {
	var zero S
	spec, ok := input.(*S)
	if !ok || spec == nil {
		return zero, errors.New(errors.CodeTypeAssertionError, fmt.Sprintf("unexpected input type %T", input))
	}
	return *spec, nil
}

// newInput returns a NewInput func for payload type S.
func newInput[S any]() func() any {
	return func() any { return new(S) }
}
