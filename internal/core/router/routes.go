package router

import (
	"net/http"
	"sort"

	"github.com/olusolaa/cloud-resource-api/internal/core/domain"
	"github.com/olusolaa/cloud-resource-api/internal/core/resource"
)

// Route is one named URL pattern and the operations bound to its methods.
type Route struct {
	Name     string
	Pattern  string
	Basename string
	Kind     domain.ResourceKind
	Detail   bool

	ops map[string]resource.Operation
}

// Methods returns the HTTP methods the route answers, sorted.
func (rt Route) Methods() []string {
	out := make([]string, 0, len(rt.ops))
	for m := range rt.ops {
		out = append(out, m)
	}
	sort.Strings(out)
	return out
}

// Operation returns the operation bound to method, if any.
func (rt Route) Operation(method string) (resource.Operation, bool) {
	op, ok := rt.ops[method]
	return op, ok
}

// Routes returns the routes of this router only: resource routes in
// registration order, then one list route per plain endpoint.
func (r *Router) Routes() []Route {
	var out []Route
	for _, e := range r.entries {
		if e.handler != nil {
			out = append(out, r.resourceRoutes(e)...)
		}
	}
	for _, e := range r.entries {
		if e.endpoint != nil {
			out = append(out, Route{
				Name:     e.basename + "-list",
				Pattern:  r.pattern(e.prefix),
				Basename: e.basename,
				Kind:     e.endpoint.Kind(),
				ops:      map[string]resource.Operation{http.MethodGet: e.endpoint.Get},
			})
		}
	}
	return out
}

// AllRoutes returns Routes followed by the routes of every nested router,
// depth first.
func (r *Router) AllRoutes() []Route {
	out := r.Routes()
	for _, child := range r.nested {
		out = append(out, child.AllRoutes()...)
	}
	return out
}

func (r *Router) resourceRoutes(e entry) []Route {
	h := e.handler
	caps := h.Capabilities()
	detailSeg := "{" + resource.LookupPK + ":" + h.LookupRegex() + "}"

	list := map[string]resource.Operation{}
	if caps.Has(resource.CapList) {
		list[http.MethodGet] = h.List
	}
	if caps.Has(resource.CapCreate) {
		list[http.MethodPost] = h.Create
	}

	detail := map[string]resource.Operation{}
	if caps.Has(resource.CapRetrieve) {
		detail[http.MethodGet] = h.Retrieve
	}
	if caps.Has(resource.CapUpdate) {
		detail[http.MethodPut] = h.Update
		detail[http.MethodPatch] = h.PartialUpdate
	}
	if caps.Has(resource.CapDelete) {
		detail[http.MethodDelete] = h.Destroy
	}

	candidates := []Route{
		{Name: e.basename + "-list", Pattern: r.pattern(e.prefix), ops: list},
	}
	for _, a := range h.Actions() {
		if a.Detail {
			continue
		}
		candidates = append(candidates, Route{Name: e.basename + "-" + a.Name, Pattern: r.pattern(e.prefix, a.Name), ops: actionOps(h, a)})
	}
	candidates = append(candidates, Route{Name: e.basename + "-detail", Pattern: r.pattern(e.prefix, detailSeg), Detail: true, ops: detail})
	for _, a := range h.Actions() {
		if !a.Detail {
			continue
		}
		candidates = append(candidates, Route{Name: e.basename + "-" + a.Name, Pattern: r.pattern(e.prefix, detailSeg, a.Name), Detail: true, ops: actionOps(h, a)})
	}

	out := make([]Route, 0, len(candidates))
	for _, c := range candidates {
		if len(c.ops) == 0 {
			continue
		}
		c.Basename = e.basename
		c.Kind = h.Kind()
		out = append(out, c)
	}
	return out
}

func actionOps(h *resource.Handler, a resource.Action) map[string]resource.Operation {
	op := h.ActionOperation(a)
	ops := make(map[string]resource.Operation, len(a.Methods))
	for _, m := range a.Methods {
		ops[m] = op
	}
	return ops
}

func (r *Router) pattern(parts ...string) string {
	p := "/" + r.join(parts...)
	if r.trailingSlash {
		p += "/"
	}
	return p
}
