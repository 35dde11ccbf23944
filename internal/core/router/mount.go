package router

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/gorilla/mux"

	"github.com/olusolaa/cloud-resource-api/internal/core/accessor"
	"github.com/olusolaa/cloud-resource-api/internal/core/ports"
	"github.com/olusolaa/cloud-resource-api/internal/core/resource"
	"github.com/olusolaa/cloud-resource-api/internal/errors"
)

// Dependencies are handed to every request the mounted routes serve.
type Dependencies struct {
	Factory     accessor.Factory
	Credentials accessor.Credentials
	Logger      ports.Logger
}

// Mount registers every route of the router tree on mr under its name. It
// fails without registering anything if two routes share a name or a route
// is shadowed by one mounted before it. After
// Mount the registry no longer accepts registrations.
func (r *Router) Mount(mr *mux.Router, deps Dependencies) error {
	if r.parent != nil {
		return errors.New(errors.CodeInternal, "only the top-level router can be mounted")
	}
	if r.frozen {
		return errors.New(errors.CodeRouteConflict, "router is already mounted")
	}
	if deps.Logger == nil {
		return errors.New(errors.CodeInternal, "router dependencies need a logger")
	}

	routes := r.AllRoutes()
	if r.root {
		routes = append([]Route{r.rootRoute()}, routes...)
	}
	seen := make(map[string]string, len(routes))
	for _, rt := range routes {
		if other, dup := seen[rt.Name]; dup {
			return errors.New(errors.CodeRouteConflict, fmt.Sprintf("route name '%s' is used by both '%s' and '%s'", rt.Name, other, rt.Pattern))
		}
		seen[rt.Name] = rt.Pattern
	}
	if err := checkShadowing(routes); err != nil {
		return err
	}

	r.resolver = &muxResolver{router: mr}
	for _, rt := range routes {
		d := &dispatcher{route: rt, deps: deps, urls: r.resolver}
		mr.Handle(rt.Pattern, d).Name(rt.Name)
	}
	r.frozen = true
	return nil
}

// Reverse resolves a route name to its path. It is only usable after Mount.
func (r *Router) Reverse(name string, vars map[string]string) (*url.URL, error) {
	top := r.top()
	if top.resolver == nil {
		return nil, errors.New(errors.CodeInternal, "router is not mounted")
	}
	return top.resolver.Reverse(name, vars)
}

func (r *Router) rootRoute() Route {
	type link struct{ basename, name string }
	var links []link
	for _, rt := range r.Routes() {
		if !rt.Detail && strings.HasSuffix(rt.Name, "-list") {
			if _, ok := rt.Operation(http.MethodGet); ok {
				links = append(links, link{basename: rt.Basename, name: rt.Name})
			}
		}
	}
	get := func(req *resource.Request) (*resource.Response, error) {
		body := make(map[string]string, len(links))
		for _, l := range links {
			u, err := req.AbsoluteURL(l.name, nil)
			if err != nil {
				return nil, err
			}
			body[l.basename] = u
		}
		return &resource.Response{Status: http.StatusOK, Body: body}, nil
	}
	return Route{
		Name:    RootName,
		Pattern: "/",
		ops:     map[string]resource.Operation{http.MethodGet: get},
	}
}

type muxResolver struct {
	router *mux.Router
}

func (m *muxResolver) Reverse(name string, vars map[string]string) (*url.URL, error) {
	route := m.router.Get(name)
	if route == nil {
		return nil, errors.New(errors.CodeInternal, fmt.Sprintf("no route named '%s'", name))
	}
	names, err := route.GetVarNames()
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, fmt.Sprintf("route '%s' has no usable template", name))
	}
	pairs := make([]string, 0, len(names)*2)
	for _, n := range names {
		pairs = append(pairs, n, vars[n])
	}
	u, err := route.URLPath(pairs...)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, fmt.Sprintf("cannot build url for route '%s'", name))
	}
	return u, nil
}

type dispatcher struct {
	route Route
	deps  Dependencies
	urls  resource.URLResolver
}

func (d *dispatcher) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	logger := d.deps.Logger.WithFields(map[string]any{
		"route":  d.route.Name,
		"method": r.Method,
	})

	op, ok := d.route.Operation(r.Method)
	if !ok {
		w.Header().Set("Allow", strings.Join(d.route.Methods(), ", "))
		resource.WriteError(w, errors.NewUserFacing(errors.CodeMethodNotAllowed, fmt.Sprintf("method \"%s\" not allowed", r.Method), ""))
		return
	}

	creds := accessor.CredentialsFromRequest(r, d.deps.Credentials)
	req := &resource.Request{
		HTTP:     r,
		Vars:     mux.Vars(r),
		Basename: d.route.Basename,
		Accessor: accessor.New(d.deps.Factory, creds, logger),
		URLs:     d.urls,
		Logger:   logger,
	}

	resp, err := op(req)
	if err != nil {
		if status := errors.HTTPStatus(err); status >= http.StatusInternalServerError {
			logger.Errorf(r.Context(), err, "Request to %s failed", r.URL.Path)
		} else {
			logger.Debugf(r.Context(), "Request to %s rejected: %v", r.URL.Path, err)
		}
		resource.WriteError(w, err)
		return
	}
	resource.WriteResponse(w, resp)
}
