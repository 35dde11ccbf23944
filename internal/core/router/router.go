// Package router turns a registry of resource handlers and plain endpoints
// into named routes, mounts them on a gorilla/mux router and resolves route
// names back to URLs.
package router

import (
	"fmt"
	"strings"
	"sync"

	"github.com/olusolaa/cloud-resource-api/internal/core/resource"
	"github.com/olusolaa/cloud-resource-api/internal/errors"
)

// RootName is the route name of the API root in default mode.
const RootName = "api-root"

type entry struct {
	prefix   string
	basename string
	handler  *resource.Handler
	endpoint *resource.Endpoint
}

// nameSet is shared by a router and everything nested under it, so that a
// basename is unique across the whole tree.
type nameSet struct {
	mu    sync.Mutex
	names map[string]string
}

func (n *nameSet) claim(basename, pattern string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if other, dup := n.names[basename]; dup {
		return errors.New(errors.CodeRouteConflict, fmt.Sprintf("basename '%s' is already registered for '%s'", basename, other))
	}
	n.names[basename] = pattern
	return nil
}

type Router struct {
	hybrid        bool
	root          bool
	trailingSlash bool

	// base is the path of this router relative to the mount point; empty for
	// the top-level router. lookups are the parent path variables in scope.
	base    string
	lookups []string
	parent  *Router

	names    *nameSet
	entries  []entry
	prefixes map[string]struct{}
	nested   []*Router
	frozen   bool
	resolver *muxResolver
}

type Option func(*Router)

// WithTrailingSlash controls whether generated patterns end in "/".
func WithTrailingSlash(on bool) Option {
	return func(r *Router) { r.trailingSlash = on }
}

func newRouter(hybrid, root bool, opts ...Option) *Router {
	r := &Router{
		hybrid:        hybrid,
		root:          root,
		trailingSlash: true,
		names:         &nameSet{names: map[string]string{}},
		prefixes:      map[string]struct{}{},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// NewSimpleRouter accepts resource handlers and plain endpoints.
func NewSimpleRouter(opts ...Option) *Router {
	return newRouter(true, false, opts...)
}

// NewDefaultRouter is a simple router that also serves an API root listing
// every top-level list route.
func NewDefaultRouter(opts ...Option) *Router {
	return newRouter(true, true, opts...)
}

// NewStandardRouter accepts resource handlers only.
func NewStandardRouter(opts ...Option) *Router {
	return newRouter(false, false, opts...)
}

// Register adds a handler under prefix. handler must be a *resource.Handler
// or, on hybrid routers, a *resource.Endpoint.
func (r *Router) Register(prefix string, handler any, basename string) error {
	if r.isFrozen() {
		return errors.New(errors.CodeRouteConflict, fmt.Sprintf("cannot register '%s': router is already mounted", prefix))
	}
	prefix = strings.Trim(prefix, "/")
	if prefix == "" {
		return errors.New(errors.CodeInternal, "route prefix must not be empty")
	}
	if basename == "" {
		return errors.New(errors.CodeInternal, fmt.Sprintf("route '%s' needs a basename", prefix))
	}

	e := entry{prefix: prefix, basename: basename}
	switch h := handler.(type) {
	case *resource.Handler:
		if err := r.checkParentParam(prefix, h); err != nil {
			return err
		}
		e.handler = h
	case *resource.Endpoint:
		if !r.hybrid {
			return errors.New(errors.CodeInternal, fmt.Sprintf("route '%s': plain endpoints need a hybrid router", prefix))
		}
		e.endpoint = h
	default:
		return errors.New(errors.CodeInternal, fmt.Sprintf("route '%s': unsupported handler type %T", prefix, handler))
	}

	if _, dup := r.prefixes[prefix]; dup {
		return errors.New(errors.CodeRouteConflict, fmt.Sprintf("prefix '%s' is already registered", r.join(prefix)))
	}
	if err := r.names.claim(basename, r.join(prefix)); err != nil {
		return err
	}
	r.prefixes[prefix] = struct{}{}
	r.entries = append(r.entries, e)
	return nil
}

// MustRegister is Register for static registration tables.
func (r *Router) MustRegister(prefix string, handler any, basename string) *Router {
	if err := r.Register(prefix, handler, basename); err != nil {
		panic(err)
	}
	return r
}

// checkParentParam ties nested resources to the lookup variable of the
// router they are registered on, so the parent is always verified.
func (r *Router) checkParentParam(prefix string, h *resource.Handler) error {
	want := ""
	if n := len(r.lookups); n > 0 {
		want = r.lookups[n-1]
	}
	if h.ParentParam() != want {
		return errors.New(errors.CodeInternal, fmt.Sprintf("route '%s': %s handler expects parent variable '%s', router provides '%s'",
			r.join(prefix), h.Kind(), h.ParentParam(), want))
	}
	return nil
}

// Nested returns a router whose routes live under the detail route of the
// resource registered at parentPrefix. The parent identifier is exposed as
// the path variable "{lookup}_pk".
func (r *Router) Nested(parentPrefix, lookup string) (*Router, error) {
	parentPrefix = strings.Trim(parentPrefix, "/")
	var parent *entry
	for i := range r.entries {
		if r.entries[i].prefix == parentPrefix {
			parent = &r.entries[i]
			break
		}
	}
	if parent == nil {
		return nil, errors.New(errors.CodeInternal, fmt.Sprintf("cannot nest under '%s': prefix is not registered", parentPrefix))
	}
	if parent.handler == nil || !parent.handler.Capabilities().Has(resource.CapRetrieve) {
		return nil, errors.New(errors.CodeInternal, fmt.Sprintf("cannot nest under '%s': it has no detail route", parentPrefix))
	}
	if lookup == "" {
		return nil, errors.New(errors.CodeInternal, "nested router needs a lookup name")
	}

	param := lookup + "_pk"
	for _, existing := range r.lookups {
		if existing == param {
			return nil, errors.New(errors.CodeRouteConflict, fmt.Sprintf("lookup '%s' is already used by an enclosing router", param))
		}
	}

	child := &Router{
		hybrid:        r.hybrid,
		trailingSlash: r.trailingSlash,
		base:          r.join(parentPrefix, "{"+param+":"+parent.handler.LookupRegex()+"}"),
		lookups:       append(append([]string{}, r.lookups...), param),
		parent:        r,
		names:         r.names,
		prefixes:      map[string]struct{}{},
	}
	r.nested = append(r.nested, child)
	return child, nil
}

// MustNested is Nested for static registration tables.
func (r *Router) MustNested(parentPrefix, lookup string) *Router {
	child, err := r.Nested(parentPrefix, lookup)
	if err != nil {
		panic(err)
	}
	return child
}

func (r *Router) top() *Router {
	for r.parent != nil {
		r = r.parent
	}
	return r
}

func (r *Router) isFrozen() bool {
	return r.top().frozen
}

func (r *Router) join(parts ...string) string {
	all := make([]string, 0, len(parts)+1)
	if r.base != "" {
		all = append(all, r.base)
	}
	return strings.Join(append(all, parts...), "/")
}
