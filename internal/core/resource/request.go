package resource

import (
	"context"
	"net/http"
	"net/url"

	"github.com/olusolaa/cloud-resource-api/internal/core/accessor"
	"github.com/olusolaa/cloud-resource-api/internal/core/ports"
	"github.com/olusolaa/cloud-resource-api/internal/errors"
)

// LookupPK is the path variable carrying the identifier on detail routes.
const LookupPK = "pk"

// URLResolver turns a route name and its path variables into a URL path.
type URLResolver interface {
	Reverse(name string, vars map[string]string) (*url.URL, error)
}

// Request is everything an operation may depend on. It is built by the
// router for every call and passed explicitly; nothing is looked up from
// ambient state.
type Request struct {
	HTTP *http.Request
	// Vars holds the path variables of the matched route, including parent
	// lookups such as region_pk.
	Vars     map[string]string
	Basename string
	Accessor *accessor.Accessor
	URLs     URLResolver
	Logger   ports.Logger
}

func (r *Request) Context() context.Context {
	return r.HTTP.Context()
}

func (r *Request) PK() string {
	return r.Vars[LookupPK]
}

func (r *Request) Var(name string) string {
	return r.Vars[name]
}

// Provider returns the request's provider handle, opening it on first use.
func (r *Request) Provider() (ports.Provider, error) {
	if r.Accessor == nil {
		return nil, errors.New(errors.CodeInternal, "request has no provider accessor")
	}
	return r.Accessor.Provider(r.Context())
}

// AbsoluteURL resolves a route name to an absolute URL using the scheme and
// host the request arrived on.
func (r *Request) AbsoluteURL(name string, vars map[string]string) (string, error) {
	if r.URLs == nil {
		return "", errors.New(errors.CodeInternal, "request has no URL resolver")
	}
	u, err := r.URLs.Reverse(name, vars)
	if err != nil {
		return "", err
	}
	u.Scheme = requestScheme(r.HTTP)
	u.Host = r.HTTP.Host
	return u.String(), nil
}

func requestScheme(r *http.Request) string {
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		return proto
	}
	if r.TLS != nil {
		return "https"
	}
	return "http"
}

// Response is the outcome of a successful operation.
type Response struct {
	Status int
	Body   any
}

// Operation is one HTTP method bound to a route.
type Operation func(req *Request) (*Response, error)
