package resource

import (
	"net/http"

	"github.com/olusolaa/cloud-resource-api/internal/core/domain"
)

// Endpoint is a plain route backed by a single GET function. It has no
// collection, no detail route and no capability set.
type Endpoint struct {
	kind domain.ResourceKind
	get  func(req *Request) (any, error)
}

func NewEndpoint(kind domain.ResourceKind, get func(req *Request) (any, error)) *Endpoint {
	return &Endpoint{kind: kind, get: get}
}

func (e *Endpoint) Kind() domain.ResourceKind { return e.kind }

func (e *Endpoint) Get(req *Request) (*Response, error) {
	body, err := e.get(req)
	if err != nil {
		return nil, err
	}
	return &Response{Status: http.StatusOK, Body: body}, nil
}

// Summary is the synthetic record behind singleton endpoints.
type Summary struct {
	Kind domain.ResourceKind `json:"-"`
}

func (s *Summary) ObjectID() string { return string(s.Kind) }

// NewSingleton exposes a kind that has exactly one, synthetic, instance per
// request. Its only operation returns the serialized synthetic record.
func NewSingleton[T domain.Object](kind domain.ResourceKind, synthetic func() T, serializer Serializer) (*Endpoint, error) {
	h, err := NewHandler(Definition[T]{
		Kind:         kind,
		Capabilities: CapRetrieve,
		Retrieval:    RetrieveSynthetic,
		Synthetic:    synthetic,
		Serializer:   serializer,
	})
	if err != nil {
		return nil, err
	}
	return NewEndpoint(kind, func(req *Request) (any, error) {
		obj, err := h.RetrieveObject(req)
		if err != nil {
			return nil, err
		}
		return h.serializer.Serialize(req, obj)
	}), nil
}

// SummarySingleton is NewSingleton for link-map summaries.
func SummarySingleton(kind domain.ResourceKind, links Links) (*Endpoint, error) {
	return NewSingleton(kind, func() *Summary { return &Summary{Kind: kind} }, links)
}
