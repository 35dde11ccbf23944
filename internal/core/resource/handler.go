package resource

import (
	"fmt"
	"net/http"

	"github.com/olusolaa/cloud-resource-api/internal/core/domain"
	"github.com/olusolaa/cloud-resource-api/internal/errors"
)

// Handler is the type-erased form of a Definition.
type Handler struct {
	kind         domain.ResourceKind
	capabilities Capability
	retrieval    Retrieval
	lookupRegex  string
	parentParam  string
	actions      []Action

	verifyParent func(req *Request, parentID string) error
	list         func(req *Request) ([]domain.Object, error)
	get          func(req *Request, id string) (domain.Object, error)
	create       func(req *Request, input any) (domain.Object, error)
	update       func(req *Request, current domain.Object, input any) (domain.Object, error)
	destroy      func(req *Request, current domain.Object) error
	synthetic    func() domain.Object
	newInput     func() any
	inputFrom    func(current domain.Object) any

	serializer Serializer
	permission ObjectPermission
}

// NewHandler validates def and erases its type parameter.
func NewHandler[T domain.Object](def Definition[T]) (*Handler, error) {
	if err := def.validate(); err != nil {
		return nil, err
	}

	h := &Handler{
		kind:         def.Kind,
		capabilities: def.Capabilities,
		retrieval:    def.Retrieval,
		lookupRegex:  def.LookupRegex,
		parentParam:  def.ParentParam,
		actions:      def.Actions,
		verifyParent: def.VerifyParent,
		newInput:     def.NewInput,
		serializer:   def.Serializer,
		permission:   def.Permission,
	}
	if h.lookupRegex == "" {
		h.lookupRegex = DefaultLookupRegex
	}
	if h.serializer == nil {
		if def.Capabilities.Has(CapRetrieve) {
			h.serializer = Hyperlinked{}
		} else {
			h.serializer = Plain{}
		}
	}
	if h.permission == nil {
		h.permission = AllowAny{}
	}

	if def.List != nil {
		h.list = func(req *Request) ([]domain.Object, error) {
			items, err := def.List(req)
			if err != nil {
				return nil, err
			}
			out := make([]domain.Object, 0, len(items))
			for _, item := range items {
				out = append(out, item)
			}
			return out, nil
		}
	}
	if def.Get != nil {
		h.get = func(req *Request, id string) (domain.Object, error) {
			obj, err := def.Get(req, id)
			if err != nil {
				return nil, err
			}
			return obj, nil
		}
	}
	if def.Synthetic != nil {
		h.synthetic = func() domain.Object { return def.Synthetic() }
	}
	if def.Create != nil {
		h.create = func(req *Request, input any) (domain.Object, error) {
			return def.Create(req, input)
		}
	}
	if def.Update != nil {
		h.update = func(req *Request, current domain.Object, input any) (domain.Object, error) {
			typed, ok := current.(T)
			if !ok {
				return nil, typeMismatch(def.Kind, current)
			}
			return def.Update(req, typed, input)
		}
	}
	if def.InputFrom != nil {
		h.inputFrom = func(current domain.Object) any {
			typed, ok := current.(T)
			if !ok {
				return nil
			}
			return def.InputFrom(typed)
		}
	}
	if def.Delete != nil {
		h.destroy = func(req *Request, current domain.Object) error {
			typed, ok := current.(T)
			if !ok {
				return typeMismatch(def.Kind, current)
			}
			return def.Delete(req, typed)
		}
	}
	return h, nil
}

// MustHandler is NewHandler for static registration tables.
func MustHandler[T domain.Object](def Definition[T]) *Handler {
	h, err := NewHandler(def)
	if err != nil {
		panic(err)
	}
	return h
}

func typeMismatch(kind domain.ResourceKind, obj domain.Object) error {
	return errors.New(errors.CodeTypeAssertionError, fmt.Sprintf("resource %s received object of type %T", kind, obj))
}

func (h *Handler) Kind() domain.ResourceKind { return h.kind }
func (h *Handler) Capabilities() Capability  { return h.capabilities }
func (h *Handler) Retrieval() Retrieval      { return h.retrieval }
func (h *Handler) LookupRegex() string       { return h.lookupRegex }
func (h *Handler) ParentParam() string       { return h.parentParam }
func (h *Handler) Actions() []Action         { return h.actions }

func (h *Handler) checkParent(req *Request) error {
	if h.parentParam == "" {
		return nil
	}
	parentID := req.Var(h.parentParam)
	if parentID == "" {
		return errors.New(errors.CodeInternal, fmt.Sprintf("resource %s is nested but route has no '%s' variable", h.kind, h.parentParam))
	}
	return h.verifyParent(req, parentID)
}

// ListObjects returns every object of the kind visible to the request. On
// nested routes the parent is verified first, so a missing parent is a
// not-found error rather than an empty list.
func (h *Handler) ListObjects(req *Request) ([]domain.Object, error) {
	if h.list == nil {
		return nil, errors.New(errors.CodeNotImplemented, fmt.Sprintf("resource %s cannot be listed", h.kind))
	}
	if err := h.checkParent(req); err != nil {
		return nil, err
	}
	return h.list(req)
}

// RetrieveObject resolves the object named by the request's pk variable.
func (h *Handler) RetrieveObject(req *Request) (domain.Object, error) {
	id := req.PK()

	var obj domain.Object
	switch h.retrieval {
	case RetrieveSynthetic:
		obj = h.synthetic()
	case RetrieveFilteredList:
		items, err := h.ListObjects(req)
		if err != nil {
			return nil, err
		}
		for _, item := range items {
			if item.ObjectID() == id {
				obj = item
				break
			}
		}
	default:
		if err := h.checkParent(req); err != nil {
			return nil, err
		}
		found, err := h.get(req, id)
		if err != nil {
			return nil, err
		}
		obj = found
	}

	if isAbsent(obj) {
		return nil, errors.NotFound(h.kind.String(), id)
	}
	return obj, nil
}

// object resolves the target of a detail operation and applies object
// permissions to it.
func (h *Handler) object(req *Request) (domain.Object, error) {
	obj, err := h.RetrieveObject(req)
	if err != nil {
		return nil, err
	}
	if err := h.permission.HasObjectPermission(req, obj); err != nil {
		return nil, err
	}
	return obj, nil
}

func (h *Handler) List(req *Request) (*Response, error) {
	items, err := h.ListObjects(req)
	if err != nil {
		return nil, err
	}
	out := make([]any, 0, len(items))
	for _, item := range items {
		s, err := h.serializer.Serialize(req, item)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return &Response{Status: http.StatusOK, Body: out}, nil
}

func (h *Handler) Retrieve(req *Request) (*Response, error) {
	obj, err := h.object(req)
	if err != nil {
		return nil, err
	}
	return h.respond(req, http.StatusOK, obj)
}

func (h *Handler) Create(req *Request) (*Response, error) {
	if err := h.checkParent(req); err != nil {
		return nil, err
	}
	input := h.newInput()
	if err := DecodeInput(req, input); err != nil {
		return nil, err
	}
	obj, err := h.create(req, input)
	if err != nil {
		return nil, err
	}
	if isAbsent(obj) {
		return nil, errors.New(errors.CodeInternal, fmt.Sprintf("create of %s returned no object", h.kind))
	}
	req.Logger.Infof(req.Context(), "Created %s '%s'", h.kind, obj.ObjectID())
	return h.respond(req, http.StatusCreated, obj)
}

// Update replaces the object with the request body.
func (h *Handler) Update(req *Request) (*Response, error) {
	return h.doUpdate(req, false)
}

// PartialUpdate applies the request body on top of the current object.
func (h *Handler) PartialUpdate(req *Request) (*Response, error) {
	return h.doUpdate(req, true)
}

func (h *Handler) doUpdate(req *Request, partial bool) (*Response, error) {
	current, err := h.object(req)
	if err != nil {
		return nil, err
	}
	var input any
	if partial && h.inputFrom != nil {
		input = h.inputFrom(current)
	}
	if input == nil {
		input = h.newInput()
	}
	if err := DecodeInput(req, input); err != nil {
		return nil, err
	}
	obj, err := h.update(req, current, input)
	if err != nil {
		return nil, err
	}
	return h.respond(req, http.StatusOK, obj)
}

func (h *Handler) Destroy(req *Request) (*Response, error) {
	obj, err := h.object(req)
	if err != nil {
		return nil, err
	}
	if err := h.destroy(req, obj); err != nil {
		return nil, err
	}
	req.Logger.Infof(req.Context(), "Deleted %s '%s'", h.kind, obj.ObjectID())
	return &Response{Status: http.StatusNoContent}, nil
}

// ActionOperation binds a custom action to the handler's retrieval and
// permission pipeline.
func (h *Handler) ActionOperation(a Action) Operation {
	if !a.Detail {
		return func(req *Request) (*Response, error) {
			if err := h.checkParent(req); err != nil {
				return nil, err
			}
			return a.Run(req, nil)
		}
	}
	return func(req *Request) (*Response, error) {
		obj, err := h.object(req)
		if err != nil {
			return nil, err
		}
		return a.Run(req, obj)
	}
}

func (h *Handler) respond(req *Request, status int, obj domain.Object) (*Response, error) {
	body, err := h.serializer.Serialize(req, obj)
	if err != nil {
		return nil, err
	}
	return &Response{Status: status, Body: body}, nil
}
