package resource

import (
	"fmt"
	"net/http"
	"reflect"

	"github.com/olusolaa/cloud-resource-api/internal/core/domain"
	"github.com/olusolaa/cloud-resource-api/internal/errors"
)

// DefaultLookupRegex matches one path segment without dots.
const DefaultLookupRegex = `[^/.]+`

// Definition configures a Handler for one resource kind. Only the functions
// required by Capabilities and Retrieval need to be set; NewHandler rejects
// incomplete definitions.
type Definition[T domain.Object] struct {
	Kind         domain.ResourceKind
	Capabilities Capability
	Retrieval    Retrieval
	LookupRegex  string

	// ParentParam names the path variable of the enclosing resource on
	// nested routes (e.g. "region_pk"). VerifyParent must return a
	// not-found error when that parent does not exist.
	ParentParam  string
	VerifyParent func(req *Request, parentID string) error

	List      func(req *Request) ([]T, error)
	Get       func(req *Request, id string) (T, error)
	Create    func(req *Request, input any) (T, error)
	Update    func(req *Request, current T, input any) (T, error)
	Delete    func(req *Request, current T) error
	Synthetic func() T

	// NewInput returns an empty payload for create and full updates.
	// InputFrom returns a payload pre-filled from current, used for PATCH.
	NewInput  func() any
	InputFrom func(current T) any

	Serializer Serializer
	Permission ObjectPermission
	Actions    []Action
}

// Action is an extra route on a resource, e.g. POST /instances/{pk}/reboot/.
// Detail actions receive the resolved and permission-checked object.
type Action struct {
	Name    string
	Detail  bool
	Methods []string
	Run     func(req *Request, obj domain.Object) (*Response, error)
}

func (d *Definition[T]) validate() error {
	missing := func(what string) error {
		return errors.New(errors.CodeInternal, fmt.Sprintf("resource %s: %s is required by its capabilities", d.Kind, what))
	}
	if d.Kind == "" {
		return errors.New(errors.CodeInternal, "resource definition has no kind")
	}
	if d.Capabilities == 0 {
		return missing("at least one capability")
	}
	if d.Capabilities.Has(CapList) && d.List == nil {
		return missing("List")
	}
	if d.Capabilities.Has(CapRetrieve) || d.Capabilities.Has(CapUpdate) || d.Capabilities.Has(CapDelete) || hasDetailAction(d.Actions) {
		switch d.Retrieval {
		case RetrieveDirect:
			if d.Get == nil {
				return missing("Get")
			}
		case RetrieveFilteredList:
			if d.List == nil {
				return missing("List")
			}
		case RetrieveSynthetic:
			if d.Synthetic == nil {
				return missing("Synthetic")
			}
		default:
			return errors.New(errors.CodeInternal, fmt.Sprintf("resource %s: unknown retrieval strategy %d", d.Kind, d.Retrieval))
		}
	}
	if d.Capabilities.Has(CapCreate) && (d.Create == nil || d.NewInput == nil) {
		return missing("Create and NewInput")
	}
	if d.Capabilities.Has(CapUpdate) && (d.Update == nil || d.NewInput == nil) {
		return missing("Update and NewInput")
	}
	if d.Capabilities.Has(CapDelete) && d.Delete == nil {
		return missing("Delete")
	}
	if d.ParentParam != "" && d.VerifyParent == nil {
		return missing("VerifyParent")
	}
	seen := map[string]struct{}{}
	for _, a := range d.Actions {
		if a.Name == "" || a.Run == nil || len(a.Methods) == 0 {
			return errors.New(errors.CodeInternal, fmt.Sprintf("resource %s: action needs a name, methods and a Run func", d.Kind))
		}
		if _, dup := seen[a.Name]; dup {
			return errors.New(errors.CodeRouteConflict, fmt.Sprintf("resource %s: duplicate action '%s'", d.Kind, a.Name))
		}
		seen[a.Name] = struct{}{}
	}
	return nil
}

func hasDetailAction(actions []Action) bool {
	for _, a := range actions {
		if a.Detail {
			return true
		}
	}
	return false
}

// isAbsent reports whether o is nil or a typed nil pointer.
func isAbsent(o domain.Object) bool {
	if o == nil {
		return true
	}
	v := reflect.ValueOf(o)
	switch v.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice:
		return v.IsNil()
	}
	return false
}

var safeMethods = map[string]struct{}{
	http.MethodGet:     {},
	http.MethodHead:    {},
	http.MethodOptions: {},
}

// IsSafeMethod reports whether method cannot modify a resource.
func IsSafeMethod(method string) bool {
	_, ok := safeMethods[method]
	return ok
}
