package resource

import (
	"fmt"

	jsoniter "github.com/json-iterator/go"

	"github.com/olusolaa/cloud-resource-api/internal/core/domain"
	"github.com/olusolaa/cloud-resource-api/internal/errors"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// FieldURL is the field hyperlinked serializers add to every object.
const FieldURL = "url"

// Serializer turns a domain object into the value written to the response.
type Serializer interface {
	Serialize(req *Request, obj domain.Object) (any, error)
}

type SerializerFunc func(req *Request, obj domain.Object) (any, error)

func (f SerializerFunc) Serialize(req *Request, obj domain.Object) (any, error) {
	return f(req, obj)
}

// Plain renders the object's JSON fields as they are.
type Plain struct{}

func (Plain) Serialize(_ *Request, obj domain.Object) (any, error) {
	return obj, nil
}

// Hyperlinked renders the object's JSON fields plus a url field resolving to
// its detail route. DetailName defaults to "{basename}-detail" of the route
// serving the request; parent lookups are carried over from the request.
type Hyperlinked struct {
	DetailName string
}

func (s Hyperlinked) Serialize(req *Request, obj domain.Object) (any, error) {
	fields, err := toFieldMap(obj)
	if err != nil {
		return nil, err
	}

	name := s.DetailName
	if name == "" {
		name = req.Basename + "-detail"
	}
	vars := make(map[string]string, len(req.Vars)+1)
	for k, v := range req.Vars {
		vars[k] = v
	}
	vars[LookupPK] = obj.ObjectID()

	link, err := req.AbsoluteURL(name, vars)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, fmt.Sprintf("failed to build url for %T '%s'", obj, obj.ObjectID()))
	}
	fields[FieldURL] = link
	return fields, nil
}

// Links renders a fixed map of field name to absolute route URL. It ignores
// the object's own fields, which is what singleton summaries need: the
// schema, not the (empty) record, decides the shape of the output.
type Links map[string]string

func (l Links) Serialize(req *Request, _ domain.Object) (any, error) {
	out := make(map[string]any, len(l))
	for field, routeName := range l {
		link, err := req.AbsoluteURL(routeName, req.Vars)
		if err != nil {
			return nil, errors.Wrap(err, errors.CodeInternal, fmt.Sprintf("failed to resolve link '%s' (%s)", field, routeName))
		}
		out[field] = link
	}
	return out, nil
}

func toFieldMap(obj domain.Object) (map[string]any, error) {
	raw, err := json.Marshal(obj)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, fmt.Sprintf("failed to serialize %T", obj))
	}
	fields := map[string]any{}
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, fmt.Sprintf("serialized %T is not an object", obj))
	}
	return fields, nil
}
