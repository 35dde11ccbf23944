package resource

import (
	"fmt"

	"github.com/olusolaa/cloud-resource-api/internal/core/domain"
	"github.com/olusolaa/cloud-resource-api/internal/errors"
)

// ObjectPermission authorizes an operation against an object that has
// already been resolved. Implementations return a CodePermissionDenied
// error to refuse.
type ObjectPermission interface {
	HasObjectPermission(req *Request, obj domain.Object) error
}

type AllowAny struct{}

func (AllowAny) HasObjectPermission(*Request, domain.Object) error { return nil }

// TagGuard lets unsafe methods touch only objects carrying Key=Value.
// Reads are always allowed, as are kinds that carry no tags at all.
type TagGuard struct {
	Key   string
	Value string
}

func (g TagGuard) HasObjectPermission(req *Request, obj domain.Object) error {
	if g.Key == "" || IsSafeMethod(req.HTTP.Method) {
		return nil
	}
	tagged, ok := obj.(domain.Tagged)
	if !ok {
		return nil
	}
	if v, has := tagged.ResourceTags()[g.Key]; has && (g.Value == "" || v == g.Value) {
		return nil
	}
	return errors.PermissionDenied(fmt.Sprintf("'%s' is not tagged %s=%s and cannot be modified through this API", obj.ObjectID(), g.Key, g.Value))
}

// AllOf requires every permission to pass, in order.
type AllOf []ObjectPermission

func (a AllOf) HasObjectPermission(req *Request, obj domain.Object) error {
	for _, p := range a {
		if err := p.HasObjectPermission(req, obj); err != nil {
			return err
		}
	}
	return nil
}
