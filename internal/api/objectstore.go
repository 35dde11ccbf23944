package api

import (
	"github.com/olusolaa/cloud-resource-api/internal/core/domain"
	"github.com/olusolaa/cloud-resource-api/internal/core/ports"
	"github.com/olusolaa/cloud-resource-api/internal/core/resource"
	"github.com/olusolaa/cloud-resource-api/internal/core/router"
)

// Bucket names may contain dots; object keys may also contain slashes.
const (
	bucketLookup = `[^/]+`
	objectLookup = `.+`
)

func objectStoreOf(req *resource.Request) (ports.ObjectStoreService, error) {
	p, err := provider(req)
	if err != nil {
		return nil, err
	}
	return p.ObjectStore(), nil
}

func registerObjectStore(r *router.Router, deps Deps) error {
	summary, err := resource.SummarySingleton(domain.KindObjectStore, resource.Links{
		"buckets": "bucket-list",
	})
	if err != nil {
		return err
	}
	if err := r.Register("object_store", summary, "object_store"); err != nil {
		return err
	}

	buckets, err := resource.NewHandler(resource.Definition[*domain.Bucket]{
		Kind:         domain.KindBucket,
		Capabilities: resource.Mutable,
		Retrieval:    resource.RetrieveDirect,
		LookupRegex:  bucketLookup,
		List: func(req *resource.Request) ([]*domain.Bucket, error) {
			o, err := objectStoreOf(req)
			if err != nil {
				return nil, err
			}
			return o.ListBuckets(req.Context())
		},
		Get: func(req *resource.Request, id string) (*domain.Bucket, error) {
			o, err := objectStoreOf(req)
			if err != nil {
				return nil, err
			}
			return o.GetBucket(req.Context(), id)
		},
		NewInput: newInput[domain.BucketSpec](),
		Create: func(req *resource.Request, input any) (*domain.Bucket, error) {
			spec, err := inputAs[domain.BucketSpec](input)
			if err != nil {
				return nil, err
			}
			o, err := objectStoreOf(req)
			if err != nil {
				return nil, err
			}
			return o.CreateBucket(req.Context(), spec)
		},
		Delete: func(req *resource.Request, current *domain.Bucket) error {
			o, err := objectStoreOf(req)
			if err != nil {
				return err
			}
			return o.DeleteBucket(req.Context(), current.ID)
		},
		Permission: deps.permission(),
	})
	if err != nil {
		return err
	}
	if err := r.Register("object_store/buckets", buckets, "bucket"); err != nil {
		return err
	}

	objects, err := resource.NewHandler(resource.Definition[*domain.BucketObject]{
		Kind:         domain.KindBucketObject,
		Capabilities: resource.ReadOnly | resource.CapDelete,
		Retrieval:    resource.RetrieveDirect,
		LookupRegex:  objectLookup,
		ParentParam:  "bucket_pk",
		VerifyParent: func(req *resource.Request, bucket string) error {
			o, err := objectStoreOf(req)
			if err != nil {
				return err
			}
			b, err := o.GetBucket(req.Context(), bucket)
			return deps.authorizeParent(req, b, err)
		},
		List: func(req *resource.Request) ([]*domain.BucketObject, error) {
			o, err := objectStoreOf(req)
			if err != nil {
				return nil, err
			}
			return o.ListObjects(req.Context(), req.Var("bucket_pk"))
		},
		Get: func(req *resource.Request, key string) (*domain.BucketObject, error) {
			o, err := objectStoreOf(req)
			if err != nil {
				return nil, err
			}
			return o.GetObject(req.Context(), req.Var("bucket_pk"), key)
		},
		Delete: func(req *resource.Request, current *domain.BucketObject) error {
			o, err := objectStoreOf(req)
			if err != nil {
				return err
			}
			return o.DeleteObject(req.Context(), current.BucketName, current.ID)
		},
	})
	if err != nil {
		return err
	}
	bucketRouter, err := r.Nested("object_store/buckets", "bucket")
	if err != nil {
		return err
	}
	return bucketRouter.Register("objects", objects, "bucket_object")
}
