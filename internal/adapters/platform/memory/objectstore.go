package memory

import (
	"context"

	"github.com/olusolaa/cloud-resource-api/internal/core/domain"
)

// objectStoreService creates buckets in the region of the provider that
// asked for them. Bucket names are global.
type objectStoreService struct {
	c      *Cloud
	region string
}

func (s objectStoreService) ListBuckets(context.Context) ([]*domain.Bucket, error) {
	s.c.mu.RLock()
	defer s.c.mu.RUnlock()
	return sorted(s.c.buckets, nil), nil
}

func (s objectStoreService) GetBucket(_ context.Context, name string) (*domain.Bucket, error) {
	s.c.mu.RLock()
	defer s.c.mu.RUnlock()
	return lookup(s.c.buckets, domain.KindBucket, name)
}

func (s objectStoreService) CreateBucket(_ context.Context, spec domain.BucketSpec) (*domain.Bucket, error) {
	s.c.mu.Lock()
	defer s.c.mu.Unlock()
	if _, ok := s.c.buckets[spec.Name]; ok {
		return nil, conflict("bucket %q already exists", spec.Name)
	}
	b := &domain.Bucket{ID: spec.Name, Name: spec.Name, Region: s.region, CreatedAt: s.c.timestamp()}
	s.c.buckets[b.ID] = b
	s.c.objects[b.ID] = map[string]*domain.BucketObject{}
	return clone(b), nil
}

func (s objectStoreService) DeleteBucket(_ context.Context, name string) error {
	s.c.mu.Lock()
	defer s.c.mu.Unlock()
	if _, ok := s.c.buckets[name]; !ok {
		return lookupErr(domain.KindBucket, name)
	}
	if len(s.c.objects[name]) > 0 {
		return conflict("bucket %s is not empty", name)
	}
	delete(s.c.buckets, name)
	delete(s.c.objects, name)
	return nil
}

func (s objectStoreService) ListObjects(_ context.Context, bucket string) ([]*domain.BucketObject, error) {
	s.c.mu.RLock()
	defer s.c.mu.RUnlock()
	objects, ok := s.c.objects[bucket]
	if !ok {
		return nil, lookupErr(domain.KindBucket, bucket)
	}
	return sorted(objects, nil), nil
}

func (s objectStoreService) GetObject(_ context.Context, bucket string, key string) (*domain.BucketObject, error) {
	s.c.mu.RLock()
	defer s.c.mu.RUnlock()
	objects, ok := s.c.objects[bucket]
	if !ok {
		return nil, lookupErr(domain.KindBucket, bucket)
	}
	return lookup(objects, domain.KindBucketObject, key)
}

func (s objectStoreService) DeleteObject(_ context.Context, bucket string, key string) error {
	s.c.mu.Lock()
	defer s.c.mu.Unlock()
	objects, ok := s.c.objects[bucket]
	if !ok {
		return lookupErr(domain.KindBucket, bucket)
	}
	if _, ok := objects[key]; !ok {
		return lookupErr(domain.KindBucketObject, key)
	}
	delete(objects, key)
	return nil
}
