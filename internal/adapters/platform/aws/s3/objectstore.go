package s3

import (
	"context"
	"sort"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"

	awserrors "github.com/olusolaa/cloud-resource-api/internal/adapters/platform/aws/errors"
	"github.com/olusolaa/cloud-resource-api/internal/adapters/platform/aws/limiter"
	"github.com/olusolaa/cloud-resource-api/internal/adapters/platform/aws/shared"
	"github.com/olusolaa/cloud-resource-api/internal/core/domain"
	"github.com/olusolaa/cloud-resource-api/internal/core/ports"
	"github.com/olusolaa/cloud-resource-api/internal/log"
)

// ObjectStore implements ports.ObjectStoreService. Buckets are identified by
// name and objects by key.
type ObjectStore struct {
	client       S3ClientInterface
	region       string
	limiter      shared.RateLimiter
	errorHandler shared.ErrorHandler
	logger       ports.Logger
}

type Option func(*ObjectStore)

func WithRateLimiter(l shared.RateLimiter) Option {
	return func(o *ObjectStore) {
		if l != nil {
			o.limiter = l
		}
	}
}

func WithErrorHandler(h shared.ErrorHandler) Option {
	return func(o *ObjectStore) {
		if h != nil {
			o.errorHandler = h
		}
	}
}

func WithLogger(l ports.Logger) Option {
	return func(o *ObjectStore) {
		if l != nil {
			o.logger = l
		}
	}
}

func NewObjectStore(client S3ClientInterface, region string, opts ...Option) *ObjectStore {
	o := &ObjectStore{
		client:       client,
		region:       region,
		logger:       log.NewNop(),
		errorHandler: &awserrors.DefaultErrorHandler{},
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.limiter == nil {
		o.limiter = limiter.New(limiter.DefaultRPS, o.logger)
	}
	return o
}

func (o *ObjectStore) wait(ctx context.Context) error {
	return o.limiter.Wait(ctx, o.logger)
}

func (o *ObjectStore) ListBuckets(ctx context.Context) ([]*domain.Bucket, error) {
	if err := o.wait(ctx); err != nil {
		return nil, err
	}
	out, err := o.client.ListBuckets(ctx, &s3.ListBucketsInput{})
	if err != nil {
		return nil, o.errorHandler.Handle(ctx, "S3 bucket", "", err)
	}
	buckets := make([]*domain.Bucket, 0, len(out.Buckets))
	for _, b := range out.Buckets {
		if aws.ToString(b.Name) == "" {
			continue
		}
		buckets = append(buckets, mapBucket(b))
	}
	sort.Slice(buckets, func(i, j int) bool { return buckets[i].Name < buckets[j].Name })
	return buckets, nil
}

// GetBucket confirms the bucket exists and looks up its region.
func (o *ObjectStore) GetBucket(ctx context.Context, name string) (*domain.Bucket, error) {
	if err := o.wait(ctx); err != nil {
		return nil, err
	}
	if _, err := o.client.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(name)}); err != nil {
		return nil, o.errorHandler.Handle(ctx, "S3 bucket", name, err)
	}

	bucket := &domain.Bucket{ID: name, Name: name}
	if err := o.wait(ctx); err != nil {
		return nil, err
	}
	loc, err := o.client.GetBucketLocation(ctx, &s3.GetBucketLocationInput{Bucket: aws.String(name)})
	if err != nil {
		o.logger.Warnf(ctx, "Could not read location of S3 bucket %s: %v", name, err)
	} else {
		bucket.Region = bucketRegion(loc.LocationConstraint)
	}
	return bucket, nil
}

func (o *ObjectStore) CreateBucket(ctx context.Context, spec domain.BucketSpec) (*domain.Bucket, error) {
	input := &s3.CreateBucketInput{Bucket: aws.String(spec.Name)}
	if o.region != "" && o.region != "us-east-1" {
		input.CreateBucketConfiguration = &s3types.CreateBucketConfiguration{
			LocationConstraint: s3types.BucketLocationConstraint(o.region),
		}
	}
	if err := o.wait(ctx); err != nil {
		return nil, err
	}
	if _, err := o.client.CreateBucket(ctx, input); err != nil {
		return nil, o.errorHandler.Handle(ctx, "S3 bucket", spec.Name, err)
	}
	return &domain.Bucket{ID: spec.Name, Name: spec.Name, Region: o.region}, nil
}

func (o *ObjectStore) DeleteBucket(ctx context.Context, name string) error {
	if err := o.wait(ctx); err != nil {
		return err
	}
	if _, err := o.client.DeleteBucket(ctx, &s3.DeleteBucketInput{Bucket: aws.String(name)}); err != nil {
		return o.errorHandler.Handle(ctx, "S3 bucket", name, err)
	}
	return nil
}

func (o *ObjectStore) ListObjects(ctx context.Context, bucket string) ([]*domain.BucketObject, error) {
	paginator := s3.NewListObjectsV2Paginator(o.client, &s3.ListObjectsV2Input{Bucket: aws.String(bucket)})
	objects := []*domain.BucketObject{}
	for paginator.HasMorePages() {
		if err := o.wait(ctx); err != nil {
			return nil, err
		}
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, o.errorHandler.Handle(ctx, "objects of S3 bucket", bucket, err)
		}
		for _, obj := range page.Contents {
			objects = append(objects, mapObject(bucket, obj))
		}
	}
	return objects, nil
}

func (o *ObjectStore) GetObject(ctx context.Context, bucket string, key string) (*domain.BucketObject, error) {
	if err := o.wait(ctx); err != nil {
		return nil, err
	}
	out, err := o.client.HeadObject(ctx, &s3.HeadObjectInput{Bucket: aws.String(bucket), Key: aws.String(key)})
	if err != nil {
		return nil, o.errorHandler.Handle(ctx, "S3 object", bucket+"/"+key, err)
	}
	return mapObject(bucket, s3types.Object{
		Key:          aws.String(key),
		Size:         out.ContentLength,
		ETag:         out.ETag,
		LastModified: out.LastModified,
	}), nil
}

func (o *ObjectStore) DeleteObject(ctx context.Context, bucket string, key string) error {
	if _, err := o.GetObject(ctx, bucket, key); err != nil {
		return err
	}
	if err := o.wait(ctx); err != nil {
		return err
	}
	if _, err := o.client.DeleteObject(ctx, &s3.DeleteObjectInput{Bucket: aws.String(bucket), Key: aws.String(key)}); err != nil {
		return o.errorHandler.Handle(ctx, "S3 object", bucket+"/"+key, err)
	}
	return nil
}

var _ ports.ObjectStoreService = (*ObjectStore)(nil)
