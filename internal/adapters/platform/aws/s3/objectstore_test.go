package s3

import (
	"context"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/olusolaa/cloud-resource-api/internal/core/domain"
	apperrors "github.com/olusolaa/cloud-resource-api/internal/errors"
	"github.com/olusolaa/cloud-resource-api/mocks"
)

type ObjectStoreTestSuite struct {
	suite.Suite
	mockS3      *mocks.MockS3Client
	mockLimiter *mocks.MockRateLimiter
	mockLogger  *mocks.MockLogger
	store       *ObjectStore
	ctx         context.Context
}

func (s *ObjectStoreTestSuite) SetupTest() {
	s.mockS3 = new(mocks.MockS3Client)
	s.mockLimiter = new(mocks.MockRateLimiter)
	s.mockLogger = new(mocks.MockLogger).AllowAll()
	s.mockLimiter.On("Wait", mock.Anything, mock.Anything).Return(nil).Maybe()
	s.ctx = context.Background()
	s.store = NewObjectStore(s.mockS3, "eu-central-1", WithRateLimiter(s.mockLimiter), WithLogger(s.mockLogger))
}

func TestObjectStoreTestSuite(t *testing.T) {
	suite.Run(t, new(ObjectStoreTestSuite))
}

func (s *ObjectStoreTestSuite) TestListBuckets_SortedAndSkipsUnnamed() {
	s.mockS3.On("ListBuckets", mock.Anything, mock.Anything, mock.Anything).Return(&s3.ListBucketsOutput{
		Buckets: []s3types.Bucket{{Name: aws.String("zeta")}, {}, {Name: aws.String("alpha")}},
	}, nil).Once()

	buckets, err := s.store.ListBuckets(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(buckets, 2)
	s.Equal("alpha", buckets[0].ID)
	s.Equal("zeta", buckets[1].Name)
}

func (s *ObjectStoreTestSuite) TestGetBucket_ReadsRegion() {
	s.mockS3.On("HeadBucket", mock.Anything, mock.Anything, mock.Anything).Return(&s3.HeadBucketOutput{}, nil).Once()
	s.mockS3.On("GetBucketLocation", mock.Anything, mock.Anything, mock.Anything).Return(&s3.GetBucketLocationOutput{
		LocationConstraint: s3types.BucketLocationConstraintEu,
	}, nil).Once()

	bucket, err := s.store.GetBucket(s.ctx, "logs")
	s.Require().NoError(err)
	s.Equal(&domain.Bucket{ID: "logs", Name: "logs", Region: "eu-west-1"}, bucket)
}

func (s *ObjectStoreTestSuite) TestGetBucket_LocationFailureOnlyWarns() {
	s.mockS3.On("HeadBucket", mock.Anything, mock.Anything, mock.Anything).Return(&s3.HeadBucketOutput{}, nil).Once()
	s.mockS3.On("GetBucketLocation", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, &smithy.GenericAPIError{Code: "AccessDenied"}).Once()

	bucket, err := s.store.GetBucket(s.ctx, "logs")
	s.Require().NoError(err)
	s.Empty(bucket.Region)
	s.mockLogger.AssertCalled(s.T(), "Warnf", mock.Anything, mock.Anything, mock.Anything)
}

func (s *ObjectStoreTestSuite) TestGetBucket_NotFound() {
	s.mockS3.On("HeadBucket", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, &smithy.GenericAPIError{Code: "NotFound"}).Once()

	_, err := s.store.GetBucket(s.ctx, "missing")
	s.True(apperrors.Is(err, apperrors.CodeResourceNotFound))
	s.mockS3.AssertNotCalled(s.T(), "GetBucketLocation", mock.Anything, mock.Anything, mock.Anything)
}

func (s *ObjectStoreTestSuite) TestCreateBucket_SetsLocationOutsideUSEast1() {
	s.mockS3.On("CreateBucket", mock.Anything, mock.MatchedBy(func(in *s3.CreateBucketInput) bool {
		return in.CreateBucketConfiguration != nil &&
			in.CreateBucketConfiguration.LocationConstraint == s3types.BucketLocationConstraint("eu-central-1")
	}), mock.Anything).Return(&s3.CreateBucketOutput{}, nil).Once()

	bucket, err := s.store.CreateBucket(s.ctx, domain.BucketSpec{Name: "assets"})
	s.Require().NoError(err)
	s.Equal("eu-central-1", bucket.Region)
	s.mockS3.AssertExpectations(s.T())
}

func (s *ObjectStoreTestSuite) TestCreateBucket_USEast1HasNoConfiguration() {
	store := NewObjectStore(s.mockS3, "us-east-1", WithRateLimiter(s.mockLimiter))
	s.mockS3.On("CreateBucket", mock.Anything, &s3.CreateBucketInput{Bucket: aws.String("assets")}, mock.Anything).
		Return(&s3.CreateBucketOutput{}, nil).Once()

	_, err := store.CreateBucket(s.ctx, domain.BucketSpec{Name: "assets"})
	s.Require().NoError(err)
	s.mockS3.AssertExpectations(s.T())
}

func (s *ObjectStoreTestSuite) TestListObjects_Paginates() {
	s.mockS3.On("ListObjectsV2", mock.Anything, mock.MatchedBy(func(in *s3.ListObjectsV2Input) bool {
		return in.ContinuationToken == nil
	}), mock.Anything).Return(&s3.ListObjectsV2Output{
		Contents:              []s3types.Object{{Key: aws.String("a.txt"), Size: aws.Int64(3), ETag: aws.String(`"abc"`)}},
		IsTruncated:           aws.Bool(true),
		NextContinuationToken: aws.String("next"),
	}, nil).Once()
	s.mockS3.On("ListObjectsV2", mock.Anything, mock.MatchedBy(func(in *s3.ListObjectsV2Input) bool {
		return aws.ToString(in.ContinuationToken) == "next"
	}), mock.Anything).Return(&s3.ListObjectsV2Output{
		Contents: []s3types.Object{{Key: aws.String("dir/b.txt")}},
	}, nil).Once()

	objects, err := s.store.ListObjects(s.ctx, "assets")
	s.Require().NoError(err)
	s.Require().Len(objects, 2)
	s.Equal(&domain.BucketObject{ID: "a.txt", Name: "a.txt", BucketName: "assets", Size: 3, ETag: "abc"}, objects[0])
	s.Equal("dir/b.txt", objects[1].ID)
}

func (s *ObjectStoreTestSuite) TestDeleteObject_MissingObjectIsNotFound() {
	s.mockS3.On("HeadObject", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, &smithy.GenericAPIError{Code: "NotFound"}).Once()

	err := s.store.DeleteObject(s.ctx, "assets", "gone.txt")
	s.True(apperrors.Is(err, apperrors.CodeResourceNotFound))
	s.mockS3.AssertNotCalled(s.T(), "DeleteObject", mock.Anything, mock.Anything, mock.Anything)
}

func (s *ObjectStoreTestSuite) TestDeleteObject() {
	modified := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	s.mockS3.On("HeadObject", mock.Anything, mock.Anything, mock.Anything).Return(&s3.HeadObjectOutput{
		ContentLength: aws.Int64(10), LastModified: &modified,
	}, nil).Once()
	s.mockS3.On("DeleteObject", mock.Anything, &s3.DeleteObjectInput{Bucket: aws.String("assets"), Key: aws.String("a.txt")}, mock.Anything).
		Return(&s3.DeleteObjectOutput{}, nil).Once()

	s.NoError(s.store.DeleteObject(s.ctx, "assets", "a.txt"))
	s.mockS3.AssertExpectations(s.T())
}

func TestBucketRegion(t *testing.T) {
	assert.Equal(t, "us-east-1", bucketRegion(""))
	assert.Equal(t, "eu-west-1", bucketRegion(s3types.BucketLocationConstraintEu))
	assert.Equal(t, "ap-south-1", bucketRegion(s3types.BucketLocationConstraintApSouth1))
}
