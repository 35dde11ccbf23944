package s3

import (
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/olusolaa/cloud-resource-api/internal/core/domain"
)

func mapBucket(b s3types.Bucket) *domain.Bucket {
	name := aws.ToString(b.Name)
	return &domain.Bucket{ID: name, Name: name, CreatedAt: b.CreationDate}
}

func mapObject(bucket string, o s3types.Object) *domain.BucketObject {
	key := aws.ToString(o.Key)
	return &domain.BucketObject{
		ID:           key,
		Name:         key,
		BucketName:   bucket,
		Size:         aws.ToInt64(o.Size),
		ETag:         strings.Trim(aws.ToString(o.ETag), `"`),
		LastModified: o.LastModified,
	}
}

// bucketRegion normalizes GetBucketLocation's answer: an empty constraint
// means us-east-1 and the legacy "EU" means eu-west-1.
func bucketRegion(c s3types.BucketLocationConstraint) string {
	switch c {
	case "":
		return "us-east-1"
	case s3types.BucketLocationConstraintEu:
		return "eu-west-1"
	default:
		return string(c)
	}
}
