package shared

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/sts"

	"github.com/olusolaa/cloud-resource-api/internal/core/ports"
)

// RateLimiter throttles calls to the AWS APIs.
type RateLimiter interface {
	Wait(ctx context.Context, logger ports.Logger) error
}

// ErrorHandler turns SDK errors into AppErrors. resourceType and resourceID
// describe what the failing call was about.
type ErrorHandler interface {
	Handle(ctx context.Context, resourceType, resourceID string, err error) error
}

// STSClientInterface backs the caller identity shown by the auth endpoint.
type STSClientInterface interface {
	GetCallerIdentity(ctx context.Context, params *sts.GetCallerIdentityInput, optFns ...func(*sts.Options)) (*sts.GetCallerIdentityOutput, error)
}
