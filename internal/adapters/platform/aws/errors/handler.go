package errors

import (
	"context"
	stderrs "errors"
	"fmt"
	"strings"

	"github.com/aws/smithy-go"

	"github.com/olusolaa/cloud-resource-api/internal/errors"
)

var notFoundCodes = map[string]struct{}{
	"InvalidInstanceID.NotFound":          {},
	"InvalidInstanceID.Malformed":         {},
	"InvalidInstanceType":                 {},
	"InvalidKeyPair.NotFound":             {},
	"InvalidGroup.NotFound":               {},
	"InvalidGroupId.Malformed":            {},
	"InvalidSecurityGroupRuleId.NotFound": {},
	"InvalidVpcID.NotFound":               {},
	"InvalidSubnetID.NotFound":            {},
	"InvalidVolume.NotFound":              {},
	"InvalidSnapshot.NotFound":            {},
	"InvalidRegion":                       {},
	"NoSuchBucket":                        {},
	"NoSuchKey":                           {},
	"NotFound":                            {},
	"ResourceNotFoundException":           {},
	"EntityNotFoundException":             {},
	"NotFoundException":                   {},
}

var authCodes = map[string]struct{}{
	"AuthFailure":                 {},
	"UnauthorizedOperation":       {},
	"AccessDenied":                {},
	"AccessDeniedException":       {},
	"InvalidClientTokenId":        {},
	"SignatureDoesNotMatch":       {},
	"ExpiredToken":                {},
	"InvalidAccessKeyId":          {},
	"UnrecognizedClientException": {},
}

var conflictCodes = map[string]struct{}{
	"DependencyViolation":         {},
	"InvalidGroup.InUse":          {},
	"InvalidGroup.Duplicate":      {},
	"InvalidKeyPair.Duplicate":    {},
	"InvalidPermission.Duplicate": {},
	"VolumeInUse":                 {},
	"IncorrectState":              {},
	"IncorrectInstanceState":      {},
	"BucketNotEmpty":              {},
	"BucketAlreadyExists":         {},
	"BucketAlreadyOwnedByYou":     {},
}

var invalidInputCodes = map[string]struct{}{
	"InvalidParameterValue":       {},
	"InvalidParameterCombination": {},
	"InvalidParameter":            {},
	"MissingParameter":            {},
	"InvalidAMIID.Malformed":      {},
	"InvalidAMIID.NotFound":       {},
	"InvalidBucketName":           {},
	"InvalidSubnet.Range":         {},
	"InvalidVpc.Range":            {},
	"InvalidSubnet.Conflict":      {},
	"ValidationError":             {},
}

// HandleAWSError maps an SDK error to an AppError. resourceType and
// resourceID only shape the message.
func HandleAWSError(ctx context.Context, resourceType string, resourceID string, err error) error {
	if err == nil {
		return errors.New(errors.CodeInternal, fmt.Sprintf("unexpected nil error in AWS error handler for %s", resourceType))
	}

	if stderrs.Is(err, context.DeadlineExceeded) || stderrs.Is(ctx.Err(), context.DeadlineExceeded) {
		return errors.Wrap(err, errors.CodeTimeout, fmt.Sprintf("AWS %s call timed out", resourceType))
	}
	if stderrs.Is(err, context.Canceled) || ctx.Err() != nil {
		return errors.Wrap(err, errors.CodePlatformAPIError, fmt.Sprintf("context canceled during AWS %s API call", resourceType))
	}

	code := errorCode(err)
	subject := resourceType
	if resourceID != "" {
		subject = fmt.Sprintf("%s '%s'", resourceType, resourceID)
	}

	switch {
	case matches(authCodes, code, err):
		return errors.WrapUserFacing(err, errors.CodePlatformAuthError,
			fmt.Sprintf("AWS authentication error accessing %s", subject), "Check the credentials sent with the request")
	case matches(notFoundCodes, code, err) || (code == "" && isNotFoundMessage(err.Error())):
		return errors.WrapUserFacing(err, errors.CodeResourceNotFound, fmt.Sprintf("%s not found", subject), "")
	case matches(conflictCodes, code, err):
		return errors.WrapUserFacing(err, errors.CodeResourceConflict,
			fmt.Sprintf("%s conflicts with the current state of the resource: %s", subject, apiMessage(err)), "")
	case matches(invalidInputCodes, code, err):
		return errors.WrapUserFacing(err, errors.CodeInvalidInput, fmt.Sprintf("AWS rejected the request for %s: %s", subject, apiMessage(err)), "")
	}

	return errors.Wrap(err, errors.CodePlatformAPIError, fmt.Sprintf("failed to access %s", subject))
}

func errorCode(err error) string {
	var apiErr smithy.APIError
	if stderrs.As(err, &apiErr) && apiErr != nil {
		return apiErr.ErrorCode()
	}
	if coded, ok := err.(interface{ ErrorCode() string }); ok && coded != nil {
		return coded.ErrorCode()
	}
	return ""
}

func apiMessage(err error) string {
	var apiErr smithy.APIError
	if stderrs.As(err, &apiErr) && apiErr != nil && apiErr.ErrorMessage() != "" {
		return apiErr.ErrorMessage()
	}
	return err.Error()
}

// matches checks the API error code first and falls back to the message for
// errors that lost their type on the way.
func matches(codes map[string]struct{}, code string, err error) bool {
	if code != "" {
		_, ok := codes[code]
		return ok
	}
	msg := err.Error()
	for c := range codes {
		if strings.Contains(msg, c) {
			return true
		}
	}
	return false
}

func isNotFoundMessage(msg string) bool {
	return strings.Contains(msg, "not found") || strings.Contains(msg, "does not exist")
}

// DefaultErrorHandler implements shared.ErrorHandler with HandleAWSError.
type DefaultErrorHandler struct{}

func (d *DefaultErrorHandler) Handle(ctx context.Context, resourceType, resourceID string, err error) error {
	return HandleAWSError(ctx, resourceType, resourceID, err)
}
