package aws

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	awsec2 "github.com/aws/aws-sdk-go-v2/service/ec2"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/sts"

	"github.com/olusolaa/cloud-resource-api/internal/adapters/platform/aws/ec2"
	"github.com/olusolaa/cloud-resource-api/internal/adapters/platform/aws/limiter"
	"github.com/olusolaa/cloud-resource-api/internal/core/accessor"
	"github.com/olusolaa/cloud-resource-api/internal/core/ports"
	"github.com/olusolaa/cloud-resource-api/internal/errors"
)

// Settings are the process-wide AWS options from configuration.
type Settings struct {
	Region   string
	Endpoint string
	RPS      int
}

// Factory opens a Provider per set of credentials. All providers it opens
// share one rate limiter.
type Factory struct {
	settings Settings
	limiter  *limiter.Limiter
	logger   ports.Logger
	load     func(ctx context.Context, optFns ...func(*config.LoadOptions) error) (aws.Config, error)
}

func NewFactory(settings Settings, logger ports.Logger) *Factory {
	return &Factory{
		settings: settings,
		limiter:  limiter.New(settings.RPS, logger),
		logger:   logger,
		load:     config.LoadDefaultConfig,
	}
}

func (f *Factory) NewProvider(ctx context.Context, creds accessor.Credentials) (ports.Provider, error) {
	cfg, err := f.Config(ctx, creds)
	if err != nil {
		return nil, err
	}

	clients := Clients{
		EC2: awsec2.NewFromConfig(cfg),
		S3:  awss3.NewFromConfig(cfg, f.s3Options),
		STS: sts.NewFromConfig(cfg),
		ForRegion: func(region string) ec2.EC2ClientInterface {
			return awsec2.NewFromConfig(cfg, func(o *awsec2.Options) { o.Region = region })
		},
	}
	f.logger.Debugf(ctx, "Opened AWS session for region %s (static credentials: %t)", cfg.Region, creds.Static())
	return NewProvider(cfg.Region, clients, f.logger, WithRateLimiter(f.limiter))
}

// Config resolves the aws.Config for creds: explicit keys when given,
// otherwise the SDK's default credential chain.
func (f *Factory) Config(ctx context.Context, creds accessor.Credentials) (aws.Config, error) {
	region := creds.Region
	if region == "" {
		region = f.settings.Region
	}
	opts := []func(*config.LoadOptions) error{}
	if region != "" {
		opts = append(opts, config.WithRegion(region))
	}
	if creds.Static() {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(creds.AccessKeyID, creds.SecretAccessKey, creds.SessionToken),
		))
	}

	cfg, err := f.load(ctx, opts...)
	if err != nil {
		return aws.Config{}, errors.WrapUserFacing(err, errors.CodePlatformAuthError, "failed to load AWS configuration", "Check the AWS credentials and region")
	}
	if cfg.Region == "" {
		return aws.Config{}, errors.NewUserFacing(errors.CodeInvalidInput, "no AWS region configured",
			fmt.Sprintf("Set platform.aws.region or send the %s header", accessor.HeaderRegion))
	}
	singleAttempt(&cfg)
	if f.settings.Endpoint != "" {
		cfg.BaseEndpoint = aws.String(f.settings.Endpoint)
	}
	return cfg, nil
}

// singleAttempt disables SDK retries. Throttling and 5xx faults reach the
// caller on the first failure.
func singleAttempt(cfg *aws.Config) {
	cfg.Retryer = func() aws.Retryer { return aws.NopRetryer{} }
	cfg.RetryMaxAttempts = 1
}

// s3Options switches to path-style addressing for custom endpoints such as
// MinIO or LocalStack.
func (f *Factory) s3Options(o *awss3.Options) {
	if f.settings.Endpoint != "" {
		o.UsePathStyle = true
	}
}

var _ accessor.Factory = (*Factory)(nil)
