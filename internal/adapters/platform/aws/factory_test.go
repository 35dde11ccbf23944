package aws

import (
	"context"
	stderrs "errors"
	"net/http"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	awsec2 "github.com/aws/aws-sdk-go-v2/service/ec2"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olusolaa/cloud-resource-api/internal/core/accessor"
	"github.com/olusolaa/cloud-resource-api/internal/errors"
	"github.com/olusolaa/cloud-resource-api/internal/log"
)

// fakeLoad applies the load options without touching the environment.
func fakeLoad(ctx context.Context, optFns ...func(*config.LoadOptions) error) (aws.Config, error) {
	var lo config.LoadOptions
	for _, fn := range optFns {
		if err := fn(&lo); err != nil {
			return aws.Config{}, err
		}
	}
	return aws.Config{Region: lo.Region, Credentials: lo.Credentials}, nil
}

func newTestFactory(settings Settings) *Factory {
	f := NewFactory(settings, log.NewNop())
	f.load = fakeLoad
	return f
}

func TestFactoryConfig_StaticCredentials(t *testing.T) {
	f := newTestFactory(Settings{Region: "us-east-1"})

	cfg, err := f.Config(context.Background(), accessor.Credentials{
		Region:          "eu-west-1",
		AccessKeyID:     "AKIAEXAMPLE",
		SecretAccessKey: "secret",
		SessionToken:    "token",
	})
	require.NoError(t, err)
	assert.Equal(t, "eu-west-1", cfg.Region)
	assert.Nil(t, cfg.BaseEndpoint)

	require.NotNil(t, cfg.Credentials)
	v, err := cfg.Credentials.Retrieve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "AKIAEXAMPLE", v.AccessKeyID)
	assert.Equal(t, "secret", v.SecretAccessKey)
	assert.Equal(t, "token", v.SessionToken)
}

func TestFactoryConfig_DefaultsAndEndpoint(t *testing.T) {
	f := newTestFactory(Settings{Region: "us-east-2", Endpoint: "http://localhost:4566"})

	cfg, err := f.Config(context.Background(), accessor.Credentials{})
	require.NoError(t, err)
	assert.Equal(t, "us-east-2", cfg.Region)
	assert.Nil(t, cfg.Credentials)
	assert.Equal(t, "http://localhost:4566", aws.ToString(cfg.BaseEndpoint))
}

func TestFactoryConfig_MissingRegion(t *testing.T) {
	f := newTestFactory(Settings{})

	_, err := f.Config(context.Background(), accessor.Credentials{})
	assert.True(t, errors.Is(err, errors.CodeInvalidInput))
	assert.Equal(t, http.StatusBadRequest, errors.HTTPStatus(err))
}

func TestFactoryConfig_ClientsMakeOneAttempt(t *testing.T) {
	f := newTestFactory(Settings{Region: "us-east-1"})

	cfg, err := f.Config(context.Background(), accessor.Credentials{})
	require.NoError(t, err)

	assert.Equal(t, 1, awsec2.NewFromConfig(cfg).Options().Retryer.MaxAttempts())
	assert.Equal(t, 1, awss3.NewFromConfig(cfg).Options().Retryer.MaxAttempts())
	assert.Equal(t, 1, sts.NewFromConfig(cfg).Options().Retryer.MaxAttempts())
}

func TestFactoryConfig_LoadFailure(t *testing.T) {
	f := newTestFactory(Settings{Region: "us-east-1"})
	f.load = func(context.Context, ...func(*config.LoadOptions) error) (aws.Config, error) {
		return aws.Config{}, stderrs.New("broken shared config")
	}

	_, err := f.Config(context.Background(), accessor.Credentials{})
	assert.True(t, errors.Is(err, errors.CodePlatformAuthError))
}

func TestFactory_NewProvider(t *testing.T) {
	f := newTestFactory(Settings{Region: "ap-southeast-2", Endpoint: "http://localhost:4566"})

	p, err := f.NewProvider(context.Background(), accessor.Credentials{AccessKeyID: "a", SecretAccessKey: "b"})
	require.NoError(t, err)
	assert.Equal(t, ProviderTypeAWS, p.Type())
	assert.Same(t, f.limiter, p.(*Provider).limiter)
}
