package accessor

import (
	"context"
	stderrs "errors"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olusolaa/cloud-resource-api/internal/core/ports"
	"github.com/olusolaa/cloud-resource-api/internal/errors"
	"github.com/olusolaa/cloud-resource-api/internal/log"
)

type stubProvider struct {
	ports.Provider
	creds Credentials
}

type countingFactory struct {
	calls int
	fail  error
}

func (f *countingFactory) NewProvider(_ context.Context, creds Credentials) (ports.Provider, error) {
	f.calls++
	if f.fail != nil {
		return nil, f.fail
	}
	return &stubProvider{creds: creds}, nil
}

func TestAccessor_MemoizesPerCredentials(t *testing.T) {
	factory := &countingFactory{}
	creds := Credentials{Provider: "aws", Region: "us-east-1"}
	a := New(factory, creds, log.NewNop())

	first, err := a.Provider(context.Background())
	require.NoError(t, err)
	second, err := a.Provider(context.Background())
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, 1, factory.calls)

	other, err := a.ProviderFor(context.Background(), Credentials{Provider: "aws", Region: "eu-west-1"})
	require.NoError(t, err)
	assert.NotSame(t, first, other)
	assert.Equal(t, 2, factory.calls)
	assert.Equal(t, "eu-west-1", other.(*stubProvider).creds.Region)
}

func TestAccessor_FailuresAreNotCached(t *testing.T) {
	factory := &countingFactory{fail: stderrs.New("invalid security token")}
	a := New(factory, Credentials{Provider: "aws"}, log.NewNop())

	_, err := a.Provider(context.Background())
	require.Error(t, err)
	assert.Equal(t, errors.CodePlatformAuthError, errors.GetCode(err))

	_, err = a.Provider(context.Background())
	require.Error(t, err)
	assert.Equal(t, 2, factory.calls)
}

func TestAccessor_KeepsTypedFactoryErrors(t *testing.T) {
	factory := &countingFactory{fail: errors.New(errors.CodePlatformAPIError, "endpoint unreachable")}
	a := New(factory, Credentials{}, log.NewNop())

	_, err := a.Provider(context.Background())
	assert.Equal(t, errors.CodePlatformAPIError, errors.GetCode(err))
}

func TestAccessor_NoFactory(t *testing.T) {
	a := New(nil, Credentials{}, log.NewNop())
	_, err := a.Provider(context.Background())
	assert.Equal(t, errors.CodeInternal, errors.GetCode(err))
}

func TestCredentialsFromRequest(t *testing.T) {
	defaults := Credentials{Provider: "aws", Region: "us-east-1"}

	t.Run("defaults without headers", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/", nil)
		assert.Equal(t, defaults, CredentialsFromRequest(req, defaults))
	})

	t.Run("region and key pair override", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set(HeaderRegion, "ap-south-1")
		req.Header.Set(HeaderAccessKey, "AKIA")
		req.Header.Set(HeaderSecretKey, "secret")
		req.Header.Set(HeaderSessionToken, "token")

		creds := CredentialsFromRequest(req, defaults)
		assert.Equal(t, "aws", creds.Provider)
		assert.Equal(t, "ap-south-1", creds.Region)
		assert.Equal(t, "AKIA", creds.AccessKeyID)
		assert.Equal(t, "token", creds.SessionToken)
		assert.True(t, creds.Static())
	})

	t.Run("lone access key ignored", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set(HeaderAccessKey, "AKIA")
		creds := CredentialsFromRequest(req, defaults)
		assert.Empty(t, creds.AccessKeyID)
		assert.False(t, creds.Static())
	})
}
