package aws

import (
	"context"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sts"

	"github.com/olusolaa/cloud-resource-api/internal/adapters/platform/aws/ec2"
	awserrors "github.com/olusolaa/cloud-resource-api/internal/adapters/platform/aws/errors"
	"github.com/olusolaa/cloud-resource-api/internal/adapters/platform/aws/limiter"
	"github.com/olusolaa/cloud-resource-api/internal/adapters/platform/aws/s3"
	"github.com/olusolaa/cloud-resource-api/internal/adapters/platform/aws/shared"
	"github.com/olusolaa/cloud-resource-api/internal/core/domain"
	"github.com/olusolaa/cloud-resource-api/internal/core/ports"
	"github.com/olusolaa/cloud-resource-api/internal/errors"
)

const ProviderTypeAWS = "aws"

// Clients groups the SDK clients a Provider talks to.
type Clients struct {
	EC2       ec2.EC2ClientInterface
	S3        s3.S3ClientInterface
	STS       shared.STSClientInterface
	ForRegion func(region string) ec2.EC2ClientInterface
}

// Provider is one AWS session: a region and a set of credentials.
type Provider struct {
	region       string
	clients      Clients
	limiter      shared.RateLimiter
	errorHandler shared.ErrorHandler
	logger       ports.Logger

	ec2 *ec2.Service
	s3  *s3.ObjectStore

	idMu     sync.RWMutex
	identity *domain.Identity
}

type ProviderOption func(*Provider)

func WithRateLimiter(l shared.RateLimiter) ProviderOption {
	return func(p *Provider) {
		if l != nil {
			p.limiter = l
		}
	}
}

func WithErrorHandler(h shared.ErrorHandler) ProviderOption {
	return func(p *Provider) {
		if h != nil {
			p.errorHandler = h
		}
	}
}

func NewProvider(region string, clients Clients, logger ports.Logger, opts ...ProviderOption) (*Provider, error) {
	if logger == nil {
		return nil, errors.New(errors.CodeConfigValidation, "logger cannot be nil for AWS Provider")
	}
	if clients.EC2 == nil || clients.S3 == nil || clients.STS == nil {
		return nil, errors.New(errors.CodeInternal, "AWS provider needs EC2, S3 and STS clients")
	}
	p := &Provider{
		region:       region,
		clients:      clients,
		logger:       logger.WithFields(map[string]any{"provider": ProviderTypeAWS, "region": region}),
		errorHandler: &awserrors.DefaultErrorHandler{},
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.limiter == nil {
		p.limiter = limiter.New(limiter.DefaultRPS, p.logger)
	}

	p.ec2 = ec2.NewService(clients.EC2, region,
		ec2.WithRateLimiter(p.limiter),
		ec2.WithErrorHandler(p.errorHandler),
		ec2.WithLogger(p.logger),
		ec2.WithRegionalClients(clients.ForRegion),
	)
	p.s3 = s3.NewObjectStore(clients.S3, region,
		s3.WithRateLimiter(p.limiter),
		s3.WithErrorHandler(p.errorHandler),
		s3.WithLogger(p.logger),
	)
	return p, nil
}

func (p *Provider) Type() string { return ProviderTypeAWS }

func (p *Provider) Compute() ports.ComputeService         { return p.ec2.Compute() }
func (p *Provider) Security() ports.SecurityService       { return p.ec2.Security() }
func (p *Provider) Network() ports.NetworkService         { return p.ec2.Network() }
func (p *Provider) BlockStore() ports.BlockStoreService   { return p.ec2.BlockStore() }
func (p *Provider) ObjectStore() ports.ObjectStoreService { return p.s3 }

// Identity returns the caller identity of the session. The first successful
// answer is cached for the life of the provider.
func (p *Provider) Identity(ctx context.Context) (*domain.Identity, error) {
	p.idMu.RLock()
	cached := p.identity
	p.idMu.RUnlock()
	if cached != nil {
		return cached, nil
	}

	p.idMu.Lock()
	defer p.idMu.Unlock()
	if p.identity != nil {
		return p.identity, nil
	}

	if err := p.limiter.Wait(ctx, p.logger); err != nil {
		return nil, err
	}
	out, err := p.clients.STS.GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		return nil, p.errorHandler.Handle(ctx, "caller identity", "", err)
	}
	if out.Account == nil {
		return nil, errors.New(errors.CodePlatformAPIError, "AWS caller identity response did not contain Account ID")
	}
	p.identity = &domain.Identity{
		AccountID: aws.ToString(out.Account),
		ARN:       aws.ToString(out.Arn),
		UserID:    aws.ToString(out.UserId),
		Provider:  ProviderTypeAWS,
		Region:    p.region,
	}
	return p.identity, nil
}

var _ ports.Provider = (*Provider)(nil)
