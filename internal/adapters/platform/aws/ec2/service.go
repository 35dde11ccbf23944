package ec2

import (
	"context"

	awserrors "github.com/olusolaa/cloud-resource-api/internal/adapters/platform/aws/errors"
	"github.com/olusolaa/cloud-resource-api/internal/adapters/platform/aws/limiter"
	"github.com/olusolaa/cloud-resource-api/internal/adapters/platform/aws/shared"
	"github.com/olusolaa/cloud-resource-api/internal/core/ports"
	"github.com/olusolaa/cloud-resource-api/internal/log"
)

// Service holds what the EC2-backed services share: the regional client,
// the rate limiter and the error classification.
type Service struct {
	client       EC2ClientInterface
	region       string
	forRegion    func(region string) EC2ClientInterface
	limiter      shared.RateLimiter
	errorHandler shared.ErrorHandler
	logger       ports.Logger
}

type ServiceOption func(*Service)

func WithRateLimiter(l shared.RateLimiter) ServiceOption {
	return func(s *Service) {
		if l != nil {
			s.limiter = l
		}
	}
}

func WithErrorHandler(h shared.ErrorHandler) ServiceOption {
	return func(s *Service) {
		if h != nil {
			s.errorHandler = h
		}
	}
}

func WithLogger(l ports.Logger) ServiceOption {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithRegionalClients supplies clients for regions other than the service's
// own, used to list the zones of any region.
func WithRegionalClients(f func(region string) EC2ClientInterface) ServiceOption {
	return func(s *Service) { s.forRegion = f }
}

func NewService(client EC2ClientInterface, region string, opts ...ServiceOption) *Service {
	s := &Service{
		client:       client,
		region:       region,
		logger:       log.NewNop(),
		errorHandler: &awserrors.DefaultErrorHandler{},
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.limiter == nil {
		s.limiter = limiter.New(limiter.DefaultRPS, s.logger)
	}
	return s
}

func (s *Service) Compute() *Compute       { return &Compute{s} }
func (s *Service) Security() *Security     { return &Security{s} }
func (s *Service) Network() *Network       { return &Network{s} }
func (s *Service) BlockStore() *BlockStore { return &BlockStore{s} }

func (s *Service) wait(ctx context.Context) error {
	return s.limiter.Wait(ctx, s.logger)
}

func (s *Service) fail(ctx context.Context, resourceType, id string, err error) error {
	return s.errorHandler.Handle(ctx, resourceType, id, err)
}

func (s *Service) clientFor(region string) EC2ClientInterface {
	if region == "" || region == s.region || s.forRegion == nil {
		return s.client
	}
	return s.forRegion(region)
}
