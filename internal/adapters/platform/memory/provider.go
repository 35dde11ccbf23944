package memory

import (
	"context"
	"fmt"

	"github.com/olusolaa/cloud-resource-api/internal/core/accessor"
	"github.com/olusolaa/cloud-resource-api/internal/core/domain"
	"github.com/olusolaa/cloud-resource-api/internal/core/ports"
	"github.com/olusolaa/cloud-resource-api/internal/errors"
)

// Provider is a view of a Cloud for one region and principal.
type Provider struct {
	cloud    *Cloud
	region   string
	identity domain.Identity
}

func (p *Provider) Type() string { return ProviderTypeMemory }

func (p *Provider) Identity(context.Context) (*domain.Identity, error) {
	id := p.identity
	return &id, nil
}

func (p *Provider) Compute() ports.ComputeService       { return computeService{p.cloud} }
func (p *Provider) Security() ports.SecurityService     { return securityService{p.cloud} }
func (p *Provider) Network() ports.NetworkService       { return networkService{p.cloud} }
func (p *Provider) BlockStore() ports.BlockStoreService { return blockStoreService{p.cloud} }
func (p *Provider) ObjectStore() ports.ObjectStoreService {
	return objectStoreService{c: p.cloud, region: p.region}
}

// Factory opens Providers on a shared Cloud.
type Factory struct {
	cloud         *Cloud
	defaultRegion string
	accessKeys    map[string]string
	logger        ports.Logger
}

type FactoryOption func(*Factory)

// WithAccessKeys restricts static credentials to the given access key to
// secret pairs. Without it any pair is accepted.
func WithAccessKeys(keys map[string]string) FactoryOption {
	return func(f *Factory) { f.accessKeys = keys }
}

func NewFactory(cloud *Cloud, defaultRegion string, logger ports.Logger, opts ...FactoryOption) *Factory {
	f := &Factory{cloud: cloud, defaultRegion: defaultRegion, logger: logger}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func (f *Factory) NewProvider(ctx context.Context, creds accessor.Credentials) (ports.Provider, error) {
	region := creds.Region
	if region == "" {
		region = f.defaultRegion
	}
	f.cloud.mu.RLock()
	_, known := f.cloud.regions[region]
	f.cloud.mu.RUnlock()
	if !known {
		return nil, errors.NewUserFacing(errors.CodeInvalidInput, fmt.Sprintf("unknown region %q", region),
			fmt.Sprintf("Send a known region in the %s header", accessor.HeaderRegion))
	}

	principal := "anonymous"
	if creds.Static() {
		if f.accessKeys != nil && f.accessKeys[creds.AccessKeyID] != creds.SecretAccessKey {
			return nil, errors.NewUserFacing(errors.CodePlatformAuthError, "the access key or secret is not valid",
				"Check the credentials sent with the request")
		}
		principal = creds.AccessKeyID
	}
	f.logger.Debugf(ctx, "Opened memory provider for region %s as %s", region, principal)

	return &Provider{
		cloud:  f.cloud,
		region: region,
		identity: domain.Identity{
			AccountID: DefaultAccountID,
			ARN:       fmt.Sprintf("arn:memory:iam::%s:user/%s", DefaultAccountID, principal),
			UserID:    principal,
			Provider:  ProviderTypeMemory,
			Region:    region,
		},
	}, nil
}

var (
	_ ports.Provider   = (*Provider)(nil)
	_ accessor.Factory = (*Factory)(nil)
)
