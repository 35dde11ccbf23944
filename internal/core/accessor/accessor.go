package accessor

import (
	"context"
	"sync"

	"github.com/olusolaa/cloud-resource-api/internal/core/ports"
	"github.com/olusolaa/cloud-resource-api/internal/errors"
)

// Factory opens a provider session for a set of credentials.
type Factory interface {
	NewProvider(ctx context.Context, creds Credentials) (ports.Provider, error)
}

// FactoryFunc adapts a function to Factory.
type FactoryFunc func(ctx context.Context, creds Credentials) (ports.Provider, error)

func (f FactoryFunc) NewProvider(ctx context.Context, creds Credentials) (ports.Provider, error) {
	return f(ctx, creds)
}

// Accessor resolves provider handles for one request. It must not outlive
// the request it was created for.
type Accessor struct {
	factory Factory
	creds   Credentials
	logger  ports.Logger

	mu    sync.Mutex
	cache map[Credentials]ports.Provider
}

func New(factory Factory, creds Credentials, logger ports.Logger) *Accessor {
	return &Accessor{
		factory: factory,
		creds:   creds,
		logger:  logger,
		cache:   make(map[Credentials]ports.Provider),
	}
}

// Credentials returns the credentials the request resolved to.
func (a *Accessor) Credentials() Credentials {
	return a.creds
}

// Provider returns the handle for the request's own credentials.
func (a *Accessor) Provider(ctx context.Context) (ports.Provider, error) {
	return a.ProviderFor(ctx, a.creds)
}

// ProviderFor returns the handle for creds, opening it on first use.
// Failures are returned as-is and are not cached, so a later call in the
// same request makes a fresh attempt.
func (a *Accessor) ProviderFor(ctx context.Context, creds Credentials) (ports.Provider, error) {
	if a.factory == nil {
		return nil, errors.New(errors.CodeInternal, "no provider factory configured")
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if p, ok := a.cache[creds]; ok {
		return p, nil
	}

	p, err := a.factory.NewProvider(ctx, creds)
	if err != nil {
		a.logger.Errorf(ctx, err, "Failed to open %s provider session (region: %s)", creds.Provider, creds.Region)
		return nil, errors.Wrap(err, errors.CodePlatformAuthError, "failed to open provider session")
	}
	a.logger.Debugf(ctx, "Opened %s provider session (region: %s, static keys: %t)", creds.Provider, creds.Region, creds.Static())
	a.cache[creds] = p
	return p, nil
}
