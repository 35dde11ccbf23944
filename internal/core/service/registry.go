package service

import (
	"fmt"
	"sort"
	"sync"

	"github.com/olusolaa/cloud-resource-api/internal/core/accessor"
	"github.com/olusolaa/cloud-resource-api/internal/errors"
)

// PlatformRegistry maps a platform type ("aws", "memory") to the factory
// that opens providers for it.
type PlatformRegistry struct {
	mu        sync.RWMutex
	factories map[string]accessor.Factory
}

func NewPlatformRegistry() *PlatformRegistry {
	return &PlatformRegistry{factories: make(map[string]accessor.Factory)}
}

func (r *PlatformRegistry) Register(platformType string, factory accessor.Factory) error {
	if factory == nil {
		return errors.New(errors.CodeInternal, "attempted to register nil platform factory")
	}
	if platformType == "" {
		return errors.New(errors.CodeInternal, "platform type cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[platformType]; exists {
		return errors.New(errors.CodeInternal, fmt.Sprintf("platform type '%s' already registered", platformType))
	}
	r.factories[platformType] = factory
	return nil
}

func (r *PlatformRegistry) Get(platformType string) (accessor.Factory, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	factory, exists := r.factories[platformType]
	if !exists {
		return nil, errors.NewUserFacing(errors.CodeConfigValidation,
			fmt.Sprintf("platform type '%s' not found", platformType),
			fmt.Sprintf("Supported platform types: %v", r.typesLocked()))
	}
	return factory, nil
}

// Types lists the registered platform types in sorted order.
func (r *PlatformRegistry) Types() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.typesLocked()
}

func (r *PlatformRegistry) typesLocked() []string {
	out := make([]string, 0, len(r.factories))
	for t := range r.factories {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}
