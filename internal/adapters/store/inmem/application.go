package inmem

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/olusolaa/cloud-resource-api/internal/core/domain"
	"github.com/olusolaa/cloud-resource-api/internal/core/ports"
	"github.com/olusolaa/cloud-resource-api/internal/errors"
)

// ApplicationRepository is a thread-safe in-memory implementation.
type ApplicationRepository struct {
	mu    sync.RWMutex
	items map[string]*domain.Application
}

func NewApplicationRepository() *ApplicationRepository {
	return &ApplicationRepository{items: make(map[string]*domain.Application)}
}

func (r *ApplicationRepository) slugTaken(slug, exceptID string) bool {
	for id, v := range r.items {
		if v.Slug == slug && id != exceptID {
			return true
		}
	}
	return false
}

func (r *ApplicationRepository) Create(_ context.Context, a *domain.Application) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if _, ok := r.items[a.ID]; ok {
		return errors.Conflict("application %s already exists", a.ID)
	}
	if r.slugTaken(a.Slug, "") {
		return errors.Conflict("application slug %q is already in use", a.Slug)
	}
	cp := *a
	r.items[a.ID] = &cp
	return nil
}

func (r *ApplicationRepository) Get(_ context.Context, id string) (*domain.Application, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.items[id]
	if !ok {
		return nil, errors.NotFound(domain.KindApplication.String(), id)
	}
	cp := *v
	return &cp, nil
}

// List returns applications oldest first.
func (r *ApplicationRepository) List(_ context.Context) ([]*domain.Application, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*domain.Application, 0, len(r.items))
	for _, v := range r.items {
		cp := *v
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (r *ApplicationRepository) Update(_ context.Context, a *domain.Application) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[a.ID]; !ok {
		return errors.NotFound(domain.KindApplication.String(), a.ID)
	}
	if r.slugTaken(a.Slug, a.ID) {
		return errors.Conflict("application slug %q is already in use", a.Slug)
	}
	cp := *a
	r.items[a.ID] = &cp
	return nil
}

func (r *ApplicationRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return errors.NotFound(domain.KindApplication.String(), id)
	}
	delete(r.items, id)
	return nil
}

var _ ports.ApplicationRepository = (*ApplicationRepository)(nil)
