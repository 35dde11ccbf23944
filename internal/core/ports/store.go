package ports

import (
	"context"

	"github.com/olusolaa/cloud-resource-api/internal/core/domain"
)

type ApplicationRepository interface {
	Create(ctx context.Context, a *domain.Application) error
	Get(ctx context.Context, id string) (*domain.Application, error)
	List(ctx context.Context) ([]*domain.Application, error)
	Update(ctx context.Context, a *domain.Application) error
	Delete(ctx context.Context, id string) error
}
