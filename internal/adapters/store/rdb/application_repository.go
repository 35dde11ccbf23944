package rdb

import (
	"context"
	stderrs "errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/olusolaa/cloud-resource-api/internal/core/domain"
	"github.com/olusolaa/cloud-resource-api/internal/core/ports"
	"github.com/olusolaa/cloud-resource-api/internal/errors"
)

type ApplicationRepository struct{ db *gorm.DB }

func NewApplicationRepository(db *gorm.DB) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

func applicationToRecord(a *domain.Application) *ApplicationRecord {
	return &ApplicationRecord{
		ID:                  a.ID,
		Slug:                a.Slug,
		Name:                a.Name,
		Description:         a.Description,
		Status:              a.Status,
		DefaultLaunchConfig: a.DefaultLaunchConfig,
		CreatedAt:           a.CreatedAt,
		UpdatedAt:           a.UpdatedAt,
	}
}

func applicationToModel(r *ApplicationRecord) *domain.Application {
	return &domain.Application{
		ID:                  r.ID,
		Slug:                r.Slug,
		Name:                r.Name,
		Description:         r.Description,
		Status:              r.Status,
		DefaultLaunchConfig: r.DefaultLaunchConfig,
		CreatedAt:           r.CreatedAt,
		UpdatedAt:           r.UpdatedAt,
	}
}

// storeError maps driver errors onto AppErrors. SQLite reports unique
// violations only through the message text.
func storeError(err error, id, action string) error {
	switch {
	case stderrs.Is(err, gorm.ErrRecordNotFound):
		return errors.NotFound(domain.KindApplication.String(), id)
	case stderrs.Is(err, gorm.ErrDuplicatedKey), strings.Contains(err.Error(), "UNIQUE constraint failed"):
		return errors.Wrap(err, errors.CodeResourceConflict, "an application with this slug already exists")
	default:
		return errors.Wrap(err, errors.CodeStoreError, fmt.Sprintf("failed to %s application", action))
	}
}

func (r *ApplicationRepository) Create(ctx context.Context, a *domain.Application) error {
	rec := applicationToRecord(a)
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if err := r.db.WithContext(ctx).Create(rec).Error; err != nil {
		return storeError(err, rec.ID, "create")
	}
	a.ID = rec.ID
	a.CreatedAt = rec.CreatedAt
	a.UpdatedAt = rec.UpdatedAt
	return nil
}

func (r *ApplicationRepository) Get(ctx context.Context, id string) (*domain.Application, error) {
	var rec ApplicationRecord
	if err := r.db.WithContext(ctx).First(&rec, "id = ?", id).Error; err != nil {
		return nil, storeError(err, id, "read")
	}
	return applicationToModel(&rec), nil
}

func (r *ApplicationRepository) List(ctx context.Context) ([]*domain.Application, error) {
	var recs []ApplicationRecord
	if err := r.db.WithContext(ctx).Order("created_at ASC").Order("id ASC").Find(&recs).Error; err != nil {
		return nil, storeError(err, "", "list")
	}
	out := make([]*domain.Application, 0, len(recs))
	for i := range recs {
		out = append(out, applicationToModel(&recs[i]))
	}
	return out, nil
}

// Update writes every column, so emptied fields are cleared.
func (r *ApplicationRepository) Update(ctx context.Context, a *domain.Application) error {
	rec := applicationToRecord(a)
	res := r.db.WithContext(ctx).Model(&ApplicationRecord{}).Where("id = ?", rec.ID).
		Select("slug", "name", "description", "status", "default_launch_config", "updated_at").
		Updates(rec)
	if res.Error != nil {
		return storeError(res.Error, rec.ID, "update")
	}
	if res.RowsAffected == 0 {
		return errors.NotFound(domain.KindApplication.String(), rec.ID)
	}
	return nil
}

func (r *ApplicationRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&ApplicationRecord{}, "id = ?", id)
	if res.Error != nil {
		return storeError(res.Error, id, "delete")
	}
	if res.RowsAffected == 0 {
		return errors.NotFound(domain.KindApplication.String(), id)
	}
	return nil
}

var _ ports.ApplicationRepository = (*ApplicationRepository)(nil)
