package inmem

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olusolaa/cloud-resource-api/internal/core/domain"
	"github.com/olusolaa/cloud-resource-api/internal/errors"
)

func TestApplicationRepository_CRUD(t *testing.T) {
	ctx := context.Background()
	repo := NewApplicationRepository()

	app := &domain.Application{Slug: "galaxy", Name: "Galaxy", CreatedAt: time.Now()}
	require.NoError(t, repo.Create(ctx, app))
	require.NotEmpty(t, app.ID)

	got, err := repo.Get(ctx, app.ID)
	require.NoError(t, err)
	assert.Equal(t, app, got)

	// Returned values are copies.
	got.Name = "changed"
	again, _ := repo.Get(ctx, app.ID)
	assert.Equal(t, "Galaxy", again.Name)

	app.Description = "data analysis"
	require.NoError(t, repo.Update(ctx, app))
	again, _ = repo.Get(ctx, app.ID)
	assert.Equal(t, "data analysis", again.Description)

	require.NoError(t, repo.Delete(ctx, app.ID))
	_, err = repo.Get(ctx, app.ID)
	assert.True(t, errors.Is(err, errors.CodeResourceNotFound))
	assert.True(t, errors.Is(repo.Delete(ctx, app.ID), errors.CodeResourceNotFound))
	assert.True(t, errors.Is(repo.Update(ctx, app), errors.CodeResourceNotFound))
}

func TestApplicationRepository_SlugIsUnique(t *testing.T) {
	ctx := context.Background()
	repo := NewApplicationRepository()

	first := &domain.Application{Slug: "galaxy", Name: "Galaxy"}
	second := &domain.Application{Slug: "cloudman", Name: "CloudMan"}
	require.NoError(t, repo.Create(ctx, first))
	require.NoError(t, repo.Create(ctx, second))

	err := repo.Create(ctx, &domain.Application{Slug: "galaxy", Name: "Other"})
	assert.True(t, errors.Is(err, errors.CodeResourceConflict))

	second.Slug = "galaxy"
	assert.True(t, errors.Is(repo.Update(ctx, second), errors.CodeResourceConflict))

	// Updating an application without changing its slug is fine.
	first.Name = "Galaxy Main"
	assert.NoError(t, repo.Update(ctx, first))
}

func TestApplicationRepository_ListOldestFirst(t *testing.T) {
	ctx := context.Background()
	repo := NewApplicationRepository()
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, repo.Create(ctx, &domain.Application{ID: "b", Slug: "b", CreatedAt: base.Add(time.Hour)}))
	require.NoError(t, repo.Create(ctx, &domain.Application{ID: "a", Slug: "a", CreatedAt: base.Add(2 * time.Hour)}))
	require.NoError(t, repo.Create(ctx, &domain.Application{ID: "c", Slug: "c", CreatedAt: base}))

	apps, err := repo.List(ctx)
	require.NoError(t, err)
	ids := make([]string, 0, len(apps))
	for _, a := range apps {
		ids = append(ids, a.ID)
	}
	assert.Equal(t, []string{"c", "b", "a"}, ids)
}
