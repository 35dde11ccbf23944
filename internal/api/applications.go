package api

import (
	"gopkg.in/yaml.v3"

	"github.com/olusolaa/cloud-resource-api/internal/core/domain"
	"github.com/olusolaa/cloud-resource-api/internal/core/resource"
	"github.com/olusolaa/cloud-resource-api/internal/core/router"
	"github.com/olusolaa/cloud-resource-api/internal/errors"
)

func registerApplications(r *router.Router, deps Deps) error {
	repo := deps.Applications
	apps, err := resource.NewHandler(resource.Definition[*domain.Application]{
		Kind:         domain.KindApplication,
		Capabilities: resource.Full,
		Retrieval:    resource.RetrieveDirect,
		List: func(req *resource.Request) ([]*domain.Application, error) {
			return repo.List(req.Context())
		},
		Get: func(req *resource.Request, id string) (*domain.Application, error) {
			return repo.Get(req.Context(), id)
		},
		NewInput: newInput[domain.ApplicationInput](),
		InputFrom: func(current *domain.Application) any {
			return &domain.ApplicationInput{
				Slug:                current.Slug,
				Name:                current.Name,
				Description:         current.Description,
				Status:              current.Status,
				DefaultLaunchConfig: current.DefaultLaunchConfig,
			}
		},
		Create: func(req *resource.Request, input any) (*domain.Application, error) {
			in, err := applicationInput(input)
			if err != nil {
				return nil, err
			}
			now := deps.now()
			app := &domain.Application{CreatedAt: now, UpdatedAt: now}
			in.applyTo(app)
			if err := repo.Create(req.Context(), app); err != nil {
				return nil, err
			}
			return app, nil
		},
		Update: func(req *resource.Request, current *domain.Application, input any) (*domain.Application, error) {
			in, err := applicationInput(input)
			if err != nil {
				return nil, err
			}
			updated := *current
			in.applyTo(&updated)
			updated.UpdatedAt = deps.now()
			if err := repo.Update(req.Context(), &updated); err != nil {
				return nil, err
			}
			return &updated, nil
		},
		Delete: func(req *resource.Request, current *domain.Application) error {
			return repo.Delete(req.Context(), current.ID)
		},
	})
	if err != nil {
		return err
	}
	return r.Register("applications", apps, "application")
}

type appInput domain.ApplicationInput

func applicationInput(input any) (appInput, error) {
	in, err := inputAs[domain.ApplicationInput](input)
	if err != nil {
		return appInput{}, err
	}
	if in.Status == "" {
		in.Status = domain.ApplicationStatusDev
	}
	if err := validateLaunchConfig(in.DefaultLaunchConfig); err != nil {
		return appInput{}, err
	}
	return appInput(in), nil
}

func (in appInput) applyTo(a *domain.Application) {
	a.Slug = in.Slug
	a.Name = in.Name
	a.Description = in.Description
	a.Status = in.Status
	a.DefaultLaunchConfig = in.DefaultLaunchConfig
}

// validateLaunchConfig accepts an empty string or a YAML (or JSON) mapping.
func validateLaunchConfig(raw string) error {
	if raw == "" {
		return nil
	}
	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(raw), &doc); err != nil {
		return errors.InvalidInput("default_launch_config is not valid YAML", map[string]string{
			"default_launch_config": err.Error(),
		})
	}
	if len(doc.Content) == 0 || doc.Content[0].Kind != yaml.MappingNode {
		return errors.InvalidInput("default_launch_config must be a mapping", map[string]string{
			"default_launch_config": "expected a mapping of launch settings",
		})
	}
	return nil
}
