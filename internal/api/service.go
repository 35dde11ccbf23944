package api

import (
	"time"

	"github.com/olusolaa/cloud-resource-api/internal/core/domain"
	"github.com/olusolaa/cloud-resource-api/internal/core/resource"
	"github.com/olusolaa/cloud-resource-api/internal/core/router"
)

// Health is the liveness answer. It never touches the provider.
type Health struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Time    string `json:"time"`
}

const healthMessage = "The cloud resource API is up"

func registerService(r *router.Router, deps Deps) error {
	health := resource.NewEndpoint(domain.KindHealth, func(*resource.Request) (any, error) {
		return &Health{Status: "ok", Message: healthMessage, Time: deps.now().Format(time.RFC3339)}, nil
	})
	if err := r.Register("health", health, "health"); err != nil {
		return err
	}

	auth := resource.NewEndpoint(domain.KindIdentity, func(req *resource.Request) (any, error) {
		p, err := provider(req)
		if err != nil {
			return nil, err
		}
		return p.Identity(req.Context())
	})
	return r.Register("auth", auth, "auth")
}
