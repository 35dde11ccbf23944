package domain

import "time"

// Application is the one persisted resource; everything else is a live view
// over the provider.
type Application struct {
	ID                  string    `json:"id"`
	Slug                string    `json:"slug"`
	Name                string    `json:"name"`
	Description         string    `json:"description"`
	Status              string    `json:"status"`
	DefaultLaunchConfig string    `json:"default_launch_config,omitempty"`
	CreatedAt           time.Time `json:"added"`
	UpdatedAt           time.Time `json:"updated"`
}

func (a *Application) ObjectID() string { return a.ID }

const (
	ApplicationStatusLive   = "LIVE"
	ApplicationStatusDev    = "DEV"
	ApplicationStatusBeta   = "BETA"
	ApplicationStatusHidden = "HIDDEN"
)

type ApplicationInput struct {
	Slug                string `json:"slug" validate:"required,max=100,hostname_rfc1123"`
	Name                string `json:"name" validate:"required,max=60"`
	Description         string `json:"description" validate:"max=1000"`
	Status              string `json:"status" validate:"omitempty,oneof=LIVE DEV BETA HIDDEN"`
	DefaultLaunchConfig string `json:"default_launch_config"`
}
