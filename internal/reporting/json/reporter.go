package json

import (
	"context"
	"io"
	"os"

	jsoniter "github.com/json-iterator/go"

	"github.com/olusolaa/cloud-resource-api/internal/core/domain"
	"github.com/olusolaa/cloud-resource-api/internal/core/ports"
	"github.com/olusolaa/cloud-resource-api/internal/core/router"
	"github.com/olusolaa/cloud-resource-api/internal/errors"
)

const ReporterTypeJSON = "json"

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type Config struct {
	BasePath string `mapstructure:"base_path"`
}

type Reporter struct {
	config Config
	writer io.Writer
	logger ports.Logger
}

func NewReporter(cfg Config, w io.Writer, logger ports.Logger) *Reporter {
	if w == nil {
		w = os.Stdout
	}
	return &Reporter{config: cfg, writer: w, logger: logger}
}

type jsonReport struct {
	Total  int         `json:"total"`
	Routes []jsonRoute `json:"routes"`
}

type jsonRoute struct {
	Name     string              `json:"name"`
	Pattern  string              `json:"pattern"`
	Methods  []string            `json:"methods"`
	Basename string              `json:"basename"`
	Kind     domain.ResourceKind `json:"kind"`
	Detail   bool                `json:"detail"`
}

func (r *Reporter) Report(ctx context.Context, routes []router.Route) error {
	report := jsonReport{Total: len(routes), Routes: make([]jsonRoute, 0, len(routes))}
	for _, rt := range routes {
		if ctx.Err() != nil {
			r.logger.Warnf(ctx, "JSON route report cancelled.")
			return ctx.Err()
		}
		report.Routes = append(report.Routes, jsonRoute{
			Name:     rt.Name,
			Pattern:  r.config.BasePath + rt.Pattern,
			Methods:  rt.Methods(),
			Basename: rt.Basename,
			Kind:     rt.Kind,
			Detail:   rt.Detail,
		})
	}

	encoder := json.NewEncoder(r.writer)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(report); err != nil {
		r.logger.Errorf(ctx, err, "Failed to encode JSON route report")
		return errors.Wrap(err, errors.CodeInternal, "failed to encode JSON route report")
	}
	return nil
}
