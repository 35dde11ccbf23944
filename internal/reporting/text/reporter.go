package text

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"

	"github.com/olusolaa/cloud-resource-api/internal/core/ports"
	"github.com/olusolaa/cloud-resource-api/internal/core/router"
)

const ReporterTypeText = "text"

type Config struct {
	NoColor bool `mapstructure:"no_color"`
	// BasePath is prepended to every pattern.
	BasePath string `mapstructure:"base_path"`
}

// Reporter prints a route table.
type Reporter struct {
	config Config
	writer io.Writer
	logger ports.Logger
}

func NewReporter(cfg Config, w io.Writer, logger ports.Logger) *Reporter {
	if w == nil {
		w = os.Stdout
	}
	if f, ok := w.(*os.File); cfg.NoColor || !ok || !isTerminal(f) {
		color.NoColor = true
	}
	return &Reporter{config: cfg, writer: w, logger: logger}
}

func isTerminal(f *os.File) bool {
	stat, err := f.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) != 0
}

func (r *Reporter) Report(ctx context.Context, routes []router.Route) error {
	if len(routes) == 0 {
		fmt.Fprintln(r.writer, "No routes registered.")
		return nil
	}

	tw := tabwriter.NewWriter(r.writer, 0, 8, 2, ' ', 0)
	defer tw.Flush()

	green := color.New(color.FgGreen).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()
	cyan := color.New(color.FgCyan).SprintFunc()

	fmt.Fprintln(tw, "Name\tMethods\tPattern\tKind")
	fmt.Fprintln(tw, "----\t-------\t-------\t----")

	detail := 0
	for _, rt := range routes {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if rt.Detail {
			detail++
		}
		methods := make([]string, 0, len(rt.Methods()))
		for _, m := range rt.Methods() {
			switch m {
			case "GET", "HEAD", "OPTIONS":
				methods = append(methods, green(m))
			case "DELETE":
				methods = append(methods, red(m))
			default:
				methods = append(methods, yellow(m))
			}
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", cyan(rt.Name), strings.Join(methods, ","), r.config.BasePath+rt.Pattern, rt.Kind)
	}

	fmt.Fprintln(tw, "\nSummary:")
	fmt.Fprintln(tw, "-------")
	fmt.Fprintf(tw, "Total Routes:\t%d\n", len(routes))
	fmt.Fprintf(tw, "Detail Routes:\t%d\n", detail)
	fmt.Fprintf(tw, "Collection Routes:\t%d\n", len(routes)-detail)
	r.logger.Debugf(ctx, "Printed %d routes", len(routes))
	return nil
}
