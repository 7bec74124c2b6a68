package analyzer

import (
	"context"
	"io"
	"os"

	"github.com/oshokin/doorlink-analyzer/internal/logger"
	"github.com/oshokin/doorlink-analyzer/internal/report"
	"github.com/oshokin/doorlink-analyzer/internal/service/common"
)

// Options controls an analysis run over one or more captures.
type Options struct {
	// ConfigPath specifies the path to the settings YAML file.
	ConfigPath string
	// Dir overrides the capture directory from the configuration.
	Dir string
	// Files selects explicit capture files instead of scanning the directory.
	Files []string
	// CatalogPath overrides the message catalog file.
	CatalogPath string
	// ManifestPath overrides the capture manifest file.
	ManifestPath string
	// Raw switches the timeline to uninterpreted symbol sequences.
	Raw bool
	// Output receives the rendered reports; defaults to standard output.
	Output io.Writer
}

// Run analyzes the selected captures and writes one report per capture,
// ordered by manifest group.
func Run(ctx context.Context, opts *Options) error {
	ctx = logger.WithName(ctx, "analyze")

	env, err := common.Setup(ctx, &common.SetupOptions{
		ConfigPath:   opts.ConfigPath,
		CatalogPath:  opts.CatalogPath,
		ManifestPath: opts.ManifestPath,
	})
	if err != nil {
		return err
	}

	analyzed, err := common.AnalyzeAll(ctx, env, opts.Dir, opts.Files)
	if err != nil {
		return err
	}

	out := opts.Output
	if out == nil {
		out = os.Stdout
	}

	renderer := report.NewRenderer(out, opts.Raw)

	for _, ac := range analyzed {
		err = renderer.Capture(report.CaptureInput{
			Name:        ac.Name,
			GroupName:   ac.GroupName,
			Description: ac.Description,
			Result:      ac.Result,
		})
		if err != nil {
			return err
		}
	}

	logger.InfoKV(ctx, "Analysis complete", "captures", len(analyzed))

	return nil
}
