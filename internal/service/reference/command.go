package reference

import (
	"context"
	"io"
	"os"

	"github.com/oshokin/doorlink-analyzer/internal/logger"
	"github.com/oshokin/doorlink-analyzer/internal/report"
	"github.com/oshokin/doorlink-analyzer/internal/service/common"
)

// Options controls the reference document generation.
type Options struct {
	// ConfigPath specifies the path to the settings YAML file.
	ConfigPath string
	// Dir overrides the capture directory from the configuration.
	Dir string
	// CatalogPath overrides the message catalog file.
	CatalogPath string
	// ManifestPath overrides the capture manifest file.
	ManifestPath string
	// Output receives the rendered document; defaults to standard output.
	Output io.Writer
}

// Run analyzes every capture in the directory and writes the protocol
// reference document compiled from them.
func Run(ctx context.Context, opts *Options) error {
	ctx = logger.WithName(ctx, "reference")

	env, err := common.Setup(ctx, &common.SetupOptions{
		ConfigPath:   opts.ConfigPath,
		CatalogPath:  opts.CatalogPath,
		ManifestPath: opts.ManifestPath,
	})
	if err != nil {
		return err
	}

	analyzed, err := common.AnalyzeAll(ctx, env, opts.Dir, nil)
	if err != nil {
		return err
	}

	inputs := make([]report.CaptureInput, 0, len(analyzed))
	for _, ac := range analyzed {
		inputs = append(inputs, report.CaptureInput{
			Name:        ac.Name,
			GroupName:   ac.GroupName,
			Description: ac.Description,
			Result:      ac.Result,
		})
	}

	out := opts.Output
	if out == nil {
		out = os.Stdout
	}

	if err = report.NewRenderer(out, false).Reference(env.Config, env.Catalog, inputs); err != nil {
		return err
	}

	logger.InfoKV(ctx, "Reference generated", "captures", len(analyzed))

	return nil
}
