package common

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"

	"github.com/oshokin/doorlink-analyzer/internal/analysis"
	"github.com/oshokin/doorlink-analyzer/internal/catalog"
	"github.com/oshokin/doorlink-analyzer/internal/config"
	"github.com/oshokin/doorlink-analyzer/internal/logger"
	"github.com/oshokin/doorlink-analyzer/internal/manifest"
	"github.com/oshokin/doorlink-analyzer/internal/repository/captures"
)

// SetupOptions selects the configuration sources for an analysis run.
// Empty paths fall back to the configuration file and then the embedded
// defaults.
type SetupOptions struct {
	// ConfigPath specifies the path to the settings YAML file.
	ConfigPath string
	// CatalogPath overrides the message catalog file from the configuration.
	CatalogPath string
	// ManifestPath overrides the capture manifest file from the configuration.
	ManifestPath string
}

// Environment is the loaded configuration shared by the analysis services.
type Environment struct {
	Config   *config.Config
	Catalog  *catalog.Set
	Manifest *manifest.Manifest
	Analyzer *analysis.Analyzer
}

// Setup loads the configuration, catalog and manifest and builds the
// analysis pipeline from them.
func Setup(ctx context.Context, opts *SetupOptions) (*Environment, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}

	catalogPath := cfg.CatalogFile
	if opts.CatalogPath != "" {
		catalogPath = opts.CatalogPath
	}

	set, err := catalog.Load(catalogPath)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	manifestPath := cfg.ManifestFile
	if opts.ManifestPath != "" {
		manifestPath = opts.ManifestPath
	}

	m, err := manifest.Load(manifestPath)
	if err != nil {
		return nil, fmt.Errorf("load manifest: %w", err)
	}

	logger.DebugKV(ctx, "Environment loaded",
		"catalog", pathLabel(catalogPath), "manifest", pathLabel(manifestPath))

	return &Environment{
		Config:   cfg,
		Catalog:  set,
		Manifest: m,
		Analyzer: analysis.New(cfg, set),
	}, nil
}

// AnalyzedCapture is one capture run through the pipeline, with its
// manifest metadata attached.
type AnalyzedCapture struct {
	// Name is the capture filename.
	Name string
	// Group is the manifest group key.
	Group string
	// GroupName is the manifest group heading.
	GroupName string
	// Description is the manifest description of the scenario.
	Description string
	// Result is the decoded capture.
	Result *analysis.Result
}

// AnalyzeAll loads and analyzes the selected captures. Explicit files are
// taken as given; otherwise every capture in the directory is analyzed.
// Results are ordered by manifest group, then by filename within a group.
func AnalyzeAll(ctx context.Context, env *Environment, dir string, files []string) ([]AnalyzedCapture, error) {
	names, repo, err := resolveTargets(ctx, env, dir, files)
	if err != nil {
		return nil, err
	}

	analyzed := make([]AnalyzedCapture, 0, len(names))

	for _, name := range names {
		c, err := repo(name).Load(ctx, filepath.Base(name))
		if err != nil {
			return nil, err
		}

		base := filepath.Base(name)
		group, description := env.Manifest.Describe(base)

		result := env.Analyzer.Analyze(ctx, c)
		logger.DebugKV(ctx, "Capture analyzed",
			"capture", base, "messages", len(result.Messages))

		analyzed = append(analyzed, AnalyzedCapture{
			Name:        base,
			Group:       group,
			GroupName:   env.Manifest.GroupName(group),
			Description: description,
			Result:      result,
		})
	}

	sortByManifest(analyzed, env.Manifest)

	return analyzed, nil
}

// resolveTargets produces the capture names to analyze and a repository
// selector for them. Explicit file arguments may live outside the capture
// directory, so each resolves to a repository over its own directory.
func resolveTargets(
	ctx context.Context,
	env *Environment,
	dir string,
	files []string,
) ([]string, func(name string) captures.Repository, error) {
	if dir == "" {
		dir = env.Config.CaptureDir
	}

	if len(files) > 0 {
		return files, func(name string) captures.Repository {
			if d := filepath.Dir(name); d != "." {
				return captures.NewDirRepository(d)
			}

			return captures.NewDirRepository(dir)
		}, nil
	}

	repo := captures.NewDirRepository(dir)

	names, err := repo.List(ctx)
	if err != nil {
		return nil, nil, err
	}

	if len(names) == 0 {
		return nil, nil, fmt.Errorf("no capture files in %s", dir)
	}

	return names, func(string) captures.Repository { return repo }, nil
}

// sortByManifest orders analyzed captures by manifest group order, then
// by filename. Unknown group keys sort after the known ones.
func sortByManifest(analyzed []AnalyzedCapture, m *manifest.Manifest) {
	rank := make(map[string]int)
	for i, key := range m.GroupOrder() {
		rank[key] = i
	}

	groupRank := func(key string) int {
		if r, ok := rank[key]; ok {
			return r
		}

		return len(rank)
	}

	sort.SliceStable(analyzed, func(i, j int) bool {
		ri, rj := groupRank(analyzed[i].Group), groupRank(analyzed[j].Group)
		if ri != rj {
			return ri < rj
		}

		return analyzed[i].Name < analyzed[j].Name
	})
}

// pathLabel names a configuration source for logging.
func pathLabel(path string) string {
	if path == "" {
		return "embedded"
	}

	return path
}
