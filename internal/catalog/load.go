package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/oshokin/doorlink-analyzer/internal/domain/trace"
)

// defaultCatalog is the protocol knowledge reverse-engineered from the
// reference captures, compiled into the binary so the analyzer works
// without any external files.
//
//go:embed default_catalog.yaml
var defaultCatalog []byte

var (
	// errEntrySymbolsMissing is returned for a catalog entry without symbols.
	errEntrySymbolsMissing = errors.New("catalog entry has no symbols")
	// errEntryNameMissing is returned for a catalog entry without a name.
	errEntryNameMissing = errors.New("catalog entry has no name")
)

// Load reads a catalog set from the given YAML file, or the embedded
// default when the path is empty.
func Load(path string) (*Set, error) {
	contents := defaultCatalog

	if path != "" {
		var err error

		contents, err = os.ReadFile(filepath.Clean(path))
		if err != nil {
			return nil, fmt.Errorf("read catalog: %w", err)
		}
	}

	var set Set
	if err := yaml.Unmarshal(contents, &set); err != nil {
		return nil, fmt.Errorf("unmarshal catalog: %w", err)
	}

	if err := validate(&set); err != nil {
		return nil, err
	}

	return &set, nil
}

// validate checks every entry for the fields classification depends on
// and normalizes absent categories to UNKNOWN.
func validate(set *Set) error {
	for _, cat := range []*Catalog{&set.Receiver, &set.Opener} {
		for _, entries := range [][]Entry{cat.Exact, cat.Prefixes} {
			for i := range entries {
				e := &entries[i]

				if len(e.Symbols) == 0 {
					return fmt.Errorf("%w: %q", errEntrySymbolsMissing, e.Name)
				}

				if e.Name == "" {
					return fmt.Errorf("%w: symbols %v", errEntryNameMissing, e.Symbols)
				}

				if e.Category == "" {
					e.Category = trace.CategoryUnknown
				}
			}
		}
	}

	return nil
}
