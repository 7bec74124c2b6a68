package manifest

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// UnlistedGroup is the group assigned to captures missing from the manifest.
const UnlistedGroup = "unlisted"

// defaultManifest describes the reference capture set recorded on the
// bench hardware.
//
//go:embed default_manifest.yaml
var defaultManifest []byte

// Group is one report section in display order.
type Group struct {
	// Key is the identifier capture entries refer to.
	Key string `yaml:"key"`
	// Name is the section heading rendered in reports.
	Name string `yaml:"name"`
}

// Entry describes one known capture file.
type Entry struct {
	// Group is the key of the group the capture belongs to.
	Group string `yaml:"group"`
	// Description is the test scenario the capture records.
	Description string `yaml:"description"`
}

// Manifest groups capture files into named test scenarios for reporting.
type Manifest struct {
	// Groups lists the report sections in display order.
	Groups []Group `yaml:"groups"`
	// Captures maps capture filenames to their scenario entries.
	Captures map[string]Entry `yaml:"captures"`
}

// Load reads a manifest from the given YAML file, or the embedded
// reference manifest when the path is empty.
func Load(path string) (*Manifest, error) {
	contents := defaultManifest

	if path != "" {
		var err error

		contents, err = os.ReadFile(filepath.Clean(path))
		if err != nil {
			return nil, fmt.Errorf("read manifest: %w", err)
		}
	}

	var m Manifest
	if err := yaml.Unmarshal(contents, &m); err != nil {
		return nil, fmt.Errorf("unmarshal manifest: %w", err)
	}

	return &m, nil
}

// Describe returns the group key and description for a capture filename.
// Unlisted files fall into the UnlistedGroup with the filename as their
// description, so unknown captures are still analyzed and reported.
func (m *Manifest) Describe(filename string) (group, description string) {
	if e, ok := m.Captures[filename]; ok {
		return e.Group, e.Description
	}

	return UnlistedGroup, filename
}

// GroupName returns the display heading for a group key.
func (m *Manifest) GroupName(key string) string {
	for _, g := range m.Groups {
		if g.Key == key {
			return g.Name
		}
	}

	if key == UnlistedGroup {
		return "Unlisted Captures"
	}

	return key
}

// GroupOrder returns the group keys in display order, ending with the
// unlisted group.
func (m *Manifest) GroupOrder() []string {
	keys := make([]string, 0, len(m.Groups)+1)
	for _, g := range m.Groups {
		keys = append(keys, g.Key)
	}

	return append(keys, UnlistedGroup)
}
