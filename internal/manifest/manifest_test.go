package manifest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestLoadEmbeddedDefault ensures the embedded manifest parses and keeps
// group ordering.
func TestLoadEmbeddedDefault(t *testing.T) {
	t.Parallel()

	m, err := Load("")
	require.NoError(t, err)
	require.NotEmpty(t, m.Groups)
	require.NotEmpty(t, m.Captures)

	order := m.GroupOrder()
	require.Equal(t, "baseline", order[0])
	require.Equal(t, UnlistedGroup, order[len(order)-1])
	require.Equal(t, "Baseline Idle States", m.GroupName("baseline"))
}

// TestDescribe covers listed and unlisted captures.
func TestDescribe(t *testing.T) {
	t.Parallel()

	m, err := Load("")
	require.NoError(t, err)

	group, desc := m.Describe("test04_open_full.txt")
	require.Equal(t, "travel", group)
	require.Equal(t, "Full open travel (closed -> open)", desc)

	group, desc = m.Describe("mystery.txt")
	require.Equal(t, UnlistedGroup, group)
	require.Equal(t, "mystery.txt", desc)
	require.Equal(t, "Unlisted Captures", m.GroupName(UnlistedGroup))
}

// TestLoadOverrideFile ensures a file manifest replaces the embedded one.
func TestLoadOverrideFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "manifest.yaml")
	doc := "groups:\n  - key: g\n    name: G\ncaptures:\n  a.txt:\n    group: g\n    description: d\n"
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	m, err := Load(path)
	require.NoError(t, err)

	group, desc := m.Describe("a.txt")
	require.Equal(t, "g", group)
	require.Equal(t, "d", desc)
}
