package reference

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// captureFile is a dual-wire capture holding one CMD-R burst on channel 0.
const captureFile = "Time [s],Channel 0,Channel 1\n" +
	"0.000000,1,0\n" +
	"0.100000,0,0\n" +
	"0.100026,1,0\n" +
	"0.100052,0,0\n" +
	"0.100234,1,0\n" +
	"0.100260,0,0\n" +
	"0.100286,1,0\n" +
	"0.100312,0,0\n" +
	"0.100338,1,0\n" +
	"0.100364,0,0\n" +
	"0.100494,1,0\n" +
	"0.100520,0,0\n" +
	"0.100650,1,0\n" +
	"0.100676,0,0\n" +
	"0.100728,1,0\n" +
	"0.100754,0,0\n" +
	"0.100988,1,0\n" +
	"0.101014,0,0\n" +
	"0.101040,1,0\n" +
	"0.101066,0,0\n" +
	"0.101222,1,0\n" +
	"0.101248,0,0\n" +
	"0.101352,1,0\n" +
	"0.101378,0,0\n" +
	"0.101430,1,0\n"

func TestRunCompilesReference(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "toggle.txt"), []byte(captureFile), 0o600))

	var out bytes.Buffer

	err := Run(context.Background(), &Options{
		ConfigPath: filepath.Join(dir, "missing.yaml"),
		Dir:        dir,
		Output:     &out,
	})
	require.NoError(t, err)

	doc := out.String()
	require.Contains(t, doc, "=== Protocol reference ===")
	require.Contains(t, doc, "measured high pulse: mean 26.0 us")
	require.Contains(t, doc, "CMD-R")
	require.Contains(t, doc, "No unrecognized sequences.")
}

func TestRunEmptyDirectoryFails(t *testing.T) {
	t.Parallel()

	err := Run(context.Background(), &Options{
		ConfigPath: filepath.Join(t.TempDir(), "missing.yaml"),
		Dir:        t.TempDir(),
		Output:     &bytes.Buffer{},
	})
	require.Error(t, err)
}
