package captures

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestDirRepositoryListAndLoad checks enumeration, parsing and the
// not-found error.
func TestDirRepositoryListAndLoad(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	content := "Time [s], Channel 0, Channel 1\n0.0, 1, 1\n0.001, 0, 1\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "test01_idle.txt"), []byte(content), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b_run.csv"), []byte(content), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.md"), []byte("x"), 0o600))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.txt"), 0o700))

	repo := NewDirRepository(dir)
	ctx := context.Background()

	names, err := repo.List(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"b_run.csv", "test01_idle.txt"}, names)

	c, err := repo.Load(ctx, "test01_idle.txt")
	require.NoError(t, err)
	require.Equal(t, 3, c.Columns)
	require.Len(t, c.Wires[0], 2)

	_, err = repo.Load(ctx, "absent.txt")
	require.ErrorIs(t, err, ErrNotFound)
}
