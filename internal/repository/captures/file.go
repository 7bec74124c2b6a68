package captures

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/oshokin/doorlink-analyzer/internal/capture"
)

// Repository provides access to stored capture files.
type Repository interface {
	// List returns the capture filenames available, sorted by name.
	List(ctx context.Context) ([]string, error)
	// Load parses the named capture.
	Load(ctx context.Context, name string) (*capture.Capture, error)
}

// ErrNotFound is returned when the named capture does not exist.
var ErrNotFound = errors.New("capture not found")

// captureExtensions are the file extensions recognized as capture exports.
var captureExtensions = map[string]bool{
	".txt": true,
	".csv": true,
}

// DirRepository serves captures from a directory of logic-analyzer exports.
type DirRepository struct {
	// dir is the directory scanned for capture files.
	dir string
}

// NewDirRepository creates a repository over the provided directory.
func NewDirRepository(dir string) *DirRepository {
	return &DirRepository{dir: filepath.Clean(dir)}
}

// List returns the capture filenames in the directory, sorted by name.
func (r *DirRepository) List(_ context.Context) ([]string, error) {
	entries, err := os.ReadDir(r.dir)
	if err != nil {
		return nil, fmt.Errorf("read capture directory: %w", err)
	}

	var names []string

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		if captureExtensions[strings.ToLower(filepath.Ext(entry.Name()))] {
			names = append(names, entry.Name())
		}
	}

	sort.Strings(names)

	return names, nil
}

// Load opens and parses the named capture file.
func (r *DirRepository) Load(_ context.Context, name string) (*capture.Capture, error) {
	f, err := os.Open(filepath.Join(r.dir, filepath.Base(name)))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
		}

		return nil, fmt.Errorf("open capture: %w", err)
	}

	defer func() {
		_ = f.Close()
	}()

	c, err := capture.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parse capture %s: %w", name, err)
	}

	return c, nil
}
