package testutil

import (
	"path/filepath"
	"slices"
	"testing"

	"github.com/spf13/afero"
	"github.com/spf13/viper"

	"github.com/pders01/tagger/internal/config"
	"github.com/pders01/tagger/internal/structured"
)

// NewConfiguration returns the built-in configuration, freshly compiled so
// tests may change it.
func NewConfiguration(t *testing.T) *structured.Configuration {
	t.Helper()

	v := viper.New()
	config.SetDefaults(v)

	cfg, err := config.Load(v)
	if err != nil {
		t.Fatalf("failed to load default configuration: %v", err)
	}
	return cfg
}

// TempTree is a temporary directory on an afero file system
type TempTree struct {
	Fs   afero.Fs
	Root string
	T    *testing.T
}

// NewTempTree creates a temporary directory on fs
func NewTempTree(t *testing.T, fs afero.Fs) *TempTree {
	t.Helper()

	root, err := afero.TempDir(fs, "", "tagger-test-")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}

	return &TempTree{
		Fs:   fs,
		Root: root,
		T:    t,
	}
}

// Cleanup removes the temporary directory
func (r *TempTree) Cleanup() {
	r.T.Helper()
	if err := r.Fs.RemoveAll(r.Root); err != nil {
		r.T.Errorf("failed to cleanup temp tree: %v", err)
	}
}

// Join returns the full path of name inside the tree
func (r *TempTree) Join(name string) string {
	return filepath.Join(r.Root, filepath.FromSlash(name))
}

// CreateFile creates a file in the tree
func (r *TempTree) CreateFile(name, content string) {
	r.T.Helper()
	path := r.Join(name)
	if err := r.Fs.MkdirAll(filepath.Dir(path), 0755); err != nil {
		r.T.Fatalf("failed to create directory: %v", err)
	}
	if err := afero.WriteFile(r.Fs, path, []byte(content), 0644); err != nil {
		r.T.Fatalf("failed to create file: %v", err)
	}
}

// CreateDir creates a directory in the tree
func (r *TempTree) CreateDir(name string) {
	r.T.Helper()
	if err := r.Fs.MkdirAll(r.Join(name), 0755); err != nil {
		r.T.Fatalf("failed to create directory: %v", err)
	}
}

// Exists checks if name exists in the tree
func (r *TempTree) Exists(name string) bool {
	r.T.Helper()

	ok, err := afero.Exists(r.Fs, r.Join(name))
	if err != nil {
		r.T.Fatalf("failed to stat %s: %v", name, err)
	}
	return ok
}

// Content reads a file from the tree
func (r *TempTree) Content(name string) string {
	r.T.Helper()

	data, err := afero.ReadFile(r.Fs, r.Join(name))
	if err != nil {
		r.T.Fatalf("failed to read file: %v", err)
	}
	return string(data)
}

// List returns the sorted entry names of a directory in the tree
func (r *TempTree) List(dir string) []string {
	r.T.Helper()

	entries, err := afero.ReadDir(r.Fs, r.Join(dir))
	if err != nil {
		r.T.Fatalf("failed to list %s: %v", dir, err)
	}

	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	slices.Sort(names)
	return names
}
