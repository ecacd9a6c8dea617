package fsio

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// FS is the minimal file-system surface the tools operate on. Paths are
// slash-separated and relative to a single root. Reads and writes are
// whole-file; there is no streaming.
type FS interface {
	ReadFile(path string) ([]byte, error)
	WriteFile(path string, data []byte) error
	// ReadDir lists the plain files (not directories) directly under dir,
	// sorted by name.
	ReadDir(dir string) ([]string, error)
	Exists(path string) bool
}

// OSFS is an FS backed by the real file system, rooted at a directory.
type OSFS struct {
	Root string
}

// NewOSFS creates an FS rooted at root.
func NewOSFS(root string) *OSFS {
	return &OSFS{Root: root}
}

func (o *OSFS) abs(path string) string {
	return filepath.Join(o.Root, filepath.FromSlash(path))
}

func (o *OSFS) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(o.abs(path))
}

func (o *OSFS) WriteFile(path string, data []byte) error {
	abs := o.abs(path)
	if err := os.MkdirAll(filepath.Dir(abs), 0755); err != nil {
		return fmt.Errorf("could not create output directory: %w", err)
	}
	return os.WriteFile(abs, data, 0644)
}

func (o *OSFS) ReadDir(dir string) ([]string, error) {
	entries, err := os.ReadDir(o.abs(dir))
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names, nil
}

func (o *OSFS) Exists(path string) bool {
	_, err := os.Stat(o.abs(path))
	return err == nil
}

// FindRoot walks up from dir looking for a repository marker (a .git entry).
// It falls back to dir itself when no marker is found.
func FindRoot(dir string) string {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return dir
	}
	for cur := abs; ; {
		if _, err := os.Stat(filepath.Join(cur, ".git")); err == nil {
			return cur
		}
		parent := filepath.Dir(cur)
		if parent == cur {
			return abs
		}
		cur = parent
	}
}
