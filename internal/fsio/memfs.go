package fsio

import (
	"fmt"
	"io/fs"
	"path"
	"sort"
)

// MemFS is an in-memory FS used by tests and by check mode rendering.
type MemFS struct {
	files map[string]string
}

// NewMemFS creates a MemFS preloaded with the given path -> content map.
func NewMemFS(files map[string]string) *MemFS {
	m := &MemFS{files: make(map[string]string, len(files))}
	for p, content := range files {
		m.files[path.Clean(p)] = content
	}
	return m
}

func (m *MemFS) ReadFile(p string) ([]byte, error) {
	content, ok := m.files[path.Clean(p)]
	if !ok {
		return nil, fmt.Errorf("open %s: %w", p, fs.ErrNotExist)
	}
	return []byte(content), nil
}

func (m *MemFS) WriteFile(p string, data []byte) error {
	m.files[path.Clean(p)] = string(data)
	return nil
}

func (m *MemFS) ReadDir(dir string) ([]string, error) {
	dir = path.Clean(dir)
	var names []string
	for p := range m.files {
		if path.Dir(p) == dir {
			names = append(names, path.Base(p))
		}
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("open %s: %w", dir, fs.ErrNotExist)
	}
	sort.Strings(names)
	return names, nil
}

func (m *MemFS) Exists(p string) bool {
	_, ok := m.files[path.Clean(p)]
	return ok
}
