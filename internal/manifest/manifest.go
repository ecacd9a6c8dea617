package manifest

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/gavrilikhin-d/libos/internal/fsio"
)

// FileName is the manifest written next to the generated headers.
const FileName = ".manifest"

// Entry records one generated output.
type Entry struct {
	Hash string // SHA-256 of the file content, hex
	Path string // output path relative to the repo root
}

// Manifest is the record of the last generation run.
type Manifest struct {
	GeneratedAt int64
	Entries     []Entry
}

// Manager loads and writes the manifest for one output directory.
type Manager struct {
	fs   fsio.FS
	path string
}

// NewManager creates a manager for the manifest inside outputDir.
func NewManager(fs fsio.FS, outputDir string) *Manager {
	return &Manager{fs: fs, path: path.Join(outputDir, FileName)}
}

// Hash returns the manifest hash of a file content.
func Hash(content string) string {
	sum := sha256.Sum256([]byte(content))
	return hex.EncodeToString(sum[:])
}

// Load reads the manifest. A missing file yields an empty manifest.
func (m *Manager) Load() (*Manifest, error) {
	data, err := m.fs.ReadFile(m.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &Manifest{}, nil
		}
		return nil, fmt.Errorf("could not read manifest: %w", err)
	}

	lines := strings.Split(strings.TrimRight(strings.ReplaceAll(string(data), "\r\n", "\n"), "\n"), "\n")
	if len(lines) == 0 || lines[0] == "" {
		return &Manifest{}, nil
	}

	ts, err := strconv.ParseInt(strings.TrimSpace(lines[0]), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid manifest: could not parse timestamp %q: %w", lines[0], err)
	}

	man := &Manifest{GeneratedAt: ts}
	for _, line := range lines[1:] {
		if line == "" {
			continue
		}
		hash, p, ok := strings.Cut(line, "  ")
		if !ok {
			return nil, fmt.Errorf("invalid manifest: malformed entry %q", line)
		}
		man.Entries = append(man.Entries, Entry{Hash: hash, Path: p})
	}
	return man, nil
}

// Write records the outputs of a generation run, replacing any previous
// manifest. Entries are sorted by path.
func (m *Manager) Write(outputs map[string]string) error {
	entries := make([]Entry, 0, len(outputs))
	for p, content := range outputs {
		entries = append(entries, Entry{Hash: Hash(content), Path: p})
	}
	return m.write(entries)
}

// Merge records the outputs of a partial run on top of the existing manifest.
// Entries for outputs the run did not produce are kept, so a filtered run
// does not erase what a full run recorded.
func (m *Manager) Merge(outputs map[string]string) error {
	man, err := m.Load()
	if err != nil {
		return err
	}

	byPath := make(map[string]Entry, len(man.Entries)+len(outputs))
	for _, e := range man.Entries {
		byPath[e.Path] = e
	}
	for p, content := range outputs {
		byPath[p] = Entry{Hash: Hash(content), Path: p}
	}

	entries := make([]Entry, 0, len(byPath))
	for _, e := range byPath {
		entries = append(entries, e)
	}
	return m.write(entries)
}

func (m *Manager) write(entries []Entry) error {
	sort.Slice(entries, func(i, j int) bool { return entries[i].Path < entries[j].Path })

	var b strings.Builder
	fmt.Fprintf(&b, "%d\n", time.Now().UTC().Unix())
	for _, e := range entries {
		fmt.Fprintf(&b, "%s  %s\n", e.Hash, e.Path)
	}
	return m.fs.WriteFile(m.path, []byte(b.String()))
}

// Diff compares freshly rendered outputs against the files on disk and the
// recorded manifest. Stale are outputs whose on-disk content differs from the
// rendered one, missing are rendered outputs absent from disk, and unexpected
// are manifest entries no longer rendered at all.
func (m *Manager) Diff(outputs map[string]string) (stale, missing, unexpected []string, err error) {
	paths := make([]string, 0, len(outputs))
	for p := range outputs {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	for _, p := range paths {
		data, readErr := m.fs.ReadFile(p)
		if readErr != nil {
			if errors.Is(readErr, fs.ErrNotExist) {
				missing = append(missing, p)
				continue
			}
			return nil, nil, nil, fmt.Errorf("could not read %s: %w", p, readErr)
		}
		if string(data) != outputs[p] {
			stale = append(stale, p)
		}
	}

	man, err := m.Load()
	if err != nil {
		return nil, nil, nil, err
	}
	for _, e := range man.Entries {
		if _, ok := outputs[e.Path]; !ok {
			unexpected = append(unexpected, e.Path)
		}
	}
	return stale, missing, unexpected, nil
}
