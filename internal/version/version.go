package version

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/gavrilikhin-d/libos/internal/fsio"
)

// ErrVersionNotFound reports that the version macro is missing from the
// version-bearing header. Unlike a missing doc-config line, this is fatal.
var ErrVersionNotFound = errors.New("version string not found")

var (
	versionRe = regexp.MustCompile(`LIBOS_VERSION_STRING "(.*)"`)
	doxygenRe = regexp.MustCompile(`PROJECT_NUMBER         = .*`)
	sphinxRe  = regexp.MustCompile(`release = '.*'`)
)

// Options name the version-bearing header and the two documentation configs
// to stamp, relative to the repo root.
type Options struct {
	Header     string
	Doxyfile   string
	SphinxConf string
}

// Stamper extracts the library version and propagates it into the
// documentation generator configs.
type Stamper struct {
	fs   fsio.FS
	opts Options
}

// New creates a Stamper over the given file system.
func New(fs fsio.FS, opts Options) *Stamper {
	return &Stamper{fs: fs, opts: opts}
}

// Extract reads the version string out of the version macro line.
func (s *Stamper) Extract() (string, error) {
	data, err := s.fs.ReadFile(s.opts.Header)
	if err != nil {
		return "", fmt.Errorf("could not read version header %s: %w", s.opts.Header, err)
	}
	m := versionRe.FindSubmatch(data)
	if m == nil {
		return "", fmt.Errorf("%s: %w", s.opts.Header, ErrVersionNotFound)
	}
	return string(m[1]), nil
}

// Stamp rewrites the version line in both doc configs and returns the paths
// whose content changed. A config whose expected line is absent is rewritten
// unchanged: zero substitutions are a silent no-op.
func (s *Stamper) Stamp(version string) ([]string, error) {
	targets := []struct {
		path        string
		re          *regexp.Regexp
		replacement string
	}{
		{s.opts.Doxyfile, doxygenRe, "PROJECT_NUMBER         = " + version},
		{s.opts.SphinxConf, sphinxRe, "release = '" + version + "'"},
	}

	var changed []string
	for _, t := range targets {
		data, err := s.fs.ReadFile(t.path)
		if err != nil {
			return changed, fmt.Errorf("could not read %s: %w", t.path, err)
		}
		updated := t.re.ReplaceAll(data, []byte(t.replacement))
		if err := s.fs.WriteFile(t.path, updated); err != nil {
			return changed, fmt.Errorf("could not write %s: %w", t.path, err)
		}
		if string(updated) != string(data) {
			changed = append(changed, t.path)
		}
	}
	return changed, nil
}
