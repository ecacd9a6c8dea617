package config

import (
	"errors"
	"fmt"
	"io/fs"

	"gopkg.in/yaml.v3"

	"github.com/gavrilikhin-d/libos/internal/fsio"
)

// FileName is the optional per-repository config file, read from the repo root.
const FileName = ".libos-tools.yaml"

// Platform describes one platform-specific source tree.
type Platform struct {
	Name  string `yaml:"name"`  // e.g. "linux"
	Guard string `yaml:"guard"` // preprocessor macro, e.g. "IS_OS_LINUX"
	Dir   string `yaml:"dir"`   // source tree, e.g. "src/linux"
}

// Config holds every path and text contract the tools rely on. Values are
// slash-separated paths relative to the repo root.
type Config struct {
	HeaderDir   string `yaml:"header_dir"`
	OutputDir   string `yaml:"output_dir"`
	IncludeRoot string `yaml:"include_root"` // prefix stripped from doc @file paths and prepended to include references

	// Ignore filenames are doublestar glob patterns; exact names match literally.
	Ignore   []string `yaml:"ignore"`
	Umbrella string   `yaml:"umbrella"`

	LicenseEndLine int    `yaml:"license_end_line"` // last line of the license banner, 0-indexed
	HeaderExt      string `yaml:"header_ext"`
	SourceExt      string `yaml:"source_ext"`

	Sources   bool       `yaml:"sources"` // inline platform sources by default
	Platforms []Platform `yaml:"platforms"`

	VersionHeader string `yaml:"version_header"`
	Doxyfile      string `yaml:"doxyfile"`
	SphinxConf    string `yaml:"sphinx_conf"`
}

// Default returns the layout of the LibOS repository.
func Default() *Config {
	return &Config{
		HeaderDir:      "include/os",
		OutputDir:      "include/os/header-only",
		IncludeRoot:    "include",
		Ignore:         []string{"libos.hpp", "macros.h", "version.hpp"},
		Umbrella:       "libos.hpp",
		LicenseEndLine: 29,
		HeaderExt:      ".hpp",
		SourceExt:      ".cpp",
		Platforms: []Platform{
			{Name: "linux", Guard: "IS_OS_LINUX", Dir: "src/linux"},
			{Name: "windows", Guard: "IS_OS_WINDOWS", Dir: "src/windows"},
		},
		VersionHeader: "include/os/libos.hpp",
		Doxyfile:      "docs/source/Doxyfile",
		SphinxConf:    "docs/source/conf.py",
	}
}

// Load returns the defaults overlaid with the repo config file, when present.
// A missing file is not an error; a malformed one is.
func Load(fsys fsio.FS, path string) (*Config, error) {
	cfg := Default()
	data, err := fsys.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("could not read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("could not parse config file %s: %w", path, err)
	}
	return cfg, nil
}
