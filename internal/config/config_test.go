package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gavrilikhin-d/libos/internal/fsio"
)

func TestDefaultMatchesRepoLayout(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "include/os", cfg.HeaderDir)
	assert.Equal(t, "include/os/header-only", cfg.OutputDir)
	assert.Equal(t, []string{"libos.hpp", "macros.h", "version.hpp"}, cfg.Ignore)
	assert.Equal(t, "libos.hpp", cfg.Umbrella)
	assert.Equal(t, 29, cfg.LicenseEndLine)
	require.Len(t, cfg.Platforms, 2)
	assert.Equal(t, "IS_OS_LINUX", cfg.Platforms[0].Guard)
	assert.Equal(t, "src/windows", cfg.Platforms[1].Dir)
}

func TestLoadMissingFileKeepsDefaults(t *testing.T) {
	fs := fsio.NewMemFS(nil)
	cfg, err := Load(fs, FileName)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadOverlaysFileOverDefaults(t *testing.T) {
	fs := fsio.NewMemFS(map[string]string{
		FileName: "output_dir: single-header\n" +
			"license_end_line: 12\n" +
			"ignore:\n" +
			"  - umbrella.hpp\n" +
			"sources: true\n",
	})

	cfg, err := Load(fs, FileName)
	require.NoError(t, err)
	assert.Equal(t, "single-header", cfg.OutputDir)
	assert.Equal(t, 12, cfg.LicenseEndLine)
	assert.Equal(t, []string{"umbrella.hpp"}, cfg.Ignore)
	assert.True(t, cfg.Sources)
	// Untouched keys keep their defaults.
	assert.Equal(t, "include/os", cfg.HeaderDir)
	assert.Equal(t, ".hpp", cfg.HeaderExt)
}

func TestLoadMalformedFileFails(t *testing.T) {
	fs := fsio.NewMemFS(map[string]string{
		FileName: "output_dir: [unclosed\n",
	})

	_, err := Load(fs, FileName)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "could not parse config file")
}
