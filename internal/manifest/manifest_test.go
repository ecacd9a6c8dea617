package manifest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gavrilikhin-d/libos/internal/fsio"
)

const outDir = "include/os/header-only"

func TestWriteLoadRoundTrip(t *testing.T) {
	fs := fsio.NewMemFS(nil)
	m := NewManager(fs, outDir)

	outputs := map[string]string{
		outDir + "/a.hpp": "// A. Header-only\n",
		outDir + "/b.hpp": "// B. Header-only\n",
	}
	require.NoError(t, m.Write(outputs))

	man, err := m.Load()
	require.NoError(t, err)
	require.Len(t, man.Entries, 2)
	assert.NotZero(t, man.GeneratedAt)
	// Entries sorted by path.
	assert.Equal(t, outDir+"/a.hpp", man.Entries[0].Path)
	assert.Equal(t, Hash("// A. Header-only\n"), man.Entries[0].Hash)
}

func TestMergeKeepsEntriesForOutputsNotInRun(t *testing.T) {
	fs := fsio.NewMemFS(nil)
	m := NewManager(fs, outDir)

	require.NoError(t, m.Write(map[string]string{
		outDir + "/a.hpp": "// A v1\n",
		outDir + "/b.hpp": "// B v1\n",
	}))
	require.NoError(t, m.Merge(map[string]string{
		outDir + "/a.hpp": "// A v2\n",
	}))

	man, err := m.Load()
	require.NoError(t, err)
	require.Len(t, man.Entries, 2)
	assert.Equal(t, Hash("// A v2\n"), man.Entries[0].Hash)
	assert.Equal(t, outDir+"/b.hpp", man.Entries[1].Path)
	assert.Equal(t, Hash("// B v1\n"), man.Entries[1].Hash)
}

func TestLoadMissingManifestIsEmpty(t *testing.T) {
	man, err := NewManager(fsio.NewMemFS(nil), outDir).Load()
	require.NoError(t, err)
	assert.Empty(t, man.Entries)
}

func TestLoadMalformedManifestFails(t *testing.T) {
	fs := fsio.NewMemFS(map[string]string{
		outDir + "/" + FileName: "not-a-timestamp\n",
	})
	_, err := NewManager(fs, outDir).Load()
	require.Error(t, err)
}

func TestDiffReportsStaleMissingAndUnexpected(t *testing.T) {
	fs := fsio.NewMemFS(map[string]string{
		outDir + "/stale.hpp": "old content",
		outDir + "/fresh.hpp": "fresh content",
	})
	m := NewManager(fs, outDir)

	// Previous run also produced gone.hpp, since removed from the headers.
	require.NoError(t, m.Write(map[string]string{
		outDir + "/stale.hpp": "old content",
		outDir + "/fresh.hpp": "fresh content",
		outDir + "/gone.hpp":  "whatever",
	}))

	rendered := map[string]string{
		outDir + "/stale.hpp":   "new content",
		outDir + "/fresh.hpp":   "fresh content",
		outDir + "/missing.hpp": "never written",
	}
	stale, missing, unexpected, err := m.Diff(rendered)
	require.NoError(t, err)
	assert.Equal(t, []string{outDir + "/stale.hpp"}, stale)
	assert.Equal(t, []string{outDir + "/missing.hpp"}, missing)
	assert.Equal(t, []string{outDir + "/gone.hpp"}, unexpected)
}

func TestDiffCleanTree(t *testing.T) {
	fs := fsio.NewMemFS(map[string]string{
		outDir + "/a.hpp": "content",
	})
	m := NewManager(fs, outDir)
	require.NoError(t, m.Write(map[string]string{outDir + "/a.hpp": "content"}))

	stale, missing, unexpected, err := m.Diff(map[string]string{outDir + "/a.hpp": "content"})
	require.NoError(t, err)
	assert.Empty(t, stale)
	assert.Empty(t, missing)
	assert.Empty(t, unexpected)
}
