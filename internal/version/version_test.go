package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gavrilikhin-d/libos/internal/fsio"
)

func testOpts() Options {
	return Options{
		Header:     "include/os/libos.hpp",
		Doxyfile:   "docs/source/Doxyfile",
		SphinxConf: "docs/source/conf.py",
	}
}

func TestExtract(t *testing.T) {
	fs := fsio.NewMemFS(map[string]string{
		"include/os/libos.hpp": "// LibOS umbrella\n#define LIBOS_VERSION_STRING \"2.3.1\"\n",
	})

	v, err := New(fs, testOpts()).Extract()
	require.NoError(t, err)
	assert.Equal(t, "2.3.1", v)
}

func TestExtractMissingPatternIsFatal(t *testing.T) {
	fs := fsio.NewMemFS(map[string]string{
		"include/os/libos.hpp": "// no version macro here\n",
	})

	_, err := New(fs, testOpts()).Extract()
	require.ErrorIs(t, err, ErrVersionNotFound)
}

func TestStampRewritesBothConfigs(t *testing.T) {
	fs := fsio.NewMemFS(map[string]string{
		"include/os/libos.hpp": "#define LIBOS_VERSION_STRING \"2.3.1\"\n",
		"docs/source/Doxyfile": "PROJECT_NAME           = LibOS\nPROJECT_NUMBER         = 1.0.0\n",
		"docs/source/conf.py":  "project = 'LibOS'\nrelease = '1.0.0'\n",
	})

	s := New(fs, testOpts())
	v, err := s.Extract()
	require.NoError(t, err)

	changed, err := s.Stamp(v)
	require.NoError(t, err)
	assert.Equal(t, []string{"docs/source/Doxyfile", "docs/source/conf.py"}, changed)

	doxy, _ := fs.ReadFile("docs/source/Doxyfile")
	assert.Contains(t, string(doxy), "PROJECT_NUMBER         = 2.3.1")
	conf, _ := fs.ReadFile("docs/source/conf.py")
	assert.Contains(t, string(conf), "release = '2.3.1'")
}

func TestStampMissingLineIsSilentNoOp(t *testing.T) {
	fs := fsio.NewMemFS(map[string]string{
		"docs/source/Doxyfile": "PROJECT_NAME           = LibOS\n",
		"docs/source/conf.py":  "project = 'LibOS'\n",
	})

	changed, err := New(fs, testOpts()).Stamp("2.3.1")
	require.NoError(t, err)
	assert.Empty(t, changed)

	doxy, _ := fs.ReadFile("docs/source/Doxyfile")
	assert.Equal(t, "PROJECT_NAME           = LibOS\n", string(doxy))
}

func TestStampMissingTargetFileFails(t *testing.T) {
	fs := fsio.NewMemFS(map[string]string{
		"docs/source/Doxyfile": "PROJECT_NUMBER         = 1.0.0\n",
	})

	_, err := New(fs, testOpts()).Stamp("2.3.1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "docs/source/conf.py")
}

func TestStampIsIdempotent(t *testing.T) {
	fs := fsio.NewMemFS(map[string]string{
		"docs/source/Doxyfile": "PROJECT_NUMBER         = 2.3.1\n",
		"docs/source/conf.py":  "release = '2.3.1'\n",
	})

	changed, err := New(fs, testOpts()).Stamp("2.3.1")
	require.NoError(t, err)
	assert.Empty(t, changed)
}
