package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"serde-generator/internal/naming"
)

func TestParse_Defaults(t *testing.T) {
	f, err := Parse([]byte(`packages: ["./examples/basic"]`))
	require.NoError(t, err)

	assert.Equal(t, DefaultVersion, f.Version)
	assert.Equal(t, DefaultOutputSuffix, f.Generation.OutputSuffix)
	assert.Equal(t, DefaultWorkers, f.Generation.Workers)
	assert.Equal(t, naming.CamelCase, f.Generation.DefaultNaming)
	assert.Equal(t, []string{"./examples/basic"}, f.Packages)
}

func TestParse_Full(t *testing.T) {
	data := `
version: "1"
generation:
  output_suffix: _gen
  workers: 2
  default_naming: kebab-case
  deny_unknown: true
types:
  - type: basic.Order
    naming: identity
    deny_unknown: false
    members:
      - name: Note
        rename: memo
        optional: true
      - name: Secret
        skip: true
`
	f, err := Parse([]byte(data))
	require.NoError(t, err)

	assert.Equal(t, "_gen", f.Generation.OutputSuffix)
	assert.Equal(t, 2, f.Generation.Workers)
	assert.Equal(t, naming.KebabCase, f.Generation.DefaultNaming)
	assert.True(t, f.Generation.DenyUnknown)

	require.Len(t, f.Types, 1)
	tc := f.Types[0]
	require.NotNil(t, tc.Naming)
	assert.Equal(t, naming.Identity, *tc.Naming)
	require.NotNil(t, tc.DenyUnknown)
	assert.False(t, *tc.DenyUnknown)

	note := tc.Member("Note")
	require.NotNil(t, note)
	assert.Equal(t, "memo", note.Options().Rename)
	assert.True(t, note.Options().Optional)
	assert.True(t, tc.Member("Secret").Options().Skip)
	assert.Nil(t, tc.Member("Missing"))
}

func TestParse_BadNaming(t *testing.T) {
	_, err := Parse([]byte("generation:\n  default_naming: shouting\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown naming policy")
}

func TestWriteFile_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)

	require.NoError(t, WriteFile(Default(), path))

	f, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, Default(), f)
}

func TestLoadOptional(t *testing.T) {
	dir := t.TempDir()

	f, err := LoadOptional(filepath.Join(dir, FileName))
	require.NoError(t, err)
	assert.Equal(t, Default(), f)

	path := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("generation:\n  workers: 9\n"), 0o600))

	f, err = LoadOptional(path)
	require.NoError(t, err)
	assert.Equal(t, 9, f.Generation.Workers)
}
