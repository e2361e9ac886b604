package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestIsFileExists tests presence detection for present and absent paths.
func TestIsFileExists(t *testing.T) {
	dir := t.TempDir()
	present := filepath.Join(dir, "present.yaml")
	require.NoError(t, os.WriteFile(present, []byte("a: 1\n"), 0600))

	fs := NewFileService()

	ok, err := fs.IsFileExists(present)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = fs.IsFileExists(filepath.Join(dir, "absent.yaml"))
	require.NoError(t, err)
	assert.False(t, ok)
}

// TestReadYamlFile tests decoding into a typed struct and the error on
// malformed content.
func TestReadYamlFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data.yaml")
	require.NoError(t, os.WriteFile(path, []byte("name: depot\ncount: 3\n"), 0600))

	var out struct {
		Name  string `yaml:"name"`
		Count int    `yaml:"count"`
	}

	fs := NewFileService()
	require.NoError(t, fs.ReadYamlFile(path, &out))
	assert.Equal(t, "depot", out.Name)
	assert.Equal(t, 3, out.Count)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("{\n"), 0600))
	assert.Error(t, fs.ReadYamlFile(bad, &out))
}
