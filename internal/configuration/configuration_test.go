package configuration

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseInitializesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nexus", "config.json")

	config, err := Parse(path)
	require.NoError(t, err)
	assert.Equal(t, defaultConfig.APIHost, config.APIHost)
	assert.Equal(t, defaultConfig.RequestTimeout, config.RequestTimeout)

	// The file exists now and parses again to the same values.
	_, err = os.Stat(path)
	require.NoError(t, err)
	again, err := Parse(path)
	require.NoError(t, err)
	assert.Equal(t, config.APIHost, again.APIHost)
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	expanded, err := ExpandPath("~/foo/bar.db")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "foo/bar.db"), expanded)

	untouched, err := ExpandPath("/absolute/path.db")
	require.NoError(t, err)
	assert.Equal(t, "/absolute/path.db", untouched)
}
