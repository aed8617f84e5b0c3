package appdirs

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve_DefaultRelativePaths(t *testing.T) {
	paths, err := resolve(resolveDeps{
		goos:   "linux",
		getenv: func(string) string { return "" },
	})
	require.NoError(t, err)

	assert.False(t, paths.Portable)
	assert.Equal(t, "config", paths.ConfigDir)
	assert.Equal(t, filepath.Join("config", "config.toml"), paths.ConfigFile)
	assert.Equal(t, "logs", paths.LogDir)
	assert.Equal(t, "tasks", paths.OutputDir)
	assert.Equal(t, filepath.Join("data", "work"), paths.WorkDir)
}

func TestResolve_PortableUsesExecutableDir(t *testing.T) {
	paths, err := resolve(resolveDeps{
		goos: "linux",
		getenv: func(key string) string {
			if key == PortableEnv {
				return "1"
			}
			return ""
		},
		executable: func() (string, error) { return "/opt/creator-station/bin/server", nil },
	})
	require.NoError(t, err)

	assert.True(t, paths.Portable)
	assert.Equal(t, "/opt/creator-station/bin/config", paths.ConfigDir)
	assert.Equal(t, "/opt/creator-station/bin/logs", paths.LogDir)
	assert.Equal(t, "/opt/creator-station/bin/data/work", paths.WorkDir)
}

func TestResolve_WindowsUsesUserDirs(t *testing.T) {
	paths, err := resolve(resolveDeps{
		goos:          "windows",
		getenv:        func(string) string { return "" },
		userConfigDir: func() (string, error) { return "/home/u/.config", nil },
		userCacheDir:  func() (string, error) { return "/home/u/.cache", nil },
	})
	require.NoError(t, err)

	assert.Equal(t, filepath.Join("/home/u/.config", "CreatorStation"), paths.ConfigDir)
	assert.Equal(t, filepath.Join("/home/u/.cache", "CreatorStation", "logs"), paths.LogDir)
}

func TestIsPortableEnabled(t *testing.T) {
	for _, v := range []string{"1", "true", "TRUE", " yes ", "on"} {
		assert.True(t, isPortableEnabled(v), v)
	}
	for _, v := range []string{"", "0", "false", "off", "maybe"} {
		assert.False(t, isPortableEnabled(v), v)
	}
}

func TestDBPathFor(t *testing.T) {
	paths := Paths{CacheDir: "data"}
	assert.Equal(t, filepath.Join("data", "creator-station.db"), DBPathFor(paths))
}
