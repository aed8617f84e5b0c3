package appdirs

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

const (
	PortableEnv = "CREATOR_STATION_PORTABLE"

	appName        = "CreatorStation"
	configFileName = "config.toml"
)

// Paths groups the directories the application reads and writes.
type Paths struct {
	Portable   bool
	ConfigDir  string
	ConfigFile string
	LogDir     string
	OutputDir  string
	CacheDir   string
	WorkDir    string
}

type resolveDeps struct {
	goos          string
	getenv        func(string) string
	executable    func() (string, error)
	userConfigDir func() (string, error)
	userCacheDir  func() (string, error)
}

func Resolve() (Paths, error) {
	return resolve(resolveDeps{
		goos:          runtime.GOOS,
		getenv:        os.Getenv,
		executable:    os.Executable,
		userConfigDir: os.UserConfigDir,
		userCacheDir:  os.UserCacheDir,
	})
}

func resolve(deps resolveDeps) (Paths, error) {
	if deps.goos == "" {
		deps.goos = runtime.GOOS
	}
	if deps.getenv == nil {
		deps.getenv = os.Getenv
	}
	if deps.executable == nil {
		deps.executable = os.Executable
	}
	if deps.userConfigDir == nil {
		deps.userConfigDir = os.UserConfigDir
	}
	if deps.userCacheDir == nil {
		deps.userCacheDir = os.UserCacheDir
	}

	if isPortableEnabled(deps.getenv(PortableEnv)) {
		return resolvePortable(deps)
	}
	if deps.goos == "windows" {
		return resolveWindows(deps)
	}
	return defaultPaths(), nil
}

// defaultPaths keeps everything relative to the working directory, which is
// what server deployments expect.
func defaultPaths() Paths {
	return Paths{
		ConfigDir:  "config",
		ConfigFile: filepath.Join("config", configFileName),
		LogDir:     "logs",
		OutputDir:  "tasks",
		CacheDir:   "data",
		WorkDir:    filepath.Join("data", "work"),
	}
}

func resolvePortable(deps resolveDeps) (Paths, error) {
	executablePath, err := deps.executable()
	if err != nil {
		return Paths{}, err
	}
	base := filepath.Dir(executablePath)
	return Paths{
		Portable:   true,
		ConfigDir:  filepath.Join(base, "config"),
		ConfigFile: filepath.Join(base, "config", configFileName),
		LogDir:     filepath.Join(base, "logs"),
		OutputDir:  filepath.Join(base, "tasks"),
		CacheDir:   filepath.Join(base, "data"),
		WorkDir:    filepath.Join(base, "data", "work"),
	}, nil
}

func resolveWindows(deps resolveDeps) (Paths, error) {
	configRoot, err := deps.userConfigDir()
	if err != nil {
		return Paths{}, err
	}
	cacheRoot, err := deps.userCacheDir()
	if err != nil {
		return Paths{}, err
	}

	configDir := filepath.Join(configRoot, appName)
	cacheDir := filepath.Join(cacheRoot, appName)
	return Paths{
		ConfigDir:  configDir,
		ConfigFile: filepath.Join(configDir, configFileName),
		LogDir:     filepath.Join(cacheDir, "logs"),
		OutputDir:  filepath.Join(cacheDir, "tasks"),
		CacheDir:   cacheDir,
		WorkDir:    filepath.Join(cacheDir, "work"),
	}, nil
}

func isPortableEnabled(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}

// DBPathFor returns the sqlite database location for the resolved paths.
func DBPathFor(paths Paths) string {
	return filepath.Join(paths.CacheDir, "creator-station.db")
}
