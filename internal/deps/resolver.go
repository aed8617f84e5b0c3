// Package deps resolves the external binaries the renderer shells out to.
package deps

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"creator-station/config"
	"creator-station/internal/storage"
	"creator-station/log"

	"go.uber.org/zap"
)

type DependencyTier string

const (
	DependencyTierMust   DependencyTier = "must"
	DependencyTierShould DependencyTier = "should"
)

type DependencyStatus string

const (
	DependencyStatusOK      DependencyStatus = "ok"
	DependencyStatusMissing DependencyStatus = "missing"
	DependencyStatusError   DependencyStatus = "error"
)

type DependencySource string

const (
	DependencySourceConfig   DependencySource = "config"
	DependencySourceLookPath DependencySource = "lookpath"
)

type DependencySpec struct {
	ID             string
	Name           string
	Command        string
	Tier           DependencyTier
	ConfiguredPath string
	Hint           string
}

type DependencyState struct {
	DependencySpec
	ResolvedPath string
	Status       DependencyStatus
	Source       DependencySource
	Error        string
}

type PathResolver struct {
	LookPath func(file string) (string, error)
	AbsPath  func(path string) (string, error)
	Stat     func(name string) (os.FileInfo, error)
}

func NewPathResolver() PathResolver {
	return PathResolver{
		LookPath: exec.LookPath,
		AbsPath:  filepath.Abs,
		Stat:     os.Stat,
	}
}

func (r PathResolver) Resolve(spec DependencySpec) DependencyState {
	state := DependencyState{DependencySpec: spec}
	configured := strings.TrimSpace(spec.ConfiguredPath)

	if configured != "" {
		state.Source = DependencySourceConfig
		resolvedPath, err := r.resolveConfiguredPath(configured)
		if err == nil {
			state.Status = DependencyStatusOK
			state.ResolvedPath = resolvedPath
			return state
		}

		if absPath, absErr := r.AbsPath(configured); absErr == nil {
			state.ResolvedPath = absPath
		} else {
			state.ResolvedPath = configured
		}
		state.Error = err.Error()
		if isMissingPathError(err) {
			state.Status = DependencyStatusMissing
		} else {
			state.Status = DependencyStatusError
		}
		return state
	}

	state.Source = DependencySourceLookPath
	resolvedPath, err := r.LookPath(spec.Command)
	if err == nil {
		state.Status = DependencyStatusOK
		state.ResolvedPath = resolvedPath
		return state
	}

	state.Error = err.Error()
	if isMissingPathError(err) {
		state.Status = DependencyStatusMissing
		return state
	}
	state.Status = DependencyStatusError
	return state
}

func (r PathResolver) resolveConfiguredPath(configuredPath string) (string, error) {
	if resolvedPath, err := r.LookPath(configuredPath); err == nil {
		return resolvedPath, nil
	}

	absPath, err := r.AbsPath(configuredPath)
	if err != nil {
		return "", err
	}
	if _, err = r.Stat(absPath); err != nil {
		return "", err
	}
	return absPath, nil
}

func isMissingPathError(err error) bool {
	if errors.Is(err, exec.ErrNotFound) || errors.Is(err, fs.ErrNotExist) {
		return true
	}
	return os.IsNotExist(err)
}

func specs() []DependencySpec {
	return []DependencySpec{
		{
			ID:             "ffmpeg",
			Name:           "FFmpeg",
			Command:        "ffmpeg",
			Tier:           DependencyTierMust,
			ConfiguredPath: config.Conf.App.FfmpegPath,
			Hint:           "install ffmpeg or set app.ffmpeg_path in config.toml",
		},
		{
			ID:             "ffprobe",
			Name:           "FFprobe",
			Command:        "ffprobe",
			Tier:           DependencyTierShould,
			ConfiguredPath: config.Conf.App.FfprobePath,
			Hint:           "install ffprobe or set app.ffprobe_path in config.toml",
		},
	}
}

// CheckDependency resolves the encoder binaries and records their locations
// in storage. A missing must-tier binary is fatal; missing should-tier
// binaries only disable the features that need them.
func CheckDependency() error {
	resolver := NewPathResolver()

	for _, spec := range specs() {
		state := resolver.Resolve(spec)
		if state.Status != DependencyStatusOK {
			if spec.Tier == DependencyTierMust {
				return fmt.Errorf("%s not available (%s): %s", spec.Name, state.Error, spec.Hint)
			}
			log.GetLogger().Warn("optional dependency unavailable",
				zap.String("dependency", spec.Name),
				zap.String("hint", spec.Hint))
			continue
		}

		switch spec.ID {
		case "ffmpeg":
			storage.FfmpegPath = state.ResolvedPath
		case "ffprobe":
			storage.FfprobePath = state.ResolvedPath
		}
		log.GetLogger().Info("dependency resolved",
			zap.String("dependency", spec.Name),
			zap.String("path", state.ResolvedPath),
			zap.String("source", string(state.Source)))
	}
	return nil
}
