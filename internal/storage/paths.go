package storage

import (
	"path/filepath"
)

// Resolved encoder binary locations. deps.CheckDependency fills these in at
// startup; the defaults rely on PATH lookup.
var (
	FfmpegPath  = "ffmpeg"
	FfprobePath = "ffprobe"
)

// TaskBasePath returns the artifact directory of one pipeline task.
func TaskBasePath(taskId string) (string, error) {
	dirs, err := appDirsResolver()
	if err != nil {
		return "", err
	}
	return filepath.Join(dirs.OutputDir, taskId), nil
}
