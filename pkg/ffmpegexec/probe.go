package ffmpegexec

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

// MediaDuration reports the container duration of a media file in seconds.
func (r *Runner) MediaDuration(ctx context.Context, path string) (float64, error) {
	result, err := r.RunFfprobe(ctx,
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		path,
	)
	if err != nil {
		return 0, fmt.Errorf("probe %s: %w", path, err)
	}

	raw := strings.TrimSpace(string(result.Stdout))
	duration, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("probe %s: unexpected ffprobe output %q", path, raw)
	}
	return duration, nil
}
