package service

import (
	"context"
	"errors"
	"fmt"

	"creator-station/internal/types"
	apperrors "creator-station/pkg/errors"
	"creator-station/pkg/ffmpegexec"
	"creator-station/log"

	"go.uber.org/zap"
)

// canvasFilter letterboxes/pillarboxes any input onto the fixed canvas.
var canvasFilter = fmt.Sprintf(
	"scale=%d:%d:force_original_aspect_ratio=decrease,pad=%d:%d:(ow-iw)/2:(oh-ih)/2,setsar=1",
	types.CanvasWidth, types.CanvasHeight, types.CanvasWidth, types.CanvasHeight,
)

// buildSegmentArgs assembles the ffmpeg argument list for one scene. With
// audio present, -t caps at the requested duration while -shortest caps at
// the audio length, so the segment stops at the shorter of the two.
func buildSegmentArgs(imagePath, audioPath string, durationSec float64, outputPath string) []string {
	args := []string{"-y", "-loop", "1", "-i", imagePath}
	if audioPath != "" {
		args = append(args, "-i", audioPath)
	}
	args = append(args,
		"-t", fmt.Sprintf("%.3f", durationSec),
		"-vf", canvasFilter,
		"-r", fmt.Sprintf("%d", types.FrameRate),
		"-c:v", "libx264",
		"-preset", "fast",
		"-pix_fmt", "yuv420p",
	)
	if audioPath != "" {
		args = append(args, "-c:a", "aac", "-b:a", "192k", "-ar", "44100", "-shortest")
	} else {
		args = append(args, "-an")
	}
	return append(args, outputPath)
}

// encodeSegment produces the video segment of exactly one scene. A non-zero
// encoder exit is fatal for the whole render; encoder failures are
// deterministic given the same inputs, so no retry is attempted.
func (s *Service) encodeSegment(ctx context.Context, sceneIndex int, imagePath, audioPath string, durationSec float64, outputPath string) error {
	args := buildSegmentArgs(imagePath, audioPath, durationSec, outputPath)

	result, err := s.Runner.RunFfmpeg(ctx, args...)
	if err == nil {
		return nil
	}

	if result != nil && len(result.Stderr) > 0 {
		log.GetLogger().Error("segment encode failed",
			zap.Int("scene", sceneIndex),
			zap.ByteString("stderr", result.Stderr))
	}

	var cmdErr *ffmpegexec.CommandError
	if errors.As(err, &cmdErr) {
		if cmdErr.TimedOut {
			return apperrors.WrapWithDetail(apperrors.CodeTimeout,
				"encoder invocation timed out",
				fmt.Sprintf("scene %d", sceneIndex), err)
		}
		return apperrors.WrapWithDetail(apperrors.CodeEncode,
			"segment encoding failed",
			fmt.Sprintf("scene %d: exit code %d: %s", sceneIndex, cmdErr.ExitCode, cmdErr.StderrExcerpt), err)
	}
	return apperrors.WrapWithDetail(apperrors.CodeEncode,
		"segment encoding failed",
		fmt.Sprintf("scene %d", sceneIndex), err)
}
