package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	apperrors "creator-station/pkg/errors"
	"creator-station/pkg/ffmpegexec"
	"creator-station/log"

	"go.uber.org/zap"
)

// buildConcatList renders the concat demuxer list file content. Single
// quotes inside paths are escaped ('\'' idiom) so they cannot break the
// list-file syntax.
func buildConcatList(segmentPaths []string) string {
	var b strings.Builder
	for _, p := range segmentPaths {
		escaped := strings.ReplaceAll(p, "'", `'\''`)
		fmt.Fprintf(&b, "file '%s'\n", escaped)
	}
	return b.String()
}

// concatSegments losslessly joins the ordered segments into outputPath
// using stream copy. All segments share identical codec parameters because
// encodeSegment always uses the same fixed settings.
func (s *Service) concatSegments(ctx context.Context, listPath string, segmentPaths []string, outputPath string) error {
	if err := os.WriteFile(listPath, []byte(buildConcatList(segmentPaths)), 0o644); err != nil {
		return apperrors.Wrap(apperrors.CodeResource, "cannot write concat list", err)
	}

	result, err := s.Runner.RunFfmpeg(ctx,
		"-y",
		"-f", "concat",
		"-safe", "0",
		"-i", listPath,
		"-c", "copy",
		outputPath,
	)
	if err == nil {
		return nil
	}

	if result != nil && len(result.Stderr) > 0 {
		log.GetLogger().Error("segment concat failed", zap.ByteString("stderr", result.Stderr))
	}

	var cmdErr *ffmpegexec.CommandError
	if errors.As(err, &cmdErr) {
		if cmdErr.TimedOut {
			return apperrors.Wrap(apperrors.CodeTimeout, "encoder invocation timed out", err)
		}
		return apperrors.WrapWithDetail(apperrors.CodeConcat,
			"segment concatenation failed",
			fmt.Sprintf("exit code %d: %s", cmdErr.ExitCode, cmdErr.StderrExcerpt), err)
	}
	return apperrors.Wrap(apperrors.CodeConcat, "segment concatenation failed", err)
}
