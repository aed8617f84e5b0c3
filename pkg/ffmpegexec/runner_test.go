package ffmpegexec

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeBinary writes an executable shell script standing in for ffmpeg.
func fakeBinary(t *testing.T, script string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fake_ffmpeg")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+script), 0o755))
	return path
}

func TestRunFfmpeg_Success(t *testing.T) {
	bin := fakeBinary(t, `echo "frame=1"; exit 0`)
	r := NewRunner(bin, "", time.Second)

	result, err := r.RunFfmpeg(context.Background(), "-version")
	require.NoError(t, err)
	assert.Contains(t, string(result.Stdout), "frame=1")
}

func TestRunFfmpeg_NonZeroExit(t *testing.T) {
	bin := fakeBinary(t, `echo "conversion failed" 1>&2; exit 3`)
	r := NewRunner(bin, "", time.Second)

	result, err := r.RunFfmpeg(context.Background())
	require.Error(t, err)

	var cmdErr *CommandError
	require.ErrorAs(t, err, &cmdErr)
	assert.Equal(t, 3, cmdErr.ExitCode)
	assert.False(t, cmdErr.TimedOut)
	assert.Equal(t, "conversion failed", cmdErr.StderrExcerpt)
	assert.Contains(t, string(result.Stderr), "conversion failed")
}

func TestRunFfmpeg_Timeout(t *testing.T) {
	bin := fakeBinary(t, `sleep 5`)
	r := NewRunner(bin, "", 100*time.Millisecond)

	start := time.Now()
	_, err := r.RunFfmpeg(context.Background())
	require.Error(t, err)
	assert.Less(t, time.Since(start), 2*time.Second, "timeout must cut the wait short")

	var cmdErr *CommandError
	require.ErrorAs(t, err, &cmdErr)
	assert.True(t, cmdErr.TimedOut)
	assert.Contains(t, cmdErr.Error(), "timed out")
}

func TestRunFfmpeg_ParentCancelIsNotTimeout(t *testing.T) {
	bin := fakeBinary(t, `sleep 5`)
	r := NewRunner(bin, "", time.Minute)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()

	_, err := r.RunFfmpeg(ctx)
	require.Error(t, err)

	var cmdErr *CommandError
	assert.False(t, errors.As(err, &cmdErr), "caller cancellation should not be reported as an encoder timeout")
}

func TestRunFfmpeg_MissingBinary(t *testing.T) {
	r := NewRunner("/nonexistent/ffmpeg", "", time.Second)

	_, err := r.RunFfmpeg(context.Background())
	require.Error(t, err)

	var cmdErr *CommandError
	assert.False(t, errors.As(err, &cmdErr))
	assert.Contains(t, err.Error(), "start /nonexistent/ffmpeg")
}

func TestRunFfmpeg_NoTimeoutConfigured(t *testing.T) {
	bin := fakeBinary(t, `exit 0`)
	r := NewRunner(bin, "", 0)

	_, err := r.RunFfmpeg(context.Background())
	assert.NoError(t, err)
}

func TestNewRunner_Defaults(t *testing.T) {
	r := NewRunner("", "", 0)
	assert.Equal(t, "ffmpeg", r.FfmpegPath)
	assert.Equal(t, "ffprobe", r.FfprobePath)
}

func TestMediaDuration(t *testing.T) {
	bin := fakeBinary(t, `echo "12.480000"`)
	r := NewRunner("", bin, time.Second)

	duration, err := r.MediaDuration(context.Background(), "clip.mp4")
	require.NoError(t, err)
	assert.InDelta(t, 12.48, duration, 0.001)
}

func TestMediaDuration_UnparsableOutput(t *testing.T) {
	bin := fakeBinary(t, `echo "N/A"`)
	r := NewRunner("", bin, time.Second)

	_, err := r.MediaDuration(context.Background(), "clip.mp4")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected ffprobe output")
}

func TestExcerptStderr(t *testing.T) {
	short := "  short message \n"
	assert.Equal(t, "short message", ExcerptStderr([]byte(short)))

	long := strings.Repeat("x", StderrExcerptLimit) + "TAIL"
	got := ExcerptStderr([]byte(long))
	assert.True(t, strings.HasPrefix(got, "..."))
	assert.True(t, strings.HasSuffix(got, "TAIL"))
	assert.LessOrEqual(t, len(got), StderrExcerptLimit+3)
}
