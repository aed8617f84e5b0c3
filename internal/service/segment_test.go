package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildSegmentArgs_SilentScene(t *testing.T) {
	args := buildSegmentArgs("/ws/images/0000_a.png", "", 7.5, "/ws/segment_0000.mp4")
	joined := strings.Join(args, " ")

	assert.Contains(t, joined, "-loop 1 -i /ws/images/0000_a.png")
	assert.Contains(t, joined, "-t 7.500")
	assert.Contains(t, joined, "-r 30")
	assert.Contains(t, joined, "-c:v libx264")
	assert.Contains(t, joined, "-pix_fmt yuv420p")
	assert.Contains(t, joined, "scale=1280:720")
	assert.Contains(t, joined, "pad=1280:720")

	assert.Contains(t, args, "-an")
	assert.NotContains(t, args, "-shortest")
	assert.NotContains(t, args, "-c:a")
	assert.Equal(t, "/ws/segment_0000.mp4", args[len(args)-1])
}

func TestBuildSegmentArgs_VoicedScene(t *testing.T) {
	args := buildSegmentArgs("/ws/images/0000_a.png", "/ws/audios/0000_a.mp3", 10, "/ws/segment_0000.mp4")
	joined := strings.Join(args, " ")

	assert.Contains(t, joined, "-i /ws/images/0000_a.png")
	assert.Contains(t, joined, "-i /ws/audios/0000_a.mp3")
	assert.Contains(t, joined, "-t 10.000")
	assert.Contains(t, joined, "-c:a aac")
	assert.Contains(t, joined, "-b:a 192k")
	assert.Contains(t, joined, "-ar 44100")

	// -t plus -shortest together implement the shorter-wins duration rule.
	assert.Contains(t, args, "-shortest")
	assert.NotContains(t, args, "-an")
}

func TestBuildSegmentArgs_OverwritesOutput(t *testing.T) {
	args := buildSegmentArgs("img.png", "", 5, "out.mp4")
	require.NotEmpty(t, args)
	assert.Equal(t, "-y", args[0])
}
