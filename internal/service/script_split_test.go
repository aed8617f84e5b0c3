package service

import (
	"context"
	"testing"

	"creator-station/internal/dto"
	"creator-station/internal/mocks"
	apperrors "creator-station/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const splitReplyFenced = "Here is your storyboard:\n```json\n" + `{
  "title": "The Honeybee",
  "summary": "A short look at how bees make honey.",
  "scenes": [
    {"scene_id": 7, "duration_sec": 8, "narration": "Bees visit flowers.", "on_screen_text": "Flowers", "image_prompt": "a honeybee on a flower", "keywords": ["bee", "flower"]},
    {"scene_id": 9, "duration_sec": 200, "narration": "They carry nectar home.", "on_screen_text": "", "image_prompt": "a beehive in a meadow", "keywords": ["hive"]}
  ]
}` + "\n```"

func TestSplitScript_ParsesFencedReply(t *testing.T) {
	mockChat := new(mocks.MockChatCompleter)
	mockChat.On("ChatCompletion", mock.Anything, mock.Anything, "Bees are great.").
		Return(splitReplyFenced, nil)

	svc := &Service{ChatCompleter: mockChat}

	res, err := svc.SplitScript(context.Background(), dto.SplitScriptReq{
		Script:            "Bees are great.",
		TimingRuleSeconds: 10,
	})
	require.NoError(t, err)
	require.Len(t, res.Scenes, 2)

	assert.Equal(t, "The Honeybee", res.Title)

	// Scene ids are reassigned sequentially regardless of what the model
	// returned.
	assert.Equal(t, 1, res.Scenes[0].SceneId)
	assert.Equal(t, 2, res.Scenes[1].SceneId)

	// 200s exceeds the 10s timing rule and is clamped down.
	assert.Equal(t, 8.0, res.Scenes[0].DurationSec)
	assert.Equal(t, 10.0, res.Scenes[1].DurationSec)

	mockChat.AssertExpectations(t)
}

func TestSplitScript_AppendsVisualPromptSuffix(t *testing.T) {
	mockChat := new(mocks.MockChatCompleter)
	mockChat.On("ChatCompletion", mock.Anything, mock.Anything, mock.Anything).
		Return(splitReplyFenced, nil)

	svc := &Service{ChatCompleter: mockChat}

	res, err := svc.SplitScript(context.Background(), dto.SplitScriptReq{
		Script:             "Bees are great.",
		TimingRuleSeconds:  10,
		VisualPromptSuffix: "watercolor, soft light",
	})
	require.NoError(t, err)

	assert.Equal(t, "a honeybee on a flower, watercolor, soft light", res.Scenes[0].ImagePrompt)
	assert.Equal(t, "a beehive in a meadow, watercolor, soft light", res.Scenes[1].ImagePrompt)
}

func TestSplitScript_MalformedReply(t *testing.T) {
	mockChat := new(mocks.MockChatCompleter)
	mockChat.On("ChatCompletion", mock.Anything, mock.Anything, mock.Anything).
		Return("Sorry, I cannot do that.", nil)

	svc := &Service{ChatCompleter: mockChat}

	_, err := svc.SplitScript(context.Background(), dto.SplitScriptReq{
		Script:            "Bees are great.",
		TimingRuleSeconds: 10,
	})
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.CodeScriptSplit))
}

func TestParseSplitScriptReply_Validation(t *testing.T) {
	testCases := []struct {
		name  string
		reply string
	}{
		{name: "no scenes", reply: `{"title": "t", "summary": "s", "scenes": []}`},
		{name: "empty narration", reply: `{"scenes": [{"duration_sec": 5, "narration": "  ", "image_prompt": "x"}]}`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := parseSplitScriptReply(tc.reply, 20)
			require.Error(t, err)
			assert.True(t, apperrors.Is(err, apperrors.CodeScriptSplit))
		})
	}
}

func TestParseSplitScriptReply_ClampsLowDuration(t *testing.T) {
	reply := `{"scenes": [{"duration_sec": 0.2, "narration": "hi", "image_prompt": "x"}]}`

	result, err := parseSplitScriptReply(reply, 20)
	require.NoError(t, err)
	assert.Equal(t, 1.0, result.Scenes[0].DurationSec)
}

func TestParseSplitScriptReply_BadTimingRuleFallsBack(t *testing.T) {
	reply := `{"scenes": [{"duration_sec": 45, "narration": "hi", "image_prompt": "x"}]}`

	// A timing rule outside the renderable range falls back to the canvas
	// maximum instead of clamping everything to nonsense.
	result, err := parseSplitScriptReply(reply, 0)
	require.NoError(t, err)
	assert.Equal(t, 45.0, result.Scenes[0].DurationSec)
}
