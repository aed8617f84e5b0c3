package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"creator-station/internal/dto"
	"creator-station/internal/types"
	apperrors "creator-station/pkg/errors"
	"creator-station/pkg/util"
	"creator-station/log"

	"github.com/samber/lo"
	"go.uber.org/zap"
)

const scriptSplitSystemPrompt = `You are a video storyboard editor. You split a narration script into scenes for a slideshow-style video where each scene is one still illustration with narration.

Rules:
1. Each scene covers one coherent beat of the script; never cut mid-sentence.
2. Scene duration is the narration's natural reading time, between %d and %d seconds.
3. image_prompt describes a single still illustration for the scene, in English, concrete and visual%s.
4. on_screen_text is a short caption (at most 8 words), may be empty.
5. keywords are 2-5 search terms for the scene.
6. Reply with strict JSON only, no commentary.

JSON shape:
{
  "title": "...",
  "summary": "...",
  "scenes": [
    {"scene_id": 1, "duration_sec": 8, "narration": "...", "on_screen_text": "...", "image_prompt": "...", "keywords": ["..."]}
  ]
}`

// SplitScript asks the LLM to break a pasted script into per-scene timing,
// narration, and image prompts.
func (s *Service) SplitScript(ctx context.Context, req dto.SplitScriptReq) (*dto.SplitScriptResData, error) {
	minDuration := int(types.MinSceneDurationSec)
	if req.TimingRuleSeconds > 0 {
		minDuration = 4
	}
	maxDuration := req.TimingRuleSeconds

	styleClause := ""
	if req.StyleName != "" {
		styleClause = fmt.Sprintf(", rendered in the style of %q", req.StyleName)
	}
	systemPrompt := fmt.Sprintf(scriptSplitSystemPrompt, minDuration, maxDuration, styleClause)

	reply, err := s.ChatCompleter.ChatCompletion(ctx, systemPrompt, req.Script)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeScriptSplit, "script analysis failed", err)
	}

	result, err := parseSplitScriptReply(reply, float64(maxDuration))
	if err != nil {
		log.GetLogger().Error("script split reply unparsable",
			zap.String("reply", reply),
			zap.Error(err))
		return nil, err
	}

	if req.VisualPromptSuffix != "" {
		result.Scenes = lo.Map(result.Scenes, func(scene types.ScriptScene, _ int) types.ScriptScene {
			scene.ImagePrompt = strings.TrimSpace(scene.ImagePrompt) + ", " + req.VisualPromptSuffix
			return scene
		})
	}

	return &dto.SplitScriptResData{
		Title:   result.Title,
		Summary: result.Summary,
		Scenes:  result.Scenes,
	}, nil
}

// parseSplitScriptReply extracts and sanity-checks the LLM's JSON. Durations
// are clamped into the renderable range since models drift on arithmetic.
func parseSplitScriptReply(reply string, maxDuration float64) (*types.SplitScript, error) {
	jsonStr := util.ExtractJsonFromText(reply)

	var result types.SplitScript
	if err := json.Unmarshal([]byte(jsonStr), &result); err != nil {
		return nil, apperrors.Wrap(apperrors.CodeScriptSplit, "script analysis returned malformed JSON", err)
	}
	if len(result.Scenes) == 0 {
		return nil, apperrors.New(apperrors.CodeScriptSplit, "script analysis returned no scenes")
	}

	if maxDuration < types.MinSceneDurationSec || maxDuration > types.MaxSceneDurationSec {
		maxDuration = types.MaxSceneDurationSec
	}
	for i := range result.Scenes {
		scene := &result.Scenes[i]
		scene.SceneId = i + 1
		if scene.DurationSec < types.MinSceneDurationSec {
			scene.DurationSec = types.MinSceneDurationSec
		}
		if scene.DurationSec > maxDuration {
			scene.DurationSec = maxDuration
		}
		if strings.TrimSpace(scene.Narration) == "" {
			return nil, apperrors.WrapWithDetail(apperrors.CodeScriptSplit,
				"script analysis failed",
				fmt.Sprintf("scenes[%d].narration: empty", i), nil)
		}
	}
	return &result, nil
}
