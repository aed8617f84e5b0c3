package dto

import "creator-station/internal/types"

// SplitScriptReq asks the LLM to break a pasted script into scenes.
type SplitScriptReq struct {
	Script             string `json:"script" binding:"required"`
	StyleName          string `json:"styleName"`
	TimingRuleSeconds  int    `json:"timingRuleSeconds" binding:"required,gte=4,lte=30"`
	VisualPromptSuffix string `json:"visualPromptSuffix"`
}

type SplitScriptResData struct {
	Title   string              `json:"title"`
	Summary string              `json:"summary"`
	Scenes  []types.ScriptScene `json:"scenes"`
}

// GenerateImageReq requests one illustration.
type GenerateImageReq struct {
	Prompt string `json:"prompt" binding:"required"`
	Suffix string `json:"suffix"`
	Aspect string `json:"aspect" binding:"required,oneof=16:9 1:1 9:16"`
}

type GenerateImageResData struct {
	ImageBase64 string `json:"imageBase64"`
}

// SynthesizeSpeechReq requests narration audio for one scene.
type SynthesizeSpeechReq struct {
	Text         string  `json:"text" binding:"required"`
	Voice        string  `json:"voice" binding:"required"`
	SpeakingRate float64 `json:"speakingRate" binding:"required,gte=0.7,lte=1.3"`
}

type SynthesizeSpeechResData struct {
	AudioBase64 string `json:"audioBase64"`
	Mime        string `json:"mime"`
}
