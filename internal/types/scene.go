package types

import "context"

// ScriptScene is one scene produced by the LLM script splitter.
type ScriptScene struct {
	SceneId      int      `json:"scene_id"`
	DurationSec  float64  `json:"duration_sec"`
	Narration    string   `json:"narration"`
	OnScreenText string   `json:"on_screen_text"`
	ImagePrompt  string   `json:"image_prompt"`
	Keywords     []string `json:"keywords"`
}

// SplitScript is the structured result of script analysis.
type SplitScript struct {
	Title   string        `json:"title"`
	Summary string        `json:"summary"`
	Scenes  []ScriptScene `json:"scenes"`
}

// ChatCompleter abstracts the LLM used for script analysis.
type ChatCompleter interface {
	ChatCompletion(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// ImageGenerator abstracts the illustration service.
type ImageGenerator interface {
	GenerateImage(ctx context.Context, prompt, aspect string) ([]byte, error)
}

// SpeechSynthesizer abstracts the text-to-speech service.
type SpeechSynthesizer interface {
	Synthesize(ctx context.Context, text, voice string, speakingRate float64) (audio []byte, mime string, err error)
}
