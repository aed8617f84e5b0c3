package tts

import (
	"strings"

	"github.com/texttheater/golang-levenshtein/levenshtein"
)

// KnownVoices are the voices the default speech endpoint accepts.
var KnownVoices = []string{
	"alloy", "ash", "coral", "echo", "fable", "nova", "onyx", "sage", "shimmer",
}

// IsKnownVoice reports whether the speech endpoint accepts the voice name.
func IsKnownVoice(voice string) bool {
	for _, v := range KnownVoices {
		if v == voice {
			return true
		}
	}
	return false
}

// SuggestVoice returns the known voice closest to the requested one, so the
// error for a typo like "aloy" points the caller at "alloy".
func SuggestVoice(voice string) string {
	requested := strings.ToLower(strings.TrimSpace(voice))
	best := ""
	bestDistance := -1
	for _, candidate := range KnownVoices {
		d := levenshtein.DistanceForStrings([]rune(requested), []rune(candidate), levenshtein.DefaultOptions)
		if bestDistance == -1 || d < bestDistance {
			best = candidate
			bestDistance = d
		}
	}
	return best
}
