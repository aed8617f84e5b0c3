package service

import (
	"encoding/json"
	"fmt"

	"creator-station/internal/types"
	apperrors "creator-station/pkg/errors"
)

// rawManifest mirrors the wire shape with pointers so missing fields are
// distinguishable from zero values.
type rawManifest struct {
	Scenes []rawSceneEntry `json:"scenes"`
}

type rawSceneEntry struct {
	DurationSec *float64 `json:"duration_sec"`
	HasAudio    *bool    `json:"hasAudio"`
}

// ParseManifest parses and validates the caller-supplied scene manifest.
// Pure: no side effects, nothing touches the filesystem.
func ParseManifest(raw []byte) (*types.Manifest, error) {
	var parsed rawManifest
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, apperrors.Wrap(apperrors.CodeValidation, "manifest is not valid JSON", err)
	}

	if len(parsed.Scenes) == 0 {
		return nil, apperrors.WrapWithDetail(apperrors.CodeValidation,
			"manifest validation failed", "scenes: must contain at least one entry", nil)
	}

	manifest := &types.Manifest{Scenes: make([]types.SceneManifestEntry, 0, len(parsed.Scenes))}
	for i, entry := range parsed.Scenes {
		if entry.DurationSec == nil {
			return nil, apperrors.WrapWithDetail(apperrors.CodeValidation,
				"manifest validation failed",
				fmt.Sprintf("scenes[%d].duration_sec: required", i), nil)
		}
		duration := *entry.DurationSec
		if duration < types.MinSceneDurationSec || duration > types.MaxSceneDurationSec {
			return nil, apperrors.WrapWithDetail(apperrors.CodeValidation,
				"manifest validation failed",
				fmt.Sprintf("scenes[%d].duration_sec: %.3f outside [%.0f, %.0f]",
					i, duration, types.MinSceneDurationSec, types.MaxSceneDurationSec), nil)
		}

		scene := types.SceneManifestEntry{DurationSec: duration}
		if entry.HasAudio != nil {
			scene.HasAudio = *entry.HasAudio
		}
		manifest.Scenes = append(manifest.Scenes, scene)
	}

	return manifest, nil
}

// CheckAssetCounts enforces the image/manifest cardinality contract before
// any subprocess is spawned. Fewer audio files than scenes is tolerated
// (trailing scenes stay silent); more is a caller mistake.
func CheckAssetCounts(manifest *types.Manifest, imageCount, audioCount int) error {
	sceneCount := len(manifest.Scenes)
	if imageCount != sceneCount {
		return apperrors.WrapWithDetail(apperrors.CodeValidation,
			"manifest validation failed",
			fmt.Sprintf("images: got %d, manifest declares %d scenes", imageCount, sceneCount), nil)
	}
	if audioCount > sceneCount {
		return apperrors.WrapWithDetail(apperrors.CodeValidation,
			"manifest validation failed",
			fmt.Sprintf("audios: got %d, manifest declares only %d scenes", audioCount, sceneCount), nil)
	}
	return nil
}
