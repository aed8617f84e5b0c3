package types

// Output canvas and frame-rate are fixed: every segment is encoded with the
// same parameters so the concat step can stream-copy.
const (
	CanvasWidth  = 1280
	CanvasHeight = 720
	FrameRate    = 30

	MinSceneDurationSec = 1.0
	MaxSceneDurationSec = 60.0

	OutputFileName = "creator-station.mp4"
)

// SceneManifestEntry is one scene's timing contract. Immutable once parsed.
type SceneManifestEntry struct {
	DurationSec float64 `json:"duration_sec"`
	HasAudio    bool    `json:"hasAudio"`
}

// Manifest is the ordered scene list. The index position is the scene
// identity; ordering carries meaning end-to-end.
type Manifest struct {
	Scenes []SceneManifestEntry `json:"scenes"`
}

// AssetRole partitions staged uploads.
type AssetRole string

const (
	AssetRoleImage AssetRole = "image"
	AssetRoleAudio AssetRole = "audio"
)

// StagedAsset is a file staged into a workspace together with the
// lexicographic sort key derived from its original upload name.
type StagedAsset struct {
	Path    string
	SortKey string
	Role    AssetRole
}
