package types

// Pipeline task status values
const (
	PipelineTaskStatusQueued  int8 = 0
	PipelineTaskStatusRunning int8 = 1
	PipelineTaskStatusDone    int8 = 2
	PipelineTaskStatusFailed  int8 = 3
)

// PipelineTask is the persisted record of one script-to-video run.
type PipelineTask struct {
	Id          uint    `json:"-" gorm:"primarykey"`
	TaskId      string  `json:"task_id" gorm:"uniqueIndex;size:64"`
	Title       string  `json:"title"`
	Summary     string  `json:"summary"`
	SceneCount  int     `json:"scene_count"`
	Status      int8    `json:"status"`
	DurationSec float64 `json:"duration_sec"`
	StatusMsg   string  `json:"status_msg"`
	ProcessPct  uint8   `json:"process_percent"`
	OutputPath  string  `json:"output_path"`
	ArchiveUrl  string  `json:"archive_url"`
	FailReason  string  `json:"fail_reason"`
	CreateTime  int64   `json:"create_time" gorm:"autoCreateTime"`
	UpdateTime  int64   `json:"update_time" gorm:"autoUpdateTime"`
}
