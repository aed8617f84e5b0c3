package dto

// StartPipelineReq kicks off a full script-to-video run in the background.
type StartPipelineReq struct {
	Script             string  `json:"script" binding:"required"`
	StyleName          string  `json:"styleName"`
	TimingRuleSeconds  int     `json:"timingRuleSeconds" binding:"required,gte=4,lte=30"`
	VisualPromptSuffix string  `json:"visualPromptSuffix"`
	Aspect             string  `json:"aspect" binding:"omitempty,oneof=16:9 1:1 9:16"`
	Voice              string  `json:"voice"`
	SpeakingRate       float64 `json:"speakingRate" binding:"omitempty,gte=0.7,lte=1.3"`
	DisableTts         bool    `json:"disableTts"`
}

type StartPipelineResData struct {
	TaskId string `json:"task_id"`
}

type GetPipelineReq struct {
	TaskId string `form:"taskId" binding:"required"`
}

// PipelineProgressMsg is pushed over the progress websocket.
type PipelineProgressMsg struct {
	TaskId     string `json:"task_id"`
	Status     int8   `json:"status"`
	StatusMsg  string `json:"status_msg"`
	ProcessPct uint8  `json:"process_percent"`
	FailReason string `json:"fail_reason,omitempty"`
}
