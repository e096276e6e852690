package model

import (
	"spmtutor/internal/content"
	"spmtutor/internal/drill"

	"gorm.io/datatypes"
)

// Generation origin of a stored step response.
const (
	OriginGenerated = "generated"
	OriginRepaired  = "repaired"
	OriginFallback  = "fallback"
)

// DrillSession 每个用户每天每种练习一条
type DrillSession struct {
	UUIDBase
	UserID      uint                                 `gorm:"not null;uniqueIndex:idx_drill_user_kind_date" json:"user_id"`
	Kind        drill.Kind                           `gorm:"size:16;not null;uniqueIndex:idx_drill_user_kind_date" json:"kind"`
	Date        string                               `gorm:"size:10;not null;uniqueIndex:idx_drill_user_kind_date" json:"date"`
	CurrentStep drill.Step                           `gorm:"size:32;not null" json:"current_step"`
	TodayFocus  datatypes.JSONType[content.Focus]    `json:"today_focus"`
	TaskContent datatypes.JSONType[content.Material] `json:"task_content"`
	CoreAnswer  *string                              `gorm:"type:text" json:"core_answer,omitempty"`
}

func (DrillSession) TableName() string {
	return "drill_sessions"
}

func (s *DrillSession) Done() bool {
	return s.CurrentStep == drill.StepDone
}

// StepResponse 每一步生成的内容，只追加，每步一条；StudentAnswer 为 NULL 表示待作答
type StepResponse struct {
	UUIDBase
	SessionID     string                                  `gorm:"type:varchar(36);not null;uniqueIndex:idx_response_session_step" json:"session_id"`
	Step          drill.Step                              `gorm:"size:32;not null;uniqueIndex:idx_response_session_step" json:"step"`
	PromptContext datatypes.JSONType[content.Context]     `json:"prompt_context"`
	Content       datatypes.JSONType[content.TaskContent] `json:"content"`
	Origin        string                                  `gorm:"size:16" json:"origin"`
	StudentAnswer *string                                 `gorm:"type:text" json:"student_answer,omitempty"`
}

func (StepResponse) TableName() string {
	return "step_responses"
}
