package model

import (
	"spmtutor/internal/content"
	"spmtutor/internal/drill"

	"gorm.io/datatypes"
)

// WeeklyCheckpoint 长篇写作检查点；Feedback 在提交后写入
type WeeklyCheckpoint struct {
	UUIDBase
	UserID        uint                                     `gorm:"not null;uniqueIndex:idx_weekly_user_date" json:"user_id"`
	Date          string                                   `gorm:"size:10;not null;uniqueIndex:idx_weekly_user_date" json:"date"`
	Step          drill.Step                               `gorm:"size:32;not null" json:"step"`
	PromptContext datatypes.JSONType[content.Context]      `json:"prompt_context"`
	Question      datatypes.JSONType[content.TaskContent]  `json:"question"`
	Origin        string                                   `gorm:"size:16" json:"origin"`
	StudentAnswer *string                                  `gorm:"type:text" json:"student_answer,omitempty"`
	Feedback      datatypes.JSONType[*content.TaskContent] `json:"feedback"`
}

func (WeeklyCheckpoint) TableName() string {
	return "weekly_checkpoints"
}

func (w *WeeklyCheckpoint) Submitted() bool {
	return w.Step == drill.StepDone
}
