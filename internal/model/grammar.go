package model

import (
	"spmtutor/internal/grammar"

	"gorm.io/datatypes"
)

// GrammarSession 语法填空练习，每用户每天一条；Version 用于乐观锁
type GrammarSession struct {
	UUIDBase
	UserID  uint                              `gorm:"not null;uniqueIndex:idx_grammar_user_date" json:"user_id"`
	Date    string                            `gorm:"size:10;not null;uniqueIndex:idx_grammar_user_date" json:"date"`
	Phase   grammar.Phase                     `gorm:"size:20;not null" json:"phase"`
	State   datatypes.JSONType[grammar.State] `json:"state"`
	Version int                               `gorm:"not null;default:1" json:"version"`
}

func (GrammarSession) TableName() string {
	return "grammar_sessions"
}

// GrammarResponse 每次操作的审计记录
type GrammarResponse struct {
	UUIDBase
	SessionID     string         `gorm:"type:varchar(36);not null;index" json:"session_id"`
	Step          string         `gorm:"size:32;not null" json:"step"`
	Request       datatypes.JSON `json:"request"`
	Payload       datatypes.JSON `json:"payload"`
	StudentAnswer string         `gorm:"type:text" json:"student_answer"`
}

func (GrammarResponse) TableName() string {
	return "grammar_responses"
}
