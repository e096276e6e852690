package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// swagger:model
type BaseModel struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// UUIDBase 练习数据不做软删除，教师重置时物理删除，避免与唯一索引冲突
type UUIDBase struct {
	ID        string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (b *UUIDBase) BeforeCreate(tx *gorm.DB) (err error) {
	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	return
}

func GenerateUUID() string {
	return uuid.New().String()
}

// AllModels 参与 AutoMigrate 的全部模型
func AllModels() []interface{} {
	return []interface{}{
		&User{},
		&DrillSession{},
		&StepResponse{},
		&GrammarSession{},
		&GrammarResponse{},
		&WeeklyCheckpoint{},
		&ChatMessage{},
	}
}
