package model

import (
	"time"

	"gorm.io/datatypes"
)

type UserRole string

const (
	Student UserRole = "student"
	Teacher UserRole = "teacher"
	Admin   UserRole = "admin"
)

// User 学生/教师档案。账号由外部系统创建，本服务只读（last_seen 除外）
// swagger:model User
type User struct {
	BaseModel
	Name          string                      `gorm:"size:100;not null" json:"name"`
	Email         string                      `gorm:"size:100;uniqueIndex;not null" json:"email"`
	Role          UserRole                    `gorm:"size:20;default:'student'" json:"role"`
	Form          int                         `gorm:"default:4" json:"form"`
	EstimatedBand float64                     `gorm:"default:4" json:"estimated_band"`
	Weaknesses    datatypes.JSONSlice[string] `json:"weaknesses"`
	Strengths     datatypes.JSONSlice[string] `json:"strengths"`
	ClassName     string                      `gorm:"size:50" json:"class_name"`
	TeacherID     *uint                       `gorm:"index" json:"teacher_id,omitempty"`
	LastSeen      *time.Time                  `json:"last_seen,omitempty"`
}

func (User) TableName() string {
	return "users"
}
