package model

// ChatMessage AI 导师问答记录
type ChatMessage struct {
	UUIDBase
	UserID          uint   `gorm:"not null;index" json:"user_id"`
	Question        string `gorm:"type:text;not null" json:"question"`
	Answer          string `gorm:"type:text" json:"answer"`
	EnglishQuestion string `gorm:"type:text" json:"english_question"`
	QuickTip        string `gorm:"type:text" json:"quick_tip"`
	Origin          string `gorm:"size:16" json:"origin"`
}

func (ChatMessage) TableName() string {
	return "chat_messages"
}
