package model

import "time"

// Reminder 提醒事项表 — 对应 reminders
type Reminder struct {
	ReminderID string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"reminder_id"`
	UserID     string     `gorm:"type:uuid;not null;index" json:"-"`
	Text       string     `gorm:"type:varchar(500);not null" json:"text"`
	DueAt      *time.Time `json:"due_at,omitempty"`
	Done       bool       `gorm:"not null;default:false" json:"done"`
	BaseModel
}

// TableName 指定表名
func (Reminder) TableName() string { return "reminders" }
