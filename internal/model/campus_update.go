package model

import "time"

// CampusUpdate 校园动态表 — 对应 campus_updates
// 由定时抓取服务写入；(title, date) 作为去重键，已存在则跳过
type CampusUpdate struct {
	UpdateID  string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"update_id"`
	Title     string    `gorm:"type:varchar(300);not null"            json:"title"`
	Date      string    `gorm:"type:varchar(20);not null;default:''"  json:"date"` // AI 返回的日期文本
	Summary   string    `gorm:"type:text;not null;default:''"         json:"summary"`
	Link      string    `gorm:"type:varchar(500);not null;default:''" json:"link"`
	Category  string    `gorm:"type:varchar(50);not null;default:'general'" json:"category"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"    json:"created_at"`
}

// TableName 指定表名
func (CampusUpdate) TableName() string { return "campus_updates" }
