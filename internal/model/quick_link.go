package model

import "time"

// QuickLink 快捷链接表 — 对应 quick_links
// 原客户端存放于 localStorage，服务端化后随账号同步
type QuickLink struct {
	LinkID    string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"link_id"`
	UserID    string    `gorm:"type:uuid;not null;index" json:"-"`
	Label     string    `gorm:"type:varchar(100);not null" json:"label"`
	URL       string    `gorm:"type:varchar(500);not null" json:"url"`
	Position  int       `gorm:"type:smallint;not null;default:0" json:"position"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TableName 指定表名
func (QuickLink) TableName() string { return "quick_links" }
