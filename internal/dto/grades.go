package dto

// ── 成绩模块 DTO ──

// GradeResponse 单科成绩
type GradeResponse struct {
	SubjectCode string  `json:"subject_code"`
	SubjectName string  `json:"subject_name"`
	Credits     float64 `json:"credits"`
	Letter      string  `json:"letter"`
}

// SemesterResponse 学期成绩
type SemesterResponse struct {
	Number  int             `json:"number"`
	Session string          `json:"session"`
	SGPA    float64         `json:"sgpa"`
	Grades  []GradeResponse `json:"grades"`
}

// GradesSnapshotResponse 成绩快照响应
type GradesSnapshotResponse struct {
	CGPA         float64            `json:"cgpa"`
	TotalCredits float64            `json:"total_credits"`
	Semesters    []SemesterResponse `json:"semesters"`
	UpdatedAt    string             `json:"updated_at"`
}

// GradeDistributionBucket 按等级分布的一个分组
type GradeDistributionBucket struct {
	Letter  string   `json:"letter"`
	Count   int      `json:"count"`
	Courses []string `json:"courses"`
}

// GradeDistributionResponse 成绩等级分布响应
type GradeDistributionResponse struct {
	Buckets []GradeDistributionBucket `json:"buckets"`
}

// CategoryAverageResponse 学科类别（科目代码前两位）平均绩点
type CategoryAverageResponse struct {
	Category      string   `json:"category"`
	AveragePoints float64  `json:"average_points"`
	Courses       []string `json:"courses"`
}
