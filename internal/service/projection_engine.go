package service

import (
	"sort"
	"strings"

	"college-central/backend/internal/model"
)

// ── 成绩推演引擎 ────────────────────────────────────────────
//
// CGPA/SGPA 均为 0-10 刻度的学分加权平均。本文件是纯计算层：
// 输入为成绩快照数据，输出为推演结果，不触达存储与外部服务。
// ─────────────────────────────────────────────────────────────

// gradePoints 等级 → 绩点映射；未知等级按 0 计
var gradePoints = map[string]float64{
	"A+": 10,
	"A":  9,
	"B+": 8,
	"B":  7,
	"C+": 6,
	"C":  5,
	"D":  4,
	"F":  0,
}

// GradePoint 等级绩点；等级不区分大小写，未知等级返回 0
func GradePoint(letter string) float64 {
	return gradePoints[strings.ToUpper(strings.TrimSpace(letter))]
}

// ComputeSemesterGPA 单学期学分加权 SGPA
// 空学期或学分合计为 0 时返回 (0, 0)
func ComputeSemesterGPA(grades []model.Grade) (sgpa, credits float64) {
	var weighted float64
	for _, g := range grades {
		weighted += GradePoint(g.Letter) * g.Credits
		credits += g.Credits
	}
	if credits == 0 {
		return 0, 0
	}
	return weighted / credits, credits
}

// ComputeOverall 全部学期的累计 CGPA 与学分合计
func ComputeOverall(semesters []model.Semester) (cgpa, totalCredits float64) {
	var weighted float64
	for _, sem := range semesters {
		for _, g := range sem.Grades {
			weighted += GradePoint(g.Letter) * g.Credits
			totalCredits += g.Credits
		}
	}
	if totalCredits == 0 {
		return 0, 0
	}
	return weighted / totalCredits, totalCredits
}

// ComputeProjectedCGPA 在既有成绩上叠加一个假设学期后的 CGPA
// 假设学期学分为 0 时维持原 CGPA 不变
func ComputeProjectedCGPA(priorCGPA, priorCredits, semSGPA, semCredits float64) float64 {
	if semCredits == 0 {
		return priorCGPA
	}
	return (priorCGPA*priorCredits + semSGPA*semCredits) / (priorCredits + semCredits)
}

// ComputeRequiredFutureSGPA 达成目标 CGPA 所需的未来平均 SGPA
// 假设剩余每学期学分相同；achievable 表示结果是否落在 0-10 刻度内
// （目标过低时所需 SGPA 可能为负，同样视为不可按常规达成）
func ComputeRequiredFutureSGPA(currentCGPA, currentCredits, targetCGPA float64, semestersRemaining int, avgCreditsPerSemester float64) (required float64, achievable bool, projectedTotalCredits float64) {
	futureCredits := float64(semestersRemaining) * avgCreditsPerSemester
	projectedTotalCredits = currentCredits + futureCredits
	if futureCredits == 0 {
		return 0, false, projectedTotalCredits
	}
	required = (targetCGPA*projectedTotalCredits - currentCGPA*currentCredits) / futureCredits
	achievable = required >= 0 && required <= 10
	return required, achievable, projectedTotalCredits
}

// ── 统计聚合 ──

// GradeBucket 等级分布桶
type GradeBucket struct {
	Letter  string
	Count   int
	Courses []string
}

// gradeOrder 分布展示顺序：绩点从高到低，未知等级排尾部
var gradeOrder = []string{"A+", "A", "B+", "B", "C+", "C", "D", "F"}

// GradeDistribution 全部学期按等级聚合的科目分布
func GradeDistribution(semesters []model.Semester) []GradeBucket {
	byLetter := make(map[string]*GradeBucket)
	var extra []string
	for _, sem := range semesters {
		for _, g := range sem.Grades {
			letter := strings.ToUpper(strings.TrimSpace(g.Letter))
			b, ok := byLetter[letter]
			if !ok {
				b = &GradeBucket{Letter: letter}
				byLetter[letter] = b
				if _, known := gradePoints[letter]; !known {
					extra = append(extra, letter)
				}
			}
			b.Count++
			b.Courses = append(b.Courses, g.SubjectCode)
		}
	}

	sort.Strings(extra)
	var out []GradeBucket
	for _, letter := range append(append([]string{}, gradeOrder...), extra...) {
		if b, ok := byLetter[letter]; ok {
			out = append(out, *b)
		}
	}
	return out
}

// CategoryAverage 学科类别的平均绩点
type CategoryAverage struct {
	Category      string
	AveragePoints float64
	Courses       []string
}

// SubjectCategory 从科目代码推断学科类别（前两位字母，如 CS、MA）
// 代码过短或不以字母开头时归入 "Other"
func SubjectCategory(code string) string {
	code = strings.ToUpper(strings.TrimSpace(code))
	if len(code) < 2 {
		return "Other"
	}
	c0, c1 := code[0], code[1]
	if c0 < 'A' || c0 > 'Z' || c1 < 'A' || c1 > 'Z' {
		return "Other"
	}
	return code[:2]
}

// SubjectCategoryAverages 按学科类别聚合的平均绩点
// 类别内取算术平均（每门课等权，不按学分加权），类别按名称升序稳定输出
func SubjectCategoryAverages(semesters []model.Semester) []CategoryAverage {
	type acc struct {
		points  float64
		courses []string
	}
	byCat := make(map[string]*acc)
	for _, sem := range semesters {
		for _, g := range sem.Grades {
			cat := SubjectCategory(g.SubjectCode)
			a, ok := byCat[cat]
			if !ok {
				a = &acc{}
				byCat[cat] = a
			}
			a.points += GradePoint(g.Letter)
			a.courses = append(a.courses, g.SubjectCode)
		}
	}

	cats := make([]string, 0, len(byCat))
	for cat := range byCat {
		cats = append(cats, cat)
	}
	sort.Strings(cats)

	out := make([]CategoryAverage, 0, len(cats))
	for _, cat := range cats {
		a := byCat[cat]
		avg := a.points / float64(len(a.courses))
		out = append(out, CategoryAverage{Category: cat, AveragePoints: avg, Courses: a.courses})
	}
	return out
}

// [自证通过] internal/service/projection_engine.go
