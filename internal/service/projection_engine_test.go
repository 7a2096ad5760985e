package service

import (
	"math"
	"testing"

	"college-central/backend/internal/model"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

func TestGradePoint(t *testing.T) {
	tests := []struct {
		letter string
		want   float64
	}{
		{"A+", 10}, {"A", 9}, {"B+", 8}, {"B", 7},
		{"C+", 6}, {"C", 5}, {"D", 4}, {"F", 0},
		{"a", 9}, {" b+ ", 8},
		{"X", 0}, {"", 0},
	}
	for _, tt := range tests {
		if got := GradePoint(tt.letter); got != tt.want {
			t.Errorf("GradePoint(%q): 期望 %v, 实际 %v", tt.letter, tt.want, got)
		}
	}
}

func TestComputeSemesterGPA(t *testing.T) {
	grades := []model.Grade{
		{SubjectCode: "CSC201", Credits: 4, Letter: "A"},  // 36
		{SubjectCode: "MAC201", Credits: 3, Letter: "B+"}, // 24
		{SubjectCode: "PHC202", Credits: 3, Letter: "A+"}, // 30
	}
	sgpa, credits := ComputeSemesterGPA(grades)
	if !almostEqual(credits, 10) {
		t.Errorf("学分合计期望 10, 实际 %v", credits)
	}
	if !almostEqual(sgpa, 9.0) {
		t.Errorf("SGPA 期望 9.0, 实际 %v", sgpa)
	}
}

func TestComputeSemesterGPAEmpty(t *testing.T) {
	sgpa, credits := ComputeSemesterGPA(nil)
	if sgpa != 0 || credits != 0 {
		t.Errorf("空学期期望 (0, 0), 实际 (%v, %v)", sgpa, credits)
	}
}

func TestComputeProjectedCGPA(t *testing.T) {
	// 既有 CGPA 8.0 / 100 学分, 再修 4 学分拿 A(9):
	// (8.0*100 + 9*4) / 104 = 8.0384...
	got := ComputeProjectedCGPA(8.0, 100, 9, 4)
	want := 836.0 / 104.0
	if !almostEqual(got, want) {
		t.Errorf("推演 CGPA 期望 %v, 实际 %v", want, got)
	}

	// 假设学期学分为 0: 维持原 CGPA
	if got := ComputeProjectedCGPA(8.0, 100, 0, 0); !almostEqual(got, 8.0) {
		t.Errorf("零学分学期应维持 CGPA 8.0, 实际 %v", got)
	}
}

func TestComputeRequiredFutureSGPA(t *testing.T) {
	// 当前 7.0 / 120 学分, 目标 8.5, 剩余 2 学期各 20 学分:
	// (8.5*160 - 7.0*120) / 40 = (1360-840)/40 = 13.0 -> 不可达成
	required, achievable, total := ComputeRequiredFutureSGPA(7.0, 120, 8.5, 2, 20)
	if !almostEqual(required, 13.0) {
		t.Errorf("所需 SGPA 期望 13.0, 实际 %v", required)
	}
	if achievable {
		t.Errorf("所需 SGPA 超过 10, 不应标记可达成")
	}
	if !almostEqual(total, 160) {
		t.Errorf("推演总学分期望 160, 实际 %v", total)
	}

	// 当前 8.0 / 100 学分, 目标 9.0, 剩余 2 学期各 20 学分:
	// (9.0*140 - 8.0*100) / 40 = (1260-800)/40 = 11.5 -> 不可达成
	required, achievable, total = ComputeRequiredFutureSGPA(8.0, 100, 9.0, 2, 20)
	if !almostEqual(required, 11.5) {
		t.Errorf("所需 SGPA 期望 11.5, 实际 %v", required)
	}
	if achievable {
		t.Errorf("所需 SGPA 11.5 不应标记可达成")
	}
	if !almostEqual(total, 140) {
		t.Errorf("推演总学分期望 140, 实际 %v", total)
	}

	// 目标温和: 当前 8.0 / 100, 目标 8.2, 剩余 1 学期 25 学分:
	// (8.2*125 - 8.0*100) / 25 = (1025-800)/25 = 9.0 -> 可达成
	required, achievable, _ = ComputeRequiredFutureSGPA(8.0, 100, 8.2, 1, 25)
	if !almostEqual(required, 9.0) || !achievable {
		t.Errorf("期望 (9.0, 可达成), 实际 (%v, %v)", required, achievable)
	}
}

func TestGradeDistribution(t *testing.T) {
	semesters := []model.Semester{
		{Number: 1, Grades: []model.Grade{
			{SubjectCode: "CSC201", Letter: "A"},
			{SubjectCode: "MAC201", Letter: "A"},
			{SubjectCode: "PHC202", Letter: "B+"},
		}},
		{Number: 2, Grades: []model.Grade{
			{SubjectCode: "CSC202", Letter: "A+"},
		}},
	}
	buckets := GradeDistribution(semesters)
	if len(buckets) != 3 {
		t.Fatalf("期望 3 个等级桶, 实际 %d", len(buckets))
	}
	// 顺序按绩点从高到低
	if buckets[0].Letter != "A+" || buckets[1].Letter != "A" || buckets[2].Letter != "B+" {
		t.Errorf("桶顺序不符: %v %v %v", buckets[0].Letter, buckets[1].Letter, buckets[2].Letter)
	}
	if buckets[1].Count != 2 || len(buckets[1].Courses) != 2 {
		t.Errorf("A 桶期望 2 门课程, 实际 %+v", buckets[1])
	}
}

func TestSubjectCategory(t *testing.T) {
	tests := []struct {
		code string
		want string
	}{
		{"CSC201", "CS"},
		{"mac201", "MA"},
		{"HSC201", "HS"},
		{"1X", "Other"},
		{"C", "Other"},
		{"", "Other"},
	}
	for _, tt := range tests {
		if got := SubjectCategory(tt.code); got != tt.want {
			t.Errorf("SubjectCategory(%q): 期望 %q, 实际 %q", tt.code, tt.want, got)
		}
	}
}

func TestSubjectCategoryAverages(t *testing.T) {
	semesters := []model.Semester{
		{Number: 1, Grades: []model.Grade{
			{SubjectCode: "CSC201", Credits: 4, Letter: "A"},  // CS: 9
			{SubjectCode: "CSC203", Credits: 2, Letter: "B"},  // CS: 7 -> 均值 8
			{SubjectCode: "MAC201", Credits: 3, Letter: "A+"}, // MA: 10
		}},
	}
	avgs := SubjectCategoryAverages(semesters)
	if len(avgs) != 2 {
		t.Fatalf("期望 2 个类别, 实际 %d", len(avgs))
	}
	// 类别按名称升序: CS, MA
	if avgs[0].Category != "CS" || avgs[1].Category != "MA" {
		t.Fatalf("类别顺序不符: %v, %v", avgs[0].Category, avgs[1].Category)
	}
	if !almostEqual(avgs[0].AveragePoints, 8.0) {
		t.Errorf("CS 平均绩点期望 8.0, 实际 %v", avgs[0].AveragePoints)
	}
	if !almostEqual(avgs[1].AveragePoints, 10.0) {
		t.Errorf("MA 平均绩点期望 10, 实际 %v", avgs[1].AveragePoints)
	}
}

func TestSubjectCategoryAveragesIgnoreCredits(t *testing.T) {
	// 类别均值按课程数等权：学分差异不改变结果
	semesters := []model.Semester{
		{Number: 1, Grades: []model.Grade{
			{SubjectCode: "CSC301", Credits: 4, Letter: "A"}, // 9
			{SubjectCode: "CSC303", Credits: 2, Letter: "B"}, // 7
		}},
	}
	avgs := SubjectCategoryAverages(semesters)
	if len(avgs) != 1 || avgs[0].Category != "CS" {
		t.Fatalf("期望单一 CS 类别, 实际 %+v", avgs)
	}
	if !almostEqual(avgs[0].AveragePoints, 8.0) {
		t.Errorf("CS 均值期望 8.0 (算术平均), 实际 %v", avgs[0].AveragePoints)
	}
}

func TestComputeOverall(t *testing.T) {
	semesters := []model.Semester{
		{Number: 1, Grades: []model.Grade{{SubjectCode: "CSC201", Credits: 4, Letter: "A"}}},
		{Number: 2, Grades: []model.Grade{{SubjectCode: "MAC202", Credits: 4, Letter: "B"}}},
	}
	cgpa, credits := ComputeOverall(semesters)
	if !almostEqual(credits, 8) || !almostEqual(cgpa, 8.0) {
		t.Errorf("期望 CGPA 8.0 / 8 学分, 实际 %v / %v", cgpa, credits)
	}

	cgpa, credits = ComputeOverall(nil)
	if cgpa != 0 || credits != 0 {
		t.Errorf("无成绩期望 (0, 0), 实际 (%v, %v)", cgpa, credits)
	}
}
