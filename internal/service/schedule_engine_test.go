package service

import (
	"testing"

	"college-central/backend/internal/model"
)

// ── 测试数据 ──

func chc202() model.CourseCatalogEntry {
	return model.CourseCatalogEntry{
		CourseCode: "CHC202",
		Name:       "Organic Chemistry",
		LTP:        "3-1-0",
		Slots: model.MeetingSlotList{
			{Day: "Monday", Start: "08:00", End: "08:50", Venue: "LC-101"},
			{Day: "Monday", Start: "08:00", End: "08:50", Venue: "LC-101"},
			{Day: "Tuesday", Start: "09:00", End: "09:50", Venue: "LC-101"},
			{Day: "Thursday", Start: "11:00", End: "11:50", Venue: "LC-102"},
			{Day: "Friday", Start: "14:00", End: "14:50", Venue: "LC-102"},
		},
	}
}

func csc201() model.CourseCatalogEntry {
	return model.CourseCatalogEntry{
		CourseCode: "CSC201",
		Name:       "Data Structures",
		LTP:        "3-0-2",
		Slots: model.MeetingSlotList{
			{Day: "Monday", Start: "10:00", End: "10:50", Venue: "CS-201"},
			{Day: "Wednesday", Start: "10:00", End: "10:50", Venue: "CS-201"},
		},
	}
}

// ── 学分公式 ──

func TestCreditFormulas(t *testing.T) {
	tests := []struct {
		ltp      string
		cbcs     int
		nep      int
	}{
		{"3-1-0", 11, 4},
		{"3-0-2", 11, 5},
		{"0-0-2", 2, 2},
		{"2-1-1", 9, 4},
		{"", 0, 0},
		{"x-1-0", 2, 1},
		{"3", 9, 3},
	}
	for _, tt := range tests {
		if got := CreditsCBCS(tt.ltp); got != tt.cbcs {
			t.Errorf("CreditsCBCS(%q): 期望 %d, 实际 %d", tt.ltp, tt.cbcs, got)
		}
		if got := CreditsNEP(tt.ltp); got != tt.nep {
			t.Errorf("CreditsNEP(%q): 期望 %d, 实际 %d", tt.ltp, tt.nep, got)
		}
	}
}

func TestFormulaByName(t *testing.T) {
	if got := FormulaByName("nep")("3-1-0"); got != 4 {
		t.Errorf("NEP 公式期望 4, 实际 %d", got)
	}
	if got := FormulaByName("cbcs")("3-1-0"); got != 11 {
		t.Errorf("CBCS 公式期望 11, 实际 %d", got)
	}
	if got := FormulaByName("unknown")("3-1-0"); got != 11 {
		t.Errorf("未知公式名应回落 CBCS, 期望 11, 实际 %d", got)
	}
}

// ── 选课展开 ──

func TestApplyCourseSelection(t *testing.T) {
	course := chc202()
	entries := ApplyCourseSelection(nil, []model.CourseCatalogEntry{course})

	if len(entries) != 5 {
		t.Fatalf("CHC202 含 5 个时段, 实际展开 %d 条", len(entries))
	}

	// ID 全部唯一：含两个完全相同的周一时段，靠序号区分
	seen := make(map[string]bool)
	for _, e := range entries {
		if seen[e.SlotID] {
			t.Errorf("ID 重复: %s", e.SlotID)
		}
		seen[e.SlotID] = true
	}

	// 幂等：重复应用同一集合得到完全相同的 ID 集
	again := ApplyCourseSelection(entries, []model.CourseCatalogEntry{course})
	if len(again) != len(entries) {
		t.Fatalf("重复应用后条目数变化: %d -> %d", len(entries), len(again))
	}
	for _, e := range again {
		if !seen[e.SlotID] {
			t.Errorf("重复应用产生了新 ID: %s", e.SlotID)
		}
	}

	// 展开后两个相同的周一 08:00-08:50 时段应被冲突检测识别为互相冲突
	var monday []model.ScheduleEntry
	for _, e := range entries {
		if e.Day == "Monday" {
			monday = append(monday, e)
		}
	}
	if len(monday) != 2 {
		t.Fatalf("期望 2 条周一条目, 实际 %d", len(monday))
	}
	conflicts := FindConflicts(entries, monday[0].SlotID, monday[0].Day, monday[0].StartTime, monday[0].EndTime)
	if len(conflicts) != 1 || conflicts[0].SlotID != monday[1].SlotID {
		t.Errorf("重复周一时段应互为冲突, 实际 %+v", conflicts)
	}
}

func TestApplyCourseSelectionPreservesCustomTasks(t *testing.T) {
	task := NewCustomTask("task-1", "羽毛球训练", "Sports", "SAC", "Sports Club", "Saturday", "17:00", "18:00")
	entries := ApplyCourseSelection([]model.ScheduleEntry{task}, []model.CourseCatalogEntry{csc201()})

	if len(entries) != 3 {
		t.Fatalf("期望 2 条目录条目 + 1 条自建任务, 实际 %d", len(entries))
	}
	if findEntry(entries, "task-1") < 0 {
		t.Errorf("自建任务在选课展开后丢失")
	}

	// 改选空集合：目录条目清空，自建任务仍在
	cleared := ApplyCourseSelection(entries, nil)
	if len(cleared) != 1 || cleared[0].SlotID != "task-1" {
		t.Errorf("空集合选课后期望仅剩自建任务, 实际 %v", cleared)
	}
}

// ── 冲突检测 ──

func TestFindConflicts(t *testing.T) {
	entries := []model.ScheduleEntry{
		{SlotID: "a", Day: "Monday", StartTime: "08:00", EndTime: "08:50"},
		{SlotID: "b", Day: "Monday", StartTime: "08:50", EndTime: "09:40"},
		{SlotID: "c", Day: "Tuesday", StartTime: "08:00", EndTime: "08:50"},
	}

	// 首尾相接不冲突
	if got := FindConflicts(entries, "", "Monday", "07:00", "08:00"); len(got) != 0 {
		t.Errorf("07:00-08:00 与 08:00 开课首尾相接, 不应冲突, 实际 %d 条", len(got))
	}
	// 真重叠
	got := FindConflicts(entries, "", "Monday", "08:30", "09:00")
	if len(got) != 2 {
		t.Fatalf("08:30-09:00 应与 a、b 均冲突, 实际 %d 条", len(got))
	}
	// 不同天永不冲突
	if got := FindConflicts(entries, "", "Wednesday", "08:00", "08:50"); len(got) != 0 {
		t.Errorf("星期三无条目, 不应冲突")
	}
	// 编辑自身时排除自身
	if got := FindConflicts(entries, "a", "Monday", "08:00", "08:50"); len(got) != 0 {
		t.Errorf("编辑条目 a 不应与自身冲突, 实际 %d 条", len(got))
	}
}

// ── 字段校验 ──

func TestValidateEntryFields(t *testing.T) {
	if errs := ValidateEntryFields("Monday", "08:00", "08:50", "LC-101", "", false); errs != nil {
		t.Errorf("合法输入不应有校验错误: %v", errs)
	}

	errs := ValidateEntryFields("Funday", "8:00", "08:50", "", "", true)
	for _, field := range []string{"day", "start_time", "venue", "name"} {
		if _, ok := errs[field]; !ok {
			t.Errorf("期望字段 %s 存在校验错误, 实际 %v", field, errs)
		}
	}

	errs = ValidateEntryFields("Monday", "09:00", "08:00", "LC-101", "", false)
	if _, ok := errs["end_time"]; !ok {
		t.Errorf("结束早于开始应返回 end_time 错误, 实际 %v", errs)
	}
	errs = ValidateEntryFields("Monday", "09:00", "09:00", "LC-101", "", false)
	if _, ok := errs["end_time"]; !ok {
		t.Errorf("零时长条目应返回 end_time 错误, 实际 %v", errs)
	}
}

// ── 编辑与级联 ──

func TestApplyUpsertCascadeInstructor(t *testing.T) {
	entries := ApplyCourseSelection(nil, []model.CourseCatalogEntry{chc202(), csc201()})
	task := NewCustomTask("task-1", "社团例会", "Club", "SAC", "", "Monday", "18:00", "19:00")
	entries = append(entries, task)

	target := entries[0].SlotID
	next := ApplyUpsert(entries, target, "Monday", "08:00", "08:50", "LC-105", "Prof. Sharma", true)

	for _, e := range next {
		switch {
		case e.SlotID == target:
			if e.Instructor != "Prof. Sharma" || e.Venue != "LC-105" {
				t.Errorf("目标条目未更新: %+v", e)
			}
		case !e.IsCustom && e.CourseCode == "CHC202":
			if e.Instructor != "Prof. Sharma" {
				t.Errorf("级联应同步同课程条目 %s 的教师, 实际 %q", e.SlotID, e.Instructor)
			}
		case !e.IsCustom && e.CourseCode == "CSC201":
			if e.Instructor != "" {
				t.Errorf("级联不应波及其他课程: %+v", e)
			}
		case e.IsCustom:
			if e.Instructor != "" {
				t.Errorf("级联不应波及自建任务: %+v", e)
			}
		}
	}
}

func TestApplyUpsertNoCascade(t *testing.T) {
	entries := ApplyCourseSelection(nil, []model.CourseCatalogEntry{chc202()})
	target := entries[0].SlotID
	next := ApplyUpsert(entries, target, "Monday", "08:00", "08:50", "LC-101", "Prof. Rao", false)

	for _, e := range next {
		if e.SlotID != target && e.Instructor != "" {
			t.Errorf("未开级联时其他条目不应变化: %+v", e)
		}
	}
}

// ── 删除与复制 ──

func TestDeleteEntryIdempotent(t *testing.T) {
	entries := ApplyCourseSelection(nil, []model.CourseCatalogEntry{csc201()})
	target := entries[0].SlotID

	next := DeleteEntry(entries, target)
	if len(next) != len(entries)-1 {
		t.Fatalf("删除后期望 %d 条, 实际 %d", len(entries)-1, len(next))
	}
	// 再删一次：不存在视为已删除
	again := DeleteEntry(next, target)
	if len(again) != len(next) {
		t.Errorf("重复删除不应改变条目数")
	}
}

func TestDuplicateEntry(t *testing.T) {
	entries := ApplyCourseSelection(nil, []model.CourseCatalogEntry{csc201()})
	src := entries[0]

	next := DuplicateEntry(entries, src, "copy-1", "Friday", "15:00", "15:50")
	if len(next) != len(entries)+1 {
		t.Fatalf("复制后期望 %d 条, 实际 %d", len(entries)+1, len(next))
	}
	dup := next[len(next)-1]
	if dup.SlotID != "copy-1" || dup.Day != "Friday" || dup.CourseCode != src.CourseCode || dup.Title != src.Title {
		t.Errorf("复制条目字段不符: %+v", dup)
	}
}

// ── 学分合计 ──

func TestTotalCredits(t *testing.T) {
	catalog := map[string]model.CourseCatalogEntry{
		"CHC202": chc202(),
		"CSC201": csc201(),
	}
	entries := ApplyCourseSelection(nil, []model.CourseCatalogEntry{chc202(), csc201()})
	entries = append(entries, NewCustomTask("task-1", "晨跑", "Sports", "Stadium", "", "Sunday", "06:00", "07:00"))

	// CHC202 有 5 个每周时段但只计一次：11 + 11 = 22
	if got := TotalCredits(entries, catalog, CreditsCBCS); got != 22 {
		t.Errorf("CBCS 合计期望 22, 实际 %d", got)
	}
	// NEP: 4 + 5 = 9
	if got := TotalCredits(entries, catalog, CreditsNEP); got != 9 {
		t.Errorf("NEP 合计期望 9, 实际 %d", got)
	}
}

// ── 排序 ──

func TestSortEntries(t *testing.T) {
	entries := []model.ScheduleEntry{
		{SlotID: "c", Day: "Tuesday", StartTime: "08:00"},
		{SlotID: "b", Day: "Monday", StartTime: "10:00"},
		{SlotID: "a", Day: "Monday", StartTime: "08:00"},
	}
	SortEntries(entries)
	want := []string{"a", "b", "c"}
	for i, id := range want {
		if entries[i].SlotID != id {
			t.Errorf("排序位置 %d 期望 %s, 实际 %s", i, id, entries[i].SlotID)
		}
	}
}
