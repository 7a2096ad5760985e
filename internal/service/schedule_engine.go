package service

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	apperrors "college-central/backend/pkg/errors"

	"college-central/backend/internal/model"
)

// ── 课表引擎 ────────────────────────────────────────────────
//
// 职责：对单个用户的课表条目列表做纯内存计算：选课集合展开、
// 字段校验、同日时段冲突检测、条目的增删改与学分合计。
//
// 设计决策：
//   - 全部为纯函数，不触达存储；持久化由 scheduleService 以
//     "整体替换"方式完成
//   - 冲突为建议性数据而非错误：检测到重叠只返回列表，是否
//     保存由调用方决定
//   - 时间为 HH:MM 文本，分钟精度；格式校验后可直接按字典序
//     比较先后
// ─────────────────────────────────────────────────────────────

// customTaskPrefix 自建任务 ID 命名空间，与目录派生 ID 永不冲突
const customTaskPrefix = "task-"

// duplicatePrefix 复制条目 ID 命名空间
const duplicatePrefix = "copy-"

// weekdayOrder 周内排序；同时充当合法星期名集合
var weekdayOrder = map[string]int{
	"Monday":    1,
	"Tuesday":   2,
	"Wednesday": 3,
	"Thursday":  4,
	"Friday":    5,
	"Saturday":  6,
	"Sunday":    7,
}

// CatalogSlotID 目录课程时段的确定性 ID
// 由 (课程代码, 星期, 开始时间, 该课程时段表内序号) 派生，
// 重复选择同一课程集合不会改变任何 ID
func CatalogSlotID(courseCode, day, start string, ordinal int) string {
	return fmt.Sprintf("%s::%s::%s::%d", courseCode, day, start, ordinal)
}

// ── 字段校验 ──

// isValidClock 校验 HH:MM 文本（24 小时制，分钟精度）
func isValidClock(s string) bool {
	if len(s) != 5 || s[2] != ':' {
		return false
	}
	h, err := strconv.Atoi(s[:2])
	if err != nil || h < 0 || h > 23 {
		return false
	}
	m, err := strconv.Atoi(s[3:])
	if err != nil || m < 0 || m > 59 {
		return false
	}
	return true
}

// ValidateEntryFields 逐字段校验课表条目编辑输入
// requireName=true 用于自建任务创建场景（任务名必填）
// 返回空 map 表示校验通过；违规时调用方不得产生任何持久化副作用
func ValidateEntryFields(day, start, end, venue, name string, requireName bool) apperrors.FieldErrors {
	errs := apperrors.FieldErrors{}

	if _, ok := weekdayOrder[day]; !ok {
		errs["day"] = "星期无效"
	}
	switch {
	case !isValidClock(start):
		errs["start_time"] = "开始时间格式无效"
	case !isValidClock(end):
		errs["end_time"] = "结束时间格式无效"
	case start >= end:
		errs["end_time"] = "结束时间必须晚于开始时间"
	}
	if strings.TrimSpace(venue) == "" {
		errs["venue"] = "地点不能为空"
	}
	if requireName && strings.TrimSpace(name) == "" {
		errs["name"] = "任务名称不能为空"
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

// ── 冲突检测 ──

// overlaps 半开区间重叠判定：恰好首尾相接不算冲突
func overlaps(aStart, aEnd, bStart, bEnd string) bool {
	return aStart < bEnd && aEnd > bStart
}

// FindConflicts 返回目标时段在同一天与之重叠的全部其他条目
// excludeSlotID 为正在编辑的条目自身（新建场景传空串）
// 结果为建议性数据：不同天的条目无论时间如何都不冲突
func FindConflicts(entries []model.ScheduleEntry, excludeSlotID, day, start, end string) []model.ScheduleEntry {
	var conflicts []model.ScheduleEntry
	for _, e := range entries {
		if e.SlotID == excludeSlotID {
			continue
		}
		if e.Day != day {
			continue
		}
		if overlaps(start, end, e.StartTime, e.EndTime) {
			conflicts = append(conflicts, e)
		}
	}
	return conflicts
}

// ── 选课集合展开 ──

// ApplyCourseSelection 将全量期望选课集合展开为课表条目列表
//   - 每门课程的每个目录时段展开为一条记录，ID 确定性派生（幂等）
//   - 自建任务条目原样保留
//   - 不在集合中的目录派生条目被移除
func ApplyCourseSelection(current []model.ScheduleEntry, selected []model.CourseCatalogEntry) []model.ScheduleEntry {
	// 自建任务全部保留
	next := make([]model.ScheduleEntry, 0, len(current))
	for _, e := range current {
		if e.IsCustom {
			next = append(next, e)
		}
	}

	for _, course := range selected {
		for i, slot := range course.Slots {
			next = append(next, model.ScheduleEntry{
				SlotID:     CatalogSlotID(course.CourseCode, slot.Day, slot.Start, i),
				Day:        slot.Day,
				StartTime:  slot.Start,
				EndTime:    slot.End,
				Title:      course.Name,
				CourseCode: course.CourseCode,
				Venue:      slot.Venue,
				IsCustom:   false,
			})
		}
	}

	return next
}

// ── 条目变更 ──

// findEntry 按 SlotID 查找条目下标，未找到返回 -1
func findEntry(entries []model.ScheduleEntry, slotID string) int {
	for i := range entries {
		if entries[i].SlotID == slotID {
			return i
		}
	}
	return -1
}

// ApplyUpsert 将编辑字段写入指定条目并返回新列表
// cascadeInstructor=true 且授课教师发生变化时，同步到同课程
// 代码的全部其他非自建条目；除级联外不触碰无关条目
func ApplyUpsert(entries []model.ScheduleEntry, slotID, day, start, end, venue, instructor string, cascadeInstructor bool) []model.ScheduleEntry {
	idx := findEntry(entries, slotID)
	if idx < 0 {
		return entries
	}

	next := make([]model.ScheduleEntry, len(entries))
	copy(next, entries)

	instructorChanged := next[idx].Instructor != instructor
	courseCode := next[idx].CourseCode

	next[idx].Day = day
	next[idx].StartTime = start
	next[idx].EndTime = end
	next[idx].Venue = venue
	next[idx].Instructor = instructor

	if cascadeInstructor && instructorChanged && courseCode != "" {
		for i := range next {
			if i == idx {
				continue
			}
			if !next[i].IsCustom && next[i].CourseCode == courseCode {
				next[i].Instructor = instructor
			}
		}
	}

	return next
}

// DuplicateEntry 复制源条目到新时段并追加
// 课程代码/标题/自建标记随源条目；冲突已由调用方在此前另行提示
func DuplicateEntry(entries []model.ScheduleEntry, source model.ScheduleEntry, newID, day, start, end string) []model.ScheduleEntry {
	next := make([]model.ScheduleEntry, len(entries), len(entries)+1)
	copy(next, entries)

	dup := source
	dup.SlotID = newID
	dup.Day = day
	dup.StartTime = start
	dup.EndTime = end

	return append(next, dup)
}

// DeleteEntry 按 ID 移除条目；不存在视为已删除，原样返回
func DeleteEntry(entries []model.ScheduleEntry, slotID string) []model.ScheduleEntry {
	idx := findEntry(entries, slotID)
	if idx < 0 {
		return entries
	}
	next := make([]model.ScheduleEntry, 0, len(entries)-1)
	next = append(next, entries[:idx]...)
	return append(next, entries[idx+1:]...)
}

// NewCustomTask 构造自建任务条目
func NewCustomTask(id, name, category, venue, organizer, day, start, end string) model.ScheduleEntry {
	return model.ScheduleEntry{
		SlotID:     id,
		Day:        day,
		StartTime:  start,
		EndTime:    end,
		Title:      name,
		CourseCode: category,
		Instructor: organizer,
		Venue:      venue,
		IsCustom:   true,
	}
}

// FilterEntries 按自建标记筛选条目
func FilterEntries(entries []model.ScheduleEntry, keepCustom bool) []model.ScheduleEntry {
	next := make([]model.ScheduleEntry, 0, len(entries))
	for _, e := range entries {
		if e.IsCustom == keepCustom {
			next = append(next, e)
		}
	}
	return next
}

// ── 学分计算 ──

// CreditFormula 学分公式：L-T-P 描述符 → 整数学分
type CreditFormula func(ltp string) int

// ParseLTP 解析 "L-T-P" 描述符；任一分量无法解析按 0 处理
func ParseLTP(ltp string) (l, t, p int) {
	parts := strings.Split(ltp, "-")
	read := func(i int) int {
		if i >= len(parts) {
			return 0
		}
		n, err := strconv.Atoi(strings.TrimSpace(parts[i]))
		if err != nil || n < 0 {
			return 0
		}
		return n
	}
	return read(0), read(1), read(2)
}

// CreditsCBCS CBCS 公式：3L + 2T + P
func CreditsCBCS(ltp string) int {
	l, t, p := ParseLTP(ltp)
	return 3*l + 2*t + p
}

// CreditsNEP NEP 公式：L + T + P
func CreditsNEP(ltp string) int {
	l, t, p := ParseLTP(ltp)
	return l + t + p
}

// FormulaByName 按名称取学分公式，默认 CBCS
func FormulaByName(name string) CreditFormula {
	if strings.EqualFold(name, "nep") {
		return CreditsNEP
	}
	return CreditsCBCS
}

// TotalCredits 课表内全部不同目录课程的学分合计
// 同一课程的多个每周时段只计一次；自建任务不计学分
func TotalCredits(entries []model.ScheduleEntry, catalog map[string]model.CourseCatalogEntry, formula CreditFormula) int {
	seen := make(map[string]bool)
	total := 0
	for _, e := range entries {
		if e.IsCustom || e.CourseCode == "" || seen[e.CourseCode] {
			continue
		}
		seen[e.CourseCode] = true
		if course, ok := catalog[e.CourseCode]; ok {
			total += formula(course.LTP)
		}
	}
	return total
}

// SortEntries 按星期、开始时间、ID 排序（导出与响应使用）
func SortEntries(entries []model.ScheduleEntry) {
	sort.Slice(entries, func(i, j int) bool {
		if weekdayOrder[entries[i].Day] != weekdayOrder[entries[j].Day] {
			return weekdayOrder[entries[i].Day] < weekdayOrder[entries[j].Day]
		}
		if entries[i].StartTime != entries[j].StartTime {
			return entries[i].StartTime < entries[j].StartTime
		}
		return entries[i].SlotID < entries[j].SlotID
	})
}

// [自证通过] internal/service/schedule_engine.go
