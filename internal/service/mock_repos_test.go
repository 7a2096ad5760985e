package service

import (
	"context"
	"strconv"

	"gorm.io/gorm"

	"college-central/backend/internal/model"
	"college-central/backend/internal/repository"
)

// ── Mock UserRepository ──

type mockUserRepo struct {
	users map[string]*model.User // key: user_id 与 roll_number 双索引
	seq   int
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	if user.UserID == "" {
		m.seq++
		user.UserID = "user-" + strconv.Itoa(m.seq)
	}
	m.users[user.UserID] = user
	m.users["roll:"+user.RollNumber] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, userID string) (*model.User, error) {
	if u, ok := m.users[userID]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByRollNumber(_ context.Context, rollNumber string) (*model.User, error) {
	if u, ok := m.users["roll:"+rollNumber]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) ExistsByRollNumber(_ context.Context, rollNumber string) (bool, error) {
	_, ok := m.users["roll:"+rollNumber]
	return ok, nil
}

func (m *mockUserRepo) Update(_ context.Context, user *model.User) error {
	m.users[user.UserID] = user
	m.users["roll:"+user.RollNumber] = user
	return nil
}

// ── Mock CatalogRepository ──

type mockCatalogRepo struct {
	courses map[string]model.CourseCatalogEntry
}

func newMockCatalogRepo(courses ...model.CourseCatalogEntry) *mockCatalogRepo {
	m := &mockCatalogRepo{courses: make(map[string]model.CourseCatalogEntry)}
	for _, c := range courses {
		m.courses[c.CourseCode] = c
	}
	return m
}

func (m *mockCatalogRepo) List(_ context.Context) ([]model.CourseCatalogEntry, error) {
	var result []model.CourseCatalogEntry
	for _, c := range m.courses {
		result = append(result, c)
	}
	return result, nil
}

func (m *mockCatalogRepo) GetByCode(_ context.Context, code string) (*model.CourseCatalogEntry, error) {
	if c, ok := m.courses[code]; ok {
		return &c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCatalogRepo) ListByCodes(_ context.Context, codes []string) ([]model.CourseCatalogEntry, error) {
	var result []model.CourseCatalogEntry
	seen := make(map[string]bool)
	for _, code := range codes {
		if seen[code] {
			continue
		}
		seen[code] = true
		if c, ok := m.courses[code]; ok {
			result = append(result, c)
		}
	}
	return result, nil
}

// ── Mock ScheduleEntryRepository ──

type mockScheduleEntryRepo struct {
	entries map[string][]model.ScheduleEntry // key: user_id
}

func newMockScheduleEntryRepo() *mockScheduleEntryRepo {
	return &mockScheduleEntryRepo{entries: make(map[string][]model.ScheduleEntry)}
}

func (m *mockScheduleEntryRepo) ListByUser(_ context.Context, userID string) ([]model.ScheduleEntry, error) {
	out := make([]model.ScheduleEntry, len(m.entries[userID]))
	copy(out, m.entries[userID])
	return out, nil
}

func (m *mockScheduleEntryRepo) ReplaceByUser(_ context.Context, userID string, entries []model.ScheduleEntry) error {
	stored := make([]model.ScheduleEntry, len(entries))
	copy(stored, entries)
	for i := range stored {
		stored[i].UserID = userID
	}
	m.entries[userID] = stored
	return nil
}

// ── Mock GradesRepository ──

type mockGradesRepo struct {
	snapshots map[string]*model.GradesSnapshot
}

func newMockGradesRepo() *mockGradesRepo {
	return &mockGradesRepo{snapshots: make(map[string]*model.GradesSnapshot)}
}

func (m *mockGradesRepo) GetByUser(_ context.Context, userID string) (*model.GradesSnapshot, error) {
	if s, ok := m.snapshots[userID]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockGradesRepo) Replace(_ context.Context, snapshot *model.GradesSnapshot) error {
	m.snapshots[snapshot.UserID] = snapshot
	return nil
}

func (m *mockGradesRepo) DeleteByUser(_ context.Context, userID string) error {
	delete(m.snapshots, userID)
	return nil
}

// ── Mock CampusUpdateRepository ──

type mockCampusUpdateRepo struct {
	updates []model.CampusUpdate
	seq     int
}

func newMockCampusUpdateRepo() *mockCampusUpdateRepo {
	return &mockCampusUpdateRepo{}
}

func (m *mockCampusUpdateRepo) List(_ context.Context, category string, offset, limit int) ([]model.CampusUpdate, int64, error) {
	var filtered []model.CampusUpdate
	for _, u := range m.updates {
		if category == "" || u.Category == category {
			filtered = append(filtered, u)
		}
	}
	total := int64(len(filtered))
	if offset >= len(filtered) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(filtered) {
		end = len(filtered)
	}
	return filtered[offset:end], total, nil
}

func (m *mockCampusUpdateRepo) ListLatest(_ context.Context, limit int) ([]model.CampusUpdate, error) {
	if limit > len(m.updates) {
		limit = len(m.updates)
	}
	return m.updates[:limit], nil
}

func (m *mockCampusUpdateRepo) InsertIgnoreDuplicate(_ context.Context, update *model.CampusUpdate) (bool, error) {
	for _, u := range m.updates {
		if u.Title == update.Title && u.Date == update.Date {
			return false, nil
		}
	}
	m.seq++
	update.UpdateID = "update-" + strconv.Itoa(m.seq)
	m.updates = append(m.updates, *update)
	return true, nil
}

// ── Mock ReminderRepository ──

type mockReminderRepo struct {
	reminders map[string]*model.Reminder
	seq       int
}

func newMockReminderRepo() *mockReminderRepo {
	return &mockReminderRepo{reminders: make(map[string]*model.Reminder)}
}

func (m *mockReminderRepo) ListByUser(_ context.Context, userID string) ([]model.Reminder, error) {
	var result []model.Reminder
	for _, r := range m.reminders {
		if r.UserID == userID {
			result = append(result, *r)
		}
	}
	return result, nil
}

func (m *mockReminderRepo) GetByID(_ context.Context, reminderID string) (*model.Reminder, error) {
	if r, ok := m.reminders[reminderID]; ok {
		return r, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockReminderRepo) Create(_ context.Context, reminder *model.Reminder) error {
	m.seq++
	reminder.ReminderID = "reminder-" + strconv.Itoa(m.seq)
	m.reminders[reminder.ReminderID] = reminder
	return nil
}

func (m *mockReminderRepo) Update(_ context.Context, reminder *model.Reminder) error {
	m.reminders[reminder.ReminderID] = reminder
	return nil
}

func (m *mockReminderRepo) Delete(_ context.Context, reminderID string) error {
	delete(m.reminders, reminderID)
	return nil
}

// ── Mock QuickLinkRepository ──

type mockQuickLinkRepo struct {
	links map[string]*model.QuickLink
	seq   int
}

func newMockQuickLinkRepo() *mockQuickLinkRepo {
	return &mockQuickLinkRepo{links: make(map[string]*model.QuickLink)}
}

func (m *mockQuickLinkRepo) ListByUser(_ context.Context, userID string) ([]model.QuickLink, error) {
	var result []model.QuickLink
	for _, l := range m.links {
		if l.UserID == userID {
			result = append(result, *l)
		}
	}
	return result, nil
}

func (m *mockQuickLinkRepo) GetByID(_ context.Context, linkID string) (*model.QuickLink, error) {
	if l, ok := m.links[linkID]; ok {
		return l, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockQuickLinkRepo) Create(_ context.Context, link *model.QuickLink) error {
	m.seq++
	link.LinkID = "link-" + strconv.Itoa(m.seq)
	m.links[link.LinkID] = link
	return nil
}

func (m *mockQuickLinkRepo) Delete(_ context.Context, linkID string) error {
	delete(m.links, linkID)
	return nil
}

// ── 测试用 Repository 聚合 ──

func newMockRepository() *repository.Repository {
	return &repository.Repository{
		User:          newMockUserRepo(),
		Catalog:       newMockCatalogRepo(),
		ScheduleEntry: newMockScheduleEntryRepo(),
		Grades:        newMockGradesRepo(),
		CampusUpdate:  newMockCampusUpdateRepo(),
		Reminder:      newMockReminderRepo(),
		QuickLink:     newMockQuickLinkRepo(),
	}
}
