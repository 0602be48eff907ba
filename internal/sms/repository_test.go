package sms

import (
	"fmt"
	"testing"
	"time"

	"github.com/smsvault/smsvault/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestDB 创建测试数据库
func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	if err := db.AutoMigrate(&models.SmsRecord{}, &models.SystemEvent{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

func insertRecord(t *testing.T, repo *Repository, phone, content, device string, receivedAt time.Time) {
	t.Helper()
	err := repo.Insert(&models.SmsRecord{
		Phone:      phone,
		Content:    content,
		ReceivedAt: receivedAt,
		Device:     device,
	})
	if err != nil {
		t.Fatalf("Insert() failed: %v", err)
	}
}

// TestRepository_Insert 测试写入短信记录
func TestRepository_Insert(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)

	record := &models.SmsRecord{
		Phone:      "10086",
		Content:    "您的验证码是 123456",
		ReceivedAt: time.Now(),
		Device:     "SIM1",
	}

	if err := repo.Insert(record); err != nil {
		t.Errorf("Insert() failed: %v", err)
	}
	if record.ID == 0 {
		t.Error("Insert() did not set record ID")
	}

	count, _ := repo.Count()
	if count != 1 {
		t.Errorf("Count() = %d, want 1", count)
	}
}

// TestRepository_Search_Filters 测试筛选条件的与关系
func TestRepository_Search_Filters(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)

	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.Local)
	insertRecord(t, repo, "10086", "话费余额提醒", "SIM1", base)
	insertRecord(t, repo, "10010", "您的验证码是 123456", "SIM2", base.Add(time.Hour))
	insertRecord(t, repo, "95588", "转账到账通知", "SIM1", base.AddDate(0, 0, 2))

	// 设备精确匹配
	q := &ListQuery{Device: "SIM1"}
	q.Normalize()
	_, total, err := repo.Search(q)
	if err != nil {
		t.Fatalf("Search() failed: %v", err)
	}
	if total != 2 {
		t.Errorf("device filter total = %d, want 2", total)
	}

	// 号码模糊匹配
	q = &ListQuery{Phone: "100"}
	q.Normalize()
	_, total, _ = repo.Search(q)
	if total != 2 {
		t.Errorf("phone filter total = %d, want 2", total)
	}

	// 内容模糊匹配
	q = &ListQuery{Content: "验证码"}
	q.Normalize()
	_, total, _ = repo.Search(q)
	if total != 1 {
		t.Errorf("content filter total = %d, want 1", total)
	}

	// 日期区间（含当日两端）
	q = &ListQuery{From: "2024-05-01", To: "2024-05-01"}
	q.Normalize()
	_, total, _ = repo.Search(q)
	if total != 2 {
		t.Errorf("date range total = %d, want 2", total)
	}

	// 条件组合为与关系
	q = &ListQuery{Device: "SIM1", From: "2024-05-02"}
	q.Normalize()
	records, total, _ := repo.Search(q)
	if total != 1 || len(records) != 1 || records[0].Phone != "95588" {
		t.Errorf("combined filter got total=%d, want the 95588 record", total)
	}
}

// TestRepository_Search_SortAndPaging 测试排序方向与分页窗口
func TestRepository_Search_SortAndPaging(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)

	base := time.Date(2024, 5, 1, 0, 0, 0, 0, time.Local)
	// 101 条记录，接收时间递增
	for i := 0; i < 101; i++ {
		insertRecord(t, repo, fmt.Sprintf("1%010d", i), fmt.Sprintf("message %d", i), "SIM1",
			base.Add(time.Duration(i)*time.Minute))
	}

	// 第 3 页只有 1 条
	q := &ListQuery{Page: 3, PageSize: 50}
	q.Normalize()
	records, total, err := repo.Search(q)
	if err != nil {
		t.Fatalf("Search() failed: %v", err)
	}
	if total != 101 {
		t.Errorf("total = %d, want 101", total)
	}
	if PageCount(total, q.PageSize) != 3 {
		t.Errorf("PageCount = %d, want 3", PageCount(total, q.PageSize))
	}
	if len(records) != 1 {
		t.Errorf("page 3 row count = %d, want 1", len(records))
	}

	// 默认降序：第一页第一条是最新的
	q = &ListQuery{}
	q.Normalize()
	records, _, _ = repo.Search(q)
	if records[0].Content != "message 100" {
		t.Errorf("desc first row = %q, want message 100", records[0].Content)
	}

	// 升序翻转顺序，不改变总数和页数
	q = &ListQuery{Dir: "asc"}
	q.Normalize()
	records, total, _ = repo.Search(q)
	if total != 101 {
		t.Errorf("asc total = %d, want 101", total)
	}
	if records[0].Content != "message 0" {
		t.Errorf("asc first row = %q, want message 0", records[0].Content)
	}
}

// TestRepository_RecentKeywordCandidates 测试验证码粗筛
func TestRepository_RecentKeywordCandidates(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)

	base := time.Now().Add(-time.Hour)
	insertRecord(t, repo, "10086", "您的验证码是 123456", "", base)
	insertRecord(t, repo, "10010", "Your CODE: 98765", "", base.Add(time.Minute))
	insertRecord(t, repo, "95588", "Encoded payload 20240501", "", base.Add(2*time.Minute))
	insertRecord(t, repo, "95533", "话费余额提醒", "", base.Add(3*time.Minute))

	candidates, err := repo.RecentKeywordCandidates(100)
	if err != nil {
		t.Fatalf("RecentKeywordCandidates() failed: %v", err)
	}

	// 子串粗筛会放进 Encoded（含 code 子串），话费提醒被排除
	if len(candidates) != 3 {
		t.Fatalf("candidate count = %d, want 3", len(candidates))
	}

	// 按接收时间降序
	if candidates[0].Phone != "95588" {
		t.Errorf("first candidate = %s, want 95588 (newest)", candidates[0].Phone)
	}
}

// TestRepository_RecentKeywordCandidates_Limit 测试候选上限
func TestRepository_RecentKeywordCandidates_Limit(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)

	base := time.Now().Add(-3 * time.Hour)
	for i := 0; i < 120; i++ {
		insertRecord(t, repo, "10086", fmt.Sprintf("验证码 %06d", i), "", base.Add(time.Duration(i)*time.Second))
	}

	candidates, err := repo.RecentKeywordCandidates(CandidateLimit)
	if err != nil {
		t.Fatalf("RecentKeywordCandidates() failed: %v", err)
	}
	if len(candidates) != CandidateLimit {
		t.Errorf("candidate count = %d, want %d", len(candidates), CandidateLimit)
	}
}

// TestRepository_Devices 测试设备去重列表
func TestRepository_Devices(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)

	now := time.Now()
	insertRecord(t, repo, "1", "a", "SIM2", now)
	insertRecord(t, repo, "2", "b", "SIM1", now)
	insertRecord(t, repo, "3", "c", "SIM1", now)
	insertRecord(t, repo, "4", "d", "", now)

	devices, err := repo.Devices()
	if err != nil {
		t.Fatalf("Devices() failed: %v", err)
	}

	if len(devices) != 2 || devices[0] != "SIM1" || devices[1] != "SIM2" {
		t.Errorf("Devices() = %v, want [SIM1 SIM2]", devices)
	}
}

// TestRepository_PurgeAll 测试整表清空
func TestRepository_PurgeAll(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)

	now := time.Now()
	insertRecord(t, repo, "1", "a", "", now)
	insertRecord(t, repo, "2", "b", "", now)

	purged, err := repo.PurgeAll()
	if err != nil {
		t.Fatalf("PurgeAll() failed: %v", err)
	}
	if purged != 2 {
		t.Errorf("PurgeAll() purged = %d, want 2", purged)
	}

	count, _ := repo.Count()
	if count != 0 {
		t.Errorf("Count() after purge = %d, want 0", count)
	}
}
