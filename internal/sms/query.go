package sms

import (
	"strings"
	"time"
)

// 分页参数范围
const (
	MinPageSize     = 10
	MaxPageSize     = 200
	DefaultPageSize = 50
)

// SortAsc / SortDesc 排序方向
const (
	SortAsc  = "asc"
	SortDesc = "desc"
)

// ListQuery 短信列表查询条件
// 各筛选条件为与关系，空值表示不筛选
type ListQuery struct {
	Device  string // 设备精确匹配
	Phone   string // 号码模糊匹配
	Content string // 内容模糊匹配
	From    string // 开始日期 YYYY-MM-DD（当日 00:00:00 起）
	To      string // 结束日期 YYYY-MM-DD（当日 23:59:59 止）

	Dir      string // asc / desc，仅支持按接收时间排序
	Page     int
	PageSize int
}

// Normalize 收敛查询参数到合法范围
func (q *ListQuery) Normalize() {
	q.Device = strings.TrimSpace(q.Device)
	q.Phone = strings.TrimSpace(q.Phone)
	q.Content = strings.TrimSpace(q.Content)
	q.From = strings.TrimSpace(q.From)
	q.To = strings.TrimSpace(q.To)

	if strings.ToLower(q.Dir) == SortAsc {
		q.Dir = SortAsc
	} else {
		q.Dir = SortDesc
	}

	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize == 0 {
		q.PageSize = DefaultPageSize
	}
	if q.PageSize < MinPageSize {
		q.PageSize = MinPageSize
	}
	if q.PageSize > MaxPageSize {
		q.PageSize = MaxPageSize
	}
}

// Offset 当前页的偏移量
func (q *ListQuery) Offset() int {
	return (q.Page - 1) * q.PageSize
}

// PageCount 按总数计算页数
func PageCount(total int64, pageSize int) int {
	if total <= 0 {
		return 0
	}
	pages := total / int64(pageSize)
	if total%int64(pageSize) != 0 {
		pages++
	}
	return int(pages)
}

// dayStart 解析日期为当日零点，失败返回零值
func dayStart(date string) (time.Time, bool) {
	t, err := time.ParseInLocation("2006-01-02", date, time.Local)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// dayEnd 解析日期为当日 23:59:59，失败返回零值
func dayEnd(date string) (time.Time, bool) {
	t, ok := dayStart(date)
	if !ok {
		return time.Time{}, false
	}
	return t.Add(24*time.Hour - time.Second), true
}
