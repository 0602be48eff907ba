package sms

import "github.com/smsvault/smsvault/internal/models"

// 短信时间的展示格式
const TimeLayout = "2006-01-02 15:04:05"

// SmsRecordDTO 短信记录数据传输对象
type SmsRecordDTO struct {
	Phone      string `json:"phone"`
	Content    string `json:"content"`
	ReceivedAt string `json:"received_at"`
	Device     string `json:"device"`
}

// ListResult 列表查询结果
type ListResult struct {
	Total    int64           `json:"total"`
	Page     int             `json:"page"`
	PageSize int             `json:"page_size"`
	Pages    int             `json:"pages"`
	Records  []*SmsRecordDTO `json:"records"`
}

// ToSmsRecordDTO 将 SmsRecord 模型转换为 DTO
func ToSmsRecordDTO(record *models.SmsRecord) *SmsRecordDTO {
	return &SmsRecordDTO{
		Phone:      record.Phone,
		Content:    record.Content,
		ReceivedAt: record.ReceivedAt.Format(TimeLayout),
		Device:     record.Device,
	}
}

// ToListResult 组装分页查询结果
func ToListResult(records []*models.SmsRecord, total int64, q *ListQuery) *ListResult {
	dtos := make([]*SmsRecordDTO, len(records))
	for i, record := range records {
		dtos[i] = ToSmsRecordDTO(record)
	}
	return &ListResult{
		Total:    total,
		Page:     q.Page,
		PageSize: q.PageSize,
		Pages:    PageCount(total, q.PageSize),
		Records:  dtos,
	}
}
