package sms

import (
	"fmt"
	"strings"

	"github.com/smsvault/smsvault/internal/events"
	"github.com/smsvault/smsvault/internal/models"
)

// MissingParamsError 必填字段缺失
// 携带载荷中实际出现的字段名，便于客户端排查
type MissingParamsError struct {
	GotKeys []string
}

func (e *MissingParamsError) Error() string {
	return fmt.Sprintf("missing params, got keys: %s", strings.Join(e.GotKeys, ","))
}

// IngestService 短信接收业务逻辑层
// 负责载荷字段解析、时间规范化与入库
type IngestService struct {
	repo   *Repository
	events *events.Service
}

// NewIngestService 创建 IngestService 实例
func NewIngestService(repo *Repository, eventService *events.Service) *IngestService {
	return &IngestService{repo: repo, events: eventService}
}

// Ingest 处理一次上报，成功返回新写入的记录
// 不做去重，重复提交会产生重复记录
func (s *IngestService) Ingest(payload Payload) (*models.SmsRecord, error) {
	fields := payload.Resolve()

	if fields.Phone == "" || fields.Content == "" {
		return nil, &MissingParamsError{GotKeys: payload.Keys()}
	}

	receivedAt, fellBack := NormalizeTime(fields.Time)
	if fellBack && s.events != nil {
		// 观测信号，不改变响应契约
		_ = s.events.LogWarning(models.EventTypeTimeFallback,
			"上报时间无法解析，已回退为服务器时间", map[string]interface{}{
				"raw_time": fields.Time,
				"phone":    fields.Phone,
			})
	}

	record := &models.SmsRecord{
		Phone:      fields.Phone,
		Content:    fields.Content,
		ReceivedAt: receivedAt,
		Device:     fields.Device,
	}

	if err := s.repo.Insert(record); err != nil {
		return nil, err
	}

	return record, nil
}
