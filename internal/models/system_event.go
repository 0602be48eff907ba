package models

import "time"

// SystemEvent 系统事件日志
// 用于记录系统重要事件，如清空记录、令牌变更、时间解析回退等
type SystemEvent struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Type      string    `gorm:"type:varchar(50);not null;index" json:"type"`
	Message   string    `gorm:"type:text;not null" json:"message"`
	Level     string    `gorm:"type:varchar(20);not null;default:'info'" json:"level"` // info, warning, error
	Metadata  string    `gorm:"type:json" json:"metadata,omitempty"`                   // 额外的元数据（JSON 格式）
	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

// TableName 指定表名
func (SystemEvent) TableName() string {
	return "system_events"
}

// EventType 事件类型常量
const (
	EventTypePurge        = "purge"         // 清空短信记录
	EventTypeTokenCreated = "token_created" // 令牌创建
	EventTypeTokenReset   = "token_reset"   // 令牌重置
	EventTypeTokenDeleted = "token_deleted" // 令牌删除
	EventTypeTimeFallback = "time_fallback" // 上报时间解析失败回退
)

// EventLevel 事件级别常量
const (
	EventLevelInfo    = "info"
	EventLevelWarning = "warning"
	EventLevelError   = "error"
)
