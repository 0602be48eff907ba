package models

import "time"

// SmsRecord 短信记录
// 由设备上报接口写入，创建后不再修改，只能整表清空
type SmsRecord struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Phone      string    `gorm:"type:varchar(100);not null" json:"phone"`
	Content    string    `gorm:"type:text;not null" json:"content"`
	ReceivedAt time.Time `gorm:"index" json:"received_at"`
	Device     string    `gorm:"type:varchar(100);default:''" json:"device"`
}

// TableName 指定表名
func (SmsRecord) TableName() string {
	return "sms_records"
}
