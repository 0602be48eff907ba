package models

import "time"

// AccessToken 接入令牌
// 设备上报与验证码查询接口的访问凭证
type AccessToken struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	Name       string     `gorm:"type:varchar(100);not null" json:"name"`
	Token      string     `gorm:"type:varchar(100);uniqueIndex;not null" json:"token"`
	Enabled    bool       `gorm:"default:true;not null" json:"enabled"`
	CreatedAt  time.Time  `json:"created_at"`
	LastUsedAt *time.Time `json:"last_used_at,omitempty"`
}

// TableName 指定表名
func (AccessToken) TableName() string {
	return "access_tokens"
}
