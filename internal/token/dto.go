package token

import (
	"time"

	"github.com/smsvault/smsvault/internal/models"
)

// CreateTokenRequest 创建 Token 请求
type CreateTokenRequest struct {
	Name        string `json:"name" binding:"required,max=100"`
	CustomToken string `json:"custom_token"`
	Length      int    `json:"length"`
}

// ResetTokenRequest 重置 Token 请求
type ResetTokenRequest struct {
	CustomToken string `json:"custom_token"`
	Length      int    `json:"length"`
}

// TokenDTO Token 数据传输对象
type TokenDTO struct {
	ID           uint       `json:"id"`
	Name         string     `json:"name"`
	Token        string     `json:"token,omitempty"` // 仅在创建/重置时返回
	TokenDisplay string     `json:"token_display"`   // 脱敏显示
	Enabled      bool       `json:"enabled"`
	CreatedAt    time.Time  `json:"created_at"`
	LastUsedAt   *time.Time `json:"last_used_at,omitempty"`
}

// ToTokenDTO 将 AccessToken 模型转换为 DTO
func ToTokenDTO(token *models.AccessToken, showFullToken bool) *TokenDTO {
	dto := &TokenDTO{
		ID:           token.ID,
		Name:         token.Name,
		TokenDisplay: MaskToken(token.Token),
		Enabled:      token.Enabled,
		CreatedAt:    token.CreatedAt,
		LastUsedAt:   token.LastUsedAt,
	}

	// 仅在需要时显示完整 Token
	if showFullToken {
		dto.Token = token.Token
	}

	return dto
}
