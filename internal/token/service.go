package token

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"github.com/smsvault/smsvault/internal/models"
)

var (
	// ErrInvalidToken Token 无效或已停用
	ErrInvalidToken = errors.New("invalid token")
	// ErrEmptyName 用途备注不能为空
	ErrEmptyName = errors.New("token name is required")
)

// 生成 Token 的长度范围
const (
	MinTokenLength     = 16
	MaxTokenLength     = 96
	DefaultTokenLength = 48
)

// Service Token 业务逻辑层
type Service struct {
	repo *Repository
}

// NewService 创建 Service 实例
func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

// GenerateTokenValue 生成指定长度的随机 Token 值（十六进制截断）
// 长度收敛到 [16, 96]
func GenerateTokenValue(length int) (string, error) {
	length = clampLength(length)
	bytes := make([]byte, (length+1)/2)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes)[:length], nil
}

func clampLength(length int) int {
	if length <= 0 {
		return DefaultTokenLength
	}
	if length < MinTokenLength {
		return MinTokenLength
	}
	if length > MaxTokenLength {
		return MaxTokenLength
	}
	return length
}

// CreateToken 创建 Token
// customToken 非空时使用自定义值，否则按 length 生成随机值
func (s *Service) CreateToken(name string, customToken string, length int) (*models.AccessToken, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}

	tokenValue, err := s.resolveTokenValue(customToken, length)
	if err != nil {
		return nil, err
	}

	token := &models.AccessToken{
		Name:    name,
		Token:   tokenValue,
		Enabled: true,
	}

	if err := s.repo.Create(token); err != nil {
		return nil, err
	}

	return token, nil
}

// resolveTokenValue 确定新 Token 值：自定义优先，冲突即报错；否则随机生成并重试
func (s *Service) resolveTokenValue(customToken string, length int) (string, error) {
	customToken = strings.TrimSpace(customToken)
	if customToken != "" {
		exists, err := s.repo.CheckValueExists(customToken)
		if err != nil {
			return "", err
		}
		if exists {
			return "", ErrTokenValueExists
		}
		return customToken, nil
	}

	maxRetries := 5
	for i := 0; i < maxRetries; i++ {
		tokenValue, err := GenerateTokenValue(length)
		if err != nil {
			return "", err
		}

		exists, err := s.repo.CheckValueExists(tokenValue)
		if err != nil {
			return "", err
		}
		if !exists {
			return tokenValue, nil
		}
	}

	return "", ErrTokenValueExists
}

// ListTokens 获取所有 Token 列表
func (s *Service) ListTokens() ([]*models.AccessToken, error) {
	return s.repo.FindAll()
}

// GetToken 根据 ID 获取 Token
func (s *Service) GetToken(id uint) (*models.AccessToken, error) {
	return s.repo.FindByID(id)
}

// DeleteToken 删除 Token
func (s *Service) DeleteToken(id uint) error {
	return s.repo.Delete(id)
}

// ToggleToken 切换启用/停用状态，返回更新后的 Token
func (s *Service) ToggleToken(id uint) (*models.AccessToken, error) {
	token, err := s.repo.FindByID(id)
	if err != nil {
		return nil, err
	}

	if err := s.repo.UpdateEnabled(id, !token.Enabled); err != nil {
		return nil, err
	}

	return s.repo.FindByID(id)
}

// ResetToken 重置 Token 值（旧值立即失效，创建时间重置）
func (s *Service) ResetToken(id uint, customToken string, length int) (*models.AccessToken, error) {
	if _, err := s.repo.FindByID(id); err != nil {
		return nil, err
	}

	tokenValue, err := s.resolveTokenValue(customToken, length)
	if err != nil {
		return nil, err
	}

	if err := s.repo.UpdateValue(id, tokenValue); err != nil {
		return nil, err
	}

	return s.repo.FindByID(id)
}

// Validate 验证 Token 值 (用于认证)
// 只匹配已启用的记录；未匹配统一返回 ErrInvalidToken
func (s *Service) Validate(tokenValue string) (*models.AccessToken, error) {
	token, err := s.repo.FindEnabledByValue(tokenValue)
	if err != nil {
		if errors.Is(err, ErrTokenNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}
	return token, nil
}

// Touch 更新最后使用时间（尽力而为）
// 失败不影响调用方的主操作，因此不返回错误
func (s *Service) Touch(id uint) {
	_ = s.repo.UpdateLastUsed(id, time.Now())
}

// MaskToken 脱敏显示 Token
// 格式: ****{最后4位}
func MaskToken(token string) string {
	if len(token) < 8 {
		return "****"
	}
	return "****" + token[len(token)-4:]
}
