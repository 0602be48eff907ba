package token

import (
	"errors"
	"time"

	"github.com/smsvault/smsvault/internal/models"
	"gorm.io/gorm"
)

var (
	// ErrTokenNotFound Token 不存在
	ErrTokenNotFound = errors.New("token not found")
	// ErrTokenValueExists Token 值已存在
	ErrTokenValueExists = errors.New("token value already exists")
)

// Repository Token 数据访问层
type Repository struct {
	db *gorm.DB
}

// NewRepository 创建 Repository 实例
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create 创建 Token
func (r *Repository) Create(token *models.AccessToken) error {
	// 使用 Select 明确指定要保存的字段，包括零值字段
	return r.db.Select("Name", "Token", "Enabled", "CreatedAt").Create(token).Error
}

// FindByID 根据 ID 查找 Token
func (r *Repository) FindByID(id uint) (*models.AccessToken, error) {
	var token models.AccessToken
	err := r.db.First(&token, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTokenNotFound
		}
		return nil, err
	}
	return &token, nil
}

// FindEnabledByValue 根据 Token 值查找已启用的 Token
// 停用的 Token 即使值匹配也视为不存在
func (r *Repository) FindEnabledByValue(tokenValue string) (*models.AccessToken, error) {
	var token models.AccessToken
	err := r.db.Where("token = ? AND enabled = ?", tokenValue, true).First(&token).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTokenNotFound
		}
		return nil, err
	}
	return &token, nil
}

// FindAll 查找所有 Token（新建的在前）
func (r *Repository) FindAll() ([]*models.AccessToken, error) {
	var tokens []*models.AccessToken
	err := r.db.Order("id DESC").Find(&tokens).Error
	if err != nil {
		return nil, err
	}
	return tokens, nil
}

// Delete 删除 Token
func (r *Repository) Delete(id uint) error {
	result := r.db.Delete(&models.AccessToken{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTokenNotFound
	}
	return nil
}

// CheckValueExists 检查 Token 值是否存在
func (r *Repository) CheckValueExists(tokenValue string) (bool, error) {
	var count int64
	err := r.db.Model(&models.AccessToken{}).Where("token = ?", tokenValue).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// UpdateEnabled 更新启用状态
func (r *Repository) UpdateEnabled(id uint, enabled bool) error {
	result := r.db.Model(&models.AccessToken{}).Where("id = ?", id).Update("enabled", enabled)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTokenNotFound
	}
	return nil
}

// UpdateValue 替换 Token 值并重置创建时间
func (r *Repository) UpdateValue(id uint, tokenValue string) error {
	result := r.db.Model(&models.AccessToken{}).Where("id = ?", id).Updates(map[string]interface{}{
		"token":      tokenValue,
		"created_at": time.Now(),
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTokenNotFound
	}
	return nil
}

// UpdateLastUsed 更新最后使用时间
func (r *Repository) UpdateLastUsed(id uint, at time.Time) error {
	return r.db.Model(&models.AccessToken{}).Where("id = ?", id).Update("last_used_at", at).Error
}
