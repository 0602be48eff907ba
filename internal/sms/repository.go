package sms

import (
	"fmt"

	"github.com/smsvault/smsvault/internal/models"
	"gorm.io/gorm"
)

// 验证码消息粗筛的候选上限
const CandidateLimit = 100

// Repository 短信记录数据访问层
type Repository struct {
	db *gorm.DB
}

// NewRepository 创建 Repository 实例
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Insert 写入一条短信记录
func (r *Repository) Insert(record *models.SmsRecord) error {
	return r.db.Select("Phone", "Content", "ReceivedAt", "Device").Create(record).Error
}

// Search 按条件查询短信（返回当前页数据与总数）
func (r *Repository) Search(q *ListQuery) ([]*models.SmsRecord, int64, error) {
	query := r.applyFilters(r.db.Model(&models.SmsRecord{}), q)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var records []*models.SmsRecord
	order := fmt.Sprintf("received_at %s", q.Dir)
	err := query.Order(order).Offset(q.Offset()).Limit(q.PageSize).Find(&records).Error
	if err != nil {
		return nil, 0, err
	}

	return records, total, nil
}

// applyFilters 构建与关系的筛选条件
func (r *Repository) applyFilters(query *gorm.DB, q *ListQuery) *gorm.DB {
	if q.Device != "" {
		query = query.Where("device = ?", q.Device)
	}
	if q.Phone != "" {
		query = query.Where("phone LIKE ?", "%"+q.Phone+"%")
	}
	if q.Content != "" {
		query = query.Where("content LIKE ?", "%"+q.Content+"%")
	}
	if q.From != "" {
		if from, ok := dayStart(q.From); ok {
			query = query.Where("received_at >= ?", from)
		}
	}
	if q.To != "" {
		if to, ok := dayEnd(q.To); ok {
			query = query.Where("received_at <= ?", to)
		}
	}
	return query
}

// RecentKeywordCandidates 粗筛最近可能含验证码的短信
// 只做廉价的子串匹配以限定候选集，精确判断由 otp 包完成
// SQLite 的 LIKE 对 ASCII 大小写不敏感，'%code%' 同时覆盖 Code/CODE
func (r *Repository) RecentKeywordCandidates(limit int) ([]*models.SmsRecord, error) {
	if limit <= 0 {
		limit = CandidateLimit
	}

	var records []*models.SmsRecord
	err := r.db.
		Where("content LIKE ? OR content LIKE ?", "%验证码%", "%code%").
		Order("received_at DESC").
		Limit(limit).
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

// Devices 返回出现过的设备名（去重、非空、升序）
func (r *Repository) Devices() ([]string, error) {
	var devices []string
	err := r.db.Model(&models.SmsRecord{}).
		Distinct("device").
		Where("device <> ''").
		Order("device ASC").
		Pluck("device", &devices).Error
	if err != nil {
		return nil, err
	}
	return devices, nil
}

// Count 短信总数
func (r *Repository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.SmsRecord{}).Count(&count).Error
	return count, err
}

// PurgeAll 删除所有短信记录（不可恢复）
func (r *Repository) PurgeAll() (int64, error) {
	result := r.db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.SmsRecord{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
