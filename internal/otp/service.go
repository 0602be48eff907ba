package otp

import (
	"errors"

	"github.com/smsvault/smsvault/internal/sms"
)

// ErrNoCodeFound 没有符合条件的验证码短信
// 属于正常业务结果而非故障
var ErrNoCodeFound = errors.New("no verification code found")

// CodeResult 最新验证码查询结果
type CodeResult struct {
	Phone   string `json:"phone"`
	Code    string `json:"code"`
	Content string `json:"content"`
	Time    string `json:"time"`
}

// Service 验证码提取业务逻辑层
// 两阶段筛选：仓库层廉价粗筛限定候选集，再做严格关键词与数字串提取
type Service struct {
	repo *sms.Repository
}

// NewService 创建 Service 实例
func NewService(repo *sms.Repository) *Service {
	return &Service{repo: repo}
}

// LatestCode 返回最新一条可提取验证码的短信
// 候选按接收时间降序逐条检查，命中即停；
// 关键词命中但提取不到独立数字串的继续看更早的候选
func (s *Service) LatestCode() (*CodeResult, error) {
	candidates, err := s.repo.RecentKeywordCandidates(sms.CandidateLimit)
	if err != nil {
		return nil, err
	}

	for _, record := range candidates {
		if !ContainsKeyword(record.Content) {
			continue
		}

		code, ok := ExtractCode(record.Content)
		if !ok {
			continue
		}

		return &CodeResult{
			Phone:   record.Phone,
			Code:    code,
			Content: record.Content,
			Time:    record.ReceivedAt.Format(sms.TimeLayout),
		}, nil
	}

	return nil, ErrNoCodeFound
}
