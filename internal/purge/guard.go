package purge

import (
	"sync"

	"github.com/google/uuid"
)

// Guard 清空操作的一次性防重放令牌
// 每个会话持有一个服务端随机值，任何一次校验（无论成败）后立即轮换，
// 被截获的旧值无法重放
type Guard struct {
	mu     sync.Mutex
	nonces map[string]string
}

// NewGuard 创建 Guard 实例
func NewGuard() *Guard {
	return &Guard{nonces: make(map[string]string)}
}

// Issue 为会话签发新的一次性令牌（替换旧值）
func (g *Guard) Issue(session string) string {
	g.mu.Lock()
	defer g.mu.Unlock()

	nonce := uuid.NewString()
	g.nonces[session] = nonce
	return nonce
}

// Validate 校验会话提交的令牌
// 精确匹配当前值才通过；校验后无条件轮换
func (g *Guard) Validate(session, candidate string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	current, issued := g.nonces[session]
	ok := issued && candidate != "" && candidate == current

	g.nonces[session] = uuid.NewString()
	return ok
}
