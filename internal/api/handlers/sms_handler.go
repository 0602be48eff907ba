package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/smsvault/smsvault/internal/events"
	"github.com/smsvault/smsvault/internal/models"
	"github.com/smsvault/smsvault/internal/purge"
	"github.com/smsvault/smsvault/internal/sms"
)

// 清空操作的防重放令牌会话键
// 管理端只有一个认证主体，对应单一会话
const purgeSession = "admin"

// SmsHandler 短信列表与清空 HTTP 处理器
type SmsHandler struct {
	repo         *sms.Repository
	purgeGuard   *purge.Guard
	eventService *events.Service
}

// NewSmsHandler 创建 SmsHandler 实例
func NewSmsHandler(repo *sms.Repository, purgeGuard *purge.Guard, eventService *events.Service) *SmsHandler {
	return &SmsHandler{repo: repo, purgeGuard: purgeGuard, eventService: eventService}
}

// List 按条件分页查询短信
// GET /api/sms?device=&phone=&q=&from=&to=&sort=time&dir=desc&page=1&pp=50
func (h *SmsHandler) List(c *gin.Context) {
	query := &sms.ListQuery{
		Device:   c.Query("device"),
		Phone:    c.Query("phone"),
		Content:  c.Query("q"),
		From:     c.Query("from"),
		To:       c.Query("to"),
		Dir:      c.Query("dir"),
		Page:     atoiOrZero(c.Query("page")),
		PageSize: atoiOrZero(c.Query("pp")),
	}
	// sort 参数目前只支持 time，其他值同样按接收时间排序
	query.Normalize()

	records, total, err := h.repo.Search(query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "server_error",
			"message": "查询短信失败",
			"detail":  err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, sms.ToListResult(records, total, query))
}

// Devices 返回出现过的设备名（筛选下拉数据源）
// GET /api/sms/devices
func (h *SmsHandler) Devices(c *gin.Context) {
	devices, err := h.repo.Devices()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "server_error",
			"message": "查询设备列表失败",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"devices": devices})
}

// PurgeToken 为当前管理会话签发清空操作的一次性令牌
// GET /api/sms/purge-token
func (h *SmsHandler) PurgeToken(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"purge_token": h.purgeGuard.Issue(purgeSession),
	})
}

// PurgeRequest 清空请求
type PurgeRequest struct {
	PurgeToken string `json:"purge_token"`
}

// Purge 删除所有短信记录（不可恢复）
// POST /api/sms/purge，需携带最近一次签发的一次性令牌
func (h *SmsHandler) Purge(c *gin.Context) {
	var req PurgeRequest
	// 请求体缺失或格式错误按空令牌处理，照样消耗当前令牌
	_ = c.ShouldBindJSON(&req)

	if !h.purgeGuard.Validate(purgeSession, req.PurgeToken) {
		c.JSON(http.StatusForbidden, gin.H{
			"error": gin.H{
				"code":    "PURGE_TOKEN_MISMATCH",
				"message": "Purge token missing, stale or already used",
			},
		})
		return
	}

	purged, err := h.repo.PurgeAll()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": gin.H{
				"code":    "INTERNAL_ERROR",
				"message": "Failed to purge records",
			},
		})
		return
	}

	if h.eventService != nil {
		_ = h.eventService.LogWarning(models.EventTypePurge,
			"已删除所有短信记录", map[string]interface{}{"purged": purged})
	}

	c.JSON(http.StatusOK, gin.H{"purged": purged})
}

// atoiOrZero 宽容解析整数参数，非法值按 0 处理
func atoiOrZero(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}
