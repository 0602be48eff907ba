package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/smsvault/smsvault/internal/sms"
	"github.com/smsvault/smsvault/internal/token"
)

// ReceiveHandler 短信上报 HTTP 处理器
// 兼容 JSON 与表单两种编码，Token 校验在载荷解析后进行
// （Token 允许放在 query 或请求体里，query 优先）
type ReceiveHandler struct {
	ingestService *sms.IngestService
	tokenService  *token.Service
}

// NewReceiveHandler 创建 ReceiveHandler 实例
func NewReceiveHandler(ingestService *sms.IngestService, tokenService *token.Service) *ReceiveHandler {
	return &ReceiveHandler{ingestService: ingestService, tokenService: tokenService}
}

// Receive 接收一条上报短信
// POST /api/sms/receive
func (h *ReceiveHandler) Receive(c *gin.Context) {
	contentType := c.ContentType()

	payload, err := parsePayload(c, contentType)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "invalid body",
		})
		return
	}

	// 取 token：query 优先，其次载荷字段
	candidate := c.Query("token")
	if candidate == "" {
		candidate = payload["token"]
	}
	if candidate == "" {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error":   "missing token",
		})
		return
	}

	tok, err := h.tokenService.Validate(candidate)
	if err != nil {
		if errors.Is(err, token.ErrInvalidToken) {
			c.JSON(http.StatusForbidden, gin.H{
				"success": false,
				"error":   "invalid token",
			})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error":   "server error",
				"detail":  err.Error(),
			})
		}
		return
	}

	if _, err := h.ingestService.Ingest(payload); err != nil {
		var missing *sms.MissingParamsError
		if errors.As(err, &missing) {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error":   "missing params",
				"debug": gin.H{
					"got_keys":     missing.GotKeys,
					"content_type": contentType,
				},
			})
			return
		}

		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "server error",
			"detail":  err.Error(),
		})
		return
	}

	// 入库成功后更新 Token 最后使用时间
	h.tokenService.Touch(tok.ID)

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// parsePayload 按 Content-Type 解析请求体为统一的键值载荷
// JSON 解析失败时不报错，退回表单字段（与宽容接收的目标一致）
func parsePayload(c *gin.Context, contentType string) (sms.Payload, error) {
	var jsonFields map[string]interface{}

	if strings.Contains(contentType, "application/json") {
		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			return nil, err
		}
		if len(body) > 0 {
			// 非法 JSON 静默忽略，只用表单/查询里的字段
			_ = json.Unmarshal(body, &jsonFields)
		}
	} else {
		// 表单（含 multipart）统一解析；非 multipart 时内部退化为 ParseForm
		if err := c.Request.ParseMultipartForm(32 << 20); err != nil && !errors.Is(err, http.ErrNotMultipart) {
			return nil, err
		}
	}

	return sms.MergePayload(jsonFields, c.Request.PostForm), nil
}
