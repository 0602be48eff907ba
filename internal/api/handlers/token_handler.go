package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/smsvault/smsvault/internal/events"
	"github.com/smsvault/smsvault/internal/models"
	"github.com/smsvault/smsvault/internal/token"
)

// TokenHandler Token 管理 HTTP 处理器
type TokenHandler struct {
	service      *token.Service
	eventService *events.Service
}

// NewTokenHandler 创建 TokenHandler 实例
func NewTokenHandler(service *token.Service, eventService *events.Service) *TokenHandler {
	return &TokenHandler{service: service, eventService: eventService}
}

// CreateToken 创建 Token
// POST /api/tokens
func (h *TokenHandler) CreateToken(c *gin.Context) {
	var req token.CreateTokenRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid request parameters",
				"details": err.Error(),
			},
		})
		return
	}

	tok, err := h.service.CreateToken(req.Name, req.CustomToken, req.Length)
	if err != nil {
		h.handleTokenError(c, err)
		return
	}

	h.logTokenEvent(models.EventTypeTokenCreated, "创建了新 Token", tok)

	// 返回响应（包含完整 Token，仅此一次）
	c.JSON(http.StatusCreated, token.ToTokenDTO(tok, true))
}

// ListTokens 获取 Token 列表（脱敏显示）
// GET /api/tokens
func (h *TokenHandler) ListTokens(c *gin.Context) {
	tokens, err := h.service.ListTokens()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": gin.H{
				"code":    "INTERNAL_ERROR",
				"message": "Failed to retrieve tokens",
			},
		})
		return
	}

	dtos := make([]*token.TokenDTO, len(tokens))
	for i, tok := range tokens {
		dtos[i] = token.ToTokenDTO(tok, false)
	}

	c.JSON(http.StatusOK, dtos)
}

// GetToken 获取单个 Token（包含完整 Token 值）
// GET /api/tokens/:id
func (h *TokenHandler) GetToken(c *gin.Context) {
	id, ok := parseTokenID(c)
	if !ok {
		return
	}

	tok, err := h.service.GetToken(id)
	if err != nil {
		h.handleTokenError(c, err)
		return
	}

	c.JSON(http.StatusOK, token.ToTokenDTO(tok, true))
}

// ToggleToken 切换启用/停用状态
// POST /api/tokens/:id/toggle
func (h *TokenHandler) ToggleToken(c *gin.Context) {
	id, ok := parseTokenID(c)
	if !ok {
		return
	}

	tok, err := h.service.ToggleToken(id)
	if err != nil {
		h.handleTokenError(c, err)
		return
	}

	c.JSON(http.StatusOK, token.ToTokenDTO(tok, false))
}

// ResetToken 重置 Token 值（旧值立即失效）
// POST /api/tokens/:id/reset
func (h *TokenHandler) ResetToken(c *gin.Context) {
	id, ok := parseTokenID(c)
	if !ok {
		return
	}

	var req token.ResetTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid request parameters",
				"details": err.Error(),
			},
		})
		return
	}

	tok, err := h.service.ResetToken(id, req.CustomToken, req.Length)
	if err != nil {
		h.handleTokenError(c, err)
		return
	}

	h.logTokenEvent(models.EventTypeTokenReset, "重置了 Token 值", tok)

	// 新值仅此一次完整返回
	c.JSON(http.StatusOK, token.ToTokenDTO(tok, true))
}

// DeleteToken 删除 Token
// DELETE /api/tokens/:id
func (h *TokenHandler) DeleteToken(c *gin.Context) {
	id, ok := parseTokenID(c)
	if !ok {
		return
	}

	if err := h.service.DeleteToken(id); err != nil {
		h.handleTokenError(c, err)
		return
	}

	if h.eventService != nil {
		_ = h.eventService.LogInfo(models.EventTypeTokenDeleted, "删除了 Token",
			map[string]interface{}{"id": id})
	}

	c.Status(http.StatusNoContent)
}

// parseTokenID 解析路径中的 Token ID，非法时直接写出 400
func parseTokenID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": gin.H{
				"code":    "INVALID_ID",
				"message": "Invalid token ID",
			},
		})
		return 0, false
	}
	return uint(id), true
}

// logTokenEvent 记录 Token 生命周期事件（尽力而为）
func (h *TokenHandler) logTokenEvent(eventType, message string, tok *models.AccessToken) {
	if h.eventService == nil {
		return
	}
	_ = h.eventService.LogInfo(eventType, message, map[string]interface{}{
		"id":   tok.ID,
		"name": tok.Name,
	})
}

// handleTokenError 处理 Token 相关错误
func (h *TokenHandler) handleTokenError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, token.ErrTokenNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": gin.H{
				"code":    "TOKEN_NOT_FOUND",
				"message": "Token not found",
			},
		})
	case errors.Is(err, token.ErrEmptyName):
		c.JSON(http.StatusBadRequest, gin.H{
			"error": gin.H{
				"code":    "EMPTY_NAME",
				"message": "Token name is required",
			},
		})
	case errors.Is(err, token.ErrTokenValueExists):
		c.JSON(http.StatusConflict, gin.H{
			"error": gin.H{
				"code":    "TOKEN_CONFLICT",
				"message": "Token already exists",
			},
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": gin.H{
				"code":    "INTERNAL_ERROR",
				"message": "Internal server error",
			},
		})
	}
}
