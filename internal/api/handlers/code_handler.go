package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/smsvault/smsvault/internal/otp"
)

// CodeHandler 最新验证码查询 HTTP 处理器
type CodeHandler struct {
	service *otp.Service
}

// NewCodeHandler 创建 CodeHandler 实例
func NewCodeHandler(service *otp.Service) *CodeHandler {
	return &CodeHandler{service: service}
}

// Latest 返回最新一条可提取验证码的短信
// GET /api/code/latest
func (h *CodeHandler) Latest(c *gin.Context) {
	result, err := h.service.LatestCode()
	if err != nil {
		if errors.Is(err, otp.ErrNoCodeFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error":   "not_found",
				"message": "未找到包含验证码关键词且可提取4-6位数字的最新短信",
			})
			return
		}

		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "server_error",
			"message": "查询或解析失败",
			"detail":  err.Error(),
		})
		return
	}

	c.Header("Cache-Control", "no-store")
	c.JSON(http.StatusOK, result)
}
