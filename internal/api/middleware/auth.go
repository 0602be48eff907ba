package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/smsvault/smsvault/internal/token"
)

// ContextKeyToken 认证通过后存入请求上下文的 Token 记录
const ContextKeyToken = "access_token"

// ExtractBearerToken 从 Authorization 头解析 Bearer Token
func ExtractBearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return ""
	}
	if len(authHeader) >= 7 && strings.EqualFold(authHeader[:7], "Bearer ") {
		return strings.TrimSpace(authHeader[7:])
	}
	return strings.TrimSpace(authHeader)
}

// TokenAuth 读取端 Token 验证中间件
// 取值顺序：query 参数 token 优先，其次 Authorization: Bearer；
// 不接受任何登录会话作为凭证
func TokenAuth(tokenService *token.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		candidate := c.Query("token")
		if candidate == "" {
			candidate = ExtractBearerToken(c)
		}

		if candidate == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "missing_token",
				"message": "需要 token 参数或 Authorization: Bearer",
			})
			c.Abort()
			return
		}

		tok, err := tokenService.Validate(candidate)
		if err != nil {
			if errors.Is(err, token.ErrInvalidToken) {
				c.JSON(http.StatusForbidden, gin.H{
					"error":   "invalid_token",
					"message": "Token 无效或已停用",
				})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{
					"error":   "auth_failed",
					"message": "Token 校验失败",
				})
			}
			c.Abort()
			return
		}

		// 更新最近使用时间（尽力而为，不影响主流程）
		tokenService.Touch(tok.ID)

		c.Set(ContextKeyToken, tok)
		c.Next()
	}
}

// AdminAuth 管理接口验证中间件
// 校验配置中的管理员 Bearer Token；未配置时管理接口整体关闭
func AdminAuth(adminToken string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if adminToken == "" {
			c.JSON(http.StatusForbidden, gin.H{
				"error": gin.H{
					"code":    "ADMIN_DISABLED",
					"message": "Admin API is disabled",
				},
			})
			c.Abort()
			return
		}

		candidate := ExtractBearerToken(c)
		if candidate == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": gin.H{
					"code":    "MISSING_AUTH_HEADER",
					"message": "Missing authorization header",
				},
			})
			c.Abort()
			return
		}

		if candidate != adminToken {
			c.JSON(http.StatusForbidden, gin.H{
				"error": gin.H{
					"code":    "INVALID_ADMIN_TOKEN",
					"message": "Invalid admin token",
				},
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
