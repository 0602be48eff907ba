package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/smsvault/smsvault/internal/models"
	"github.com/smsvault/smsvault/internal/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupAuthTest(t *testing.T) (*gin.Engine, *token.Service, *gorm.DB) {
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.AccessToken{}))

	repo := token.NewRepository(db)
	service := token.NewService(repo)

	router := gin.New()
	router.GET("/protected", TokenAuth(service), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	return router, service, db
}

func TestTokenAuth_QueryParam(t *testing.T) {
	router, service, _ := setupAuthTest(t)

	tok, err := service.CreateToken("Reader", "", 0)
	require.NoError(t, err)

	req, _ := http.NewRequest("GET", "/protected?token="+tok.Token, nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusOK, resp.Code)
}

func TestTokenAuth_BearerHeader(t *testing.T) {
	router, service, _ := setupAuthTest(t)

	tok, err := service.CreateToken("Reader", "", 0)
	require.NoError(t, err)

	req, _ := http.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+tok.Token)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusOK, resp.Code)
}

func TestTokenAuth_QueryWinsOverHeader(t *testing.T) {
	router, service, _ := setupAuthTest(t)

	tok, err := service.CreateToken("Reader", "", 0)
	require.NoError(t, err)

	// query 里的无效值优先生效，即使头里有合法值
	req, _ := http.NewRequest("GET", "/protected?token=bogus", nil)
	req.Header.Set("Authorization", "Bearer "+tok.Token)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusForbidden, resp.Code)
}

func TestTokenAuth_Missing(t *testing.T) {
	router, _, _ := setupAuthTest(t)

	req, _ := http.NewRequest("GET", "/protected", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusUnauthorized, resp.Code)
	assert.Contains(t, resp.Body.String(), "missing_token")
}

func TestTokenAuth_Invalid(t *testing.T) {
	router, _, _ := setupAuthTest(t)

	req, _ := http.NewRequest("GET", "/protected?token=no-such-token", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusForbidden, resp.Code)
	assert.Contains(t, resp.Body.String(), "invalid_token")
}

func TestTokenAuth_DisabledToken(t *testing.T) {
	router, service, db := setupAuthTest(t)

	tok, err := service.CreateToken("Reader", "", 0)
	require.NoError(t, err)

	// 停用后同一个值必须拒绝
	require.NoError(t, db.Model(&models.AccessToken{}).
		Where("id = ?", tok.ID).Update("enabled", false).Error)

	req, _ := http.NewRequest("GET", "/protected?token="+tok.Token, nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusForbidden, resp.Code)
}

func TestTokenAuth_TouchesLastUsed(t *testing.T) {
	router, service, db := setupAuthTest(t)

	tok, err := service.CreateToken("Reader", "", 0)
	require.NoError(t, err)

	req, _ := http.NewRequest("GET", "/protected?token="+tok.Token, nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	require.Equal(t, http.StatusOK, resp.Code)

	var found models.AccessToken
	require.NoError(t, db.First(&found, tok.ID).Error)
	assert.NotNil(t, found.LastUsedAt)
}

func TestAdminAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.GET("/admin", AdminAuth("secret-admin-token"), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	// 缺少凭证
	req, _ := http.NewRequest("GET", "/admin", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	assert.Equal(t, http.StatusUnauthorized, resp.Code)

	// 错误凭证
	req, _ = http.NewRequest("GET", "/admin", nil)
	req.Header.Set("Authorization", "Bearer wrong")
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	assert.Equal(t, http.StatusForbidden, resp.Code)

	// 正确凭证
	req, _ = http.NewRequest("GET", "/admin", nil)
	req.Header.Set("Authorization", "Bearer secret-admin-token")
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	assert.Equal(t, http.StatusOK, resp.Code)
}

func TestAdminAuth_DisabledWhenUnset(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.GET("/admin", AdminAuth(""), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	req, _ := http.NewRequest("GET", "/admin", nil)
	req.Header.Set("Authorization", "Bearer anything")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusForbidden, resp.Code)
}
