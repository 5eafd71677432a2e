package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luoyx/content_ai_server/internal/pkg/jwt"
	"github.com/luoyx/content_ai_server/internal/pkg/response"
)

func init() {
	gin.SetMode(gin.TestMode)
}

const testJWTSecret = "test-secret-key-for-middleware"

func parseResponse(t *testing.T, w *httptest.ResponseRecorder) response.Response {
	var resp response.Response
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err)
	return resp
}

func authRouter() *gin.Engine {
	router := gin.New()
	router.Use(Auth(testJWTSecret))
	router.GET("/test", func(c *gin.Context) {
		userID, _ := GetUserID(c)
		c.JSON(http.StatusOK, gin.H{"user_id": userID})
	})
	return router
}

func authRequest(router *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("GET", "/test", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAuth_Success(t *testing.T) {
	token, err := jwt.GenerateToken(123, testJWTSecret, 24)
	require.NoError(t, err)

	w := authRequest(authRouter(), "Bearer "+token)

	assert.Equal(t, http.StatusOK, w.Code)

	var result map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, float64(123), result["user_id"])
}

func TestAuth_Rejections(t *testing.T) {
	wrongSecretToken, err := jwt.GenerateToken(123, "different-secret", 24)
	require.NoError(t, err)

	// expireHours 为 0 即签发时已过期
	expiredToken, err := jwt.GenerateToken(123, testJWTSecret, 0)
	require.NoError(t, err)

	tests := []struct {
		name       string
		authHeader string
	}{
		{"缺少认证头", ""},
		{"没有 Bearer 前缀", "some-token-without-bearer"},
		{"token 非法", "Bearer invalid-token"},
		{"密钥不匹配", "Bearer " + wrongSecretToken},
		{"token 已过期", "Bearer " + expiredToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := authRequest(authRouter(), tt.authHeader)

			resp := parseResponse(t, w)
			assert.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, response.CodeAuthFailed, resp.Code)
		})
	}
}

func TestGetUserID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	userID, ok := GetUserID(c)
	assert.False(t, ok)
	assert.Equal(t, int64(0), userID)

	c.Set(UserIDKey, int64(789))
	userID, ok = GetUserID(c)
	assert.True(t, ok)
	assert.Equal(t, int64(789), userID)
}

func TestGetUserID_WrongType(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Set(UserIDKey, "not-an-int64")

	userID, ok := GetUserID(c)
	assert.False(t, ok)
	assert.Equal(t, int64(0), userID)
}
