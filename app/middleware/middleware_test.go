package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"studymanager/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestCompressBody(t *testing.T) {
	assert.Equal(t, "", CompressBody(""))
	assert.Equal(t, `{"a":1,"b":[1,2]}`, CompressBody("{\n  \"a\": 1,\n  \"b\": [1, 2]\n}"))

	long := `"` + strings.Repeat("x", 2000) + `"`
	compressed := CompressBody(long)
	assert.Len(t, compressed, maxLoggedBody+3)
	assert.True(t, strings.HasSuffix(compressed, "..."))
}

func TestRequestID_GeneratesAndPropagates(t *testing.T) {
	engine := gin.New()
	engine.Use(RequestID())
	var seen string
	engine.GET("/", func(c *gin.Context) {
		seen = logger.TraceID(c.Request.Context())
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	require.NotEmpty(t, w.Header().Get(RequestIDHeader))
	assert.Equal(t, w.Header().Get(RequestIDHeader), seen)
	assert.Len(t, seen, 36)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "caller-id")
	w = httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	assert.Equal(t, "caller-id", w.Header().Get(RequestIDHeader))
	assert.Equal(t, "caller-id", seen)
}

func TestAuthMiddleware(t *testing.T) {
	newEngine := func(key string) *gin.Engine {
		engine := gin.New()
		engine.Use(AuthMiddleware(key))
		engine.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })
		return engine
	}

	w := httptest.NewRecorder()
	newEngine("").ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	newEngine("secret").ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Authorization", "Bearer secret")
	w = httptest.NewRecorder()
	newEngine("secret").ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRecovery(t *testing.T) {
	engine := gin.New()
	engine.Use(Recovery())
	engine.GET("/panic", func(c *gin.Context) { panic("boom") })

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Internal Server Error")
	assert.NotContains(t, w.Body.String(), "stack")
}

func TestLogger_PreservesBody(t *testing.T) {
	engine := gin.New()
	engine.Use(Logger("/health"))
	var got string
	engine.POST("/echo", func(c *gin.Context) {
		data, _ := c.GetRawData()
		got = string(data)
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader(`{"task_name": "t"}`)))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `{"task_name": "t"}`, got)
}
