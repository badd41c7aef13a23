package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestErrorLogger(t *testing.T) {
	gin.SetMode(gin.TestMode)

	core, logs := observer.New(zap.ErrorLevel)
	router := gin.New()
	router.Use(ErrorLogger(zap.New(core)))
	router.GET("/boom", func(c *gin.Context) {
		_ = c.Error(errors.New("storage offline"))
		c.Status(http.StatusServiceUnavailable)
	})
	router.GET("/device", func(c *gin.Context) {
		c.Set(ContextDeviceIDKey, "device-7")
		_ = c.Error(errors.New("lookup timed out"))
		c.Status(http.StatusBadGateway)
	})
	router.GET("/fine", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/fine", nil))
	assert.Equal(t, 0, logs.Len())

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/boom", nil))
	require.Equal(t, 1, logs.Len())

	entry := logs.All()[0]
	assert.Equal(t, "request failed", entry.Message)
	assert.Equal(t, "/boom", entry.ContextMap()["path"])
	assert.Equal(t, int64(http.StatusServiceUnavailable), entry.ContextMap()["status"])
	assert.Equal(t, "storage offline", entry.ContextMap()["error"])
	assert.NotContains(t, entry.ContextMap(), "device_id")

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/device", nil))
	require.Equal(t, 2, logs.Len())
	assert.Equal(t, "device-7", logs.All()[1].ContextMap()["device_id"])
}
