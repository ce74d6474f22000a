package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warehouse/backend/internal/interfaces/http/dto"
)

func TestBodyLimit(t *testing.T) {
	t.Run("allows body within limit", func(t *testing.T) {
		engine := newMiddlewareRouter(BodyLimit(64))

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/ping", bytes.NewReader([]byte("small")))
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("rejects oversized body with the standard envelope", func(t *testing.T) {
		gin.SetMode(gin.TestMode)
		engine := gin.New()
		engine.Use(RequestID(), BodyLimit(8))
		engine.POST("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })

		body := strings.Repeat("x", 64)
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/ping", strings.NewReader(body))
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)

		var resp dto.Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.False(t, resp.Success)
		require.NotNil(t, resp.Error)
		assert.Equal(t, dto.ErrCodeRequestTooLarge, resp.Error.Code)
		assert.Equal(t, w.Header().Get("X-Request-ID"), resp.Error.RequestID)
	})
}
