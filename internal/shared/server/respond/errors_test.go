package respond

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"goal-detector/internal/shared/telemetry"
)

func TestErrorEnvelopeAndLogLevel(t *testing.T) {
	gin.SetMode(gin.TestMode)
	core, logs := observer.New(zapcore.DebugLevel)
	prev := telemetry.SetLogger(zap.New(core))
	t.Cleanup(func() { telemetry.SetLogger(prev) })

	tests := []struct {
		status int
		level  zapcore.Level
	}{
		{http.StatusBadRequest, zapcore.WarnLevel},
		{http.StatusInternalServerError, zapcore.ErrorLevel},
	}
	for _, tc := range tests {
		logs.TakeAll()
		router := gin.New()
		router.GET("/x/:id", func(c *gin.Context) {
			c.Set("requestId", "req-9")
			c.Set("roadmapId", c.Param("id"))
			Error(c, tc.status, "some_code", "went wrong", gin.H{"field": "interests"})
		})

		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/x/rm-2", nil))
		require.Equal(t, tc.status, resp.Code)

		var body ErrorResponse
		require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
		assert.Equal(t, "some_code", body.Error.Code)
		assert.Equal(t, "went wrong", body.Error.Message)
		assert.Equal(t, map[string]any{"field": "interests"}, body.Error.Details)

		entries := logs.FilterMessage("http.error").All()
		require.Len(t, entries, 1)
		assert.Equal(t, tc.level, entries[0].Level)
		fields := entries[0].ContextMap()
		assert.Equal(t, "req-9", fields["request_id"])
		assert.Equal(t, "rm-2", fields["roadmap_id"])
	}
}

func TestErrorOmitsEmptyDetails(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/", func(c *gin.Context) {
		Error(c, http.StatusNotFound, "not_found", "roadmap not found", nil)
	})
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.JSONEq(t, `{"error":{"code":"not_found","message":"roadmap not found"}}`, resp.Body.String())
}
