package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestInitializeWithWriter_TeesJSONToWriter(t *testing.T) {
	var buf bytes.Buffer
	l := InitializeWithWriter("production", &buf)
	t.Cleanup(func() { Log = zap.NewNop() })

	Info(WithRequestID(context.Background(), "req-1"), "order submitted")
	_ = l.Sync()

	line := strings.TrimSpace(buf.String())
	require.NotEmpty(t, line)
	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(line), &entry))
	assert.Equal(t, "order submitted", entry["msg"])
	assert.Equal(t, "req-1", entry["request_id"])
	assert.Equal(t, "info", entry["level"])
	assert.Contains(t, entry, "timestamp")
}

func TestGetRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/", nil)
	assert.Equal(t, "unknown", getRequestID(c))

	c.Set(RequestIDKey, "abc")
	assert.Equal(t, "abc", getRequestID(c))

	assert.Equal(t, "unknown", getRequestID(context.Background()))
}
