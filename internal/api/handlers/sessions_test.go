package handlers

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestSessionStore(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	s := NewSessionStore(30*time.Minute, 5)
	s.now = func() time.Time { return now }

	first := s.Get("a")
	assert.Same(t, first, s.Get("a"))
	s.Get("b")
	assert.Equal(t, 2, s.Len())

	now = now.Add(20 * time.Minute)
	assert.Same(t, first, s.Get("a"))

	now = now.Add(20 * time.Minute)
	assert.Equal(t, 1, s.Sweep())
	assert.Equal(t, 1, s.Len())

	now = now.Add(31 * time.Minute)
	assert.NotSame(t, first, s.Get("a"))
}

func TestSessionID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	newContext := func(header string) *gin.Context {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest("POST", "/api/ask", nil)
		c.Request.Header.Set("User-Agent", "test-agent")
		if header != "" {
			c.Request.Header.Set(SessionHeader, header)
		}
		return c
	}

	assert.Equal(t, "0123456789abcdef", sessionID(newContext("0123456789abcdef")))

	fingerprint := sessionID(newContext(""))
	assert.Len(t, fingerprint, 16)
	assert.Equal(t, fingerprint, sessionID(newContext("../../etc/passwd")))
}
