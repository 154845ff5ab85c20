package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestSubmitRateLimitDisabledWithoutRedis(t *testing.T) {
	r := gin.New()
	r.POST("/issues", SubmitRateLimit(nil, 20), func(c *gin.Context) {
		c.JSON(http.StatusCreated, gin.H{"ok": true})
	})

	req, _ := http.NewRequest(http.MethodPost, "/issues", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected passthrough without redis, got %d", w.Code)
	}
}
