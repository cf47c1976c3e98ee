package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newLimitedRouter(limit, intervalSec int) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	rl := NewRateLimiter(limit, intervalSec)
	r.Use(rl.RateLimit())
	r.GET("/limited", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "ok"})
	})
	return r
}

func hitLimited(r *gin.Engine, ip string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest("GET", "/limited", nil)
	req.RemoteAddr = ip + ":12345"
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRateLimitBlocksAfterThreshold(t *testing.T) {
	r := newLimitedRouter(3, 60)

	for i := 0; i < 3; i++ {
		w := hitLimited(r, "10.0.0.1")
		assert.Equal(t, http.StatusOK, w.Code, "request %d within limit", i+1)
	}

	w := hitLimited(r, "10.0.0.1")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}

func TestRateLimitIsPerIP(t *testing.T) {
	r := newLimitedRouter(2, 60)

	hitLimited(r, "10.0.0.1")
	hitLimited(r, "10.0.0.1")
	assert.Equal(t, http.StatusTooManyRequests, hitLimited(r, "10.0.0.1").Code)

	// IP lain punya kuota sendiri
	assert.Equal(t, http.StatusOK, hitLimited(r, "10.0.0.2").Code)
}
