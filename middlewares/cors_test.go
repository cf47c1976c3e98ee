package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func corsHeaders(middleware gin.HandlerFunc) http.Header {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware)
	r.GET("/", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	req, _ := http.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w.Header()
}

func TestCORSOriginFromEnvironment(t *testing.T) {
	t.Setenv("CORS_ORIGIN", "https://app.example.com")

	headers := corsHeaders(CORSMiddlewares())
	assert.Equal(t, "https://app.example.com", headers.Get("Access-Control-Allow-Origin"))
}

func TestCORSOriginDefault(t *testing.T) {
	t.Setenv("CORS_ORIGIN", "")

	headers := corsHeaders(CORSMiddlewares())
	assert.Equal(t, "http://127.0.0.1:5500", headers.Get("Access-Control-Allow-Origin"))
}
