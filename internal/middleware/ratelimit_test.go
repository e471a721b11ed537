package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func limitedRouter(max int, window time.Duration) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RateLimit(max, window))
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	return r
}

func hitFrom(r *gin.Engine, ip string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = ip + ":40000"
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestRateLimitPerClient(t *testing.T) {
	r := limitedRouter(3, time.Hour)

	for i := 0; i < 3; i++ {
		rec := hitFrom(r, "10.0.0.1")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "3", rec.Header().Get("X-RateLimit-Limit"))
	}
	assert.Equal(t, http.StatusTooManyRequests, hitFrom(r, "10.0.0.1").Code)
	assert.Equal(t, http.StatusOK, hitFrom(r, "10.0.0.2").Code, "other clients have their own budget")
}

func TestRateLimitWindowResets(t *testing.T) {
	r := limitedRouter(1, 50*time.Millisecond)

	assert.Equal(t, http.StatusOK, hitFrom(r, "10.0.0.1").Code)
	assert.Equal(t, http.StatusTooManyRequests, hitFrom(r, "10.0.0.1").Code)

	time.Sleep(80 * time.Millisecond)
	assert.Equal(t, http.StatusOK, hitFrom(r, "10.0.0.1").Code)
}

func TestRateLimitClampsMax(t *testing.T) {
	r := limitedRouter(0, time.Hour)

	assert.Equal(t, http.StatusOK, hitFrom(r, "10.0.0.1").Code)
	assert.Equal(t, http.StatusTooManyRequests, hitFrom(r, "10.0.0.1").Code)
}

func TestRateLimitRespondsTooManyRequests(t *testing.T) {
	r := limitedRouter(1, time.Hour)

	assert.Equal(t, http.StatusOK, hitFrom(r, "10.0.0.9").Code)

	rec := hitFrom(r, "10.0.0.9")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.JSONEq(t, `{"success":false,"message":"Too many requests, please try again later"}`, rec.Body.String())
}

func TestCORSAllowsListedOriginWithCredentials(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(CORS([]string{"http://localhost:5173"}))
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, "ok") })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "http://evil.test")
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestSecureHeaders(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(SecureHeaders(false))
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, "ok") })

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
}
