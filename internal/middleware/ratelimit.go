package middleware

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	mgin "github.com/ulule/limiter/v3/drivers/middleware/gin"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

// RateLimit allows each client IP max requests per window. Counters live in
// process memory and expired ones are swept every window.
func RateLimit(max int, window time.Duration) gin.HandlerFunc {
	if max < 1 {
		max = 1
	}
	store := memory.NewStoreWithOptions(limiter.StoreOptions{
		Prefix:          "storefront",
		CleanUpInterval: window,
	})
	instance := limiter.New(store, limiter.Rate{Period: window, Limit: int64(max)})

	return mgin.NewMiddleware(instance,
		mgin.WithLimitReachedHandler(tooManyRequests),
		mgin.WithErrorHandler(rateLimitError),
	)
}

func tooManyRequests(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
		"success": false,
		"message": "Too many requests, please try again later",
	})
}

func rateLimitError(c *gin.Context, err error) {
	log.Printf("[RATELIMIT] [ERROR] %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
}
