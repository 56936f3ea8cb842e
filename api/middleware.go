package api

import (
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

func CORS() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")
		c.Header("Access-Control-Max-Age", "86400")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusOK)
			return
		}

		c.Next()
	}
}

func RequestSizeLimit() gin.HandlerFunc {
	return RequestSizeLimitWithSize(1024 * 1024)
}

func RequestSizeLimitWithSize(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodPost ||
			c.Request.Method == http.MethodPut ||
			c.Request.Method == http.MethodPatch {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		}
		c.Next()
	}
}

// clientLimiter holds a rate limiter and the unix-nano time it last served
// a request. lastSeen is atomic because the eviction goroutine reads it
// while request handlers write it.
type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen atomic.Int64
}

// rateLimitRegistry tracks per-client limiters and evicts idle ones
// in the background.
type rateLimitRegistry struct {
	clients sync.Map
	stop    chan struct{}
	once    sync.Once
}

func newRateLimitRegistry() *rateLimitRegistry {
	return &rateLimitRegistry{stop: make(chan struct{})}
}

// Middleware returns a handler that throttles each client IP to rps
// requests per second with the given burst.
func (r *rateLimitRegistry) Middleware(rps, burst int) gin.HandlerFunc {
	r.once.Do(func() {
		go r.evictIdle()
	})

	return func(c *gin.Context) {
		clientIP := c.ClientIP()

		entry, _ := r.clients.LoadOrStore(clientIP, &clientLimiter{
			limiter: rate.NewLimiter(rate.Every(time.Second/time.Duration(rps)), burst),
		})

		cl := entry.(*clientLimiter)
		cl.lastSeen.Store(time.Now().UnixNano())

		if !cl.limiter.Allow() {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error": "Rate limit exceeded. Please slow down your requests.",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}

// Close stops the background eviction goroutine.
func (r *rateLimitRegistry) Close() {
	close(r.stop)
}

func (r *rateLimitRegistry) evictIdle() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			now := time.Now()
			r.clients.Range(func(key, value interface{}) bool {
				cl := value.(*clientLimiter)
				if now.Sub(time.Unix(0, cl.lastSeen.Load())) > 10*time.Minute {
					r.clients.Delete(key)
				}
				return true
			})
		case <-r.stop:
			return
		}
	}
}
