package webserver

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"CRMBackend/logger"
	"CRMBackend/metrics"
)

// RequestLogger tags every request with a UUID, logs it on completion and
// feeds the Prometheus request counter.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := uuid.New().String()
		c.Set("request_id", requestID)
		c.Header("X-Request-ID", requestID)

		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		metrics.HTTPRequests.WithLabelValues(c.Request.Method, c.FullPath(), strconv.Itoa(status)).Inc()

		entry := logger.Log.WithField("request_id", requestID).
			WithField("method", c.Request.Method).
			WithField("path", c.Request.URL.Path).
			WithField("status", status).
			WithField("duration", time.Since(start).String()).
			WithField("client_ip", c.ClientIP())

		if status >= http.StatusInternalServerError {
			entry.Error("Request failed")
		} else {
			entry.Info("Request completed")
		}
	}
}

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter applies a per-client-IP token bucket. Stale buckets are
// evicted after ten minutes of inactivity.
func RateLimiter(rps float64, burst int) gin.HandlerFunc {
	var (
		mu      sync.Mutex
		clients = make(map[string]*clientLimiter)
	)

	go func() {
		for {
			time.Sleep(10 * time.Minute)
			mu.Lock()
			for ip, client := range clients {
				if time.Since(client.lastSeen) > 10*time.Minute {
					delete(clients, ip)
				}
			}
			mu.Unlock()
		}
	}()

	return func(c *gin.Context) {
		ip := c.ClientIP()

		mu.Lock()
		client, ok := clients[ip]
		if !ok {
			client = &clientLimiter{limiter: rate.NewLimiter(rate.Limit(rps), burst)}
			clients[ip] = client
		}
		client.lastSeen = time.Now()
		mu.Unlock()

		if !client.limiter.Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Rate limit exceeded. Please slow down."})
			return
		}

		c.Next()
	}
}
