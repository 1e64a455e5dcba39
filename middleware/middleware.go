package middleware

import (
	"net/http"
	"strings"
	"time"

	C "ecomdash/config"
	"ecomdash/metrics"
	U "ecomdash/util"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// HeaderRequestID Header carrying the request id on request and response.
const HeaderRequestID = "X-Req-Id"

// RequestIdGenerator Tags every request with an id for log correlation.
// An id sent by the caller is kept as is.
func RequestIdGenerator() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := strings.TrimSpace(c.Request.Header.Get(HeaderRequestID))
		if requestID == "" {
			requestID = U.GetUUID()
		}

		c.Set(HeaderRequestID, requestID)
		c.Writer.Header().Set(HeaderRequestID, requestID)
		c.Next()
	}
}

// Logger Logs every processed request and reports request count and latency.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		startTime := time.Now()
		c.Next()
		latencyInMs := time.Since(startTime).Milliseconds()

		metrics.Increment(metrics.IncrHTTPRequestCount)
		metrics.RecordLatency(metrics.LatencyHTTPRequest, float64(latencyInMs))

		log.WithFields(log.Fields{
			"request_id":    c.GetString(HeaderRequestID),
			"method":        c.Request.Method,
			"path":          c.Request.URL.Path,
			"status":        c.Writer.Status(),
			"latency_in_ms": latencyInMs,
		}).Info("Processed request.")
	}
}

// Recovery Converts a panic on any handler into a clean 500 response.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if recovered := recover(); recovered != nil {
				log.WithFields(log.Fields{
					"request_id": c.GetString(HeaderRequestID),
					"path":       c.Request.URL.Path,
					"panic":      recovered,
				}).Error("Recovered from panic on request.")
				c.AbortWithStatusJSON(http.StatusInternalServerError,
					gin.H{"error": "Internal server error."})
			}
		}()
		c.Next()
	}
}

// CustomCorsMiddleware for customised cors configuration based on conditions.
func CustomCors() gin.HandlerFunc {
	return func(c *gin.Context) {
		corsConfig := cors.DefaultConfig()

		if C.IsDevelopment() {
			corsConfig.AllowOrigins = []string{"http://localhost:8080", "http://localhost:3000", "http://localhost:8090"}
		} else {
			// The dashboard serves read-only queries over a public dataset.
			corsConfig.AllowAllOrigins = true
		}

		// Applys custom cors and proceed.
		cors.New(corsConfig)(c)
		c.Next()
	}
}

// AddSecurityHeadersForAppRoutes Adds standard security headers on all app routes.
func AddSecurityHeadersForAppRoutes() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("X-Frame-Options", "DENY")
		c.Writer.Header().Set("X-Content-Type-Options", "nosniff")
		c.Writer.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Next()
	}
}
