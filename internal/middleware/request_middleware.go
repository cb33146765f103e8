package middleware

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"northwind-ai-api/internal/ai"
	"northwind-ai-api/internal/metrics"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// RequestIDHeader is echoed back on every response.
const RequestIDHeader = "X-Request-ID"

// RequestContext assigns a request id and puts a request-scoped logger into the
// request context, where zerolog.Ctx finds it.
func RequestContext(base zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		reqID := c.GetHeader(RequestIDHeader)
		if reqID == "" {
			reqID = uuid.NewString()
		}
		c.Header(RequestIDHeader, reqID)

		lg := base.With().Str("request_id", reqID).Logger()
		c.Request = c.Request.WithContext(lg.WithContext(c.Request.Context()))
		c.Next()
	}
}

// AccessLog writes one line per request.
func AccessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		ev := zerolog.Ctx(c.Request.Context()).Info()
		if status >= http.StatusInternalServerError {
			ev = zerolog.Ctx(c.Request.Context()).Error()
		}
		ev.Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", status).
			Dur("duration", time.Since(start)).
			Str("client_ip", c.ClientIP()).
			Msg("request")
	}
}

// Metrics records request counts and latency by route template.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		metrics.HTTPRequestsInFlight.Inc()
		defer metrics.HTTPRequestsInFlight.Dec()

		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		metrics.HTTPRequestsTotal.WithLabelValues(c.Request.Method, path, strconv.Itoa(c.Writer.Status())).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(c.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}

// EnvelopeRecovery turns a panic in an AI-backed handler into
// 200 {success:false, message:"Unexpected error: ..."}.
func EnvelopeRecovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			r := recover()
			if r == nil {
				return
			}
			if r == http.ErrAbortHandler {
				panic(r)
			}
			metrics.PanicsRecovered.Inc()
			zerolog.Ctx(c.Request.Context()).Error().
				Interface("panic", r).
				Str("path", c.Request.URL.Path).
				Msg("handler panicked")
			c.AbortWithStatusJSON(http.StatusOK, ai.Failed(UnexpectedErrorMessage(fmt.Errorf("%v", r))))
		}()
		c.Next()
	}
}

// UnexpectedErrorMessage formats the catch-all diagnostic.
func UnexpectedErrorMessage(err error) string {
	return "Unexpected error: " + err.Error()
}
