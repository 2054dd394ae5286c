package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	headerRequestID = "X-Request-ID"
	ctxRequestID    = "requestId"
)

// requestIDMiddleware propagates the caller's X-Request-ID or assigns a new one.
func (h *Handler) requestIDMiddleware(c *gin.Context) {
	id := c.GetHeader(headerRequestID)
	if id == "" || len(id) > 128 {
		id = uuid.NewString()
	}
	// store in Gin context
	c.Set(ctxRequestID, id)
	c.Header(headerRequestID, id)
	c.Next()
}

// accessLogMiddleware writes one structured line per request.
func (h *Handler) accessLogMiddleware(c *gin.Context) {
	start := time.Now()
	c.Next()
	if h.log == nil {
		return
	}
	h.log.Infow("http_request",
		"method", c.Request.Method,
		"path", c.FullPath(),
		"status", c.Writer.Status(),
		"duration", time.Since(start),
		"request_id", c.GetString(ctxRequestID),
		"client_ip", c.ClientIP(),
	)
}
