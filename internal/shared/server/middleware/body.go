package middleware

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"spaik-backend/internal/shared/server/respond"
)

const rawBodyKey = "rawBody"

// MaxPayloadBytes is the hard cap on webhook payload size.
const MaxPayloadBytes = 10 << 20 // 10MB

// CaptureBody reads the request body once, enforces the content-type, size
// and empty-body gates, and stashes the bytes in context so the signature
// and duplicate checks downstream can see the exact bytes that arrived on
// the wire. The structural gates run here, ahead of the rate limiter and
// duplicate detector, so a rejected delivery never registers a digest or
// counts against the pipeline stats.
func CaptureBody(maxBytes int64) gin.HandlerFunc {
	if maxBytes <= 0 {
		maxBytes = MaxPayloadBytes
	}
	return func(c *gin.Context) {
		if !acceptedContentType(c.ContentType()) {
			respond.Error(c, http.StatusBadRequest, "unsupported_content_type", "content type must be application/json or text/plain", nil)
			return
		}
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			var maxErr *http.MaxBytesError
			if errors.As(err, &maxErr) {
				respond.Error(c, http.StatusRequestEntityTooLarge, "payload_too_large", "payload exceeds 10MB limit", nil)
				return
			}
			respond.Error(c, http.StatusBadRequest, "invalid_body", "unable to read request body", nil)
			return
		}
		if len(bytes.TrimSpace(body)) == 0 {
			respond.Error(c, http.StatusBadRequest, "empty_body", "request body is required", nil)
			return
		}
		c.Set(rawBodyKey, body)
		c.Request.Body = io.NopCloser(bytes.NewReader(body))
		c.Next()
	}
}

// acceptedContentType gates the declared content type. Absent is allowed;
// the parser sniffs the shape.
func acceptedContentType(contentType string) bool {
	ct := strings.TrimSpace(strings.ToLower(contentType))
	if i := strings.Index(ct, ";"); i >= 0 {
		ct = strings.TrimSpace(ct[:i])
	}
	switch ct {
	case "", "application/json", "text/plain":
		return true
	}
	return false
}

// RawBodyFromContext returns the body captured by CaptureBody.
func RawBodyFromContext(c *gin.Context) []byte {
	if c == nil {
		return nil
	}
	val, _ := c.Get(rawBodyKey)
	if body, ok := val.([]byte); ok {
		return body
	}
	return nil
}
