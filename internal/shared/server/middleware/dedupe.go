package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"spaik-backend/internal/shared/metrics"
	"spaik-backend/internal/shared/util"
)

// DefaultDedupeWindow is the trailing window within which a byte-identical
// delivery from the same client is suppressed.
const DefaultDedupeWindow = 10 * time.Minute

const dedupeDigestKey = "dedupeDigest"

type dedupeEntry struct {
	seenAt   time.Time
	recordID string
}

// DuplicateDetector suppresses repeat deliveries by content digest within a
// trailing window. Expired digests are swept lazily on each check.
type DuplicateDetector struct {
	mu      sync.Mutex
	window  time.Duration
	entries map[string]*dedupeEntry
	now     func() time.Time
}

// NewDuplicateDetector constructs a detector. Zero window picks the
// default; now may be nil outside tests.
func NewDuplicateDetector(window time.Duration, now func() time.Time) *DuplicateDetector {
	if window <= 0 {
		window = DefaultDedupeWindow
	}
	if now == nil {
		now = time.Now
	}
	return &DuplicateDetector{
		window:  window,
		entries: make(map[string]*dedupeEntry),
		now:     now,
	}
}

// Check registers digest if unseen within the window and reports whether it
// was already present, along with the record id the original delivery
// produced (empty until Attach is called or if processing failed).
func (d *DuplicateDetector) Check(digest string) (duplicate bool, originalID string) {
	now := d.now()
	d.mu.Lock()
	defer d.mu.Unlock()

	for k, e := range d.entries {
		if now.Sub(e.seenAt) >= d.window {
			delete(d.entries, k)
		}
	}

	if e, ok := d.entries[digest]; ok {
		return true, e.recordID
	}
	d.entries[digest] = &dedupeEntry{seenAt: now}
	return false, ""
}

// Attach records the id of the record created for digest so later
// duplicates can surface it.
func (d *DuplicateDetector) Attach(digest, recordID string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if e, ok := d.entries[digest]; ok {
		e.recordID = recordID
	}
}

// Len reports the number of tracked digests.
func (d *DuplicateDetector) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.entries)
}

// Dedupe answers repeat deliveries with 202 Accepted without reprocessing.
// The delivery fingerprint covers client address, raw body and user agent.
func Dedupe(detector *DuplicateDetector) gin.HandlerFunc {
	return func(c *gin.Context) {
		digest := util.Digest(c.ClientIP(), string(RawBodyFromContext(c)), c.Request.UserAgent())
		duplicate, originalID := detector.Check(digest)
		if !duplicate {
			c.Set(dedupeDigestKey, digest)
			c.Next()
			return
		}

		metrics.IncDuplicate()
		c.Set("duplicate", true)
		body := gin.H{
			"success":   true,
			"duplicate": true,
			"message":   "payload already processed, not reprocessed",
		}
		if originalID != "" {
			body["id"] = originalID
		}
		c.AbortWithStatusJSON(http.StatusAccepted, body)
	}
}

// DedupeDigestFromContext returns the digest stored by Dedupe for this
// request, or empty when duplicate detection is disabled.
func DedupeDigestFromContext(c *gin.Context) string {
	if c == nil {
		return ""
	}
	val, _ := c.Get(dedupeDigestKey)
	if digest, ok := val.(string); ok {
		return digest
	}
	return ""
}
