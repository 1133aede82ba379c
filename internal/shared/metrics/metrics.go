package metrics

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/gin-gonic/gin"
)

var (
	webhookReceivedTotal    atomic.Uint64
	webhookProcessedTotal   atomic.Uint64
	webhookFailedTotal      atomic.Uint64
	webhookDuplicateTotal   atomic.Uint64
	webhookRateLimitedTotal atomic.Uint64

	processingDuration = newHistogram([]float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000})
)

// IncReceived increments the received counter.
func IncReceived() {
	webhookReceivedTotal.Add(1)
}

// IncProcessed increments the processed counter.
func IncProcessed() {
	webhookProcessedTotal.Add(1)
}

// IncFailed increments the failed counter.
func IncFailed() {
	webhookFailedTotal.Add(1)
}

// IncDuplicate increments the suppressed-duplicate counter.
func IncDuplicate() {
	webhookDuplicateTotal.Add(1)
}

// IncRateLimited increments the rate-limited counter.
func IncRateLimited() {
	webhookRateLimitedTotal.Add(1)
}

// ObserveProcessingMs records one webhook processing duration in milliseconds.
func ObserveProcessingMs(value float64) {
	if value < 0 {
		value = 0
	}
	processingDuration.Observe(value)
}

// Handler exposes metrics in Prometheus text format.
func Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Content-Type", "text/plain; version=0.0.4")
		c.String(http.StatusOK, Render())
	}
}

// Render renders metrics in Prometheus text format.
func Render() string {
	var buf bytes.Buffer
	writeCounter(&buf, "webhook_received_total", "Total webhook deliveries received", webhookReceivedTotal.Load())
	writeCounter(&buf, "webhook_processed_total", "Total webhook deliveries processed successfully", webhookProcessedTotal.Load())
	writeCounter(&buf, "webhook_failed_total", "Total webhook deliveries that failed processing", webhookFailedTotal.Load())
	writeCounter(&buf, "webhook_duplicate_total", "Total webhook deliveries suppressed as duplicates", webhookDuplicateTotal.Load())
	writeCounter(&buf, "webhook_rate_limited_total", "Total webhook deliveries rejected by rate limiting", webhookRateLimitedTotal.Load())
	writeHistogram(&buf, "webhook_processing_duration_ms", "Webhook processing duration in milliseconds", processingDuration.Snapshot())
	return buf.String()
}

type histogram struct {
	mu      sync.Mutex
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

type histogramSnapshot struct {
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

func newHistogram(buckets []float64) *histogram {
	return &histogram{
		buckets: buckets,
		counts:  make([]uint64, len(buckets)),
	}
}

func (h *histogram) Observe(value float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.count++
	h.sum += value
	for i, bound := range h.buckets {
		if value <= bound {
			h.counts[i]++
		}
	}
}

func (h *histogram) Snapshot() histogramSnapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	return histogramSnapshot{
		buckets: append([]float64(nil), h.buckets...),
		counts:  append([]uint64(nil), h.counts...),
		sum:     h.sum,
		count:   h.count,
	}
}

func writeCounter(buf *bytes.Buffer, name, help string, value uint64) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s counter\n", name)
	fmt.Fprintf(buf, "%s %d\n", name, value)
}

func writeHistogram(buf *bytes.Buffer, name, help string, snap histogramSnapshot) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s histogram\n", name)
	var cumulative uint64
	for i, bound := range snap.buckets {
		cumulative += snap.counts[i]
		fmt.Fprintf(buf, "%s_bucket{le=\"%s\"} %d\n", name, formatFloat(bound), cumulative)
	}
	fmt.Fprintf(buf, "%s_bucket{le=\"+Inf\"} %d\n", name, snap.count)
	fmt.Fprintf(buf, "%s_sum %s\n", name, formatFloat(snap.sum))
	fmt.Fprintf(buf, "%s_count %d\n", name, snap.count)
}

func formatFloat(value float64) string {
	if value == float64(int64(value)) {
		return strconv.FormatInt(int64(value), 10)
	}
	return strconv.FormatFloat(value, 'f', -1, 64)
}
