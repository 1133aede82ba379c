package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func newDedupeRouter(detector *DuplicateDetector) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/hook", CaptureBody(0), Dedupe(detector), func(c *gin.Context) {
		if digest := DedupeDigestFromContext(c); digest != "" {
			detector.Attach(digest, "vis_1_abc")
		}
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r
}

func postHook(r *gin.Engine, body, agent string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/hook", strings.NewReader(body))
	req.Header.Set("User-Agent", agent)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func TestDedupeSecondDeliveryAcceptedNotReprocessed(t *testing.T) {
	now := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	detector := NewDuplicateDetector(10*time.Minute, func() time.Time { return now })
	r := newDedupeRouter(detector)

	if resp := postHook(r, `{"task":"invoices"}`, "bot/1"); resp.Code != http.StatusOK {
		t.Fatalf("first delivery expected 200, got %d", resp.Code)
	}

	resp := postHook(r, `{"task":"invoices"}`, "bot/1")
	if resp.Code != http.StatusAccepted {
		t.Fatalf("second delivery expected 202, got %d", resp.Code)
	}
	var body struct {
		Success   bool   `json:"success"`
		Duplicate bool   `json:"duplicate"`
		ID        string `json:"id"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal 202 body: %v", err)
	}
	if !body.Success || !body.Duplicate {
		t.Fatalf("expected success+duplicate, got %+v", body)
	}
	if body.ID != "vis_1_abc" {
		t.Fatalf("expected original record id surfaced, got %q", body.ID)
	}
}

func TestDedupeDifferentAgentIsNotDuplicate(t *testing.T) {
	detector := NewDuplicateDetector(10*time.Minute, nil)
	r := newDedupeRouter(detector)

	postHook(r, `{"task":"invoices"}`, "bot/1")
	if resp := postHook(r, `{"task":"invoices"}`, "bot/2"); resp.Code != http.StatusOK {
		t.Fatalf("different user agent should process normally, got %d", resp.Code)
	}
}

func TestDedupeWindowExpiry(t *testing.T) {
	now := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	detector := NewDuplicateDetector(10*time.Minute, func() time.Time { return now })
	r := newDedupeRouter(detector)

	postHook(r, `{"task":"invoices"}`, "bot/1")

	now = now.Add(10 * time.Minute)
	if resp := postHook(r, `{"task":"invoices"}`, "bot/1"); resp.Code != http.StatusOK {
		t.Fatalf("delivery after window expiry should process normally, got %d", resp.Code)
	}
	if detector.Len() != 1 {
		t.Fatalf("expired digest should be swept, got %d tracked", detector.Len())
	}
}
