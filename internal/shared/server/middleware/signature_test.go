package middleware

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func signatureFor(secret, body string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(body))
	return "sha256=" + hex.EncodeToString(mac.Sum(nil))
}

func newSignatureRouter(secret string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/hook", CaptureBody(0), Signature(secret), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r
}

func TestSignatureValidAccepted(t *testing.T) {
	r := newSignatureRouter("topsecret")
	body := `{"task":"invoices"}`

	req := httptest.NewRequest(http.MethodPost, "/hook", strings.NewReader(body))
	req.Header.Set(SignatureHeader, signatureFor("topsecret", body))
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestSignatureUppercaseHexAccepted(t *testing.T) {
	r := newSignatureRouter("topsecret")
	body := `{"task":"invoices"}`
	sig := signatureFor("topsecret", body)
	sig = "sha256=" + strings.ToUpper(strings.TrimPrefix(sig, "sha256="))

	req := httptest.NewRequest(http.MethodPost, "/hook", strings.NewReader(body))
	req.Header.Set(SignatureHeader, sig)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("hex comparison should be case-insensitive, got %d", resp.Code)
	}
}

func TestSignatureMutatedBodyRejected(t *testing.T) {
	r := newSignatureRouter("topsecret")
	body := `{"task":"invoices"}`

	req := httptest.NewRequest(http.MethodPost, "/hook", strings.NewReader(body+" "))
	req.Header.Set(SignatureHeader, signatureFor("topsecret", body))
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for mutated body, got %d", resp.Code)
	}
	if !bytes.Contains(resp.Body.Bytes(), []byte(`"success":false`)) {
		t.Fatalf("expected error envelope, got %s", resp.Body.String())
	}
}

func TestSignatureWrongSecretRejected(t *testing.T) {
	r := newSignatureRouter("topsecret")
	body := `{"task":"invoices"}`

	req := httptest.NewRequest(http.MethodPost, "/hook", strings.NewReader(body))
	req.Header.Set(SignatureHeader, signatureFor("othersecret", body))
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for wrong secret, got %d", resp.Code)
	}
}

func TestSignatureMissingHeaderFailsOpen(t *testing.T) {
	r := newSignatureRouter("topsecret")

	req := httptest.NewRequest(http.MethodPost, "/hook", strings.NewReader(`{"x":1}`))
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("missing header should fail open, got %d", resp.Code)
	}
}

func TestSignatureNoSecretSkipsCheck(t *testing.T) {
	r := newSignatureRouter("")

	req := httptest.NewRequest(http.MethodPost, "/hook", strings.NewReader(`{"x":1}`))
	req.Header.Set(SignatureHeader, "sha256=deadbeef")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("no secret configured should skip verification, got %d", resp.Code)
	}
}

func TestVerifySignatureMalformedHeader(t *testing.T) {
	if VerifySignature([]byte("s"), []byte("b"), "md5=abc") {
		t.Fatal("non-sha256 scheme must fail")
	}
	if VerifySignature([]byte("s"), []byte("b"), "sha256=zzzz") {
		t.Fatal("invalid hex must fail")
	}
	if VerifySignature([]byte("s"), []byte("b"), "") {
		t.Fatal("empty header must fail")
	}
}
