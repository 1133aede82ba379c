package util

import "testing"

func TestDigestStableAcrossCalls(t *testing.T) {
	a := Digest("10.0.0.1", `{"task":"invoices"}`, "curl/8.0")
	b := Digest("10.0.0.1", `{"task":"invoices"}`, "curl/8.0")
	if a != b {
		t.Fatalf("same inputs produced different digests: %s vs %s", a, b)
	}
	if len(a) != 64 {
		t.Fatalf("expected 64 hex chars, got %d", len(a))
	}
}

func TestDigestSensitiveToEveryPart(t *testing.T) {
	base := Digest("10.0.0.1", "body", "agent")
	if Digest("10.0.0.2", "body", "agent") == base {
		t.Fatal("client change did not change digest")
	}
	if Digest("10.0.0.1", "body2", "agent") == base {
		t.Fatal("body change did not change digest")
	}
	if Digest("10.0.0.1", "body", "agent2") == base {
		t.Fatal("user agent change did not change digest")
	}
}
