package utils

import (
	"strings"
	"testing"
)

func TestGenerateTxnID(t *testing.T) {
	id := GenerateTxnID(42)
	if !strings.HasPrefix(id, "PM-42-") {
		t.Errorf("txnid = %q, want PM-42-<unix> shape", id)
	}
	parts := strings.Split(id, "-")
	if len(parts) != 3 {
		t.Fatalf("txnid = %q, want three dash-separated segments", id)
	}

	if other := GenerateTxnID(43); strings.HasPrefix(other, "PM-42-") {
		t.Errorf("distinct investments produced colliding prefixes: %q vs %q", id, other)
	}
}
