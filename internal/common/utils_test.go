package common

import "testing"

func TestHasAnyPrefixFold(t *testing.T) {
	if !HasAnyPrefixFold("HTTPS://example.org", "http://", "https://") {
		t.Error("expected https prefix to match")
	}
	if HasAnyPrefixFold("data/http.csv", "http://", "https://") {
		t.Error("relative path must not match")
	}
	if HasAnyPrefixFold("anything") {
		t.Error("no prefixes never match")
	}
}
