package main

import "testing"

func TestParseDims(t *testing.T) {
	rows, cols, err := parseDims("4x8")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rows != 4 || cols != 8 {
		t.Fatalf("got %dx%d, want 4x8", rows, cols)
	}

	if _, _, err := parseDims("bogus"); err == nil {
		t.Fatalf("expected error for malformed dims")
	}
}
