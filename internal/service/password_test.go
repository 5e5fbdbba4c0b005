package service

import "testing"

func TestBcryptHasher(t *testing.T) {
	t.Parallel()

	h := NewBcryptHasher()

	hash, err := h.Hash("s3cret")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}
	if hash == "s3cret" {
		t.Fatal("hash must not equal the raw password")
	}

	if !h.Compare(hash, "s3cret") {
		t.Fatal("expected match for correct password")
	}
	if h.Compare(hash, "wrong") {
		t.Fatal("expected mismatch for wrong password")
	}
}
