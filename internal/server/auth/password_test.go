package auth

import (
	"strings"
	"testing"
)

func TestBcryptHasher_HashAndCheck(t *testing.T) {
	t.Parallel()

	h := NewBcryptHasher()

	hash, err := h.Hash("secret1")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}
	if hash == "secret1" {
		t.Fatal("hash equals plaintext")
	}
	if !strings.HasPrefix(hash, "$2") {
		t.Fatalf("not a bcrypt hash: %q", hash)
	}

	if !h.Check("secret1", hash) {
		t.Fatal("Check rejected correct password")
	}
	if h.Check("wrong", hash) {
		t.Fatal("Check accepted wrong password")
	}
}

func TestBcryptHasher_DistinctSalts(t *testing.T) {
	t.Parallel()

	h := NewBcryptHasher()
	h1, err := h.Hash("same")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}
	h2, err := h.Hash("same")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}
	if h1 == h2 {
		t.Fatal("two hashes of the same input are identical; salt missing")
	}
}

func TestNormalizeAnswer(t *testing.T) {
	t.Parallel()

	tests := []struct{ in, want string }{
		{"Blue", "blue"},
		{"  Rex  ", "rex"},
		{"ALREADY", "already"},
	}
	for _, tt := range tests {
		if got := NormalizeAnswer(tt.in); got != tt.want {
			t.Fatalf("NormalizeAnswer(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
