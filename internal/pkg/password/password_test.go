package password

import (
	"strings"
	"testing"
)

func TestHashAndVerify(t *testing.T) {
	hash, err := Hash("s3cret-pass")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}
	if hash == "s3cret-pass" || strings.Contains(hash, "s3cret-pass") {
		t.Fatalf("hash leaks the plaintext")
	}

	if !Verify("s3cret-pass", hash) {
		t.Fatalf("Verify rejected the correct password")
	}
	if Verify("wrong-pass", hash) {
		t.Fatalf("Verify accepted a wrong password")
	}
}

func TestHash_Randomized(t *testing.T) {
	h1, err := Hash("same-input")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}
	h2, err := Hash("same-input")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}
	if h1 == h2 {
		t.Fatalf("expected salted hashes to differ for the same input")
	}
}
