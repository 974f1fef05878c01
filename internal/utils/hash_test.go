package utils

import (
	"encoding/hex"
	"testing"
)

func TestHashString_Deterministic(t *testing.T) {
	a := HashString("token", "key")
	b := HashString("token", "key")
	if a != b {
		t.Errorf("expected equal digests, got %s and %s", a, b)
	}
}

func TestHashString_HexSHA256Length(t *testing.T) {
	digest := HashString("token", "key")
	raw, err := hex.DecodeString(digest)
	if err != nil {
		t.Fatalf("digest is not hex: %v", err)
	}
	if len(raw) != 32 {
		t.Errorf("expected 32-byte digest, got %d", len(raw))
	}
}

func TestHashString_KnownVector(t *testing.T) {
	// RFC 4231 test case 2.
	got := HashString("what do ya want for nothing?", "Jefe")
	want := "5bdcc146bf60754e6a042426089575c75a003f089d2739839dec58b964ec3843"
	if got != want {
		t.Errorf("expected %s, got %s", want, got)
	}
}

func TestHashString_DifferentKeysAndPayloads(t *testing.T) {
	base := HashString("token", "key")
	if base == HashString("token", "other-key") {
		t.Error("different keys produced the same digest")
	}
	if base == HashString("token2", "key") {
		t.Error("different payloads produced the same digest")
	}
}
