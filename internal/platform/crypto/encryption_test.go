package crypto

import (
	"bytes"
	"testing"
)

func TestEncryptDecryptRoundTripWithPassphrase(t *testing.T) {
	service, err := New("not-a-raw-key-but-a-passphrase")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !service.Configured() {
		t.Fatal("expected passphrase-derived key to configure the service")
	}

	plain := []byte("appraisal report contents")
	encrypted, err := service.Encrypt(plain)
	if err != nil {
		t.Fatalf("encrypt failed: %v", err)
	}
	if bytes.Equal(encrypted, plain) {
		t.Fatal("expected ciphertext to differ from plaintext")
	}

	decrypted, err := service.Decrypt(encrypted)
	if err != nil {
		t.Fatalf("decrypt failed: %v", err)
	}
	if !bytes.Equal(decrypted, plain) {
		t.Fatalf("round trip mismatch: got %q", decrypted)
	}
}

func TestUnconfiguredServicePassesThrough(t *testing.T) {
	service, err := New("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if service.Configured() {
		t.Fatal("expected empty key to leave service unconfigured")
	}

	plain := []byte("plain")
	out, err := service.Encrypt(plain)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.Equal(out, plain) {
		t.Fatal("expected passthrough without a key")
	}
}
