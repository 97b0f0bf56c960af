package security

import (
	"crypto/rand"
	"encoding/base64"
	"testing"
)

func TestEncryptDecryptRoundTrip(t *testing.T) {
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		t.Fatalf("failed to generate key: %v", err)
	}
	t.Setenv("EXCHANGE_CREDENTIALS_KEY", base64.StdEncoding.EncodeToString(key))

	const token = "session-token-abc123"

	encrypted, err := EncryptString(token)
	if err != nil {
		t.Fatalf("EncryptString failed: %v", err)
	}
	if encrypted == token {
		t.Fatal("expected ciphertext to differ from plaintext")
	}

	decrypted, err := DecryptString(encrypted)
	if err != nil {
		t.Fatalf("DecryptString failed: %v", err)
	}
	if decrypted != token {
		t.Fatalf("expected %q, got %q", token, decrypted)
	}
}

func TestDecryptStringRejectsGarbage(t *testing.T) {
	key := make([]byte, 32)
	t.Setenv("EXCHANGE_CREDENTIALS_KEY", base64.StdEncoding.EncodeToString(key))

	if _, err := DecryptString("not base64!!"); err == nil {
		t.Fatal("expected error for invalid base64")
	}
	if _, err := DecryptString(base64.StdEncoding.EncodeToString([]byte("short"))); err == nil {
		t.Fatal("expected error for truncated payload")
	}
}

func TestDecryptStringWithoutKey(t *testing.T) {
	t.Setenv("EXCHANGE_CREDENTIALS_KEY", "")

	if _, err := DecryptString("anything"); err == nil {
		t.Fatal("expected error when no key is configured")
	}
}
