package security

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
)

// Credential material handed to the client via environment is AES-GCM
// sealed with EXCHANGE_CREDENTIALS_KEY (base64, 32 bytes). The encrypted
// blob is base64(nonce || ciphertext).

var ErrNoCredentialsKey = errors.New("EXCHANGE_CREDENTIALS_KEY not set")

func gcmFromKey(encodedKey string) (cipher.AEAD, error) {
	if encodedKey == "" {
		return nil, ErrNoCredentialsKey
	}
	key, err := base64.StdEncoding.DecodeString(encodedKey)
	if err != nil {
		return nil, fmt.Errorf("failed to decode credentials key: %w", err)
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to init cipher: %w", err)
	}
	return cipher.NewGCM(block)
}

// DecryptString opens an encrypted credential using the configured key.
func DecryptString(encrypted string) (string, error) {
	gcm, err := gcmFromKey(GetConfig().CredentialsKey)
	if err != nil {
		return "", err
	}

	raw, err := base64.StdEncoding.DecodeString(encrypted)
	if err != nil {
		return "", fmt.Errorf("failed to decode encrypted credential: %w", err)
	}
	if len(raw) < gcm.NonceSize() {
		return "", errors.New("encrypted credential too short")
	}

	nonce, ciphertext := raw[:gcm.NonceSize()], raw[gcm.NonceSize():]
	plain, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", fmt.Errorf("failed to decrypt credential: %w", err)
	}
	return string(plain), nil
}

// EncryptString seals a credential with the configured key. Used by ops
// tooling to prepare environment values; the client itself only decrypts.
func EncryptString(plain string) (string, error) {
	gcm, err := gcmFromKey(GetConfig().CredentialsKey)
	if err != nil {
		return "", err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("failed to generate nonce: %w", err)
	}

	sealed := gcm.Seal(nonce, nonce, []byte(plain), nil)
	return base64.StdEncoding.EncodeToString(sealed), nil
}
