package database

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/oauth2"
)

// ErrNoToken indicates no Google token has been stored yet.
var ErrNoToken = errors.New("no google token stored")

// getEncryptionKey derives a 32-byte key for AES-256 encryption
func getEncryptionKey() ([]byte, error) {
	// Try BUTLER_ENCRYPTION_KEY first
	if envKey := os.Getenv("BUTLER_ENCRYPTION_KEY"); envKey != "" {
		hash := sha256.Sum256([]byte(envKey))
		return hash[:], nil
	}

	// Fall back to deriving from OPENAI_API_KEY
	if apiKey := os.Getenv("OPENAI_API_KEY"); apiKey != "" {
		hash := sha256.Sum256([]byte("butler-encryption-" + apiKey))
		return hash[:], nil
	}

	return nil, fmt.Errorf("no encryption key available: set BUTLER_ENCRYPTION_KEY or OPENAI_API_KEY")
}

// encryptToken encrypts an OAuth token for storage
func encryptToken(token []byte) ([]byte, error) {
	key, err := getEncryptionKey()
	if err != nil {
		return nil, err
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("failed to generate nonce: %w", err)
	}

	return gcm.Seal(nonce, nonce, token, nil), nil
}

// decryptToken decrypts an OAuth token from storage
func decryptToken(ciphertext []byte) ([]byte, error) {
	key, err := getEncryptionKey()
	if err != nil {
		return nil, err
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}

	nonceSize := gcm.NonceSize()
	if len(ciphertext) < nonceSize {
		return nil, fmt.Errorf("ciphertext too short")
	}

	nonce, ciphertext := ciphertext[:nonceSize], ciphertext[nonceSize:]
	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt: %w", err)
	}

	return plaintext, nil
}

// SaveGoogleToken stores the OAuth token, encrypted at rest.
func (d *DB) SaveGoogleToken(token *oauth2.Token) error {
	if token == nil {
		return fmt.Errorf("token is required")
	}

	data, err := json.Marshal(token)
	if err != nil {
		return fmt.Errorf("failed to marshal token: %w", err)
	}

	encrypted, err := encryptToken(data)
	if err != nil {
		return fmt.Errorf("failed to encrypt token: %w", err)
	}

	_, err = d.Exec(`
		INSERT INTO google_tokens (id, token_data, updated_at) VALUES (1, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(id) DO UPDATE SET token_data = excluded.token_data, updated_at = CURRENT_TIMESTAMP
	`, encrypted)
	if err != nil {
		return fmt.Errorf("failed to save token: %w", err)
	}

	return nil
}

// GetGoogleToken loads the stored OAuth token, returning ErrNoToken when absent.
func (d *DB) GetGoogleToken() (*oauth2.Token, error) {
	var encrypted []byte
	err := d.QueryRow(`SELECT token_data FROM google_tokens WHERE id = 1`).Scan(&encrypted)
	if err == sql.ErrNoRows {
		return nil, ErrNoToken
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load token: %w", err)
	}

	data, err := decryptToken(encrypted)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt token: %w", err)
	}

	var token oauth2.Token
	if err := json.Unmarshal(data, &token); err != nil {
		return nil, fmt.Errorf("failed to unmarshal token: %w", err)
	}

	return &token, nil
}

// DeleteGoogleToken removes the stored token.
func (d *DB) DeleteGoogleToken() error {
	_, err := d.Exec(`DELETE FROM google_tokens WHERE id = 1`)
	if err != nil {
		return fmt.Errorf("failed to delete token: %w", err)
	}
	return nil
}
