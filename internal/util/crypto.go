package util

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/crypto/hkdf"
)

const (
	saltSize = 16
	ivSize   = 12
	keySize  = 32

	// hkdfInfo binds derived keys to this application and cipher.
	hkdfInfo = "bonsai-cho/aes-256-gcm/v1"
)

var (
	// ErrInvalidEncoding is returned when a base64url string cannot be decoded
	ErrInvalidEncoding = errors.New("invalid base64url encoding")

	// ErrDecryptionFailed is the only error Decrypt reports. Callers must not
	// be able to tell a truncated payload from a bad tag or a wrong secret.
	ErrDecryptionFailed = errors.New("decryption failed")
)

// CryptoRandomBytes generates cryptographically secure random bytes
func CryptoRandomBytes(length int) ([]byte, error) {
	buf := make([]byte, length)
	if _, err := io.ReadFull(rand.Reader, buf); err != nil {
		return nil, fmt.Errorf("failed to read random bytes: %w", err)
	}
	return buf, nil
}

// Base64URLEncode encodes b as unpadded base64url.
func Base64URLEncode(b []byte) string {
	return base64.RawURLEncoding.EncodeToString(b)
}

// Base64URLDecode decodes base64url with or without trailing padding. Padding,
// when present, must be exactly what the length requires. Line breaks and
// non-zero trailing bits are rejected.
func Base64URLDecode(s string) ([]byte, error) {
	if strings.ContainsAny(s, "\r\n") {
		return nil, ErrInvalidEncoding
	}

	unpadded := strings.TrimRight(s, "=")
	if pad := len(s) - len(unpadded); pad > 0 && pad != (4-len(unpadded)%4)%4 {
		return nil, ErrInvalidEncoding
	}

	b, err := base64.RawURLEncoding.Strict().DecodeString(unpadded)
	if err != nil {
		return nil, ErrInvalidEncoding
	}
	return b, nil
}

// SHA256Hash returns the base64url-encoded SHA-256 digest of s. Used both as a
// content hash and to turn bearer tokens into storage keys.
func SHA256Hash(s string) string {
	sum := sha256.Sum256([]byte(s))
	return Base64URLEncode(sum[:])
}

// deriveKey stretches secret and salt into an AES-256 key with HKDF-SHA256.
func deriveKey(secret string, salt []byte) ([]byte, error) {
	key := make([]byte, keySize)
	r := hkdf.New(sha256.New, []byte(secret), salt, []byte(hkdfInfo))
	if _, err := io.ReadFull(r, key); err != nil {
		return nil, err
	}
	return key, nil
}

func newGCM(secret string, salt []byte) (cipher.AEAD, error) {
	key, err := deriveKey(secret, salt)
	if err != nil {
		return nil, err
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

// Encrypt seals plaintext with AES-256-GCM under a key derived from secret and
// a fresh random salt. Output layout: base64url(salt[16] || iv[12] || ciphertext+tag).
func Encrypt(plaintext, secret string) (string, error) {
	salt, err := CryptoRandomBytes(saltSize)
	if err != nil {
		return "", err
	}
	iv, err := CryptoRandomBytes(ivSize)
	if err != nil {
		return "", err
	}

	aead, err := newGCM(secret, salt)
	if err != nil {
		return "", fmt.Errorf("failed to initialize cipher: %w", err)
	}

	out := make([]byte, 0, saltSize+ivSize+len(plaintext)+aead.Overhead())
	out = append(out, salt...)
	out = append(out, iv...)
	out = aead.Seal(out, iv, []byte(plaintext), nil)

	return Base64URLEncode(out), nil
}

// Decrypt reverses Encrypt. Every failure collapses into ErrDecryptionFailed.
func Decrypt(ciphertext, secret string) (string, error) {
	raw, err := Base64URLDecode(ciphertext)
	if err != nil {
		return "", ErrDecryptionFailed
	}
	if len(raw) < saltSize+ivSize {
		return "", ErrDecryptionFailed
	}

	salt := raw[:saltSize]
	iv := raw[saltSize : saltSize+ivSize]

	aead, err := newGCM(secret, salt)
	if err != nil {
		return "", ErrDecryptionFailed
	}

	plaintext, err := aead.Open(nil, iv, raw[saltSize+ivSize:], nil)
	if err != nil {
		return "", ErrDecryptionFailed
	}
	return string(plaintext), nil
}

// SecureCompare reports whether a and b are equal without leaking where they
// differ. Length is not treated as secret.
func SecureCompare(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
