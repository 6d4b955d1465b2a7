package util

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCryptoRandomBytes(t *testing.T) {
	t.Run("Generate correct length", func(t *testing.T) {
		bytes, err := CryptoRandomBytes(20)
		require.NoError(t, err)
		assert.Len(t, bytes, 20)
	})

	t.Run("Generate unique values", func(t *testing.T) {
		bytes1, err := CryptoRandomBytes(20)
		require.NoError(t, err)

		bytes2, err := CryptoRandomBytes(20)
		require.NoError(t, err)

		assert.NotEqual(t, bytes1, bytes2, "Random bytes should not be identical")
	})

	t.Run("Zero length", func(t *testing.T) {
		bytes, err := CryptoRandomBytes(0)
		require.NoError(t, err)
		assert.Empty(t, bytes)
	})
}

func TestBase64URL(t *testing.T) {
	t.Run("Round trip for lengths 0..256", func(t *testing.T) {
		for n := 0; n <= 256; n++ {
			b := make([]byte, n)
			for i := range b {
				// Cover the byte values that map to '+' and '/' in standard base64
				b[i] = byte(0xfb + i*7)
			}

			encoded := Base64URLEncode(b)
			assert.False(t, strings.ContainsAny(encoded, "+/="), "length %d: %q", n, encoded)

			decoded, err := Base64URLDecode(encoded)
			require.NoError(t, err)
			assert.Equal(t, len(b), len(decoded))
			if n > 0 {
				assert.Equal(t, b, decoded)
			}
		}
	})

	t.Run("Empty input", func(t *testing.T) {
		assert.Equal(t, "", Base64URLEncode(nil))
		decoded, err := Base64URLDecode("")
		require.NoError(t, err)
		assert.Empty(t, decoded)
	})

	t.Run("Single byte", func(t *testing.T) {
		assert.Equal(t, "_w", Base64URLEncode([]byte{0xff}))
		decoded, err := Base64URLDecode("_w")
		require.NoError(t, err)
		assert.Equal(t, []byte{0xff}, decoded)
	})

	t.Run("Padded input is accepted", func(t *testing.T) {
		decoded, err := Base64URLDecode("_w==")
		require.NoError(t, err)
		assert.Equal(t, []byte{0xff}, decoded)
	})

	t.Run("Malformed input fails", func(t *testing.T) {
		for _, s := range []string{
			"a+b/", "!!!!", "a", "abc$",
			"_w=====", "_w=", "_w\n", "_\r\nw", "\n_w", "_w==\n",
			"AAAA=", "_x",
		} {
			_, err := Base64URLDecode(s)
			assert.ErrorIs(t, err, ErrInvalidEncoding, s)
		}
	})
}

func TestSHA256Hash(t *testing.T) {
	t.Run("Known vector", func(t *testing.T) {
		// sha256("hello") = 2cf24dba...9824, base64url without padding
		assert.Equal(t, "LPJNul-wow4m6DsqxbninhsWHlwfp0JecwQzYpOLmCQ", SHA256Hash("hello"))
	})

	t.Run("Output is 43 base64url characters", func(t *testing.T) {
		assert.Regexp(t, `^[A-Za-z0-9_-]{43}$`, SHA256Hash("any input"))
	})

	t.Run("Deterministic", func(t *testing.T) {
		assert.Equal(t, SHA256Hash("token"), SHA256Hash("token"))
	})

	t.Run("Different inputs produce different hashes", func(t *testing.T) {
		assert.NotEqual(t, SHA256Hash("token-a"), SHA256Hash("token-b"))
	})
}

func TestEncryptDecrypt(t *testing.T) {
	const secret = "a-test-secret-that-is-long-enough-for-hkdf"

	t.Run("Round trip", func(t *testing.T) {
		for _, plaintext := range []string{
			"",
			"verifier",
			"盆栽を育てる 🌳",
			strings.Repeat("x", 4096),
		} {
			ciphertext, err := Encrypt(plaintext, secret)
			require.NoError(t, err)

			decrypted, err := Decrypt(ciphertext, secret)
			require.NoError(t, err)
			assert.Equal(t, plaintext, decrypted)
		}
	})

	t.Run("Ciphertext is base64url", func(t *testing.T) {
		ciphertext, err := Encrypt("verifier", secret)
		require.NoError(t, err)
		assert.Regexp(t, `^[A-Za-z0-9_-]+$`, ciphertext)

		raw, err := Base64URLDecode(ciphertext)
		require.NoError(t, err)
		// salt + iv + plaintext + 16-byte tag
		assert.Len(t, raw, saltSize+ivSize+len("verifier")+16)
	})

	t.Run("Same plaintext encrypts differently", func(t *testing.T) {
		c1, err := Encrypt("same", secret)
		require.NoError(t, err)
		c2, err := Encrypt("same", secret)
		require.NoError(t, err)
		assert.NotEqual(t, c1, c2)
	})

	t.Run("Wrong secret fails", func(t *testing.T) {
		ciphertext, err := Encrypt("verifier", secret)
		require.NoError(t, err)

		_, err = Decrypt(ciphertext, "another-secret")
		assert.ErrorIs(t, err, ErrDecryptionFailed)
	})

	t.Run("Truncated ciphertext fails", func(t *testing.T) {
		short := Base64URLEncode(make([]byte, saltSize+ivSize-1))
		_, err := Decrypt(short, secret)
		assert.ErrorIs(t, err, ErrDecryptionFailed)

		headerOnly := Base64URLEncode(make([]byte, saltSize+ivSize))
		_, err = Decrypt(headerOnly, secret)
		assert.ErrorIs(t, err, ErrDecryptionFailed)
	})

	t.Run("Tampered tail fails", func(t *testing.T) {
		ciphertext, err := Encrypt("verifier", secret)
		require.NoError(t, err)

		raw, err := Base64URLDecode(ciphertext)
		require.NoError(t, err)
		raw[len(raw)-1] ^= 0x01

		_, err = Decrypt(Base64URLEncode(raw), secret)
		assert.ErrorIs(t, err, ErrDecryptionFailed)
	})

	t.Run("Ciphertext with line breaks or extra padding fails", func(t *testing.T) {
		ciphertext, err := Encrypt("verifier", secret)
		require.NoError(t, err)

		for _, mangled := range []string{ciphertext + "\n==", ciphertext + "=====", "\r\n" + ciphertext} {
			_, err := Decrypt(mangled, secret)
			assert.ErrorIs(t, err, ErrDecryptionFailed)
		}
	})

	t.Run("Malformed encoding fails generically", func(t *testing.T) {
		_, err := Decrypt("not base64url!", secret)
		assert.ErrorIs(t, err, ErrDecryptionFailed)
		assert.Equal(t, ErrDecryptionFailed.Error(), err.Error())
	})
}

func TestSecureCompare(t *testing.T) {
	t.Run("Identical string", func(t *testing.T) {
		s := "csrf-token-value"
		assert.True(t, SecureCompare(s, s))
	})

	t.Run("Equal but distinct strings", func(t *testing.T) {
		a := strings.Repeat("ab", 8)
		b := string([]byte(strings.Repeat("ab", 8)))
		assert.True(t, SecureCompare(a, b))
	})

	t.Run("Single differing character", func(t *testing.T) {
		assert.False(t, SecureCompare("abcdef", "abcdeg"))
		assert.False(t, SecureCompare("abcdef", "bbcdef"))
	})

	t.Run("Different lengths", func(t *testing.T) {
		assert.False(t, SecureCompare("abc", "abcd"))
		assert.False(t, SecureCompare("", "a"))
	})

	t.Run("Two empty strings", func(t *testing.T) {
		assert.True(t, SecureCompare("", ""))
	})
}
