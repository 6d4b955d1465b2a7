package util

// Byte lengths of the random values behind each kind of SecureToken.
const (
	StateBytes        = 32
	CodeVerifierBytes = 32
	NonceBytes        = 16
	SessionTokenBytes = 32
	CSRFTokenBytes    = 32
	IDBytes           = 16
)

// GenerateSecureToken returns n random bytes encoded as unpadded base64url.
func GenerateSecureToken(n int) (string, error) {
	b, err := CryptoRandomBytes(n)
	if err != nil {
		return "", err
	}
	return Base64URLEncode(b), nil
}

// GenerateState returns an OAuth state value.
func GenerateState() (string, error) {
	return GenerateSecureToken(StateBytes)
}

// GenerateCodeVerifier returns a PKCE code verifier (43 characters, RFC 7636 §4.1).
func GenerateCodeVerifier() (string, error) {
	return GenerateSecureToken(CodeVerifierBytes)
}

// GenerateNonce returns an OIDC nonce.
func GenerateNonce() (string, error) {
	return GenerateSecureToken(NonceBytes)
}

// GenerateSessionID returns a raw session bearer token.
func GenerateSessionID() (string, error) {
	return GenerateSecureToken(SessionTokenBytes)
}

// GenerateCSRFToken returns a double-submit CSRF token.
func GenerateCSRFToken() (string, error) {
	return GenerateSecureToken(CSRFTokenBytes)
}

// GenerateID returns a generic record identifier.
func GenerateID() (string, error) {
	return GenerateSecureToken(IDBytes)
}
