package service

// CredentialVerifier decides whether a typed admin secret is accepted.
type CredentialVerifier interface {
	Verify(secret string) bool
}
