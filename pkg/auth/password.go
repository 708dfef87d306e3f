package auth

import (
	"crypto/subtle"

	"golang.org/x/crypto/bcrypt"
)

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// StaticVerifier accepts exactly one literal secret.
type StaticVerifier struct {
	secret []byte
}

func NewStaticVerifier(secret string) *StaticVerifier {
	return &StaticVerifier{secret: []byte(secret)}
}

func (v *StaticVerifier) Verify(secret string) bool {
	if len(v.secret) == 0 {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(secret), v.secret) == 1
}

// HashVerifier checks the secret against a bcrypt hash.
type HashVerifier struct {
	hash string
}

func NewHashVerifier(hash string) *HashVerifier {
	return &HashVerifier{hash: hash}
}

func (v *HashVerifier) Verify(secret string) bool {
	return CheckPasswordHash(secret, v.hash)
}
