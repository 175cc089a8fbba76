package auth

import (
	"crypto/rsa"
	"errors"
	"fmt"
	"os"

	jwt "github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken covers every verification failure: malformed token,
// bad signature, wrong algorithm, expired claims.
var ErrInvalidToken = errors.New("invalid or expired token")

// Claims is the identity a verified token asserts.
type Claims struct {
	UserID   string `json:"id"`
	Username string `json:"username"`
}

type tokenClaims struct {
	Claims
	jwt.RegisteredClaims
}

// Verifier checks RS256-signed identity tokens against a public key
// loaded once at construction. It keeps no other state and is safe for
// concurrent use.
type Verifier struct {
	publicKey *rsa.PublicKey
}

func NewVerifier(pemBytes []byte) (*Verifier, error) {
	key, err := jwt.ParseRSAPublicKeyFromPEM(pemBytes)
	if err != nil {
		return nil, fmt.Errorf("parse public key: %w", err)
	}
	return &Verifier{publicKey: key}, nil
}

func NewVerifierFromFile(path string) (*Verifier, error) {
	pemBytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read public key %s: %w", path, err)
	}
	return NewVerifier(pemBytes)
}

// Verify validates the signature and expiry of token and returns the
// identity it asserts. Any failure is reported as ErrInvalidToken.
func (v *Verifier) Verify(token string) (*Claims, error) {
	var claims tokenClaims

	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (interface{}, error) {
		return v.publicKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !parsed.Valid || claims.UserID == "" {
		return nil, ErrInvalidToken
	}

	return &claims.Claims, nil
}
