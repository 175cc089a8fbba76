package auth

import (
	"crypto/rsa"
	"fmt"
	"os"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
)

// Issuer signs identity tokens with an RSA private key. The login and
// register handlers are its only callers; the gateway never issues
// tokens, it only verifies them.
type Issuer struct {
	privateKey *rsa.PrivateKey
	ttl        time.Duration
}

func NewIssuer(pemBytes []byte, ttl time.Duration) (*Issuer, error) {
	key, err := jwt.ParseRSAPrivateKeyFromPEM(pemBytes)
	if err != nil {
		return nil, fmt.Errorf("parse private key: %w", err)
	}
	return &Issuer{privateKey: key, ttl: ttl}, nil
}

func NewIssuerFromFile(path string, ttl time.Duration) (*Issuer, error) {
	pemBytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read private key %s: %w", path, err)
	}
	return NewIssuer(pemBytes, ttl)
}

// TTL returns the configured token lifetime.
func (i *Issuer) TTL() time.Duration { return i.ttl }

// Issue creates a signed token asserting the given identity.
func (i *Issuer) Issue(userID, username string) (string, error) {
	now := time.Now()
	claims := tokenClaims{
		Claims: Claims{UserID: userID, Username: username},
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	return token.SignedString(i.privateKey)
}
