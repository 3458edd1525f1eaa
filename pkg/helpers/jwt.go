package helpers

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// RoleAnon is the only role an anon key may carry.
const RoleAnon = "anon"

var ErrInvalidAnonKey = errors.New("invalid anon key")

// AnonKeyManager mints and verifies the shared client credential. An anon
// key identifies a client of this deployment, not a user.
type AnonKeyManager struct {
	Secret []byte
	Issuer string
}

func NewAnonKeyManager(secret, issuer string) *AnonKeyManager {
	return &AnonKeyManager{Secret: []byte(secret), Issuer: issuer}
}

type AnonClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Mint signs a new anon key. ttl <= 0 produces a key without expiry.
func (m *AnonKeyManager) Mint(ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &AnonClaims{
		Role: RoleAnon,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:   m.Issuer,
			IssuedAt: jwt.NewNumericDate(now),
		},
	}
	if ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(ttl))
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(m.Secret)
}

func (m *AnonKeyManager) Verify(tokenStr string) (*AnonClaims, error) {
	claims := &AnonClaims{}
	tkn, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.Secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !tkn.Valid || claims.Role != RoleAnon {
		return nil, ErrInvalidAnonKey
	}
	return claims, nil
}
