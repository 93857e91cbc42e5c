package visitor

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const issuer = "balaji-storefront"

type tokenManager struct {
	secret []byte
	now    func() time.Time
}

func newTokenManager(secret []byte) *tokenManager {
	return &tokenManager{secret: secret, now: time.Now}
}

func (m *tokenManager) Issue(visitorID string, ttl time.Duration) (string, error) {
	now := m.now()
	claims := jwt.RegisteredClaims{
		Issuer:    issuer,
		Subject:   visitorID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign visitor token: %w", err)
	}
	return signed, nil
}

func (m *tokenManager) Validate(token string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		return "", err
	}
	if !parsed.Valid {
		return "", fmt.Errorf("token not valid")
	}
	if _, err := uuid.Parse(claims.Subject); err != nil {
		return "", fmt.Errorf("subject: %w", err)
	}
	return claims.Subject, nil
}
