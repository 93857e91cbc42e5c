// Package visitor issues and checks the tokens that identify a browser.
package visitor

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrInvalidToken = errors.New("invalid visitor token")

type Service struct {
	tokens *tokenManager
	ttl    time.Duration
}

func New(secret string, ttl time.Duration) *Service {
	return &Service{
		tokens: newTokenManager([]byte(secret)),
		ttl:    ttl,
	}
}

// Issue creates a new visitor and returns its signed token.
func (s *Service) Issue(ctx context.Context) (token, visitorID string, err error) {
	visitorID = uuid.NewString()
	token, err = s.tokens.Issue(visitorID, s.ttl)
	if err != nil {
		return "", "", err
	}
	return token, visitorID, nil
}

// Lookup returns the visitor id carried by token.
func (s *Service) Lookup(ctx context.Context, token string) (string, error) {
	visitorID, err := s.tokens.Validate(token)
	if err != nil {
		return "", errors.Join(ErrInvalidToken, err)
	}
	return visitorID, nil
}

func (s *Service) TTLSeconds() int {
	return int(s.ttl.Seconds())
}
