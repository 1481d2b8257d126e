// Package auth exchanges the configured API key for short-lived bearer
// tokens and validates them.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"socprobe/internal/domain"
)

const subject = "socprobe-client"

var ErrInvalidToken = errors.New("invalid token")

type Service struct {
	apiKeyHash []byte
	jwtSecret  []byte
	jwtExpiry  time.Duration
	now        func() time.Time
}

func NewService(apiKeyHash, jwtSecret string, jwtExpiry time.Duration) *Service {
	return &Service{
		apiKeyHash: []byte(apiKeyHash),
		jwtSecret:  []byte(jwtSecret),
		jwtExpiry:  jwtExpiry,
		now:        time.Now,
	}
}

// IssueToken checks apiKey against the bcrypt hash and signs an HS256
// token for it.
func (s *Service) IssueToken(apiKey string) (*domain.TokenResponse, error) {
	if len(s.apiKeyHash) == 0 {
		return nil, domain.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(s.apiKeyHash, []byte(apiKey)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	now := s.now()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.jwtExpiry)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	return &domain.TokenResponse{
		AccessToken: tokenString,
		ExpiresIn:   int64(s.jwtExpiry.Seconds()),
	}, nil
}

// ValidateToken returns the token subject.
func (s *Service) ValidateToken(tokenString string) (string, error) {
	claims := &jwt.RegisteredClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return s.jwtSecret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !token.Valid {
		return "", ErrInvalidToken
	}

	return claims.Subject, nil
}

// HashAPIKey produces the value expected in API_KEY_HASH.
func HashAPIKey(apiKey string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(apiKey), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash api key: %w", err)
	}
	return string(b), nil
}
