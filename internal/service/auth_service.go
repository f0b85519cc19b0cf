package service

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"animated_gauge/internal/config"

	"github.com/golang-jwt/jwt/v5"
)

const (
	defaultTokenTTL = time.Hour
	tokenSubject    = "dashboard-editor"
	tokenIssuer     = "animated-gauge"
)

// Domain errors for auth flows.
var (
	ErrInvalidSecret = errors.New("invalid client secret")
	ErrInvalidToken  = errors.New("invalid token")
	ErrAuthDisabled  = errors.New("auth is not configured")
)

// AuthService trades the shared client secret for short-lived HS256 tokens.
type AuthService struct {
	signingKey   []byte
	clientSecret string
	ttl          time.Duration
	now          func() time.Time
}

func NewAuthService(cfg config.AuthConfig) *AuthService {
	ttl := cfg.TokenTTL
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	return &AuthService{
		signingKey:   []byte(cfg.SigningKey),
		clientSecret: cfg.ClientSecret,
		ttl:          ttl,
		now:          time.Now,
	}
}

// Claims defines JWT claims
type Claims struct {
	jwt.RegisteredClaims
}

// GenerateToken checks the client secret and returns a signed JWT.
func (s *AuthService) GenerateToken(clientSecret string) (string, error) {
	if s.clientSecret == "" || len(s.signingKey) == 0 {
		return "", ErrAuthDisabled
	}
	if subtle.ConstantTimeCompare([]byte(clientSecret), []byte(s.clientSecret)) != 1 {
		return "", ErrInvalidSecret
	}
	return s.issueToken()
}

// ParseToken validates accessToken and returns its subject.
func (s *AuthService) ParseToken(accessToken string) (string, error) {
	if len(s.signingKey) == 0 {
		return "", ErrAuthDisabled
	}
	token, err := jwt.ParseWithClaims(accessToken, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		// Ensure HMAC signing is used
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.signingKey, nil
	}, jwt.WithIssuer(tokenIssuer), jwt.WithTimeFunc(s.now))
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}

func (s *AuthService) issueToken() (string, error) {
	now := s.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   tokenSubject,
			Issuer:    tokenIssuer,
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	})
	return token.SignedString(s.signingKey)
}
