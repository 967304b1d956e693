package auth

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/jlfs-dev/picshare/internal/apperrors"
	"github.com/jlfs-dev/picshare/internal/models"
)

// CredentialStore is the slice of the user store the authenticator needs.
type CredentialStore interface {
	GetByUsername(ctx context.Context, username string) (*models.User, error)
}

// PasswordMatcher verifies a plaintext password against a stored digest.
type PasswordMatcher interface {
	Matches(plaintext, digest string) bool
}

// TokenService verifies credentials and mints/parses signed bearer tokens.
// Tokens are stateless HS256 JWTs carrying the username as subject; the
// signing key is set once at startup and never rotated at runtime.
type TokenService struct {
	store  CredentialStore
	hasher PasswordMatcher
	secret []byte
	ttl    time.Duration
}

func NewTokenService(store CredentialStore, hasher PasswordMatcher, secret []byte, ttl time.Duration) *TokenService {
	return &TokenService{store: store, hasher: hasher, secret: secret, ttl: ttl}
}

// Authenticate checks the credentials and returns a fresh token. Unknown
// username and wrong password are indistinguishable to the caller.
func (s *TokenService) Authenticate(ctx context.Context, username, password string) (string, error) {
	user, err := s.store.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperrors.ErrNoSuchUser) {
			return "", apperrors.ErrInvalidCredentials
		}
		return "", err
	}

	if !s.hasher.Matches(password, user.EncryptedPassword) {
		return "", apperrors.ErrInvalidCredentials
	}

	return s.Mint(user.Username)
}

// Mint issues a token with the given subject, issued now, expiring after ttl.
func (s *TokenService) Mint(subject string) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	})
	return token.SignedString(s.secret)
}

// SubjectOf parses and validates a token, returning its subject. Bad
// signature, malformed structure and expiry all map to ErrInvalidToken.
func (s *TokenService) SubjectOf(tokenString string) (string, error) {
	claims := &jwt.RegisteredClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return "", apperrors.ErrInvalidToken
	}

	return claims.Subject, nil
}

// Validate reports whether SubjectOf would succeed.
func (s *TokenService) Validate(tokenString string) bool {
	_, err := s.SubjectOf(tokenString)
	return err == nil
}
