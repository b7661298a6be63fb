// Package jwt issues and verifies the stateless bearer tokens that prove
// an identity. Tokens are HMAC-signed with a process-wide secret and
// expire 60 days after issuance. There is no server-side revocation:
// logout is client-side token discard, and a leaked token stays valid
// until its natural expiry. That is an accepted limitation of the
// contract, not an oversight.
package jwt

import (
	"errors"
	"fmt"

	gojwt "github.com/golang-jwt/jwt/v5"
)

// Typed verification failures.
var (
	// ErrTokenExpired marks a well-signed token past its expiry.
	ErrTokenExpired = errors.New("jwt: token expired")
	// ErrTokenInvalid marks a malformed or tampered token.
	ErrTokenInvalid = errors.New("jwt: token invalid")
)

// Claims is the exact claim set carried by every token: the identity's
// id and username plus the registered expiry claim.
type Claims struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	gojwt.RegisteredClaims
}

// Service signs and verifies identity tokens.
type Service struct {
	cfg Config
}

// NewService creates a token service from config.
func NewService(cfg Config) (*Service, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Service{cfg: cfg}, nil
}

// Issue mints a signed token for the identity with exp = now + TTL.
func (s *Service) Issue(id, username string) (string, error) {
	now := s.cfg.TimeFunc()
	claims := Claims{
		ID:       id,
		Username: username,
		RegisteredClaims: gojwt.RegisteredClaims{
			ExpiresAt: gojwt.NewNumericDate(now.Add(s.cfg.TTL)),
			IssuedAt:  gojwt.NewNumericDate(now),
		},
	}

	token := gojwt.NewWithClaims(gojwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.Secret))
	if err != nil {
		return "", fmt.Errorf("jwt: sign token: %w", err)
	}
	return signed, nil
}

// Parse verifies a token string and returns its claims. It fails with
// ErrTokenExpired for a well-signed but expired token and ErrTokenInvalid
// for anything else (bad signature, malformed, wrong algorithm).
func (s *Service) Parse(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := gojwt.ParseWithClaims(tokenString, claims, s.keyFunc,
		gojwt.WithValidMethods([]string{gojwt.SigningMethodHS256.Alg()}),
		gojwt.WithTimeFunc(s.cfg.TimeFunc),
		gojwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, gojwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}
	if !token.Valid {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}

func (s *Service) keyFunc(token *gojwt.Token) (interface{}, error) {
	if token.Method.Alg() != gojwt.SigningMethodHS256.Alg() {
		return nil, fmt.Errorf("jwt: unexpected signing method: %s", token.Method.Alg())
	}
	return []byte(s.cfg.Secret), nil
}
