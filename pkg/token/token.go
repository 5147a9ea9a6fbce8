package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken covers every verification failure: bad signature,
// malformed payload, expiry. Callers must not distinguish between them.
var ErrInvalidToken = errors.New("token is not valid")

// Identity is the authenticated principal decoded from a token.
type Identity struct {
	UserID string
}

type tokenUser struct {
	ID string `json:"id"`
}

// claims matches the wire payload {"user":{"id":...}} plus the
// registered iat/exp pair.
type claims struct {
	User tokenUser `json:"user"`
	jwt.RegisteredClaims
}

// Service issues and verifies compact HS256 credentials. Tokens are
// stateless: verification is signature plus expiry, nothing persisted.
type Service struct {
	secret    []byte
	expiresIn time.Duration

	now func() time.Time
}

func NewService(secret string, expiresIn time.Duration) *Service {
	return &Service{
		secret:    []byte(secret),
		expiresIn: expiresIn,
		now:       time.Now,
	}
}

// Issue signs a token for userID with the configured expiry window.
func (s *Service) Issue(userID string) (string, error) {
	if len(s.secret) == 0 {
		return "", errors.New("token: signing secret not configured")
	}

	now := s.now().UTC()
	c := claims{
		User: tokenUser{ID: userID},
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiresIn)),
		},
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	return t.SignedString(s.secret)
}

// Verify decodes and validates signature and expiry.
func (s *Service) Verify(tokenString string) (Identity, error) {
	p := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
	)

	var c claims
	tok, err := p.ParseWithClaims(tokenString, &c, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	})
	if err != nil || tok == nil || !tok.Valid {
		return Identity{}, ErrInvalidToken
	}
	if c.User.ID == "" {
		return Identity{}, ErrInvalidToken
	}

	return Identity{UserID: c.User.ID}, nil
}
