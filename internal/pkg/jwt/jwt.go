package jwt

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"

	"prodcatalog/internal/domain"
)

const refreshTokenBytes = 64

// Service mints signed access tokens and opaque refresh tokens.
type Service struct {
	key      []byte
	issuer   string
	audience string
	ttl      time.Duration
}

type Claims struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	jwtlib.RegisteredClaims
}

func New(key, issuer, audience string, ttl time.Duration) *Service {
	return &Service{
		key:      []byte(key),
		issuer:   issuer,
		audience: audience,
		ttl:      ttl,
	}
}

// CreateAccessToken signs an HS256 token for the user. Validity is proven by
// signature and expiry alone, there is no server-side session behind it.
// The email claim is an empty string when the user has none, never absent.
func (s *Service) CreateAccessToken(user *domain.User) (string, error) {
	now := time.Now()
	claims := Claims{
		Username: user.Username,
		Email:    user.Email,
		RegisteredClaims: jwtlib.RegisteredClaims{
			Subject:   user.ID.String(),
			Issuer:    s.issuer,
			Audience:  jwtlib.ClaimStrings{s.audience},
			ExpiresAt: jwtlib.NewNumericDate(now.Add(s.ttl)),
			IssuedAt:  jwtlib.NewNumericDate(now),
		},
	}

	token := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims)
	return token.SignedString(s.key)
}

// ValidateToken parses an access token, enforcing signature, expiry, issuer
// and audience.
func (s *Service) ValidateToken(tokenStr string) (*Claims, error) {
	token, err := jwtlib.ParseWithClaims(tokenStr, &Claims{}, func(t *jwtlib.Token) (any, error) {
		return s.key, nil
	},
		jwtlib.WithValidMethods([]string{jwtlib.SigningMethodHS256.Alg()}),
		jwtlib.WithIssuer(s.issuer),
		jwtlib.WithAudience(s.audience),
	)
	if err != nil || !token.Valid {
		return nil, errors.New("invalid token")
	}

	claims, ok := token.Claims.(*Claims)
	if !ok {
		return nil, errors.New("invalid claims")
	}

	return claims, nil
}

// NewRefreshToken returns 64 bytes of cryptographically secure randomness,
// base64-encoded. Collisions are negligible; the unique index on the
// refresh_tokens table is the backstop.
func (s *Service) NewRefreshToken() (string, error) {
	buf := make([]byte, refreshTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf), nil
}
