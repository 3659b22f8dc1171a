package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt"
)

// fallbackSecret is only used by the sandbox when JWT_SECRET is unset.
const fallbackSecret = "CEDAR-SANDBOX"

var ErrInvalidToken = errors.New("invalid token")

// TokenClaims is the identity carried by a bearer token.
type TokenClaims struct {
	Subject      string
	UserType     string
	MembershipID string
	Role         string
}

// TokenIssuer signs and validates HS256 bearer tokens.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenIssuer creates an issuer. An empty secret falls back to the
// sandbox default.
func NewTokenIssuer(secret string, ttl time.Duration) *TokenIssuer {
	if secret == "" {
		secret = fallbackSecret
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &TokenIssuer{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// GenerateToken creates a signed JWT token for the given identity.
func (ti *TokenIssuer) GenerateToken(claims TokenClaims) (string, error) {
	now := ti.now()
	mc := jwt.MapClaims{
		"sub":  claims.Subject,
		"typ":  claims.UserType,
		"mid":  claims.MembershipID,
		"role": claims.Role,
		"iat":  now.Unix(),
		"exp":  now.Add(ti.ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, mc)
	return token.SignedString(ti.secret)
}

// ParseToken validates a token string and returns its identity.
func (ti *TokenIssuer) ParseToken(tokenString string) (TokenClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// Ensure that the token's signing method is HMAC.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return ti.secret, nil
	})
	if err != nil {
		return TokenClaims{}, ErrInvalidToken
	}

	mc, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return TokenClaims{}, ErrInvalidToken
	}

	sub, _ := mc["sub"].(string)
	if sub == "" {
		return TokenClaims{}, ErrInvalidToken
	}
	typ, _ := mc["typ"].(string)
	mid, _ := mc["mid"].(string)
	role, _ := mc["role"].(string)
	return TokenClaims{Subject: sub, UserType: typ, MembershipID: mid, Role: role}, nil
}
