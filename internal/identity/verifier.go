// Package identity verifies bearer credentials and produces the caller's Principal.
package identity

import (
	"context"
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
)

// Principal is the verified identity of a caller, derived from a bearer credential.
type Principal struct {
	ID            string
	Email         string
	EmailVerified bool
}

// Verification failure causes, surfaced so handlers can return distinguishing 401 reasons.
var (
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("token invalid")
	ErrTokenRevoked = errors.New("token revoked")
)

// Verifier validates a bearer credential and returns the verified principal.
type Verifier interface {
	Verify(ctx context.Context, token string) (*Principal, error)
}

// JWTVerifier verifies HMAC-signed bearer tokens with pinned issuer and audience.
// If a redis client is configured, tokens carrying a jti claim are checked against
// the revocation blacklist.
type JWTVerifier struct {
	secret   []byte
	issuer   string
	audience string
	redis    *redis.Client
}

// NewJWTVerifier creates a verifier. redisClient may be nil, which disables
// revocation checks.
func NewJWTVerifier(secret, issuer, audience string, redisClient *redis.Client) *JWTVerifier {
	return &JWTVerifier{
		secret:   []byte(secret),
		issuer:   issuer,
		audience: audience,
		redis:    redisClient,
	}
}

// Verify parses and validates the token, returning the principal it identifies.
func (v *JWTVerifier) Verify(ctx context.Context, tokenString string) (*Principal, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return v.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}
	if !token.Valid {
		return nil, ErrTokenInvalid
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrTokenInvalid
	}

	if issuer, issuerOk := claims["iss"].(string); !issuerOk || issuer != v.issuer {
		return nil, ErrTokenInvalid
	}
	if audience, audienceOk := claims["aud"].(string); !audienceOk || audience != v.audience {
		return nil, ErrTokenInvalid
	}

	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return nil, ErrTokenInvalid
	}

	if jti, exists := claims["jti"].(string); exists && jti != "" && v.redis != nil {
		blacklisted, err := v.redis.Exists(ctx, "blacklist:"+jti).Result()
		if err == nil && blacklisted > 0 {
			return nil, ErrTokenRevoked
		}
	}

	principal := &Principal{ID: sub}
	if email, ok := claims["email"].(string); ok {
		principal.Email = email
	}
	if verified, ok := claims["email_verified"].(bool); ok {
		principal.EmailVerified = verified
	}

	return principal, nil
}
