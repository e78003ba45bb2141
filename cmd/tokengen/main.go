// Command tokengen mints a development bearer token accepted by the API.
// It signs with the configured JWT secret, issuer and audience, so the
// output can be pasted straight into an Authorization header.
package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"inkwell/internal/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

func main() {
	subject := flag.String("sub", "author-1", "Principal ID to embed as the subject claim")
	email := flag.String("email", "author-1@example.com", "Email claim")
	verified := flag.Bool("verified", true, "email_verified claim")
	ttl := flag.Duration("ttl", 24*time.Hour, "Token lifetime")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub":            *subject,
		"email":          *email,
		"email_verified": *verified,
		"iss":            cfg.JWTIssuer,
		"aud":            cfg.JWTAudience,
		"iat":            now.Unix(),
		"exp":            now.Add(*ttl).Unix(),
		"jti":            uuid.NewString(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(cfg.JWTSecret))
	if err != nil {
		log.Fatalf("Failed to sign token: %v", err)
	}

	fmt.Println(signed)
}
