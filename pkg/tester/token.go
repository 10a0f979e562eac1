package tester

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Token is the bearer token presented to the test service.
// The service verifies it; the agent only reads its expiry.
type Token struct {
	Raw       string
	ExpiresAt *time.Time
}

func (t Token) Expired(now time.Time) bool {
	return t.ExpiresAt != nil && now.After(*t.ExpiresAt)
}

// ParseToken reads the claims of a JWT without verifying it.
// Opaque tokens are accepted and have no expiry.
func ParseToken(raw string) Token {
	t := Token{Raw: raw}

	parsed, _, err := jwt.NewParser().ParseUnverified(raw, jwt.MapClaims{})
	if err != nil {
		return t
	}
	exp, err := parsed.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return t
	}
	expiresAt := exp.Time
	t.ExpiresAt = &expiresAt
	return t
}

// LoadToken reads a token from a file.
func LoadToken(path string) (Token, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Token{}, fmt.Errorf("reading token file: %w", err)
	}
	raw := strings.TrimSpace(string(data))
	if raw == "" {
		return Token{}, fmt.Errorf("token file %s is empty", path)
	}
	return ParseToken(raw), nil
}
