package authx

import (
	"strings"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const authContextKey = "authx_subject"

// Config holds service auth settings.
type Config struct {
	JWTSecret      string
	Issuer         string
	AccessTokenTTL time.Duration

	// APIKeyHashes are bcrypt hashes of accepted service keys, usually loaded
	// from the environment at boot.
	APIKeyHashes []string
}

// DefaultConfig returns sane defaults; the secret must still be provided.
func DefaultConfig() Config {
	return Config{
		Issuer:         "interview-ace",
		AccessTokenTTL: 24 * time.Hour,
	}
}

// Service issues and verifies JWTs and checks API keys.
type Service struct {
	config Config

	// verified caches API keys that already passed a bcrypt check, keyed by the
	// raw key. bcrypt is too slow to run per request.
	verifiedMu sync.RWMutex
	verified   map[string]bool
}

// NewService creates an auth service from config.
func NewService(config Config) *Service {
	return &Service{
		config:   config,
		verified: make(map[string]bool),
	}
}

// HashAPIKey produces a bcrypt hash suitable for Config.APIKeyHashes.
func HashAPIKey(key string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(key), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// IssueToken creates a signed access token for a subject (a client name).
func (s *Service) IssueToken(subject string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Issuer:    s.config.Issuer,
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.config.AccessTokenTTL)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.config.JWTSecret))
}

// VerifyToken parses a token and returns its subject.
func (s *Service) VerifyToken(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(s.config.JWTSecret), nil
	}, jwt.WithIssuer(s.config.Issuer), jwt.WithExpirationRequired())
	if err != nil {
		return "", err
	}
	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || !token.Valid {
		return "", jwt.ErrTokenInvalidClaims
	}
	return claims.Subject, nil
}

// VerifyAPIKey checks a raw key against the configured bcrypt hashes.
func (s *Service) VerifyAPIKey(key string) bool {
	if key == "" {
		return false
	}

	s.verifiedMu.RLock()
	_, ok := s.verified[key]
	s.verifiedMu.RUnlock()
	if ok {
		return true
	}

	valid := false
	for _, hash := range s.config.APIKeyHashes {
		if bcrypt.CompareHashAndPassword([]byte(hash), []byte(key)) == nil {
			valid = true
			break
		}
	}

	// Only successes are cached. Caching failures would let a flood of
	// invalid keys grow the map without bound.
	if valid {
		s.verifiedMu.Lock()
		s.verified[key] = true
		s.verifiedMu.Unlock()
	}
	return valid
}

// Middleware authenticates requests by bearer JWT or X-API-Key header.
// When no secret and no key hashes are configured, auth is disabled (dev mode).
func (s *Service) Middleware() fiber.Handler {
	disabled := s.config.JWTSecret == "" && len(s.config.APIKeyHashes) == 0

	return func(c *fiber.Ctx) error {
		if disabled {
			return c.Next()
		}

		if key := c.Get("X-API-Key"); key != "" {
			if s.VerifyAPIKey(key) {
				c.Locals(authContextKey, "api-key")
				return c.Next()
			}
		}

		authHeader := c.Get(fiber.HeaderAuthorization)
		if strings.HasPrefix(authHeader, "Bearer ") {
			subject, err := s.VerifyToken(strings.TrimPrefix(authHeader, "Bearer "))
			if err == nil {
				c.Locals(authContextKey, subject)
				return c.Next()
			}
		}

		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "authentication required",
		})
	}
}

// Subject returns the authenticated subject set by Middleware, if any.
func Subject(c *fiber.Ctx) (string, bool) {
	subject, ok := c.Locals(authContextKey).(string)
	return subject, ok
}
