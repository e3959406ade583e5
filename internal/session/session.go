// Package session issues and validates signed session tokens and keeps the
// list of tokens revoked by logout.
package session

import (
	"context" // Context for Redis operations
	"errors"  // Sentinel errors
	"fmt"     // Error wrapping
	"time"    // Time for token expiration

	"github.com/golang-jwt/jwt/v5" // JWT library
	"github.com/google/uuid"       // Random token IDs
	"github.com/redis/go-redis/v9" // Revocation list storage

	"waste_tracker/internal/domain" // Principal
)

// CookieName is the cookie that carries the session token
const CookieName = "session"

var (
	// ErrInvalid wraps every reason a token fails to parse or verify
	ErrInvalid = errors.New("invalid session")
	// ErrRevoked is returned for a token that was logged out
	ErrRevoked = errors.New("session revoked")
)

// Claims is the session token payload
type Claims struct {
	UserID               uint   `json:"user_id"`  // Custom claim for user ID
	Username             string `json:"username"` // Custom claim for username
	jwt.RegisteredClaims                          // Standard JWT claims, ID is the token ID
}

// Principal returns the authenticated user the claims describe
func (c *Claims) Principal() domain.Principal {
	return domain.Principal{UserID: c.UserID, Username: c.Username}
}

// Manager signs, parses and revokes session tokens
type Manager struct {
	secret []byte        // HMAC signing key
	ttl    time.Duration // Token lifetime
	rdb    *redis.Client // Revocation list
	now    func() time.Time
}

// NewManager creates a session Manager
func NewManager(secret string, ttl time.Duration, rdb *redis.Client) *Manager {
	return &Manager{secret: []byte(secret), ttl: ttl, rdb: rdb, now: time.Now}
}

// TTL returns the lifetime of issued tokens
func (m *Manager) TTL() time.Duration {
	return m.ttl
}

// Issue creates a signed token for the user
func (m *Manager) Issue(user *domain.User) (string, error) {
	now := m.now()
	// Set token claims
	claims := Claims{
		UserID:   user.ID,       // Custom claim for user ID
		Username: user.Username, // Custom claim for username
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),                   // Token ID used for revocation
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)), // Token expiry
			IssuedAt:  jwt.NewNumericDate(now),            // Issued at current time
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims) // Create token with claims
	return token.SignedString(m.secret)                        // Sign the token with the secret
}

// Parse validates the signature and expiry of a token string
func (m *Manager) Parse(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (any, error) {
		return m.secret, nil // Return the secret key for validation
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(m.now))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalid, err) // Return error if parsing fails
	}
	// Validate token and extract claims
	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}
	return nil, fmt.Errorf("%w: %w", ErrInvalid, jwt.ErrSignatureInvalid)
}

// Authenticate parses a token and rejects it if it has been revoked
func (m *Manager) Authenticate(ctx context.Context, tokenStr string) (*Claims, error) {
	claims, err := m.Parse(tokenStr)
	if err != nil {
		return nil, err
	}
	revoked, err := m.rdb.Exists(ctx, revokedKey(claims.ID)).Result()
	if err != nil {
		return nil, fmt.Errorf("session: revocation lookup: %w", err)
	}
	if revoked > 0 {
		return nil, ErrRevoked
	}
	return claims, nil
}

// Revoke blocks the token until the moment it would have expired anyway
func (m *Manager) Revoke(ctx context.Context, claims *Claims) error {
	remaining := time.Minute
	if claims.ExpiresAt != nil {
		remaining = claims.ExpiresAt.Sub(m.now())
	}
	if remaining <= 0 {
		return nil
	}
	return m.rdb.Set(ctx, revokedKey(claims.ID), 1, remaining).Err()
}

func revokedKey(tokenID string) string {
	return "waste:session:revoked:" + tokenID
}
