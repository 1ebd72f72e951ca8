// Package apiauth provides bearer-JWT authentication for the mutating
// precompute endpoint (the draft evaluate/suggest endpoints are not
// guarded): a claims-parsing shape over
// golang-jwt/jwt/v5 with extract-from-header-or-query convenience,
// trimmed down to a single static-secret HS256 token since this API
// has no user accounts, refresh flow, or token rotation to manage —
// it authenticates trusted internal callers (the precompute CLI, the
// draft client), not end users.
package apiauth

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// Claims identifies the caller issuing a precompute or draft request.
type Claims struct {
	Subject string `json:"sub"`
	jwt.RegisteredClaims
}

// Manager issues and validates bearer tokens against a single shared
// secret.
type Manager struct {
	secret     []byte
	expiration time.Duration
}

// NewManager builds a Manager from the configured secret and token
// lifetime.
func NewManager(secret string, expiration time.Duration) *Manager {
	return &Manager{secret: []byte(secret), expiration: expiration}
}

// Issue mints a signed token for subject (e.g. "precompute-cli",
// "draft-client").
func (m *Manager) Issue(subject string) (string, error) {
	now := time.Now()
	claims := Claims{
		Subject: subject,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.expiration)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// Parse validates a token string and returns its claims.
func (m *Manager) Parse(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("apiauth: unexpected signing method")
		}
		return m.secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("apiauth: invalid token")
	}
	return claims, nil
}

// subjectContextKey avoids collisions with other gin context keys.
const subjectContextKey = "draftlens.apiauth.subject"

// RequireAuth returns gin middleware rejecting requests without a
// valid bearer token, and stashing the authenticated subject in the
// request context on success.
func (m *Manager) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			c.Abort()
			return
		}

		claims, err := m.Parse(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid authentication token"})
			c.Abort()
			return
		}

		c.Set(subjectContextKey, claims.Subject)
		c.Next()
	}
}

// Subject returns the authenticated caller recorded by RequireAuth.
func Subject(c *gin.Context) string {
	v, _ := c.Get(subjectContextKey)
	s, _ := v.(string)
	return s
}

func extractToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return c.Query("token")
}
