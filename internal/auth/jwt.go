package auth

import (
	"fmt"
	"strconv"
	"time"

	"kkapi/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	// TokenIssuer is the iss claim stamped on every session token.
	TokenIssuer = "kkapi"
	// TokenAudience is the aud claim stamped on every session token.
	TokenAudience = "kkapi-client"
)

// Claims is the verified identity carried by a session token. The username
// is cached at issuance and trusted as-is; a rename does not invalidate
// outstanding tokens.
type Claims struct {
	UserID   uint
	Username string
}

// TokenManager signs and verifies stateless bearer credentials.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenManager creates a TokenManager with the given signing secret and
// default token lifetime.
func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	return &TokenManager{secret: []byte(secret), ttl: ttl}
}

// Issue mints a signed token for the given identity using the default TTL.
func (m *TokenManager) Issue(userID uint, username string) (string, error) {
	return m.IssueWithTTL(userID, username, m.ttl)
}

// IssueWithTTL mints a signed token with an explicit lifetime.
func (m *TokenManager) IssueWithTTL(userID uint, username string, ttl time.Duration) (string, error) {
	if len(m.secret) == 0 {
		return "", fmt.Errorf("JWT secret not configured")
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub":      strconv.FormatUint(uint64(userID), 10),
		"username": username,
		"iss":      TokenIssuer,
		"aud":      TokenAudience,
		"exp":      now.Add(ttl).Unix(),
		"iat":      now.Unix(),
		"nbf":      now.Unix(),
		"jti":      fmt.Sprintf("%d-%s", now.Unix(), uuid.New().String()[:8]),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// Verify checks the signature, structure and expiry of tokenString and
// returns the embedded claims. All failure modes collapse into a single
// UNAUTHORIZED error; re-authentication is the only recovery path.
func (m *TokenManager) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return m.secret, nil
	},
		jwt.WithIssuer(TokenIssuer),
		jwt.WithAudience(TokenAudience),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !token.Valid {
		return nil, models.NewUnauthorizedError("Invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, models.NewUnauthorizedError("Invalid token claims")
	}

	sub, ok := claims["sub"].(string)
	if !ok {
		return nil, models.NewUnauthorizedError("Invalid token subject")
	}
	userID, err := strconv.ParseUint(sub, 10, 32)
	if err != nil || userID == 0 {
		return nil, models.NewUnauthorizedError("Invalid user ID in token")
	}

	username, _ := claims["username"].(string)

	return &Claims{UserID: uint(userID), Username: username}, nil
}
