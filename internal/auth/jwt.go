package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/ecobin/rewards-backend/internal/domain"
)

// clockSkew tolerates drift between this service and the identity provider.
const clockSkew = 30 * time.Second

// JWTManager validates HS256 access tokens issued by the identity provider.
// It can also mint tokens, which the seeder uses to hand out dev credentials.
type JWTManager struct {
	secret    []byte
	issuer    string
	accessTTL time.Duration
}

// NewJWTManager creates a new JWT manager.
// secret must be at least 32 characters for HS256 security.
func NewJWTManager(secret string, issuer string, accessTTL time.Duration) *JWTManager {
	return &JWTManager{
		secret:    []byte(secret),
		issuer:    issuer,
		accessTTL: accessTTL,
	}
}

// accessClaims extends standard JWT claims with the account's role.
type accessClaims struct {
	jwt.RegisteredClaims
	Role string `json:"role,omitempty"`
}

// GenerateAccessToken creates a signed HS256 JWT with the account ID as
// subject and role as a custom claim.
func (m *JWTManager) GenerateAccessToken(accountID uuid.UUID, role string) (string, error) {
	now := time.Now()
	claims := accessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   accountID.String(),
			Issuer:    m.issuer,
			ExpiresAt: jwt.NewNumericDate(now.Add(m.accessTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		Role: role,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	return signed, nil
}

// ValidateAccessToken parses and validates a JWT access token and returns
// the account ID and lower-cased role. Every failure wraps
// domain.ErrUnauthorized.
func (m *JWTManager) ValidateAccessToken(tokenString string) (uuid.UUID, string, error) {
	if tokenString == "" {
		return uuid.Nil, "", fmt.Errorf("%w: token is empty", domain.ErrUnauthorized)
	}

	token, err := jwt.ParseWithClaims(tokenString, &accessClaims{},
		func(*jwt.Token) (any, error) { return m.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(clockSkew),
	)
	if err != nil {
		return uuid.Nil, "", fmt.Errorf("%w: parse token: %w", domain.ErrUnauthorized, err)
	}

	claims, ok := token.Claims.(*accessClaims)
	if !ok || !token.Valid {
		return uuid.Nil, "", fmt.Errorf("%w: invalid token claims", domain.ErrUnauthorized)
	}

	if claims.Issuer != m.issuer {
		return uuid.Nil, "", fmt.Errorf("%w: invalid issuer: expected %s, got %s", domain.ErrUnauthorized, m.issuer, claims.Issuer)
	}

	accountID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, "", fmt.Errorf("%w: invalid subject: %w", domain.ErrUnauthorized, err)
	}
	if accountID == uuid.Nil {
		return uuid.Nil, "", fmt.Errorf("%w: invalid subject: nil UUID", domain.ErrUnauthorized)
	}

	return accountID, strings.ToLower(strings.TrimSpace(claims.Role)), nil
}

// ValidateToken satisfies the HTTP auth middleware.
func (m *JWTManager) ValidateToken(_ context.Context, token string) (uuid.UUID, string, error) {
	return m.ValidateAccessToken(token)
}
