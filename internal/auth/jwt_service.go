package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"projecthub/internal/model"
)

const (
	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"
)

// ErrInvalidToken is returned for any token that fails verification.
var ErrInvalidToken = errors.New("invalid token")

// Claims represents JWT claims.
type Claims struct {
	UserID    uint       `json:"user_id"`
	Role      model.Role `json:"role"`
	TokenType string     `json:"typ"`
	jwt.RegisteredClaims
}

// JWTService issues and verifies signed identity tokens.
type JWTService struct {
	secret     []byte
	method     jwt.SigningMethod
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

// NewJWTService creates a JWT service. algorithm must name an HMAC method.
func NewJWTService(secret, algorithm string, accessTTL, refreshTTL time.Duration) (*JWTService, error) {
	if secret == "" {
		return nil, errors.New("empty signing secret")
	}
	method, ok := jwt.GetSigningMethod(algorithm).(*jwt.SigningMethodHMAC)
	if !ok {
		return nil, fmt.Errorf("unsupported signing algorithm %q", algorithm)
	}
	return &JWTService{
		secret:     []byte(secret),
		method:     method,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		now:        time.Now,
	}, nil
}

// AccessTTL returns the lifetime of access tokens.
func (s *JWTService) AccessTTL() time.Duration { return s.accessTTL }

// RefreshTTL returns the lifetime of refresh tokens.
func (s *JWTService) RefreshTTL() time.Duration { return s.refreshTTL }

// Issue generates an access token carrying userID and role.
func (s *JWTService) Issue(userID uint, role model.Role) (string, error) {
	_, token, err := s.sign(userID, role, tokenTypeAccess, s.accessTTL)
	return token, err
}

// IssueRefresh generates a refresh token. The token ID is returned separately
// for storage in Redis.
func (s *JWTService) IssueRefresh(userID uint, role model.Role) (tokenID string, token string, err error) {
	return s.sign(userID, role, tokenTypeRefresh, s.refreshTTL)
}

func (s *JWTService) sign(userID uint, role model.Role, typ string, ttl time.Duration) (string, string, error) {
	now := s.now()
	tokenID := uuid.New().String()
	claims := &Claims{
		UserID:    userID,
		Role:      role,
		TokenType: typ,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        tokenID,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token, err := jwt.NewWithClaims(s.method, claims).SignedString(s.secret)
	if err != nil {
		return "", "", fmt.Errorf("sign token: %w", err)
	}
	return tokenID, token, nil
}

// Verify validates an access token and returns its claims.
func (s *JWTService) Verify(tokenString string) (*Claims, error) {
	return s.parse(tokenString, tokenTypeAccess)
}

// VerifyRefresh validates a refresh token and returns its claims.
func (s *JWTService) VerifyRefresh(tokenString string) (*Claims, error) {
	return s.parse(tokenString, tokenTypeRefresh)
}

func (s *JWTService) parse(tokenString, typ string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{s.method.Alg()}))
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.UserID == 0 || claims.TokenType != typ || claims.ExpiresAt == nil {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
