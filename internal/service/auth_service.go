package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"projecthub/internal/auth"
	apperrors "projecthub/internal/errors"
	"projecthub/internal/model"
	"projecthub/internal/repository"
)

// TokenTypeBearer is the token_type returned on login.
const TokenTypeBearer = "bearer"

var errRefreshNotStored = errors.New("refresh token not stored")

// TokenPair is the result of a successful login or refresh.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    time.Duration
}

// AuthService handles credential checks and the token lifecycle.
type AuthService interface {
	Login(ctx context.Context, email, password string) (*TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (*TokenPair, error)
	Logout(ctx context.Context, principal *auth.Principal, refreshToken string) error
}

type authService struct {
	users      repository.UserRepository
	hasher     *auth.PasswordHasher
	jwtService *auth.JWTService
	tokenStore auth.TokenStore
}

// NewAuthService creates a new authentication service.
func NewAuthService(users repository.UserRepository, hasher *auth.PasswordHasher, jwtService *auth.JWTService, tokenStore auth.TokenStore) AuthService {
	return &authService{
		users:      users,
		hasher:     hasher,
		jwtService: jwtService,
		tokenStore: tokenStore,
	}
}

// Login verifies credentials and returns access and refresh tokens. Unknown
// email and wrong password produce the same error.
func (s *authService) Login(ctx context.Context, email, password string) (*TokenPair, error) {
	user, err := s.users.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, apperrors.ErrBadCredentials
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, apperrors.ErrBadCredentials
	}

	accessToken, err := s.jwtService.Issue(user.ID, user.Role)
	if err != nil {
		return nil, fmt.Errorf("generate access token: %w", err)
	}

	// A refresh token the store did not record could never be redeemed, so
	// login then degrades to an access token only.
	refreshToken, err := s.issueRefresh(ctx, user)
	if err != nil && !errors.Is(err, errRefreshNotStored) {
		return nil, err
	}

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    s.jwtService.AccessTTL(),
	}, nil
}

func (s *authService) issueRefresh(ctx context.Context, user *model.User) (string, error) {
	tokenID, token, err := s.jwtService.IssueRefresh(user.ID, user.Role)
	if err != nil {
		return "", fmt.Errorf("generate refresh token: %w", err)
	}
	if err := s.tokenStore.StoreRefreshToken(ctx, tokenID, user.ID, s.jwtService.RefreshTTL()); err != nil {
		return "", fmt.Errorf("%w: %v", errRefreshNotStored, err)
	}
	return token, nil
}

// Refresh validates a refresh token and returns a new access token. The role
// is re-read from storage so a token never outlives a role change.
func (s *authService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	claims, err := s.jwtService.VerifyRefresh(refreshToken)
	if err != nil {
		return nil, apperrors.ErrBadRefreshToken
	}

	storedUserID, err := s.tokenStore.GetRefreshToken(ctx, claims.ID)
	if err != nil || storedUserID != claims.UserID {
		return nil, apperrors.ErrBadRefreshToken
	}

	user, err := s.users.FindByID(ctx, claims.UserID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, apperrors.ErrBadRefreshToken
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	accessToken, err := s.jwtService.Issue(user.ID, user.Role)
	if err != nil {
		return nil, fmt.Errorf("generate access token: %w", err)
	}

	return &TokenPair{
		AccessToken: accessToken,
		ExpiresIn:   s.jwtService.AccessTTL(),
	}, nil
}

// Logout revokes the presented access token and, when given, the refresh token.
func (s *authService) Logout(ctx context.Context, principal *auth.Principal, refreshToken string) error {
	if principal == nil {
		return apperrors.ErrNotAuthenticated
	}

	if refreshToken != "" {
		claims, err := s.jwtService.VerifyRefresh(refreshToken)
		if err != nil || claims.UserID != principal.User.ID {
			return apperrors.ErrBadRefreshToken
		}
		if err := s.tokenStore.DeleteRefreshToken(ctx, claims.ID); err != nil {
			return fmt.Errorf("logout: %w", err)
		}
	}

	ttl := time.Until(principal.ExpiresAt)
	if err := s.tokenStore.RevokeAccessToken(ctx, principal.TokenID, ttl); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	return nil
}
