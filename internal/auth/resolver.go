package auth

import (
	"context"
	"time"

	apperrors "projecthub/internal/errors"
	"projecthub/internal/model"
)

// UserFinder looks users up by primary key.
type UserFinder interface {
	GetUser(ctx context.Context, id uint) (*model.User, error)
}

// Principal is the authenticated user behind a request plus the token that proved it.
type Principal struct {
	User      *model.User
	TokenID   string
	ExpiresAt time.Time
}

// Resolver turns a bearer token into a Principal.
type Resolver struct {
	tokens *JWTService
	store  TokenStore
	users  UserFinder
}

// NewResolver creates an identity resolver.
func NewResolver(tokens *JWTService, store TokenStore, users UserFinder) *Resolver {
	return &Resolver{tokens: tokens, store: store, users: users}
}

// Resolve verifies token and loads its user. Every failure mode yields the same
// Unauthenticated error so callers cannot tell a bad token from a deleted user.
func (r *Resolver) Resolve(ctx context.Context, token string) (*Principal, error) {
	claims, err := r.tokens.Verify(token)
	if err != nil {
		return nil, apperrors.ErrNotAuthenticated
	}
	if r.store != nil && r.store.IsAccessTokenRevoked(ctx, claims.ID) {
		return nil, apperrors.ErrNotAuthenticated
	}

	user, err := r.users.GetUser(ctx, claims.UserID)
	if err != nil || user == nil {
		return nil, apperrors.ErrNotAuthenticated
	}

	return &Principal{
		User:      user,
		TokenID:   claims.ID,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}
