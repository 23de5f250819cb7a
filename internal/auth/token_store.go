package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"projecthub/internal/cache"
)

const (
	refreshTokenKeyPrefix  = "refresh_token:"
	revokedAccessKeyPrefix = "revoked:access_token:"
)

// ErrRefreshTokenNotFound is returned when a refresh token is unknown, expired or deleted.
var ErrRefreshTokenNotFound = errors.New("refresh token not found")

// TokenStore keeps server-side token state: live refresh tokens and revoked access tokens.
type TokenStore interface {
	StoreRefreshToken(ctx context.Context, tokenID string, userID uint, ttl time.Duration) error
	GetRefreshToken(ctx context.Context, tokenID string) (userID uint, err error)
	DeleteRefreshToken(ctx context.Context, tokenID string) error
	RevokeAccessToken(ctx context.Context, tokenID string, ttl time.Duration) error
	IsAccessTokenRevoked(ctx context.Context, tokenID string) bool
}

// RedisTokenStore handles storage and retrieval of tokens in Redis.
type RedisTokenStore struct {
	cache *cache.Client
}

var _ TokenStore = (*RedisTokenStore)(nil)

// NewTokenStore creates a Redis-backed token store.
func NewTokenStore(cache *cache.Client) *RedisTokenStore {
	return &RedisTokenStore{cache: cache}
}

// StoreRefreshToken stores a refresh token's owner with TTL.
func (s *RedisTokenStore) StoreRefreshToken(ctx context.Context, tokenID string, userID uint, ttl time.Duration) error {
	value := []byte(strconv.FormatUint(uint64(userID), 10))
	if err := s.cache.Set(ctx, refreshTokenKeyPrefix+tokenID, value, ttl); err != nil {
		return fmt.Errorf("store refresh token: %w", err)
	}
	return nil
}

// GetRefreshToken returns the owner of a live refresh token.
func (s *RedisTokenStore) GetRefreshToken(ctx context.Context, tokenID string) (uint, error) {
	data := s.cache.Get(ctx, refreshTokenKeyPrefix+tokenID)
	if data == nil {
		return 0, ErrRefreshTokenNotFound
	}
	id, err := strconv.ParseUint(string(data), 10, 64)
	if err != nil {
		return 0, ErrRefreshTokenNotFound
	}
	return uint(id), nil
}

// DeleteRefreshToken removes a refresh token.
func (s *RedisTokenStore) DeleteRefreshToken(ctx context.Context, tokenID string) error {
	if err := s.cache.Delete(ctx, refreshTokenKeyPrefix+tokenID); err != nil {
		return fmt.Errorf("delete refresh token: %w", err)
	}
	return nil
}

// RevokeAccessToken marks an access token as revoked until it would have expired.
func (s *RedisTokenStore) RevokeAccessToken(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	if err := s.cache.Set(ctx, revokedAccessKeyPrefix+tokenID, []byte("1"), ttl); err != nil {
		return fmt.Errorf("revoke access token: %w", err)
	}
	return nil
}

// IsAccessTokenRevoked checks the revocation list. Lookup failures count as not revoked.
func (s *RedisTokenStore) IsAccessTokenRevoked(ctx context.Context, tokenID string) bool {
	return s.cache.Get(ctx, revokedAccessKeyPrefix+tokenID) != nil
}
