package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"projecthub/internal/auth"
	"projecthub/internal/cache"
	apperrors "projecthub/internal/errors"
	"projecthub/internal/model"
	"projecthub/internal/repository"
)

const userCacheTTL = 5 * time.Minute

// RegisterInput carries the fields of a registration request.
type RegisterInput struct {
	Username string
	Email    string
	Password string
	Role     model.Role
}

// UserService exposes user domain operations.
type UserService interface {
	Register(ctx context.Context, in RegisterInput) (*model.User, error)
	GetUser(ctx context.Context, id uint) (*model.User, error)
	ListUsers(ctx context.Context) ([]model.User, error)
}

type userService struct {
	repo   repository.UserRepository
	hasher *auth.PasswordHasher
	cache  *cache.Client
}

// NewUserService builds a UserService with repository, hasher and cache.
func NewUserService(repo repository.UserRepository, hasher *auth.PasswordHasher, cache *cache.Client) UserService {
	return &userService{repo: repo, hasher: hasher, cache: cache}
}

func (s *userService) cacheKey(id uint) string {
	return fmt.Sprintf("user:%d", id)
}

// Register creates a new user with a hashed password. The email and username
// pre-checks are advisory; the unique indexes are authoritative.
func (s *userService) Register(ctx context.Context, in RegisterInput) (*model.User, error) {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Username = strings.TrimSpace(in.Username)
	if in.Username == "" {
		return nil, apperrors.ErrBlankField
	}
	if in.Role == "" {
		in.Role = model.RoleUser
	}
	if !in.Role.Valid() {
		return nil, apperrors.ErrInvalidRole
	}

	if err := s.checkAvailable(ctx, in.Email, in.Username); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: hash,
		Role:         in.Role,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, s.takenError(ctx, in.Email)
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

func (s *userService) checkAvailable(ctx context.Context, email, username string) error {
	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		return apperrors.ErrEmailTaken
	} else if !repository.IsNotFound(err) {
		return fmt.Errorf("check email: %w", err)
	}

	if _, err := s.repo.FindByUsername(ctx, username); err == nil {
		return apperrors.ErrUsernameTaken
	} else if !repository.IsNotFound(err) {
		return fmt.Errorf("check username: %w", err)
	}
	return nil
}

// takenError works out which unique field lost a concurrent insert race.
func (s *userService) takenError(ctx context.Context, email string) error {
	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		return apperrors.ErrEmailTaken
	}
	return apperrors.ErrUsernameTaken
}

// GetUser loads a user, serving from cache when possible.
func (s *userService) GetUser(ctx context.Context, id uint) (*model.User, error) {
	var cached model.User
	if s.cache.GetJSON(ctx, s.cacheKey(id), &cached) && cached.ID == id {
		return &cached, nil
	}

	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	s.cache.SetJSON(ctx, s.cacheKey(id), user, userCacheTTL)
	return user, nil
}

// ListUsers returns all users. Unpaginated.
func (s *userService) ListUsers(ctx context.Context) ([]model.User, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}
