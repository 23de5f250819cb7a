package service

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"projecthub/internal/model"
	"projecthub/internal/repository"
)

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	if args.Error(0) == nil && user.ID == 0 {
		user.ID = 1
	}
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) List(ctx context.Context) ([]model.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.User), args.Error(1)
}

// MockProjectRepository is a mock implementation of ProjectRepository.
type MockProjectRepository struct {
	mock.Mock
}

func (m *MockProjectRepository) Create(ctx context.Context, project *model.Project) error {
	return m.Called(ctx, project).Error(0)
}

func (m *MockProjectRepository) Update(ctx context.Context, project *model.Project) error {
	return m.Called(ctx, project).Error(0)
}

func (m *MockProjectRepository) FindByID(ctx context.Context, id uint) (*model.Project, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Project), args.Error(1)
}

func (m *MockProjectRepository) FindByName(ctx context.Context, name string) (*model.Project, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Project), args.Error(1)
}

func (m *MockProjectRepository) ListByOwner(ctx context.Context, ownerID uint) ([]model.Project, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Project), args.Error(1)
}

func (m *MockProjectRepository) CountByOwner(ctx context.Context, ownerID uint) (int64, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProjectRepository) Delete(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

// MockMemberRepository is a mock implementation of MemberRepository.
type MockMemberRepository struct {
	mock.Mock
}

func (m *MockMemberRepository) Create(ctx context.Context, member *model.ProjectMember) error {
	return m.Called(ctx, member).Error(0)
}

func (m *MockMemberRepository) Find(ctx context.Context, projectID, userID uint) (*model.ProjectMember, error) {
	args := m.Called(ctx, projectID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ProjectMember), args.Error(1)
}

func (m *MockMemberRepository) ListByProject(ctx context.Context, projectID uint) ([]model.ProjectMember, error) {
	args := m.Called(ctx, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ProjectMember), args.Error(1)
}

func (m *MockMemberRepository) Delete(ctx context.Context, projectID, userID uint) error {
	return m.Called(ctx, projectID, userID).Error(0)
}

// MockTaskRepository is a mock implementation of TaskRepository.
type MockTaskRepository struct {
	mock.Mock
}

func (m *MockTaskRepository) Create(ctx context.Context, task *model.Task) error {
	return m.Called(ctx, task).Error(0)
}

func (m *MockTaskRepository) Update(ctx context.Context, task *model.Task) error {
	return m.Called(ctx, task).Error(0)
}

func (m *MockTaskRepository) UpdateAssignee(ctx context.Context, id uint, assigneeID *uint) error {
	return m.Called(ctx, id, assigneeID).Error(0)
}

func (m *MockTaskRepository) FindByID(ctx context.Context, id uint) (*model.Task, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Task), args.Error(1)
}

func (m *MockTaskRepository) ListByProject(ctx context.Context, projectID uint) ([]model.Task, error) {
	args := m.Called(ctx, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Task), args.Error(1)
}

func (m *MockTaskRepository) ListByOwner(ctx context.Context, ownerID uint) ([]model.Task, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Task), args.Error(1)
}

func (m *MockTaskRepository) CountByStatusForOwner(ctx context.Context, ownerID uint) ([]repository.StatusCount, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.StatusCount), args.Error(1)
}

func (m *MockTaskRepository) CountAssignedTo(ctx context.Context, userID uint) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTaskRepository) Delete(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

// MockCommentRepository is a mock implementation of CommentRepository.
type MockCommentRepository struct {
	mock.Mock
}

func (m *MockCommentRepository) Create(ctx context.Context, comment *model.TaskComment) error {
	return m.Called(ctx, comment).Error(0)
}

func (m *MockCommentRepository) ListByTask(ctx context.Context, taskID uint) ([]model.TaskComment, error) {
	args := m.Called(ctx, taskID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.TaskComment), args.Error(1)
}

// MockTokenStore is a mock implementation of auth.TokenStore.
type MockTokenStore struct {
	mock.Mock
}

func (m *MockTokenStore) StoreRefreshToken(ctx context.Context, tokenID string, userID uint, ttl time.Duration) error {
	return m.Called(ctx, tokenID, userID, ttl).Error(0)
}

func (m *MockTokenStore) GetRefreshToken(ctx context.Context, tokenID string) (uint, error) {
	args := m.Called(ctx, tokenID)
	return args.Get(0).(uint), args.Error(1)
}

func (m *MockTokenStore) DeleteRefreshToken(ctx context.Context, tokenID string) error {
	return m.Called(ctx, tokenID).Error(0)
}

func (m *MockTokenStore) RevokeAccessToken(ctx context.Context, tokenID string, ttl time.Duration) error {
	return m.Called(ctx, tokenID, ttl).Error(0)
}

func (m *MockTokenStore) IsAccessTokenRevoked(ctx context.Context, tokenID string) bool {
	return m.Called(ctx, tokenID).Bool(0)
}
