package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	apperrors "projecthub/internal/errors"
	"projecthub/internal/model"
)

var (
	owner    = &model.User{ID: 1, Role: model.RoleManager}
	stranger = &model.User{ID: 2, Role: model.RoleAdmin}
	plain    = &model.User{ID: 3, Role: model.RoleUser}
)

func newProjectService() (ProjectService, *MockProjectRepository, *MockMemberRepository, *MockUserRepository) {
	projects := new(MockProjectRepository)
	members := new(MockMemberRepository)
	users := new(MockUserRepository)
	return NewProjectService(projects, members, users), projects, members, users
}

func TestProjectService_Create(t *testing.T) {
	tests := []struct {
		name          string
		actor         *model.User
		setupMock     func(*MockProjectRepository)
		expectedError error
	}{
		{
			name:  "manager creates project",
			actor: owner,
			setupMock: func(m *MockProjectRepository) {
				m.On("FindByName", mock.Anything, "Apollo").Return(nil, gorm.ErrRecordNotFound)
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.Project")).Return(nil)
			},
		},
		{
			name:          "plain user is rejected by role",
			actor:         plain,
			setupMock:     func(*MockProjectRepository) {},
			expectedError: apperrors.ErrForbidden,
		},
		{
			name:  "name already taken",
			actor: owner,
			setupMock: func(m *MockProjectRepository) {
				m.On("FindByName", mock.Anything, "Apollo").Return(&model.Project{ID: 9, Name: "Apollo"}, nil)
			},
			expectedError: apperrors.ErrProjectNameTaken,
		},
		{
			name:  "name taken concurrently",
			actor: owner,
			setupMock: func(m *MockProjectRepository) {
				m.On("FindByName", mock.Anything, "Apollo").Return(nil, gorm.ErrRecordNotFound)
				m.On("Create", mock.Anything, mock.Anything).Return(gorm.ErrDuplicatedKey)
			},
			expectedError: apperrors.ErrProjectNameTaken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, projects, _, _ := newProjectService()
			tt.setupMock(projects)

			project, err := svc.Create(context.Background(), tt.actor, ProjectInput{Name: " Apollo "})
			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, project)
			} else {
				require.NoError(t, err)
				assert.Equal(t, "Apollo", project.Name)
				assert.Equal(t, tt.actor.ID, project.OwnerID)
			}
			projects.AssertExpectations(t)
		})
	}
}

func TestProjectService_NonOwnerSeesNotFound(t *testing.T) {
	svc, projects, _, _ := newProjectService()
	projects.On("FindByID", mock.Anything, uint(10)).Return(&model.Project{ID: 10, Name: "P", OwnerID: owner.ID}, nil)

	ctx := context.Background()

	_, err := svc.Get(ctx, stranger, 10)
	assert.Equal(t, apperrors.ErrProjectNotFound, err)

	_, err = svc.Update(ctx, stranger, 10, ProjectInput{Name: "Q"})
	assert.Equal(t, apperrors.ErrProjectNotFound, err)

	assert.Equal(t, apperrors.ErrProjectNotFound, svc.Delete(ctx, stranger, 10))

	_, err = svc.ListMembers(ctx, stranger, 10)
	assert.Equal(t, apperrors.ErrProjectNotFound, err)

	got, err := svc.Get(ctx, owner, 10)
	require.NoError(t, err)
	assert.Equal(t, uint(10), got.ID)

	projects.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	projects.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestProjectService_MissingProjectIsNotFound(t *testing.T) {
	svc, projects, _, _ := newProjectService()
	projects.On("FindByID", mock.Anything, uint(99)).Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.Get(context.Background(), owner, 99)
	assert.Equal(t, apperrors.ErrProjectNotFound, err)
}

func TestProjectService_Update(t *testing.T) {
	svc, projects, _, _ := newProjectService()
	projects.On("FindByID", mock.Anything, uint(10)).Return(&model.Project{ID: 10, Name: "P", OwnerID: owner.ID}, nil)
	projects.On("FindByName", mock.Anything, "Taken").Return(&model.Project{ID: 11, Name: "Taken"}, nil)
	projects.On("FindByName", mock.Anything, "Free").Return(nil, gorm.ErrRecordNotFound)
	projects.On("Update", mock.Anything, mock.AnythingOfType("*model.Project")).Return(nil)

	_, err := svc.Update(context.Background(), owner, 10, ProjectInput{Name: "Taken"})
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	desc := "new"
	updated, err := svc.Update(context.Background(), owner, 10, ProjectInput{Name: "Free", Description: &desc})
	require.NoError(t, err)
	assert.Equal(t, "Free", updated.Name)
	assert.Equal(t, "new", *updated.Description)
}

func TestProjectService_Delete(t *testing.T) {
	svc, projects, _, _ := newProjectService()
	projects.On("FindByID", mock.Anything, uint(10)).Return(&model.Project{ID: 10, OwnerID: owner.ID}, nil)
	projects.On("Delete", mock.Anything, uint(10)).Return(nil)

	require.NoError(t, svc.Delete(context.Background(), owner, 10))
	projects.AssertExpectations(t)
}

func TestProjectService_AddMember(t *testing.T) {
	tests := []struct {
		name          string
		setupMock     func(*MockMemberRepository, *MockUserRepository)
		expectedError error
	}{
		{
			name: "adds member",
			setupMock: func(m *MockMemberRepository, u *MockUserRepository) {
				u.On("FindByID", mock.Anything, uint(5)).Return(&model.User{ID: 5}, nil)
				m.On("Find", mock.Anything, uint(10), uint(5)).Return(nil, gorm.ErrRecordNotFound)
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.ProjectMember")).Return(nil)
			},
		},
		{
			name: "unknown user",
			setupMock: func(m *MockMemberRepository, u *MockUserRepository) {
				u.On("FindByID", mock.Anything, uint(5)).Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: apperrors.ErrUnknownUser,
		},
		{
			name: "already a member",
			setupMock: func(m *MockMemberRepository, u *MockUserRepository) {
				u.On("FindByID", mock.Anything, uint(5)).Return(&model.User{ID: 5}, nil)
				m.On("Find", mock.Anything, uint(10), uint(5)).Return(&model.ProjectMember{ID: 1}, nil)
			},
			expectedError: apperrors.ErrAlreadyMember,
		},
		{
			name: "joined concurrently",
			setupMock: func(m *MockMemberRepository, u *MockUserRepository) {
				u.On("FindByID", mock.Anything, uint(5)).Return(&model.User{ID: 5}, nil)
				m.On("Find", mock.Anything, uint(10), uint(5)).Return(nil, gorm.ErrRecordNotFound)
				m.On("Create", mock.Anything, mock.Anything).Return(gorm.ErrDuplicatedKey)
			},
			expectedError: apperrors.ErrAlreadyMember,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, projects, members, users := newProjectService()
			projects.On("FindByID", mock.Anything, uint(10)).Return(&model.Project{ID: 10, OwnerID: owner.ID}, nil)
			tt.setupMock(members, users)

			member, err := svc.AddMember(context.Background(), owner, 10, 5, "developer")
			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, member)
			} else {
				require.NoError(t, err)
				assert.Equal(t, uint(10), member.ProjectID)
				assert.Equal(t, uint(5), member.UserID)
				assert.Equal(t, "developer", member.Role)
			}
			members.AssertExpectations(t)
			users.AssertExpectations(t)
		})
	}
}

func TestProjectService_RemoveMember(t *testing.T) {
	svc, projects, members, _ := newProjectService()
	projects.On("FindByID", mock.Anything, uint(10)).Return(&model.Project{ID: 10, OwnerID: owner.ID}, nil)
	members.On("Delete", mock.Anything, uint(10), uint(5)).Return(nil).Once()
	members.On("Delete", mock.Anything, uint(10), uint(5)).Return(gorm.ErrRecordNotFound).Once()

	require.NoError(t, svc.RemoveMember(context.Background(), owner, 10, 5))
	assert.Equal(t, apperrors.ErrMemberNotFound, svc.RemoveMember(context.Background(), owner, 10, 5))
}

func TestProjectService_BlankName(t *testing.T) {
	svc, projects, _, _ := newProjectService()
	projects.On("FindByID", mock.Anything, uint(10)).Return(&model.Project{ID: 10, Name: "P", OwnerID: owner.ID}, nil)

	_, err := svc.Create(context.Background(), owner, ProjectInput{Name: "   "})
	assert.Equal(t, apperrors.ErrBlankField, err)

	_, err = svc.Update(context.Background(), owner, 10, ProjectInput{Name: "\t "})
	assert.Equal(t, apperrors.ErrBlankField, err)

	projects.AssertNotCalled(t, "FindByName", mock.Anything, mock.Anything)
	projects.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	projects.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}
