package service

import (
	"context"
	"fmt"
	"strings"

	"projecthub/internal/auth"
	apperrors "projecthub/internal/errors"
	"projecthub/internal/model"
	"projecthub/internal/repository"
)

// ProjectInput carries the writable fields of a project.
type ProjectInput struct {
	Name        string
	Description *string
}

// ProjectService manages projects and their memberships. Visibility is
// owner-scoped: every read and write requires the actor to own the project,
// and a project the actor does not own is reported as not found.
type ProjectService interface {
	Create(ctx context.Context, actor *model.User, in ProjectInput) (*model.Project, error)
	List(ctx context.Context, actor *model.User) ([]model.Project, error)
	Get(ctx context.Context, actor *model.User, id uint) (*model.Project, error)
	Update(ctx context.Context, actor *model.User, id uint, in ProjectInput) (*model.Project, error)
	Delete(ctx context.Context, actor *model.User, id uint) error

	AddMember(ctx context.Context, actor *model.User, projectID, userID uint, role string) (*model.ProjectMember, error)
	ListMembers(ctx context.Context, actor *model.User, projectID uint) ([]model.ProjectMember, error)
	RemoveMember(ctx context.Context, actor *model.User, projectID, userID uint) error
}

type projectService struct {
	projects repository.ProjectRepository
	members  repository.MemberRepository
	users    repository.UserRepository
}

// NewProjectService creates a new project service.
func NewProjectService(projects repository.ProjectRepository, members repository.MemberRepository, users repository.UserRepository) ProjectService {
	return &projectService{projects: projects, members: members, users: users}
}

// Create requires the actor to hold a project-creator role.
func (s *projectService) Create(ctx context.Context, actor *model.User, in ProjectInput) (*model.Project, error) {
	if err := auth.Authorize(actor, auth.ProjectCreatorRoles...); err != nil {
		return nil, err
	}

	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return nil, apperrors.ErrBlankField
	}
	if err := s.checkNameFree(ctx, in.Name, 0); err != nil {
		return nil, err
	}

	project := &model.Project{
		Name:        in.Name,
		Description: in.Description,
		OwnerID:     actor.ID,
	}
	if err := s.projects.Create(ctx, project); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, apperrors.ErrProjectNameTaken
		}
		return nil, fmt.Errorf("create project: %w", err)
	}
	return project, nil
}

func (s *projectService) List(ctx context.Context, actor *model.User) ([]model.Project, error) {
	projects, err := s.projects.ListByOwner(ctx, actor.ID)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	return projects, nil
}

func (s *projectService) Get(ctx context.Context, actor *model.User, id uint) (*model.Project, error) {
	project, err := s.projects.FindByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, apperrors.ErrProjectNotFound
		}
		return nil, fmt.Errorf("find project: %w", err)
	}
	if err := auth.RequireProjectOwner(actor, project); err != nil {
		return nil, err
	}
	return project, nil
}

func (s *projectService) Update(ctx context.Context, actor *model.User, id uint, in ProjectInput) (*model.Project, error) {
	project, err := s.Get(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return nil, apperrors.ErrBlankField
	}
	if in.Name != project.Name {
		if err := s.checkNameFree(ctx, in.Name, project.ID); err != nil {
			return nil, err
		}
	}

	project.Name = in.Name
	project.Description = in.Description
	if err := s.projects.Update(ctx, project); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, apperrors.ErrProjectNameTaken
		}
		return nil, fmt.Errorf("update project: %w", err)
	}
	return project, nil
}

// Delete removes the project together with its tasks, comments and memberships.
func (s *projectService) Delete(ctx context.Context, actor *model.User, id uint) error {
	if _, err := s.Get(ctx, actor, id); err != nil {
		return err
	}
	if err := s.projects.Delete(ctx, id); err != nil {
		if repository.IsNotFound(err) {
			return apperrors.ErrProjectNotFound
		}
		return fmt.Errorf("delete project: %w", err)
	}
	return nil
}

func (s *projectService) checkNameFree(ctx context.Context, name string, selfID uint) error {
	existing, err := s.projects.FindByName(ctx, name)
	switch {
	case err == nil && existing.ID != selfID:
		return apperrors.ErrProjectNameTaken
	case err != nil && !repository.IsNotFound(err):
		return fmt.Errorf("check project name: %w", err)
	}
	return nil
}

func (s *projectService) AddMember(ctx context.Context, actor *model.User, projectID, userID uint, role string) (*model.ProjectMember, error) {
	if _, err := s.Get(ctx, actor, projectID); err != nil {
		return nil, err
	}

	if _, err := s.users.FindByID(ctx, userID); err != nil {
		if repository.IsNotFound(err) {
			return nil, apperrors.ErrUnknownUser
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	if _, err := s.members.Find(ctx, projectID, userID); err == nil {
		return nil, apperrors.ErrAlreadyMember
	} else if !repository.IsNotFound(err) {
		return nil, fmt.Errorf("check membership: %w", err)
	}

	member := &model.ProjectMember{ProjectID: projectID, UserID: userID, Role: strings.TrimSpace(role)}
	if err := s.members.Create(ctx, member); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, apperrors.ErrAlreadyMember
		}
		return nil, fmt.Errorf("create membership: %w", err)
	}
	return member, nil
}

func (s *projectService) ListMembers(ctx context.Context, actor *model.User, projectID uint) ([]model.ProjectMember, error) {
	if _, err := s.Get(ctx, actor, projectID); err != nil {
		return nil, err
	}
	members, err := s.members.ListByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}
	return members, nil
}

func (s *projectService) RemoveMember(ctx context.Context, actor *model.User, projectID, userID uint) error {
	if _, err := s.Get(ctx, actor, projectID); err != nil {
		return err
	}
	if err := s.members.Delete(ctx, projectID, userID); err != nil {
		if repository.IsNotFound(err) {
			return apperrors.ErrMemberNotFound
		}
		return fmt.Errorf("delete membership: %w", err)
	}
	return nil
}
