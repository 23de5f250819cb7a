package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"projecthub/internal/auth"
	apperrors "projecthub/internal/errors"
	"projecthub/internal/model"
	"projecthub/internal/repository"
)

// TaskInput carries the writable fields of a task. ProjectID is only read on create.
type TaskInput struct {
	Title       string
	Description *string
	Status      model.TaskStatus
	ProjectID   uint
	AssigneeID  *uint
	DueDate     *time.Time
}

// TaskService manages tasks. A task is visible only to the owner of its
// project; anyone else sees it as not found. Concurrent updates are
// last-writer-wins.
type TaskService interface {
	Create(ctx context.Context, actor *model.User, in TaskInput) (*model.Task, error)
	List(ctx context.Context, actor *model.User, projectID *uint) ([]model.Task, error)
	Get(ctx context.Context, actor *model.User, id uint) (*model.Task, error)
	Update(ctx context.Context, actor *model.User, id uint, in TaskInput) (*model.Task, error)
	Delete(ctx context.Context, actor *model.User, id uint) error
	Assign(ctx context.Context, actor *model.User, id, assigneeID uint) (*model.Task, error)
}

type taskService struct {
	tasks    repository.TaskRepository
	projects repository.ProjectRepository
	users    repository.UserRepository
}

// NewTaskService creates a new task service.
func NewTaskService(tasks repository.TaskRepository, projects repository.ProjectRepository, users repository.UserRepository) TaskService {
	return &taskService{tasks: tasks, projects: projects, users: users}
}

func (s *taskService) Create(ctx context.Context, actor *model.User, in TaskInput) (*model.Task, error) {
	if _, err := s.ownedProject(ctx, actor, in.ProjectID); err != nil {
		return nil, err
	}
	if err := s.normalize(ctx, &in); err != nil {
		return nil, err
	}

	task := &model.Task{
		Title:       in.Title,
		Description: in.Description,
		Status:      in.Status,
		DueDate:     in.DueDate,
		ProjectID:   in.ProjectID,
		AssigneeID:  in.AssigneeID,
	}
	if err := s.tasks.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}
	return task, nil
}

// List returns the tasks of projectID, or of every owned project when nil.
func (s *taskService) List(ctx context.Context, actor *model.User, projectID *uint) ([]model.Task, error) {
	if projectID == nil {
		tasks, err := s.tasks.ListByOwner(ctx, actor.ID)
		if err != nil {
			return nil, fmt.Errorf("list tasks: %w", err)
		}
		return tasks, nil
	}

	if _, err := s.ownedProject(ctx, actor, *projectID); err != nil {
		return nil, err
	}
	tasks, err := s.tasks.ListByProject(ctx, *projectID)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}

func (s *taskService) Get(ctx context.Context, actor *model.User, id uint) (*model.Task, error) {
	task, err := s.tasks.FindByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, apperrors.ErrTaskNotFound
		}
		return nil, fmt.Errorf("find task: %w", err)
	}

	project, err := s.projects.FindByID(ctx, task.ProjectID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, apperrors.ErrTaskNotFound
		}
		return nil, fmt.Errorf("find project: %w", err)
	}
	if !auth.OwnsProject(actor, project) {
		return nil, apperrors.ErrTaskNotFound
	}
	return task, nil
}

func (s *taskService) Update(ctx context.Context, actor *model.User, id uint, in TaskInput) (*model.Task, error) {
	task, err := s.Get(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if err := s.normalize(ctx, &in); err != nil {
		return nil, err
	}

	task.Title = in.Title
	task.Description = in.Description
	task.Status = in.Status
	task.AssigneeID = in.AssigneeID
	task.DueDate = in.DueDate
	if err := s.tasks.Update(ctx, task); err != nil {
		return nil, fmt.Errorf("update task: %w", err)
	}
	return task, nil
}

// Delete removes the task and its comments.
func (s *taskService) Delete(ctx context.Context, actor *model.User, id uint) error {
	if _, err := s.Get(ctx, actor, id); err != nil {
		return err
	}
	if err := s.tasks.Delete(ctx, id); err != nil {
		if repository.IsNotFound(err) {
			return apperrors.ErrTaskNotFound
		}
		return fmt.Errorf("delete task: %w", err)
	}
	return nil
}

// Assign changes only the assignee.
func (s *taskService) Assign(ctx context.Context, actor *model.User, id, assigneeID uint) (*model.Task, error) {
	task, err := s.Get(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if err := s.checkAssignee(ctx, &assigneeID); err != nil {
		return nil, err
	}

	if err := s.tasks.UpdateAssignee(ctx, task.ID, &assigneeID); err != nil {
		return nil, fmt.Errorf("assign task: %w", err)
	}
	task.AssigneeID = &assigneeID
	return task, nil
}

func (s *taskService) ownedProject(ctx context.Context, actor *model.User, projectID uint) (*model.Project, error) {
	project, err := s.projects.FindByID(ctx, projectID)
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

func (s *taskService) normalize(ctx context.Context, in *TaskInput) error {
	in.Title = strings.TrimSpace(in.Title)
	if in.Title == "" {
		return apperrors.ErrBlankField
	}
	if in.Status == "" {
		in.Status = model.TaskStatusTodo
	}
	if !in.Status.Valid() {
		return apperrors.ErrInvalidStatus
	}
	return s.checkAssignee(ctx, in.AssigneeID)
}

func (s *taskService) checkAssignee(ctx context.Context, assigneeID *uint) error {
	if assigneeID == nil {
		return nil
	}
	if _, err := s.users.FindByID(ctx, *assigneeID); err != nil {
		if repository.IsNotFound(err) {
			return apperrors.ErrUnknownAssignee
		}
		return fmt.Errorf("find assignee: %w", err)
	}
	return nil
}
