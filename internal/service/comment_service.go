package service

import (
	"context"
	"fmt"
	"strings"

	apperrors "projecthub/internal/errors"
	"projecthub/internal/model"
	"projecthub/internal/repository"
)

// CommentService manages task comments. Commenting on or reading the comments
// of a task requires being able to read the task itself.
type CommentService interface {
	Create(ctx context.Context, actor *model.User, taskID uint, text string) (*model.TaskComment, error)
	ListForTask(ctx context.Context, actor *model.User, taskID uint) ([]model.TaskComment, error)
}

type commentService struct {
	comments repository.CommentRepository
	tasks    TaskService
}

// NewCommentService creates a new comment service.
func NewCommentService(comments repository.CommentRepository, tasks TaskService) CommentService {
	return &commentService{comments: comments, tasks: tasks}
}

// Create records a comment authored by actor.
func (s *commentService) Create(ctx context.Context, actor *model.User, taskID uint, text string) (*model.TaskComment, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, apperrors.ErrBlankField
	}
	if _, err := s.tasks.Get(ctx, actor, taskID); err != nil {
		return nil, err
	}

	comment := &model.TaskComment{
		TaskID:  taskID,
		UserID:  actor.ID,
		Content: text,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}
	return comment, nil
}

func (s *commentService) ListForTask(ctx context.Context, actor *model.User, taskID uint) ([]model.TaskComment, error) {
	if _, err := s.tasks.Get(ctx, actor, taskID); err != nil {
		return nil, err
	}
	comments, err := s.comments.ListByTask(ctx, taskID)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	return comments, nil
}
