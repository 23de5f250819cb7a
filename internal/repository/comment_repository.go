package repository

import (
	"context"

	"gorm.io/gorm"

	"projecthub/internal/model"
)

// CommentRepository defines task comment persistence operations.
type CommentRepository interface {
	Create(ctx context.Context, comment *model.TaskComment) error
	ListByTask(ctx context.Context, taskID uint) ([]model.TaskComment, error)
}

type commentRepository struct {
	db *gorm.DB
}

// NewCommentRepository creates a new comment repository.
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(ctx context.Context, comment *model.TaskComment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

// ListByTask lists a task's comments, oldest first.
func (r *commentRepository) ListByTask(ctx context.Context, taskID uint) ([]model.TaskComment, error) {
	var comments []model.TaskComment
	if err := r.db.WithContext(ctx).Where("task_id = ?", taskID).Order("created_at, id").Find(&comments).Error; err != nil {
		return nil, err
	}
	return comments, nil
}
