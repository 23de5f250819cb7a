package repository

import (
	"context"

	"gorm.io/gorm"

	"projecthub/internal/model"
)

// StatusCount is the number of tasks in one status.
type StatusCount struct {
	Status model.TaskStatus
	Count  int64
}

// TaskRepository defines task persistence operations.
type TaskRepository interface {
	Create(ctx context.Context, task *model.Task) error
	Update(ctx context.Context, task *model.Task) error
	UpdateAssignee(ctx context.Context, id uint, assigneeID *uint) error
	FindByID(ctx context.Context, id uint) (*model.Task, error)
	ListByProject(ctx context.Context, projectID uint) ([]model.Task, error)
	ListByOwner(ctx context.Context, ownerID uint) ([]model.Task, error)
	CountByStatusForOwner(ctx context.Context, ownerID uint) ([]StatusCount, error)
	CountAssignedTo(ctx context.Context, userID uint) (int64, error)
	// Delete removes the task and its comments.
	Delete(ctx context.Context, id uint) error
}

type taskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new task repository.
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &taskRepository{db: db}
}

// Create creates a new task.
func (r *taskRepository) Create(ctx context.Context, task *model.Task) error {
	return r.db.WithContext(ctx).Create(task).Error
}

// Update writes the mutable fields of a task. The owning project never changes.
func (r *taskRepository) Update(ctx context.Context, task *model.Task) error {
	return r.db.WithContext(ctx).Model(task).
		Select("title", "description", "status", "assignee_id", "due_date", "updated_at").
		Updates(task).Error
}

// UpdateAssignee changes only the assignee of a task.
func (r *taskRepository) UpdateAssignee(ctx context.Context, id uint, assigneeID *uint) error {
	return r.db.WithContext(ctx).Model(&model.Task{}).
		Where("id = ?", id).
		Update("assignee_id", assigneeID).Error
}

// FindByID finds a task by ID.
func (r *taskRepository) FindByID(ctx context.Context, id uint) (*model.Task, error) {
	var task model.Task
	if err := r.db.WithContext(ctx).First(&task, id).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// ListByProject lists the tasks of one project.
func (r *taskRepository) ListByProject(ctx context.Context, projectID uint) ([]model.Task, error) {
	var tasks []model.Task
	if err := r.db.WithContext(ctx).Where("project_id = ?", projectID).Order("id").Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// ListByOwner lists tasks across every project owned by ownerID.
func (r *taskRepository) ListByOwner(ctx context.Context, ownerID uint) ([]model.Task, error) {
	var tasks []model.Task
	err := r.ownedTasks(ctx, ownerID).
		Select("tasks.*").
		Order("tasks.id").
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

// CountByStatusForOwner groups the owner's tasks by status.
func (r *taskRepository) CountByStatusForOwner(ctx context.Context, ownerID uint) ([]StatusCount, error) {
	var rows []StatusCount
	err := r.ownedTasks(ctx, ownerID).
		Select("tasks.status AS status, COUNT(*) AS count").
		Group("tasks.status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// CountAssignedTo counts tasks assigned to a user.
func (r *taskRepository) CountAssignedTo(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Task{}).Where("assignee_id = ?", userID).Count(&count).Error
	return count, err
}

// Delete removes a task and its comments in one transaction.
func (r *taskRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("task_id = ?", id).Delete(&model.TaskComment{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&model.Task{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (r *taskRepository) ownedTasks(ctx context.Context, ownerID uint) *gorm.DB {
	return r.db.WithContext(ctx).Model(&model.Task{}).
		Joins("JOIN projects ON projects.id = tasks.project_id").
		Where("projects.owner_id = ?", ownerID)
}
