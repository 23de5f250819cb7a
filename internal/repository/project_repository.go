package repository

import (
	"context"

	"gorm.io/gorm"

	"projecthub/internal/model"
)

// ProjectRepository defines project persistence operations.
type ProjectRepository interface {
	Create(ctx context.Context, project *model.Project) error
	Update(ctx context.Context, project *model.Project) error
	FindByID(ctx context.Context, id uint) (*model.Project, error)
	FindByName(ctx context.Context, name string) (*model.Project, error)
	ListByOwner(ctx context.Context, ownerID uint) ([]model.Project, error)
	CountByOwner(ctx context.Context, ownerID uint) (int64, error)
	// Delete removes the project with its tasks, their comments and its memberships.
	Delete(ctx context.Context, id uint) error
}

type projectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates a new project repository.
func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &projectRepository{db: db}
}

// Create creates a new project.
func (r *projectRepository) Create(ctx context.Context, project *model.Project) error {
	return r.db.WithContext(ctx).Create(project).Error
}

// Update updates name and description of an existing project.
func (r *projectRepository) Update(ctx context.Context, project *model.Project) error {
	return r.db.WithContext(ctx).Model(project).
		Select("name", "description", "updated_at").
		Updates(project).Error
}

// FindByID finds a project by ID.
func (r *projectRepository) FindByID(ctx context.Context, id uint) (*model.Project, error) {
	var project model.Project
	if err := r.db.WithContext(ctx).First(&project, id).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

// FindByName finds a project by its unique name.
func (r *projectRepository) FindByName(ctx context.Context, name string) (*model.Project, error) {
	var project model.Project
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&project).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

// ListByOwner lists the projects owned by a user.
func (r *projectRepository) ListByOwner(ctx context.Context, ownerID uint) ([]model.Project, error) {
	var projects []model.Project
	if err := r.db.WithContext(ctx).Where("owner_id = ?", ownerID).Order("id").Find(&projects).Error; err != nil {
		return nil, err
	}
	return projects, nil
}

// CountByOwner counts the projects owned by a user.
func (r *projectRepository) CountByOwner(ctx context.Context, ownerID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Project{}).Where("owner_id = ?", ownerID).Count(&count).Error
	return count, err
}

// Delete removes a project and everything that depends on it in one transaction.
func (r *projectRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		taskIDs := tx.Model(&model.Task{}).Select("id").Where("project_id = ?", id)
		if err := tx.Where("task_id IN (?)", taskIDs).Delete(&model.TaskComment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", id).Delete(&model.Task{}).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", id).Delete(&model.ProjectMember{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&model.Project{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
