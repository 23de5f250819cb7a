package repository

import (
	"context"

	"gorm.io/gorm"

	"projecthub/internal/model"
)

// MemberRepository defines project membership persistence operations.
type MemberRepository interface {
	Create(ctx context.Context, member *model.ProjectMember) error
	Find(ctx context.Context, projectID, userID uint) (*model.ProjectMember, error)
	ListByProject(ctx context.Context, projectID uint) ([]model.ProjectMember, error)
	Delete(ctx context.Context, projectID, userID uint) error
}

type memberRepository struct {
	db *gorm.DB
}

// NewMemberRepository creates a new membership repository.
func NewMemberRepository(db *gorm.DB) MemberRepository {
	return &memberRepository{db: db}
}

func (r *memberRepository) Create(ctx context.Context, member *model.ProjectMember) error {
	return r.db.WithContext(ctx).Create(member).Error
}

func (r *memberRepository) Find(ctx context.Context, projectID, userID uint) (*model.ProjectMember, error) {
	var member model.ProjectMember
	err := r.db.WithContext(ctx).
		Where("project_id = ? AND user_id = ?", projectID, userID).
		First(&member).Error
	if err != nil {
		return nil, err
	}
	return &member, nil
}

func (r *memberRepository) ListByProject(ctx context.Context, projectID uint) ([]model.ProjectMember, error) {
	var members []model.ProjectMember
	if err := r.db.WithContext(ctx).Where("project_id = ?", projectID).Order("id").Find(&members).Error; err != nil {
		return nil, err
	}
	return members, nil
}

// Delete removes a membership, returning gorm.ErrRecordNotFound when none existed.
func (r *memberRepository) Delete(ctx context.Context, projectID, userID uint) error {
	res := r.db.WithContext(ctx).
		Where("project_id = ? AND user_id = ?", projectID, userID).
		Delete(&model.ProjectMember{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
