package model

import "time"

// Project is owned by exactly one user and groups tasks.
type Project struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"size:100;uniqueIndex;not null"`
	Description *string   `json:"description" gorm:"type:text"`
	OwnerID     uint      `json:"owner_id" gorm:"not null;index"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Owner *User `json:"-" gorm:"foreignKey:OwnerID;constraint:OnDelete:RESTRICT"`
}

// ProjectMember joins a user to a project with a project-level role.
// A user joins a given project at most once.
type ProjectMember struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	ProjectID uint      `json:"project_id" gorm:"not null;uniqueIndex:uk_project_user"`
	UserID    uint      `json:"user_id" gorm:"not null;uniqueIndex:uk_project_user;index:idx_member_user"`
	Role      string    `json:"role" gorm:"size:32;not null"`
	CreatedAt time.Time `json:"created_at"`

	Project *Project `json:"-" gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE"`
	User    *User    `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// TableName pins the join table name.
func (ProjectMember) TableName() string { return "project_members" }
