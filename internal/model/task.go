package model

import "time"

// TaskStatus is the progress state of a task. Transitions are free-form.
type TaskStatus string

const (
	TaskStatusTodo       TaskStatus = "todo"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusDone       TaskStatus = "done"
)

// Valid reports whether s is one of the known statuses.
func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusTodo, TaskStatusInProgress, TaskStatusDone:
		return true
	}
	return false
}

// Task belongs to a project and may be assigned to a user.
type Task struct {
	ID          uint       `json:"id" gorm:"primaryKey"`
	Title       string     `json:"title" gorm:"size:100;not null"`
	Description *string    `json:"description" gorm:"type:text"`
	Status      TaskStatus `json:"status" gorm:"size:24;not null;default:'todo';index"`
	DueDate     *time.Time `json:"due_date"`
	ProjectID   uint       `json:"project_id" gorm:"not null;index"`
	AssigneeID  *uint      `json:"assignee_id" gorm:"index"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	Project  *Project `json:"-" gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE"`
	Assignee *User    `json:"-" gorm:"foreignKey:AssigneeID;constraint:OnDelete:SET NULL"`
}

// TaskComment is a note left by a user on a task.
type TaskComment struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	TaskID    uint      `json:"task_id" gorm:"not null;index"`
	UserID    uint      `json:"user_id" gorm:"not null;index"`
	Content   string    `json:"comment" gorm:"type:text;not null"`
	CreatedAt time.Time `json:"created_at"`

	Task *Task `json:"-" gorm:"foreignKey:TaskID;constraint:OnDelete:CASCADE"`
	User *User `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// TableName pins the comments table name.
func (TaskComment) TableName() string { return "task_comments" }
