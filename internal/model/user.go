package model

import "time"

// Role is the coarse, global permission tag carried by every user.
type Role string

const (
	RoleAdmin     Role = "admin"
	RoleManager   Role = "manager"
	RoleDeveloper Role = "developer"
	RoleUser      Role = "user"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleDeveloper, RoleUser:
		return true
	}
	return false
}

// User represents a registered account.
type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Username     string    `json:"username" gorm:"size:64;uniqueIndex;not null"`
	Email        string    `json:"email" gorm:"size:128;uniqueIndex;not null"`
	PasswordHash string    `json:"-" gorm:"column:password;size:128;not null"` // Never expose in JSON
	Role         Role      `json:"role" gorm:"size:16;not null;default:'user'"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
