package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Role is an explicit enumeration instead of free-form strings so the
// permission checks stay pure functions over a closed set.
type Role string

const (
	RoleUser      Role = "user"
	RoleModerator Role = "moderator"
	RoleAdmin     Role = "admin"
)

// ValidRole reports whether r is one of the known roles.
func ValidRole(r Role) bool {
	return r == RoleUser || r == RoleModerator || r == RoleAdmin
}

type User struct {
	ID        string  `gorm:"primaryKey;type:uuid" json:"id"`
	Username  string  `gorm:"uniqueIndex;size:150;not null" json:"username"`
	Email     string  `gorm:"uniqueIndex;size:254;not null" json:"email"`
	FirstName *string `gorm:"size:150" json:"first_name,omitempty"`
	LastName  *string `gorm:"size:150" json:"last_name,omitempty"`
	Bio       string  `gorm:"type:text" json:"bio,omitempty"`
	Role      Role    `gorm:"type:varchar(10);default:'user';not null" json:"role"`
	// IsSuperuser grants admin capabilities regardless of Role.
	IsSuperuser bool `gorm:"default:false;not null" json:"-"`
	// ConfirmationCode holds a bcrypt hash of the latest one-time signup
	// code; nil once the code has been exchanged for a token.
	ConfirmationCode *string   `gorm:"size:255" json:"-"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// BeforeCreate hook to set UUID before creating a User
func (user *User) BeforeCreate(tx *gorm.DB) (err error) {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	if user.Role == "" {
		user.Role = RoleUser
	}
	return
}

func (User) TableName() string {
	return "users"
}
