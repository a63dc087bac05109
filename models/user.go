package models

import "gorm.io/gorm"

// User roles.
const (
	RoleMember = "member"
	RoleAdmin  = "admin"
)

// User is a platform account (a registered alumnus or an administrator).
type User struct {
	gorm.Model
	FullName string `json:"fullName" gorm:"not null"`
	Email    string `json:"email" gorm:"uniqueIndex;not null"`
	Password string `json:"-" gorm:"not null"`
	Role     string `json:"role" gorm:"size:16;not null;default:'member'"`

	Alumnus *Alumnus `json:"alumnus,omitempty" gorm:"foreignKey:UserID"`
}

// UserResponse strips credentials from a user for API output.
type UserResponse struct {
	ID       uint   `json:"id"`
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

func (u *User) Response() UserResponse {
	return UserResponse{ID: u.ID, FullName: u.FullName, Email: u.Email, Role: u.Role}
}
