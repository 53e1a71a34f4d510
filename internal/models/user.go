// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// Roles assignable to a user account.
const (
	RoleUser   = "user"
	RoleAuthor = "author"
	RoleAdmin  = "admin"
)

// ValidRole reports whether role is one of the assignable roles.
func ValidRole(role string) bool {
	switch role {
	case RoleUser, RoleAuthor, RoleAdmin:
		return true
	default:
		return false
	}
}

// User represents a registered account in the Inkwell application.
// Password holds only the bcrypt hash and is never serialized.
type User struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	Username  string     `gorm:"uniqueIndex;size:50;not null" json:"username"`
	Email     string     `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Password  string     `gorm:"not null" json:"-"`
	FullName  string     `gorm:"size:255" json:"full_name"`
	Avatar    string     `gorm:"size:255" json:"avatar"`
	Role      string     `gorm:"size:20;not null;default:user" json:"role"`
	Active    bool       `gorm:"not null;default:true" json:"active"`
	CreatedAt time.Time  `json:"created_at"`
	LastLogin *time.Time `json:"last_login"`
	Posts     []Post     `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"posts,omitempty"`
	Comments  []Comment  `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}
