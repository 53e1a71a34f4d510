package models

import (
	"time"
)

// Post represents a blog post in the Inkwell application.
// CategoryID is nullable: an uncategorized post stores NULL, never 0, so
// the foreign key constraint holds.
type Post struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Title       string     `gorm:"size:255;not null" json:"title"`
	Slug        string     `gorm:"size:255;not null;index" json:"slug"`
	Description string     `gorm:"size:500" json:"description"`
	Content     string     `gorm:"type:text;not null" json:"content"`
	Image       string     `gorm:"size:255" json:"image"`
	CategoryID  *uint      `gorm:"index" json:"category_id"`
	Category    *Category  `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	AuthorID    uint       `gorm:"not null;index" json:"author_id"`
	Author      User       `gorm:"foreignKey:AuthorID" json:"author"`
	Published   bool       `gorm:"not null;default:true;index" json:"published"`
	Views       uint       `gorm:"not null;default:0" json:"views"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `gorm:"autoUpdateTime:false" json:"updated_at"`
	Comments    []Comment  `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"-"`
}
