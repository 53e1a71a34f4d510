package models

// Category groups posts under a human-readable name and a derived slug.
type Category struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"size:100;uniqueIndex;not null" json:"name"`
	Slug        string `gorm:"size:100;not null;index" json:"slug"`
	Description string `gorm:"size:500" json:"description"`
	Posts       []Post `gorm:"foreignKey:CategoryID" json:"-"`

	// PostCount is not persisted; computed at query time.
	PostCount int64 `gorm:"->;-:migration" json:"post_count,omitempty"`
}
