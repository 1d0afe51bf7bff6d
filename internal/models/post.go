package models

import (
	"time"

	"gorm.io/gorm"
)

// Post is a single authored entry. AuthorID is a NOT NULL foreign key into
// users, so a post without an existing author is rejected by the store rather
// than merely discouraged.
type Post struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Body      string    `json:"body" gorm:"type:text;not null"`
	CreatedAt time.Time `json:"created_at" gorm:"index"`
	AuthorID  uint      `json:"author_id" gorm:"not null;index"`
	Author    *User     `json:"author,omitempty" gorm:"foreignKey:AuthorID"`
}

// BeforeCreate stamps CreatedAt from the clock at insert time. The provider is
// invoked once per inserted row, never evaluated at program start, so no two
// posts constructed at distinct instants share a timestamp. A caller-supplied
// CreatedAt is left untouched.
func (p *Post) BeforeCreate(tx *gorm.DB) error {
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}
	return nil
}

// CreatePostRequest is the payload for publishing a new post.
type CreatePostRequest struct {
	Body     string `json:"body" validate:"required"`
	AuthorID uint   `json:"author_id" validate:"required"`
}
