package repositories

import (
	"time"

	"github.com/miniblog/backend/internal/models"
	"gorm.io/gorm"
)

// PostQuery is a lazily-evaluated view over a set of posts. Builder methods
// narrow the view without touching the database; only Count and All execute.
// Counting never loads rows and filters compose in the store, not in memory.
//
// Builders clone the underlying statement, so a view can be narrowed in two
// directions or counted and then materialized without the branches bleeding
// into each other.
type PostQuery struct {
	tx *gorm.DB
}

// BodyContains narrows the view to posts whose body contains substr.
func (q PostQuery) BodyContains(substr string) PostQuery {
	return PostQuery{tx: q.clone().Where("body LIKE ?", "%"+substr+"%")}
}

// CreatedAfter narrows the view to posts created strictly after t.
func (q PostQuery) CreatedAfter(t time.Time) PostQuery {
	return PostQuery{tx: q.clone().Where("created_at > ?", t)}
}

// Limit caps how many posts All will materialize. Zero or negative means no
// cap.
func (q PostQuery) Limit(n int) PostQuery {
	if n <= 0 {
		return q
	}
	return PostQuery{tx: q.clone().Limit(n)}
}

// Count returns how many posts match the view without loading them.
func (q PostQuery) Count() (int64, error) {
	var n int64
	if err := q.clone().Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}

// All materializes the view, oldest first.
func (q PostQuery) All() ([]models.Post, error) {
	var posts []models.Post
	if err := q.clone().Order("created_at, id").Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

func (q PostQuery) clone() *gorm.DB {
	return q.tx.Session(&gorm.Session{})
}
