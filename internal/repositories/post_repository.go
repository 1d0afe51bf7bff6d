package repositories

import (
	"errors"
	"fmt"

	"github.com/miniblog/backend/internal/models"
	"gorm.io/gorm"
)

// PostRepository defines the interface for post data operations
type PostRepository interface {
	CreatePost(post *models.Post) error
	GetPostByID(id uint) (*models.Post, error)
	GetAuthor(post *models.Post) (*models.User, error)
	PostsByAuthor(authorID uint) PostQuery
	DeletePost(id uint) error
}

// GormPostRepository implements PostRepository on a relational store
type GormPostRepository struct {
	db *gorm.DB
}

// NewGormPostRepository creates a new GormPostRepository
func NewGormPostRepository(db *gorm.DB) *GormPostRepository {
	return &GormPostRepository{db: db}
}

// CreatePost persists a new post. CreatedAt is stamped by the model's create
// hook at insert time. A dangling AuthorID is rejected by the foreign key and
// surfaces as models.ErrAuthorNotFound.
func (r *GormPostRepository) CreatePost(post *models.Post) error {
	if err := r.db.Create(post).Error; err != nil {
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return fmt.Errorf("create post by author %d: %w", post.AuthorID, models.ErrAuthorNotFound)
		}
		return err
	}
	return nil
}

// GetPostByID retrieves a post by ID with its author preloaded
func (r *GormPostRepository) GetPostByID(id uint) (*models.Post, error) {
	var post models.Post
	if err := r.db.Preload("Author").First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("post %d: %w", id, models.ErrPostNotFound)
		}
		return nil, err
	}
	return &post, nil
}

// GetAuthor resolves the user a post's AuthorID references. With the foreign
// key in place a miss here means the store invariant is broken, so it is
// reported as models.ErrAuthorUnresolved rather than a plain not-found.
func (r *GormPostRepository) GetAuthor(post *models.Post) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, post.AuthorID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("post %d author %d: %w", post.ID, post.AuthorID, models.ErrAuthorUnresolved)
		}
		return nil, err
	}
	return &user, nil
}

// PostsByAuthor returns the lazy query view over an author's posts. Nothing
// hits the database until the view is counted or materialized.
func (r *GormPostRepository) PostsByAuthor(authorID uint) PostQuery {
	tx := r.db.Session(&gorm.Session{}).
		Model(&models.Post{}).
		Where("author_id = ?", authorID)
	return PostQuery{tx: tx}
}

// DeletePost deletes a post by ID
func (r *GormPostRepository) DeletePost(id uint) error {
	res := r.db.Delete(&models.Post{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("delete post %d: %w", id, models.ErrPostNotFound)
	}
	return nil
}
