package repositories

import (
	"errors"
	"fmt"

	"github.com/miniblog/backend/internal/models"
	"gorm.io/gorm"
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	CreateUser(user *models.User) error
	GetUserByID(id uint) (*models.User, error)
	GetUserByUsername(username string) (*models.User, error)
	GetUsers() ([]models.User, error)
	DeleteUser(id uint) error
}

// GormUserRepository implements UserRepository on a relational store
type GormUserRepository struct {
	db *gorm.DB
}

// NewGormUserRepository creates a new GormUserRepository
func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

// CreateUser persists a new user. A duplicate username surfaces as
// models.ErrUsernameTaken; the unique index arbitrates concurrent inserts.
func (r *GormUserRepository) CreateUser(user *models.User) error {
	if err := r.db.Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("create user %q: %w", user.Username, models.ErrUsernameTaken)
		}
		return err
	}
	return nil
}

// GetUserByID retrieves a user by ID
func (r *GormUserRepository) GetUserByID(id uint) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user %d: %w", id, models.ErrUserNotFound)
		}
		return nil, err
	}
	return &user, nil
}

// GetUserByUsername retrieves a user by username
func (r *GormUserRepository) GetUserByUsername(username string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user %q: %w", username, models.ErrUserNotFound)
		}
		return nil, err
	}
	return &user, nil
}

// GetUsers retrieves all users
func (r *GormUserRepository) GetUsers() ([]models.User, error) {
	var users []models.User
	if err := r.db.Order("id").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// DeleteUser deletes a user by ID. Deletion is RESTRICT: a user that still
// owns posts is not deletable and the attempt returns models.ErrUserHasPosts.
// The ownership check runs inside the delete's transaction because SQLite
// reports the delete-path FK violation with a generic constraint code that
// does not translate to gorm.ErrForeignKeyViolated; the foreign key itself
// stays in place as the backstop against concurrent inserts.
func (r *GormUserRepository) DeleteUser(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var owned int64
		if err := tx.Model(&models.Post{}).Where("author_id = ?", id).Count(&owned).Error; err != nil {
			return err
		}
		if owned > 0 {
			return fmt.Errorf("delete user %d: %w", id, models.ErrUserHasPosts)
		}

		res := tx.Delete(&models.User{}, id)
		if res.Error != nil {
			if errors.Is(res.Error, gorm.ErrForeignKeyViolated) {
				return fmt.Errorf("delete user %d: %w", id, models.ErrUserHasPosts)
			}
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("delete user %d: %w", id, models.ErrUserNotFound)
		}
		return nil
	})
}
