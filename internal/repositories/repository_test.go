package repositories

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/miniblog/backend/internal/models"
	"github.com/miniblog/backend/pkg/database"
)

// openTestDB hands every test its own disposable in-memory store with the
// schema migrated and foreign keys enforced.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.OpenEphemeral()
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() {
		_ = database.Close(db)
	})
	return db
}

func mustCreateUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()

	user := &models.User{Username: username}
	require.NoError(t, NewGormUserRepository(db).CreateUser(user))
	require.NotZero(t, user.ID)
	return user
}

func mustCreatePost(t *testing.T, db *gorm.DB, authorID uint, body string) *models.Post {
	t.Helper()

	post := &models.Post{Body: body, AuthorID: authorID}
	require.NoError(t, NewGormPostRepository(db).CreatePost(post))
	require.NotZero(t, post.ID)
	return post
}
