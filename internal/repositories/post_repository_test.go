package repositories

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/miniblog/backend/internal/models"
)

func TestCreatePostStampsFreshTimestamp(t *testing.T) {
	db := openTestDB(t)

	alice := mustCreateUser(t, db, "alice")
	post := mustCreatePost(t, db, alice.ID, "hello")

	require.False(t, post.CreatedAt.IsZero())
	assert.WithinDuration(t, time.Now().UTC(), post.CreatedAt, time.Minute)

	// The stamp survives persistence.
	got, err := NewGormPostRepository(db).GetPostByID(post.ID)
	require.NoError(t, err)
	assert.False(t, got.CreatedAt.IsZero())
}

func TestCreatePostTimestampsStrictlyOrdered(t *testing.T) {
	db := openTestDB(t)

	alice := mustCreateUser(t, db, "alice")
	first := mustCreatePost(t, db, alice.ID, "first")

	time.Sleep(10 * time.Millisecond)
	second := mustCreatePost(t, db, alice.ID, "second")

	assert.NotEqual(t, first.CreatedAt, second.CreatedAt)
	assert.True(t, first.CreatedAt.Before(second.CreatedAt))
}

func TestCreatePostRejectsDanglingAuthor(t *testing.T) {
	db := openTestDB(t)
	repo := NewGormPostRepository(db)

	err := repo.CreatePost(&models.Post{Body: "orphan", AuthorID: 9999})
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrAuthorNotFound)

	// Nothing was persisted.
	count, err := repo.PostsByAuthor(9999).Count()
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestGetPostByIDPreloadsAuthor(t *testing.T) {
	db := openTestDB(t)
	repo := NewGormPostRepository(db)

	alice := mustCreateUser(t, db, "alice")
	post := mustCreatePost(t, db, alice.ID, "hello")

	got, err := repo.GetPostByID(post.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Author)
	assert.Equal(t, alice.ID, got.Author.ID)
	assert.Equal(t, got.AuthorID, got.Author.ID)

	_, err = repo.GetPostByID(9999)
	assert.ErrorIs(t, err, models.ErrPostNotFound)
}

func TestGetAuthorResolvesOwningUser(t *testing.T) {
	db := openTestDB(t)
	repo := NewGormPostRepository(db)

	alice := mustCreateUser(t, db, "alice")
	post := mustCreatePost(t, db, alice.ID, "hello")

	author, err := repo.GetAuthor(post)
	require.NoError(t, err)
	assert.Equal(t, alice.ID, author.ID)
	assert.Equal(t, "alice", author.Username)
}

func TestGetAuthorUnresolvedReference(t *testing.T) {
	db := openTestDB(t)
	repo := NewGormPostRepository(db)

	// A post that was never persisted can carry any AuthorID; resolving it
	// against the store signals the broken invariant.
	_, err := repo.GetAuthor(&models.Post{ID: 1, AuthorID: 9999})
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrAuthorUnresolved)
}

func TestPostsByAuthorMembership(t *testing.T) {
	db := openTestDB(t)
	repo := NewGormPostRepository(db)

	bob := mustCreateUser(t, db, "bob")
	first := mustCreatePost(t, db, bob.ID, "first")
	second := mustCreatePost(t, db, bob.ID, "second")

	posts, err := repo.PostsByAuthor(bob.ID).All()
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, first.ID, posts[0].ID)
	assert.Equal(t, second.ID, posts[1].ID)
}

func TestPostsByAuthorIsolation(t *testing.T) {
	db := openTestDB(t)
	repo := NewGormPostRepository(db)

	alice := mustCreateUser(t, db, "alice")
	bob := mustCreateUser(t, db, "bob")
	mustCreatePost(t, db, alice.ID, "alice-1")
	mustCreatePost(t, db, alice.ID, "alice-2")
	mustCreatePost(t, db, bob.ID, "bob-1")
	mustCreatePost(t, db, bob.ID, "bob-2")

	posts, err := repo.PostsByAuthor(alice.ID).All()
	require.NoError(t, err)
	require.Len(t, posts, 2)
	for _, p := range posts {
		assert.Equal(t, alice.ID, p.AuthorID)
	}
}

func TestPostQueryCountWithoutMaterializing(t *testing.T) {
	db := openTestDB(t)
	repo := NewGormPostRepository(db)

	alice := mustCreateUser(t, db, "alice")
	for _, body := range []string{"go is fun", "gorm is fine", "lunch"} {
		mustCreatePost(t, db, alice.ID, body)
	}

	view := repo.PostsByAuthor(alice.ID)

	count, err := view.Count()
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)

	// Counting does not consume the view.
	posts, err := view.All()
	require.NoError(t, err)
	assert.Len(t, posts, 3)
}

func TestPostQueryFilters(t *testing.T) {
	db := openTestDB(t)
	repo := NewGormPostRepository(db)

	alice := mustCreateUser(t, db, "alice")
	mustCreatePost(t, db, alice.ID, "go is fun")
	time.Sleep(10 * time.Millisecond)
	cutoff := time.Now().UTC()
	time.Sleep(10 * time.Millisecond)
	mustCreatePost(t, db, alice.ID, "gorm is fine")
	mustCreatePost(t, db, alice.ID, "lunch")

	matched, err := repo.PostsByAuthor(alice.ID).BodyContains("go").All()
	require.NoError(t, err)
	assert.Len(t, matched, 2)

	recent, err := repo.PostsByAuthor(alice.ID).CreatedAfter(cutoff).All()
	require.NoError(t, err)
	require.Len(t, recent, 2)
	for _, p := range recent {
		assert.True(t, p.CreatedAt.After(cutoff))
	}

	// Branching one view must not bleed conditions across branches.
	view := repo.PostsByAuthor(alice.ID)
	goCount, err := view.BodyContains("go").Count()
	require.NoError(t, err)
	lunchCount, err := view.BodyContains("lunch").Count()
	require.NoError(t, err)
	assert.Equal(t, int64(2), goCount)
	assert.Equal(t, int64(1), lunchCount)
}

func TestPostQueryLimit(t *testing.T) {
	db := openTestDB(t)
	repo := NewGormPostRepository(db)

	alice := mustCreateUser(t, db, "alice")
	for i := 0; i < 5; i++ {
		mustCreatePost(t, db, alice.ID, "post")
	}

	posts, err := repo.PostsByAuthor(alice.ID).Limit(3).All()
	require.NoError(t, err)
	assert.Len(t, posts, 3)
}

func TestDeletePost(t *testing.T) {
	db := openTestDB(t)
	repo := NewGormPostRepository(db)

	alice := mustCreateUser(t, db, "alice")
	post := mustCreatePost(t, db, alice.ID, "hello")

	require.NoError(t, repo.DeletePost(post.ID))
	_, err := repo.GetPostByID(post.ID)
	assert.ErrorIs(t, err, models.ErrPostNotFound)

	assert.ErrorIs(t, repo.DeletePost(post.ID), models.ErrPostNotFound)
}
