// Package audit verifies the entity model's contracts against a disposable
// in-memory store and produces a structured report. It is the programmatic
// equivalent of running the model test suite and summarising the outcome.
package audit

import (
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/miniblog/backend/internal/models"
	"github.com/miniblog/backend/internal/repositories"
	"github.com/miniblog/backend/pkg/database"
)

// check is a single named verification. Each check runs against its own fresh
// store so failures cannot leak state into later checks.
type check struct {
	name string
	run  func(db *gorm.DB) error
}

var checks = []check{
	{"timestamp_populated", checkTimestampPopulated},
	{"timestamp_fresh", checkTimestampFresh},
	{"timestamp_strictly_ordered", checkTimestampOrdered},
	{"author_resolution", checkAuthorResolution},
	{"reverse_collection_membership", checkReverseCollection},
	{"foreign_key_rejection", checkForeignKeyRejection},
	{"username_uniqueness", checkUsernameUniqueness},
	{"multi_user_isolation", checkMultiUserIsolation},
	{"delete_restrict", checkDeleteRestrict},
}

// Run executes every model check and returns the report. The returned error
// covers harness failures (a store that cannot be opened), not failing
// checks; those are recorded in the report.
func Run(log zerolog.Logger) (*Report, error) {
	report := &Report{
		Suite:      "miniblog entity model verification",
		ExecutedAt: time.Now().UTC(),
		Store:      "sqlite (in-memory)",
	}

	for _, c := range checks {
		db, err := database.OpenEphemeral()
		if err != nil {
			return nil, fmt.Errorf("open ephemeral store: %w", err)
		}
		if err := database.Migrate(db); err != nil {
			_ = database.Close(db)
			return nil, fmt.Errorf("migrate ephemeral store: %w", err)
		}

		start := time.Now()
		runErr := c.run(db)
		elapsed := time.Since(start)
		_ = database.Close(db)

		result := CheckResult{
			Name:       c.name,
			Status:     statusPassed,
			DurationMS: float64(elapsed.Microseconds()) / 1000.0,
		}
		if runErr != nil {
			result.Status = statusFailed
			result.Detail = runErr.Error()
			log.Warn().Str("check", c.name).Err(runErr).Msg("model check failed")
		} else {
			log.Debug().Str("check", c.name).Dur("elapsed", elapsed).Msg("model check passed")
		}
		report.Checks = append(report.Checks, result)
	}

	report.summarize()
	return report, nil
}

func seedUserWithPost(db *gorm.DB, username, body string) (*models.User, *models.Post, error) {
	users := repositories.NewGormUserRepository(db)
	posts := repositories.NewGormPostRepository(db)

	user := &models.User{Username: username}
	if err := users.CreateUser(user); err != nil {
		return nil, nil, fmt.Errorf("seed user: %w", err)
	}
	post := &models.Post{Body: body, AuthorID: user.ID}
	if err := posts.CreatePost(post); err != nil {
		return nil, nil, fmt.Errorf("seed post: %w", err)
	}
	return user, post, nil
}

func checkTimestampPopulated(db *gorm.DB) error {
	_, post, err := seedUserWithPost(db, "alice", "hello")
	if err != nil {
		return err
	}
	if post.CreatedAt.IsZero() {
		return errors.New("created_at not populated on construction")
	}
	return nil
}

func checkTimestampFresh(db *gorm.DB) error {
	_, post, err := seedUserWithPost(db, "alice", "hello")
	if err != nil {
		return err
	}
	if age := time.Since(post.CreatedAt); age < 0 || age > time.Minute {
		return fmt.Errorf("created_at not fresh: %s old", age)
	}
	return nil
}

func checkTimestampOrdered(db *gorm.DB) error {
	user, first, err := seedUserWithPost(db, "alice", "first")
	if err != nil {
		return err
	}
	posts := repositories.NewGormPostRepository(db)

	time.Sleep(10 * time.Millisecond)
	second := &models.Post{Body: "second", AuthorID: user.ID}
	if err := posts.CreatePost(second); err != nil {
		return err
	}
	if !first.CreatedAt.Before(second.CreatedAt) {
		return fmt.Errorf("timestamps not strictly ordered: %v vs %v", first.CreatedAt, second.CreatedAt)
	}
	return nil
}

func checkAuthorResolution(db *gorm.DB) error {
	user, post, err := seedUserWithPost(db, "alice", "hello")
	if err != nil {
		return err
	}
	posts := repositories.NewGormPostRepository(db)

	author, err := posts.GetAuthor(post)
	if err != nil {
		return err
	}
	if author.ID != user.ID || author.Username != user.Username {
		return fmt.Errorf("author mismatch: got %d/%q, want %d/%q", author.ID, author.Username, user.ID, user.Username)
	}
	return nil
}

func checkReverseCollection(db *gorm.DB) error {
	user, post, err := seedUserWithPost(db, "bob", "hello")
	if err != nil {
		return err
	}
	posts := repositories.NewGormPostRepository(db)

	all, err := posts.PostsByAuthor(user.ID).All()
	if err != nil {
		return err
	}
	for _, p := range all {
		if p.ID == post.ID {
			return nil
		}
	}
	return fmt.Errorf("post %d missing from author %d's collection", post.ID, user.ID)
}

func checkForeignKeyRejection(db *gorm.DB) error {
	posts := repositories.NewGormPostRepository(db)

	err := posts.CreatePost(&models.Post{Body: "orphan", AuthorID: 9999})
	if err == nil {
		return errors.New("post with dangling author_id was persisted")
	}
	if !errors.Is(err, models.ErrAuthorNotFound) {
		return fmt.Errorf("unexpected rejection error: %v", err)
	}
	return nil
}

func checkUsernameUniqueness(db *gorm.DB) error {
	users := repositories.NewGormUserRepository(db)

	if err := users.CreateUser(&models.User{Username: "carol"}); err != nil {
		return err
	}
	err := users.CreateUser(&models.User{Username: "carol"})
	if err == nil {
		return errors.New("duplicate username was persisted")
	}
	if !errors.Is(err, models.ErrUsernameTaken) {
		return fmt.Errorf("unexpected uniqueness error: %v", err)
	}
	return nil
}

func checkMultiUserIsolation(db *gorm.DB) error {
	users := repositories.NewGormUserRepository(db)
	posts := repositories.NewGormPostRepository(db)

	u1 := &models.User{Username: "dave"}
	u2 := &models.User{Username: "erin"}
	for _, u := range []*models.User{u1, u2} {
		if err := users.CreateUser(u); err != nil {
			return err
		}
		for i := 0; i < 2; i++ {
			if err := posts.CreatePost(&models.Post{Body: fmt.Sprintf("%s-%d", u.Username, i), AuthorID: u.ID}); err != nil {
				return err
			}
		}
	}

	own, err := posts.PostsByAuthor(u1.ID).All()
	if err != nil {
		return err
	}
	if len(own) != 2 {
		return fmt.Errorf("expected 2 posts for %q, got %d", u1.Username, len(own))
	}
	for _, p := range own {
		if p.AuthorID != u1.ID {
			return fmt.Errorf("post %d of author %d leaked into %d's collection", p.ID, p.AuthorID, u1.ID)
		}
	}
	return nil
}

func checkDeleteRestrict(db *gorm.DB) error {
	user, post, err := seedUserWithPost(db, "frank", "hello")
	if err != nil {
		return err
	}
	users := repositories.NewGormUserRepository(db)
	posts := repositories.NewGormPostRepository(db)

	err = users.DeleteUser(user.ID)
	if err == nil {
		return errors.New("user with posts was deleted")
	}
	if !errors.Is(err, models.ErrUserHasPosts) {
		return fmt.Errorf("unexpected restrict error: %v", err)
	}

	if err := posts.DeletePost(post.ID); err != nil {
		return err
	}
	return users.DeleteUser(user.ID)
}
