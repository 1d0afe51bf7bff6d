package models

import "errors"

// Domain errors surfaced by the repositories. Storage-layer failures
// (duplicate keys, foreign-key violations) are translated into these at the
// repository boundary so callers match with errors.Is instead of inspecting
// driver errors.
var (
	// ErrUserNotFound indicates the requested user does not exist.
	ErrUserNotFound = errors.New("user not found")

	// ErrPostNotFound indicates the requested post does not exist.
	ErrPostNotFound = errors.New("post not found")

	// ErrUsernameTaken indicates the username is already held by another user.
	ErrUsernameTaken = errors.New("username already taken")

	// ErrAuthorNotFound indicates a post's author_id does not reference an
	// existing user. Raised by the store at insert time.
	ErrAuthorNotFound = errors.New("author does not reference an existing user")

	// ErrAuthorUnresolved indicates a persisted post's author could not be
	// resolved. With the foreign key in place this signals a broken invariant,
	// not a recoverable condition.
	ErrAuthorUnresolved = errors.New("post author could not be resolved")

	// ErrUserHasPosts indicates a user cannot be deleted while posts still
	// reference it (RESTRICT policy).
	ErrUserHasPosts = errors.New("user still owns posts")
)
