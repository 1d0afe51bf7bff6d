package models

// User represents an author account. The username is unique across all users;
// the backing store enforces this through a unique index, so concurrent
// registrations of the same name resolve to first-writer-wins.
type User struct {
	ID       uint   `json:"id" gorm:"primaryKey"`
	Username string `json:"username" gorm:"uniqueIndex;not null"`

	// Posts is the derived reverse side of Post.AuthorID. It is never written
	// directly; the store populates it on preload and the RESTRICT constraint
	// keeps a user deletable only once the collection is empty.
	Posts []Post `json:"posts,omitempty" gorm:"foreignKey:AuthorID;constraint:OnDelete:RESTRICT"`
}

// CreateUserRequest is the payload for registering a new user.
type CreateUserRequest struct {
	Username string `json:"username" validate:"required,min=1,max=64"`
}
