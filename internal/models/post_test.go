package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBeforeCreateStampsTimestamp(t *testing.T) {
	assert := assert.New(t)

	p := &Post{Body: "hello", AuthorID: 1}
	assert.True(p.CreatedAt.IsZero())

	assert.NoError(p.BeforeCreate(nil))
	assert.False(p.CreatedAt.IsZero())
	assert.WithinDuration(time.Now().UTC(), p.CreatedAt, time.Minute)
}

func TestBeforeCreateKeepsCallerTimestamp(t *testing.T) {
	assert := assert.New(t)

	stamped := time.Date(2020, 1, 2, 3, 4, 5, 0, time.UTC)
	p := &Post{Body: "hello", AuthorID: 1, CreatedAt: stamped}

	assert.NoError(p.BeforeCreate(nil))
	assert.True(p.CreatedAt.Equal(stamped))
}

func TestBeforeCreateStampsPerConstruction(t *testing.T) {
	assert := assert.New(t)

	first := &Post{Body: "first", AuthorID: 1}
	assert.NoError(first.BeforeCreate(nil))

	time.Sleep(5 * time.Millisecond)

	second := &Post{Body: "second", AuthorID: 1}
	assert.NoError(second.BeforeCreate(nil))

	// The clock is read per construction, so later posts carry strictly
	// later timestamps.
	assert.True(first.CreatedAt.Before(second.CreatedAt))
}
