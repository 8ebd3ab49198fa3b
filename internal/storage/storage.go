package storage

import (
	"errors"
	"time"
)

var (
	ErrUserExists   = errors.New("user already exists")
	ErrUserNotFound = errors.New("user not found")

	ErrArticleNotFound = errors.New("article not found")
	ErrCommentNotFound = errors.New("comment not found")

	ErrInvalidReference = errors.New("referenced record does not exist")
)

// CommentChange is one comment write applied together with an article update.
// ID 0 inserts a new comment.
type CommentChange struct {
	ID          int64
	AuthorID    int64
	Body        string
	PublishDate time.Time
	Delete      bool
}
