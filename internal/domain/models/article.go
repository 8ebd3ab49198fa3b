package models

import "time"

type Article struct {
	ID          int64     `json:"id,omitempty"`
	Title       string    `json:"title,omitempty"`
	Body        string    `json:"body,omitempty"`
	PublishDate time.Time `json:"publish_date,omitempty"`
	AuthorID    int64     `json:"author_id,omitempty"`
	Author      string    `json:"author,omitempty"`
	Comments    []Comment `json:"comments,omitempty"`
}

// OwnedBy reports whether the user with the given id may change or delete the article.
func (a *Article) OwnedBy(userID int64) bool {
	return a != nil && userID != 0 && a.AuthorID == userID
}
