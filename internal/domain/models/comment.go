package models

import "time"

type Comment struct {
	ID          int64     `json:"id,omitempty"`
	Body        string    `json:"body,omitempty"`
	PublishDate time.Time `json:"publish_date,omitempty"`
	ArticleID   int64     `json:"article_id,omitempty"`
	AuthorID    int64     `json:"author_id,omitempty"`
	Author      string    `json:"author,omitempty"`
}

// String is the text shown for a comment in listings.
func (c Comment) String() string {
	return c.Body
}
