package request

import "strings"

type Credentials struct {
	UserName string `json:"user_name,omitempty" validate:"required,max=150"`
	Password string `json:"password,omitempty" validate:"required"`
}

// Article carries the editable fields of an article. Any author sent
// by the client is not part of it.
type Article struct {
	Title string `json:"title" validate:"required,max=255"`
	Body  string `json:"body" validate:"required"`
}

type Comment struct {
	Body string `json:"body" validate:"required,max=140"`
}

func (a *Article) Clean() {
	a.Title = strings.TrimSpace(a.Title)
	a.Body = strings.TrimSpace(a.Body)
}

func (c *Credentials) Clean() {
	c.UserName = strings.TrimSpace(c.UserName)
}

func (c *Comment) Clean() {
	c.Body = strings.TrimSpace(c.Body)
}
