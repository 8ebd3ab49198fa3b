package article

import (
	"strings"

	"newspaper/internal/lib/form"
)

// ArticleForm holds the fields a user may set on their own article.
// The author is never read from the request.
type ArticleForm struct {
	Title string `form:"title" validate:"required,max=255"`
	Body  string `form:"body" validate:"required"`
}

func (f *ArticleForm) Clean() {
	f.Title = strings.TrimSpace(f.Title)
	f.Body = strings.TrimSpace(f.Body)
}

// CommentForm is the comment box under an article. Article and author
// come from the URL and the session.
type CommentForm struct {
	Body string `form:"body" validate:"required,max=140"`
}

func (f *CommentForm) Clean() {
	f.Body = strings.TrimSpace(f.Body)
}

type articleFormData struct {
	Heading string
	Action  string
	Form    ArticleForm
	Errors  form.Errors
}
