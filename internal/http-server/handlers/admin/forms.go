package admin

import (
	"strings"

	"newspaper/internal/domain/models"
	"newspaper/internal/lib/form"
)

type ArticleForm struct {
	Title    string              `form:"title" validate:"required,max=255"`
	Body     string              `form:"body" validate:"required"`
	Author   int64               `form:"author" validate:"gt=0"`
	Comments []InlineCommentForm `form:"comments" validate:"dive"`
}

// InlineCommentForm is one row of the comment inline. Rows marked for
// deletion and blank new rows are not validated.
type InlineCommentForm struct {
	ID     int64  `form:"id"`
	Body   string `form:"body" validate:"required_unless=Delete true,max=140"`
	Delete bool   `form:"delete"`
}

func (f *ArticleForm) Clean() {
	f.Title = strings.TrimSpace(f.Title)
	f.Body = strings.TrimSpace(f.Body)

	for i := range f.Comments {
		row := &f.Comments[i]
		row.Body = strings.TrimSpace(row.Body)
		if row.ID == 0 && row.Body == "" {
			row.Delete = true
		}
	}
}

type CommentForm struct {
	Body    string `form:"body" validate:"required,max=140"`
	Article int64  `form:"article" validate:"gt=0"`
	Author  int64  `form:"author" validate:"gt=0"`
}

func (f *CommentForm) Clean() {
	f.Body = strings.TrimSpace(f.Body)
}

// choices feeds the select boxes of the change pages.
type choices struct {
	Users          []models.User
	Articles       []models.Article
	CommentAuthors map[int64]string
}

type changeData[T any] struct {
	Model   ModelAdmin
	ID      int64
	Form    T
	Errors  form.Errors
	Choices choices
}
