package admin

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"newspaper/internal/domain/models"
	"newspaper/internal/http-server/session"
	"newspaper/internal/http-server/view"
	"newspaper/internal/lib/form"
	"newspaper/internal/lib/logger/sl"
	adminservice "newspaper/internal/service/admin"
)

type articleAdmin struct {
	*Admin
}

var articleColumns = map[string]func(models.Article) string{
	"title":  func(a models.Article) string { return a.Title },
	"body":   func(a models.Article) string { return a.Body },
	"author": func(a models.Article) string { return a.Author },
}

func (h *articleAdmin) list(w http.ResponseWriter, r *http.Request, m ModelAdmin) {
	const op = "handlers.admin.article.list"

	arts, err := h.service.Articles(r.Context())
	if err != nil {
		h.view.ServerError(w, r, fmt.Errorf("%s: %w", op, err))
		return
	}

	rows := make([]listRow, 0, len(arts))
	for _, art := range arts {
		row := listRow{ID: art.ID}
		for _, col := range m.ListDisplay {
			row.Cells = append(row.Cells, articleColumns[col](art))
		}
		rows = append(rows, row)
	}

	h.renderList(w, r, m, rows)
}

func (h *articleAdmin) add(w http.ResponseWriter, r *http.Request, m ModelAdmin) {
	const op = "handlers.admin.article.add"

	log := h.log.With(slog.String("op", op))
	data := changeData[ArticleForm]{Model: m}

	if r.Method == http.MethodGet {
		data.Form.Author = session.User(r.Context()).ID
		h.renderChange(w, r, op, data)
		return
	}

	if err := form.Decode(r, &data.Form); err != nil {
		log.Info("failed to decode form", sl.Error(err))
		h.view.BadRequest(w, r)
		return
	}

	// Inline rows are only offered on the change page.
	data.Form.Comments = nil

	data.Errors = form.Validate(&data.Form)
	if !data.Errors.Valid() {
		h.renderChange(w, r, op, data)
		return
	}

	id, err := h.service.CreateArticle(r.Context(), data.Form.Author, data.Form.Title, data.Form.Body)
	if err != nil {
		if errors.Is(err, adminservice.ErrInvalidReference) {
			data.Errors.Add("author", "Select a valid choice.")
			h.renderChange(w, r, op, data)
			return
		}
		h.view.ServerError(w, r, fmt.Errorf("%s: %w", op, err))
		return
	}

	h.sessions.Success(r.Context(), "The article %q was added successfully.", data.Form.Title)
	log.Info("article added", slog.Int64("article_id", id))

	view.SeeOther(w, r, listURL(m))
}

func (h *articleAdmin) change(w http.ResponseWriter, r *http.Request, m ModelAdmin, id int64) {
	const op = "handlers.admin.article.change"

	log := h.log.With(slog.String("op", op), slog.Int64("article_id", id))

	art, err := h.service.Article(r.Context(), id)
	if err != nil {
		h.failed(w, r, op, err)
		return
	}

	data := changeData[ArticleForm]{Model: m, ID: id}

	if r.Method == http.MethodGet {
		data.Form = ArticleForm{Title: art.Title, Body: art.Body, Author: art.AuthorID}
		for _, c := range art.Comments {
			data.Form.Comments = append(data.Form.Comments, InlineCommentForm{ID: c.ID, Body: c.Body})
		}
		if in, ok := m.inline("comment"); ok {
			for i := 0; i < in.Extra; i++ {
				data.Form.Comments = append(data.Form.Comments, InlineCommentForm{})
			}
		}
		h.renderChange(w, r, op, data, art.Comments...)
		return
	}

	if err := form.Decode(r, &data.Form); err != nil {
		log.Info("failed to decode form", sl.Error(err))
		h.view.BadRequest(w, r)
		return
	}

	data.Errors = form.Validate(&data.Form)
	if !data.Errors.Valid() {
		h.renderChange(w, r, op, data, art.Comments...)
		return
	}

	inlines := make([]adminservice.InlineComment, 0, len(data.Form.Comments))
	for _, row := range data.Form.Comments {
		inlines = append(inlines, adminservice.InlineComment{ID: row.ID, Body: row.Body, Delete: row.Delete})
	}

	editor := session.User(r.Context()).ID

	err = h.service.UpdateArticle(r.Context(), id, data.Form.Author, data.Form.Title, data.Form.Body, inlines, editor)
	if err != nil {
		if errors.Is(err, adminservice.ErrInvalidReference) {
			data.Errors.Add("author", "Select a valid choice.")
			h.renderChange(w, r, op, data, art.Comments...)
			return
		}
		h.failed(w, r, op, err)
		return
	}

	h.sessions.Success(r.Context(), "The article %q was changed successfully.", data.Form.Title)
	log.Info("article changed")

	view.SeeOther(w, r, listURL(m))
}

func (h *articleAdmin) remove(w http.ResponseWriter, r *http.Request, m ModelAdmin, id int64) {
	const op = "handlers.admin.article.remove"

	art, err := h.service.Article(r.Context(), id)
	if err != nil {
		h.failed(w, r, op, err)
		return
	}

	if r.Method == http.MethodGet {
		h.renderDelete(w, r, m, id, art.Title)
		return
	}

	if err := h.service.RemoveArticle(r.Context(), id); err != nil {
		h.failed(w, r, op, err)
		return
	}

	h.sessions.Success(r.Context(), "The article %q was deleted successfully.", art.Title)

	view.SeeOther(w, r, listURL(m))
}

func (h *articleAdmin) renderChange(w http.ResponseWriter, r *http.Request, op string, data changeData[ArticleForm], comments ...models.Comment) {
	users, err := h.service.Users(r.Context())
	if err != nil {
		h.view.ServerError(w, r, fmt.Errorf("%s: %w", op, err))
		return
	}

	data.Choices = choices{
		Users:          users,
		CommentAuthors: make(map[int64]string, len(comments)),
	}
	for _, c := range comments {
		data.Choices.CommentAuthors[c.ID] = c.Author
	}

	title := "Add article"
	if data.ID != 0 {
		title = "Change article"
	}

	h.view.Render(w, r, http.StatusOK, articleChangeTmpl, title, data)
}

func (a *Admin) failed(w http.ResponseWriter, r *http.Request, op string, err error) {
	if errors.Is(err, adminservice.ErrNotFound) {
		a.view.NotFound(w, r)
		return
	}
	a.view.ServerError(w, r, fmt.Errorf("%s: %w", op, err))
}
