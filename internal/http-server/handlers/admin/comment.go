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

type commentAdmin struct {
	*Admin
}

var commentColumns = map[string]func(models.Comment) string{
	"comment": models.Comment.String,
	"author":  func(c models.Comment) string { return c.Author },
}

func (h *commentAdmin) list(w http.ResponseWriter, r *http.Request, m ModelAdmin) {
	const op = "handlers.admin.comment.list"

	comments, err := h.service.Comments(r.Context())
	if err != nil {
		h.view.ServerError(w, r, fmt.Errorf("%s: %w", op, err))
		return
	}

	rows := make([]listRow, 0, len(comments))
	for _, c := range comments {
		row := listRow{ID: c.ID}
		for _, col := range m.ListDisplay {
			row.Cells = append(row.Cells, commentColumns[col](c))
		}
		rows = append(rows, row)
	}

	h.renderList(w, r, m, rows)
}

func (h *commentAdmin) add(w http.ResponseWriter, r *http.Request, m ModelAdmin) {
	const op = "handlers.admin.comment.add"

	log := h.log.With(slog.String("op", op))
	data := changeData[CommentForm]{Model: m}

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

	data.Errors = form.Validate(&data.Form)
	if !data.Errors.Valid() {
		h.renderChange(w, r, op, data)
		return
	}

	id, err := h.service.CreateComment(r.Context(), data.Form.Article, data.Form.Author, data.Form.Body)
	if err != nil {
		if errors.Is(err, adminservice.ErrInvalidReference) {
			data.Errors.Add(form.NonField, "Select a valid article and author.")
			h.renderChange(w, r, op, data)
			return
		}
		h.view.ServerError(w, r, fmt.Errorf("%s: %w", op, err))
		return
	}

	h.sessions.Success(r.Context(), "The comment %q was added successfully.", data.Form.Body)
	log.Info("comment added", slog.Int64("comment_id", id))

	view.SeeOther(w, r, listURL(m))
}

func (h *commentAdmin) change(w http.ResponseWriter, r *http.Request, m ModelAdmin, id int64) {
	const op = "handlers.admin.comment.change"

	log := h.log.With(slog.String("op", op), slog.Int64("comment_id", id))

	c, err := h.service.Comment(r.Context(), id)
	if err != nil {
		h.failed(w, r, op, err)
		return
	}

	data := changeData[CommentForm]{Model: m, ID: id}

	if r.Method == http.MethodGet {
		data.Form = CommentForm{Body: c.Body, Article: c.ArticleID, Author: c.AuthorID}
		h.renderChange(w, r, op, data)
		return
	}

	if err := form.Decode(r, &data.Form); err != nil {
		log.Info("failed to decode form", sl.Error(err))
		h.view.BadRequest(w, r)
		return
	}

	data.Errors = form.Validate(&data.Form)
	if !data.Errors.Valid() {
		h.renderChange(w, r, op, data)
		return
	}

	err = h.service.UpdateComment(r.Context(), id, data.Form.Article, data.Form.Author, data.Form.Body)
	if err != nil {
		if errors.Is(err, adminservice.ErrInvalidReference) {
			data.Errors.Add(form.NonField, "Select a valid article and author.")
			h.renderChange(w, r, op, data)
			return
		}
		h.failed(w, r, op, err)
		return
	}

	h.sessions.Success(r.Context(), "The comment %q was changed successfully.", data.Form.Body)
	log.Info("comment changed")

	view.SeeOther(w, r, listURL(m))
}

func (h *commentAdmin) remove(w http.ResponseWriter, r *http.Request, m ModelAdmin, id int64) {
	const op = "handlers.admin.comment.remove"

	c, err := h.service.Comment(r.Context(), id)
	if err != nil {
		h.failed(w, r, op, err)
		return
	}

	if r.Method == http.MethodGet {
		h.renderDelete(w, r, m, id, c.String())
		return
	}

	if err := h.service.RemoveComment(r.Context(), id); err != nil {
		h.failed(w, r, op, err)
		return
	}

	h.sessions.Success(r.Context(), "The comment %q was deleted successfully.", c.String())

	view.SeeOther(w, r, listURL(m))
}

func (h *commentAdmin) renderChange(w http.ResponseWriter, r *http.Request, op string, data changeData[CommentForm]) {
	users, err := h.service.Users(r.Context())
	if err != nil {
		h.view.ServerError(w, r, fmt.Errorf("%s: %w", op, err))
		return
	}

	arts, err := h.service.Articles(r.Context())
	if err != nil {
		h.view.ServerError(w, r, fmt.Errorf("%s: %w", op, err))
		return
	}

	data.Choices = choices{Users: users, Articles: arts}

	title := "Add comment"
	if data.ID != 0 {
		title = "Change comment"
	}

	h.view.Render(w, r, http.StatusOK, commentChangeTmpl, title, data)
}
