package article

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"newspaper/internal/domain/models"
	"newspaper/internal/http-server/middleware/auth"
	"newspaper/internal/http-server/session"
	"newspaper/internal/http-server/view"
	"newspaper/internal/lib/form"
	"newspaper/internal/lib/logger/sl"
	"newspaper/internal/service/article"
)

type Service interface {
	List(ctx context.Context) ([]models.Article, error)
	Get(ctx context.Context, id int64) (models.Article, error)
	Create(ctx context.Context, authorID int64, title, body string) (models.Article, error)
	Update(ctx context.Context, userID, id int64, title, body string) error
	Remove(ctx context.Context, userID, id int64) error
	AddComment(ctx context.Context, userID, articleID int64, body string) (models.Comment, error)
}

type Article struct {
	log      *slog.Logger
	service  Service
	view     *view.Renderer
	sessions *session.Manager
}

func New(log *slog.Logger, service Service, v *view.Renderer, sessions *session.Manager) *Article {
	return &Article{
		log:      log,
		service:  service,
		view:     v,
		sessions: sessions,
	}
}

func (a *Article) Register() func(r chi.Router) {
	return func(r chi.Router) {
		r.Use(auth.RequireLogin)

		r.Get("/", a.list)
		r.Get("/new/", a.createForm)
		r.Post("/new/", a.create)

		r.Route("/{id}", func(r chi.Router) {
			r.Use(a.articleCtx)

			r.Get("/", a.detail)
			r.Post("/", a.comment)

			// Owner only
			r.Group(func(r chi.Router) {
				r.Use(auth.Require(a.view, isOwner))

				r.Get("/edit/", a.editForm)
				r.Post("/edit/", a.edit)
				r.Get("/delete/", a.deleteConfirm)
				r.Post("/delete/", a.remove)
			})
		})
	}
}

type ctxKey struct{}

func articleFrom(ctx context.Context) *models.Article {
	art, _ := ctx.Value(ctxKey{}).(*models.Article)
	return art
}

// articleCtx loads the article named by the {id} URL param, with its
// comments, or answers 404.
func (a *Article) articleCtx(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.article.articleCtx"

		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil || id <= 0 {
			a.view.NotFound(w, r)
			return
		}

		art, err := a.service.Get(r.Context(), id)
		if err != nil {
			if errors.Is(err, article.ErrArticleNotFound) {
				a.view.NotFound(w, r)
				return
			}
			a.view.ServerError(w, r, fmt.Errorf("%s: %w", op, err))
			return
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, &art)))
	})
}

func isOwner(r *http.Request) bool {
	u := session.User(r.Context())
	return u != nil && articleFrom(r.Context()).OwnedBy(u.ID)
}

func (a *Article) logger(r *http.Request, op string) *slog.Logger {
	return a.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)
}

func (a *Article) list(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.article.list"

	// Send to service layer
	arts, err := a.service.List(r.Context())
	if err != nil {
		a.view.ServerError(w, r, fmt.Errorf("%s: %w", op, err))
		return
	}

	a.view.Render(w, r, http.StatusOK, listTmpl, "Articles", arts)
}

type detailData struct {
	Article *models.Article
	CanEdit bool
	Form    CommentForm
	Errors  form.Errors
}

func (a *Article) detail(w http.ResponseWriter, r *http.Request) {
	a.renderDetail(w, r, CommentForm{}, nil)
}

func (a *Article) renderDetail(w http.ResponseWriter, r *http.Request, f CommentForm, errs form.Errors) {
	art := articleFrom(r.Context())

	a.view.Render(w, r, http.StatusOK, detailTmpl, art.Title, detailData{
		Article: art,
		CanEdit: isOwner(r),
		Form:    f,
		Errors:  errs,
	})
}

// comment handles the comment form posted to the detail page.
func (a *Article) comment(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.article.comment"

	log := a.logger(r, op)
	art := articleFrom(r.Context())
	user := session.User(r.Context())

	var f CommentForm
	if err := form.Decode(r, &f); err != nil {
		log.Info("failed to decode form", sl.Error(err))
		a.view.BadRequest(w, r)
		return
	}

	if errs := form.Validate(&f); !errs.Valid() {
		a.renderDetail(w, r, f, errs)
		return
	}

	// Send to service layer
	if _, err := a.service.AddComment(r.Context(), user.ID, art.ID, f.Body); err != nil {
		if errors.Is(err, article.ErrArticleNotFound) {
			a.view.NotFound(w, r)
			return
		}
		a.view.ServerError(w, r, fmt.Errorf("%s: %w", op, err))
		return
	}

	view.SeeOther(w, r, detailURL(art.ID))
}

func (a *Article) createForm(w http.ResponseWriter, r *http.Request) {
	a.view.Render(w, r, http.StatusOK, formTmpl, "New article", articleFormData{
		Heading: "New article",
		Action:  "/articles/new/",
	})
}

func (a *Article) create(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.article.create"

	log := a.logger(r, op)
	user := session.User(r.Context())

	var f ArticleForm
	if err := form.Decode(r, &f); err != nil {
		log.Info("failed to decode form", sl.Error(err))
		a.view.BadRequest(w, r)
		return
	}

	if errs := form.Validate(&f); !errs.Valid() {
		a.view.Render(w, r, http.StatusOK, formTmpl, "New article", articleFormData{
			Heading: "New article",
			Action:  "/articles/new/",
			Form:    f,
			Errors:  errs,
		})
		return
	}

	// Send to service layer
	art, err := a.service.Create(r.Context(), user.ID, f.Title, f.Body)
	if err != nil {
		a.view.ServerError(w, r, fmt.Errorf("%s: %w", op, err))
		return
	}

	log.Info("article created", slog.Int64("article_id", art.ID), slog.Int64("user_id", user.ID))
	a.sessions.Success(r.Context(), "Article %q published.", art.Title)

	view.SeeOther(w, r, detailURL(art.ID))
}

func (a *Article) editForm(w http.ResponseWriter, r *http.Request) {
	art := articleFrom(r.Context())

	a.view.Render(w, r, http.StatusOK, formTmpl, "Edit article", articleFormData{
		Heading: "Edit article",
		Action:  editURL(art.ID),
		Form:    ArticleForm{Title: art.Title, Body: art.Body},
	})
}

func (a *Article) edit(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.article.edit"

	log := a.logger(r, op)
	art := articleFrom(r.Context())
	user := session.User(r.Context())

	var f ArticleForm
	if err := form.Decode(r, &f); err != nil {
		log.Info("failed to decode form", sl.Error(err))
		a.view.BadRequest(w, r)
		return
	}

	if errs := form.Validate(&f); !errs.Valid() {
		a.view.Render(w, r, http.StatusOK, formTmpl, "Edit article", articleFormData{
			Heading: "Edit article",
			Action:  editURL(art.ID),
			Form:    f,
			Errors:  errs,
		})
		return
	}

	// Send to service layer
	if err := a.service.Update(r.Context(), user.ID, art.ID, f.Title, f.Body); err != nil {
		a.mutationFailed(w, r, op, err)
		return
	}

	a.sessions.Success(r.Context(), "Article updated.")

	view.SeeOther(w, r, detailURL(art.ID))
}

func (a *Article) deleteConfirm(w http.ResponseWriter, r *http.Request) {
	art := articleFrom(r.Context())

	a.view.Render(w, r, http.StatusOK, deleteTmpl, "Delete article", art)
}

func (a *Article) remove(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.article.remove"

	log := a.logger(r, op)
	art := articleFrom(r.Context())
	user := session.User(r.Context())

	// Send to service layer
	if err := a.service.Remove(r.Context(), user.ID, art.ID); err != nil {
		a.mutationFailed(w, r, op, err)
		return
	}

	log.Info("article deleted", slog.Int64("article_id", art.ID), slog.Int64("user_id", user.ID))
	a.sessions.Success(r.Context(), "Article %q deleted.", art.Title)

	view.SeeOther(w, r, "/articles/")
}

// mutationFailed covers the case where ownership or existence changed
// between loading the article and the write.
func (a *Article) mutationFailed(w http.ResponseWriter, r *http.Request, op string, err error) {
	switch {
	case errors.Is(err, article.ErrPermissionDenied):
		a.view.Forbidden(w, r)
	case errors.Is(err, article.ErrArticleNotFound):
		a.view.NotFound(w, r)
	default:
		a.view.ServerError(w, r, fmt.Errorf("%s: %w", op, err))
	}
}

func detailURL(id int64) string {
	return "/articles/" + strconv.FormatInt(id, 10) + "/"
}

func editURL(id int64) string {
	return detailURL(id) + "edit/"
}
