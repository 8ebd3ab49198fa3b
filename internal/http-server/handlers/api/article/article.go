package article

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"
	"github.com/go-chi/render"

	"newspaper/internal/domain/models"
	req "newspaper/internal/lib/api/request"
	resp "newspaper/internal/lib/api/response"
	"newspaper/internal/lib/form"
	"newspaper/internal/lib/jwt"
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
	log     *slog.Logger
	service Service
	secret  string
}

func New(log *slog.Logger, service Service, secret string) *Article {
	return &Article{
		log:     log,
		service: service,
		secret:  secret,
	}
}

func (a *Article) Register() func(r chi.Router) {
	return func(r chi.Router) {
		// Require auth
		tokenAuth := jwtauth.New("HS256", []byte(a.secret), nil)
		r.Use(jwtauth.Verifier(tokenAuth))
		r.Use(jwtauth.Authenticator(tokenAuth))

		r.Get("/", a.getAllArticles)
		r.Post("/", a.createArticle)
		r.Get("/{id}", a.getArticleByID)
		r.Put("/{id}", a.correctArticle)
		r.Delete("/{id}", a.removeArticle)
		r.Post("/{id}/comments", a.addComment)
	}
}

func (a *Article) getAllArticles(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.api.article.getAllArticles"

	log := a.log.With(slog.String("op", op))

	// Send to service layer
	arts, err := a.service.List(r.Context())
	if err != nil {
		log.Error("failed to get articles", sl.Error(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, resp.Err("internal error"))
		return
	}

	// Write response
	render.JSON(w, r, resp.Response{
		Status:   resp.StatusOk,
		Articles: arts,
	})
}

func (a *Article) createArticle(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.api.article.createArticle"

	log := a.log.With(slog.String("op", op))

	uid, ok := a.userID(w, r, log)
	if !ok {
		return
	}

	var body req.Article
	if !a.decode(w, r, log, &body) {
		return
	}

	// Send to service layer
	art, err := a.service.Create(r.Context(), uid, body.Title, body.Body)
	if err != nil {
		a.fail(w, r, log, err)
		return
	}

	// Write response
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, resp.Response{
		Status:  resp.StatusOk,
		Article: &art,
	})
}

func (a *Article) getArticleByID(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.api.article.getArticleByID"

	log := a.log.With(slog.String("op", op))

	id, ok := a.articleID(w, r)
	if !ok {
		return
	}

	// Send to service layer
	art, err := a.service.Get(r.Context(), id)
	if err != nil {
		a.fail(w, r, log, err)
		return
	}

	// Write response
	render.JSON(w, r, resp.Response{
		Status:  resp.StatusOk,
		Article: &art,
	})
}

func (a *Article) correctArticle(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.api.article.correctArticle"

	log := a.log.With(slog.String("op", op))

	uid, ok := a.userID(w, r, log)
	if !ok {
		return
	}

	id, ok := a.articleID(w, r)
	if !ok {
		return
	}

	var body req.Article
	if !a.decode(w, r, log, &body) {
		return
	}

	// Send to service layer
	if err := a.service.Update(r.Context(), uid, id, body.Title, body.Body); err != nil {
		a.fail(w, r, log, err)
		return
	}

	// Write response
	render.JSON(w, r, resp.OK())
}

func (a *Article) removeArticle(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.api.article.removeArticle"

	log := a.log.With(slog.String("op", op))

	uid, ok := a.userID(w, r, log)
	if !ok {
		return
	}

	id, ok := a.articleID(w, r)
	if !ok {
		return
	}

	// Send to service layer
	if err := a.service.Remove(r.Context(), uid, id); err != nil {
		a.fail(w, r, log, err)
		return
	}

	// Write response
	render.JSON(w, r, resp.OK())
}

func (a *Article) addComment(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.api.article.addComment"

	log := a.log.With(slog.String("op", op))

	uid, ok := a.userID(w, r, log)
	if !ok {
		return
	}

	id, ok := a.articleID(w, r)
	if !ok {
		return
	}

	var body req.Comment
	if !a.decode(w, r, log, &body) {
		return
	}

	// Send to service layer
	c, err := a.service.AddComment(r.Context(), uid, id, body.Body)
	if err != nil {
		a.fail(w, r, log, err)
		return
	}

	// Write response
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, resp.Response{
		Status:  resp.StatusOk,
		Comment: &c,
	})
}

func (a *Article) userID(w http.ResponseWriter, r *http.Request, log *slog.Logger) (int64, bool) {
	uid, err := jwt.UserID(r.Context())
	if err != nil {
		log.Info("failed to get user id from token", sl.Error(err))
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, resp.Err("invalid token"))
		return 0, false
	}

	return uid, true
}

func (a *Article) articleID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, resp.Err("article not found"))
		return 0, false
	}

	return id, true
}

// decode reads and validates the JSON payload into dst.
func (a *Article) decode(w http.ResponseWriter, r *http.Request, log *slog.Logger, dst any) bool {
	if err := render.DecodeJSON(r.Body, dst); err != nil {
		log.Info("failed to decode request", sl.Error(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, resp.Err("failed to decode request"))
		return false
	}

	if errs := form.Validate(dst); !errs.Valid() {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, resp.ValidationError(errs))
		return false
	}

	return true
}

func (a *Article) fail(w http.ResponseWriter, r *http.Request, log *slog.Logger, err error) {
	switch {
	case errors.Is(err, article.ErrPermissionDenied):
		log.Info("permission denied")
		render.Status(r, http.StatusForbidden)
		render.JSON(w, r, resp.Err("permission denied"))
	case errors.Is(err, article.ErrArticleNotFound):
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, resp.Err("article not found"))
	case errors.Is(err, article.ErrUnknownAuthor):
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, resp.Err("invalid token"))
	default:
		log.Error("request failed", sl.Error(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, resp.Err("internal error"))
	}
}
