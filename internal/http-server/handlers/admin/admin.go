package admin

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"newspaper/internal/domain/models"
	"newspaper/internal/http-server/middleware/auth"
	"newspaper/internal/http-server/session"
	"newspaper/internal/http-server/view"
	adminservice "newspaper/internal/service/admin"
)

type Service interface {
	Users(ctx context.Context) ([]models.User, error)

	Articles(ctx context.Context) ([]models.Article, error)
	Article(ctx context.Context, id int64) (models.Article, error)
	CreateArticle(ctx context.Context, authorID int64, title, body string) (int64, error)
	UpdateArticle(ctx context.Context, id, authorID int64, title, body string, inlines []adminservice.InlineComment, editorID int64) error
	RemoveArticle(ctx context.Context, id int64) error

	Comments(ctx context.Context) ([]models.Comment, error)
	Comment(ctx context.Context, id int64) (models.Comment, error)
	CreateComment(ctx context.Context, articleID, authorID int64, body string) (int64, error)
	UpdateComment(ctx context.Context, id, articleID, authorID int64, body string) error
	RemoveComment(ctx context.Context, id int64) error
}

// modelHandler serves the pages of one registered model.
type modelHandler interface {
	list(w http.ResponseWriter, r *http.Request, m ModelAdmin)
	add(w http.ResponseWriter, r *http.Request, m ModelAdmin)
	change(w http.ResponseWriter, r *http.Request, m ModelAdmin, id int64)
	remove(w http.ResponseWriter, r *http.Request, m ModelAdmin, id int64)
}

type Admin struct {
	log      *slog.Logger
	service  Service
	view     *view.Renderer
	sessions *session.Manager
	handlers map[string]modelHandler
}

func New(log *slog.Logger, service Service, v *view.Renderer, sessions *session.Manager) *Admin {
	a := &Admin{
		log:      log,
		service:  service,
		view:     v,
		sessions: sessions,
	}

	a.handlers = map[string]modelHandler{
		"article": &articleAdmin{Admin: a},
		"comment": &commentAdmin{Admin: a},
	}

	return a
}

func (a *Admin) Register() func(r chi.Router) {
	return func(r chi.Router) {
		r.Use(auth.RequireLogin)
		r.Use(auth.RequireStaff(a.view))

		r.Get("/", a.index)

		r.Route("/{model}", func(r chi.Router) {
			r.With(a.allow(OpList)).Get("/", a.serveList)

			r.With(a.allow(OpAdd)).Get("/add/", a.serveAdd)
			r.With(a.allow(OpAdd)).Post("/add/", a.serveAdd)

			r.With(a.allow(OpChange)).Get("/{id}/change/", a.serveChange)
			r.With(a.allow(OpChange)).Post("/{id}/change/", a.serveChange)

			r.With(a.allow(OpDelete)).Get("/{id}/delete/", a.serveRemove)
			r.With(a.allow(OpDelete)).Post("/{id}/delete/", a.serveRemove)
		})
	}
}

type ctxKey struct{}

// allow answers 404 unless the {model} URL param names a registered model
// that permits op.
func (a *Admin) allow(op Op) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			m, ok := lookup(chi.URLParam(r, "model"))
			if !ok || !m.Ops.Has(op) || a.handlers[m.Name] == nil {
				a.view.NotFound(w, r)
				return
			}

			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, m)))
		})
	}
}

func modelFrom(ctx context.Context) ModelAdmin {
	m, _ := ctx.Value(ctxKey{}).(ModelAdmin)
	return m
}

type indexEntry struct {
	ModelAdmin
	CanList bool
	CanAdd  bool
}

func (a *Admin) index(w http.ResponseWriter, r *http.Request) {
	entries := make([]indexEntry, 0, len(Registry))
	for _, m := range Registry {
		entries = append(entries, indexEntry{
			ModelAdmin: m,
			CanList:    m.Ops.Has(OpList),
			CanAdd:     m.Ops.Has(OpAdd),
		})
	}

	a.view.Render(w, r, http.StatusOK, indexTmpl, "Site administration", entries)
}

func (a *Admin) serveList(w http.ResponseWriter, r *http.Request) {
	m := modelFrom(r.Context())
	a.handlers[m.Name].list(w, r, m)
}

func (a *Admin) serveAdd(w http.ResponseWriter, r *http.Request) {
	m := modelFrom(r.Context())
	a.handlers[m.Name].add(w, r, m)
}

func (a *Admin) serveChange(w http.ResponseWriter, r *http.Request) {
	m := modelFrom(r.Context())
	if id, ok := a.objectID(w, r); ok {
		a.handlers[m.Name].change(w, r, m, id)
	}
}

func (a *Admin) serveRemove(w http.ResponseWriter, r *http.Request) {
	m := modelFrom(r.Context())
	if id, ok := a.objectID(w, r); ok {
		a.handlers[m.Name].remove(w, r, m, id)
	}
}

func (a *Admin) objectID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		a.view.NotFound(w, r)
		return 0, false
	}
	return id, true
}

type listRow struct {
	ID    int64
	Cells []string
}

type listData struct {
	Model     ModelAdmin
	Rows      []listRow
	CanAdd    bool
	CanChange bool
	CanDelete bool
}

func (a *Admin) renderList(w http.ResponseWriter, r *http.Request, m ModelAdmin, rows []listRow) {
	a.view.Render(w, r, http.StatusOK, listTmpl, m.Plural, listData{
		Model:     m,
		Rows:      rows,
		CanAdd:    m.Ops.Has(OpAdd),
		CanChange: m.Ops.Has(OpChange),
		CanDelete: m.Ops.Has(OpDelete),
	})
}

type deleteData struct {
	Model  ModelAdmin
	ID     int64
	Object string
}

func (a *Admin) renderDelete(w http.ResponseWriter, r *http.Request, m ModelAdmin, id int64, object string) {
	a.view.Render(w, r, http.StatusOK, deleteTmpl, "Are you sure?", deleteData{
		Model:  m,
		ID:     id,
		Object: object,
	})
}

func listURL(m ModelAdmin) string {
	return "/admin/" + m.Name + "/"
}
