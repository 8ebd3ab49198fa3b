// Package router assembles the site: HTML pages behind the session,
// the JSON API behind JWTs, and the metrics endpoint.
package router

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"newspaper/internal/http-server/handlers/account"
	"newspaper/internal/http-server/handlers/admin"
	apiarticle "newspaper/internal/http-server/handlers/api/article"
	apiuser "newspaper/internal/http-server/handlers/api/user"
	"newspaper/internal/http-server/handlers/article"
	"newspaper/internal/http-server/middleware/auth"
	mwLogger "newspaper/internal/http-server/middleware/logger"
	"newspaper/internal/http-server/middleware/metrics"
	"newspaper/internal/http-server/session"
	"newspaper/internal/http-server/view"
	adminservice "newspaper/internal/service/admin"
	articleservice "newspaper/internal/service/article"
	userservice "newspaper/internal/service/user"
)

type Services struct {
	Users    *userservice.Service
	Articles *articleservice.Service
	Admin    *adminservice.Service
}

func New(log *slog.Logger, sessions *session.Manager, m *metrics.Metrics, svc Services, secret string) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(mwLogger.New(log))
	r.Use(middleware.Recoverer)
	r.Use(m.Middleware)

	v := view.New(log, sessions)

	// Init handlers
	acc := account.New(log, svc.Users, v, sessions)
	art := article.New(log, svc.Articles, v, sessions)
	adm := admin.New(log, svc.Admin, v, sessions)

	// Pages
	r.Group(func(r chi.Router) {
		r.Use(sessions.LoadAndSave)
		r.Use(auth.LoadUser(log, sessions, svc.Users))

		r.Get("/", acc.Home)
		r.Route("/accounts", acc.Register())
		r.Route("/articles", art.Register())
		r.Route("/admin", adm.Register())
	})

	// API
	r.Route("/api", func(r chi.Router) {
		r.Route("/users", apiuser.New(log, svc.Users).Register())
		r.Route("/articles", apiarticle.New(log, svc.Articles, secret).Register())
	})

	r.Method(http.MethodGet, "/metrics", m.Handler())

	return r
}
