package auth

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"

	"newspaper/internal/domain/models"
	"newspaper/internal/http-server/session"
	"newspaper/internal/http-server/view"
	"newspaper/internal/lib/logger/sl"
	userservice "newspaper/internal/service/user"
)

const LoginURL = "/accounts/login/"

type UserProvider interface {
	UserByID(ctx context.Context, id int64) (models.User, error)
}

// LoadUser resolves the session's user id into the request context.
// A stale id, for a user that no longer exists, is treated as anonymous.
func LoadUser(log *slog.Logger, sessions *session.Manager, users UserProvider) func(next http.Handler) http.Handler {
	const op = "http-server.middleware.auth.LoadUser"

	log = log.With(slog.String("op", op))

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			uid := sessions.UserID(r.Context())
			if uid == 0 {
				next.ServeHTTP(w, r)
				return
			}

			u, err := users.UserByID(r.Context(), uid)
			if err != nil {
				if !errors.Is(err, userservice.ErrUserNotFound) {
					log.Error("failed to load session user", slog.Int64("user_id", uid), sl.Error(err))
				}
				next.ServeHTTP(w, r)
				return
			}

			next.ServeHTTP(w, r.WithContext(session.WithUser(r.Context(), &u)))
		})
	}
}

// RequireLogin redirects anonymous requests to the login page, which
// sends the user back to the original path afterwards.
func RequireLogin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if session.User(r.Context()) == nil {
			view.SeeOther(w, r, LoginURL+"?"+url.Values{"next": {r.URL.RequestURI()}}.Encode())
			return
		}

		next.ServeHTTP(w, r)
	})
}

// RequireStaff lets staff users through and answers everyone else logged in with 403.
// It must run after RequireLogin.
func RequireStaff(v *view.Renderer) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if u := session.User(r.Context()); u == nil || !u.IsStaff {
				v.Forbidden(w, r)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// Predicate reports whether the current request may proceed.
type Predicate func(r *http.Request) bool

// Require runs next only if every predicate holds, otherwise it answers 403.
// Predicates are evaluated in order.
func Require(v *view.Renderer, preds ...Predicate) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			for _, ok := range preds {
				if !ok(r) {
					v.Forbidden(w, r)
					return
				}
			}

			next.ServeHTTP(w, r)
		})
	}
}

// SafeNext returns next if it is a local path and fallback otherwise.
func SafeNext(next, fallback string) string {
	if next == "" || next[0] != '/' {
		return fallback
	}
	if u, err := url.Parse(next); err != nil || u.IsAbs() || u.Host != "" {
		return fallback
	}
	// "//host" and "/\host" are treated as hosts by browsers.
	if len(next) > 1 && (next[1] == '/' || next[1] == '\\') {
		return fallback
	}

	return next
}
