package account

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"newspaper/internal/domain/models"
	"newspaper/internal/http-server/middleware/auth"
	"newspaper/internal/http-server/session"
	"newspaper/internal/http-server/view"
	"newspaper/internal/lib/form"
	"newspaper/internal/lib/logger/sl"
	"newspaper/internal/service/user"
)

type Service interface {
	Register(ctx context.Context, userName, password string) (int64, error)
	Authenticate(ctx context.Context, userName, password string) (models.User, error)
}

type Account struct {
	log      *slog.Logger
	service  Service
	view     *view.Renderer
	sessions *session.Manager
}

func New(log *slog.Logger, service Service, v *view.Renderer, sessions *session.Manager) *Account {
	return &Account{
		log:      log,
		service:  service,
		view:     v,
		sessions: sessions,
	}
}

func (a *Account) Register() func(r chi.Router) {
	return func(r chi.Router) {
		r.Get("/login/", a.loginForm)
		r.Post("/login/", a.login)
		r.Post("/logout/", a.logout)
		r.Get("/signup/", a.signupForm)
		r.Post("/signup/", a.signup)
	}
}

// Home is the public landing page.
func (a *Account) Home(w http.ResponseWriter, r *http.Request) {
	a.view.Render(w, r, http.StatusOK, homeTmpl, "Home", nil)
}

type LoginForm struct {
	Username string `form:"username" validate:"required,max=150"`
	Password string `form:"password" validate:"required"`
	Next     string `form:"next"`
}

func (f *LoginForm) Clean() {
	f.Username = strings.TrimSpace(f.Username)
}

type SignupForm struct {
	Username     string `form:"username" validate:"required,max=150"`
	Password     string `form:"password1" validate:"required"`
	Confirmation string `form:"password2" validate:"required,eqfield=Password"`
}

func (f *SignupForm) Clean() {
	f.Username = strings.TrimSpace(f.Username)
}

type formData[T any] struct {
	Form   T
	Errors form.Errors
}

func (a *Account) loginForm(w http.ResponseWriter, r *http.Request) {
	if session.User(r.Context()) != nil {
		view.SeeOther(w, r, auth.SafeNext(r.URL.Query().Get("next"), "/articles/"))
		return
	}

	a.view.Render(w, r, http.StatusOK, loginTmpl, "Log in", formData[LoginForm]{
		Form: LoginForm{Next: r.URL.Query().Get("next")},
	})
}

func (a *Account) login(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.account.login"

	log := a.log.With(slog.String("op", op))

	var f LoginForm
	if err := form.Decode(r, &f); err != nil {
		log.Info("failed to decode form", sl.Error(err))
		a.view.BadRequest(w, r)
		return
	}

	errs := form.Validate(&f)
	if errs.Valid() {
		// Send to service layer
		u, err := a.service.Authenticate(r.Context(), f.Username, f.Password)
		switch {
		case err == nil:
			if err := a.sessions.Login(r.Context(), u.ID); err != nil {
				a.view.ServerError(w, r, fmt.Errorf("%s: %w", op, err))
				return
			}
			log.Info("user logged in", slog.Int64("user_id", u.ID))
			a.sessions.Success(r.Context(), "Welcome %s!", u.Username)
			view.SeeOther(w, r, auth.SafeNext(f.Next, "/articles/"))
			return
		case errors.Is(err, user.ErrInvalidCredentials):
			errs.Add(form.NonField, "Please enter a correct username and password.")
		default:
			a.view.ServerError(w, r, fmt.Errorf("%s: %w", op, err))
			return
		}
	}

	f.Password = ""
	a.view.Render(w, r, http.StatusOK, loginTmpl, "Log in", formData[LoginForm]{Form: f, Errors: errs})
}

func (a *Account) logout(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.account.logout"

	if err := a.sessions.Logout(r.Context()); err != nil {
		a.view.ServerError(w, r, fmt.Errorf("%s: %w", op, err))
		return
	}

	view.SeeOther(w, r, "/")
}

func (a *Account) signupForm(w http.ResponseWriter, r *http.Request) {
	a.view.Render(w, r, http.StatusOK, signupTmpl, "Sign up", formData[SignupForm]{})
}

func (a *Account) signup(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.account.signup"

	log := a.log.With(slog.String("op", op))

	var f SignupForm
	if err := form.Decode(r, &f); err != nil {
		log.Info("failed to decode form", sl.Error(err))
		a.view.BadRequest(w, r)
		return
	}

	errs := form.Validate(&f)
	if errs.Valid() {
		// Send to service layer
		_, err := a.service.Register(r.Context(), f.Username, f.Password)
		switch {
		case err == nil:
			a.sessions.Success(r.Context(), "Account created. You can log in now.")
			view.SeeOther(w, r, auth.LoginURL)
			return
		case errors.Is(err, user.ErrUserExists):
			errs.Add("username", "A user with that username already exists.")
		case errors.Is(err, user.ErrPasswordTooLong):
			errs.Add("password1", "Ensure this password has at most 72 bytes.")
		default:
			a.view.ServerError(w, r, fmt.Errorf("%s: %w", op, err))
			return
		}
	}

	f.Password, f.Confirmation = "", ""
	a.view.Render(w, r, http.StatusOK, signupTmpl, "Sign up", formData[SignupForm]{Form: f, Errors: errs})
}
