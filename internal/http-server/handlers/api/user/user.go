package user

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"newspaper/internal/domain/models"
	req "newspaper/internal/lib/api/request"
	resp "newspaper/internal/lib/api/response"
	"newspaper/internal/lib/form"
	"newspaper/internal/lib/logger/sl"
	"newspaper/internal/service/user"
)

type Service interface {
	UserByID(ctx context.Context, id int64) (models.User, error)
	Register(ctx context.Context, userName, password string) (int64, error)
	Login(ctx context.Context, userName, password string) (token string, err error)
}

type User struct {
	log     *slog.Logger
	service Service
}

func New(log *slog.Logger, service Service) *User {
	return &User{
		log:     log,
		service: service,
	}
}

func (u *User) Register() func(r chi.Router) {
	return func(r chi.Router) {
		// Public routes
		r.Get("/{id}", u.getByID)
		r.Post("/login", u.login)
		r.Post("/register", u.register)
	}
}

func (u *User) login(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.api.user.login"

	log := u.log.With(slog.String("op", op))

	cred, ok := credentials(w, r, log)
	if !ok {
		return
	}

	// Send to service layer
	token, err := u.service.Login(r.Context(), cred.UserName, cred.Password)
	if err != nil {
		if errors.Is(err, user.ErrInvalidCredentials) {
			render.Status(r, http.StatusUnauthorized)
			render.JSON(w, r, resp.Err("invalid credentials"))
			return
		}

		log.Error("failed to create new token", sl.Error(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, resp.Err("internal error"))
		return
	}

	// Write response
	render.JSON(w, r, resp.Response{
		Status: resp.StatusOk,
		Token:  token,
	})
}

func (u *User) register(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.api.user.register"

	log := u.log.With(slog.String("op", op))

	cred, ok := credentials(w, r, log)
	if !ok {
		return
	}

	// Send to service layer
	id, err := u.service.Register(r.Context(), cred.UserName, cred.Password)
	if err != nil {
		if errors.Is(err, user.ErrUserExists) {
			log.Info("failed to register user", sl.Error(err))
			render.Status(r, http.StatusConflict)
			render.JSON(w, r, resp.Err("user already exists"))
			return
		}

		if errors.Is(err, user.ErrPasswordTooLong) {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, resp.ValidationError(map[string]string{
				"password": "Ensure this password has at most 72 bytes.",
			}))
			return
		}

		log.Error("failed to register new user", sl.Error(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, resp.Err("internal error"))
		return
	}

	// Write response
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, resp.Response{
		Status: resp.StatusOk,
		ID:     id,
	})
}

// credentials decodes the request body and checks both fields are set.
func credentials(w http.ResponseWriter, r *http.Request, log *slog.Logger) (req.Credentials, bool) {
	var cred req.Credentials
	if err := render.DecodeJSON(r.Body, &cred); err != nil {
		log.Info("failed to decode request", sl.Error(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, resp.Err("failed to decode request"))
		return cred, false
	}

	if errs := form.Validate(&cred); !errs.Valid() {
		log.Info("invalid credentials", slog.Any("fields", errs))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, resp.ValidationError(errs))
		return cred, false
	}

	return cred, true
}

func (u *User) getByID(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.api.user.getByID"

	log := u.log.With(slog.String("op", op))

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		log.Info("failed to get \"id\" url param", sl.Error(err))
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, resp.Err("user not found"))
		return
	}

	// Send to service layer
	usr, err := u.service.UserByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, resp.Err("user not found"))
			return
		}

		log.Error("failed to get user by id", sl.Error(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, resp.Err("internal error"))
		return
	}

	// Write to response
	render.JSON(w, r, resp.Response{
		Status: resp.StatusOk,
		User:   &usr,
	})
}
