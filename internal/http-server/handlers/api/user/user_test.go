package user_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newspaper/internal/domain/models"
	apiuser "newspaper/internal/http-server/handlers/api/user"
	resp "newspaper/internal/lib/api/response"
	"newspaper/internal/lib/logger/slogdiscard"
	"newspaper/internal/service/user"
)

type fakeService struct {
	users map[string]string
}

func (f *fakeService) UserByID(_ context.Context, id int64) (models.User, error) {
	if id != 1 {
		return models.User{}, fmt.Errorf("fake: %w", user.ErrUserNotFound)
	}
	return models.User{ID: 1, Username: "alice", PassHash: []byte("hash")}, nil
}

func (f *fakeService) Register(_ context.Context, name, password string) (int64, error) {
	if len(password) > 72 {
		return 0, fmt.Errorf("fake: %w", user.ErrPasswordTooLong)
	}
	if _, ok := f.users[name]; ok {
		return 0, fmt.Errorf("fake: %w", user.ErrUserExists)
	}
	f.users[name] = password
	return int64(len(f.users)), nil
}

func (f *fakeService) Login(_ context.Context, name, password string) (string, error) {
	if pw, ok := f.users[name]; !ok || pw != password {
		return "", fmt.Errorf("fake: %w", user.ErrInvalidCredentials)
	}
	return "token-" + name, nil
}

func TestUserHandlers(t *testing.T) {
	r := chi.NewRouter()
	r.Route("/users", apiuser.New(slogdiscard.NewDiscardLogger(), &fakeService{users: map[string]string{}}).Register())

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		status int
		check  func(t *testing.T, out resp.Response, raw string)
	}{
		{
			name: "register", method: http.MethodPost, path: "/users/register",
			body: `{"user_name":"alice","password":"pw"}`, status: http.StatusCreated,
			check: func(t *testing.T, out resp.Response, _ string) {
				assert.Equal(t, int64(1), out.ID)
			},
		},
		{
			name: "register twice", method: http.MethodPost, path: "/users/register",
			body: `{"user_name":"alice","password":"pw"}`, status: http.StatusConflict,
			check: func(t *testing.T, out resp.Response, _ string) {
				assert.Equal(t, "user already exists", out.Error)
			},
		},
		{
			name: "register without password", method: http.MethodPost, path: "/users/register",
			body: `{"user_name":"bob"}`, status: http.StatusBadRequest,
		},
		{
			name: "register with long password", method: http.MethodPost, path: "/users/register",
			body: `{"user_name":"bob","password":"` + strings.Repeat("p", 80) + `"}`, status: http.StatusBadRequest,
			check: func(t *testing.T, out resp.Response, _ string) {
				assert.Equal(t, "Ensure this password has at most 72 bytes.", out.Fields["password"])
			},
		},
		{
			name: "malformed", method: http.MethodPost, path: "/users/login",
			body: `{`, status: http.StatusBadRequest,
		},
		{
			name: "wrong password", method: http.MethodPost, path: "/users/login",
			body: `{"user_name":"alice","password":"nope"}`, status: http.StatusUnauthorized,
		},
		{
			name: "login", method: http.MethodPost, path: "/users/login",
			body: `{"user_name":"alice","password":"pw"}`, status: http.StatusOK,
			check: func(t *testing.T, out resp.Response, _ string) {
				assert.Equal(t, "token-alice", out.Token)
			},
		},
		{
			name: "get", method: http.MethodGet, path: "/users/1", status: http.StatusOK,
			check: func(t *testing.T, out resp.Response, raw string) {
				require.NotNil(t, out.User)
				assert.Equal(t, "alice", out.User.Username)
				assert.NotContains(t, raw, "hash")
			},
		},
		{name: "unknown", method: http.MethodGet, path: "/users/2", status: http.StatusNotFound},
		{name: "bad id", method: http.MethodGet, path: "/users/abc", status: http.StatusNotFound},
	}

	// Cases share the fake and run in order.
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body)))

			assert.Equal(t, tt.status, rec.Code)

			raw := rec.Body.String()
			var out resp.Response
			require.NoError(t, json.Unmarshal([]byte(raw), &out))

			if tt.status >= http.StatusBadRequest {
				assert.Equal(t, resp.StatusError, out.Status)
			}
			if tt.check != nil {
				tt.check(t, out, raw)
			}
		})
	}
}
