package article_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newspaper/internal/domain/models"
	apiarticle "newspaper/internal/http-server/handlers/api/article"
	resp "newspaper/internal/lib/api/response"
	"newspaper/internal/lib/jwt"
	"newspaper/internal/lib/logger/slogdiscard"
	"newspaper/internal/service/article"
)

const secret = "test-secret"

// ghostID signs valid tokens but has no user row.
const ghostID = 3

// fakeService holds a single article, id 1, owned by user 1.
type fakeService struct {
	art     models.Article
	created []string
}

func (f *fakeService) List(context.Context) ([]models.Article, error) {
	return []models.Article{f.art}, nil
}

func (f *fakeService) Get(_ context.Context, id int64) (models.Article, error) {
	if id != f.art.ID {
		return models.Article{}, fmt.Errorf("fake: %w", article.ErrArticleNotFound)
	}
	return f.art, nil
}

func (f *fakeService) Create(_ context.Context, authorID int64, title, body string) (models.Article, error) {
	f.created = append(f.created, title)
	return models.Article{ID: 2, AuthorID: authorID, Title: title, Body: body}, nil
}

func (f *fakeService) Update(ctx context.Context, userID, id int64, title, _ string) error {
	if err := f.check(userID, id); err != nil {
		return err
	}
	f.art.Title = title
	return nil
}

func (f *fakeService) Remove(_ context.Context, userID, id int64) error {
	return f.check(userID, id)
}

func (f *fakeService) AddComment(_ context.Context, userID, articleID int64, body string) (models.Comment, error) {
	if articleID != f.art.ID {
		return models.Comment{}, fmt.Errorf("fake: %w", article.ErrArticleNotFound)
	}
	if userID == ghostID {
		return models.Comment{}, fmt.Errorf("fake: %w", article.ErrUnknownAuthor)
	}
	return models.Comment{ID: 1, ArticleID: articleID, AuthorID: userID, Body: body}, nil
}

func (f *fakeService) check(userID, id int64) error {
	if id != f.art.ID {
		return fmt.Errorf("fake: %w", article.ErrArticleNotFound)
	}
	if !f.art.OwnedBy(userID) {
		return fmt.Errorf("fake: %w", article.ErrPermissionDenied)
	}
	return nil
}

func token(t *testing.T, uid int64) string {
	t.Helper()

	tok, err := jwt.NewToken(models.User{ID: uid}, time.Hour, secret)
	require.NoError(t, err)

	return tok
}

func TestArticleHandlers(t *testing.T) {
	svc := &fakeService{art: models.Article{ID: 1, AuthorID: 1, Title: "Hello", Body: "World"}}

	r := chi.NewRouter()
	r.Route("/articles", apiarticle.New(slogdiscard.NewDiscardLogger(), svc, secret).Register())

	owner, other, ghost := token(t, 1), token(t, 2), token(t, ghostID)

	tests := []struct {
		name   string
		method string
		path   string
		token  string
		body   string
		status int
		errMsg string
	}{
		{name: "no token", method: http.MethodGet, path: "/articles/", status: http.StatusUnauthorized},
		{name: "foreign signature", method: http.MethodGet, path: "/articles/", token: "x.y.z", status: http.StatusUnauthorized},
		{name: "list", method: http.MethodGet, path: "/articles/", token: other, status: http.StatusOK},
		{name: "get", method: http.MethodGet, path: "/articles/1", token: other, status: http.StatusOK},
		{name: "get missing", method: http.MethodGet, path: "/articles/9", token: other, status: http.StatusNotFound, errMsg: "article not found"},
		{name: "create invalid", method: http.MethodPost, path: "/articles/", token: other, body: `{"title":"  ","body":"x"}`, status: http.StatusBadRequest, errMsg: "invalid request"},
		{name: "create", method: http.MethodPost, path: "/articles/", token: other, body: `{"title":"New","body":"x"}`, status: http.StatusCreated},
		{name: "update by other", method: http.MethodPut, path: "/articles/1", token: other, body: `{"title":"Hijacked","body":"x"}`, status: http.StatusForbidden, errMsg: "permission denied"},
		{name: "update by owner", method: http.MethodPut, path: "/articles/1", token: owner, body: `{"title":"Hello again","body":"x"}`, status: http.StatusOK},
		{name: "delete by other", method: http.MethodDelete, path: "/articles/1", token: other, status: http.StatusForbidden, errMsg: "permission denied"},
		{name: "comment too long", method: http.MethodPost, path: "/articles/1/comments", token: other, body: `{"body":"` + strings.Repeat("x", 141) + `"}`, status: http.StatusBadRequest},
		{name: "comment", method: http.MethodPost, path: "/articles/1/comments", token: other, body: `{"body":"Nice!"}`, status: http.StatusCreated},
		{name: "comment by deleted user", method: http.MethodPost, path: "/articles/1/comments", token: ghost, body: `{"body":"Boo"}`, status: http.StatusUnauthorized, errMsg: "invalid token"},
		{name: "comment on missing", method: http.MethodPost, path: "/articles/9/comments", token: other, body: `{"body":"Nice!"}`, status: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			if tt.token != "" {
				req.Header.Set("Authorization", "Bearer "+tt.token)
			}

			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)

			assert.Equal(t, tt.status, rec.Code)

			if tt.errMsg != "" {
				var out resp.Response
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
				assert.Equal(t, tt.errMsg, out.Error)
			}
		})
	}

	assert.Equal(t, []string{"New"}, svc.created)
	assert.Equal(t, "Hello again", svc.art.Title)
}
