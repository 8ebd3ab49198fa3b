package view_test

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newspaper/internal/config"
	"newspaper/internal/domain/models"
	"newspaper/internal/http-server/session"
	"newspaper/internal/http-server/view"
	"newspaper/internal/lib/logger/slogdiscard"
	"newspaper/internal/storage/sqlite"
)

func newRenderer(t *testing.T) (*view.Renderer, *session.Manager) {
	t.Helper()

	st, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	sm := session.New(st.DB(), config.Session{Lifetime: time.Hour, IdleTimeout: time.Hour}, false)

	return view.New(slogdiscard.NewDiscardLogger(), sm), sm
}

func TestRenderEscapesRawHTMLInMarkdown(t *testing.T) {
	v, sm := newRenderer(t)
	tmpl := view.Tmpl(`<article>{{ markdown .Data }}</article>`)

	h := sm.LoadAndSave(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r = r.WithContext(session.WithUser(r.Context(), &models.User{ID: 1, Username: "alice", IsStaff: true}))
		v.Render(w, r, http.StatusOK, tmpl, "Test", "**bold** <script>alert(1)</script>")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	body := rec.Body.String()
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, body, "<strong>bold</strong>")
	assert.NotContains(t, body, "<script>")
	assert.Contains(t, body, "Logged in as alice")
	assert.Contains(t, body, `href="/admin/"`)
}

func TestErrorPages(t *testing.T) {
	v, sm := newRenderer(t)

	tests := []struct {
		name   string
		render func(w http.ResponseWriter, r *http.Request)
		status int
		text   string
	}{
		{"forbidden", v.Forbidden, http.StatusForbidden, "Permission denied"},
		{"not found", v.NotFound, http.StatusNotFound, "does not exist"},
		{"bad request", v.BadRequest, http.StatusBadRequest, "could not be read"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			sm.LoadAndSave(http.HandlerFunc(tt.render)).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

			assert.Equal(t, tt.status, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.text)
			assert.Contains(t, rec.Body.String(), "Log in")
		})
	}
}
