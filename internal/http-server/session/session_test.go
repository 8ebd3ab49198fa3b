package session_test

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newspaper/internal/config"
	"newspaper/internal/http-server/session"
	"newspaper/internal/storage/sqlite"
)

func TestLoginNotificationsRoundTrip(t *testing.T) {
	st, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	sm := session.New(st.DB(), config.Session{Lifetime: time.Hour, IdleTimeout: time.Hour}, false)

	mux := http.NewServeMux()
	mux.HandleFunc("/login", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, sm.Login(r.Context(), 42))
		sm.Success(r.Context(), "Welcome %s!", "alice")
	})
	mux.HandleFunc("/whoami", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, int64(42), sm.UserID(r.Context()))

		notes := sm.Notifications(r.Context())
		require.Len(t, notes, 1)
		assert.Equal(t, "Welcome alice!", notes[0].Message)
		assert.Equal(t, "success", notes[0].Style)

		assert.Empty(t, sm.Notifications(r.Context()))
	})
	h := sm.LoadAndSave(mux)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/login", nil))

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "session", cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.AddCookie(cookies[0])
	h.ServeHTTP(httptest.NewRecorder(), req)
}

func TestUserContext(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Nil(t, session.User(req.Context()))
}
