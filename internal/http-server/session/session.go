package session

import (
	"context"
	"database/sql"
	"encoding/gob"
	"fmt"
	"net/http"

	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"

	"newspaper/internal/config"
	"newspaper/internal/domain/models"
)

const (
	keyUserID        = "uid"
	keyNotifications = "notifications"
)

type Notification struct {
	Message string
	Style   string
}

func init() {
	gob.Register([]Notification{})
}

// Manager wraps the scs session manager with the keys this site stores.
type Manager struct {
	*scs.SessionManager
}

// New creates a manager backed by the sessions table of db.
// Expired rows are swept in the background only if cleanup is set.
func New(db *sql.DB, cfg config.Session, cleanup bool) *Manager {
	sm := scs.New()

	if cleanup {
		sm.Store = sqlite3store.New(db)
	} else {
		sm.Store = sqlite3store.NewWithCleanupInterval(db, 0)
	}

	sm.Lifetime = cfg.Lifetime
	sm.IdleTimeout = cfg.IdleTimeout
	sm.Cookie.Name = "session"
	sm.Cookie.HttpOnly = true
	sm.Cookie.Path = "/"
	sm.Cookie.SameSite = http.SameSiteLaxMode
	sm.Cookie.Secure = cfg.CookieSecure

	return &Manager{SessionManager: sm}
}

// Login binds the user to a fresh session token.
func (m *Manager) Login(ctx context.Context, userID int64) error {
	const op = "http-server.session.Login"

	if err := m.RenewToken(ctx); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	m.Put(ctx, keyUserID, int(userID))

	return nil
}

func (m *Manager) Logout(ctx context.Context) error {
	const op = "http-server.session.Logout"

	if err := m.Destroy(ctx); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// UserID returns the logged in user id, or zero.
func (m *Manager) UserID(ctx context.Context) int64 {
	return int64(m.GetInt(ctx, keyUserID))
}

func (m *Manager) Success(ctx context.Context, format string, args ...any) {
	m.notify(ctx, fmt.Sprintf(format, args...), "success")
}

func (m *Manager) Danger(ctx context.Context, format string, args ...any) {
	m.notify(ctx, fmt.Sprintf(format, args...), "danger")
}

func (m *Manager) notify(ctx context.Context, msg, style string) {
	notifications, _ := m.Get(ctx, keyNotifications).([]Notification)
	notifications = append(notifications, Notification{Message: msg, Style: style})
	m.Put(ctx, keyNotifications, notifications)
}

// Notifications removes and returns the pending notifications.
func (m *Manager) Notifications(ctx context.Context) []Notification {
	notifications, _ := m.Pop(ctx, keyNotifications).([]Notification)
	return notifications
}

type ctxKey struct{}

// WithUser stores the resolved current user in ctx.
func WithUser(ctx context.Context, u *models.User) context.Context {
	return context.WithValue(ctx, ctxKey{}, u)
}

// User returns the current user or nil for anonymous requests.
func User(ctx context.Context) *models.User {
	u, _ := ctx.Value(ctxKey{}).(*models.User)
	return u
}
