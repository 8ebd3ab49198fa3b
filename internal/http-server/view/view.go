package view

import (
	"bytes"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"gitlab.com/golang-commonmark/markdown"

	"newspaper/internal/domain/models"
	"newspaper/internal/http-server/session"
	"newspaper/internal/lib/logger/sl"
)

// Raw HTML in article bodies is escaped, not passed through.
var md = markdown.New(markdown.HTML(false), markdown.Linkify(true), markdown.Typographer(true), markdown.MaxNesting(10))

var funcs = template.FuncMap{
	"markdown": func(s string) template.HTML {
		return template.HTML(md.RenderToString([]byte(s)))
	},
	"date": func(t time.Time) string {
		return t.Format("Jan 2, 2006, 15:04")
	},
}

var base = template.Must(template.New("base").Funcs(funcs).Parse(`<!DOCTYPE html>
<html>
	<head>
		<meta charset="utf-8">
		<title>{{ .Title }} | Newspaper</title>
	</head>
	<body>
		<nav>
			<a href="/">Newspaper</a>
			{{ with .User }}
				<a href="/articles/">Articles</a>
				<a href="/articles/new/">New article</a>
				{{ if .IsStaff }}<a href="/admin/">Admin</a>{{ end }}
				<span>Logged in as {{ .Username }}</span>
				<form method="post" action="/accounts/logout/" style="display: inline">
					<button type="submit">Log out</button>
				</form>
			{{ else }}
				<a href="/accounts/login/">Log in</a>
				<a href="/accounts/signup/">Sign up</a>
			{{ end }}
		</nav>
		{{ range .Notifications }}
			<div class="alert alert-{{ .Style }}" role="alert">{{ .Message }}</div>
		{{ end }}
		<main>
			{{ template "content" . }}
		</main>
	</body>
</html>`))

// Tmpl wraps text as the content block of the site layout.
// Inside text, the handler's data is available as .Data.
func Tmpl(text string) *template.Template {
	t := template.Must(base.Clone())
	t = template.Must(t.Parse(`{{ define "content" }}` + text + `{{ end }}`))
	return t
}

type Page struct {
	Title         string
	User          *models.User
	Notifications []session.Notification
	Data          any
}

var errorTmpl = Tmpl(`<h1>{{ .Data.Status }} {{ .Data.Text }}</h1>
	<p>{{ .Data.Message }}</p>`)

type errorData struct {
	Status  int
	Text    string
	Message string
}

type Renderer struct {
	log      *slog.Logger
	sessions *session.Manager
}

func New(log *slog.Logger, sessions *session.Manager) *Renderer {
	return &Renderer{
		log:      log,
		sessions: sessions,
	}
}

// Render executes t into a buffer first so a failing template never
// leaves a half-written page behind.
func (v *Renderer) Render(w http.ResponseWriter, r *http.Request, status int, t *template.Template, title string, data any) {
	const op = "http-server.view.Render"

	page := Page{
		Title:         title,
		User:          session.User(r.Context()),
		Notifications: v.sessions.Notifications(r.Context()),
		Data:          data,
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, page); err != nil {
		v.log.Error("failed to execute template", slog.String("op", op), slog.String("title", title), sl.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func (v *Renderer) Error(w http.ResponseWriter, r *http.Request, status int, msg string) {
	v.Render(w, r, status, errorTmpl, http.StatusText(status), errorData{
		Status:  status,
		Text:    http.StatusText(status),
		Message: msg,
	})
}

func (v *Renderer) Forbidden(w http.ResponseWriter, r *http.Request) {
	v.Error(w, r, http.StatusForbidden, "Permission denied")
}

func (v *Renderer) NotFound(w http.ResponseWriter, r *http.Request) {
	v.Error(w, r, http.StatusNotFound, "The requested page does not exist.")
}

func (v *Renderer) BadRequest(w http.ResponseWriter, r *http.Request) {
	v.Error(w, r, http.StatusBadRequest, "The submitted data could not be read.")
}

// ServerError logs err and renders a generic 500 page.
func (v *Renderer) ServerError(w http.ResponseWriter, r *http.Request, err error) {
	v.log.Error("request failed",
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		sl.Error(err),
	)
	v.Error(w, r, http.StatusInternalServerError, "Something went wrong. Please try again later.")
}

// SeeOther redirects after a successful POST.
func SeeOther(w http.ResponseWriter, r *http.Request, url string) {
	http.Redirect(w, r, url, http.StatusSeeOther)
}
