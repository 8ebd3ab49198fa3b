package article

import "newspaper/internal/http-server/view"

var listTmpl = view.Tmpl(`<h1>Articles</h1>
	{{ range .Data }}
		<article>
			<h2><a href="/articles/{{ .ID }}/">{{ .Title }}</a></h2>
			<p class="meta">by {{ .Author }} | {{ date .PublishDate }}</p>
			{{ markdown .Body }}
			{{ with .Comments }}
				<ul class="comments">
				{{ range . }}
					<li><strong>{{ .Author }}</strong> {{ .Body }}</li>
				{{ end }}
				</ul>
			{{ end }}
			{{ if eq .AuthorID $.User.ID }}
				<p>
					<a href="/articles/{{ .ID }}/edit/">Edit</a>
					<a href="/articles/{{ .ID }}/delete/">Delete</a>
				</p>
			{{ end }}
		</article>
	{{ else }}
		<p>No articles yet. <a href="/articles/new/">Write the first one.</a></p>
	{{ end }}`)

var detailTmpl = view.Tmpl(`{{ with .Data.Article }}
		<article>
			<h1>{{ .Title }}</h1>
			<p class="meta">by {{ .Author }} | {{ date .PublishDate }}</p>
			{{ markdown .Body }}
		</article>
	{{ end }}
	{{ if .Data.CanEdit }}
		<p>
			<a href="/articles/{{ .Data.Article.ID }}/edit/">Edit</a>
			<a href="/articles/{{ .Data.Article.ID }}/delete/">Delete</a>
		</p>
	{{ end }}
	<h2>Comments</h2>
	{{ range .Data.Article.Comments }}
		<p class="comment"><strong>{{ .Author }}</strong> {{ .Body }}</p>
	{{ else }}
		<p>No comments yet.</p>
	{{ end }}
	<form method="post" action="/articles/{{ .Data.Article.ID }}/">
		<label for="id_body">Add a comment</label>
		<input type="text" id="id_body" name="body" maxlength="140" value="{{ .Data.Form.Body }}">
		{{ with .Data.Errors.body }}<p class="error">{{ . }}</p>{{ end }}
		<button type="submit">Submit</button>
	</form>
	<p><a href="/articles/">Back to all articles</a></p>`)

var formTmpl = view.Tmpl(`<h1>{{ .Data.Heading }}</h1>
	<form method="post" action="{{ .Data.Action }}">
		<p>
			<label for="id_title">Title</label>
			<input type="text" id="id_title" name="title" maxlength="255" value="{{ .Data.Form.Title }}">
			{{ with .Data.Errors.title }}<span class="error">{{ . }}</span>{{ end }}
		</p>
		<p>
			<label for="id_body">Body</label>
			<textarea id="id_body" name="body" rows="12">{{ .Data.Form.Body }}</textarea>
			{{ with .Data.Errors.body }}<span class="error">{{ . }}</span>{{ end }}
		</p>
		<button type="submit">Save</button>
	</form>`)

var deleteTmpl = view.Tmpl(`<h1>Delete article</h1>
	<p>Are you sure you want to delete "{{ .Data.Title }}"? Its comments will be deleted too.</p>
	<form method="post" action="/articles/{{ .Data.ID }}/delete/">
		<a href="/articles/{{ .Data.ID }}/">Cancel</a>
		<button type="submit" name="delete" value="true">Delete</button>
	</form>`)
