package admin

import "newspaper/internal/http-server/view"

var indexTmpl = view.Tmpl(`<h1>Site administration</h1>
	<table class="admin-index">
	{{ range .Data }}
		<tr>
			<th>{{ if .CanList }}<a href="/admin/{{ .Name }}/">{{ .Plural }}</a>{{ else }}{{ .Plural }}{{ end }}</th>
			<td>{{ if .CanAdd }}<a href="/admin/{{ .Name }}/add/">Add</a>{{ end }}</td>
		</tr>
	{{ end }}
	</table>`)

var listTmpl = view.Tmpl(`<h1>Select {{ .Data.Model.Name }} to change</h1>
	{{ if .Data.CanAdd }}<p><a href="/admin/{{ .Data.Model.Name }}/add/">Add {{ .Data.Model.Name }}</a></p>{{ end }}
	<table class="result-list">
		<thead>
			<tr>
				{{ range .Data.Model.ListDisplay }}<th>{{ . }}</th>{{ end }}
				<th></th>
			</tr>
		</thead>
		<tbody>
		{{ $d := .Data }}
		{{ range .Data.Rows }}
			<tr>
				{{ $id := .ID }}
				{{ range $i, $cell := .Cells }}
					<td>{{ if and (eq $i 0) $d.CanChange }}<a href="/admin/{{ $d.Model.Name }}/{{ $id }}/change/">{{ $cell }}</a>{{ else }}{{ $cell }}{{ end }}</td>
				{{ end }}
				<td>{{ if $d.CanDelete }}<a href="/admin/{{ $d.Model.Name }}/{{ $id }}/delete/">Delete</a>{{ end }}</td>
			</tr>
		{{ end }}
		</tbody>
	</table>
	<p>{{ len .Data.Rows }} {{ .Data.Model.Plural }}</p>`)

var articleChangeTmpl = view.Tmpl(`{{ $d := .Data }}
	<h1>{{ if $d.ID }}Change{{ else }}Add{{ end }} article</h1>
	{{ with index $d.Errors "__all__" }}<p class="error">{{ . }}</p>{{ end }}
	<form method="post">
		<p>
			<label for="id_title">Title</label>
			<input type="text" id="id_title" name="title" maxlength="255" value="{{ $d.Form.Title }}">
			{{ with $d.Errors.title }}<span class="error">{{ . }}</span>{{ end }}
		</p>
		<p>
			<label for="id_body">Body</label>
			<textarea id="id_body" name="body" rows="10">{{ $d.Form.Body }}</textarea>
			{{ with $d.Errors.body }}<span class="error">{{ . }}</span>{{ end }}
		</p>
		<p>
			<label for="id_author">Author</label>
			<select id="id_author" name="author">
			{{ range $d.Choices.Users }}
				<option value="{{ .ID }}"{{ if eq .ID $d.Form.Author }} selected{{ end }}>{{ .Username }}</option>
			{{ end }}
			</select>
			{{ with $d.Errors.author }}<span class="error">{{ . }}</span>{{ end }}
		</p>
		{{ if $d.ID }}
		<fieldset class="inline-group">
			<legend>Comments</legend>
			<table>
				<thead><tr><th>Comment</th><th>Author</th><th>Delete?</th></tr></thead>
				<tbody>
				{{ range $i, $c := $d.Form.Comments }}
					<tr class="inline-row">
						<td>
							<input type="hidden" name="comments.{{ $i }}.id" value="{{ $c.ID }}">
							<input type="text" name="comments.{{ $i }}.body" maxlength="140" value="{{ $c.Body }}">
							{{ with index $d.Errors (printf "comments.%d.body" $i) }}<span class="error">{{ . }}</span>{{ end }}
						</td>
						<td>{{ index $d.Choices.CommentAuthors $c.ID }}</td>
						<td>{{ if $c.ID }}<input type="checkbox" name="comments.{{ $i }}.delete" value="true"{{ if $c.Delete }} checked{{ end }}>{{ end }}</td>
					</tr>
				{{ end }}
				</tbody>
			</table>
		</fieldset>
		{{ end }}
		<button type="submit">Save</button>
		{{ if $d.ID }}<a href="/admin/article/{{ $d.ID }}/delete/">Delete</a>{{ end }}
	</form>`)

var commentChangeTmpl = view.Tmpl(`{{ $d := .Data }}
	<h1>{{ if $d.ID }}Change{{ else }}Add{{ end }} comment</h1>
	{{ with index $d.Errors "__all__" }}<p class="error">{{ . }}</p>{{ end }}
	<form method="post">
		<p>
			<label for="id_body">Body</label>
			<input type="text" id="id_body" name="body" maxlength="140" value="{{ $d.Form.Body }}">
			{{ with $d.Errors.body }}<span class="error">{{ . }}</span>{{ end }}
		</p>
		<p>
			<label for="id_article">Article</label>
			<select id="id_article" name="article">
			{{ range $d.Choices.Articles }}
				<option value="{{ .ID }}"{{ if eq .ID $d.Form.Article }} selected{{ end }}>{{ .Title }}</option>
			{{ end }}
			</select>
			{{ with $d.Errors.article }}<span class="error">{{ . }}</span>{{ end }}
		</p>
		<p>
			<label for="id_author">Author</label>
			<select id="id_author" name="author">
			{{ range $d.Choices.Users }}
				<option value="{{ .ID }}"{{ if eq .ID $d.Form.Author }} selected{{ end }}>{{ .Username }}</option>
			{{ end }}
			</select>
			{{ with $d.Errors.author }}<span class="error">{{ . }}</span>{{ end }}
		</p>
		<button type="submit">Save</button>
		{{ if $d.ID }}<a href="/admin/comment/{{ $d.ID }}/delete/">Delete</a>{{ end }}
	</form>`)

var deleteTmpl = view.Tmpl(`<h1>Are you sure?</h1>
	<p>Are you sure you want to delete the {{ .Data.Model.Name }} "{{ .Data.Object }}"?</p>
	<form method="post" action="/admin/{{ .Data.Model.Name }}/{{ .Data.ID }}/delete/">
		<button type="submit">Yes, I'm sure</button>
		<a href="/admin/{{ .Data.Model.Name }}/{{ .Data.ID }}/change/">No, take me back</a>
	</form>`)
