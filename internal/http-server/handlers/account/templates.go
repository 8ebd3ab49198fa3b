package account

import "newspaper/internal/http-server/view"

var homeTmpl = view.Tmpl(`<h1>Newspaper</h1>
	{{ if .User }}
		<p><a href="/articles/">Read the articles</a> or <a href="/articles/new/">write one</a>.</p>
	{{ else }}
		<p>Please <a href="/accounts/login/">log in</a> to read and write articles.</p>
	{{ end }}`)

var loginTmpl = view.Tmpl(`<h1>Log in</h1>
	{{ with index .Data.Errors "__all__" }}<p class="error">{{ . }}</p>{{ end }}
	<form method="post" action="/accounts/login/">
		<input type="hidden" name="next" value="{{ .Data.Form.Next }}">
		<p>
			<label for="id_username">Username</label>
			<input type="text" id="id_username" name="username" value="{{ .Data.Form.Username }}" autofocus>
			{{ with .Data.Errors.username }}<span class="error">{{ . }}</span>{{ end }}
		</p>
		<p>
			<label for="id_password">Password</label>
			<input type="password" id="id_password" name="password">
			{{ with .Data.Errors.password }}<span class="error">{{ . }}</span>{{ end }}
		</p>
		<button type="submit">Log in</button>
	</form>
	<p>No account yet? <a href="/accounts/signup/">Sign up</a>.</p>`)

var signupTmpl = view.Tmpl(`<h1>Sign up</h1>
	<form method="post" action="/accounts/signup/">
		<p>
			<label for="id_username">Username</label>
			<input type="text" id="id_username" name="username" value="{{ .Data.Form.Username }}" maxlength="150">
			{{ with .Data.Errors.username }}<span class="error">{{ . }}</span>{{ end }}
		</p>
		<p>
			<label for="id_password1">Password</label>
			<input type="password" id="id_password1" name="password1">
			{{ with .Data.Errors.password1 }}<span class="error">{{ . }}</span>{{ end }}
		</p>
		<p>
			<label for="id_password2">Password confirmation</label>
			<input type="password" id="id_password2" name="password2">
			{{ with .Data.Errors.password2 }}<span class="error">{{ . }}</span>{{ end }}
		</p>
		<button type="submit">Sign up</button>
	</form>`)
