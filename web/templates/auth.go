package templates

import (
	"context"

	"github.com/a-h/templ"
)

// authScript posts the auth form as JSON and follows the returned redirect.
const authScript = `<script>
  const form = document.getElementById("auth-form");
  form.addEventListener("submit", async (event) => {
    event.preventDefault();
    const body = Object.fromEntries(new FormData(form));
    const res = await fetch(form.dataset.endpoint, {
      method: "POST",
      headers: { "Content-Type": "application/json", "Accept": "application/json" },
      body: JSON.stringify(body),
    });
    const data = await res.json();
    if (!res.ok) {
      form.querySelector(".error").textContent = data.details || data.error;
      return;
    }
    window.location.assign(data.redirect);
  });
</script>`

func LoginPage() templ.Component {
	return component(func(ctx context.Context, h *htmlWriter) {
		h.raw(`<h1>Sign in</h1>`,
			`<form id="auth-form" data-endpoint="/api/v1/login">`,
			`<label>Email <input type="email" name="email" required></label>`,
			`<label>Password <input type="password" name="password" required></label>`,
			`<button type="submit">Sign in</button>`,
			`<p class="error" role="alert"></p></form>`,
			`<p>No account yet? <a href="/signup">Create one</a>.</p>`,
			authScript)
	})
}

// SignupPage links back to the login view at loginPath.
func SignupPage(loginPath string) templ.Component {
	return component(func(ctx context.Context, h *htmlWriter) {
		h.raw(`<h1>Create an account</h1>`,
			`<form id="auth-form" data-endpoint="/api/v1/signup">`,
			`<label>Name <input type="text" name="name" required></label>`,
			`<label>Email <input type="email" name="email" required></label>`,
			`<label>Password <input type="password" name="password" minlength="8" required></label>`,
			`<label>Confirm password <input type="password" name="confirm" minlength="8" required></label>`,
			`<button type="submit">Sign up</button>`,
			`<p class="error" role="alert"></p></form>`,
			`<p>Already registered? <a href="`)
		h.url(loginPath)
		h.raw(`">Sign in</a>.</p>`, authScript)
	})
}
