package templates

import (
	"context"
	"strings"

	"github.com/Lalith0024/unistay/pkg/models"
	"github.com/a-h/templ"
)

// Layout wraps content in the page shell. The header shows the signed in
// user and a logout button when user carries a role.
func Layout(title string, user models.Profile, content templ.Component) templ.Component {
	return component(func(ctx context.Context, h *htmlWriter) {
		h.raw(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`,
			`<meta name="viewport" content="width=device-width, initial-scale=1"><title>`)
		h.text(title)
		h.raw(` | UniStay</title></head><body><header><a href="/">UniStay</a>`)
		if user.Role != "" {
			name := user.Name
			if strings.TrimSpace(name) == "" {
				name = user.Email
			}
			h.raw(`<span class="user">`)
			h.text(name)
			h.raw(" (")
			h.text(user.Role.String())
			h.raw(`)</span><form method="post" action="/logout"><button type="submit">Log out</button></form>`)
		}
		h.raw(`</header><main>`)
		h.child(ctx, content)
		h.raw(`</main></body></html>`)
	})
}
