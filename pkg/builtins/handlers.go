package builtins

import (
	"log/slog"
	"net/http"

	"github.com/Lalith0024/unistay/pkg/guard"
	"github.com/Lalith0024/unistay/pkg/models"
	"github.com/Lalith0024/unistay/pkg/store"
	"github.com/Lalith0024/unistay/web/templates"
	"github.com/a-h/templ"
)

type Handler struct {
	auth   store.Authstore
	rooms  store.Roomstore
	token  store.Tokenstore
	health Pinger
	guard  *guard.Guard
	log    *slog.Logger
}

func newHandler(logger *slog.Logger, g *guard.Guard, deps Deps) *Handler {
	return &Handler{
		auth:   deps.Auth,
		rooms:  deps.Rooms,
		token:  deps.Token,
		health: deps.Health,
		guard:  g,
		log:    logger,
	}
}

func (h *Handler) logAccess(r *http.Request) {
	h.log.Debug("Access", "method", r.Method, "path", r.URL.Path, "remote_ip", r.RemoteAddr, "user_agent", r.UserAgent())
}

// render writes content inside the page layout.
func (h *Handler) render(w http.ResponseWriter, r *http.Request, title string, user models.Profile, content templ.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := templates.Layout(title, user, content).Render(r.Context(), w); err != nil {
		h.log.Error("unable to render page", "path", r.URL.Path, "err", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}

// profile returns the session profile the guard admitted for this request.
func (h *Handler) profile(r *http.Request) models.Profile {
	p, ok := guard.ProfileFromContext(r.Context())
	if !ok {
		h.log.Warn("handler reached without a guarded profile", "path", r.URL.Path)
	}
	return p
}
