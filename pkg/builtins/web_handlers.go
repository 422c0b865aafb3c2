package builtins

import (
	"net/http"

	"github.com/Lalith0024/unistay/api"
	"github.com/Lalith0024/unistay/pkg/models"
	"github.com/Lalith0024/unistay/web/templates"
)

func (h *Handler) handleLoginGet() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.logAccess(r)
		h.render(w, r, "Login", models.Profile{}, templates.LoginPage())
	}
}

func (h *Handler) handleSignupGet() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.logAccess(r)
		h.render(w, r, "Sign up", models.Profile{}, templates.SignupPage(h.guard.LoginPath))
	}
}

// handleLogoutPost clears both session entries and sends the browser to login.
func (h *Handler) handleLogoutPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.logAccess(r)

		h.guard.Session(w, r).Clear()
		h.log.Debug("session cleared by logout", "user_id", h.profile(r).ID)

		http.Redirect(w, r, h.guard.LoginPath, http.StatusSeeOther)
	}
}

// handleDashboardGet is the generic landing, shown when a role lacks access
// to the page it asked for.
func (h *Handler) handleDashboardGet() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.logAccess(r)

		p := h.profile(r)
		h.render(w, r, "Dashboard", p, templates.AccessDenied(h.guard.LandingFor(p.EffectiveRole())))
	}
}

func (h *Handler) handleStudentDashboardGet() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.logAccess(r)
		p := h.profile(r)
		h.render(w, r, "Student dashboard", p, templates.StudentDashboard(p))
	}
}

func (h *Handler) handleAdminDashboardGet() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.logAccess(r)

		rooms, err := h.rooms.List(r.Context())
		if err != nil {
			h.log.Error("unable to list rooms", "err", err)
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}
		h.render(w, r, "Admin dashboard", h.profile(r), templates.AdminDashboard(summarize(rooms)))
	}
}

func (h *Handler) handleAdminRoomsGet() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.logAccess(r)

		rooms, err := h.rooms.List(r.Context())
		if err != nil {
			h.log.Error("unable to list rooms", "err", err)
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}
		h.render(w, r, "Rooms", h.profile(r), templates.RoomsTable(rooms))
	}
}

func (h *Handler) handleHealthzGet() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if h.health != nil {
			if err := h.health.Ping(r.Context()); err != nil {
				h.log.Error("health check failed", "err", err)
				api.RespondJSONAndLog(w, h.log, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
				return
			}
		}
		api.RespondJSONAndLog(w, h.log, http.StatusOK, map[string]string{"status": "ok"})
	}
}

// summarize counts rooms open for allocation and their free beds.
// Full rooms and rooms under maintenance count towards the total only.
func summarize(rooms []models.Room) api.RoomSummary {
	s := api.RoomSummary{Total: len(rooms)}
	for _, r := range rooms {
		if r.Status != models.RoomAvailable {
			continue
		}
		s.Available++
		s.Vacancies += r.Vacancies()
	}
	return s
}
