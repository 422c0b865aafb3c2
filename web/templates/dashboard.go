package templates

import (
	"context"
	"strconv"

	"github.com/Lalith0024/unistay/api"
	"github.com/Lalith0024/unistay/pkg/models"
	"github.com/a-h/templ"
)

// AccessDenied is the generic landing, linking to the role's own dashboard.
func AccessDenied(home string) templ.Component {
	return component(func(ctx context.Context, h *htmlWriter) {
		h.raw(`<h1>Dashboard</h1><p>Your account does not have access to that page.</p><p><a href="`)
		h.url(home)
		h.raw(`">Go to your dashboard</a></p>`)
	})
}

func StudentDashboard(user models.Profile) templ.Component {
	return component(func(ctx context.Context, h *htmlWriter) {
		h.raw(`<h1>Student dashboard</h1><p>Welcome back`)
		if user.Name != "" {
			h.raw(", ")
			h.text(user.Name)
		}
		h.raw(`.</p>`)
	})
}

func AdminDashboard(summary api.RoomSummary) templ.Component {
	return component(func(ctx context.Context, h *htmlWriter) {
		h.raw(`<h1>Admin dashboard</h1><p>`,
			strconv.Itoa(summary.Available), " of ", strconv.Itoa(summary.Total), " rooms open, ",
			strconv.Itoa(summary.Vacancies), ` beds free.</p><p><a href="/admin/rooms">Manage rooms</a></p>`)
	})
}

func RoomsTable(rooms []models.Room) templ.Component {
	return component(func(ctx context.Context, h *htmlWriter) {
		h.raw(`<h1>Rooms</h1><table><thead><tr><th>Number</th><th>Block</th><th>Occupied</th>`,
			`<th>Capacity</th><th>Fee</th><th>Status</th></tr></thead><tbody>`)
		if len(rooms) == 0 {
			h.raw(`<tr><td colspan="6">No rooms yet. Run <code>unistay seed</code>.</td></tr>`)
		}
		for _, r := range rooms {
			h.raw(`<tr><td>`)
			h.text(r.Number)
			h.raw(`</td><td>`)
			h.text(r.Block)
			h.raw(`</td><td>`, strconv.Itoa(r.Occupied), `</td><td>`, strconv.Itoa(r.Capacity),
				`</td><td>`, fee(r.MonthlyFee), `</td><td>`)
			h.text(string(r.Status))
			h.raw(`</td></tr>`)
		}
		h.raw(`</tbody></table>`)
	})
}
