// internal/app/features/leads/routes.go
package leads

import (
	"github.com/dalemusser/leadhub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	// Everything under /leads requires authentication
	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)

		// LIST
		pr.Get("/", h.ServeLeadsList)

		// CREATE
		pr.Post("/", h.HandleCreateLead)

		// STATUS CHANGE
		pr.Patch("/{id}/status", h.HandleChangeStatus)

		// EDIT
		pr.Put("/{id}", h.HandleUpdateLead)

		// DELETE
		pr.Delete("/{id}", h.HandleDeleteLead)

		// OUTREACH EMAIL
		pr.Post("/{id}/email", h.HandleComposeEmail)
	})

	return r
}
