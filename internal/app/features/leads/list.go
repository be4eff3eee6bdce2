// internal/app/features/leads/list.go
package leads

import (
	"context"
	"net/http"

	"github.com/dalemusser/leadhub/internal/app/features/shared"
	"github.com/dalemusser/leadhub/internal/app/system/timeouts"
)

// ServeLeadsList handles GET /leads. Leads are returned newest first and
// always as a JSON array, never null.
func (h *Handler) ServeLeadsList(w http.ResponseWriter, r *http.Request) {
	owner, ok := h.ownerID(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	rows, err := h.Leads.List(ctx, owner)
	if err != nil {
		h.respondStoreErr(w, "leads: list", err)
		return
	}

	shared.JSON(w, http.StatusOK, rows)
}
