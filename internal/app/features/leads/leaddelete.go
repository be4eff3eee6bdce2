// internal/app/features/leads/leaddelete.go
package leads

import (
	"context"
	"net/http"

	"github.com/dalemusser/leadhub/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// HandleDeleteLead handles DELETE /leads/{id}. A repeated delete of the
// same lead reports 404, matching the store's zero-row semantics.
func (h *Handler) HandleDeleteLead(w http.ResponseWriter, r *http.Request) {
	owner, ok := h.ownerID(w, r)
	if !ok {
		return
	}
	id, ok := leadID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if err := h.Leads.Delete(ctx, owner, id); err != nil {
		h.respondStoreErr(w, "leads: delete", err)
		return
	}

	h.Log.Info("lead deleted",
		zap.String("lead_id", id.Hex()),
		zap.String("owner_id", owner.Hex()))
	w.WriteHeader(http.StatusNoContent)
}
