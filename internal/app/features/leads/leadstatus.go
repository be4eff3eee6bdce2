// internal/app/features/leads/leadstatus.go
package leads

import (
	"context"
	"net/http"

	"github.com/dalemusser/leadhub/internal/app/features/shared"
	"github.com/dalemusser/leadhub/internal/app/system/normalize"
	"github.com/dalemusser/leadhub/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// HandleChangeStatus handles PATCH /leads/{id}/status.
func (h *Handler) HandleChangeStatus(w http.ResponseWriter, r *http.Request) {
	owner, ok := h.ownerID(w, r)
	if !ok {
		return
	}
	id, ok := leadID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	var req statusRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	status := normalize.Status(req.Status)
	if status == "" {
		shared.Error(w, http.StatusBadRequest, "status is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if err := h.Leads.UpdateStatus(ctx, owner, id, status); err != nil {
		h.respondStoreErr(w, "leads: change status", err)
		return
	}

	lead, err := h.Leads.GetByID(ctx, owner, id)
	if err != nil {
		h.respondStoreErr(w, "leads: reload after status change", err)
		return
	}

	h.Log.Info("lead status changed",
		zap.String("lead_id", id.Hex()),
		zap.String("status", status))
	shared.JSON(w, http.StatusOK, lead)
}
