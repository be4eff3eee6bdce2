// internal/app/features/leads/leadedit.go
package leads

import (
	"context"
	"net/http"

	"github.com/dalemusser/leadhub/internal/app/features/shared"
	leadstore "github.com/dalemusser/leadhub/internal/app/store/leads"
	"github.com/dalemusser/leadhub/internal/app/system/normalize"
	"github.com/dalemusser/leadhub/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// HandleUpdateLead handles PUT /leads/{id}. Every editable field is
// replaced; there are no partial updates. The refreshed lead is returned.
func (h *Handler) HandleUpdateLead(w http.ResponseWriter, r *http.Request) {
	owner, ok := h.ownerID(w, r)
	if !ok {
		return
	}
	id, ok := leadID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	var req leadRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	req.Name = normalize.Name(req.Name)
	req.Mobile = normalize.Mobile(req.Mobile)
	req.Email = normalize.Email(req.Email)
	if msg := req.validate(); msg != "" {
		shared.Error(w, http.StatusBadRequest, msg)
		return
	}
	if normalize.Status(req.Status) == "" {
		shared.Error(w, http.StatusBadRequest, "status is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	err := h.Leads.Update(ctx, owner, id, leadstore.LeadUpdate{
		Name:       req.Name,
		Mobile:     req.Mobile,
		Email:      req.Email,
		IsProspect: req.IsProspect,
		Status:     req.Status,
	})
	if err != nil {
		h.respondStoreErr(w, "leads: update", err)
		return
	}

	lead, err := h.Leads.GetByID(ctx, owner, id)
	if err != nil {
		h.respondStoreErr(w, "leads: reload after update", err)
		return
	}

	h.Log.Info("lead updated",
		zap.String("lead_id", id.Hex()),
		zap.String("owner_id", owner.Hex()))
	shared.JSON(w, http.StatusOK, lead)
}
