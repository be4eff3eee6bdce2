// internal/app/features/leads/leadnew.go
package leads

import (
	"context"
	"net/http"

	"github.com/dalemusser/leadhub/internal/app/features/shared"
	leadstore "github.com/dalemusser/leadhub/internal/app/store/leads"
	"github.com/dalemusser/leadhub/internal/app/system/normalize"
	"github.com/dalemusser/leadhub/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// HandleCreateLead handles POST /leads.
func (h *Handler) HandleCreateLead(w http.ResponseWriter, r *http.Request) {
	owner, ok := h.ownerID(w, r)
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

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	lead, err := h.Leads.Create(ctx, owner, leadstore.NewLead{
		Name:       req.Name,
		Mobile:     req.Mobile,
		Email:      req.Email,
		IsProspect: req.IsProspect,
		Status:     req.Status,
	})
	if err != nil {
		h.respondStoreErr(w, "leads: create", err)
		return
	}

	h.Log.Info("lead created",
		zap.String("lead_id", lead.ID.Hex()),
		zap.String("owner_id", owner.Hex()))
	shared.JSON(w, http.StatusCreated, lead)
}
