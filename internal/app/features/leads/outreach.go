// internal/app/features/leads/outreach.go
package leads

import (
	"context"
	"net/http"
	"strings"

	"github.com/dalemusser/leadhub/internal/app/features/shared"
	"github.com/dalemusser/leadhub/internal/app/system/mailer"
	"github.com/dalemusser/leadhub/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type outreachResponse struct {
	DraftID string `json:"draft_id"`
	Sent    bool   `json:"sent"`
	To      string `json:"to"`
}

// HandleComposeEmail handles POST /leads/{id}/email. The email is built
// from the outreach template and handed to the mailer, which either sends
// it or records a draft depending on configuration. The lead must belong
// to the caller and must have an email address.
func (h *Handler) HandleComposeEmail(w http.ResponseWriter, r *http.Request) {
	owner, ok := h.ownerID(w, r)
	if !ok {
		return
	}
	id, ok := leadID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	var req outreachRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	req.Message = strings.TrimSpace(req.Message)
	req.FromName = strings.TrimSpace(req.FromName)
	if req.Message == "" {
		shared.Error(w, http.StatusBadRequest, "message is required")
		return
	}
	if req.FromName == "" {
		shared.Error(w, http.StatusBadRequest, "from_name is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	lead, err := h.Leads.GetByID(ctx, owner, id)
	if err != nil {
		h.respondStoreErr(w, "leads: load for email", err)
		return
	}
	if lead.Email == "" {
		shared.Error(w, http.StatusBadRequest, "lead has no email address")
		return
	}

	email := mailer.BuildOutreachEmail(mailer.OutreachEmailData{
		SiteName: h.SiteName,
		LeadName: lead.Name,
		Message:  req.Message,
		FromName: req.FromName,
	})
	email.To = lead.Email

	res, err := h.Mailer.Deliver(email)
	if err != nil {
		h.Log.Error("leads: deliver outreach email",
			zap.String("lead_id", id.Hex()),
			zap.Error(err))
		shared.Error(w, http.StatusBadGateway, "email delivery failed")
		return
	}

	status := http.StatusAccepted
	if res.Sent {
		status = http.StatusOK
	}
	shared.JSON(w, status, outreachResponse{
		DraftID: res.DraftID,
		Sent:    res.Sent,
		To:      lead.Email,
	})
}
