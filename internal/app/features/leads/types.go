// internal/app/features/leads/types.go
package leads

// leadRequest is the JSON payload for creating or fully updating a lead.
type leadRequest struct {
	Name       string `json:"name"`
	Mobile     string `json:"mobile"`
	Email      string `json:"email"`
	IsProspect bool   `json:"is_prospect"`
	Status     string `json:"status"`
}

// validate enforces the required fields of the lead form. Status may be
// empty on create (it defaults) but the identity fields may not.
func (p leadRequest) validate() string {
	if p.Name == "" {
		return "name is required"
	}
	if p.Mobile == "" {
		return "mobile is required"
	}
	if p.Email == "" {
		return "email is required"
	}
	return ""
}

// statusRequest is the JSON payload for a status change.
type statusRequest struct {
	Status string `json:"status"`
}

// outreachRequest is the JSON payload for composing an outreach email.
type outreachRequest struct {
	Message  string `json:"message"`
	FromName string `json:"from_name"`
}
